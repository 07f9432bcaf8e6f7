package config

import (
	"os"
	"path/filepath"
)

// GetUserConfigDir returns ~/.hexvc, where config.yaml, the daemon socket,
// and the opening book database live by default.
func GetUserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".hexvc"), nil
}

// GetProjectDir walks up from the working directory looking for a local
// .hexvc directory (project-scoped config/pattern overrides) or a .git
// directory (project root with no overrides yet), falling back to the
// working directory itself.
func GetProjectDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, ".hexvc")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}

// EnsureConfigDirs creates userConfigDir and projectDir's .hexvc
// subdirectory if they don't already exist.
func EnsureConfigDirs(userConfigDir, projectDir string) error {
	if err := os.MkdirAll(userConfigDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(projectDir, ".hexvc"), 0755)
}
