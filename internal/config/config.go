package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/araxis-games/hexvc/internal/vc"
)

// EngineParams mirrors vc.Params as a YAML-friendly value, so the engine
// package itself never needs to know about config file tags.
type EngineParams struct {
	MaxOrs                   int  `yaml:"max_ors"`
	AndOverEdge              bool `yaml:"and_over_edge"`
	UsePatterns              bool `yaml:"use_patterns"`
	UseNonEdgePatterns       bool `yaml:"use_non_edge_patterns"`
	UseGreedyUnion           bool `yaml:"use_greedy_union"`
	AbortOnWinningConnection bool `yaml:"abort_on_winning_connection"`
}

// VCParams converts the YAML-friendly EngineParams into vc.Params, so
// callers building a vc.Builder never have to repeat the field-by-field
// copy themselves.
func (e EngineParams) VCParams() vc.Params {
	return vc.Params{
		MaxOrs:                   e.MaxOrs,
		AndOverEdge:              e.AndOverEdge,
		UsePatterns:              e.UsePatterns,
		UseNonEdgePatterns:       e.UseNonEdgePatterns,
		UseGreedyUnion:           e.UseGreedyUnion,
		AbortOnWinningConnection: e.AbortOnWinningConnection,
	}
}

// Config holds hexvc's settings, persisted in ~/.hexvc/config.yaml.
type Config struct {
	BoardSize     int          `yaml:"board_size"`
	Engine        EngineParams `yaml:"engine"`
	PatternPath   string       `yaml:"pattern_path,omitempty"` // override directory for pattern files; empty uses the embedded defaults
	WatchPatterns bool         `yaml:"watch_patterns,omitempty"`

	SocketPath string `yaml:"socket_path,omitempty"` // daemon unix socket; empty uses the default under the user config dir
	BookPath   string `yaml:"book_path,omitempty"`   // sqlite opening book; empty uses the default under the user config dir

	LogLevel  string `yaml:"log_level,omitempty"`
	LogFile   string `yaml:"log_file,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"` // "text" (default) or "json"
}

// Default returns hexvc's documented defaults, matching vc.DefaultParams.
func Default() *Config {
	return &Config{
		BoardSize: 11,
		Engine: EngineParams{
			MaxOrs:                   4,
			AndOverEdge:              false,
			UsePatterns:              true,
			UseNonEdgePatterns:       true,
			UseGreedyUnion:           true,
			AbortOnWinningConnection: false,
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads config.yaml from dir, overlaying it onto Default(). A missing
// file is not an error: Load returns the defaults unchanged.
func Load(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to dir/config.yaml, creating dir if needed.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("config: creating %s: %w", dir, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// SocketPathOrDefault returns cfg.SocketPath if set, else a path under
// userConfigDir.
func (c *Config) SocketPathOrDefault(userConfigDir string) string {
	if c.SocketPath != "" {
		return c.SocketPath
	}
	return filepath.Join(userConfigDir, "hexd.sock")
}

// BookPathOrDefault returns cfg.BookPath if set, else a path under
// userConfigDir.
func (c *Config) BookPathOrDefault(userConfigDir string) string {
	if c.BookPath != "" {
		return c.BookPath
	}
	return filepath.Join(userConfigDir, "book.sqlite")
}
