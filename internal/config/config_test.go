package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := Default()
	if cfg.BoardSize != def.BoardSize {
		t.Errorf("board size = %d, want %d", cfg.BoardSize, def.BoardSize)
	}
	if cfg.Engine != def.Engine {
		t.Errorf("engine params = %+v, want %+v", cfg.Engine, def.Engine)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.BoardSize = 13
	cfg.Engine.MaxOrs = 6
	cfg.SocketPath = "/tmp/custom.sock"

	if err := Save(dir, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.BoardSize != 13 {
		t.Errorf("board size = %d, want 13", got.BoardSize)
	}
	if got.Engine.MaxOrs != 6 {
		t.Errorf("max_ors = %d, want 6", got.Engine.MaxOrs)
	}
	if got.SocketPath != "/tmp/custom.sock" {
		t.Errorf("socket path = %q, want /tmp/custom.sock", got.SocketPath)
	}
}

func TestSocketAndBookPathDefaults(t *testing.T) {
	cfg := Default()
	userDir := "/home/x/.hexvc"

	if got, want := cfg.SocketPathOrDefault(userDir), filepath.Join(userDir, "hexd.sock"); got != want {
		t.Errorf("socket path = %q, want %q", got, want)
	}
	if got, want := cfg.BookPathOrDefault(userDir), filepath.Join(userDir, "book.sqlite"); got != want {
		t.Errorf("book path = %q, want %q", got, want)
	}

	cfg.SocketPath = "/elsewhere.sock"
	if got := cfg.SocketPathOrDefault(userDir); got != "/elsewhere.sock" {
		t.Errorf("socket path override = %q, want /elsewhere.sock", got)
	}
}
