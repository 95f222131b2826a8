package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr != ":8080" || cfg.LogLevel != "info" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("partial file keeps defaults for absent fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("addr = \":9999\"\nlog_level = \"debug\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadServerConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr != ":9999" || cfg.LogLevel != "debug" {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		if cfg.DBPath != "ghost_maze.db" || cfg.GameConfigPath != "game_config.json" {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("addr = [broken"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadServerConfig(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}
