package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ServerConfig is the process-level config (config.toml). Gameplay tuning
// lives separately in game_config.json.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	DBPath         string `toml:"db_path"`
	LogLevel       string `toml:"log_level"`
	GameConfigPath string `toml:"game_config"`
}

func defaults() ServerConfig {
	return ServerConfig{
		Addr:           ":8080",
		DBPath:         "ghost_maze.db",
		LogLevel:       "info",
		GameConfigPath: "game_config.json",
	}
}

// LoadServerConfig reads the TOML config at path, filling defaults for
// absent fields. A missing file is not an error; the defaults are used.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return ServerConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if cfg.Addr == "" {
		cfg.Addr = defaults().Addr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaults().DBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults().LogLevel
	}
	if cfg.GameConfigPath == "" {
		cfg.GameConfigPath = defaults().GameConfigPath
	}
	return cfg, nil
}
