// Package config loads application configuration from the environment.
//
// Loading order (koanf v2): built-in defaults first, then environment
// variables override them. The result is an immutable Config struct threaded
// explicitly through the composition root — no package-level state.
//
// Recognized environment variables:
//
//	PORT           HTTP listen port (default 8080)
//	DATABASE_PATH  SQLite database path, ":memory:" for ephemeral (default data/recommendations.db)
//	API_KEY        shared secret for mutating routes; empty disables the check
//	LOG_LEVEL      debug | info | warn | error (default info)
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds everything the server needs to start.
type Config struct {
	Port         int    `koanf:"port"`
	DatabasePath string `koanf:"database_path"`
	APIKey       string `koanf:"api_key"`
	LogLevel     string `koanf:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Port:         8080,
		DatabasePath: "data/recommendations.db",
		APIKey:       "",
		LogLevel:     "info",
	}
}

// Load builds the configuration from defaults and environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: loading defaults: %w", err)
	}

	// Env var names map onto koanf keys by lowercasing: DATABASE_PATH →
	// database_path. Unrelated variables produce keys no struct field
	// matches and fall away at Unmarshal.
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: invalid port %d", cfg.Port)
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("config: database path must not be empty")
	}

	return &cfg, nil
}
