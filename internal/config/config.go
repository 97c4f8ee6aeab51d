package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Backend names a durable storage implementation
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Storage  StorageConfig
	Autosave AutosaveConfig
	Export   ExportConfig
}

// StorageConfig selects and locates the durable store
type StorageConfig struct {
	Backend      Backend       `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"essence-sheet.db"`
	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"5s"`
}

// AutosaveConfig tunes the save indicator
type AutosaveConfig struct {
	QuietWindow time.Duration `env:"AUTOSAVE_QUIET_WINDOW" envDefault:"2m"`
}

// ExportConfig holds where export files are written
type ExportConfig struct {
	Dir string `env:"EXPORT_DIR" envDefault:"."`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Storage.Backend {
	case BackendSQLite:
		if cfg.Storage.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case BackendRedis:
		if cfg.Storage.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis backend")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	if cfg.Storage.WriteTimeout <= 0 {
		return nil, fmt.Errorf("WRITE_TIMEOUT must be positive, got %s", cfg.Storage.WriteTimeout)
	}
	if cfg.Autosave.QuietWindow <= 0 {
		return nil, fmt.Errorf("AUTOSAVE_QUIET_WINDOW must be positive, got %s", cfg.Autosave.QuietWindow)
	}

	return cfg, nil
}
