// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultPort      = "8080"
	DefaultBackend   = BackendMemory
	DefaultDBPath    = ":memory:"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// SeedDefault selects the embedded demo seed.
	SeedDefault = "default"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds the full configuration for the server.
type Config struct {
	Port    string `toml:"port"`
	Backend string `toml:"backend"` // memory or sqlite
	DBPath  string `toml:"db_path"`

	// Seed is empty (no seed), "default", or a path to a JSON seed file.
	Seed string `toml:"seed"`

	Log LogConfig `toml:"log"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json, logfmt
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Port:    DefaultPort,
		Backend: DefaultBackend,
		DBPath:  DefaultDBPath,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the configuration from defaults, the optional TOML file at
// path, and environment overrides, in that order. A missing file is only
// an error when path was given explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		err := cfg.loadFile(path)
		if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return nil, err
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Port, "PORT")
	set(&c.Backend, "STORE_BACKEND")
	set(&c.DBPath, "DB_PATH")
	set(&c.Seed, "SEED")
	set(&c.Log.Level, "LOG_LEVEL")
	set(&c.Log.Format, "LOG_FORMAT")
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("port is required")
	}

	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.DBPath == "" {
			return errors.New("db_path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("backend must be '%s' or '%s', got %q", BackendMemory, BackendSQLite, c.Backend)
	}

	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log format must be 'text', 'json', or 'logfmt', got %q", c.Log.Format)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log level must be 'debug', 'info', 'warn', or 'error', got %q", c.Log.Level)
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
