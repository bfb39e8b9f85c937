package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigEnvVar names the environment variable that points at a defaults file.
const ConfigEnvVar = "TUNEIT_CONFIG"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath string // a tuning input file, or a directory of them

	LogFormat string
	LogLevel  string
	// Dump prints each validated input as JSON.
	Dump bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.LogFormat != "" && cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	return &cfg, nil
}

// FileConfig is the on-disk form of the defaults file. Command-line flags
// take precedence over anything set here.
type FileConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Dump      bool   `toml:"dump"`
}

// LoadConfigFile reads a TOML defaults file.
func LoadConfigFile(path string) (*FileConfig, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var fc FileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &fc, nil
}
