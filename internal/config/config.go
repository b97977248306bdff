// Package config loads cellsync tool configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrNotFound indicates the configuration file does not exist.
var ErrNotFound = errors.New("config file not found")

// Config holds tool-level settings. The engine itself is not
// configurable beyond its interactive flag; these settings drive the
// CLI and embedding hosts.
type Config struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
	// Color controls CLI output coloring (auto, on, off).
	Color string `toml:"color"`
	// ShowSynthetic includes synthetic header and annotation text when
	// rendering a concatenation.
	ShowSynthetic bool `toml:"show_synthetic"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogLevel:      "info",
		Color:         "auto",
		ShowSynthetic: true,
	}
}

// Load reads a TOML configuration file, layering it over the defaults.
// Unknown keys are tolerated.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return cfg, fmt.Errorf("config: stat %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("config: invalid color %q (want auto, on, or off)", c.Color)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	return nil
}
