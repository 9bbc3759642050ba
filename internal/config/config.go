package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

const (
	// LocaleAuto detects the locale from the system
	LocaleAuto = "auto"
	// DefaultLogLevel keeps debug tracing out of normal runs
	DefaultLogLevel = "warn"
)

// LogLevels lists the accepted logLevel values
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config represents the configuration file structure
type Config struct {
	Locale   string `json:"locale"`   // "auto" or ISO format (e.g., "ko-KR", "en-US")
	LogLevel string `json:"logLevel"` // one of LogLevels
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Locale:   LocaleAuto,
		LogLevel: DefaultLogLevel,
	}
}

// Load loads the configuration from file. A missing file yields defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := NewConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if config.Locale == "" {
		config.Locale = LocaleAuto
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	return config, nil
}

// Save saves the configuration to file
func Save(config *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := EnsureDir(dir); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to warn
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// IsValidLogLevel reports whether s is one of LogLevels
func IsValidLogLevel(s string) bool {
	for _, l := range LogLevels {
		if strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}
