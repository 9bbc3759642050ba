package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the configuration directory
const AppName = "verify-structure"

// Dir returns the configuration directory path
// ~/.config/verify-structure/
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ConfigPath returns the config.json file path
// ~/.config/verify-structure/config.json
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
