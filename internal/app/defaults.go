package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults holds the application paths used before a config file is read.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - GIBBERISH_CONFIG_PATH: config file location (default: ~/.config/gibberish.toml)
//   - GIBBERISH_HOME: base directory for gibberish data (default: ~/.local/share/gibberish)
func GetDefaults() (*Defaults, error) {
	configPath := os.Getenv("GIBBERISH_CONFIG_PATH")
	baseDir := os.Getenv("GIBBERISH_HOME")

	if configPath == "" || baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if configPath == "" {
			configPath = filepath.Join(homeDir, ".config", "gibberish.toml")
		}
		if baseDir == "" {
			baseDir = filepath.Join(homeDir, ".local", "share", "gibberish")
		}
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}
