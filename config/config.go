// ABOUTME: Configuration for playlist imports and the music library root
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the import settings that used to live as process-wide
// state: where the music library lives and how relative playlist
// entries resolve when the stream has no directory of its own.
type Config struct {
	// MusicRoot is the library directory indexed for known tracks.
	// Empty disables library lookups; imports then probe every file.
	MusicRoot string `toml:"music_root"`

	// ImportBaseDir resolves relative playlist entries when the
	// playlist has no directory of its own (e.g. piped input).
	// Empty means such entries are dropped.
	ImportBaseDir string `toml:"import_base_dir"`

	// WatchLibrary keeps the library index fresh while running.
	WatchLibrary bool `toml:"watch_library"`
}

// DefaultConfig returns the default configuration: no library, no
// fallback directory, no watching.
func DefaultConfig() Config {
	return Config{}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/playlist-importer/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./playlist-importer.toml"); err == nil {
		return "./playlist-importer.toml"
	}

	// Then try ~/.config/playlist-importer/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./playlist-importer.toml"
	}

	return filepath.Join(home, ".config", "playlist-importer", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (Config, error) {
	// Try to read the file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse TOML
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	// Encode config as TOML
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
