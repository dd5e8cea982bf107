// Package config holds viewer settings loaded from the user config
// file with flag overrides applied on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures the tunable viewer behavior
type Config struct {
	// TabWidth is the tab stop used when expanding tabs for display
	TabWidth int `yaml:"tab_width"`
	// ViKeys maps h/j/k/l onto the arrow commands
	ViKeys bool `yaml:"vi_keys"`
	// StatusBar reserves the bottom row for file name and position
	StatusBar bool `yaml:"status_bar"`
	// Watch reloads the viewed file when it changes on disk
	Watch bool `yaml:"watch"`
	// Debug enables the log file
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		TabWidth:  8,
		ViKeys:    true,
		StatusBar: true,
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "teditor", "config.yaml"), nil
}

// Validate rejects settings the renderer cannot honor
func (c Config) Validate() error {
	if c.TabWidth < 1 || c.TabWidth > 16 {
		return fmt.Errorf("tab_width must be in [1, 16], got %d", c.TabWidth)
	}
	return nil
}

// Save writes the configuration to path, creating parent directories
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
