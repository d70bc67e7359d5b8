// Package config handles configuration loading and validation for todo.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/todo/internal/core/task"
)

// DefaultTaskFile is the backing file used when none is configured. Relative
// paths resolve against the working directory.
const DefaultTaskFile = "tasks.json"

// Config holds the application configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	UI    UIConfig    `yaml:"ui"`
}

// StoreConfig configures the task backing file.
type StoreConfig struct {
	Path          string          `yaml:"path"`
	IDs           task.IDStrategy `yaml:"ids"`
	BackupCorrupt *bool           `yaml:"backup_corrupt"` // nil = default (true)
}

// UIConfig configures the command loop's output.
type UIConfig struct {
	Color        *bool `yaml:"color"` // nil = default (true)
	ConfirmClear bool  `yaml:"confirm_clear"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Path:          DefaultTaskFile,
			IDs:           task.IDCounter,
			BackupCorrupt: ptr(true),
		},
		UI: UIConfig{
			Color: ptr(true),
		},
	}
}

// Load reads configuration from the given path and validates it.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg, err := Read(configPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. Callers that report every field error at
// once (config validate) use it so a bad value does not stop them early.
func Read(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Store.Path == "" {
		c.Store.Path = defaults.Store.Path
	}
	if c.Store.IDs == "" {
		c.Store.IDs = defaults.Store.IDs
	}
	if c.Store.BackupCorrupt == nil {
		c.Store.BackupCorrupt = defaults.Store.BackupCorrupt
	}
	if c.UI.Color == nil {
		c.UI.Color = defaults.UI.Color
	}
}

// ShouldBackupCorrupt reports whether undecodable task files are copied aside.
func (s StoreConfig) ShouldBackupCorrupt() bool {
	return s.BackupCorrupt == nil || *s.BackupCorrupt
}

// ColorEnabled reports whether styled output is allowed.
func (u UIConfig) ColorEnabled() bool {
	return u.Color == nil || *u.Color
}

func ptr[T any](v T) *T {
	return &v
}
