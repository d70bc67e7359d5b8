package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/todo/internal/core/task"
)

// Validate checks that the configuration is valid. Failures are reported as
// criterio.FieldErrors keyed by the YAML path of the offending field.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("store.path", c.Store.Path, taskFilePath),
		criterio.Run("store.ids", string(c.Store.IDs), idStrategy),
	)
}

// ValidateDeep performs Validate plus checks against the file system: the config
// file itself must be a regular file when present.
func (c *Config) ValidateDeep(configPath string) error {
	return criterio.ValidateStruct(
		c.Validate(),
		validateConfigFile(configPath),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// taskFilePath validates that the task file path is set and is not a directory.
// A missing file is fine; it is created on first save.
func taskFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func idStrategy(s string) error {
	if task.IDStrategy(s).IsValid() {
		return nil
	}
	return fmt.Errorf("invalid id strategy %q: must be one of counter, length", s)
}
