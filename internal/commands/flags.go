package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/hay-kot/todo/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	TaskFile   string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// EffectiveConfig returns a copy of the loaded config with command line
// overrides applied. Defaults are used when no config was loaded.
func (f *Flags) EffectiveConfig() config.Config {
	cfg := config.DefaultConfig()
	if f.Config != nil {
		cfg = *f.Config
	}
	cfg.Store.Path = f.TaskFilePath()
	return cfg
}

// TaskFilePath returns the backing file to use: the --file flag when set,
// otherwise the configured store path.
func (f *Flags) TaskFilePath() string {
	if f.TaskFile != "" {
		return f.TaskFile
	}
	if f.Config != nil && f.Config.Store.Path != "" {
		return f.Config.Store.Path
	}
	return config.DefaultTaskFile
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "todo", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/todo/todo.log
// On Linux: $XDG_STATE_HOME/todo/todo.log (defaults to ~/.local/state/todo/todo.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "todo", "todo.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "todo", "todo.log")
	}

	return filepath.Join(home, ".local", "state", "todo", "todo.log")
}
