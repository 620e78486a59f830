package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete stagedoor configuration
type Config struct {
	Stage   StageConfig   `mapstructure:"stage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Demo    DemoConfig    `mapstructure:"demo"`
}

// StageConfig controls the platform stage driver
type StageConfig struct {
	// DebugKinds is a glob pattern selecting screen kinds whose lifecycle
	// transitions are logged at debug level ("*" for all, "" for none)
	DebugKinds string `mapstructure:"debug_kinds"`
	// RecreateOnChange recreates every screen when the config file changes,
	// the way a configuration change rebuilds a device's screens
	RecreateOnChange bool `mapstructure:"recreate_on_change"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the directory the log file is written to.
	// If empty, logs go to stderr.
	Dir string `mapstructure:"dir"`
}

// DemoConfig controls the terminal demo application
type DemoConfig struct {
	// Title is shown in the demo's header
	Title string `mapstructure:"title"`
	// Accent is the lipgloss color used for highlights (default: "62")
	Accent string `mapstructure:"accent"`
	// ShowHelp renders the key-binding help line (default: true)
	ShowHelp bool `mapstructure:"show_help"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Stage: StageConfig{
			DebugKinds:       "",
			RecreateOnChange: true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			Dir:     "",
		},
		Demo: DemoConfig{
			Title:    "stagedoor",
			Accent:   "62",
			ShowHelp: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Stage defaults
	viper.SetDefault("stage.debug_kinds", defaults.Stage.DebugKinds)
	viper.SetDefault("stage.recreate_on_change", defaults.Stage.RecreateOnChange)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	// Demo defaults
	viper.SetDefault("demo.title", defaults.Demo.Title)
	viper.SetDefault("demo.accent", defaults.Demo.Accent)
	viper.SetDefault("demo.show_help", defaults.Demo.ShowHelp)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stagedoor")
	}
	// Fall back to ~/.config/stagedoor
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stagedoor"
	}
	return filepath.Join(home, ".config", "stagedoor")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
