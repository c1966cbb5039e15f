package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI preferences.
type DisplayConfig struct {
	// Theme selects the color palette: "light" or "dark".
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// BackendConfig holds settings for the auth/persistence backend.
type BackendConfig struct {
	// DatabasePath is the SQLite file backing the local server. Empty means
	// the default under the config directory.
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"`

	// WaitTimeoutSec bounds the startup wait for the backend to become
	// available.
	WaitTimeoutSec int `mapstructure:"wait_timeout_sec" yaml:"wait_timeout_sec"`

	// RememberLogin controls whether credentials are kept in the system
	// keyring for silent re-login.
	RememberLogin bool `mapstructure:"remember_login" yaml:"remember_login"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
}

// WaitTimeout returns the backend wait bound as a duration.
func (c *AppConfig) WaitTimeout() time.Duration {
	return time.Duration(c.Backend.WaitTimeoutSec) * time.Second
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/smarttodo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "smarttodo", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite path next to the config.
func DefaultDatabasePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "smarttodo.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Display: DisplayConfig{Theme: "light"},
		Backend: BackendConfig{
			WaitTimeoutSec: 10,
			RememberLogin:  true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("display.theme", "light")
	v.SetDefault("backend.wait_timeout_sec", 10)
	v.SetDefault("backend.remember_login", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.Theme != "light" && cfg.Display.Theme != "dark" {
		cfg.Display.Theme = "light"
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("display", cfg.Display)
	v.Set("backend", cfg.Backend)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
