// Package config handles configuration loading and management for SwarmRouter.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for SwarmRouter.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DefaultsConfig holds default values for delegation requests.
type DefaultsConfig struct {
	MaxTokens int    `mapstructure:"max_tokens"`
	Priority  string `mapstructure:"priority"`
}

// LedgerConfig holds task ledger settings.
type LedgerConfig struct {
	// Capacity is the maximum number of retained tasks. Zero means unbounded.
	Capacity int `mapstructure:"capacity"`
}

// CatalogConfig holds dance catalog settings.
type CatalogConfig struct {
	// Path points at a YAML catalog override. Empty means built-in catalog.
	Path string `mapstructure:"path"`
	// Watch enables hot-reloading the catalog file on change.
	Watch bool `mapstructure:"watch"`
}

// LogConfig holds debug logging settings.
type LogConfig struct {
	// Path is the debug log file. Empty disables debug logging.
	Path string `mapstructure:"path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (SWARMROUTER_*)
// 2. Project config (.swarmrouter.yaml in current directory or parent)
// 3. User config (~/.config/swarmrouter/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Load user config from XDG path
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.SetEnvPrefix("SWARMROUTER")
	v.AutomaticEnv()

	// Map specific environment variables
	v.BindEnv("server.addr", "SWARMROUTER_ADDR")
	v.BindEnv("defaults.max_tokens", "SWARMROUTER_MAX_TOKENS")
	v.BindEnv("catalog.path", "SWARMROUTER_CATALOG")
	v.BindEnv("log.path", "SWARMROUTER_LOG")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references in paths
	cfg.Catalog.Path = expandEnv(cfg.Catalog.Path)
	cfg.Log.Path = expandEnv(cfg.Log.Path)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Catalog.Path = expandEnv(cfg.Catalog.Path)
	cfg.Log.Path = expandEnv(cfg.Log.Path)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("server.addr", cfg.Server.Addr)
	v.Set("defaults.max_tokens", cfg.Defaults.MaxTokens)
	v.Set("defaults.priority", cfg.Defaults.Priority)
	v.Set("ledger.capacity", cfg.Ledger.Capacity)
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("catalog.watch", cfg.Catalog.Watch)
	v.Set("log.path", cfg.Log.Path)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":8420")

	// Delegation defaults
	v.SetDefault("defaults.max_tokens", 10000)
	v.SetDefault("defaults.priority", "medium")

	// Ledger defaults
	v.SetDefault("ledger.capacity", 0)

	// Catalog defaults
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)

	// Log defaults
	v.SetDefault("log.path", "")
}

// getUserConfigDir returns the XDG config directory for SwarmRouter.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "swarmrouter")
	}

	// Fall back to ~/.config/swarmrouter
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "swarmrouter")
	}
	return filepath.Join(home, ".config", "swarmrouter")
}

// findProjectConfig searches for .swarmrouter.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".swarmrouter.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8420",
		},
		Defaults: DefaultsConfig{
			MaxTokens: 10000,
			Priority:  "medium",
		},
		Ledger: LedgerConfig{
			Capacity: 0,
		},
		Catalog: CatalogConfig{
			Path:  "",
			Watch: false,
		},
		Log: LogConfig{
			Path: "",
		},
	}
}
