package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hiveworks/swarmrouter/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify SwarmRouter configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/swarmrouter/config.yaml
Project-specific overrides can be placed in .swarmrouter.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("server.addr: %s\n", cfg.Server.Addr)
	fmt.Printf("defaults.max_tokens: %d\n", cfg.Defaults.MaxTokens)
	fmt.Printf("defaults.priority: %s\n", cfg.Defaults.Priority)
	fmt.Printf("ledger.capacity: %d\n", cfg.Ledger.Capacity)
	fmt.Printf("catalog.path: %s\n", displayPath(cfg.Catalog.Path))
	fmt.Printf("catalog.watch: %t\n", cfg.Catalog.Watch)
	fmt.Printf("log.path: %s\n", displayPath(cfg.Log.Path))
}

func displayPath(p string) string {
	if p == "" {
		return "(not set)"
	}
	return p
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch strings.ToLower(key) {
	case "server.addr":
		return cfg.Server.Addr, nil
	case "defaults.max_tokens":
		return strconv.Itoa(cfg.Defaults.MaxTokens), nil
	case "defaults.priority":
		return cfg.Defaults.Priority, nil
	case "ledger.capacity":
		return strconv.Itoa(cfg.Ledger.Capacity), nil
	case "catalog.path":
		return displayPath(cfg.Catalog.Path), nil
	case "catalog.watch":
		return strconv.FormatBool(cfg.Catalog.Watch), nil
	case "log.path":
		return displayPath(cfg.Log.Path), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue sets a configuration value by dot-notation key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "server.addr":
		cfg.Server.Addr = value
	case "defaults.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("defaults.max_tokens must be a positive integer")
		}
		cfg.Defaults.MaxTokens = n
	case "defaults.priority":
		switch strings.ToLower(value) {
		case "low", "medium", "high", "critical":
			cfg.Defaults.Priority = strings.ToLower(value)
		default:
			return fmt.Errorf("defaults.priority must be one of: low, medium, high, critical")
		}
	case "ledger.capacity":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("ledger.capacity must be a non-negative integer")
		}
		cfg.Ledger.Capacity = n
	case "catalog.path":
		cfg.Catalog.Path = value
	case "catalog.watch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("catalog.watch must be true or false")
		}
		cfg.Catalog.Watch = b
	case "log.path":
		cfg.Log.Path = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
