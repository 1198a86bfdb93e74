// Package config provides configuration management for resub.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. ~/.config/resub/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "resub", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file contents
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse TOML
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		// No config file found, return defaults
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)

		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: RESUB_<SECTION>_<FIELD>
//
// Examples:
// - RESUB_RULES_FILENAME overrides [rules].filename
// - RESUB_APPLY_EXCLUDE overrides [apply].exclude
// - RESUB_OUTPUT_IN_PLACE overrides [output].in_place
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	// Helper to lookup and apply string override
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	// Helper to lookup and apply bool override
	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// Helper to lookup and apply int override
	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			if i, err := strconv.Atoi(val); err == nil {
				*target = i
			}
		}
	}

	// Helper to lookup and apply int64 override
	applyInt64 := func(key string, target *int64) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			if i, err := strconv.ParseInt(val, 10, 64); err == nil {
				*target = i
			}
		}
	}

	// Rules section
	applyString("RESUB_RULES_FILENAME", &c.Rules.Filename)

	// Output section
	applyBool("RESUB_OUTPUT_IN_PLACE", &c.Output.InPlace)
	applyString("RESUB_OUTPUT_BACKUP_SUFFIX", &c.Output.BackupSuffix)

	// Apply section
	applyString("RESUB_APPLY_INCLUDE", &c.Apply.Include)
	applyString("RESUB_APPLY_EXCLUDE", &c.Apply.Exclude)
	applyInt64("RESUB_APPLY_MAX_FILE_SIZE", &c.Apply.MaxFileSize)

	// Preview section
	applyInt("RESUB_PREVIEW_CONTEXT_LINES", &c.Preview.ContextLines)
	applyBool("RESUB_PREVIEW_COLOR", &c.Preview.Color)
}
