// Package config provides configuration management for resub.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"regexp"
)

// Config is the top-level configuration struct for resub.
// It contains all configuration sections as embedded structs.
type Config struct {
	Rules   RulesConfig   `toml:"rules"`
	Output  OutputConfig  `toml:"output"`
	Apply   ApplyConfig   `toml:"apply"`
	Preview PreviewConfig `toml:"preview"`
}

// RulesConfig contains rules-file discovery settings.
type RulesConfig struct {
	// Filename is the rules file resub looks for when --rules is not
	// given, resolved relative to the working directory.
	Filename string `toml:"filename"`
}

// OutputConfig contains settings for writing rewritten files.
type OutputConfig struct {
	// InPlace controls whether apply writes results back to the source
	// files by default (otherwise --out or --dry-run is required).
	InPlace bool `toml:"in_place"`

	// BackupSuffix, when non-empty, saves the original content next to
	// each rewritten file under name+suffix (e.g. ".orig").
	BackupSuffix string `toml:"backup_suffix"`
}

// ApplyConfig contains file-selection settings for apply and preview.
type ApplyConfig struct {
	// Include is a regex on repo-relative paths; when set, only matching
	// files are considered.
	Include string `toml:"include"`

	// Exclude is a regex on repo-relative paths; matching files are
	// skipped.
	Exclude string `toml:"exclude"`

	// MaxFileSize is the largest file, in bytes, apply will touch.
	// Zero means no limit.
	MaxFileSize int64 `toml:"max_file_size"`
}

// PreviewConfig contains terminal preview settings.
type PreviewConfig struct {
	// ContextLines is the number of differing line pairs shown per file
	// in plain preview output.
	ContextLines int `toml:"context_lines"`

	// Color controls styled output.
	Color bool `toml:"color"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			Filename: ".resub.yaml",
		},
		Output: OutputConfig{
			InPlace:      true,
			BackupSuffix: "",
		},
		Apply: ApplyConfig{
			Include:     "",
			Exclude:     `(^|/)\.git/`,
			MaxFileSize: 10 << 20,
		},
		Preview: PreviewConfig{
			ContextLines: 3,
			Color:        true,
		},
	}
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	if c.Rules.Filename == "" {
		return fmt.Errorf("rules.filename cannot be empty")
	}

	if c.Apply.Include != "" {
		if _, err := regexp.Compile(c.Apply.Include); err != nil {
			return fmt.Errorf("apply.include is not a valid regex: %w", err)
		}
	}
	if c.Apply.Exclude != "" {
		if _, err := regexp.Compile(c.Apply.Exclude); err != nil {
			return fmt.Errorf("apply.exclude is not a valid regex: %w", err)
		}
	}
	if c.Apply.MaxFileSize < 0 {
		return fmt.Errorf("apply.max_file_size must be >= 0; got %d", c.Apply.MaxFileSize)
	}

	if c.Preview.ContextLines < 0 {
		return fmt.Errorf("preview.context_lines must be >= 0; got %d", c.Preview.ContextLines)
	}

	return nil
}
