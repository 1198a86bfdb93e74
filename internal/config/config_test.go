package config

import (
	"testing"
)

// TestDefaultConfig verifies that default values are correctly set.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  any
		want any
	}{
		// Rules section defaults
		{"rules.filename", cfg.Rules.Filename, ".resub.yaml"},

		// Output section defaults
		{"output.in_place", cfg.Output.InPlace, true},
		{"output.backup_suffix", cfg.Output.BackupSuffix, ""},

		// Apply section defaults
		{"apply.include", cfg.Apply.Include, ""},
		{"apply.exclude", cfg.Apply.Exclude, `(^|/)\.git/`},
		{"apply.max_file_size", cfg.Apply.MaxFileSize, int64(10 << 20)},

		// Preview section defaults
		{"preview.context_lines", cfg.Preview.ContextLines, 3},
		{"preview.color", cfg.Preview.Color, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

// TestValidate_Defaults verifies the default config passes validation.
func TestValidate_Defaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

// TestValidate_Invalid verifies that bad values are rejected.
func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty rules filename", func(c *Config) { c.Rules.Filename = "" }},
		{"bad include regex", func(c *Config) { c.Apply.Include = "(" }},
		{"bad exclude regex", func(c *Config) { c.Apply.Exclude = "[" }},
		{"negative max file size", func(c *Config) { c.Apply.MaxFileSize = -1 }},
		{"negative context lines", func(c *Config) { c.Preview.ContextLines = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should have returned an error")
			}
		})
	}
}
