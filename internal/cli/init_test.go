// Package cli provides tests for CLI commands.
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazuruo/resub/internal/config"
	"github.com/chazuruo/resub/internal/rules"
)

// TestInitNonInteractive_WritesRulesAndConfig verifies that init writes a
// loadable rules file and scaffolds the tool configuration when none
// exists at the configured path.
func TestInitNonInteractive_WritesRulesAndConfig(t *testing.T) {
	tmpDir := t.TempDir()
	rulesPath := filepath.Join(tmpDir, "strip.resub.yaml")
	configPath := filepath.Join(tmpDir, "config.toml")

	opts := &InitOptions{
		ConfigPath:  configPath,
		Output:      rulesPath,
		Description: "strip digits",
		Name:        "strip-digits",
		Regex:       "[0-9]+",
		Value:       "#",
	}

	if err := runInitNonInteractive(opts); err != nil {
		t.Fatalf("runInitNonInteractive() error = %v", err)
	}

	// The rules file must load and compile.
	f, err := rules.Load(rulesPath)
	if err != nil {
		t.Fatalf("rules.Load() error = %v", err)
	}
	if len(f.Stages) != 1 || !f.Stages[0].Enabled() {
		t.Errorf("expected one enabled stage, got %+v", f.Stages)
	}
	if _, err := f.Compile(); err != nil {
		t.Errorf("Compile() error = %v", err)
	}

	// The config was scaffolded with defaults.
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if cfg.Rules.Filename != ".resub.yaml" {
		t.Errorf("config.Rules.Filename = %s, want .resub.yaml", cfg.Rules.Filename)
	}
}

// TestInitNonInteractive_KeepsExistingConfig verifies that init never
// overwrites a config file that is already present.
func TestInitNonInteractive_KeepsExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	custom := config.DefaultConfig()
	custom.Rules.Filename = "custom.yaml"
	if err := config.Write(configPath, custom); err != nil {
		t.Fatalf("config.Write() error = %v", err)
	}

	opts := &InitOptions{
		ConfigPath: configPath,
		Output:     filepath.Join(tmpDir, "rules.yaml"),
		Regex:      "a",
		Value:      "b",
	}
	if err := runInitNonInteractive(opts); err != nil {
		t.Fatalf("runInitNonInteractive() error = %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if cfg.Rules.Filename != "custom.yaml" {
		t.Errorf("config.Rules.Filename = %s, want custom.yaml (existing config must survive init)", cfg.Rules.Filename)
	}
}

// TestInitNonInteractive_RefusesOverwrite verifies that init never
// clobbers an existing rules file.
func TestInitNonInteractive_RefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	rulesPath := filepath.Join(tmpDir, "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte("regex: a\nvalue: b\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	opts := &InitOptions{
		ConfigPath: filepath.Join(tmpDir, "config.toml"),
		Output:     rulesPath,
		Regex:      "x",
		Value:      "y",
	}
	if err := runInitNonInteractive(opts); err == nil {
		t.Error("runInitNonInteractive() should refuse to overwrite an existing rules file")
	}
}

// TestInitNonInteractive_FlagValidation verifies the required-flag and
// mutual-exclusion checks.
func TestInitNonInteractive_FlagValidation(t *testing.T) {
	tests := []struct {
		name string
		opts InitOptions
	}{
		{"missing regex", InitOptions{Value: "x"}},
		{"missing value", InitOptions{Regex: "a"}},
		{"value and func", InitOptions{Regex: "a", Value: "x", Func: "upper"}},
		{"bad regex", InitOptions{Regex: "(", Value: "x"}},
		{"unknown func", InitOptions{Regex: "a", Func: "reverse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runInitNonInteractive(&tt.opts); err == nil {
				t.Error("runInitNonInteractive() should fail")
			}
		})
	}
}
