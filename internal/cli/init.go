// Package cli provides Cobra command definitions for resub.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazuruo/resub/internal/config"
	"github.com/chazuruo/resub/internal/rules"
)

// InitOptions contains the options for the init command.
type InitOptions struct {
	ConfigPath string
	Output     string

	// Scriptable/flag options for --no-tui mode
	Description string
	Name        string
	Regex       string
	Compiled    bool
	Flags       string
	Value       string
	Func        string
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new rules file",
		Long: `Scaffold a new rules file with a first stage.

The init command guides you through describing the pipeline:
- A short description
- The first stage's regex (plain string or precompiled with flags)
- The replacement (a template string or a built-in function)

When no tool configuration exists yet, a default config file is
written alongside the rules file.

Use --no-tui with flags for scripted setup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.Output, "output", "", "rules file to write (default: derived from the description)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "pipeline description")
	cmd.Flags().StringVar(&opts.Name, "name", "", "first stage name")
	cmd.Flags().StringVar(&opts.Regex, "regex", "", "first stage regex")
	cmd.Flags().BoolVar(&opts.Compiled, "compiled", false, "use the precompiled pattern form")
	cmd.Flags().StringVar(&opts.Flags, "flags", "", "regex flags for the precompiled form (i, m, s, U)")
	cmd.Flags().StringVar(&opts.Value, "value", "", "replacement template string")
	cmd.Flags().StringVar(&opts.Func, "func", "", "built-in replacement function instead of a template")

	return cmd
}

func runInit(opts *InitOptions) error {
	if IsNoTUI() {
		return runInitNonInteractive(opts)
	}
	return runInitInteractive(opts)
}

// runInitInteractive runs the init wizard with TUI.
func runInitInteractive(opts *InitOptions) error {
	var (
		description string
		stageName   string
		regexForm   string // "plain" or "compiled"
		pattern     string
		flags       string
		valueForm   string // "literal" or "func"
		literal     string
		funcName    string
	)

	// Step 1: Description
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Description("What does this pipeline do?").
				Value(&description).Placeholder("strip trailing whitespace"),
		),
	).Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	// Step 2: Pattern
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stage name").
				Description("Optional label used in errors and reports").
				Value(&stageName),
			huh.NewSelect[string]().
				Title("Pattern form").
				Options(
					huh.NewOption("Plain string (compiled on every run)", "plain"),
					huh.NewOption("Precompiled, with optional flags", "compiled"),
				).
				Value(&regexForm),
			huh.NewInput().
				Title("Regex").
				Value(&pattern).Placeholder(`[ \t]+$`).
				Validate(func(s string) error {
					_, err := regexp.Compile(s)
					return err
				}),
		),
	).Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	if regexForm == "compiled" {
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Flags").
					Description("Any of i, m, s, U; leave empty for none").
					Value(&flags),
			),
		).Run(); err != nil {
			return fmt.Errorf("form error: %w", err)
		}
	}

	// Step 3: Replacement
	funcOptions := make([]huh.Option[string], 0, len(rules.FuncNames()))
	for _, name := range rules.FuncNames() {
		funcOptions = append(funcOptions, huh.NewOption(name, name))
	}

	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Replacement form").
				Options(
					huh.NewOption("Template string ($1 expands capture 1)", "literal"),
					huh.NewOption("Built-in function", "func"),
				).
				Value(&valueForm),
		),
	).Run(); err != nil {
		return fmt.Errorf("form error: %w", err)
	}

	if valueForm == "func" {
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Function").
					Options(funcOptions...).
					Value(&funcName),
			),
		).Run(); err != nil {
			return fmt.Errorf("form error: %w", err)
		}
	} else {
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Replacement").
					Value(&literal),
			),
		).Run(); err != nil {
			return fmt.Errorf("form error: %w", err)
		}
	}

	path := rulesFilePath(opts, description)
	doc := buildRulesDoc(description, stageName, pattern, regexForm == "compiled", flags, literal, funcName)

	if err := writeRulesDoc(path, doc); err != nil {
		return err
	}

	configPath := getConfigPath(opts.ConfigPath)
	wroteConfig, err := scaffoldConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Println("\n✓ Rules file written!")
	fmt.Printf("  File: %s\n", path)
	if wroteConfig {
		fmt.Printf("  Config: %s\n", configPath)
	}
	fmt.Println("\nTry 'resub check --rules " + path + "' to verify.")

	return nil
}

// runInitNonInteractive runs init in non-TUI mode using flags.
func runInitNonInteractive(opts *InitOptions) error {
	if opts.Regex == "" {
		return fmt.Errorf("--regex is required in non-interactive mode")
	}
	if opts.Value == "" && opts.Func == "" {
		return fmt.Errorf("--value or --func is required in non-interactive mode")
	}
	if opts.Value != "" && opts.Func != "" {
		return fmt.Errorf("--value and --func are mutually exclusive")
	}
	if _, err := regexp.Compile(opts.Regex); err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	if opts.Func != "" {
		if _, ok := rules.Lookup(opts.Func); !ok {
			return fmt.Errorf("unknown function %q (available: %s)", opts.Func, strings.Join(rules.FuncNames(), ", "))
		}
	}

	path := rulesFilePath(opts, opts.Description)
	doc := buildRulesDoc(opts.Description, opts.Name, opts.Regex, opts.Compiled || opts.Flags != "", opts.Flags, opts.Value, opts.Func)

	if err := writeRulesDoc(path, doc); err != nil {
		return err
	}

	configPath := getConfigPath(opts.ConfigPath)
	wroteConfig, err := scaffoldConfig(configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Rules file written to: %s\n", path)
	if wroteConfig {
		fmt.Printf("Configuration written to: %s\n", configPath)
	}
	return nil
}

// rulesDoc is the YAML shape init writes: always the stages form, so the
// file is ready to grow.
type rulesDoc struct {
	Description string     `yaml:"description,omitempty"`
	Stages      []stageDoc `yaml:"stages"`
}

type stageDoc struct {
	Name   string `yaml:"name,omitempty"`
	Enable bool   `yaml:"enable"`
	Regex  any    `yaml:"regex"`
	Flags  string `yaml:"flags,omitempty"`
	Value  any    `yaml:"value"`
}

func buildRulesDoc(description, name, pattern string, compiled bool, flags, literal, funcName string) rulesDoc {
	stage := stageDoc{Name: name, Enable: true}

	if compiled {
		stage.Regex = map[string]string{"pattern": pattern}
		stage.Flags = flags
	} else {
		stage.Regex = pattern
	}

	if funcName != "" {
		stage.Value = map[string]string{"func": funcName}
	} else {
		stage.Value = literal
	}

	return rulesDoc{Description: description, Stages: []stageDoc{stage}}
}

func writeRulesDoc(path string, doc rulesDoc) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing %s", path)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	return nil
}

// scaffoldConfig writes the default tool configuration to path when no
// file exists there yet. It reports whether a file was written.
func scaffoldConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := config.Write(path, config.DefaultConfig()); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// getConfigPath returns the config file path.
func getConfigPath(override string) string {
	if override != "" {
		return override
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "resub", "config.toml")
}

// rulesFilePath picks the output path: the explicit flag, a slug of the
// description, or the configured default filename.
func rulesFilePath(opts *InitOptions, description string) string {
	if opts.Output != "" {
		return opts.Output
	}
	if slug := Slugify(description); slug != "" {
		return slug + ".resub.yaml"
	}
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return ".resub.yaml"
	}
	return cfg.Rules.Filename
}
