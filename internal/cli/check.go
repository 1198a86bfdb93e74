// Package cli provides Cobra command definitions for resub.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazuruo/resub/internal/rules"
)

// CheckOptions contains the options for the check command.
type CheckOptions struct {
	ConfigPath string
	RulesPath  string
}

// NewCheckCommand creates the check command for validating a rules file.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a rules file without rewriting anything",
		Long: `Parse and validate a rules file: every stage must carry a usable
regex and value, named replacement functions must exist, and the
pipeline must compile. Non-fatal findings are printed as warnings.

Pass --rules - to read the rules from standard input, e.g. to vet a
file before saving it.

Exits non-zero when the rules are invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.RulesPath, "rules", "", "rules file path, or - for stdin (default: configured filename)")

	return cmd
}

func runCheck(opts *CheckOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rulesPath := opts.RulesPath
	if rulesPath == "" {
		rulesPath = cfg.Rules.Filename
	}

	var f *rules.File
	if rulesPath == "-" {
		f, err = rules.LoadReader(os.Stdin)
		rulesPath = "stdin"
	} else {
		f, err = rules.Load(rulesPath)
	}
	if err != nil {
		fmt.Println(errorStyle.Render("✗ rules file is invalid"))
		return err
	}

	if _, err := f.Compile(); err != nil {
		fmt.Println(errorStyle.Render("✗ rules file does not compile"))
		return err
	}

	fmt.Printf("✓ %s is valid\n\n", rulesPath)
	printStagesTable(f)

	for _, warning := range f.Warnings() {
		fmt.Println(dimStyle.Render("warning: " + warning))
	}

	return nil
}
