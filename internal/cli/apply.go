// Package cli provides Cobra command definitions for resub.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazuruo/resub/internal/app"
)

// ApplyOptions contains the options for the apply command.
type ApplyOptions struct {
	ConfigPath string
	RulesPath  string
	Stdin      bool
	DryRun     bool
	OutDir     string
	Include    string
	Exclude    string
	Format     string
}

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	opts := &ApplyOptions{}

	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Apply a rewrite pipeline to files or stdin",
		Long: `Apply the rules file's rewrite pipeline to the given files and
directories. Directories are walked recursively; binary files are
skipped.

With --stdin the pipeline rewrites standard input to standard output
instead, and no files are touched.

Examples:
  resub apply src/                  # rewrite everything under src/ in place
  resub apply --dry-run .           # show what would change
  resub apply --out build/ docs/    # write results under build/
  cat notes.txt | resub apply --stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.RulesPath, "rules", "", "rules file path (default: configured filename)")
	cmd.Flags().BoolVar(&opts.Stdin, "stdin", false, "rewrite standard input to standard output")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "compute changes without writing anything")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "write results under this directory instead of in place")
	cmd.Flags().StringVar(&opts.Include, "include", "", "only rewrite paths matching this regex")
	cmd.Flags().StringVar(&opts.Exclude, "exclude", "", "skip paths matching this regex")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runApply(opts *ApplyOptions, args []string) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Stdin {
		return runApplyStdin(opts, cfg.Rules.Filename)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	report, err := app.Apply(app.Options{
		RulesPath: opts.RulesPath,
		Paths:     paths,
		Config:    cfg,
		DryRun:    opts.DryRun,
		OutDir:    opts.OutDir,
		Include:   opts.Include,
		Exclude:   opts.Exclude,
	})
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatTable:
		printReportTable(report)
	case FormatJSON:
		return printReportJSON(report)
	case FormatPlain:
		printReportPlain(report)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or plain)", opts.Format)
	}

	return nil
}

// runApplyStdin rewrites stdin to stdout. Reports and formats do not
// apply here; the rewritten buffer is the output.
func runApplyStdin(opts *ApplyOptions, defaultRules string) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	rulesPath := opts.RulesPath
	if rulesPath == "" {
		rulesPath = defaultRules
	}

	out, err := app.ApplyBuffer(string(data), rulesPath)
	if err != nil {
		return err
	}

	_, err = io.WriteString(os.Stdout, out)
	return err
}
