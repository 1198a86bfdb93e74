// Package cli provides Cobra command definitions for resub.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/resub/internal/rules"
)

// ListOptions contains the options for the list command.
type ListOptions struct {
	ConfigPath string
	RulesPath  string
	Format     string
}

// NewListCommand creates the list command for showing pipeline stages.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stages of a rules file",
		Long: `List the stages of a rules file in execution order.

Examples:
  resub list                  # stages of the default rules file
  resub list --rules sub.yaml # stages of a specific file
  resub list --format json    # stages in JSON format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.RulesPath, "rules", "", "rules file path (default: configured filename)")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table, json, plain)")

	return cmd
}

func runList(opts *ListOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rulesPath := opts.RulesPath
	if rulesPath == "" {
		rulesPath = cfg.Rules.Filename
	}

	f, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}

	switch OutputFormat(opts.Format) {
	case FormatTable:
		printStagesTable(f)
	case FormatJSON:
		return printStagesJSON(f)
	case FormatPlain:
		printStagesPlain(f)
	default:
		return fmt.Errorf("invalid format: %s (must be table, json, or plain)", opts.Format)
	}

	return nil
}
