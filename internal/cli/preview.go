// Package cli provides Cobra command definitions for resub.
package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chazuruo/resub/internal/app"
	"github.com/chazuruo/resub/internal/tui"
)

// PreviewOptions contains the options for the preview command.
type PreviewOptions struct {
	ConfigPath string
	RulesPath  string
	OutDir     string
	Include    string
	Exclude    string
}

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	opts := &PreviewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [paths...]",
		Short: "Interactively review pending rewrites before committing",
		Long: `Compute every pending rewrite and open an interactive picker to
review them. Deselect files to leave them untouched, then confirm to
write the rest.

With --no-tui the pending rewrites are printed and nothing is written;
use 'resub apply' to commit them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.RulesPath, "rules", "", "rules file path (default: configured filename)")
	cmd.Flags().StringVar(&opts.OutDir, "out", "", "write results under this directory instead of in place")
	cmd.Flags().StringVar(&opts.Include, "include", "", "only rewrite paths matching this regex")
	cmd.Flags().StringVar(&opts.Exclude, "exclude", "", "skip paths matching this regex")

	return cmd
}

func runPreview(opts *PreviewOptions, args []string) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	appOpts := app.Options{
		RulesPath: opts.RulesPath,
		Paths:     paths,
		Config:    cfg,
		OutDir:    opts.OutDir,
		Include:   opts.Include,
		Exclude:   opts.Exclude,
	}

	plan, err := app.Prepare(appOpts)
	if err != nil {
		return err
	}

	var changes []tui.FileChange
	for _, c := range plan.Changes {
		if !c.Changed() {
			continue
		}
		changes = append(changes, tui.FileChange{
			Path:   c.File.Relative,
			Before: c.Before,
			After:  c.After,
		})
	}

	if len(changes) == 0 {
		fmt.Println("Nothing to rewrite.")
		return nil
	}

	if IsNoTUI() {
		return printPreviewPlain(changes, cfg.Preview.ContextLines, cfg.Preview.Color)
	}

	model := tui.NewPreviewModel(changes)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	result, ok := final.(tui.PreviewModel)
	if !ok || !result.Confirmed {
		fmt.Println("Aborted; nothing written.")
		return nil
	}

	selected := make(map[string]bool, len(changes))
	for _, path := range result.SelectedPaths() {
		selected[path] = true
	}
	if len(selected) == 0 {
		fmt.Println("No files selected; nothing written.")
		return nil
	}

	// Commit only the selected subset.
	kept := plan.Changes[:0]
	for _, c := range plan.Changes {
		if c.Changed() && selected[c.File.Relative] {
			kept = append(kept, c)
		}
	}
	plan.Changes = kept

	report, err := app.Commit(plan, appOpts)
	if err != nil {
		return err
	}

	fmt.Printf("✓ %d file(s) rewritten\n", report.ChangedCount())
	return nil
}

// printPreviewPlain lists pending rewrites without writing anything,
// showing up to contextLines differing lines per file.
func printPreviewPlain(changes []tui.FileChange, contextLines int, color bool) error {
	for _, c := range changes {
		fmt.Printf("* %s (%d -> %d bytes)\n", c.Path, len(c.Before), len(c.After))
		for _, line := range diffLines(c.Before, c.After, contextLines) {
			if color {
				line = dimStyle.Render(line)
			}
			fmt.Println("  " + line)
		}
	}
	fmt.Printf("Total: %d file(s) would be rewritten; run 'resub apply' to commit\n", len(changes))
	return nil
}

// diffLines pairs up differing lines of before and after, at most n pairs.
func diffLines(before, after string, n int) []string {
	if n <= 0 {
		return nil
	}

	beforeLines := strings.Split(before, "\n")
	afterLines := strings.Split(after, "\n")

	var out []string
	for i := 0; i < len(beforeLines) || i < len(afterLines); i++ {
		var b, a string
		if i < len(beforeLines) {
			b = beforeLines[i]
		}
		if i < len(afterLines) {
			a = afterLines[i]
		}
		if b == a {
			continue
		}
		out = append(out, "- "+b, "+ "+a)
		if len(out) >= 2*n {
			out = append(out, "...")
			break
		}
	}
	return out
}
