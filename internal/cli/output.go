// Package cli provides Cobra command definitions for resub.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/chazuruo/resub/internal/app"
	"github.com/chazuruo/resub/internal/rules"
)

// OutputFormat defines the output format for reporting commands.
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatPlain OutputFormat = "plain"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

func newTable(cols ...interface{}) table.Table {
	tbl := table.New(cols...)
	if !IsNoTUI() {
		tbl = tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return headerStyle.Render(fmt.Sprintf(format, vals...))
		})
	}
	return tbl
}

// printReportTable prints a run report in table format.
func printReportTable(report *app.Report) {
	if len(report.Files) == 0 {
		fmt.Println("No files matched.")
		return
	}

	tbl := newTable("FILE", "STATUS", "BYTES")
	for _, f := range report.Files {
		status := "unchanged"
		if f.Changed {
			status = "rewritten"
			if report.DryRun {
				status = "would rewrite"
			}
			if !IsNoTUI() {
				status = changedStyle.Render(status)
			}
		}
		tbl.AddRow(f.Path, status, fmt.Sprintf("%d -> %d", f.BytesBefore, f.BytesAfter))
	}
	tbl.Print()

	for _, skipped := range report.SkippedBinary {
		fmt.Println(dimStyle.Render(fmt.Sprintf("skipped binary: %s", skipped)))
	}

	verdict := fmt.Sprintf("\n%d of %d file(s) changed", report.ChangedCount(), len(report.Files))
	if report.DryRun {
		verdict += " (dry run)"
	}
	fmt.Println(verdict)
}

// printReportJSON prints a run report as indented JSON.
func printReportJSON(report *app.Report) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// printReportPlain prints a run report in plain text format.
func printReportPlain(report *app.Report) {
	for _, f := range report.Files {
		marker := " "
		if f.Changed {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, f.Path)
	}
	fmt.Printf("Total: %d changed, %d unchanged, %d binary skipped\n",
		report.ChangedCount(), len(report.Files)-report.ChangedCount(), len(report.SkippedBinary))
}

// stageRows turns a rules file into display rows shared by list and check.
func stageRows(f *rules.File) [][]string {
	var rows [][]string
	for i, stage := range f.Stages {
		name := stage.Name
		if name == "" {
			name = "-"
		}
		enabled := "no"
		if stage.Enabled() || f.Single() {
			enabled = "yes"
		}
		flags := stage.Flags
		if flags == "" {
			flags = "-"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			name,
			enabled,
			truncate(stage.Regex.String(), 40),
			flags,
			truncate(stage.Value.String(), 30),
		})
	}
	return rows
}

// printStagesTable prints the stages of a rules file in table format.
func printStagesTable(f *rules.File) {
	if len(f.Stages) == 0 {
		fmt.Println("No stages defined.")
		return
	}

	tbl := newTable("#", "NAME", "ENABLED", "REGEX", "FLAGS", "VALUE")
	for _, row := range stageRows(f) {
		cells := make([]interface{}, len(row))
		for i, c := range row {
			cells[i] = c
		}
		tbl.AddRow(cells...)
	}
	tbl.Print()

	if f.Description != "" {
		fmt.Printf("\n%s\n", f.Description)
	}
	fmt.Printf("\nTotal: %d stage(s)\n", len(f.Stages))
}

// printStagesPlain prints the stages of a rules file in plain text format.
func printStagesPlain(f *rules.File) {
	for _, row := range stageRows(f) {
		fmt.Printf("%s. %s\n", row[0], row[1])
		fmt.Printf("   Enabled: %s\n", row[2])
		fmt.Printf("   Regex: %s\n", row[3])
		if row[4] != "-" {
			fmt.Printf("   Flags: %s\n", row[4])
		}
		fmt.Printf("   Value: %s\n", row[5])
		fmt.Println()
	}
	fmt.Printf("Total: %d stage(s)\n", len(f.Stages))
}

// printStagesJSON prints the stages of a rules file as indented JSON.
func printStagesJSON(f *rules.File) error {
	type jsonStage struct {
		Name    string `json:"name,omitempty"`
		Enabled bool   `json:"enabled"`
		Regex   string `json:"regex"`
		Flags   string `json:"flags,omitempty"`
		Value   string `json:"value"`
	}

	out := struct {
		Description string      `json:"description,omitempty"`
		Stages      []jsonStage `json:"stages"`
	}{Description: f.Description}

	for _, stage := range f.Stages {
		out.Stages = append(out.Stages, jsonStage{
			Name:    stage.Name,
			Enabled: stage.Enabled() || f.Single(),
			Regex:   stage.Regex.String(),
			Flags:   stage.Flags,
			Value:   stage.Value.String(),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// truncate shortens s to at most n runes for table cells.
func truncate(s string, n int) string {
	if n <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-3])) + "..."
}
