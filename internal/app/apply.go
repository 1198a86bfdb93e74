// Package app implements resub's application-level operations: planning
// a rewrite run over a set of files, applying it, and reporting what
// happened. The cobra layer stays thin by delegating here.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/google/uuid"

	"github.com/chazuruo/resub/internal/config"
	"github.com/chazuruo/resub/internal/errors"
	"github.com/chazuruo/resub/internal/fileset"
	"github.com/chazuruo/resub/internal/rewrite"
	"github.com/chazuruo/resub/internal/rules"
)

// Options describes one rewrite run.
type Options struct {
	// RulesPath is the rules file. Empty means the configured default
	// filename in the working directory.
	RulesPath string

	// Paths are the files and directories to rewrite.
	Paths []string

	// Config is the tool configuration; nil means defaults.
	Config *config.Config

	// DryRun computes changes without writing anything.
	DryRun bool

	// OutDir, when non-empty, writes results under this directory
	// instead of in place, keyed by relative path.
	OutDir string

	// Include and Exclude override the configured path filters.
	Include string
	Exclude string
}

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.DefaultConfig()
}

func (o Options) rulesPath() string {
	if o.RulesPath != "" {
		return o.RulesPath
	}
	return o.config().Rules.Filename
}

// Change is one file's planned rewrite.
type Change struct {
	File   fileset.File
	Before string
	After  string
}

// Changed reports whether the rewrite altered the content.
func (c Change) Changed() bool {
	return c.Before != c.After
}

// Plan is the outcome of resolving rules and files, before any writing.
type Plan struct {
	// Rules is the parsed rules file.
	Rules *rules.File

	// RulesPath is where the rules came from.
	RulesPath string

	// Changes holds every considered text file with its before/after
	// content, unchanged files included.
	Changes []Change

	// SkippedBinary lists files dropped by the binary-content sniff.
	SkippedBinary []string
}

// ChangedCount returns the number of files the plan would alter.
func (p *Plan) ChangedCount() int {
	n := 0
	for _, c := range p.Changes {
		if c.Changed() {
			n++
		}
	}
	return n
}

// Prepare loads the rules file, compiles the pipeline, discovers the
// target files and computes every rewrite, without touching the
// filesystem beyond reads.
func Prepare(opts Options) (*Plan, error) {
	rulesPath := opts.rulesPath()
	f, err := rules.Load(rulesPath)
	if err != nil {
		return nil, err
	}

	pipeline, err := f.Compile()
	if err != nil {
		return nil, &errors.RulesError{Path: rulesPath, Err: err}
	}

	fsOpts, err := opts.filesetOptions()
	if err != nil {
		return nil, err
	}

	files, err := fileset.Collect(opts.Paths, fsOpts)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Rules: f, RulesPath: rulesPath}
	for _, file := range files {
		raw, err := file.Raw()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Relative, err)
		}
		if fileset.LooksBinary(raw) {
			plan.SkippedBinary = append(plan.SkippedBinary, file.Relative)
			continue
		}

		before := string(raw)
		after, err := rewrite.Apply(before, pipeline)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Relative, err)
		}
		plan.Changes = append(plan.Changes, Change{File: file, Before: before, After: after})
	}

	return plan, nil
}

func (o Options) filesetOptions() (fileset.Options, error) {
	cfg := o.config()

	include := cfg.Apply.Include
	if o.Include != "" {
		include = o.Include
	}
	exclude := cfg.Apply.Exclude
	if o.Exclude != "" {
		exclude = o.Exclude
	}

	var fsOpts fileset.Options
	fsOpts.MaxSize = cfg.Apply.MaxFileSize

	var err error
	if include != "" {
		if fsOpts.Include, err = regexp.Compile(include); err != nil {
			return fileset.Options{}, fmt.Errorf("include filter: %w", err)
		}
	}
	if exclude != "" {
		if fsOpts.Exclude, err = regexp.Compile(exclude); err != nil {
			return fileset.Options{}, fmt.Errorf("exclude filter: %w", err)
		}
	}
	return fsOpts, nil
}

// FileResult is one file's outcome in a report.
type FileResult struct {
	// Path is the file's relative path.
	Path string `json:"path"`

	// Changed reports whether the file was (or would be) rewritten.
	Changed bool `json:"changed"`

	// BytesBefore and BytesAfter are the content sizes around the
	// rewrite.
	BytesBefore int `json:"bytes_before"`
	BytesAfter  int `json:"bytes_after"`
}

// Report summarizes one rewrite run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// RulesPath is the rules file that drove the run.
	RulesPath string `json:"rules_path"`

	// DryRun reports whether writing was suppressed.
	DryRun bool `json:"dry_run"`

	// Files holds per-file outcomes, discovery order.
	Files []FileResult `json:"files"`

	// SkippedBinary lists files dropped by the binary sniff.
	SkippedBinary []string `json:"skipped_binary,omitempty"`
}

// ChangedCount returns the number of rewritten files.
func (r *Report) ChangedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

// Apply runs the full rewrite: plan, then write every changed file
// according to the output configuration. With DryRun set nothing is
// written and the report shows what would change.
func Apply(opts Options) (*Report, error) {
	plan, err := Prepare(opts)
	if err != nil {
		return nil, err
	}
	return Commit(plan, opts)
}

// Commit writes a previously computed plan and builds the run report.
func Commit(plan *Plan, opts Options) (*Report, error) {
	cfg := opts.config()

	if !opts.DryRun && opts.OutDir == "" && !cfg.Output.InPlace {
		return nil, fmt.Errorf("in-place writing is disabled by config; pass --out or --dry-run")
	}

	// Distinct inputs must land on distinct paths under --out; refusing
	// beats silently keeping only the last writer.
	if !opts.DryRun && opts.OutDir != "" {
		targets := make(map[string]string)
		for _, change := range plan.Changes {
			if !change.Changed() {
				continue
			}
			if prev, ok := targets[change.File.Base]; ok {
				return nil, fmt.Errorf("output collision under %s: %s and %s both write to %s",
					opts.OutDir, prev, change.File.Relative, change.File.Base)
			}
			targets[change.File.Base] = change.File.Relative
		}
	}

	report := &Report{
		RunID:         uuid.NewString(),
		RulesPath:     plan.RulesPath,
		DryRun:        opts.DryRun,
		SkippedBinary: plan.SkippedBinary,
	}

	for _, change := range plan.Changes {
		result := FileResult{
			Path:        change.File.Relative,
			Changed:     change.Changed(),
			BytesBefore: len(change.Before),
			BytesAfter:  len(change.After),
		}
		report.Files = append(report.Files, result)

		if opts.DryRun || !change.Changed() {
			continue
		}
		if err := writeChange(change, cfg, opts.OutDir); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func writeChange(change Change, cfg *config.Config, outDir string) error {
	target := change.File.Absolute
	perm := os.FileMode(0644)
	if info, err := os.Stat(change.File.Absolute); err == nil {
		perm = info.Mode().Perm()
	}

	if outDir != "" {
		target = filepath.Join(outDir, filepath.FromSlash(change.File.Base))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
	} else if cfg.Output.BackupSuffix != "" {
		backup := change.File.Absolute + cfg.Output.BackupSuffix
		if err := os.WriteFile(backup, []byte(change.Before), perm); err != nil {
			return fmt.Errorf("backup %s: %w", change.File.Relative, err)
		}
	}

	if err := os.WriteFile(target, []byte(change.After), perm); err != nil {
		return fmt.Errorf("write %s: %w", change.File.Relative, err)
	}
	return nil
}

// ApplyBuffer rewrites a single in-memory buffer with the given rules
// file, the stdin path through the CLI.
func ApplyBuffer(buffer, rulesPath string) (string, error) {
	f, err := rules.Load(rulesPath)
	if err != nil {
		return "", err
	}
	pipeline, err := f.Compile()
	if err != nil {
		return "", &errors.RulesError{Path: rulesPath, Err: err}
	}
	return rewrite.Apply(buffer, pipeline)
}
