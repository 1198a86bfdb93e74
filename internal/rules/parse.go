package rules

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chazuruo/resub/internal/errors"
)

// Parse unmarshals and validates a rules file from raw YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses a rules file from disk. Errors carry the path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.RulesError{Path: path, Err: err}
	}
	f, err := Parse(data)
	if err != nil {
		return nil, &errors.RulesError{Path: path, Err: err}
	}
	return f, nil
}

// LoadReader parses a rules file from an io.Reader. Useful for stdin.
func LoadReader(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &errors.RulesError{Err: err}
	}
	return Parse(data)
}

// Validate checks the parsed file for completeness: every stage needs a
// regex and a value, named functions must exist, and the stages form
// requires an explicit enable per stage.
func (f *File) Validate() error {
	if len(f.Stages) == 0 {
		return fmt.Errorf("rules file has no stages: %w", errors.ErrInvalid)
	}

	for i, sc := range f.Stages {
		if err := sc.validate(f.single); err != nil {
			return &errors.StageError{Index: i, Name: sc.Name, Err: err}
		}
	}
	return nil
}

func (sc StageConfig) validate(single bool) error {
	if !sc.Regex.set {
		return fmt.Errorf("regex is required: %w", errors.ErrPatternType)
	}
	if !sc.Value.set {
		return fmt.Errorf("value is required: %w", errors.ErrValueType)
	}
	if !single && sc.Enable == nil {
		return fmt.Errorf("enable is required in the stages form: %w", errors.ErrInvalid)
	}
	if _, err := sc.Value.resolve(); err != nil {
		return err
	}
	return nil
}

// Warnings returns non-fatal findings about the file, currently flags
// declared on a pass-through pattern, where they have no effect.
func (f *File) Warnings() []string {
	var warnings []string
	for i, sc := range f.Stages {
		if sc.Flags != "" && !sc.Regex.Compiled() {
			warnings = append(warnings, fmt.Sprintf("stage %d: flags %q are ignored for a plain string regex; use the pattern mapping form", i, sc.Flags))
		}
	}
	return warnings
}
