// Package rules defines the declarative rules file format for rewrite
// pipelines and compiles it into the engine's form.
//
// A rules file is YAML, in one of two shapes: a single-stage shorthand
// (top-level regex/value, always active), or a multi-stage form with an
// ordered stages list where each stage carries an explicit enable flag.
package rules

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/chazuruo/resub/internal/errors"
	"github.com/chazuruo/resub/internal/rewrite"
)

// File is a parsed rules file.
type File struct {
	// Description is an optional human-readable summary.
	Description string

	// Stages holds the stage configurations in execution order. In the
	// single-stage shorthand this has exactly one entry.
	Stages []StageConfig

	single bool
}

// Single reports whether the file used the single-stage shorthand.
// Shorthand pipelines are always active regardless of any enable field.
func (f *File) Single() bool {
	return f.single
}

// fileDoc is the raw YAML shape: either a stages list, or the fields of
// one stage inlined at the top level.
type fileDoc struct {
	Description string        `yaml:"description"`
	Stages      []StageConfig `yaml:"stages"`
	StageConfig `yaml:",inline"`
}

// UnmarshalYAML implements yaml.Unmarshaler, normalizing both file shapes
// into a stage list.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	var doc fileDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}

	f.Description = doc.Description

	if len(doc.Stages) > 0 {
		if doc.StageConfig.Regex.set || doc.StageConfig.Value.set {
			return fmt.Errorf("line %d: cannot combine stages with a top-level regex/value: %w", node.Line, errors.ErrInvalid)
		}
		f.Stages = doc.Stages
		f.single = false
		return nil
	}

	// Single-stage shorthand; the enable field is ignored here.
	f.Stages = []StageConfig{doc.StageConfig}
	f.single = true
	return nil
}

// StageConfig is one configured stage as written in a rules file.
type StageConfig struct {
	// Name is an optional stage label for errors and reports.
	Name string `yaml:"name,omitempty"`

	// Enable gates the stage. Required in the stages form; ignored in the
	// single-stage shorthand.
	Enable *bool `yaml:"enable,omitempty"`

	// Regex is the pattern: a scalar pattern source, or a mapping with a
	// pattern key for the compiled form.
	Regex RegexConfig `yaml:"regex"`

	// Flags recompile a compiled-form pattern (i, m, s, U; g is accepted
	// and ignored). They have no effect on the scalar form.
	Flags string `yaml:"flags,omitempty"`

	// Value is the replacement: a scalar template string, or a mapping
	// with a func key naming a built-in replacement function.
	Value ValueConfig `yaml:"value"`
}

// Enabled reports the effective enable state of the stage.
func (sc StageConfig) Enabled() bool {
	return sc.Enable != nil && *sc.Enable
}

// RegexConfig is the polymorphic regex field of a stage. Exactly one of
// the two accepted forms is populated after unmarshaling.
type RegexConfig struct {
	source   string
	compiled *regexp.Regexp
	set      bool
}

// UnmarshalYAML implements yaml.Unmarshaler. A string scalar becomes the
// pass-through source form; a {pattern: ...} mapping is compiled up
// front. Every other node kind is rejected with ErrPatternType.
func (r *RegexConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return fmt.Errorf("line %d: regex must be a string or a pattern mapping, got %s: %w", node.Line, node.Tag, errors.ErrPatternType)
		}
		r.source = node.Value
		r.set = true
		return nil

	case yaml.MappingNode:
		var m struct {
			Pattern string `yaml:"pattern"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		if m.Pattern == "" {
			return fmt.Errorf("line %d: pattern mapping requires a pattern key: %w", node.Line, errors.ErrPatternType)
		}
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		r.compiled = re
		r.set = true
		return nil

	default:
		return fmt.Errorf("line %d: regex must be a string or a pattern mapping: %w", node.Line, errors.ErrPatternType)
	}
}

// Compiled reports whether the compiled-pattern form was used, the only
// form stage flags apply to.
func (r RegexConfig) Compiled() bool {
	return r.compiled != nil
}

// String returns the pattern source for display.
func (r RegexConfig) String() string {
	if r.compiled != nil {
		return r.compiled.String()
	}
	return r.source
}

// pattern resolves the field into the engine's pattern form. Unset
// fields resolve to nil, which the engine rejects.
func (r RegexConfig) pattern() rewrite.Pattern {
	switch {
	case r.compiled != nil:
		return rewrite.Compiled(r.compiled)
	case r.set:
		return rewrite.Source(r.source)
	default:
		return nil
	}
}

// ValueConfig is the polymorphic value field of a stage: a literal
// template string, or a named built-in replacement function.
type ValueConfig struct {
	literal  string
	isFunc   bool
	funcName string
	set      bool
}

// UnmarshalYAML implements yaml.Unmarshaler. A string scalar becomes a
// literal template; a {func: name} mapping names a built-in function.
// Every other node kind is rejected with ErrValueType.
func (v *ValueConfig) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag != "!!str" {
			return fmt.Errorf("line %d: value must be a string or a func mapping, got %s: %w", node.Line, node.Tag, errors.ErrValueType)
		}
		v.literal = node.Value
		v.set = true
		return nil

	case yaml.MappingNode:
		var m struct {
			Func string `yaml:"func"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		if m.Func == "" {
			return fmt.Errorf("line %d: func mapping requires a func key: %w", node.Line, errors.ErrValueType)
		}
		v.isFunc = true
		v.funcName = m.Func
		v.set = true
		return nil

	default:
		return fmt.Errorf("line %d: value must be a string or a func mapping: %w", node.Line, errors.ErrValueType)
	}
}

// Func reports whether the named-function form was used, and the name.
func (v ValueConfig) Func() (string, bool) {
	return v.funcName, v.isFunc
}

// String returns the value for display.
func (v ValueConfig) String() string {
	if v.isFunc {
		return "func:" + v.funcName
	}
	return v.literal
}

// resolve turns the field into the engine's value form.
func (v ValueConfig) resolve() (rewrite.Value, error) {
	if !v.set {
		return nil, errors.ErrValueType
	}
	if !v.isFunc {
		return rewrite.Literal(v.literal), nil
	}
	fn, ok := Lookup(v.funcName)
	if !ok {
		return nil, fmt.Errorf("replacement function %q: %w", v.funcName, errors.ErrNotFound)
	}
	return rewrite.Func(fn), nil
}
