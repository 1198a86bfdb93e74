// Package rewrite implements the substitution engine: an ordered pipeline
// of regex stages applied to a text buffer, each stage feeding its output
// to the next.
//
// The engine is a pure function over its inputs. It performs no I/O, keeps
// no state between invocations, and is safe to call from multiple
// goroutines at once. Failures are configuration failures only; any text
// is valid input.
package rewrite

import (
	"github.com/chazuruo/resub/internal/errors"
)

// Stage is one configured pattern+replacement step.
type Stage struct {
	// Name is an optional label, used in error messages and reports.
	Name string

	// Enable gates the stage. A disabled stage passes the buffer through
	// unchanged.
	Enable bool

	// Pattern is the stage's matcher: Source for a raw pattern string, or
	// Compiled for an already-built matcher. Nil is a configuration error.
	Pattern Pattern

	// Flags recompile a Compiled pattern with an inline (?flags) prefix.
	// They are ignored for Source patterns.
	Flags string

	// Value is the replacement: Literal for a template string, or Func
	// for a per-match callback. Nil is a configuration error.
	Value Value
}

// Pipeline is an ordered sequence of stages. Construct one with Single or
// Stages; the zero value is an empty pipeline that leaves buffers
// unchanged.
type Pipeline struct {
	stages []Stage
}

// Single wraps one stage into a pipeline. The single-stage shorthand is
// always active: Enable is overridden to true regardless of its value.
func Single(s Stage) Pipeline {
	s.Enable = true
	return Pipeline{stages: []Stage{s}}
}

// Stages builds a pipeline from stages in execution order.
func Stages(stages ...Stage) Pipeline {
	return Pipeline{stages: append([]Stage(nil), stages...)}
}

// Len returns the number of stages, enabled or not.
func (p Pipeline) Len() int {
	return len(p.stages)
}

// Apply runs every enabled stage of p over buffer, in order, feeding each
// stage's output to the next, and returns the final buffer. Within one
// stage all non-overlapping occurrences are replaced left to right.
//
// Apply fails only on malformed stage configuration. A configuration
// error aborts the whole pipeline with no partial result.
func Apply(buffer string, p Pipeline) (string, error) {
	for i, stage := range p.stages {
		if !stage.Enable {
			continue
		}
		out, err := stage.apply(buffer)
		if err != nil {
			return "", &errors.StageError{Index: i, Name: stage.Name, Err: err}
		}
		buffer = out
	}
	return buffer, nil
}

func (s Stage) apply(buffer string) (string, error) {
	if s.Pattern == nil {
		return "", errors.ErrPatternType
	}
	if s.Value == nil {
		return "", errors.ErrValueType
	}
	re, err := s.Pattern.matcher(s.Flags)
	if err != nil {
		return "", err
	}
	return s.Value.replace(re, buffer), nil
}
