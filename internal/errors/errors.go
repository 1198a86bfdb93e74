// Package errors provides a structured error type hierarchy for resub.
//
// This package defines base error types for common error conditions, wrapped error
// types that add contextual information, and helper functions for error wrapping
// and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrPatternType - a stage pattern is neither a source string nor a compiled matcher
//   - ErrValueType - a stage value is neither a template string nor a function
//   - ErrNotFound - resource not found
//   - ErrInvalid - validation failed
//   - ErrIO - file I/O error
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - StageError{Index, Name, Err} - errors tied to one pipeline stage
//   - RulesError{Path, Err} - rules file errors
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrPatternType
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "loadRules")
//
//	// Use structured error types
//	return &errors.StageError{Index: 2, Name: "strip-digits", Err: errors.ErrValueType}
//
//	// Check error types
//	if errors.IsPatternType(err) {
//	    // handle bad pattern configuration
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrPatternType indicates a stage pattern that is neither a raw
	// pattern source string nor an already-compiled matcher.
	ErrPatternType = baseError("invalid pattern type")

	// ErrValueType indicates a stage value that is neither a replacement
	// template string nor a replacement function.
	ErrValueType = baseError("invalid value type")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// StageError represents an error tied to one stage of a rewrite pipeline.
type StageError struct {
	// Index is the zero-based position of the stage in the pipeline.
	Index int
	// Name is the stage name (optional).
	Name string
	// Err is the underlying error.
	Err error
}

func (e *StageError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("stage %d (%s): %s", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("stage %d: %s", e.Index, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// RulesError represents an error related to a rules file.
type RulesError struct {
	// Path is the rules file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *RulesError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("rules %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("rules: %s", e.Err)
}

func (e *RulesError) Unwrap() error { return e.Err }

// ConfigError represents an error related to tool configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsPatternType reports whether err is or wraps ErrPatternType.
func IsPatternType(err error) bool {
	return errors.Is(err, ErrPatternType)
}

// IsValueType reports whether err is or wraps ErrValueType.
func IsValueType(err error) bool {
	return errors.Is(err, ErrValueType)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsStageError reports whether err can be typed as a *StageError.
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsRulesError reports whether err can be typed as a *RulesError.
func AsRulesError(err error) (*RulesError, bool) {
	var re *RulesError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
