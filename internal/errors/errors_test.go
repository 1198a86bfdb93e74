package errors_test

import (
	"errors"
	"fmt"
	"testing"

	resuberrors "github.com/chazuruo/resub/internal/errors"
)

// TestBaseErrors verifies that all base error types have correct messages.
func TestBaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrPatternType", resuberrors.ErrPatternType, "invalid pattern type"},
		{"ErrValueType", resuberrors.ErrValueType, "invalid value type"},
		{"ErrNotFound", resuberrors.ErrNotFound, "not found"},
		{"ErrInvalid", resuberrors.ErrInvalid, "invalid"},
		{"ErrIO", resuberrors.ErrIO, "I/O error"},
		{"ErrCanceled", resuberrors.ErrCanceled, "canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestStageError verifies StageError formatting and unwrapping.
func TestStageError(t *testing.T) {
	tests := []struct {
		name string
		err  *resuberrors.StageError
		want string
	}{
		{
			name: "with name",
			err:  &resuberrors.StageError{Index: 1, Name: "strip-digits", Err: resuberrors.ErrPatternType},
			want: "stage 1 (strip-digits): invalid pattern type",
		},
		{
			name: "without name",
			err:  &resuberrors.StageError{Index: 0, Err: resuberrors.ErrValueType},
			want: "stage 0: invalid value type",
		},
		{
			name: "wrapped custom error",
			err:  &resuberrors.StageError{Index: 2, Name: "fix-imports", Err: fmt.Errorf("custom error")},
			want: "stage 2 (fix-imports): custom error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, tt.err.Err) {
				t.Error("errors.Is should match the wrapped error")
			}
		})
	}
}

// TestRulesError verifies RulesError formatting and unwrapping.
func TestRulesError(t *testing.T) {
	withPath := &resuberrors.RulesError{Path: ".resub.yaml", Err: resuberrors.ErrInvalid}
	if got, want := withPath.Error(), "rules .resub.yaml: invalid"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withoutPath := &resuberrors.RulesError{Err: resuberrors.ErrNotFound}
	if got, want := withoutPath.Error(), "rules: not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !resuberrors.IsInvalid(withPath) {
		t.Error("IsInvalid should see through RulesError")
	}
}

// TestWrap verifies that Wrap adds context while keeping the chain intact.
func TestWrap(t *testing.T) {
	wrapped := resuberrors.Wrap(resuberrors.ErrPatternType, "compileStage")

	if got, want := wrapped.Error(), "compileStage: invalid pattern type"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !resuberrors.IsPatternType(wrapped) {
		t.Error("IsPatternType should see through Wrap")
	}
}

// TestIsHelpers verifies the sentinel check helpers against wrapped chains.
func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"pattern type direct", resuberrors.ErrPatternType, resuberrors.IsPatternType, true},
		{"pattern type wrapped", fmt.Errorf("stage: %w", resuberrors.ErrPatternType), resuberrors.IsPatternType, true},
		{"value type direct", resuberrors.ErrValueType, resuberrors.IsValueType, true},
		{"value type wrapped", &resuberrors.StageError{Index: 0, Err: resuberrors.ErrValueType}, resuberrors.IsValueType, true},
		{"mismatch", resuberrors.ErrValueType, resuberrors.IsPatternType, false},
		{"nil", nil, resuberrors.IsValueType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestAsStageError verifies typed extraction from a wrapped chain.
func TestAsStageError(t *testing.T) {
	inner := &resuberrors.StageError{Index: 3, Name: "bump-version", Err: resuberrors.ErrValueType}
	outer := resuberrors.Wrap(inner, "apply")

	se, ok := resuberrors.AsStageError(outer)
	if !ok {
		t.Fatal("AsStageError should find the StageError")
	}
	if se.Index != 3 || se.Name != "bump-version" {
		t.Errorf("unexpected stage error: %+v", se)
	}

	if _, ok := resuberrors.AsStageError(resuberrors.ErrInvalid); ok {
		t.Error("AsStageError should not match a bare sentinel")
	}
}
