package rewrite

import (
	"regexp"
	"strings"
	"testing"

	"github.com/chazuruo/resub/internal/errors"
)

func TestApplySingleStage(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		stage  Stage
		want   string
	}{
		{
			name:   "identity on no match",
			buffer: "abc",
			stage:  Stage{Pattern: Source("xyz"), Value: Literal("Z")},
			want:   "abc",
		},
		{
			name:   "single literal replace",
			buffer: "abc123",
			stage:  Stage{Pattern: Source("[0-9]+"), Value: Literal("X")},
			want:   "abcX",
		},
		{
			name:   "global replace left to right",
			buffer: "a1b2c3",
			stage:  Stage{Pattern: Source("[0-9]"), Value: Literal("#")},
			want:   "a#b#c#",
		},
		{
			name:   "backreference template",
			buffer: "hello world",
			stage:  Stage{Pattern: Source(`(\w+) (\w+)`), Value: Literal("$2 $1")},
			want:   "world hello",
		},
		{
			name:   "empty buffer",
			buffer: "",
			stage:  Stage{Pattern: Source("a"), Value: Literal("b")},
			want:   "",
		},
		{
			name:   "compiled pattern without flags",
			buffer: "foo FOO",
			stage:  Stage{Pattern: Compiled(regexp.MustCompile("foo")), Value: Literal("bar")},
			want:   "bar FOO",
		},
		{
			name:   "compiled pattern recompiled with i flag",
			buffer: "foo FOO",
			stage:  Stage{Pattern: Compiled(regexp.MustCompile("foo")), Flags: "i", Value: Literal("bar")},
			want:   "bar bar",
		},
		{
			name:   "source pattern ignores flags",
			buffer: "foo FOO",
			stage:  Stage{Pattern: Source("foo"), Flags: "i", Value: Literal("bar")},
			want:   "bar FOO",
		},
		{
			name:   "g flag accepted and dropped",
			buffer: "a1b2",
			stage:  Stage{Pattern: Compiled(regexp.MustCompile("[0-9]")), Flags: "g", Value: Literal("#")},
			want:   "a#b#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.buffer, Single(tt.stage))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyDisabledStageIsNoOp(t *testing.T) {
	p := Stages(Stage{Enable: false, Pattern: Source("a"), Value: Literal("Z")})

	got, err := Apply("abc", p)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "abc" {
		t.Errorf("Apply() = %q, want %q", got, "abc")
	}
}

func TestApplySequentialStaging(t *testing.T) {
	// The second stage operates on the first stage's output: the original
	// "f", now "b", becomes "c".
	p := Stages(
		Stage{Enable: true, Pattern: Source("f"), Value: Literal("b")},
		Stage{Enable: true, Pattern: Source("b"), Value: Literal("c")},
	)

	got, err := Apply("foo", p)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "coo" {
		t.Errorf("Apply() = %q, want %q", got, "coo")
	}
}

func TestApplySkipsDisabledBetweenEnabled(t *testing.T) {
	p := Stages(
		Stage{Enable: true, Pattern: Source("a"), Value: Literal("b")},
		Stage{Enable: false, Pattern: Source("b"), Value: Literal("x")},
		Stage{Enable: true, Pattern: Source("b"), Value: Literal("c")},
	)

	got, err := Apply("abc", p)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "ccc" {
		t.Errorf("Apply() = %q, want %q", got, "ccc")
	}
}

func TestApplyFuncReceivesMatch(t *testing.T) {
	var observed Match

	stage := Stage{
		Pattern: Source(`(\d+)-(\d+)`),
		Value: Func(func(m Match) string {
			observed = m
			return m.Group(1) + "+" + m.Group(2)
		}),
	}

	got, err := Apply("10-20", Single(stage))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "10+20" {
		t.Errorf("Apply() = %q, want %q", got, "10+20")
	}

	if observed.Index != 0 {
		t.Errorf("Match.Index = %d, want 0", observed.Index)
	}
	if observed.Input != "10-20" {
		t.Errorf("Match.Input = %q, want %q", observed.Input, "10-20")
	}
	if observed.Group(0) != "10-20" {
		t.Errorf("Match.Group(0) = %q, want %q", observed.Group(0), "10-20")
	}
	if observed.Len() != 3 {
		t.Errorf("Match.Len() = %d, want 3", observed.Len())
	}
}

func TestApplyFuncPerOccurrence(t *testing.T) {
	var offsets []int

	stage := Stage{
		Pattern: Source("[0-9]"),
		Value: Func(func(m Match) string {
			offsets = append(offsets, m.Index)
			return strings.Repeat(m.Group(0), 2)
		}),
	}

	got, err := Apply("a1b2", Single(stage))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "a11b22" {
		t.Errorf("Apply() = %q, want %q", got, "a11b22")
	}
	if len(offsets) != 2 || offsets[0] != 1 || offsets[1] != 3 {
		t.Errorf("offsets = %v, want [1 3]", offsets)
	}
}

func TestMatchNonParticipatingGroup(t *testing.T) {
	var observed Match

	stage := Stage{
		Pattern: Source(`(a)|(b)`),
		Value: Func(func(m Match) string {
			observed = m
			return "_"
		}),
	}

	if _, err := Apply("a", Single(stage)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if !observed.Matched(1) {
		t.Error("group 1 should have participated")
	}
	if observed.Matched(2) {
		t.Error("group 2 should not have participated")
	}
	if observed.Group(2) != "" {
		t.Errorf("Group(2) = %q, want empty", observed.Group(2))
	}
	if observed.Matched(5) {
		t.Error("out-of-range group should not match")
	}
}

func TestApplyInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		stage Stage
		check func(error) bool
	}{
		{
			name:  "nil pattern",
			stage: Stage{Value: Literal("X")},
			check: errors.IsPatternType,
		},
		{
			name:  "nil compiled matcher",
			stage: Stage{Pattern: Compiled(nil), Value: Literal("X")},
			check: errors.IsPatternType,
		},
		{
			name:  "nil value",
			stage: Stage{Pattern: Source("a")},
			check: errors.IsValueType,
		},
		{
			name:  "nil replace func",
			stage: Stage{Pattern: Source("a"), Value: Func(nil)},
			check: errors.IsValueType,
		},
		{
			name:  "unsupported flag",
			stage: Stage{Pattern: Compiled(regexp.MustCompile("a")), Flags: "x", Value: Literal("b")},
			check: errors.IsInvalid,
		},
		{
			name:  "malformed source pattern",
			stage: Stage{Pattern: Source("("), Value: Literal("b")},
			check: func(err error) bool { return err != nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply("abc", Single(tt.stage))
			if err == nil {
				t.Fatal("Apply() expected error")
			}
			if !tt.check(err) {
				t.Errorf("error kind mismatch: %v", err)
			}
			if got != "" {
				t.Errorf("Apply() = %q, want empty result on error", got)
			}
			if _, ok := errors.AsStageError(err); !ok {
				t.Errorf("error should carry stage context: %v", err)
			}
		})
	}
}

func TestApplyErrorCarriesStageContext(t *testing.T) {
	p := Stages(
		Stage{Enable: true, Pattern: Source("a"), Value: Literal("b")},
		Stage{Enable: true, Name: "broken", Value: Literal("x")},
	)

	_, err := Apply("abc", p)
	if err == nil {
		t.Fatal("Apply() expected error")
	}

	se, ok := errors.AsStageError(err)
	if !ok {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Index != 1 || se.Name != "broken" {
		t.Errorf("unexpected stage context: %+v", se)
	}
}

func TestSingleForcesEnable(t *testing.T) {
	// The single-stage shorthand is always active, even when Enable is
	// left false.
	got, err := Apply("abc", Single(Stage{Pattern: Source("a"), Value: Literal("Z")}))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "Zbc" {
		t.Errorf("Apply() = %q, want %q", got, "Zbc")
	}
}

func TestApplyEmptyPipeline(t *testing.T) {
	got, err := Apply("abc", Pipeline{})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got != "abc" {
		t.Errorf("Apply() = %q, want %q", got, "abc")
	}
}
