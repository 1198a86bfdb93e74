package cli

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Strip Trailing Whitespace", "strip-trailing-whitespace"},
		{"special chars", "Fix: Bug #123!", "fix-bug-123"},
		{"collapses hyphens", "a  --  b", "a-b"},
		{"trims hyphens", "-hello-", "hello"},
		{"empty", "", ""},
		{"only special chars", "!!!", ""},
		{
			"truncates at a word boundary",
			"this is a very long description that keeps going and going and going",
			"this-is-a-very-long-description-that",
		},
		{"non-ascii separates", "héllo wörld", "h-llo-w-rld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
