package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chazuruo/resub/internal/errors"
)

// Pattern is one of the two accepted pattern forms: a raw pattern source
// built with Source, or an already-compiled matcher wrapped with Compiled.
// A stage whose Pattern is nil fails with errors.ErrPatternType.
type Pattern interface {
	matcher(flags string) (*regexp.Regexp, error)
}

// Source returns the pass-through pattern form: src is handed to the
// regexp package unchanged at apply time. Stage flags are ignored for
// this form.
func Source(src string) Pattern {
	return patternSource{src: src}
}

type patternSource struct {
	src string
}

func (p patternSource) matcher(string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(p.src)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", p.src, err)
	}
	return re, nil
}

// Compiled wraps an already-built matcher. When stage flags are present
// the matcher is recompiled with an inline (?flags) prefix; without flags
// it is used as-is. A nil matcher fails with errors.ErrPatternType.
func Compiled(re *regexp.Regexp) Pattern {
	if re == nil {
		return nil
	}
	return patternCompiled{re: re}
}

type patternCompiled struct {
	re *regexp.Regexp
}

func (p patternCompiled) matcher(flags string) (*regexp.Regexp, error) {
	prefix, err := inlineFlags(flags)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return p.re, nil
	}
	re, err := regexp.Compile(prefix + p.re.String())
	if err != nil {
		return nil, fmt.Errorf("recompile pattern %q with flags %q: %w", p.re.String(), flags, err)
	}
	return re, nil
}

// inlineFlags translates a flag string into an inline (?...) group.
// Supported letters are the ones the regexp package understands inline:
// i, m, s and U. A "g" flag is accepted and dropped, since replacement
// is always global. Anything else is a configuration error.
func inlineFlags(flags string) (string, error) {
	var b strings.Builder
	for _, r := range flags {
		switch r {
		case 'i', 'm', 's', 'U':
			b.WriteRune(r)
		case 'g':
			// replacement is always global
		default:
			return "", fmt.Errorf("flags %q: unsupported flag %q: %w", flags, string(r), errors.ErrInvalid)
		}
	}
	if b.Len() == 0 {
		return "", nil
	}
	return "(?" + b.String() + ")", nil
}
