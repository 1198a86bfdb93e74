package rewrite

import (
	"regexp"
	"strings"
)

// Match describes a single pattern occurrence handed to a ReplaceFunc.
// Group 0 is the full match and groups 1..N are the captures, in group
// order. A Match is synthesized per occurrence and never retained by the
// engine.
type Match struct {
	// Index is the byte offset of the match in Input.
	Index int
	// Input is the full buffer being scanned.
	Input string

	spans []int
}

// Len returns the number of groups, including group 0.
func (m Match) Len() int {
	return len(m.spans) / 2
}

// Group returns the text of group i. Group 0 is the full match.
// Out-of-range and non-participating groups return "".
func (m Match) Group(i int) string {
	if !m.Matched(i) {
		return ""
	}
	return m.Input[m.spans[2*i]:m.spans[2*i+1]]
}

// Matched reports whether group i participated in the match. It tells an
// empty capture apart from an absent one.
func (m Match) Matched(i int) bool {
	return i >= 0 && 2*i+1 < len(m.spans) && m.spans[2*i] >= 0
}

// ReplaceFunc computes the replacement text for one match.
type ReplaceFunc func(Match) string

// Value is one of the two accepted replacement forms: a literal template
// built with Literal, or a callback wrapped with Func. A stage whose Value
// is nil fails with errors.ErrValueType.
type Value interface {
	replace(re *regexp.Regexp, src string) string
}

// Literal returns the template replacement form. Backreference expansion
// ($1, ${name}) is the regexp package's own; the engine passes the
// template through verbatim.
func Literal(template string) Value {
	return literalValue{template: template}
}

type literalValue struct {
	template string
}

func (v literalValue) replace(re *regexp.Regexp, src string) string {
	return re.ReplaceAllString(src, v.template)
}

// Func returns the callback replacement form. fn is invoked once per
// match, left to right, and its result becomes the replacement text for
// that occurrence. A nil fn yields a nil Value, which fails with
// errors.ErrValueType at apply time.
func Func(fn ReplaceFunc) Value {
	if fn == nil {
		return nil
	}
	return funcValue{fn: fn}
}

type funcValue struct {
	fn ReplaceFunc
}

func (v funcValue) replace(re *regexp.Regexp, src string) string {
	var b strings.Builder
	last := 0
	for _, spans := range re.FindAllStringSubmatchIndex(src, -1) {
		b.WriteString(src[last:spans[0]])
		b.WriteString(v.fn(Match{Index: spans[0], Input: src, spans: spans}))
		last = spans[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
