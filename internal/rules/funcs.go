package rules

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chazuruo/resub/internal/rewrite"
)

// builtins maps the function names usable in a rules file value mapping
// to their implementations. Each receives the structured match record and
// returns the replacement text for that occurrence.
var builtins = map[string]rewrite.ReplaceFunc{
	"upper": func(m rewrite.Match) string {
		return strings.ToUpper(m.Group(0))
	},
	"lower": func(m rewrite.Match) string {
		return strings.ToLower(m.Group(0))
	},
	"title": func(m rewrite.Match) string {
		caser := cases.Title(language.English)
		return caser.String(m.Group(0))
	},
	"trim": func(m rewrite.Match) string {
		return strings.TrimSpace(m.Group(0))
	},
	"group": func(m rewrite.Match) string {
		if m.Len() > 1 && m.Matched(1) {
			return m.Group(1)
		}
		return m.Group(0)
	},
}

// Lookup returns the built-in replacement function registered under name.
func Lookup(name string) (rewrite.ReplaceFunc, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

// FuncNames returns the names of all built-in replacement functions,
// sorted for stable display.
func FuncNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
