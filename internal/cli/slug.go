package cli

import "strings"

// maxSlugLen caps derived rules filenames so "<slug>.resub.yaml" stays
// readable in directory listings.
const maxSlugLen = 40

// Slugify derives a filesystem-friendly name from a rules description:
// lowercase letters and digits, hyphen-separated, everything else
// dropped.
//
// Examples:
//
//	"Strip Trailing Whitespace" -> "strip-trailing-whitespace"
//	"Fix: Bug #123!" -> "fix-bug-123"
func Slugify(description string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(description) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		// Cut at a hyphen so no word is split mid-way.
		cut := maxSlugLen
		if idx := strings.LastIndexByte(slug[:cut], '-'); idx > 0 {
			cut = idx
		}
		slug = slug[:cut]
	}
	return slug
}
