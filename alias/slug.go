package alias

import "strings"

// Slugify normalizes a human label into its canonical slug: lowercase,
// whitespace and underscores become hyphens, everything outside
// [a-z0-9-] is stripped, and runs of hyphens collapse to one.
//
// Idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress leading hyphens
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '_' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			// non-alphanumeric, non-separator: stripped
		}
	}

	return strings.TrimRight(b.String(), "-")
}
