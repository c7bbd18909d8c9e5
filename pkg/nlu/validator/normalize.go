package validator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// isTrimSpace reports whether r is removed by trimming: Unicode white space
// and the byte order mark, but not U+0085.
func isTrimSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return unicode.IsSpace(r) && r != '\u0085'
}

// trim removes leading and trailing white space.
func trim(s string) string {
	return strings.TrimFunc(s, isTrimSpace)
}

// hasSuperfluousWhitespace reports whether s changes when trimmed.
func hasSuperfluousWhitespace(s string) bool {
	return s != trim(s)
}

// normalizer produces the comparison key for duplicate detection.
// A cases.Caser keeps state, so each validation call owns its own normalizer.
type normalizer struct {
	lower cases.Caser
}

func newNormalizer() *normalizer {
	return &normalizer{lower: cases.Lower(language.Und)}
}

// key trims s and lower-cases it with full Unicode case mapping.
func (n *normalizer) key(s string) string {
	return n.lower.String(trim(s))
}
