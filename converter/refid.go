package converter

import (
	"strings"
	"unicode"
)

// SanitizeRefID maps every character that is not a letter, digit or '_' to '_'
// so raw ids can be used in AsciiDoc anchor names. The result has one rune per
// input rune, and sanitizing twice is the same as sanitizing once.
func SanitizeRefID(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, id)
}

// bracketed reports whether v looks like "[x]" and returns x.
func bracketed(v string) (string, bool) {
	if len(v) < 2 || !strings.HasPrefix(v, "[") || !strings.HasSuffix(v, "]") {
		return "", false
	}
	return v[1 : len(v)-1], true
}
