// Package textnorm provides the case/diacritic folding used for
// header matching and activity classification.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var innerWhitespaceRe = regexp.MustCompile(`[\s_]+`)

// StripDiacritics removes diacritical marks from a string by decomposing it
// into NFD form and dropping combining marks.
func StripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Fold lowercases, trims, collapses internal whitespace and underscores to a
// single space, and strips diacritics. All keyword and header comparisons go
// through this so "Capacitación" and "capacitacion " compare equal.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = StripDiacritics(s)
	s = innerWhitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// StripBOM removes a leading UTF-8 byte-order mark, both as the real rune
// and as the mis-decoded "ï»¿" artifact seen in Latin-1 round-trips.
func StripBOM(s string) string {
	s = strings.ReplaceAll(s, "\uFEFF", "")
	s = strings.ReplaceAll(s, "ï»¿", "")
	return s
}
