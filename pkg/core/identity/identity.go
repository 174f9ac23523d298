// Package identity canonicalizes the national-ID keys and person names that
// the rest of the pipeline groups and displays by.
package identity

import (
	"regexp"
	"strings"
)

var (
	// cleanRe strips everything except digits and the check letter K.
	cleanRe = regexp.MustCompile(`[^0-9kK]`)
	// canonicalRe is the shape every normalized ID must have: a 6-9 digit
	// body, a hyphen, and an uppercase check digit.
	canonicalRe = regexp.MustCompile(`^\d{6,9}-[0-9K]$`)
	// probeRe is the looser shape used when scoring candidate ID columns;
	// it tolerates a lowercase check digit since probing skips uppercasing.
	probeRe = regexp.MustCompile(`^\d{6,9}-[0-9Kk]$`)
)

// Normalize canonicalizes a raw national-ID string to `digits-checkdigit`
// form (no punctuation, uppercase check digit). Unparseable input returns
// the empty string, never an error: the caller treats "" as "no usable ID".
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = cleanRe.ReplaceAllString(s, "")
	if len(s) < 2 {
		return ""
	}
	s = s[:len(s)-1] + "-" + strings.ToUpper(s[len(s)-1:])
	if !canonicalRe.MatchString(s) {
		return ""
	}
	return s
}

// IsCanonical reports whether s is already in canonical `digits-checkdigit` form.
func IsCanonical(s string) bool {
	return canonicalRe.MatchString(s)
}

// probeNormalize is the cheap normalization used only for column scoring:
// strip punctuation and insert the hyphen, but keep the check digit's case.
func probeNormalize(s string) string {
	s = cleanRe.ReplaceAllString(s, "")
	if len(s) >= 2 {
		s = s[:len(s)-1] + "-" + s[len(s)-1:]
	}
	return s
}

// LooksLikeID reports whether a raw value plausibly holds a national ID.
// Used by the allow-list column detection heuristic.
func LooksLikeID(raw string) bool {
	return probeRe.MatchString(probeNormalize(raw))
}

// FormatForDisplay renders a canonical ID with thousands separators, e.g.
// "12345678-5" -> "12.345.678-5". It assumes the input is already canonical;
// malformed input is returned unchanged rather than erroring.
func FormatForDisplay(canonical string) string {
	s := cleanRe.ReplaceAllString(canonical, "")
	if len(s) < 2 {
		return canonical
	}
	checkDigit := strings.ToUpper(s[len(s)-1:])
	body := s[:len(s)-1]

	var groups []string
	for len(body) > 3 {
		groups = append([]string{body[len(body)-3:]}, groups...)
		body = body[:len(body)-3]
	}
	groups = append([]string{body}, groups...)

	return strings.Join(groups, ".") + "-" + checkDigit
}
