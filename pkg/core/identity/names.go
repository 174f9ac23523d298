package identity

import (
	"regexp"
	"strings"
)

// Lowercase particles that stay lowercase in Spanish-style title casing.
var nameParticles = map[string]bool{
	"de": true, "del": true, "la": true, "las": true, "los": true, "y": true,
	"da": true, "das": true, "do": true, "dos": true, "di": true, "du": true,
	"van": true, "von": true, "mac": true, "mc": true,
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeName cleans up a collaborator name for display:
//   - "SURNAME, FIRSTNAME" becomes "Firstname Surname"
//   - all-caps / all-lower input is re-cased with smart title casing
//   - whitespace is collapsed
func NormalizeName(name string) string {
	n := strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " "))
	if n == "" {
		return ""
	}
	if idx := strings.Index(n, ","); idx >= 0 {
		surname := strings.TrimSpace(n[:idx])
		first := strings.TrimSpace(n[idx+1:])
		n = strings.TrimSpace(first + " " + surname)
	}
	return smartTitle(n)
}

// smartTitle title-cases a name while keeping particles (de, del, la, van, ...)
// lowercase. Hyphenated names are cased on both sides of the hyphen.
func smartTitle(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" || nameParticles[w] {
			continue
		}
		parts := strings.Split(w, "-")
		for j, p := range parts {
			if p == "" || nameParticles[p] {
				continue
			}
			parts[j] = strings.ToUpper(p[:1]) + p[1:]
		}
		words[i] = strings.Join(parts, "-")
	}
	return strings.Join(words, " ")
}

// ShortName returns "FirstName PaternalSurname" from a full name. With three
// or more tokens the penultimate token is taken as the paternal surname,
// which skips the maternal surname in the common Spanish naming order.
func ShortName(fullName string) string {
	tokens := strings.Fields(fullName)
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		return smartTitle(tokens[0])
	case 2:
		return smartTitle(tokens[0] + " " + tokens[1])
	default:
		return smartTitle(tokens[0] + " " + tokens[len(tokens)-2])
	}
}
