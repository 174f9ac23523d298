// Package classify maps free-text activity labels to a binary availability
// flag: 1 when the person was available for assignment that day, 0 otherwise.
package classify

import (
	"strings"

	"github.com/arielreyes/crewsight/internal/config"
	"github.com/arielreyes/crewsight/pkg/utils/textnorm"
)

// Flag values produced by the classifier.
const (
	NotAvailable = 0
	Available    = 1
)

// Ruleset is the compiled rule-based classifier. All configured keywords are
// folded once at construction so per-row classification only folds the text.
type Ruleset struct {
	whitelistKeywords []string
	blacklistPrefixes []string
	blacklistExact    []string
	neutralKeywords   []string
}

// NewRuleset compiles the availability rules from configuration.
func NewRuleset(rules config.AvailabilityRules) *Ruleset {
	return &Ruleset{
		whitelistKeywords: foldAll(rules.WhitelistKeywords),
		blacklistPrefixes: foldAll(rules.BlacklistPrefixes),
		blacklistExact:    foldAll(rules.BlacklistExact),
		neutralKeywords:   foldAll(rules.NeutralKeywords),
	}
}

func foldAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if folded := textnorm.Fold(w); folded != "" {
			out = append(out, folded)
		}
	}
	return out
}

// Classify maps one activity text to an availability flag. Checks run in
// strict precedence on a folded copy of the text and short-circuit on the
// first match:
//
//  1. contains a whitelist keyword         -> Available
//  2. starts with a blacklist prefix       -> NotAvailable
//  3. equals a blacklist phrase exactly    -> NotAvailable
//  4. contains a neutral keyword           -> NotAvailable
//  5. default                              -> NotAvailable
//
// Unknown activity text counts as unavailable: a false negative is cheaper
// for staffing than a false positive.
func (rs *Ruleset) Classify(text string) int {
	t := textnorm.Fold(text)
	if t == "" {
		return NotAvailable
	}

	for _, w := range rs.whitelistKeywords {
		if strings.Contains(t, w) {
			return Available
		}
	}

	for _, p := range rs.blacklistPrefixes {
		if strings.HasPrefix(t, p) {
			return NotAvailable
		}
	}

	for _, w := range rs.blacklistExact {
		if t == w {
			return NotAvailable
		}
	}

	for _, w := range rs.neutralKeywords {
		if strings.Contains(t, w) {
			return NotAvailable
		}
	}

	return NotAvailable
}
