// Package unassigned finds roster rows with no recorded activity. It runs
// independently of the availability classifier: a row with an empty activity
// is a data-capture gap, not an unavailable day.
package unassigned

import (
	"sort"
	"strings"

	"github.com/arielreyes/crewsight/pkg/core/dataset"
	"github.com/arielreyes/crewsight/pkg/core/window"
)

// nullMarkers are the textual stand-ins for "no value" seen in exports.
var nullMarkers = map[string]bool{
	"":     true,
	"null": true,
	"none": true,
	"nan":  true,
}

// IsNullish reports whether an activity value counts as unassigned:
// empty after trimming, or one of the textual null markers (case-insensitive).
func IsNullish(activity string) bool {
	return nullMarkers[strings.ToLower(strings.TrimSpace(activity))]
}

// Extract returns the rows whose activity is unassigned, sorted by date and
// then collaborator name. A non-nil window restricts rows to it first.
// The result is never nil.
func Extract(records []dataset.Record, w *window.Window) []dataset.Record {
	out := make([]dataset.Record, 0)
	for _, r := range records {
		if w != nil && !w.Contains(r.Date) {
			continue
		}
		if IsNullish(r.Activity) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Collaborator < out[j].Collaborator
	})

	return out
}
