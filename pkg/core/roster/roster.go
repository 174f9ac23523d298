// Package roster loads the allow-list of valid national IDs and filters
// datasets against it.
package roster

import (
	"strings"

	"github.com/arielreyes/crewsight/pkg/core/dataset"
	"github.com/arielreyes/crewsight/pkg/core/identity"
	"github.com/arielreyes/crewsight/pkg/utils/textnorm"
)

// Header spellings that directly name the ID column of an allow-list file.
var knownIDHeaders = map[string]bool{
	"rut":           true,
	"ruts":          true,
	"rut valido":    true,
	"ruts validos":  true,
	"id":            true,
	"valid id":      true,
	"valid ids":     true,
	"national id":   true,
	"identificacion": true,
}

// minColumnScore is the minimum fraction of plausible-ID values a column
// needs before the scoring heuristic trusts it over the first column.
const minColumnScore = 0.2

// Roster is the set of canonical IDs allowed into an analysis run.
type Roster struct {
	ids map[string]bool
}

// Contains reports whether the canonical ID is on the allow-list.
func (r *Roster) Contains(canonicalID string) bool {
	return r.ids[canonicalID]
}

// Len returns the number of distinct valid IDs loaded.
func (r *Roster) Len() int {
	return len(r.ids)
}

// Load reads an allow-list table, with or without a header row. The ID
// column is located by name against the known header spellings; failing
// that, every column is scored by the fraction of its non-blank values that
// look like an ID, and the best column wins if it scores at least 0.2,
// else the first column is used. Values that fail normalization are skipped.
func Load(data []byte) (*Roster, error) {
	table, err := dataset.ReadTable(data)
	if err != nil {
		return nil, err
	}

	col := locateIDColumn(table)

	ids := make(map[string]bool)
	// A headerless file puts an ID in the header cell: recover it.
	if identity.LooksLikeID(table.Headers[col]) {
		if id := identity.Normalize(table.Headers[col]); id != "" {
			ids[id] = true
		}
	}
	for _, row := range table.Rows {
		if id := identity.Normalize(row[col]); id != "" {
			ids[id] = true
		}
	}

	return &Roster{ids: ids}, nil
}

// locateIDColumn picks the column index holding the IDs.
func locateIDColumn(table *dataset.Table) int {
	for i, h := range table.Headers {
		if knownIDHeaders[textnorm.Fold(textnorm.StripBOM(h))] {
			return i
		}
	}

	best, bestScore := -1, 0.0
	for i := range table.Headers {
		score := scoreColumn(table, i)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best >= 0 && bestScore >= minColumnScore {
		return best
	}
	return 0
}

// scoreColumn returns the fraction of non-blank values in the column that
// look like a national ID after probe normalization.
func scoreColumn(table *dataset.Table, col int) float64 {
	total := 0
	matches := 0
	for _, row := range table.Rows {
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		total++
		if identity.LooksLikeID(v) {
			matches++
		}
	}
	if total == 0 {
		return 0.0
	}
	return float64(matches) / float64(total)
}

// Filter splits records into those whose ID is on the allow-list and those
// whose ID is not. Rows with an empty (unparseable) ID count as excluded.
func Filter(records []dataset.Record, r *Roster) (kept, excluded []dataset.Record) {
	kept = make([]dataset.Record, 0, len(records))
	excluded = make([]dataset.Record, 0)
	for _, rec := range records {
		if rec.ID != "" && r.Contains(rec.ID) {
			kept = append(kept, rec)
		} else {
			excluded = append(excluded, rec)
		}
	}
	return kept, excluded
}
