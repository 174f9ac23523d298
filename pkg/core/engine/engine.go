package engine

import (
	"math"
	"sort"
	"time"

	"github.com/arielreyes/crewsight/internal/config"
	"github.com/arielreyes/crewsight/pkg/core/classify"
	"github.com/arielreyes/crewsight/pkg/core/window"
)

// Aggregate groups classified records by canonical ID within the window and
// produces the ranked per-person summary, the windowed detail table, and the
// thresholds that were applied. Empty input (or an empty window) yields
// empty, non-nil tables.
func Aggregate(classified []classify.Classified, w window.Window, rules config.CriticalityRules) ([]Summary, []classify.Classified, Thresholds) {
	thresholds := ScaleThresholds(rules, w.Days())

	// Restrict to the window, keeping (ID, Date) order for the detail table.
	detail := make([]classify.Classified, 0, len(classified))
	for _, c := range classified {
		if w.Contains(c.Date) {
			detail = append(detail, c)
		}
	}
	sort.SliceStable(detail, func(i, j int) bool {
		if detail[i].ID != detail[j].ID {
			return detail[i].ID < detail[j].ID
		}
		return detail[i].Date.Before(detail[j].Date)
	})

	groups := make(map[string][]classify.Classified)
	var order []string
	for _, c := range detail {
		if _, seen := groups[c.ID]; !seen {
			order = append(order, c.ID)
		}
		groups[c.ID] = append(groups[c.ID], c)
	}

	summary := make([]Summary, 0, len(order))
	for _, id := range order {
		summary = append(summary, summarizeGroup(id, groups[id], thresholds))
	}
	sortSummary(summary)

	return summary, detail, thresholds
}

// summarizeGroup computes one person's summary row from their windowed rows.
func summarizeGroup(id string, rows []classify.Classified, th Thresholds) Summary {
	first := rows[0]

	availableDates := distinctAvailableDates(rows)
	availableDays := len(availableDates)
	maxStreak := MaxConsecutiveDays(availableDates)

	// First match wins; HIGH beats LOW when both conditions hold.
	var criticality Criticality
	switch {
	case availableDays >= th.HighDays || maxStreak >= th.Streak:
		criticality = CriticalityHigh
	case availableDays <= th.LowDays:
		criticality = CriticalityLow
	default:
		criticality = CriticalityMedium
	}

	pct := 0.0
	if th.WindowDays > 0 {
		pct = roundTo1(float64(availableDays) / float64(th.WindowDays) * 100.0)
	}

	return Summary{
		ID:            id,
		Collaborator:  first.Collaborator,
		Department:    first.Department,
		ResidenceCity: first.ResidenceCity,
		WindowDays:    th.WindowDays,
		AvailableDays: availableDays,
		AvailablePct:  pct,
		MaxStreak:     maxStreak,
		Criticality:   criticality,
	}
}

// distinctAvailableDates returns the sorted distinct dates with flag = 1.
func distinctAvailableDates(rows []classify.Classified) []time.Time {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, r := range rows {
		if r.Flag == classify.Available && !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// sortSummary applies the required ranking: criticality (HIGH, MEDIUM, LOW),
// then available days, streak, and percentage, all descending. Remaining
// ties keep the original grouping order.
func sortSummary(summary []Summary) {
	sort.SliceStable(summary, func(i, j int) bool {
		a, b := summary[i], summary[j]
		if a.Criticality != b.Criticality {
			return a.Criticality.sortRank() < b.Criticality.sortRank()
		}
		if a.AvailableDays != b.AvailableDays {
			return a.AvailableDays > b.AvailableDays
		}
		if a.MaxStreak != b.MaxStreak {
			return a.MaxStreak > b.MaxStreak
		}
		return a.AvailablePct > b.AvailablePct
	})
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
