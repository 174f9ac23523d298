// Package window resolves the closed date interval an analysis run covers.
package window

import "time"

// Window is a closed date interval [Start, End]. Both bounds are calendar
// days at midnight UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the window length in days (end - start + 1).
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Day truncates t to a calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Resolve computes the analysis window. When both explicit bounds are given
// they are used verbatim, without checking start <= end: callers own their
// explicit ranges. Otherwise the window runs from the most recent 27th of a
// month back from asOf (the roster's monthly cutover day) through asOf.
func Resolve(explicitStart, explicitEnd *time.Time, asOf time.Time) Window {
	if explicitStart != nil && explicitEnd != nil {
		return Window{Start: Day(*explicitStart), End: Day(*explicitEnd)}
	}

	today := Day(asOf)
	var start time.Time
	if today.Day() >= 27 {
		start = time.Date(today.Year(), today.Month(), 27, 0, 0, 0, 0, time.UTC)
	} else {
		// The 27th of the previous month: step back one day from the first
		// of the current month, then take that month's 27th.
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		prevMonthLast := firstOfMonth.AddDate(0, 0, -1)
		start = time.Date(prevMonthLast.Year(), prevMonthLast.Month(), 27, 0, 0, 0, 0, time.UTC)
	}

	return Window{Start: start, End: today}
}
