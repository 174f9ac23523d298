// Package engine aggregates classified records into per-person availability
// summaries with a three-tier criticality rating.
package engine

// Criticality is the staffing-risk tier assigned to each person.
// HIGH means plentiful availability, LOW means scarce.
type Criticality string

const (
	CriticalityHigh   Criticality = "HIGH"
	CriticalityMedium Criticality = "MEDIUM"
	CriticalityLow    Criticality = "LOW"
)

// sortRank orders criticalities for the summary sort: HIGH, MEDIUM, LOW.
func (c Criticality) sortRank() int {
	switch c {
	case CriticalityHigh:
		return 0
	case CriticalityMedium:
		return 1
	case CriticalityLow:
		return 2
	default:
		return 3
	}
}

// Thresholds are the effective cutoffs used for one run, after scaling the
// configured 30-day baselines to the actual window length.
type Thresholds struct {
	HighDays   int
	LowDays    int
	Streak     int
	WindowDays int
}

// Summary is one person's aggregated availability over the window.
type Summary struct {
	ID            string
	Collaborator  string
	Department    string
	ResidenceCity string
	WindowDays    int
	AvailableDays int
	AvailablePct  float64
	MaxStreak     int
	Criticality   Criticality
}
