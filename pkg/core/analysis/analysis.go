// Package analysis derives operational insights from a classified run:
// daily availability headcounts, a coarse trend, full-period leave alerts,
// and the project codes active in the window.
package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/arielreyes/crewsight/pkg/core/classify"
	"github.com/arielreyes/crewsight/pkg/core/identity"
	"github.com/arielreyes/crewsight/pkg/core/window"
	"github.com/arielreyes/crewsight/pkg/utils/textnorm"
)

// Trend labels for the daily availability series.
const (
	TrendIncreasing = "Increasing"
	TrendDecreasing = "Decreasing"
	TrendStable     = "Stable"
)

// maxNamesPerDay caps the name list in a DailyCount so downstream
// consumers stay readable.
const maxNamesPerDay = 12

// DailyCount is the availability headcount for one date.
type DailyCount struct {
	Date      time.Time
	Available int
	Names     string
}

// Report bundles the derived insights for one run.
type Report struct {
	Daily        []DailyCount
	Trend        string
	LeaveAlerts  []string
	ProjectCodes []string
}

// projectCodeRe matches service/contract/lab project codes like SER-2025-0154.
var projectCodeRe = regexp.MustCompile(`(?i)\b(?:SER|CON|LAB)-\d{4}-\d{4}\b`)

// Build derives the full report from the windowed detail rows.
func Build(detail []classify.Classified, w window.Window) *Report {
	daily := DailyAvailability(detail)
	counts := make([]int, len(daily))
	for i, d := range daily {
		counts[i] = d.Available
	}

	return &Report{
		Daily:        daily,
		Trend:        TrendFromSeries(counts),
		LeaveAlerts:  FullPeriodLeaveAlerts(detail, w),
		ProjectCodes: ExtractProjectCodes(detail),
	}
}

// DailyAvailability counts the distinct available people per date and lists
// their short names alphabetically, capped at maxNamesPerDay.
func DailyAvailability(detail []classify.Classified) []DailyCount {
	byDate := make(map[time.Time]map[string]bool)
	for _, r := range detail {
		if r.Flag != classify.Available {
			continue
		}
		name := identity.ShortName(r.Collaborator)
		if name == "" {
			continue
		}
		if byDate[r.Date] == nil {
			byDate[r.Date] = make(map[string]bool)
		}
		byDate[r.Date][name] = true
	}

	out := make([]DailyCount, 0, len(byDate))
	for date, nameSet := range byDate {
		names := make([]string, 0, len(nameSet))
		for n := range nameSet {
			names = append(names, n)
		}
		sort.Strings(names)

		visible := strings.Join(names, ", ")
		if len(names) > maxNamesPerDay {
			visible = fmt.Sprintf("%s, and %d more",
				strings.Join(names[:maxNamesPerDay], ", "), len(names)-maxNamesPerDay)
		}

		out = append(out, DailyCount{Date: date, Available: len(names), Names: visible})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TrendFromSeries labels the series by comparing its first and last values:
// a delta beyond one person either way counts as a trend.
func TrendFromSeries(counts []int) string {
	if len(counts) < 2 {
		return TrendStable
	}
	diff := counts[len(counts)-1] - counts[0]
	switch {
	case diff > 1:
		return TrendIncreasing
	case diff < -1:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// Activity phrases that count as medical leave or vacation for alerting.
var (
	leaveActivities    = map[string]bool{"licencia medica": true}
	vacationActivities = map[string]bool{"vacaciones": true}
)

// FullPeriodLeaveAlerts returns the names of people whose every non-empty
// activity in the window is medical leave, or whose every activity is
// vacation. Those people are gone for the whole period, not just a day.
func FullPeriodLeaveAlerts(detail []classify.Classified, w window.Window) []string {
	type personActivity struct {
		name       string
		activities map[string]bool
	}

	byID := make(map[string]*personActivity)
	var order []string
	for _, r := range detail {
		if !w.Contains(r.Date) {
			continue
		}
		folded := textnorm.Fold(r.Activity)
		if folded == "" {
			continue
		}
		p, ok := byID[r.ID]
		if !ok {
			p = &personActivity{name: r.Collaborator, activities: make(map[string]bool)}
			byID[r.ID] = p
			order = append(order, r.ID)
		}
		p.activities[folded] = true
	}

	var alerts []string
	for _, id := range order {
		p := byID[id]
		if subsetOf(p.activities, leaveActivities) || subsetOf(p.activities, vacationActivities) {
			alerts = append(alerts, p.name)
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		return identity.ShortName(alerts[i]) < identity.ShortName(alerts[j])
	})
	return alerts
}

func subsetOf(set, allowed map[string]bool) bool {
	if len(set) == 0 {
		return false
	}
	for k := range set {
		if !allowed[k] {
			return false
		}
	}
	return true
}

// ExtractProjectCodes collects the distinct project codes mentioned in
// activity texts, uppercased and sorted.
func ExtractProjectCodes(detail []classify.Classified) []string {
	seen := make(map[string]bool)
	for _, r := range detail {
		for _, m := range projectCodeRe.FindAllString(r.Activity, -1) {
			seen[strings.ToUpper(m)] = true
		}
	}

	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
