package engine

import "time"

// MaxConsecutiveDays returns the length of the longest run of
// calendar-consecutive dates in a sorted, de-duplicated date slice. A gap of
// exactly one day continues a run; anything larger resets it. An empty slice
// yields 0.
func MaxConsecutiveDays(sortedDates []time.Time) int {
	if len(sortedDates) == 0 {
		return 0
	}

	best := 1
	current := 1
	for i := 1; i < len(sortedDates); i++ {
		if sortedDates[i].Sub(sortedDates[i-1]) == 24*time.Hour {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 1
		}
	}
	return best
}
