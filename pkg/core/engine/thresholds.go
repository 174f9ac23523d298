package engine

import (
	"math"

	"github.com/arielreyes/crewsight/internal/config"
)

// ScaleThresholds adapts the configured 30-day baseline thresholds to the
// actual window length. Windows of 30 days or more use the baselines
// verbatim; shorter windows scale proportionally, with high days floored at
// 1 (there must always be a reachable HIGH cutoff), low days floored at 0,
// and the streak capped at the window length.
func ScaleThresholds(rules config.CriticalityRules, windowDays int) Thresholds {
	baseHigh := rules.HighDays
	if baseHigh < 1 {
		baseHigh = 1
	}
	baseLow := rules.LowDays
	if baseLow < 0 {
		baseLow = 0
	}
	baseStreak := rules.HighStreak
	if baseStreak < 1 {
		baseStreak = 1
	}

	if windowDays >= 30 {
		return Thresholds{
			HighDays:   baseHigh,
			LowDays:    baseLow,
			Streak:     baseStreak,
			WindowDays: windowDays,
		}
	}

	highDays := int(math.Ceil(float64(baseHigh) * float64(windowDays) / 30.0))
	if highDays < 1 {
		highDays = 1
	}
	lowDays := int(math.Floor(float64(baseLow) * float64(windowDays) / 30.0))
	if lowDays < 0 {
		lowDays = 0
	}
	streak := baseStreak
	if windowDays < streak {
		streak = windowDays
	}

	return Thresholds{
		HighDays:   highDays,
		LowDays:    lowDays,
		Streak:     streak,
		WindowDays: windowDays,
	}
}
