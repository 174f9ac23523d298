package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arielreyes/crewsight/internal/config"
)

func baseRules() config.CriticalityRules {
	return config.CriticalityRules{HighDays: 7, HighStreak: 3, LowDays: 4}
}

func TestScaleThresholds_FullWindowUsesBaselines(t *testing.T) {
	th := ScaleThresholds(baseRules(), 30)

	assert.Equal(t, 7, th.HighDays)
	assert.Equal(t, 4, th.LowDays)
	assert.Equal(t, 3, th.Streak)
	assert.Equal(t, 30, th.WindowDays)
}

func TestScaleThresholds_LongerWindowUsesBaselines(t *testing.T) {
	th := ScaleThresholds(baseRules(), 60)

	assert.Equal(t, 7, th.HighDays)
	assert.Equal(t, 4, th.LowDays)
	assert.Equal(t, 3, th.Streak)
}

func TestScaleThresholds_TwentyDayWindow(t *testing.T) {
	th := ScaleThresholds(baseRules(), 20)

	// ceil(7*20/30) = ceil(4.67) = 5; floor(4*20/30) = floor(2.67) = 2
	assert.Equal(t, 5, th.HighDays)
	assert.Equal(t, 2, th.LowDays)
	assert.Equal(t, 3, th.Streak)
}

func TestScaleThresholds_StreakCappedAtWindow(t *testing.T) {
	th := ScaleThresholds(baseRules(), 2)

	assert.Equal(t, 2, th.Streak)
	assert.Equal(t, 1, th.HighDays) // ceil(7*2/30) = 1
	assert.Equal(t, 0, th.LowDays)  // floor(4*2/30) = 0
}

func TestScaleThresholds_HighDaysFlooredAtOne(t *testing.T) {
	th := ScaleThresholds(config.CriticalityRules{HighDays: 1, HighStreak: 1, LowDays: 0}, 1)

	assert.Equal(t, 1, th.HighDays)
	assert.Equal(t, 0, th.LowDays)
	assert.Equal(t, 1, th.Streak)
}

func TestScaleThresholds_DegenerateBaselinesGetFloored(t *testing.T) {
	th := ScaleThresholds(config.CriticalityRules{HighDays: 0, HighStreak: 0, LowDays: -3}, 30)

	assert.Equal(t, 1, th.HighDays)
	assert.Equal(t, 0, th.LowDays)
	assert.Equal(t, 1, th.Streak)
}

func TestScaleThresholds_MonotonicInWindowLength(t *testing.T) {
	rules := baseRules()

	prevHigh, prevLow := 0, 0
	for windowDays := 1; windowDays <= 30; windowDays++ {
		th := ScaleThresholds(rules, windowDays)

		assert.GreaterOrEqual(t, th.HighDays, prevHigh,
			"high days decreased at window %d", windowDays)
		assert.GreaterOrEqual(t, th.LowDays, prevLow,
			"low days decreased at window %d", windowDays)
		assert.GreaterOrEqual(t, th.LowDays, 0)

		prevHigh, prevLow = th.HighDays, th.LowDays
	}
}
