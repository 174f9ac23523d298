package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func days(dates ...string) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic(err)
		}
		out[i] = t
	}
	return out
}

func TestMaxConsecutiveDays(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"single day", days("2024-01-01"), 1},
		{"two adjacent", days("2024-01-01", "2024-01-02"), 2},
		{"gap resets the run", days("2024-01-01", "2024-01-02", "2024-01-04"), 2},
		{"run after a gap", days("2024-01-01", "2024-01-03", "2024-01-04", "2024-01-05"), 3},
		{"all isolated", days("2024-01-01", "2024-01-05", "2024-01-10"), 1},
		{"month boundary", days("2024-01-31", "2024-02-01", "2024-02-02"), 3},
		{"year boundary", days("2023-12-31", "2024-01-01"), 2},
		{"whole week", days("2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxConsecutiveDays(tt.dates))
		})
	}
}
