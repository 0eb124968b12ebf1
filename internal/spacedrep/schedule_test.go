package spacedrep

import "testing"

func TestIntervalDays(t *testing.T) {
	tests := []struct {
		before int
		growth Growth
		want   int
	}{
		{0, GrowthStandard, 1},
		{1, GrowthStandard, 3},
		{4, GrowthStandard, 9},
		{0, GrowthNarrow, 1},
		{1, GrowthNarrow, 2},
		{4, GrowthNarrow, 5},
		{-1, GrowthStandard, 0},
		{-5, GrowthStandard, 0},
		{-1, GrowthNarrow, 0},
		{-3, GrowthNarrow, 0},
	}
	for _, tt := range tests {
		if got := IntervalDays(tt.before, tt.growth); got != tt.want {
			t.Errorf("IntervalDays(%d, %d) = %d, want %d", tt.before, tt.growth, got, tt.want)
		}
	}
}
