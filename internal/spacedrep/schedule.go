package spacedrep

import "github.com/abhisek/lingodrill/internal/corpus"

// Growth selects how fast the review interval widens after a correct answer.
type Growth int

const (
	// GrowthStandard schedules the next review 2*m+1 days out, where m is
	// the mastery count before the answer.
	GrowthStandard Growth = iota

	// GrowthNarrow schedules the next review m+1 days out. Handwriting
	// rounds use it.
	GrowthNarrow
)

// IntervalDays returns the number of days until the next review after a
// correct answer at the given mastery count. Negative intervals, possible
// once mastery has gone below zero, are clamped to zero.
func IntervalDays(before int, g Growth) int {
	var days int
	switch g {
	case GrowthNarrow:
		days = before + 1
	default:
		days = 2*before + 1
	}
	if days < 0 {
		return 0
	}
	return days
}

// IntervalFor is a convenience for the item's current mastery.
func IntervalFor(it corpus.Item, g Growth) int {
	return IntervalDays(it.Mastery, g)
}
