package spacedrep

import (
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
)

// Outcome is what the grader decided about one round.
type Outcome struct {
	Correct bool
	Growth  Growth
}

// Apply updates an item's mastery and next review day for one graded
// round. It is the only place that writes those two fields.
//
// A correct answer raises mastery by one and pushes the item out by the
// interval for the mastery it had before the answer. A wrong answer lowers
// mastery by one, without a floor, and makes the item due today.
func Apply(it *corpus.Item, o Outcome, today time.Time) {
	today = corpus.Day(today)
	if o.Correct {
		days := IntervalDays(it.Mastery, o.Growth)
		it.Mastery++
		it.NextDue = corpus.AddDays(today, days)
		return
	}
	it.Mastery--
	it.NextDue = today
}

// DaysUntilReview returns the number of days until the item is due.
// Returns 0 if already due.
func DaysUntilReview(it corpus.Item, today time.Time) int {
	if it.IsDue(today) {
		return 0
	}
	return int(it.NextDue.Sub(corpus.Day(today)).Hours() / 24)
}
