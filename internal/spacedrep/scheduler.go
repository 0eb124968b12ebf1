package spacedrep

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
)

// ErrEmptyCorpus is returned when there is nothing to select. It is fatal
// for a session.
var ErrEmptyCorpus = errors.New("corpus is empty")

// Pool tells whether a selection came from the due set or from free
// practice over the whole corpus.
type Pool string

const (
	PoolReview Pool = "review"
	PoolFree   Pool = "free"
)

// Selection is the outcome of SelectNext.
type Selection struct {
	Item     corpus.Item
	Pool     Pool
	DueCount int
}

// Scheduler picks the next item to quiz.
type Scheduler struct {
	rng *rand.Rand
}

// NewScheduler creates a scheduler drawing from rng. A nil rng uses a
// randomly seeded source.
func NewScheduler(rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scheduler{rng: rng}
}

// DueItems returns the items due on the given day, in input order.
func DueItems(items []corpus.Item, today time.Time) []corpus.Item {
	var due []corpus.Item
	for _, it := range items {
		if it.IsDue(today) {
			due = append(due, it)
		}
	}
	return due
}

// SelectNext picks an item uniformly at random. Due items are preferred;
// when none are due the whole corpus is eligible. The item identified by
// excludedID is skipped unless it is the only candidate, so the same item
// is not asked twice in a row.
func (s *Scheduler) SelectNext(items []corpus.Item, excludedID string, today time.Time) (Selection, error) {
	due := DueItems(items, today)

	sel := Selection{Pool: PoolReview, DueCount: len(due)}
	pool := due
	if len(pool) == 0 {
		sel.Pool = PoolFree
		pool = items
	}
	if len(pool) == 0 {
		return Selection{}, ErrEmptyCorpus
	}

	if len(pool) > 1 && excludedID != "" {
		filtered := make([]corpus.Item, 0, len(pool))
		for _, it := range pool {
			if it.ID() != excludedID {
				filtered = append(filtered, it)
			}
		}
		pool = filtered
	}

	sel.Item = pool[s.rng.IntN(len(pool))]
	return sel, nil
}
