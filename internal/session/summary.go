package session

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
)

// CategoryResult tracks answers for one category within a session.
type CategoryResult struct {
	Category corpus.Category
	Attempts int
	Correct  int
}

// Accuracy returns Correct / Attempts, or 0 before the first attempt.
func (r CategoryResult) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

func (r *CategoryResult) record(correct bool) {
	r.Attempts++
	if correct {
		r.Correct++
	}
}

// Stats are the per-session counters shown in the drill header.
type Stats struct {
	Served  int // rounds presented
	Graded  int // rounds that changed the schedule
	Correct int
	Faulted int // rounds graded with a Fault

	StartedAt time.Time

	perCategory map[corpus.Category]*CategoryResult
}

func newStats(now time.Time) Stats {
	return Stats{StartedAt: now, perCategory: make(map[corpus.Category]*CategoryResult)}
}

func (s *Stats) record(c corpus.Category, correct bool) {
	s.Graded++
	if correct {
		s.Correct++
	}
	r, ok := s.perCategory[c]
	if !ok {
		r = &CategoryResult{Category: c}
		s.perCategory[c] = r
	}
	r.record(correct)
}

// Accuracy returns Correct / Graded, or 0 before the first graded round.
func (s Stats) Accuracy() float64 {
	if s.Graded == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Graded)
}

// Summary holds the data displayed when a session ends.
type Summary struct {
	Duration time.Duration
	Stats    Stats

	// Categories are ordered as corpus.Categories, unknown ones last.
	Categories []CategoryResult
}

// BuildSummary creates a Summary from the session's counters.
func BuildSummary(stats Stats, now time.Time) Summary {
	results := make([]CategoryResult, 0, len(stats.perCategory))
	for _, r := range stats.perCategory {
		results = append(results, *r)
	}
	slices.SortFunc(results, func(a, b CategoryResult) int {
		if d := categoryRank(a.Category) - categoryRank(b.Category); d != 0 {
			return d
		}
		return strings.Compare(string(a.Category), string(b.Category))
	})

	return Summary{
		Duration:   now.Sub(stats.StartedAt),
		Stats:      stats,
		Categories: results,
	}
}

func categoryRank(c corpus.Category) int {
	if i := slices.Index(corpus.Categories, c); i >= 0 {
		return i
	}
	return len(corpus.Categories)
}
