package spacedrep

import (
	"sort"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
)

// CategoryStatus summarizes review state for one category.
type CategoryStatus struct {
	Category corpus.Category
	Total    int
	Due      int
}

// Status summarizes review state across the corpus.
type Status struct {
	Total      int
	Due        int
	NextDue    time.Time // earliest upcoming review among items not yet due
	Categories []CategoryStatus
}

// Summarize computes the review status for the given day. Categories are
// listed in the built-in order, followed by unknown ones sorted by name.
func Summarize(items []corpus.Item, today time.Time) Status {
	st := Status{Total: len(items)}
	byCat := make(map[corpus.Category]*CategoryStatus)

	for _, it := range items {
		cs, ok := byCat[it.Category]
		if !ok {
			cs = &CategoryStatus{Category: it.Category}
			byCat[it.Category] = cs
		}
		cs.Total++
		if it.IsDue(today) {
			cs.Due++
			st.Due++
			continue
		}
		if st.NextDue.IsZero() || it.NextDue.Before(st.NextDue) {
			st.NextDue = it.NextDue
		}
	}

	for _, c := range corpus.Categories {
		if cs, ok := byCat[c]; ok {
			st.Categories = append(st.Categories, *cs)
			delete(byCat, c)
		}
	}
	var rest []CategoryStatus
	for _, cs := range byCat {
		rest = append(rest, *cs)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Category < rest[j].Category })
	st.Categories = append(st.Categories, rest...)
	return st
}
