package corpus

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Record is one persisted row as a storage backend sees it. Optional
// columns are nil when the backend has no value for them.
type Record struct {
	TargetText    string
	TTSText       string
	Pronunciation string
	Meaning       string
	Category      string
	Mastery       *int
	NextDue       *time.Time
}

// Storage is the persistence collaborator of the item store.
type Storage interface {
	// Load returns every stored row.
	Load(ctx context.Context) ([]Record, error)

	// Save replaces the stored rows with records. Implementations must
	// either persist all of them or leave the previous contents intact.
	Save(ctx context.Context, records []Record) error
}

// ToRecord converts an item to its persisted form.
func ToRecord(it Item) Record {
	mastery := it.Mastery
	due := Day(it.NextDue)
	return Record{
		TargetText:    it.TargetText,
		TTSText:       it.TTSText,
		Pronunciation: it.Pronunciation,
		Meaning:       it.Meaning,
		Category:      string(it.Category),
		Mastery:       &mastery,
		NextDue:       &due,
	}
}

// FromRecords builds items from loaded rows, applying column defaults:
// mastery 0 and next due today when missing. Rows with a blank target are
// dropped, as are later rows repeating an earlier target.
func FromRecords(records []Record, today time.Time, log *zap.Logger) []Item {
	if log == nil {
		log = zap.NewNop()
	}
	today = Day(today)

	items := make([]Item, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		target := strings.TrimSpace(r.TargetText)
		if target == "" {
			continue
		}
		if seen[target] {
			log.Warn("dropping duplicate corpus row", zap.Int("row", i), zap.String("target", target))
			continue
		}
		seen[target] = true

		it := Item{
			TargetText:    target,
			TTSText:       strings.TrimSpace(r.TTSText),
			Pronunciation: strings.TrimSpace(r.Pronunciation),
			Meaning:       strings.TrimSpace(r.Meaning),
			Category:      ParseCategory(r.Category),
			NextDue:       today,
		}
		if r.Mastery != nil {
			it.Mastery = *r.Mastery
		}
		if r.NextDue != nil && !r.NextDue.IsZero() {
			it.NextDue = Day(*r.NextDue)
		}
		if !it.Category.Known() {
			log.Warn("corpus row has unknown category", zap.String("target", target), zap.String("category", r.Category))
		}
		items = append(items, it)
	}
	return items
}
