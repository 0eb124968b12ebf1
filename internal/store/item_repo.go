package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/lingodrill/internal/corpus"
	"go.uber.org/zap"
)

var itemColumns = []string{
	"target_text", "tts_text", "pronunciation", "meaning",
	"category", "mastery_count", "next_due_date",
}

// ItemRepo is the SQLite corpus.Storage. Rows are kept in insertion order.
type ItemRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func (r *ItemRepo) Load(ctx context.Context) ([]corpus.Record, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(itemColumns...).
		From(b.Table(itemsTable)).
		OrderBy("id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []corpus.Record
	for rows.Next() {
		var (
			rec     corpus.Record
			mastery int
			due     string
		)
		if err := rows.Scan(&rec.TargetText, &rec.TTSText, &rec.Pronunciation, &rec.Meaning,
			&rec.Category, &mastery, &due); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		rec.Mastery = &mastery
		if due != "" {
			d, err := corpus.ParseDate(due)
			if err != nil {
				r.log.Warn("unparseable next due date", zap.String("target", rec.TargetText), zap.String("value", due))
			} else {
				rec.NextDue = &d
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Save replaces all rows in one transaction.
func (r *ItemRepo) Save(ctx context.Context, records []corpus.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	b := entsql.Dialect(dialect.SQLite)
	del, args := b.Delete(itemsTable).Query()
	if _, err := tx.ExecContext(ctx, del, args...); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	for start := 0; start < len(records); start += insertBatch {
		end := min(start+insertBatch, len(records))
		ins := b.Insert(itemsTable).Columns(itemColumns...)
		for _, rec := range records[start:end] {
			mastery := 0
			if rec.Mastery != nil {
				mastery = *rec.Mastery
			}
			due := ""
			if rec.NextDue != nil {
				due = corpus.FormatDate(*rec.NextDue)
			}
			ins.Values(rec.TargetText, rec.TTSText, rec.Pronunciation, rec.Meaning,
				rec.Category, mastery, due)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// insertBatch keeps each statement under SQLite's bound-parameter limit.
const insertBatch = 100
