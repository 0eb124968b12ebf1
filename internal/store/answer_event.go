package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var answerEventColumns = []string{
	"sequence", "timestamp", "session_id", "item", "category", "modality", "pool",
	"learner_answer", "correct", "score", "fault", "mastery_before", "mastery_after",
	"next_due_date", "time_ms",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var score sql.NullFloat64
	if data.Score != nil {
		score = sql.NullFloat64{Float64: *data.Score, Valid: true}
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEvents).
		Columns(answerEventColumns...).
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Item, data.Category,
			data.Modality, data.Pool, data.LearnerAnswer, data.Correct, score,
			data.Fault, data.MasteryBefore, data.MasteryAfter, data.NextDue, data.TimeMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventData, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(answerEventColumns[2:]...).
		From(b.Table(answerEvents)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventData
	for rows.Next() {
		var (
			a     AnswerEventData
			score sql.NullFloat64
		)
		if err := rows.Scan(&a.SessionID, &a.Item, &a.Category, &a.Modality, &a.Pool,
			&a.LearnerAnswer, &a.Correct, &score, &a.Fault, &a.MasteryBefore,
			&a.MasteryAfter, &a.NextDue, &a.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		if score.Valid {
			v := score.Float64
			a.Score = &v
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionEvents).
		Columns("sequence", "timestamp", "session_id", "action", "items_served",
			"correct_answers", "duration_secs", "due_at_start").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Action, data.ItemsServed,
			data.CorrectAnswers, data.DurationSecs, data.DueAtStart).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}
