package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path, nil)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}

func intp(v int) *int { return &v }

func TestItemRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	due := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	in := []corpus.Record{
		{TargetText: "น้ำ", TTSText: "น้ำ", Pronunciation: "náam", Meaning: "water",
			Category: "Word", Mastery: intp(3), NextDue: &due},
		{TargetText: "ก", Pronunciation: "gaw", Meaning: "chicken", Category: "Char", Mastery: intp(0)},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].TargetText != "น้ำ" || out[1].TargetText != "ก" {
		t.Fatalf("insertion order not kept: %q, %q", out[0].TargetText, out[1].TargetText)
	}
	if *out[0].Mastery != 3 {
		t.Errorf("mastery = %d, want 3", *out[0].Mastery)
	}
	if out[0].NextDue == nil || !out[0].NextDue.Equal(due) {
		t.Errorf("next due = %v, want %v", out[0].NextDue, due)
	}
	if out[1].NextDue != nil {
		t.Errorf("expected no due date for second item, got %v", out[1].NextDue)
	}
}

func TestItemRepoSaveReplacesRows(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, []corpus.Record{{TargetText: "a", Category: "Char"}, {TargetText: "b", Category: "Char"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := repo.Save(ctx, []corpus.Record{{TargetText: "c", Category: "Word"}}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].TargetText != "c" {
		t.Fatalf("expected only the second save, got %+v", out)
	}
}

func TestItemRepoSaveIsAtomic(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, []corpus.Record{{TargetText: "keep", Category: "Word"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Duplicate targets violate the unique index, so the whole save must roll back.
	err := repo.Save(ctx, []corpus.Record{{TargetText: "x", Category: "Word"}, {TargetText: "x", Category: "Word"}})
	if err == nil {
		t.Fatal("expected unique constraint error")
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].TargetText != "keep" {
		t.Fatalf("expected previous rows to survive, got %+v", out)
	}
}

func TestItemRepoLargeSaveBatches(t *testing.T) {
	s := openTestStore(t)
	repo := s.ItemRepo()
	ctx := context.Background()

	var in []corpus.Record
	for i := 0; i < insertBatch*2+7; i++ {
		in = append(in, corpus.Record{TargetText: time.Duration(i).String(), Category: "Word"})
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(out))
	}
}

func TestEventsShareGlobalSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Action: "start", DueAtStart: 4}); err != nil {
		t.Fatalf("session start: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "handwriting", Success: true}); err != nil {
		t.Fatalf("llm: %v", err)
	}
	score := 91.5
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", Item: "ก", Category: "Char", Modality: "char_writing",
		Correct: true, Score: &score, MasteryBefore: 1, MasteryAfter: 2, NextDue: "2024-03-12",
	}); err != nil {
		t.Fatalf("answer: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm: %v", err)
	}
	if len(events) != 1 || events[0].Sequence != 2 {
		t.Fatalf("expected llm event at sequence 2, got %+v", events)
	}

	var answerSeq int64
	if err := s.DB().QueryRow("SELECT sequence FROM answer_events").Scan(&answerSeq); err != nil {
		t.Fatalf("read answer sequence: %v", err)
	}
	if answerSeq != 3 {
		t.Fatalf("expected answer at sequence 3, got %d", answerSeq)
	}
}

func TestSessionAnswers(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	score := 72.0
	_ = repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", Item: "a", Correct: true, Score: &score})
	_ = repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s2", Item: "b"})
	_ = repo.AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s1", Item: "c", Fault: "grader"})

	answers, err := repo.SessionAnswers(ctx, "s1")
	if err != nil {
		t.Fatalf("session answers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers[0].Item != "a" || answers[1].Item != "c" {
		t.Fatalf("unexpected order: %q, %q", answers[0].Item, answers[1].Item)
	}
	if answers[0].Score == nil || *answers[0].Score != 72 {
		t.Errorf("expected score 72, got %v", answers[0].Score)
	}
	if answers[1].Score != nil {
		t.Errorf("expected nil score, got %v", *answers[1].Score)
	}
	if answers[1].Fault != "grader" {
		t.Errorf("expected grader fault, got %q", answers[1].Fault)
	}
}

func TestLLMEventQueries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "handwriting", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true, RequestBody: "req"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "handwriting", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "check", InputTokens: 5, OutputTokens: 1, LatencyMs: 40, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recent) != 2 || recent[0].Purpose != "check" {
		t.Fatalf("expected newest first with limit, got %+v", recent)
	}

	hw, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "handwriting"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(hw) != 2 {
		t.Fatalf("expected 2 handwriting events, got %d", len(hw))
	}

	first, err := repo.GetLLMEvent(ctx, hw[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first == nil || first.RequestBody != "req" {
		t.Fatalf("unexpected event: %+v", first)
	}
	if first.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "handwriting" {
		t.Fatalf("unexpected purpose usage: %+v", byPurpose)
	}
	if byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 150 || byPurpose[0].AvgLatencyMs != 200 {
		t.Fatalf("unexpected handwriting totals: %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].OutputTokens != 30 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}
