package spacedrep

import (
	"testing"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
)

var today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestApply_Correct(t *testing.T) {
	it := corpus.Item{TargetText: "น้ำ", Mastery: 2, NextDue: today}
	Apply(&it, Outcome{Correct: true}, today)

	if it.Mastery != 3 {
		t.Errorf("Mastery = %d, want 3", it.Mastery)
	}
	want := today.AddDate(0, 0, 5)
	if !it.NextDue.Equal(want) {
		t.Errorf("NextDue = %v, want %v", it.NextDue, want)
	}
}

func TestApply_CorrectNarrow(t *testing.T) {
	it := corpus.Item{TargetText: "น้ำ", Mastery: 2, NextDue: today}
	Apply(&it, Outcome{Correct: true, Growth: GrowthNarrow}, today)

	if it.Mastery != 3 {
		t.Errorf("Mastery = %d, want 3", it.Mastery)
	}
	want := today.AddDate(0, 0, 3)
	if !it.NextDue.Equal(want) {
		t.Errorf("NextDue = %v, want %v", it.NextDue, want)
	}
}

func TestApply_IncorrectHasNoFloor(t *testing.T) {
	it := corpus.Item{TargetText: "น้ำ", Mastery: 0, NextDue: today.AddDate(0, 0, 4)}
	Apply(&it, Outcome{Correct: false}, today)
	Apply(&it, Outcome{Correct: false}, today)

	if it.Mastery != -2 {
		t.Errorf("Mastery = %d, want -2", it.Mastery)
	}
	if !it.NextDue.Equal(today) {
		t.Errorf("NextDue = %v, want today", it.NextDue)
	}
}

func TestApply_NegativeMasteryNeverSchedulesInPast(t *testing.T) {
	it := corpus.Item{TargetText: "น้ำ", Mastery: -3, NextDue: today}
	Apply(&it, Outcome{Correct: true}, today)

	if it.Mastery != -2 {
		t.Errorf("Mastery = %d, want -2", it.Mastery)
	}
	if it.NextDue.Before(today) {
		t.Errorf("NextDue = %v is before today", it.NextDue)
	}
}

func TestApply_CorrectStreakIsMonotonic(t *testing.T) {
	it := corpus.Item{TargetText: "ก", NextDue: today}
	day := today
	prevGap := -1
	for i := 0; i < 6; i++ {
		Apply(&it, Outcome{Correct: true}, day)
		gap := int(it.NextDue.Sub(day).Hours() / 24)
		if gap <= prevGap {
			t.Fatalf("round %d: gap %d did not grow past %d", i, gap, prevGap)
		}
		if it.Mastery != i+1 {
			t.Fatalf("round %d: Mastery = %d, want %d", i, it.Mastery, i+1)
		}
		prevGap = gap
		day = it.NextDue
	}
}

func TestApply_TruncatesToDay(t *testing.T) {
	it := corpus.Item{TargetText: "ก"}
	Apply(&it, Outcome{Correct: false}, today.Add(17*time.Hour))
	if !it.NextDue.Equal(today) {
		t.Errorf("NextDue = %v, want %v", it.NextDue, today)
	}
}

func TestDaysUntilReview(t *testing.T) {
	it := corpus.Item{NextDue: today.AddDate(0, 0, 3)}
	if got := DaysUntilReview(it, today); got != 3 {
		t.Errorf("DaysUntilReview = %d, want 3", got)
	}
	if got := DaysUntilReview(it, today.AddDate(0, 0, 5)); got != 0 {
		t.Errorf("DaysUntilReview after due = %d, want 0", got)
	}
}
