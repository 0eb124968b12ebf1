package corpus

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	vocab "github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/router"
)

var today = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

func testScreen(t *testing.T) *CorpusScreen {
	t.Helper()
	two := 2
	later := today.AddDate(0, 0, 3)
	storage := vocab.NewMemoryStorage(
		vocab.Record{TargetText: "ก", Meaning: "chicken", Category: "Char"},
		vocab.Record{TargetText: "น้ำ", Meaning: "water", Category: "Word", Mastery: &two, NextDue: &later},
		vocab.Record{TargetText: "สวัสดี ครับ", Meaning: "hello", Category: "Sentence"},
	)
	st := vocab.NewStore(storage, nil)
	if err := st.Load(context.Background(), today); err != nil {
		t.Fatalf("load: %v", err)
	}
	s := New(st, func() time.Time { return today })
	s.Update(s.Init()())
	return s
}

func TestCorpusScreen_Title(t *testing.T) {
	s := New(vocab.NewStore(vocab.NewMemoryStorage(), nil), nil)
	if s.Title() != "Corpus" {
		t.Errorf("Title = %q, want %q", s.Title(), "Corpus")
	}
}

func TestCorpusScreen_ListsItemsWithDueState(t *testing.T) {
	s := testScreen(t)
	view := s.View(100, 30)

	for _, want := range []string{"3 items", "2 due", "due now", "in 3 days", "Lv.2"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestCorpusScreen_FilterAndExpand(t *testing.T) {
	s := testScreen(t)

	// All -> Char -> Word.
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := s.visible(); len(got) != 1 || got[0].TargetText != "น้ำ" {
		t.Fatalf("expected only the word, got %+v", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "water") {
		t.Error("expected expanded details")
	}
}

func TestCorpusScreen_EmptyCorpus(t *testing.T) {
	s := New(vocab.NewStore(vocab.NewMemoryStorage(), nil), nil)
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "empty") {
		t.Error("expected empty corpus message")
	}
}

func TestCorpusScreen_EscGoesBack(t *testing.T) {
	s := testScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected Esc to pop the screen")
	}
}
