package home

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/router"
	"github.com/abhisek/lingodrill/internal/screen"
	corpusscreen "github.com/abhisek/lingodrill/internal/screens/corpus"
)

var today = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                              { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                       { return "drill" }
func (stubScreen) Title() string                              { return "Drill" }

func testHome(t *testing.T, records ...corpus.Record) (*HomeScreen, *corpus.MemoryStorage) {
	t.Helper()
	storage := corpus.NewMemoryStorage(records...)
	st := corpus.NewStore(storage, nil)
	if err := st.Load(context.Background(), today); err != nil {
		t.Fatalf("load: %v", err)
	}
	h := New(Options{
		Store:    st,
		NewDrill: func() screen.Screen { return stubScreen{} },
		Now:      func() time.Time { return today },
	})
	return h, storage
}

func down(h *HomeScreen, n int) {
	for range n {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func TestHomeScreen_ShowsDueStatus(t *testing.T) {
	h, _ := testHome(t,
		corpus.Record{TargetText: "ก", Category: "Char"},
		corpus.Record{TargetText: "น้ำ", Category: "Word"},
	)
	view := h.View(120, 40)
	for _, want := range []string{"2 ITEMS", "2 DUE", "START DRILL", "RELOAD DATA"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestHomeScreen_StartDrillPushesNewDrill(t *testing.T) {
	h, _ := testHome(t)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if msg.Screen.Title() != "Drill" {
		t.Errorf("expected drill screen, got %q", msg.Screen.Title())
	}
}

func TestHomeScreen_CorpusPushesCorpusScreen(t *testing.T) {
	h, _ := testHome(t)
	down(h, 1)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := cmd().(router.PushScreenMsg)
	if _, ok := msg.Screen.(*corpusscreen.CorpusScreen); !ok {
		t.Errorf("expected corpus screen, got %T", msg.Screen)
	}
}

func TestHomeScreen_ReloadPicksUpNewRows(t *testing.T) {
	h, storage := testHome(t, corpus.Record{TargetText: "ก", Category: "Char"})

	if err := storage.Save(context.Background(), []corpus.Record{
		{TargetText: "ก", Category: "Char"},
		{TargetText: "ข", Category: "Char"},
	}); err != nil {
		t.Fatal(err)
	}

	down(h, 2)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	h.Update(cmd())

	if h.status.Total != 2 {
		t.Errorf("expected 2 items after reload, got %d", h.status.Total)
	}
	if !strings.Contains(h.View(120, 40), "Corpus reloaded") {
		t.Error("expected reload notice")
	}
}

func TestHomeScreen_ReloadFailureKeepsCorpus(t *testing.T) {
	h, storage := testHome(t, corpus.Record{TargetText: "ก", Category: "Char"})
	storage.LoadErr = errors.New("locked")

	down(h, 2)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	h.Update(cmd())

	if h.status.Total != 1 {
		t.Errorf("expected previous corpus kept, got %d items", h.status.Total)
	}
	if !strings.Contains(h.notice, "locked") {
		t.Errorf("unexpected notice %q", h.notice)
	}
}
