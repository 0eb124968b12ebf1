// Package corpus is the screen that lists every item with its level and
// next review date.
package corpus

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	vocab "github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/router"
	"github.com/abhisek/lingodrill/internal/screen"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/ui/layout"
	"github.com/abhisek/lingodrill/internal/ui/theme"
)

type itemsLoadedMsg struct {
	Items []vocab.Item
	Today time.Time
}

// filters cycles with Tab. The empty category shows everything.
var filters = append([]vocab.Category{""}, vocab.Categories...)

// CorpusScreen lists the corpus.
type CorpusScreen struct {
	store    *vocab.Store
	now      func() time.Time
	items    []vocab.Item
	today    time.Time
	filter   int
	selected int
	expanded map[string]bool
	loaded   bool
}

var _ screen.Screen = (*CorpusScreen)(nil)
var _ screen.KeyHintProvider = (*CorpusScreen)(nil)

// New creates a CorpusScreen over store. now defaults to time.Now.
func New(store *vocab.Store, now func() time.Time) *CorpusScreen {
	if now == nil {
		now = time.Now
	}
	return &CorpusScreen{
		store:    store,
		now:      now,
		expanded: make(map[string]bool),
	}
}

func (s *CorpusScreen) Init() tea.Cmd {
	store, now := s.store, s.now
	return func() tea.Msg {
		return itemsLoadedMsg{Items: store.Items(), Today: vocab.Day(now())}
	}
}

func (s *CorpusScreen) Title() string {
	return "Corpus"
}

func (s *CorpusScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Tab", Description: "Category"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CorpusScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		s.items = msg.Items
		s.today = msg.Today
		s.loaded = true
		s.selected = 0
		return s, nil

	case tea.KeyMsg:
		visible := s.visible()
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(visible)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(visible) {
				id := visible[s.selected].ID()
				s.expanded[id] = !s.expanded[id]
			}
		case "tab":
			s.filter = (s.filter + 1) % len(filters)
			s.selected = 0
		}
	}
	return s, nil
}

// visible returns the items matching the category filter.
func (s *CorpusScreen) visible() []vocab.Item {
	cat := filters[s.filter]
	if cat == "" {
		return s.items
	}
	var out []vocab.Item
	for _, it := range s.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

func (s *CorpusScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading corpus...")
	}
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The corpus is empty. Import a spreadsheet to get started.")
	}

	var b strings.Builder
	b.WriteString(s.renderStatus(width))
	b.WriteString("\n\n")

	visible := s.visible()
	// Keep the selection inside the window; two lines go to the status.
	rows := max(height-4, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(visible))

	for i := start; i < end; i++ {
		it := visible[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%-16s %-9s Lv.%-3d %s",
			prefix, truncate(it.TargetText, 16), it.Category, it.Mastery, dueLabel(it, s.today))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case it.IsDue(s.today):
			style = style.Foreground(theme.ArcadeCyan)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[it.ID()] {
			detail := fmt.Sprintf("    %s · %s", it.Pronunciation, it.Meaning)
			if it.TTSText != "" {
				detail += fmt.Sprintf(" · speaks %q", it.TTSText)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *CorpusScreen) renderStatus(width int) string {
	st := spacedrep.Summarize(s.items, s.today)
	parts := []string{fmt.Sprintf("%d items", st.Total), fmt.Sprintf("%d due", st.Due)}
	for _, cs := range st.Categories {
		parts = append(parts, fmt.Sprintf("%s %d/%d", cs.Category, cs.Due, cs.Total))
	}
	filter := "All"
	if c := filters[s.filter]; c != "" {
		filter = string(c)
	}
	parts = append(parts, "showing "+filter)
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(strings.Join(parts, "   "))
}

func dueLabel(it vocab.Item, today time.Time) string {
	days := spacedrep.DaysUntilReview(it, today)
	switch {
	case days <= 0:
		return "due now"
	case days == 1:
		return "due tomorrow"
	}
	return fmt.Sprintf("due %s (in %d days)", vocab.FormatDate(it.NextDue), days)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
