package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/router"
	"github.com/abhisek/lingodrill/internal/screen"
	corpusscreen "github.com/abhisek/lingodrill/internal/screens/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/ui/components"
)

// Options wires the home screen. Store and NewDrill are required.
type Options struct {
	Store *corpus.Store

	// NewDrill builds a fresh drill screen for each Start Drill.
	NewDrill func() screen.Screen

	// Warnings are shown under the stats, e.g. a missing grader key.
	Warnings []string

	Timeout time.Duration
	Now     func() time.Time
	Log     *zap.Logger
}

type reloadedMsg struct {
	Err error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts       Options
	menu       components.Menu
	menuLabels []string
	status     spacedrep.Status
	today      time.Time
	notice     string
	reloading  bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	h := &HomeScreen{
		opts:       opts,
		menuLabels: []string{"START DRILL", "CORPUS", "RELOAD DATA", "EXIT"},
	}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: opts.NewDrill()}
			}
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: corpusscreen.New(opts.Store, opts.Now)}
			}
		}},
		{Label: h.menuLabels[2], Action: h.reload},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refreshStatus()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh recomputes the due counts after a drill.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.refreshStatus()
	return nil
}

func (h *HomeScreen) refreshStatus() {
	h.today = corpus.Day(h.opts.Now())
	h.status = spacedrep.Summarize(h.opts.Store.Items(), h.today)
}

// reload reads the corpus back from storage, picking up edits made to the
// spreadsheet or database while the app was open.
func (h *HomeScreen) reload() tea.Cmd {
	if h.reloading {
		return nil
	}
	h.reloading = true
	store, now, timeout := h.opts.Store, h.opts.Now, h.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return reloadedMsg{Err: store.Load(ctx, now())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(reloadedMsg); ok {
		h.reloading = false
		if msg.Err != nil {
			h.opts.Log.Error("reload failed", zap.Error(msg.Err))
			h.notice = "Reload failed: " + msg.Err.Error()
		} else {
			h.notice = "Corpus reloaded."
		}
		h.refreshStatus()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.status, h.today, cw, compact))
	for _, w := range h.opts.Warnings {
		sections = append(sections, renderNotice(w, cw))
	}
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, cw))
	}
	sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, compact))

	content := strings.Join(sections, "\n\n")

	// Wrap in cabinet frame, centered in the full area
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
