package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/router"
	"github.com/abhisek/lingodrill/internal/screen"
	"github.com/abhisek/lingodrill/internal/screens/drill"
	"github.com/abhisek/lingodrill/internal/screens/home"
	"github.com/abhisek/lingodrill/internal/session"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/speech"
	"github.com/abhisek/lingodrill/internal/ui/layout"
)

// Deps are the collaborators the TUI drives. Store and NewSession are
// required.
type Deps struct {
	Store *corpus.Store

	// NewSession creates the session behind each drill.
	NewSession func() *session.Session

	Synth  speech.Synthesizer
	Player *speech.Player

	// Warnings are shown on the home screen.
	Warnings []string

	Timeout time.Duration
	Log     *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	store  *corpus.Store
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	newDrill := func() screen.Screen {
		return drill.New(drill.Options{
			Session: deps.NewSession(),
			Synth:   deps.Synth,
			Player:  deps.Player,
			Timeout: deps.Timeout,
			Log:     deps.Log,
		})
	}
	homeScreen := home.New(home.Options{
		Store:    deps.Store,
		NewDrill: newDrill,
		Warnings: deps.Warnings,
		Timeout:  deps.Timeout,
		Log:      deps.Log,
	})
	return AppModel{
		router: router.New(homeScreen),
		store:  deps.Store,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Screens that define their own hints handle Esc themselves, e.g.
		// the drill asks before ending.
		if msg.String() == "esc" && m.router.Depth() > 1 {
			if _, ok := m.router.Active().(screen.KeyHintProvider); !ok {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(active), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerStatus prefers the active screen's own counters and falls back to
// the number of items due today.
func (m AppModel) headerStatus(active screen.Screen) string {
	if sp, ok := active.(screen.StatusProvider); ok {
		return sp.HeaderStatus()
	}
	st := spacedrep.Summarize(m.store.Items(), time.Now())
	return fmt.Sprintf("⚡ %d due", st.Due)
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
