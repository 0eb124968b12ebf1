// Package drill is the interactive quiz screen. It drives a
// session.Session and runs every blocking call as a tea.Cmd.
package drill

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/router"
	"github.com/abhisek/lingodrill/internal/screen"
	"github.com/abhisek/lingodrill/internal/screens/summary"
	"github.com/abhisek/lingodrill/internal/session"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/speech"
	"github.com/abhisek/lingodrill/internal/ui/components"
	"github.com/abhisek/lingodrill/internal/ui/layout"
)

// DefaultTimeout bounds each grading, synthesis or save call when
// Options.Timeout is zero.
const DefaultTimeout = 45 * time.Second

var errAudioUnavailable = errors.New("audio unavailable")

// Options wires the screen's collaborators. Session is required.
type Options struct {
	Session *session.Session

	// Synth is optional; nil disables audio prompts.
	Synth  speech.Synthesizer
	Player *speech.Player

	Timeout time.Duration
	Log     *zap.Logger
}

// DrillScreen implements screen.Screen for an active drill.
type DrillScreen struct {
	opts Options
	sess *session.Session

	round  *quiz.Round
	result *grading.Result
	stats  session.Stats

	choice components.MultiChoice
	input  components.TextInput

	busy        string // label of the call in flight, empty when idle
	notice      string // retry prompt after an unusable answer
	saveErr     error
	audioNote   string
	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)

// New creates a drill screen for sess.
func New(opts Options) *DrillScreen {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Player == nil {
		opts.Player = &speech.Player{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &DrillScreen{
		opts:  opts,
		sess:  opts.Session,
		stats: opts.Session.Stats(),
		busy:  "Preparing your drill...",
	}
}

func (d *DrillScreen) Init() tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		sess.Start(ctx)
		return startedMsg{}
	}
}

func (d *DrillScreen) Title() string {
	return "Drill"
}

// HeaderStatus shows the running score.
func (d *DrillScreen) HeaderStatus() string {
	return fmt.Sprintf("✓ %d/%d  served %d", d.stats.Correct, d.stats.Graded, d.stats.Served)
}

func (d *DrillScreen) KeyHints() []layout.KeyHint {
	switch {
	case d.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case d.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End drill"},
			{Key: "N", Description: "Keep going"},
		}
	case d.result != nil:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if d.opts.Synth != nil {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Replay audio"})
		}
		if d.saveErr != nil {
			hints = append(hints, layout.KeyHint{Key: "S", Description: "Retry save"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "End"})
	case d.round != nil && d.round.Modality.IsChoice():
		hints := []layout.KeyHint{
			{Key: "1-4", Description: "Pick"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
		}
		return append(hints, d.commonHints()...)
	}
	return append([]layout.KeyHint{{Key: "Enter", Description: "Submit"}}, d.commonHints()...)
}

func (d *DrillScreen) commonHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if d.round != nil && d.round.Modality.PlaysAudio() && d.opts.Synth != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Listen"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+R", Description: "Reload"},
		layout.KeyHint{Key: "Esc", Description: "End"},
	)
}

func (d *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return d, d.nextCmd()

	case roundReadyMsg:
		return d.handleRound(msg)

	case gradedMsg:
		return d.handleGraded(msg)

	case audioDoneMsg:
		d.handleAudio(msg)
		return d, nil

	case flushedMsg:
		d.busy = ""
		d.saveErr = msg.Err
		return d, nil

	case reloadedMsg:
		if msg.Err != nil {
			d.busy = ""
			d.notice = "Reload failed: " + msg.Err.Error()
			return d, nil
		}
		d.round, d.result, d.saveErr = nil, nil, nil
		return d, d.nextCmd()

	case endedMsg:
		return d, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(msg.Summary)}
		}

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.presentingText() {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DrillScreen) handleRound(msg roundReadyMsg) (screen.Screen, tea.Cmd) {
	d.busy = ""
	if msg.Err != nil {
		if errors.Is(msg.Err, spacedrep.ErrEmptyCorpus) {
			d.errMsg = "The corpus is empty. Import some items first."
		} else {
			d.errMsg = msg.Err.Error()
		}
		return d, nil
	}

	d.round = msg.Round
	d.result = nil
	d.notice = ""
	d.audioNote = ""
	d.saveErr = nil
	d.stats.Served++

	var cmds []tea.Cmd
	if d.round.Modality.IsChoice() {
		d.choice = components.NewMultiChoice(d.round.OptionLabels(), d.round.CorrectIndex())
	} else {
		d.input = components.NewTextInput(placeholder(d.round.Modality.Family()), 0)
		cmds = append(cmds, d.input.Init())
	}
	if d.round.Modality.PlaysAudio() {
		cmds = append(cmds, d.playCmd(d.round.Item))
	}
	return d, tea.Batch(cmds...)
}

func (d *DrillScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	d.busy = ""
	if msg.Result == nil {
		d.notice = Describe(msg.Err)
		d.choice.Reset()
		d.input.Reopen()
		return d, nil
	}

	d.result = msg.Result
	d.stats = msg.Stats
	d.saveErr = msg.Err
	d.notice = ""
	if d.round.Modality.IsChoice() {
		d.choice.Reveal()
	} else {
		d.input.Submit(msg.Result.Correct)
	}
	if msg.Err != nil {
		d.opts.Log.Warn("answer not saved", zap.Error(msg.Err))
	}
	return d, nil
}

func (d *DrillScreen) handleAudio(msg audioDoneMsg) {
	switch {
	case msg.Err != nil:
		d.audioNote = "Audio unavailable."
		if !errors.Is(msg.Err, errAudioUnavailable) {
			d.opts.Log.Warn("audio playback failed", zap.Error(msg.Err))
		}
	case msg.Path != "":
		d.audioNote = "Audio saved to " + msg.Path
	default:
		d.audioNote = ""
	}
}

func (d *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if d.errMsg != "" {
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if d.quitConfirm {
		switch key {
		case "y", "Y":
			d.quitConfirm = false
			return d, d.endCmd()
		case "n", "N", "esc":
			d.quitConfirm = false
		}
		return d, nil
	}

	// One blocking call at a time.
	if d.busy != "" {
		return d, nil
	}

	switch key {
	case "esc":
		d.quitConfirm = true
		return d, nil
	case "ctrl+r":
		d.busy = "Reloading corpus..."
		return d, d.reloadCmd()
	case "ctrl+l":
		if d.round != nil && d.round.Modality.PlaysAudio() {
			return d, d.playCmd(d.round.Item)
		}
		return d, nil
	}

	if d.result != nil {
		return d.handleResultKey(key)
	}
	if d.round == nil {
		return d, nil
	}

	if d.round.Modality.IsChoice() {
		var cmd tea.Cmd
		d.choice, cmd = d.choice.Update(msg)
		if d.choice.Submitted {
			return d, d.submit(d.choice.ChosenIndex, "")
		}
		return d, cmd
	}

	if key == "enter" {
		v := d.input.Value()
		if v == "" {
			return d, nil
		}
		return d, d.submit(-1, v)
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *DrillScreen) handleResultKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "space", "n":
		if err := d.sess.Advance(); err != nil {
			d.errMsg = err.Error()
			return d, nil
		}
		d.round, d.result, d.saveErr = nil, nil, nil
		return d, d.nextCmd()
	case "r", "R":
		return d, d.playCmd(d.round.Item)
	case "s", "S":
		if d.saveErr != nil {
			d.busy = "Saving..."
			return d, d.flushCmd()
		}
	}
	return d, nil
}

// submit builds the response and grades it asynchronously. A response that
// cannot be built, e.g. a missing image file, becomes a retry prompt.
func (d *DrillScreen) submit(chosen int, value string) tea.Cmd {
	resp, err := BuildResponse(d.round, chosen, value)
	if err != nil {
		d.notice = Describe(err)
		d.choice.Reset()
		return nil
	}
	d.notice = ""
	d.busy = "Grading..."
	if !d.round.Modality.IsChoice() {
		d.input.Submit(false)
	}

	sess := d.sess
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		res, err := sess.Submit(ctx, resp)
		return gradedMsg{Result: res, Err: err, Stats: sess.Stats()}
	}
}

func (d *DrillScreen) nextCmd() tea.Cmd {
	d.busy = "Picking the next item..."
	sess := d.sess
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		r, err := sess.Next(ctx)
		return roundReadyMsg{Round: r, Err: err}
	}
}

func (d *DrillScreen) flushCmd() tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		return flushedMsg{Err: sess.RetryFlush(ctx)}
	}
}

func (d *DrillScreen) reloadCmd() tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		return reloadedMsg{Err: sess.Reload(ctx)}
	}
}

func (d *DrillScreen) endCmd() tea.Cmd {
	sess := d.sess
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		return endedMsg{Summary: sess.End(ctx)}
	}
}

// playCmd synthesizes the item's audio and plays it. Without a player the
// audio is written to disk so it can be opened by hand.
func (d *DrillScreen) playCmd(it corpus.Item) tea.Cmd {
	synth, player, log := d.opts.Synth, d.opts.Player, d.opts.Log
	if synth == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := d.callContext()
		defer cancel()
		text := it.SpeechText()
		audio, err := synth.Synthesize(ctx, text)
		if err != nil {
			log.Warn("synthesize", zap.String("item", it.ID()), zap.Error(err))
			return audioDoneMsg{Err: errAudioUnavailable}
		}
		if len(audio) == 0 {
			return audioDoneMsg{Err: errAudioUnavailable}
		}
		if !player.Enabled() {
			path, err := player.Save(text, audio)
			return audioDoneMsg{Path: path, Err: err}
		}
		return audioDoneMsg{Err: player.Play(ctx, text, audio)}
	}
}

func (d *DrillScreen) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.opts.Timeout)
}

func (d *DrillScreen) presentingText() bool {
	return d.round != nil && d.result == nil && d.busy == "" &&
		!d.quitConfirm && !d.round.Modality.IsChoice()
}

func placeholder(f quiz.Family) string {
	switch f {
	case quiz.FamilySpoken:
		return "Path to a recording, or type what you said"
	case quiz.FamilyHandwriting:
		return "Path to a photo of your handwriting"
	}
	return "Type your answer..."
}
