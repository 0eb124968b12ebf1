package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/screens/drill"
	"github.com/abhisek/lingodrill/internal/session"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/speech"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Drill in line mode on stdin/stdout",
	Long: `Run a drill without the TUI. Multiple-choice rounds take the option
number; other rounds take the typed answer or a file path (a recording for
speaking rounds, an image for handwriting rounds).

Type :r to replay the audio and :q to finish.`,
	RunE: runDrill,
}

func init() {
	drillCmd.Flags().IntP("count", "n", 0, "Stop after this many rounds (0 = until :q or end of input)")
}

func runDrill(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	ctx := cmd.Context()

	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.loadCorpus(ctx); err != nil {
		return err
	}
	c := e.buildCollaborators(ctx)
	for _, w := range c.warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}

	ld := &lineDrill{
		sess:    e.newSession(c.grader)(),
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
		synth:   c.synth,
		player:  c.player,
		timeout: e.cfg.CallTimeout,
		log:     e.log,
	}
	return ld.run(ctx, count)
}

// errQuit ends the drill early.
var errQuit = errors.New("quit")

// lineDrill drives a session over a line-oriented reader and writer.
type lineDrill struct {
	sess    *session.Session
	in      *bufio.Scanner
	out     io.Writer
	synth   speech.Synthesizer
	player  *speech.Player
	timeout time.Duration
	log     *zap.Logger
}

func (d *lineDrill) run(ctx context.Context, count int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}

	d.sess.Start(ctx)
	var runErr error
	for i := 0; count == 0 || i < count; i++ {
		if err := d.round(ctx); err != nil {
			if !errors.Is(err, errQuit) {
				runErr = err
			}
			break
		}
	}
	d.printSummary(d.sess.End(ctx))
	if errors.Is(runErr, spacedrep.ErrEmptyCorpus) {
		fmt.Fprintln(d.out, "The corpus is empty. Add items with `lingodrill import` or edit the sheet.")
		return nil
	}
	return runErr
}

// round presents one item, reads answers until one is graded, and
// acknowledges the result.
func (d *lineDrill) round(ctx context.Context) error {
	r, err := d.sess.Next(ctx)
	if err != nil {
		return err
	}
	d.printPrompt(r)
	if r.Modality.PlaysAudio() {
		d.playAudio(ctx, r.Item)
	}

	for {
		line, ok := d.readLine()
		if !ok || line == ":q" {
			return errQuit
		}
		if line == ":r" {
			d.playAudio(ctx, r.Item)
			continue
		}

		resp, err := drill.BuildResponse(r, choiceIndex(r, line), line)
		if err != nil {
			fmt.Fprintln(d.out, drill.Describe(err))
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, d.timeout)
		res, err := d.sess.Submit(callCtx, resp)
		cancel()
		if res == nil {
			fmt.Fprintln(d.out, drill.Describe(err))
			continue
		}

		d.printResult(r, res)
		var perr *corpus.PersistenceError
		if errors.As(err, &perr) {
			d.log.Error("answer not saved", zap.Error(err))
			fmt.Fprintf(d.out, "Progress not saved: %v. It is saved again with the next answer.\n", err)
		}
		break
	}

	fmt.Fprintln(d.out)
	return d.sess.Advance()
}

// choiceIndex maps a typed option number to an index, or -1.
func choiceIndex(r *quiz.Round, line string) int {
	if !r.Modality.IsChoice() {
		return -1
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(r.Options) {
		return -1
	}
	return n - 1
}

func (d *lineDrill) readLine() (string, bool) {
	fmt.Fprint(d.out, "> ")
	if !d.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(d.in.Text()), true
}

// playAudio plays the item, or saves it and prints the path when no player
// is configured. Audio problems never stop the drill.
func (d *lineDrill) playAudio(ctx context.Context, it corpus.Item) {
	if d.synth == nil {
		fmt.Fprintln(d.out, "(audio unavailable)")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	audio, err := d.synth.Synthesize(ctx, it.SpeechText())
	if err != nil || len(audio) == 0 {
		d.log.Warn("synthesis unavailable", zap.String("item", it.ID()), zap.Error(err))
		fmt.Fprintln(d.out, "(audio unavailable)")
		return
	}
	if !d.player.Enabled() {
		path, err := d.player.Save(it.SpeechText(), audio)
		if err != nil {
			fmt.Fprintln(d.out, "(audio unavailable)")
			return
		}
		fmt.Fprintln(d.out, "♪ audio saved to", path)
		return
	}
	if err := d.player.Play(ctx, it.SpeechText(), audio); err != nil {
		d.log.Warn("playback failed", zap.Error(err))
		fmt.Fprintln(d.out, "(audio unavailable)")
	}
}

func (d *lineDrill) printPrompt(r *quiz.Round) {
	pool := "Free practice"
	if r.IsReview() {
		pool = fmt.Sprintf("Review · %d due", r.DueCount)
	}
	fmt.Fprintf(d.out, "[%s | Lv.%d]  %s\n", r.Item.Category, r.Item.Mastery, pool)
	fmt.Fprintln(d.out, r.Modality.Instruction())
	if cue := r.Cue(); cue != "" {
		fmt.Fprintf(d.out, "\n    %s\n\n", cue)
	} else {
		fmt.Fprintln(d.out, "\n    ♪  listen (:r to replay)")
		fmt.Fprintln(d.out)
	}
	for i, label := range r.OptionLabels() {
		fmt.Fprintf(d.out, "  %d) %s\n", i+1, label)
	}
	switch r.Modality.Family() {
	case quiz.FamilySpoken:
		fmt.Fprintln(d.out, "Enter a recording path, or type what you said.")
	case quiz.FamilyHandwriting:
		fmt.Fprintln(d.out, "Enter the path to a photo of your handwriting.")
	}
}

func (d *lineDrill) printResult(r *quiz.Round, res *grading.Result) {
	switch {
	case res.Faulted():
		fmt.Fprintf(d.out, "Not graded (%s). The schedule was left unchanged.\n", res.Fault)
	case res.Correct:
		fmt.Fprintln(d.out, "✓ Correct!")
	default:
		fmt.Fprintln(d.out, "✗ Not quite")
	}

	fmt.Fprintf(d.out, "  %s", r.Item.TargetText)
	if r.Item.Pronunciation != "" {
		fmt.Fprintf(d.out, "  [%s]", r.Item.Pronunciation)
	}
	if r.Item.Meaning != "" {
		fmt.Fprintf(d.out, "  %s", r.Item.Meaning)
	}
	fmt.Fprintln(d.out)

	if res.Score != nil {
		fmt.Fprintf(d.out, "  Score: %.0f / 100\n", *res.Score)
	}
	if res.Input != "" && r.Modality.Family() != quiz.FamilyHandwriting {
		fmt.Fprintf(d.out, "  You answered: %s\n", res.Input)
	}
	if res.Feedback != "" {
		fmt.Fprintf(d.out, "  %s\n", res.Feedback)
	}
}

func (d *lineDrill) printSummary(sum session.Summary) {
	st := sum.Stats
	fmt.Fprintln(d.out, strings.Repeat("─", 40))
	fmt.Fprintf(d.out, "Served %d, correct %d of %d graded (%.0f%%) in %s\n",
		st.Served, st.Correct, st.Graded, st.Accuracy()*100, sum.Duration.Round(time.Second))
	if st.Faulted > 0 {
		fmt.Fprintf(d.out, "%d round(s) were not graded.\n", st.Faulted)
	}
	for _, c := range sum.Categories {
		fmt.Fprintf(d.out, "  %-10s %d/%d\n", c.Category, c.Correct, c.Attempts)
	}
}
