package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodrill/internal/grading"
	"github.com/abhisek/lingodrill/internal/quiz"
	"github.com/abhisek/lingodrill/internal/ui/components"
	"github.com/abhisek/lingodrill/internal/ui/theme"
)

func (d *DrillScreen) View(width, height int) string {
	switch {
	case d.errMsg != "":
		return renderError(width, d.errMsg)
	case d.quitConfirm:
		return renderQuitConfirm(width)
	case d.round == nil:
		return renderLoading(width, d.busy)
	case d.result != nil:
		return d.renderResult(width)
	}
	return d.renderPrompt(width)
}

// renderInfoLine renders the badge and pool on the left and the running
// score on the right, followed by a divider.
func (d *DrillScreen) renderInfoLine(width int) string {
	r := d.round
	badge := theme.Badge.Render(levelBadge(r))

	var pool string
	if r.IsReview() {
		pool = theme.Review.Render(fmt.Sprintf("Review · %d due", r.DueCount))
	} else {
		pool = theme.Practice.Render("Free practice")
	}
	infoLeft := "  " + badge + "  " + pool

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s %d/%d",
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			d.stats.Correct, d.stats.Graded))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	var b strings.Builder
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	return b.String()
}

func (d *DrillScreen) renderPrompt(width int) string {
	r := d.round
	var b strings.Builder
	b.WriteString(d.renderInfoLine(width))

	b.WriteString(centered(width, theme.Hint.Render(r.Modality.Instruction())))
	b.WriteString("\n\n")

	cue := r.Cue()
	if cue == "" {
		cue = "♪  listen"
	}
	b.WriteString(centered(width, theme.Cue.Render(cue)))
	b.WriteString("\n")
	if d.audioNote != "" {
		b.WriteString(centered(width, theme.Practice.Render(d.audioNote)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if r.Modality.IsChoice() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.choice.View()))
	} else {
		b.WriteString(centered(width, "Answer: "+d.input.View()))
		b.WriteString("\n")
	}

	if d.notice != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Warning.Render(d.notice)))
		b.WriteString("\n")
	}
	if d.busy != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Practice.Render(d.busy)))
	}
	return b.String()
}

func (d *DrillScreen) renderResult(width int) string {
	r, res := d.round, d.result
	var b strings.Builder
	b.WriteString(d.renderInfoLine(width))

	switch {
	case res.Faulted():
		b.WriteString(centered(width, theme.Warning.Bold(true).Render("Not graded")))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Practice.Render(faultText(res.Fault))))
	case res.Correct:
		b.WriteString(centered(width, theme.Correct.Render("Correct!")))
	default:
		b.WriteString(centered(width, theme.Incorrect.Render("Not quite")))
	}
	b.WriteString("\n\n")

	if r.Modality.IsChoice() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, d.choice.View()))
		b.WriteString("\n")
	}

	card := []string{theme.Cue.Render(r.Item.TargetText)}
	if r.Item.Pronunciation != "" {
		card = append(card, theme.Practice.Render(r.Item.Pronunciation))
	}
	if r.Item.Meaning != "" {
		card = append(card, theme.Body.Render(r.Item.Meaning))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(strings.Join(card, "\n"), min(width-4, 60))))
	b.WriteString("\n\n")

	if res.Score != nil {
		b.WriteString(centered(width, theme.Body.Render(fmt.Sprintf("Score: %.0f / 100", *res.Score))))
		b.WriteString("\n")
	}
	if res.Input != "" && r.Modality.Family() != quiz.FamilyHandwriting {
		b.WriteString(centered(width, theme.Practice.Render("You answered: "+res.Input)))
		b.WriteString("\n")
	}
	if res.Feedback != "" {
		fb := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(res.Feedback)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
		b.WriteString("\n")
	}
	if d.audioNote != "" {
		b.WriteString(centered(width, theme.Practice.Render(d.audioNote)))
		b.WriteString("\n")
	}

	if d.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect.Render("Progress not saved: "+d.saveErr.Error())))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Practice.Render("Press S to retry.")))
		b.WriteString("\n")
	}
	if d.busy != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Practice.Render(d.busy)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centered(width, theme.Practice.Render("Press Enter for the next item")))
	return b.String()
}

func levelBadge(r *quiz.Round) string {
	return fmt.Sprintf("%s | Lv.%d", r.Item.Category, r.Item.Mastery)
}

func faultText(f grading.Fault) string {
	switch f {
	case grading.FaultMissingCredential:
		return "No handwriting grader is configured. The schedule was left unchanged."
	case grading.FaultGrader:
		return "The handwriting grader failed. The schedule was left unchanged."
	}
	return "The schedule was left unchanged."
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this drill?")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Practice.Render("Answers so far are already saved.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes, end drill")))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going")))
	return b.String()
}

func renderLoading(width int, label string) string {
	if label == "" {
		label = "Loading..."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + label)
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
