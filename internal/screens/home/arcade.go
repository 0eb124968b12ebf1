package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/abhisek/lingodrill/internal/spacedrep"
	"github.com/abhisek/lingodrill/internal/ui/theme"
)

const (
	titleText    = "L I N G O D R I L L"
	subtitleText = "read · listen · write · speak"
)

// renderTitle returns the styled title block.
func renderTitle(cw int, compact bool) string {
	title := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(titleText)
	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title)
	}
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(subtitleText)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n\n" + sub)
}

// renderStatsBar renders the corpus status in a bordered box matching
// content width.
func renderStatsBar(st spacedrep.Status, today time.Time, cw int, compact bool) string {
	totalStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dueStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			totalStyle.Render(fmt.Sprintf("▤%d", st.Total)),
			dueText(st, today, true, dueStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			totalStyle.Render(fmt.Sprintf("▤ %d ITEMS", st.Total)),
			dueText(st, today, false, dueStyle, dimStyle),
		)
		var cats []string
		for _, cs := range st.Categories {
			cats = append(cats, fmt.Sprintf("%s %d/%d", cs.Category, cs.Due, cs.Total))
		}
		if len(cats) > 0 {
			stats += "\n" + dimStyle.Render(strings.Join(cats, "   "))
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dueText(st spacedrep.Status, today time.Time, compact bool, active, dim lipgloss.Style) string {
	if st.Due > 0 {
		if compact {
			return active.Render(fmt.Sprintf("⚡%d", st.Due))
		}
		return active.Render(fmt.Sprintf("⚡ %d DUE", st.Due))
	}
	if compact {
		return dim.Render("⚡0")
	}
	if st.NextDue.IsZero() {
		return dim.Render("⚡ NONE DUE")
	}
	days := int(corpus.Day(st.NextDue).Sub(corpus.Day(today)).Hours() / 24)
	return dim.Render(fmt.Sprintf("⚡ NEXT IN %dD", days))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, compact bool) string {
	if compact {
		return renderArcadeMenuCompact(items, selected, cw)
	}
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNotice renders a one-line warning, e.g. a missing grader key or a
// failed reload.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}
