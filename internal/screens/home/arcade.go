package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/screens/welcome"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// renderTitle returns the block banner, or the one-line title when compact.
func renderTitle(cw int, compact bool) string {
	w := cw
	if compact {
		w = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(w, theme.ArcadeYellow))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(stats history.Stats, favorites, cw int, compact bool) string {
	accStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	totalStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	favStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var acc string
	if stats.Total == 0 {
		acc = dimStyle.Render("✓ –")
	} else {
		acc = accStyle.Render(fmt.Sprintf("✓ %d%%", stats.Accuracy))
	}

	var parts []string
	if compact {
		parts = []string{
			acc,
			totalStyle.Render(fmt.Sprintf("✎%d", stats.Total)),
			favStyle.Render(fmt.Sprintf("★%d", favorites)),
		}
	} else {
		parts = []string{
			acc + dimStyle.Render(" AKURASI"),
			totalStyle.Render(fmt.Sprintf("✎ %d JAWABAN", stats.Total)),
			favStyle.Render(fmt.Sprintf("★ %d FAVORIT", favorites)),
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, "  "))
}

// renderTryoutNote renders a dim line about the last tryout run.
func renderTryoutNote(run *history.TryoutRun, cw int) string {
	if run == nil {
		return ""
	}
	text := fmt.Sprintf("Tryout terakhir: %d/%d benar (%d%%) · %s",
		run.Correct, run.Total, run.Accuracy, run.Start.Format("02 Jan 15:04"))
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
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
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   "+label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
