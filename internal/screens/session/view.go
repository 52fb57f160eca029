package session

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/grading"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	q, ok := s.state.Session.Current()
	if !ok {
		return theme.Centered(width, theme.TextDim).Render("\n\n\n  Menyiapkan hasil...")
	}
	return s.renderQuestionView(q, width)
}

// renderQuestionView renders the info line, the question, the answer
// widget and, once answered, the feedback.
func (s *SessionScreen) renderQuestionView(q bank.Question, width int) string {
	var b strings.Builder

	pos, total := s.state.Session.Progress()
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", q.Type.Label()))

	right := fmt.Sprintf("Soal %d/%d", pos, total)
	if timer := s.timerText(); timer != "" {
		right += "  " + timer
	}
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if q.Passage != "" {
		passage := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.TextDim).
			Render(q.Passage)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, passage))
		b.WriteString("\n\n")
	}

	prompt := theme.Centered(width, theme.Text).Bold(true)
	if q.Type == bank.TypeKana {
		prompt = prompt.Foreground(theme.ArcadeYellow)
	}
	b.WriteString(prompt.Render(q.Prompt()))
	b.WriteString("\n\n")

	var widget string
	if q.Type == bank.TypeOrdering {
		widget = s.order.View()
	} else {
		widget = s.choices.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, widget))

	if s.answered {
		b.WriteString("\n\n")
		b.WriteString(s.renderFeedback(q, width))
	}
	return b.String()
}

// timerText is the tryout countdown, or the per-question timer.
func (s *SessionScreen) timerText() string {
	style := lipgloss.NewStyle().Foreground(theme.Accent)
	if cd := s.state.Countdown; cd != nil && s.state.Session.Timed {
		if cd.Remaining <= time.Minute {
			style = style.Foreground(theme.Error).Bold(true)
		}
		return style.Render("⏱ " + cd.String())
	}
	if s.perQuestionTimer() {
		if s.timeUp {
			return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⏱ Waktu habis!")
		}
		secs := int(s.questionLeft.Seconds())
		return style.Render(fmt.Sprintf("⏱ %d dtk", secs))
	}
	return ""
}

func (s *SessionScreen) renderFeedback(q bank.Question, width int) string {
	var b strings.Builder

	answer := s.state.Session.CurrentAnswer()
	if grading.IsCorrect(q, answer) {
		b.WriteString(theme.Centered(width, theme.Success).Bold(true).Render("Benar!"))
	} else {
		b.WriteString(theme.Centered(width, theme.Error).Bold(true).Render("Belum tepat"))
		b.WriteString("\n")
		b.WriteString(theme.Centered(width, theme.TextDim).
			Render("Jawaban: " + strings.Join(q.CorrectKeys, ", ")))
	}
	b.WriteString("\n\n")

	if q.Explain != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(q.Explain)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Centered(width, theme.TextDim).Render("Tekan Enter untuk lanjut..."))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(theme.Centered(width, theme.Text).Bold(true).Render("Akhiri sesi sekarang?"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.TextDim).Render("Jawaban yang sudah dinilai tetap tersimpan."))
	b.WriteString("\n\n")

	b.WriteString(theme.Centered(width, theme.Success).Render("[Y] Ya, akhiri sesi"))
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.Primary).Render("[N] Tidak, lanjutkan"))

	return b.String()
}
