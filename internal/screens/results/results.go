package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const (
	buttonRetry = iota
	buttonHome
)

// ResultsScreen displays the graded session and offers a retry of the
// wrong answers.
type ResultsScreen struct {
	store   *appstate.Store
	summary session.Summary
	button  int
	scroll  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.Routed = (*ResultsScreen)(nil)
var _ screen.EscapeHandler = (*ResultsScreen)(nil)

// New creates a ResultsScreen for the finished session in st.
func New(store *appstate.Store, st appstate.State) *ResultsScreen {
	sum, _ := st.Summary()
	r := &ResultsScreen{store: store, summary: sum}
	if sum.Correct == sum.Total {
		r.button = buttonHome
	}
	return r
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Hasil"
}

func (s *ResultsScreen) Route() appstate.View {
	return appstate.ViewResults
}

func (s *ResultsScreen) HandlesEscape() bool {
	return true
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Pilih"},
		{Key: "↑↓", Description: "Gulir"},
		{Key: "R", Description: "Ulangi yang salah"},
		{Key: "Esc", Description: "Beranda"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		if msg.State.Session.Phase == session.PhaseFinished {
			if sum, err := msg.State.Summary(); err == nil {
				s.summary = sum
			}
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			s.button = buttonRetry
		case "right", "l":
			s.button = buttonHome
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			if s.scroll < len(s.summary.Reviews)-1 {
				s.scroll++
			}
		case "r":
			return s, s.retry()
		case "esc":
			return s, s.home()
		case "enter":
			if s.button == buttonRetry {
				return s, s.retry()
			}
			return s, s.home()
		}
	}
	return s, nil
}

// retry starts a session over the wrong answers. The session screen below
// picks it up from the next state snapshot.
func (s *ResultsScreen) retry() tea.Cmd {
	if _, err := s.store.Dispatch(appstate.RetryWrong{}); err != nil {
		return nil
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *ResultsScreen) home() tea.Cmd {
	s.store.Dispatch(appstate.EndSession{SaveHistory: true})
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *ResultsScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var b strings.Builder

	title := "Sesi selesai!"
	if sum.Timed {
		title = "Tryout selesai!"
	}
	b.WriteString(theme.Centered(width, theme.Primary).Bold(true).Render(title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Soal: %d      Benar: %d      Akurasi: %d%%      Durasi: %d:%02d",
		sum.Total, sum.Correct, sum.Accuracy, mins, secs)
	b.WriteString(theme.Centered(width, theme.Text).Render(stats))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(s.renderReviews(height-12), cw)))
	b.WriteString("\n\n")

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		components.ArcadeButton("ULANGI", s.button == buttonRetry, 14),
		"  ",
		components.ArcadeButton("BERANDA", s.button == buttonHome, 14),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))

	return b.String()
}

// renderReviews lists one line per question starting at the scroll offset.
func (s *ResultsScreen) renderReviews(rows int) string {
	if rows < 3 {
		rows = 3
	}
	reviews := s.summary.Reviews
	if s.scroll < len(reviews) {
		reviews = reviews[s.scroll:]
	}
	if len(reviews) > rows {
		reviews = reviews[:rows]
	}

	var lines []string
	for i, r := range reviews {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !r.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		answer := strings.Join(r.Answer, ", ")
		if !r.Answered {
			answer = "(tidak dijawab)"
		}
		line := fmt.Sprintf("%s %2d. %s  →  %s", mark, s.scroll+i+1, r.Question.Prompt(), answer)
		if !r.Correct {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).
				Render("  (" + strings.Join(r.Question.CorrectKeys, ", ") + ")")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
