package history

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// HistoryScreen shows the learner's statistics and recent answers.
type HistoryScreen struct {
	catalog  []bank.Vocab
	stats    history.Stats
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Routed = (*HistoryScreen)(nil)

// New creates a HistoryScreen over the store's current history.
func New(store *appstate.Store) *HistoryScreen {
	s := &HistoryScreen{
		catalog:  bank.Vocabulary(),
		expanded: make(map[int]bool),
	}
	s.stats = store.State().Stats(s.catalog)
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Riwayat"
}

func (s *HistoryScreen) Route() appstate.View {
	return appstate.ViewHistory
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Detail"},
		{Key: "↑↓", Description: "Pilih"},
		{Key: "Esc", Description: "Kembali"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.stats = msg.State.Stats(s.catalog)
		if s.selected >= len(s.stats.Recent) {
			s.selected = max(len(s.stats.Recent)-1, 0)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.stats.Recent)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.stats.Total == 0 {
		return theme.Centered(width, theme.TextDim).Italic(true).
			Render("\n\n  Belum ada riwayat. Ayo mulai latihan!")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	summary := fmt.Sprintf("%d jawaban  ·  akurasi %d%%  ·  rata-rata %s",
		s.stats.Total, s.stats.Accuracy, history.FormatDuration(s.stats.AverageMs))
	b.WriteString(theme.Centered(width, theme.Text).Bold(true).Render(summary))
	b.WriteString("\n")

	if run := s.stats.LastTryout; run != nil {
		line := fmt.Sprintf("Tryout terakhir: %d/%d benar (%d%%)", run.Correct, run.Total, run.Accuracy)
		b.WriteString(theme.Centered(width, theme.Accent).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var bars []string
	for _, ts := range s.stats.ByType {
		label := fmt.Sprintf("%-16s", ts.Type.Label())
		bar := components.NewProgressBar(label, float64(ts.Accuracy)/100, true, cw)
		bars = append(bars, bar.View())
	}
	if len(bars) > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(bars, "\n")))
		b.WriteString("\n\n")
	}

	if len(s.stats.WeakVocab) > 0 {
		var words []string
		for _, v := range s.stats.WeakVocab {
			words = append(words, fmt.Sprintf("%s (%s)", v.Kana, v.Meaning))
		}
		b.WriteString(theme.Centered(width, theme.Error).Render("Sering salah: " + strings.Join(words, ", ")))
		b.WriteString("\n\n")
	}

	for i, e := range s.stats.Recent {
		b.WriteString(s.renderEntry(i, e, width))
	}
	return b.String()
}

func (s *HistoryScreen) renderEntry(i int, e history.Entry, width int) string {
	mark, fg := "✓", theme.Success
	if !e.Correct {
		mark, fg = "✗", theme.Error
	}

	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}

	kind := ""
	if e.Tryout {
		kind = "  tryout"
	}
	line := style.Render(fmt.Sprintf("%s%s  %-16s %6s%s",
		prefix, e.Timestamp.Format("02 Jan 15:04"), e.Type.Label(), history.FormatDuration(e.DurationMs), kind)) +
		"  " + lipgloss.NewStyle().Foreground(fg).Render(mark)

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	b.WriteString("\n")

	if s.expanded[i] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(e, s.catalog)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDetail(e history.Entry, catalog []bank.Vocab) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	var parts []string
	if e.QuestionID != "" {
		parts = append(parts, "soal "+e.QuestionID)
	}
	if len(e.Topics) > 0 {
		parts = append(parts, "tema "+strings.Join(e.Topics, ", "))
	}
	idx := bank.VocabIndex(catalog)
	var words []string
	for _, id := range e.VocabIDs {
		if v, ok := idx[id]; ok {
			words = append(words, v.Kana)
		}
	}
	if len(words) > 0 {
		parts = append(parts, "kosakata "+strings.Join(words, " "))
	}
	if len(parts) == 0 {
		return dim.Render("    Tidak ada detail")
	}
	return lipgloss.NewStyle().Foreground(detailColor(e)).Render("    " + strings.Join(parts, "  ·  "))
}

func detailColor(e history.Entry) color.Color {
	if e.Correct {
		return theme.TextDim
	}
	return theme.Accent
}
