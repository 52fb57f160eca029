package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const (
	rowType = iota
	rowCount
	rowSource
	rowTopic
	rowStart
)

const (
	minCount = 1
	maxCount = 50
)

var sources = []questiongen.Source{
	questiongen.SourceLocal,
	questiongen.SourceMixed,
	questiongen.SourceAI,
}

var sourceLabels = map[questiongen.Source]string{
	questiongen.SourceLocal: "Bank soal lokal",
	questiongen.SourceMixed: "Campuran lokal + AI",
	questiongen.SourceAI:    "AI",
}

// SetupScreen configures a practice session before it starts.
type SetupScreen struct {
	starter *Starter

	row       int
	typeIdx   int // 0 is mixed, then bank.AllTypes
	count     int
	sourceIdx int
	topicIdx  int // 0 is random, then bank.Themes
	loading   bool
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Routed = (*SetupScreen)(nil)

// New creates a SetupScreen seeded from the starter defaults.
func New(starter *Starter) *SetupScreen {
	s := &SetupScreen{starter: starter, count: starter.PracticeCount}
	for i, src := range sources {
		if src == starter.Source {
			s.sourceIdx = i
		}
	}
	if s.count < minCount {
		s.count = 10
	}
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "Latihan"
}

func (s *SetupScreen) Route() appstate.View {
	return appstate.ViewPractice
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Pilih"},
		{Key: "←→", Description: "Ubah"},
		{Key: "Enter", Description: "Mulai"},
		{Key: "Esc", Description: "Kembali"},
	}
}

// Request returns the pick request for the current choices.
func (s *SetupScreen) Request() questiongen.Request {
	req := questiongen.Request{
		Count:  s.count,
		Source: sources[s.sourceIdx],
	}
	if s.typeIdx > 0 {
		req.Type = bank.AllTypes[s.typeIdx-1]
	}
	if s.topicIdx > 0 {
		req.Topic = bank.Themes[s.topicIdx-1]
	}
	return req
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case StartFailedMsg:
		s.loading = false
		return s, nil

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.row > rowType {
				s.row--
			}
		case "down", "j", "tab":
			if s.row < rowStart {
				s.row++
			}
		case "left", "h":
			s.change(-1)
		case "right", "l":
			s.change(1)
		case "enter":
			s.loading = true
			return s, s.starter.Practice(s.Request())
		}
	}
	return s, nil
}

func (s *SetupScreen) change(delta int) {
	switch s.row {
	case rowType:
		s.typeIdx = wrap(s.typeIdx+delta, len(bank.AllTypes)+1)
	case rowCount:
		s.count = min(max(s.count+delta, minCount), maxCount)
	case rowSource:
		s.sourceIdx = wrap(s.sourceIdx+delta, len(sources))
	case rowTopic:
		s.topicIdx = wrap(s.topicIdx+delta, len(bank.Themes)+1)
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (s *SetupScreen) View(width, height int) string {
	if s.loading {
		return theme.Centered(width, theme.TextDim).Render("\n\n\n  Menyiapkan soal...")
	}

	typeLabel := "Campuran"
	if s.typeIdx > 0 {
		typeLabel = bank.AllTypes[s.typeIdx-1].Label()
	}
	topicLabel := "Acak"
	if s.topicIdx > 0 {
		topicLabel = bank.Themes[s.topicIdx-1]
	}

	rows := []struct{ label, value string }{
		{"Jenis soal", typeLabel},
		{"Jumlah", fmt.Sprintf("%d", s.count)},
		{"Sumber", sourceLabels[sources[s.sourceIdx]]},
		{"Tema (AI)", topicLabel},
	}

	var lines []string
	for i, r := range rows {
		style := theme.Unselected()
		prefix := "  "
		if i == s.row {
			style = theme.Selected()
			prefix = "▸ "
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-12s ◂ %s ▸", prefix, r.label, r.value)))
	}

	cw := components.ContentWidth(width)
	form := components.ArcadeCard(strings.Join(lines, "\n"), cw)
	start := components.ArcadeButton("MULAI", s.row == rowStart, 20)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Centered(width, theme.Primary).Bold(true).Render("Atur latihan"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, start))
	return b.String()
}
