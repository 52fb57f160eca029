// Package particles is the particle reference screen.
package particles

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const listWidth = 14

// ParticlesScreen lists the particles beside the details of the selected one.
type ParticlesScreen struct {
	settings  appstate.Settings
	particles []bank.Particle
	selected  int
}

var _ screen.Screen = (*ParticlesScreen)(nil)
var _ screen.KeyHintProvider = (*ParticlesScreen)(nil)
var _ screen.Routed = (*ParticlesScreen)(nil)

// New creates a ParticlesScreen.
func New(store *appstate.Store) *ParticlesScreen {
	return &ParticlesScreen{
		settings:  store.State().Settings,
		particles: bank.Particles(),
	}
}

func (s *ParticlesScreen) Init() tea.Cmd {
	return nil
}

func (s *ParticlesScreen) Title() string {
	return "Partikel"
}

func (s *ParticlesScreen) Route() appstate.View {
	return appstate.ViewParticles
}

func (s *ParticlesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Pilih"},
		{Key: "Esc", Description: "Kembali"},
	}
}

// Selected returns the particle whose details are shown.
func (s *ParticlesScreen) Selected() bank.Particle {
	return s.particles[s.selected]
}

func (s *ParticlesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.settings = msg.State.Settings
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.particles)-1 {
				s.selected++
			}
		case "home", "g":
			s.selected = 0
		case "end", "G":
			s.selected = len(s.particles) - 1
		}
	}
	return s, nil
}

func (s *ParticlesScreen) View(width, height int) string {
	if len(s.particles) == 0 {
		return theme.Centered(width, theme.TextDim).Render("\n\n  Tidak ada data partikel.")
	}

	var items []string
	for i, p := range s.particles {
		label := fmt.Sprintf("%s  %s", p.Kana, p.Romaji)
		if i == s.selected {
			items = append(items, theme.Selected().Render("▸ "+label))
		} else {
			items = append(items, theme.Unselected().Render("  "+label))
		}
	}
	list := lipgloss.NewStyle().
		Width(listWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(items, "\n"))

	detailWidth := max(components.ContentWidth(width)-listWidth, 24)
	detail := lipgloss.NewStyle().
		Width(detailWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeCyan).
		Padding(0, 1).
		Render(s.renderDetail(s.Selected(), detailWidth-4))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", detail)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *ParticlesScreen) renderDetail(p bank.Particle, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%s (%s)", p.Kana, p.Romaji)))
	b.WriteString("\n\n")

	for _, f := range p.Functions {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render("• " + f))
		b.WriteString("\n")
	}

	if len(p.Examples) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Contoh"))
		b.WriteString("\n")
	}
	for _, ex := range p.Examples {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(components.JapaneseText(ex.JP, ex.Kana, s.settings)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(ex.Romaji))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width).Render(ex.Meaning))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
