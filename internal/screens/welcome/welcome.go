package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 400 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `  ╭──────────────╮
  │  ┌────────┐  │
  │  │  ◉  ◉  │  │
  │  │  ╰──╯  │  │
  │  ├────────┤  │
  │  │ あいう │  │
  │  └────────┘  │
  ╰──────────────╯`

// Tagline is shown under the banner once it appears.
const Tagline = "Ayo belajar bahasa Jepang!"

var sparkleFrames = []string{"✿", "❀"}

type tickMsg time.Time

// WelcomeScreen shows a splash animation and hands over to the home
// screen on the first key press.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for i := 0; i < len(lines); i += 3 {
			if i%2 == 0 {
				lines[i] = s1 + "  " + lines[i] + "  " + s2
			} else {
				lines[i] = s2 + "  " + lines[i] + "  " + s1
			}
		}
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}

	if w.elapsed >= phase2End {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline)
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("tekan tombol apa saja untuk mulai")
		sections = append(sections, "", RenderBanner(width, theme.Primary), "", tagline, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
