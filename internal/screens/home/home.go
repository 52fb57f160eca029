package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	historyscreen "github.com/abhisek/kotoba/internal/screens/history"
	"github.com/abhisek/kotoba/internal/screens/particles"
	"github.com/abhisek/kotoba/internal/screens/settings"
	"github.com/abhisek/kotoba/internal/screens/setup"
	"github.com/abhisek/kotoba/internal/screens/vocab"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
)

// Menu labels, in display order.
const (
	LabelPractice  = "LATIHAN"
	LabelTryout    = "TRYOUT"
	LabelHistory   = "RIWAYAT"
	LabelVocab     = "KOSAKATA"
	LabelParticles = "PARTIKEL"
	LabelSettings  = "PENGATURAN"
	LabelExit      = "KELUAR"
)

// buttonMenuHeight is the content height needed for bordered menu buttons.
const buttonMenuHeight = 40

// Deps are the collaborators the home menu opens screens with.
type Deps struct {
	Store     *appstate.Store
	Starter   *setup.Starter
	Providers *questiongen.Providers // nil disables the API key check
}

// HomeScreen is the main menu with the learner's dashboard.
type HomeScreen struct {
	deps       Deps
	state      appstate.State
	catalog    []bank.Vocab
	menu       components.Menu
	menuLabels []string
	now        func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Routed = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:    deps,
		state:   deps.Store.State(),
		catalog: bank.Vocabulary(),
		now:     time.Now,
	}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: LabelPractice, Action: push(func() screen.Screen { return setup.New(deps.Starter) })},
		{Label: LabelTryout, Action: deps.Starter.Tryout},
		{Label: LabelHistory, Action: push(func() screen.Screen { return historyscreen.New(deps.Store) })},
		{Label: LabelVocab, Action: push(func() screen.Screen { return vocab.New(deps.Store) })},
		{Label: LabelParticles, Action: push(func() screen.Screen { return particles.New(deps.Store) })},
		{Label: LabelSettings, Action: push(func() screen.Screen { return settings.New(deps.Store, deps.Providers) })},
		{Label: LabelExit, Action: func() tea.Cmd { return tea.Quit }},
	}
	for _, it := range items {
		h.menuLabels = append(h.menuLabels, it.Label)
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Beranda"
}

func (h *HomeScreen) Route() appstate.View {
	return appstate.ViewHome
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Pilih"},
		{Key: "Enter", Description: "Buka"},
		{Key: "Ctrl+C", Description: "Keluar"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(screen.StateMsg); ok {
		h.state = m.State
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to judge
	// the terminal size.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)
	tall := height >= buttonMenuHeight

	cw := components.ContentWidth(width)
	stats := h.state.Stats(h.catalog)

	sections := []string{renderTitle(cw, compact)}
	if !compact && tall {
		sections = append(sections, renderMascotBox(mascotFor(stats, h.now()), cw))
	}
	sections = append(sections, renderStatsBar(stats, len(h.state.Favorites), cw, compact))
	if note := renderTryoutNote(stats.LastTryout, cw); note != "" && !compact {
		sections = append(sections, note)
	}
	if tall {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
