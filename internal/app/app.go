package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/home"
	"github.com/abhisek/kotoba/internal/screens/setup"
	"github.com/abhisek/kotoba/internal/screens/welcome"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	Store     *appstate.Store
	Starter   *setup.Starter
	Providers *questiongen.Providers
	Log       *logrus.Logger

	// SkipSplash starts on the home screen.
	SkipSplash bool

	// Start runs once at startup. A screen it opens is pushed above the
	// home screen. Setting it skips the splash.
	Start tea.Cmd
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	store   *appstate.Store
	log     *logrus.Logger
	changed chan struct{}
	start   tea.Cmd

	state    appstate.State
	route    appstate.View
	contrast bool
	width    int
	height   int
}

// newAppModel creates an AppModel and subscribes it to the store. Store
// changes only raise a signal; the listener reads the latest snapshot, so
// a burst of dispatches costs one redraw.
func newAppModel(opts Options) *AppModel {
	deps := home.Deps{
		Store:     opts.Store,
		Starter:   opts.Starter,
		Providers: opts.Providers,
	}
	var first screen.Screen
	if opts.SkipSplash || opts.Start != nil {
		first = home.New(deps)
	} else {
		first = welcome.New(func() screen.Screen { return home.New(deps) })
	}

	m := &AppModel{
		router:  router.New(first),
		store:   opts.Store,
		log:     opts.Log,
		changed: make(chan struct{}, 1),
		start:   opts.Start,
		state:   opts.Store.State(),
	}
	m.contrast = m.state.Settings.HighContrast
	theme.Apply(m.contrast)

	opts.Store.Subscribe(func(appstate.State) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})
	return m
}

// waitForState blocks until the store changes and delivers its snapshot.
func (m *AppModel) waitForState() tea.Cmd {
	return func() tea.Msg {
		<-m.changed
		return screen.StateMsg{State: m.store.State()}
	}
}

func (m *AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init(), m.waitForState()}
	if m.start != nil {
		cmds = append(cmds, onTop(m.start))
	}
	return tea.Batch(cmds...)
}

// onTop turns a screen replacement from cmd into a push so the home
// screen stays at the root.
func onTop(cmd tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		msg := cmd()
		if r, ok := msg.(router.ReplaceScreenMsg); ok {
			return router.PushScreenMsg{Screen: r.Screen}
		}
		return msg
	}
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StateMsg:
		m.state = msg.State
		if m.state.Settings.HighContrast != m.contrast {
			m.contrast = m.state.Settings.HighContrast
			theme.Apply(m.contrast)
		}
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.waitForState())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); !ok || !h.HandlesEscape() {
				if m.router.Depth() > 1 {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	m.syncRoute()
	return m, cmd
}

// syncRoute records the active screen's view in the store when the
// active screen changes.
func (m *AppModel) syncRoute() {
	r, ok := m.router.Active().(screen.Routed)
	if !ok || r.Route() == m.route {
		return
	}
	m.route = r.Route()
	st, err := m.store.Dispatch(appstate.SetView{View: m.route})
	if err != nil {
		m.log.WithError(err).Debug("set view")
		return
	}
	m.state = st
}

func (m *AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes header, active screen, toast and footer.
func (m *AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := active.Title()

	header := layout.RenderHeader(title, len(m.state.Favorites), history.Accuracy(m.state.History), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Kembali"},
			{Key: "Ctrl+C", Description: "Keluar"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Pilih"},
			{Key: "Enter", Description: "Buka"},
			{Key: "Ctrl+C", Description: "Keluar"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)
	if t := m.state.Toast; t != nil {
		footer = layout.RenderToast(t.Message, string(t.Kind), m.width) + "\n" + footer
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. A session
// still running at exit is ended with its answers saved.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()

	if opts.Store.State().Session.Phase != session.PhaseIdle {
		if _, endErr := opts.Store.Dispatch(appstate.EndSession{SaveHistory: true}); endErr != nil {
			opts.Log.WithError(endErr).Warn("failed to end session on exit")
		}
	}

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
