package session

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/results"
	sess "github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
)

// questionTickMsg drives the optional per-question timer.
type questionTickMsg struct {
	sessionID string
	position  int
}

// SessionScreen implements screen.Screen for a running session. All
// session data comes from store snapshots; the screen only keeps widget
// state for the question on display.
type SessionScreen struct {
	store *appstate.Store
	state appstate.State

	sessionID string
	position  int
	answered  bool

	choices components.ChoiceList
	order   components.TokenOrder

	showingQuitConfirm bool
	showingResults     bool

	// Per-question timer, only for untimed sessions with the setting on.
	questionLeft time.Duration
	timeUp       bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Routed = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New creates a SessionScreen for the session started in st.
func New(store *appstate.Store, st appstate.State) *SessionScreen {
	s := &SessionScreen{store: store}
	s.sync(st)
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.questionTimer()
}

func (s *SessionScreen) Title() string {
	if s.state.Session.Timed {
		return "Tryout"
	}
	return "Latihan"
}

func (s *SessionScreen) Route() appstate.View {
	return appstate.ViewSession
}

func (s *SessionScreen) HandlesEscape() bool {
	return true
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Akhiri sesi"},
			{Key: "N", Description: "Lanjutkan"},
		}
	}
	if s.answered {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Soal berikutnya"},
			{Key: "Esc", Description: "Keluar"},
		}
	}
	q, _ := s.state.Session.Current()
	switch {
	case q.Type == bank.TypeOrdering:
		return []layout.KeyHint{
			{Key: "1-9", Description: "Susun"},
			{Key: "⌫", Description: "Hapus"},
			{Key: "Enter", Description: "Jawab"},
			{Key: "Esc", Description: "Keluar"},
		}
	case q.MultiSelect():
		return []layout.KeyHint{
			{Key: "Space", Description: "Tandai"},
			{Key: "Enter", Description: "Jawab"},
			{Key: "Esc", Description: "Keluar"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Pilih"},
			{Key: "Enter", Description: "Jawab"},
			{Key: "Esc", Description: "Keluar"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		return s.handleState(msg.State)

	case components.ChoiceSubmitMsg:
		st, _ := s.store.Dispatch(appstate.SubmitAnswer{Answer: msg.Answer})
		return s.handleState(st)

	case components.ChoiceEmptyMsg:
		st, _ := s.store.Dispatch(appstate.ShowToast{Message: appstate.MsgNoAnswer, Kind: appstate.ToastError})
		return s.handleState(st)

	case questionTickMsg:
		return s.handleQuestionTick(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// handleState follows the store: a new question resets the widgets, a
// finished session shows results, and an ended one returns home.
func (s *SessionScreen) handleState(st appstate.State) (screen.Screen, tea.Cmd) {
	changed := s.sync(st)

	switch st.Session.Phase {
	case sess.PhaseFinished:
		if s.showingResults {
			return s, nil
		}
		s.showingResults = true
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: results.New(s.store, st)}
		}
	case sess.PhaseIdle:
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}

	s.showingResults = false
	if changed {
		return s, s.questionTimer()
	}
	return s, nil
}

// sync copies st in and rebuilds the widgets when the question changed.
// It reports whether a new question is on display.
func (s *SessionScreen) sync(st appstate.State) bool {
	s.state = st
	cur := st.Session

	pos, _ := cur.Progress()
	changed := cur.ID != s.sessionID || pos != s.position
	if changed {
		s.sessionID = cur.ID
		s.position = pos
		s.timeUp = false
		s.questionLeft = time.Duration(st.Settings.PerQuestionSeconds) * time.Second

		if q, ok := cur.Current(); ok {
			s.choices = components.NewChoiceList(q.Choices, q.MultiSelect())
			s.order = components.NewTokenOrder(q.Tokens)
		}
	}

	answer := cur.CurrentAnswer()
	s.answered = answer != nil
	if s.answered {
		if q, ok := cur.Current(); ok {
			s.choices.Lock(answer, q.CorrectKeys)
			s.order.Locked = true
		}
	}
	return changed
}

func (s *SessionScreen) perQuestionTimer() bool {
	return s.state.Settings.TimerPerQuestion && !s.state.Session.Timed
}

func (s *SessionScreen) questionTimer() tea.Cmd {
	if !s.perQuestionTimer() || s.state.Session.Phase != sess.PhaseActive {
		return nil
	}
	return tickCmd(s.sessionID, s.position)
}

// handleQuestionTick counts the per-question timer down. Running out only
// marks the question; the learner still answers and moves on.
func (s *SessionScreen) handleQuestionTick(msg questionTickMsg) (screen.Screen, tea.Cmd) {
	if msg.sessionID != s.sessionID || msg.position != s.position || s.answered {
		return s, nil
	}
	s.questionLeft -= time.Second
	if s.questionLeft <= 0 {
		s.questionLeft = 0
		s.timeUp = true
		return s, nil
	}
	return s, tickCmd(s.sessionID, s.position)
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			s.store.Dispatch(appstate.EndSession{SaveHistory: true})
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.state.Session.Phase != sess.PhaseActive {
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	if s.answered {
		switch key {
		case "enter", "space", " ", "n":
			st, _ := s.store.Dispatch(appstate.Advance{})
			return s.handleState(st)
		}
		return s, nil
	}

	var cmd tea.Cmd
	q, _ := s.state.Session.Current()
	if q.Type == bank.TypeOrdering {
		s.order, cmd = s.order.Update(msg)
	} else {
		s.choices, cmd = s.choices.Update(msg)
	}
	return s, cmd
}

// tickCmd returns a 1-second tick for the question at position.
func tickCmd(sessionID string, position int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return questionTickMsg{sessionID: sessionID, position: position}
	})
}
