package home

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	historyscreen "github.com/abhisek/kotoba/internal/screens/history"
	"github.com/abhisek/kotoba/internal/screens/particles"
	sessionscreen "github.com/abhisek/kotoba/internal/screens/session"
	"github.com/abhisek/kotoba/internal/screens/settings"
	"github.com/abhisek/kotoba/internal/screens/setup"
	"github.com/abhisek/kotoba/internal/screens/vocab"
)

type noopScheduler struct{}

func (noopScheduler) After(time.Duration, func()) appstate.Cancel { return func() {} }
func (noopScheduler) Every(time.Duration, func()) appstate.Cancel { return func() {} }

func testHome(t *testing.T) (*HomeScreen, *appstate.Store) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := appstate.New(appstate.Options{Scheduler: noopScheduler{}, Log: log})
	t.Cleanup(st.Close)

	return New(Deps{
		Store: st,
		Starter: &setup.Starter{
			Store:         st,
			Bank:          bank.Default(bank.NewSeededRand(1)),
			Rand:          bank.NewSeededRand(2),
			Log:           log,
			PracticeCount: 5,
			TryoutCount:   5,
			Source:        questiongen.SourceLocal,
		},
	}), st
}

func TestHomeScreen_MenuOpensScreens(t *testing.T) {
	tests := []struct {
		label string
		check func(screen.Screen) bool
	}{
		{LabelPractice, func(s screen.Screen) bool { _, ok := s.(*setup.SetupScreen); return ok }},
		{LabelTryout, func(s screen.Screen) bool { _, ok := s.(*sessionscreen.SessionScreen); return ok }},
		{LabelHistory, func(s screen.Screen) bool { _, ok := s.(*historyscreen.HistoryScreen); return ok }},
		{LabelVocab, func(s screen.Screen) bool { _, ok := s.(*vocab.VocabScreen); return ok }},
		{LabelParticles, func(s screen.Screen) bool { _, ok := s.(*particles.ParticlesScreen); return ok }},
		{LabelSettings, func(s screen.Screen) bool { _, ok := s.(*settings.SettingsScreen); return ok }},
	}

	for i, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			h, _ := testHome(t)
			if h.menuLabels[i] != tt.label {
				t.Fatalf("menu item %d = %q, want %q", i, h.menuLabels[i], tt.label)
			}
			for range i {
				h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
			}
			_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected a command")
			}
			push, ok := cmd().(router.PushScreenMsg)
			if !ok {
				t.Fatal("expected PushScreenMsg")
			}
			if !tt.check(push.Screen) {
				t.Errorf("%s opened %T", tt.label, push.Screen)
			}
		})
	}
}

func TestHomeScreen_Exit(t *testing.T) {
	h, _ := testHome(t)
	for range len(h.menuLabels) {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected the program to quit")
	}
}

func TestHomeScreen_FollowsState(t *testing.T) {
	h, st := testHome(t)

	state, _ := st.Dispatch(appstate.ToggleFavorite{VocabID: "v001"})
	h.Update(screen.StateMsg{State: state})
	if len(h.state.Favorites) != 1 {
		t.Errorf("favorites = %v, want one", h.state.Favorites)
	}

	view := h.View(100, 44)
	for _, label := range h.menuLabels {
		if !strings.Contains(view, label) {
			t.Errorf("view is missing %q", label)
		}
	}
}

func TestHomeScreen_CompactView(t *testing.T) {
	h, _ := testHome(t)
	view := h.View(60, 18)
	if !strings.Contains(view, LabelPractice) {
		t.Error("compact view should still list the menu")
	}
}

func TestMascotFor(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	weak := []bank.Vocab{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	tests := []struct {
		name  string
		stats history.Stats
		want  MascotVariant
	}{
		{"empty", history.Stats{}, MascotIdle},
		{"weak vocab", history.Stats{WeakVocab: weak}, MascotAlert},
		{"good recent tryout", history.Stats{LastTryout: &history.TryoutRun{Start: now.Add(-time.Hour), Accuracy: 90}}, MascotCelebrating},
		{"old tryout", history.Stats{LastTryout: &history.TryoutRun{Start: now.Add(-48 * time.Hour), Accuracy: 90}}, MascotIdle},
		{"weak tryout", history.Stats{LastTryout: &history.TryoutRun{Start: now, Accuracy: 50}}, MascotIdle},
		{"weak vocab wins", history.Stats{WeakVocab: weak, LastTryout: &history.TryoutRun{Start: now, Accuracy: 100}}, MascotAlert},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mascotFor(tt.stats, now); got != tt.want {
				t.Errorf("mascotFor = %v, want %v", got, tt.want)
			}
		})
	}
}
