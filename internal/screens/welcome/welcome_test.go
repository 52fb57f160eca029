package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Beranda" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for range n {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 4)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 8)
	if w.elapsed != phase2End {
		t.Errorf("expected elapsed %v, got %v", phase2End, w.elapsed)
	}
	if !strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should be visible after the banner phase")
	}
}

func TestKeypressDuringAnimationSkipsToHome(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during animation should trigger transition")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()

	sendTicks(w, 45)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("ticks should stop once the home screen takes over")
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40, theme.Primary), "K O T O B A") {
		t.Error("expected compact banner on narrow terminals")
	}
}
