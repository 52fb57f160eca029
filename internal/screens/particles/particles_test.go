package particles

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/screen"
)

type noopScheduler struct{}

func (noopScheduler) After(time.Duration, func()) appstate.Cancel { return func() {} }
func (noopScheduler) Every(time.Duration, func()) appstate.Cancel { return func() {} }

func testParticlesScreen(t *testing.T) *ParticlesScreen {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := appstate.New(appstate.Options{Scheduler: noopScheduler{}, Log: log})
	t.Cleanup(st.Close)
	return New(st)
}

func TestParticlesScreen_Navigation(t *testing.T) {
	s := testParticlesScreen(t)
	all := bank.Particles()

	if s.Selected().Kana != all[0].Kana {
		t.Errorf("first selection = %q, want %q", s.Selected().Kana, all[0].Kana)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.Selected().Kana != all[1].Kana {
		t.Errorf("after Down = %q, want %q", s.Selected().Kana, all[1].Kana)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("selected = %d, want clamp at 0", s.selected)
	}

	s.Update(tea.KeyPressMsg{Code: 'G', Text: "G"})
	if s.selected != len(all)-1 {
		t.Errorf("selected = %d, want last", s.selected)
	}
}

func TestParticlesScreen_View(t *testing.T) {
	s := testParticlesScreen(t)
	first := bank.Particles()[0]

	view := s.View(100, 30)
	if !strings.Contains(view, first.Functions[0]) {
		t.Errorf("expected function %q in view", first.Functions[0])
	}
	if !strings.Contains(view, first.Examples[0].Romaji) {
		t.Error("expected the example romaji in view")
	}
}

func TestParticlesScreen_ExamplesFollowSettings(t *testing.T) {
	s := testParticlesScreen(t)
	first := bank.Particles()[0]

	if !strings.Contains(s.View(100, 30), first.Examples[0].Kana) {
		t.Error("expected kana examples by default")
	}

	settings := appstate.DefaultSettings()
	settings.KanaOnly = false
	settings.ShowKanji = true
	s.Update(screen.StateMsg{State: appstate.State{Settings: settings}})
	if !strings.Contains(s.View(100, 30), first.Examples[0].JP) {
		t.Error("expected kanji examples once ShowKanji is on")
	}
}
