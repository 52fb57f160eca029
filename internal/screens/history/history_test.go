package history

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

func testStore(t *testing.T) *appstate.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := appstate.New(appstate.Options{Scheduler: noopScheduler{}, Log: log})
	t.Cleanup(st.Close)
	return st
}

// playSession answers every question with "Benar" and ends the session.
func playSession(t *testing.T, st *appstate.Store) {
	t.Helper()
	questions := []bank.Question{
		{ID: "q1", Type: bank.TypeTrueFalse, Stem: "A", Choices: []string{"Benar", "Salah"}, CorrectKeys: []string{"Benar"}},
		{ID: "q2", Type: bank.TypeTrueFalse, Stem: "B", Choices: []string{"Benar", "Salah"}, CorrectKeys: []string{"Salah"}},
	}
	if _, err := st.StartPractice(questions); err != nil {
		t.Fatalf("StartPractice: %v", err)
	}
	for range questions {
		st.Dispatch(appstate.SubmitAnswer{Answer: []string{"Benar"}})
		st.Dispatch(appstate.Advance{})
	}
	if _, err := st.Dispatch(appstate.EndSession{SaveHistory: true}); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(testStore(t))
	if !strings.Contains(s.View(100, 30), "Belum ada riwayat") {
		t.Error("expected empty-history message")
	}
	if s.Route() != appstate.ViewHistory {
		t.Errorf("Route = %q, want %q", s.Route(), appstate.ViewHistory)
	}
}

func TestHistoryScreen_ShowsStats(t *testing.T) {
	st := testStore(t)
	playSession(t, st)
	s := New(st)

	if s.stats.Total != 2 || s.stats.Accuracy != 50 {
		t.Errorf("stats = %d answers at %d%%, want 2 at 50%%", s.stats.Total, s.stats.Accuracy)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "akurasi 50%") {
		t.Error("expected accuracy in the summary line")
	}
}

func TestHistoryScreen_FollowsState(t *testing.T) {
	st := testStore(t)
	s := New(st)

	playSession(t, st)
	s.Update(screen.StateMsg{State: st.State()})
	if s.stats.Total != 2 {
		t.Errorf("Total = %d after StateMsg, want 2", s.stats.Total)
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	st := testStore(t)
	playSession(t, st)
	s := New(st)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected moved past the last entry: %d", s.selected)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.expanded[1] {
		t.Error("expected entry to expand on Enter")
	}
	if !strings.Contains(s.View(100, 40), "soal q1") {
		t.Error("expected details of the older entry")
	}
}
