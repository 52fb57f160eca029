package results

import (
	"io"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/session"
)

type noopScheduler struct{}

func (noopScheduler) After(time.Duration, func()) appstate.Cancel { return func() {} }
func (noopScheduler) Every(time.Duration, func()) appstate.Cancel { return func() {} }

// finishedStore runs a two-question session, answering the first right
// and the second wrong.
func finishedStore(t *testing.T) *appstate.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := appstate.New(appstate.Options{Scheduler: noopScheduler{}, Log: log})
	t.Cleanup(st.Close)

	questions := []bank.Question{
		{ID: "q1", Type: bank.TypeTrueFalse, Stem: "A", Choices: []string{"Benar", "Salah"}, CorrectKeys: []string{"Benar"}},
		{ID: "q2", Type: bank.TypeTrueFalse, Stem: "B", Choices: []string{"Benar", "Salah"}, CorrectKeys: []string{"Salah"}},
	}
	if _, err := st.StartPractice(questions); err != nil {
		t.Fatalf("StartPractice: %v", err)
	}
	for range questions {
		if _, err := st.Dispatch(appstate.SubmitAnswer{Answer: []string{"Benar"}}); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if _, err := st.Dispatch(appstate.Advance{}); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	return st
}

func TestResultsScreen_Display(t *testing.T) {
	st := finishedStore(t)
	s := New(st, st.State())

	if s.summary.Total != 2 || s.summary.Correct != 1 {
		t.Errorf("summary = %d/%d, want 1/2", s.summary.Correct, s.summary.Total)
	}
	if view := s.View(100, 30); view == "" {
		t.Error("expected non-empty results view")
	}
	if s.Title() != "Hasil" {
		t.Errorf("Title = %q, want %q", s.Title(), "Hasil")
	}
}

func TestResultsScreen_Retry(t *testing.T) {
	st := finishedStore(t)
	s := New(st, st.State())

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on retry")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg back to the session")
	}

	sess := st.State().Session
	if sess.Phase != session.PhaseActive || len(sess.Questions) != 1 {
		t.Errorf("retry session = %v with %d questions, want active with 1", sess.Phase, len(sess.Questions))
	}
}

func TestResultsScreen_Home(t *testing.T) {
	st := finishedStore(t)
	s := New(st, st.State())

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if st.State().Session.Phase != session.PhaseIdle {
		t.Error("expected the session to be ended")
	}
	if len(st.State().History) != 2 {
		t.Errorf("history = %d entries, want 2", len(st.State().History))
	}
}

func TestResultsScreen_KeyHints(t *testing.T) {
	st := finishedStore(t)
	s := New(st, st.State())
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints length = %d, want 4", len(s.KeyHints()))
	}
}
