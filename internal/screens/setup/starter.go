package setup

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/questiongen"
	"github.com/abhisek/kotoba/internal/router"
	sessionscreen "github.com/abhisek/kotoba/internal/screens/session"
)

// StartFailedMsg reports that no session could be started. The store has
// already shown a toast explaining why.
type StartFailedMsg struct {
	Err error
}

// Starter picks questions and starts sessions on the store.
type Starter struct {
	Store     *appstate.Store
	Bank      *bank.Accessor
	Providers *questiongen.Providers // nil: local bank only
	Rand      bank.Rand
	Log       *logrus.Logger

	PracticeCount int
	TryoutCount   int
	Source        questiongen.Source

	// mu serializes picks, which share Rand.
	mu sync.Mutex
}

// Practice picks questions for req and replaces the current screen with
// the session.
func (s *Starter) Practice(req questiongen.Request) tea.Cmd {
	if req.Count <= 0 {
		req.Count = s.PracticeCount
	}
	if req.Source == "" {
		req.Source = s.Source
	}
	return func() tea.Msg {
		res := s.pick(context.Background(), req)
		if msg, ok := res.Notice(); ok {
			s.Store.Dispatch(appstate.ShowToast{Message: msg, Kind: appstate.ToastError})
		}
		st, err := s.Store.StartPractice(res.Questions)
		if err != nil {
			return StartFailedMsg{Err: err}
		}
		return router.ReplaceScreenMsg{Screen: sessionscreen.New(s.Store, st)}
	}
}

// Tryout starts a timed session over a mixed set from the local bank and
// pushes it.
func (s *Starter) Tryout() tea.Cmd {
	return func() tea.Msg {
		res := s.pick(context.Background(), questiongen.Request{
			Count:  s.TryoutCount,
			Source: questiongen.SourceLocal,
		})
		st, err := s.Store.StartTryout(res.Questions)
		if err != nil {
			return StartFailedMsg{Err: err}
		}
		return router.PushScreenMsg{Screen: sessionscreen.New(s.Store, st)}
	}
}

func (s *Starter) pick(ctx context.Context, req questiongen.Request) questiongen.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	var gen questiongen.Generator
	if req.Source != questiongen.SourceLocal && s.Providers != nil {
		gen = s.Providers.Generator(ctx, s.Store.State().Settings.APIKey)
	}
	return questiongen.NewPicker(s.Bank, gen, s.Rand, s.Log).Pick(ctx, req)
}
