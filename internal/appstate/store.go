package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Defaults for Options left at zero.
const (
	DefaultToastDelay   = 3 * time.Second
	DefaultTryoutBudget = 600 * time.Second
	persistTimeout      = 5 * time.Second
)

// Options configures a Store.
type Options struct {
	// KV is where settings, history and favorites are kept. Nil keeps
	// everything in memory.
	KV        store.KVRepo
	Scheduler Scheduler
	Log       *logrus.Logger
	Now       func() time.Time
	NewID     func() string

	ToastDelay   time.Duration
	TryoutBudget time.Duration
}

// Store owns the application state. Dispatch is the only way to change
// it; each call reduces one action and runs its effects before the next
// action is looked at.
type Store struct {
	mu    sync.Mutex
	state State

	kv    store.KVRepo
	sched Scheduler
	log   *logrus.Logger
	now   func() time.Time
	newID func() string

	toastDelay   time.Duration
	tryoutBudget time.Duration

	stopCountdown Cancel
	stopToast     Cancel
	closed        bool

	subMu       sync.Mutex
	subscribers []func(State)
}

// New creates a Store in the initial state. Call Load to read persisted
// data.
func New(opts Options) *Store {
	s := &Store{
		state:        Initial(),
		kv:           opts.KV,
		sched:        opts.Scheduler,
		log:          opts.Log,
		now:          opts.Now,
		newID:        opts.NewID,
		toastDelay:   opts.ToastDelay,
		tryoutBudget: opts.TryoutBudget,
	}
	if s.sched == nil {
		s.sched = RealScheduler{}
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	if s.toastDelay <= 0 {
		s.toastDelay = DefaultToastDelay
	}
	if s.tryoutBudget <= 0 {
		s.tryoutBudget = DefaultTryoutBudget
	}
	return s
}

// Load reads settings, history and favorites from storage. Unreadable or
// malformed values are logged and skipped so a damaged key never blocks
// startup.
func (s *Store) Load(ctx context.Context) State {
	var load LoadState
	if s.kv != nil {
		settings := DefaultSettings()
		if s.read(ctx, KeySettings, &settings) {
			load.Settings = &settings
		}
		var entries []history.Entry
		if s.read(ctx, KeyHistory, &entries) {
			load.History = nonNil(entries)
		}
		var favorites []string
		if s.read(ctx, KeyFavorites, &favorites) {
			load.Favorites = nonNil(favorites)
		}
	}
	st, _ := s.Dispatch(load)
	return st
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func (s *Store) read(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to read stored state")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("ignoring malformed stored state")
		return false
	}
	return true
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to receive every new snapshot. fn runs on the
// dispatching goroutine after the store lock is released, so it may
// dispatch again.
func (s *Store) Subscribe(fn func(State)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies a and returns the resulting snapshot. The error is the
// reason a was rejected; the snapshot then carries an error toast.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	if s.closed {
		st := s.state
		s.mu.Unlock()
		return st, ErrClosed
	}

	switch act := a.(type) {
	case StartSession:
		if act.ID == "" {
			act.ID = s.newID()
		}
		if act.TimeLimit <= 0 {
			act.TimeLimit = s.tryoutBudget
		}
		a = act
	case RetryWrong:
		if act.ID == "" {
			act.ID = s.newID()
		}
		a = act
	}

	next, effects, err := Reduce(s.state, a, s.now())
	s.state = next
	for _, e := range effects {
		s.apply(e)
	}
	st := s.state
	s.mu.Unlock()

	s.notify(st)
	return st, err
}

// ErrClosed is returned by Dispatch after Close.
var ErrClosed = errors.New("state store closed")

// Close cancels the countdown and any pending toast dismissal. Later
// dispatches are refused.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelCountdown()
	if s.stopToast != nil {
		s.stopToast()
		s.stopToast = nil
	}
}

func (s *Store) notify(st State) {
	s.subMu.Lock()
	subs := append([]func(State){}, s.subscribers...)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// apply runs one effect. Called with s.mu held.
func (s *Store) apply(e Effect) {
	switch e := e.(type) {
	case Persist:
		s.persist(e.Key)

	case ScheduleToastDismiss:
		if s.stopToast != nil {
			s.stopToast()
		}
		id := e.ID
		s.stopToast = s.sched.After(s.toastDelay, func() {
			s.Dispatch(HideToast{ID: id})
		})

	case StartCountdown:
		s.cancelCountdown()
		id := e.SessionID
		s.stopCountdown = s.sched.Every(session.TickInterval, func() {
			s.Dispatch(Tick{SessionID: id})
		})

	case StopCountdown:
		s.cancelCountdown()

	case CountdownExpired:
		s.log.WithFields(logrus.Fields{
			"session": e.SessionID,
			"forced":  e.Forced,
		}).Info("tryout time expired")
	}
}

func (s *Store) cancelCountdown() {
	if s.stopCountdown != nil {
		s.stopCountdown()
		s.stopCountdown = nil
	}
}

// persist writes the current value of key. Storage failures are logged
// and otherwise ignored.
func (s *Store) persist(key string) {
	if s.kv == nil {
		return
	}

	var value any
	switch key {
	case KeySettings:
		value = s.state.Settings
	case KeyHistory:
		value = nonNil(s.state.History)
	case KeyFavorites:
		value = nonNil(s.state.Favorites)
	default:
		s.log.WithField("key", key).Warn("unknown state key")
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to encode state")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to persist state")
	}
}

// StartPractice starts an untimed session over questions.
func (s *Store) StartPractice(questions []bank.Question) (State, error) {
	return s.Dispatch(StartSession{Questions: questions})
}

// StartTryout starts a timed session over questions with the configured
// budget.
func (s *Store) StartTryout(questions []bank.Question) (State, error) {
	return s.Dispatch(StartSession{Questions: questions, Tryout: true})
}

// Import parses a backup document and applies it. A malformed document
// leaves history and favorites untouched and shows an error toast.
func (s *Store) Import(data []byte) (State, error) {
	b, err := ParseBackup(data)
	if err != nil {
		st, _ := s.Dispatch(ShowToast{Message: msgInvalidImport, Kind: ToastError})
		return st, err
	}
	return s.Dispatch(ImportBackup{Backup: b})
}

// Export renders the current history and favorites as a backup document.
func (s *Store) Export() ([]byte, error) {
	data, err := MarshalBackup(ExportBackup(s.State()))
	if err != nil {
		return nil, fmt.Errorf("export backup: %w", err)
	}
	return data, nil
}
