package appstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testQuestions() []bank.Question {
	return []bank.Question{
		{ID: "q1", Type: bank.TypeParticle, Choices: []string{"は", "を"}, CorrectKeys: []string{"は"}, VocabIDs: []string{"v1"}},
		{ID: "q2", Type: bank.TypeOrdering, Tokens: []string{"b", "a"}, CorrectKeys: []string{"a", "b"}},
		{ID: "q3", Type: bank.TypeMultipleChoice, Choices: []string{"x", "y", "z"}, CorrectKeys: []string{"x", "y"}},
	}
}

// reduceAll applies actions in order, failing on any rejected action.
func reduceAll(t *testing.T, st State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		var err error
		st, _, err = Reduce(st, a, t0)
		require.NoError(t, err, "%T", a)
	}
	return st
}

func hasEffect[E Effect](effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(E); ok {
			return true
		}
	}
	return false
}

func TestReduce_TwoAdvancesFinish(t *testing.T) {
	st := reduceAll(t, Initial(),
		StartSession{ID: "s1", Questions: testQuestions()[:2]},
		SubmitAnswer{Answer: []string{"は"}},
		Advance{},
		SubmitAnswer{Answer: []string{"b", "a"}},
	)

	st, effects, err := Reduce(st, Advance{}, t0.Add(3*time.Second))
	require.NoError(t, err)

	assert.Equal(t, session.PhaseFinished, st.Session.Phase)
	assert.Equal(t, ViewResults, st.View)
	require.Len(t, st.History, 2)
	assert.True(t, st.History[0].Correct)
	assert.False(t, st.History[1].Correct)
	assert.Equal(t, int64(3000), st.History[1].DurationMs)
	assert.Zero(t, st.Unsaved)
	assert.True(t, hasEffect[Persist](effects))
	assert.True(t, hasEffect[StopCountdown](effects))

	sum, err := st.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Correct)
	assert.Equal(t, 50, sum.Accuracy)
}

func TestReduce_ResubmitOverwrites(t *testing.T) {
	st := reduceAll(t, Initial(),
		StartSession{ID: "s1", Questions: testQuestions()},
		SubmitAnswer{Answer: []string{"を"}},
		SubmitAnswer{Answer: []string{"は"}},
	)
	assert.Equal(t, []string{"は"}, st.Session.CurrentAnswer())

	st = reduceAll(t, st, Advance{})
	require.Len(t, st.History, 1)
	assert.True(t, st.History[0].Correct)
	assert.Equal(t, 1, st.Unsaved)
}

func TestReduce_AdvanceWithoutAnswer(t *testing.T) {
	st := reduceAll(t, Initial(), StartSession{ID: "s1", Questions: testQuestions()[:2]})

	st = reduceAll(t, st, Advance{}, Advance{})
	assert.Equal(t, session.PhaseFinished, st.Session.Phase)
	require.Len(t, st.History, 2)
	for _, e := range st.History {
		assert.False(t, e.Correct)
	}
	assert.Nil(t, st.Toast)
}

func TestStore_AdvanceWithoutAnswer(t *testing.T) {
	kv := newFakeKV()
	s := newTestStore(kv, &fakeScheduler{})

	_, err := s.StartPractice(testQuestions()[:2])
	require.NoError(t, err)
	_, err = s.Dispatch(Advance{})
	require.NoError(t, err)
	st, err := s.Dispatch(Advance{})
	require.NoError(t, err)

	assert.Equal(t, session.PhaseFinished, st.Session.Phase)
	assert.Len(t, st.History, 2)
	assert.Contains(t, kv.data, KeyHistory)
}

func TestReduce_InactiveSession(t *testing.T) {
	_, _, err := Reduce(Initial(), SubmitAnswer{Answer: []string{"a"}}, t0)
	assert.ErrorIs(t, err, session.ErrNotActive)

	_, _, err = Reduce(Initial(), Advance{}, t0)
	assert.ErrorIs(t, err, session.ErrNotActive)

	_, _, err = Reduce(Initial(), EndSession{}, t0)
	assert.ErrorIs(t, err, session.ErrNoSession)

	_, _, err = Reduce(Initial(), StartSession{ID: "s1"}, t0)
	assert.ErrorIs(t, err, session.ErrNoQuestions)
}

func TestReduce_EndSession(t *testing.T) {
	tests := []struct {
		name        string
		saveHistory bool
		wantPersist bool
	}{
		{name: "abandon without save", saveHistory: false, wantPersist: false},
		{name: "abandon with save", saveHistory: true, wantPersist: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := reduceAll(t, Initial(),
				StartSession{ID: "s1", Questions: testQuestions()},
				SubmitAnswer{Answer: []string{"は"}},
				Advance{},
				SubmitAnswer{Answer: []string{"a", "b"}},
			)

			st, effects, err := Reduce(st, EndSession{SaveHistory: tt.saveHistory}, t0)
			require.NoError(t, err)

			assert.Len(t, st.History, 1, "the abandoned question has no entry")
			assert.Equal(t, session.PhaseIdle, st.Session.Phase)
			assert.Equal(t, ViewHome, st.View)
			assert.Equal(t, tt.wantPersist, hasEffect[Persist](effects))
			assert.True(t, hasEffect[StopCountdown](effects))
		})
	}
}

func finishWithAnswers(t *testing.T, answers ...[]string) State {
	t.Helper()
	st := reduceAll(t, Initial(), StartSession{ID: "s1", Questions: testQuestions()})
	for _, a := range answers {
		st = reduceAll(t, st, SubmitAnswer{Answer: a}, Advance{})
	}
	require.Equal(t, session.PhaseFinished, st.Session.Phase)
	return st
}

func TestReduce_RetryWrong(t *testing.T) {
	t.Run("one wrong", func(t *testing.T) {
		st := finishWithAnswers(t, []string{"は"}, []string{"b", "a"}, []string{"y", "x"})

		st, _, err := Reduce(st, RetryWrong{ID: "s2"}, t0)
		require.NoError(t, err)
		assert.Equal(t, session.PhaseActive, st.Session.Phase)
		assert.False(t, st.Session.Timed)
		require.Len(t, st.Session.Questions, 1)
		assert.Equal(t, "q2", st.Session.Questions[0].ID)
	})

	t.Run("nothing wrong", func(t *testing.T) {
		st := finishWithAnswers(t, []string{"は"}, []string{"a", "b"}, []string{"x", "y"})

		next, _, err := Reduce(st, RetryWrong{ID: "s2"}, t0)
		assert.ErrorIs(t, err, session.ErrNothingToRetry)
		assert.Equal(t, "s1", next.Session.ID, "no session started")
		require.NotNil(t, next.Toast)
		assert.Equal(t, ToastSuccess, next.Toast.Kind)
	})

	t.Run("not finished", func(t *testing.T) {
		st := reduceAll(t, Initial(), StartSession{ID: "s1", Questions: testQuestions()})
		_, _, err := Reduce(st, RetryWrong{ID: "s2"}, t0)
		assert.ErrorIs(t, err, session.ErrNotFinished)
	})
}

func TestReduce_TickExpiryForcesAdvance(t *testing.T) {
	st := reduceAll(t, Initial(),
		StartSession{ID: "s1", Questions: testQuestions(), Tryout: true, TimeLimit: 2 * time.Second},
		SubmitAnswer{Answer: []string{"は"}},
	)
	require.NotNil(t, st.Countdown)

	st = reduceAll(t, st, Tick{SessionID: "other"})
	assert.Equal(t, 2*time.Second, st.Countdown.Remaining, "stale tick ignored")

	st = reduceAll(t, st, Tick{SessionID: "s1"})
	assert.Equal(t, time.Second, st.Countdown.Remaining)

	st, effects, err := Reduce(st, Tick{SessionID: "s1"}, t0)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseFinished, st.Session.Phase)
	assert.Nil(t, st.Countdown)
	require.Len(t, st.History, 3)
	assert.True(t, st.History[0].Correct)
	assert.False(t, st.History[1].Correct, "unanswered counts as wrong")
	for _, e := range st.History {
		assert.True(t, e.Tryout)
	}

	var expired CountdownExpired
	for _, e := range effects {
		if ce, ok := e.(CountdownExpired); ok {
			expired = ce
		}
	}
	assert.Equal(t, CountdownExpired{SessionID: "s1", Forced: 3}, expired)
	assert.True(t, hasEffect[StopCountdown](effects))
}

func TestReduce_Favorites(t *testing.T) {
	st := reduceAll(t, Initial(), ToggleFavorite{VocabID: "v1"}, ToggleFavorite{VocabID: "v2"})
	assert.Equal(t, []string{"v1", "v2"}, st.Favorites)
	assert.True(t, st.IsFavorite("v1"))

	before := st.Favorites
	st = reduceAll(t, st, ToggleFavorite{VocabID: "v1"})
	assert.Equal(t, []string{"v2"}, st.Favorites)
	assert.Equal(t, []string{"v1", "v2"}, before, "earlier snapshot unchanged")
}

func TestReduce_SettingsShallowMerge(t *testing.T) {
	on := true
	secs := 45
	st, effects, err := Reduce(Initial(), SaveSettings{Patch: SettingsPatch{ShowKanji: &on, PerQuestionSeconds: &secs}}, t0)
	require.NoError(t, err)

	want := DefaultSettings()
	want.ShowKanji = true
	want.PerQuestionSeconds = 45
	assert.Equal(t, want, st.Settings)
	assert.Equal(t, []Effect{Persist{Key: KeySettings}}, effects)
}

func TestReduce_ToastSupersede(t *testing.T) {
	st := reduceAll(t, Initial(),
		ShowToast{Message: "first", Kind: ToastInfo},
		ShowToast{Message: "second", Kind: ToastSuccess},
	)
	require.NotNil(t, st.Toast)
	second := st.Toast.ID

	st = reduceAll(t, st, HideToast{ID: second - 1})
	require.NotNil(t, st.Toast, "stale dismissal must not hide the newer toast")
	assert.Equal(t, "second", st.Toast.Message)

	st = reduceAll(t, st, HideToast{ID: second})
	assert.Nil(t, st.Toast)
}

func TestReduce_ResetProgress(t *testing.T) {
	st := reduceAll(t, Initial(),
		LoadState{History: []history.Entry{{Type: bank.TypeCloze}}, Favorites: []string{"v1"}},
		ResetProgress{},
	)
	assert.Empty(t, st.History)
	assert.Empty(t, st.Favorites)
}

func TestParseBackup(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "valid", doc: `{"version":1,"favorites":["v1"],"history":[]}`},
		{name: "with entries", doc: `{"version":1,"favorites":[],"history":[{"ts":"2026-03-01T09:00:00Z","type":"cloze","correct":true,"durationMs":900}]}`},
		{name: "epoch millis", doc: `{"version":1,"favorites":["v1"],"history":[{"ts":1700000000000,"type":"mc","correct":true,"durationMs":1200}]}`},
		{name: "sparse entry", doc: `{"version":1,"favorites":[],"history":[{"durationMs":500}]}`},
		{name: "bad ts", doc: `{"version":1,"favorites":[],"history":[{"ts":true}]}`, wantErr: true},
		{name: "wrong version", doc: `{"version":2,"favorites":[],"history":[]}`, wantErr: true},
		{name: "missing history", doc: `{"version":1,"favorites":[]}`, wantErr: true},
		{name: "favorites not array", doc: `{"version":1,"favorites":"v1","history":[]}`, wantErr: true},
		{name: "not json", doc: `version: 1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBackup([]byte(tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBackup)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseBackup_Timestamps(t *testing.T) {
	want := time.UnixMilli(1700000000000).UTC()
	tests := []struct {
		name string
		ts   string
	}{
		{"epoch millis", `1700000000000`},
		{"rfc3339", `"` + want.Format(time.RFC3339Nano) + `"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"version":1,"favorites":[],"history":[{"ts":` + tt.ts + `,"type":"mc","correct":true}]}`
			b, err := ParseBackup([]byte(doc))
			require.NoError(t, err)
			require.Len(t, b.History, 1)
			assert.True(t, want.Equal(b.History[0].Timestamp), "got %v", b.History[0].Timestamp)
			assert.Equal(t, bank.TypeMultipleChoice, b.History[0].Type)
		})
	}
}

// fakeKV is an in-memory store.KVRepo.
type fakeKV struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

// fakeScheduler records tasks; tests run them explicitly.
type fakeScheduler struct {
	mu    sync.Mutex
	tasks []*fakeTask
}

type fakeTask struct {
	every     bool
	fn        func()
	cancelled bool
}

func (f *fakeScheduler) add(every bool, fn func()) Cancel {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := &fakeTask{every: every, fn: fn}
	f.tasks = append(f.tasks, task)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		task.cancelled = true
	}
}

func (f *fakeScheduler) After(_ time.Duration, fn func()) Cancel { return f.add(false, fn) }
func (f *fakeScheduler) Every(_ time.Duration, fn func()) Cancel { return f.add(true, fn) }

// live returns the tasks of the given kind that have not been cancelled.
func (f *fakeScheduler) live(every bool) []*fakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeTask
	for _, task := range f.tasks {
		if task.every == every && !task.cancelled {
			out = append(out, task)
		}
	}
	return out
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(kv *fakeKV, sched *fakeScheduler) *Store {
	n := 0
	return New(Options{
		KV:           kv,
		Scheduler:    sched,
		Log:          quietLogger(),
		Now:          func() time.Time { return t0 },
		NewID:        func() string { n++; return fmt.Sprintf("id-%d", n) },
		TryoutBudget: 2 * time.Second,
	})
}

func TestStore_TryoutCountdown(t *testing.T) {
	kv := newFakeKV()
	sched := &fakeScheduler{}
	s := newTestStore(kv, sched)

	st, err := s.StartTryout(testQuestions())
	require.NoError(t, err)
	assert.Equal(t, "id-1", st.Session.ID)

	tickers := sched.live(true)
	require.Len(t, tickers, 1)
	tickers[0].fn()
	tickers[0].fn()

	st = s.State()
	assert.Equal(t, session.PhaseFinished, st.Session.Phase)
	assert.Len(t, st.History, 3)
	assert.Empty(t, sched.live(true), "countdown cancelled on finish")

	raw, ok, _ := kv.Get(context.Background(), KeyHistory)
	require.True(t, ok)
	var stored []history.Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Len(t, stored, 3)

	// A tick that was already in flight when the countdown stopped.
	tickers[0].fn()
	assert.Len(t, s.State().History, 3)
}

func TestStore_CountdownCancelledOnExit(t *testing.T) {
	t.Run("end session", func(t *testing.T) {
		sched := &fakeScheduler{}
		s := newTestStore(newFakeKV(), sched)
		_, err := s.StartTryout(testQuestions())
		require.NoError(t, err)

		_, err = s.Dispatch(EndSession{})
		require.NoError(t, err)
		assert.Empty(t, sched.live(true))
	})

	t.Run("new practice session", func(t *testing.T) {
		sched := &fakeScheduler{}
		s := newTestStore(newFakeKV(), sched)
		_, err := s.StartTryout(testQuestions())
		require.NoError(t, err)

		_, err = s.StartPractice(testQuestions())
		require.NoError(t, err)
		assert.Empty(t, sched.live(true))
	})

	t.Run("close", func(t *testing.T) {
		sched := &fakeScheduler{}
		s := newTestStore(newFakeKV(), sched)
		_, err := s.StartTryout(testQuestions())
		require.NoError(t, err)

		s.Close()
		assert.Empty(t, sched.live(true))
		_, err = s.Dispatch(Advance{})
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestStore_ToastDismissal(t *testing.T) {
	sched := &fakeScheduler{}
	s := newTestStore(newFakeKV(), sched)

	s.Dispatch(ShowToast{Message: "one"})
	first := sched.live(false)
	require.Len(t, first, 1)

	s.Dispatch(ShowToast{Message: "two"})
	assert.Len(t, sched.live(false), 1, "older dismissal cancelled")

	first[0].fn()
	require.NotNil(t, s.State().Toast)
	assert.Equal(t, "two", s.State().Toast.Message)

	sched.live(false)[0].fn()
	assert.Nil(t, s.State().Toast)
}

func TestStore_LoadAndPersist(t *testing.T) {
	kv := newFakeKV()
	kv.data[KeySettings] = `{"kanaOnly":false,"showKanji":true}`
	kv.data[KeyHistory] = `not json`
	kv.data[KeyFavorites] = `["v3"]`

	s := newTestStore(kv, &fakeScheduler{})
	st := s.Load(context.Background())

	assert.False(t, st.Settings.KanaOnly)
	assert.True(t, st.Settings.ShowKanji)
	assert.Equal(t, 30, st.Settings.PerQuestionSeconds, "missing fields keep defaults")
	assert.Empty(t, st.History, "malformed history skipped")
	assert.Equal(t, []string{"v3"}, st.Favorites)

	_, err := s.Dispatch(ToggleFavorite{VocabID: "v4"})
	require.NoError(t, err)
	assert.JSONEq(t, `["v3","v4"]`, kv.data[KeyFavorites])
}

func TestStore_PersistFailureKeepsState(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("disk full")
	s := newTestStore(kv, &fakeScheduler{})

	st, err := s.Dispatch(ToggleFavorite{VocabID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, st.Favorites)
}

func TestStore_Import(t *testing.T) {
	s := newTestStore(newFakeKV(), &fakeScheduler{})
	_, err := s.Dispatch(ToggleFavorite{VocabID: "old"})
	require.NoError(t, err)

	st, err := s.Import([]byte(`{"version":2,"favorites":["v1"],"history":[]}`))
	assert.ErrorIs(t, err, ErrInvalidBackup)
	assert.Equal(t, []string{"old"}, st.Favorites, "rejected import leaves state intact")
	require.NotNil(t, st.Toast)
	assert.Equal(t, ToastError, st.Toast.Kind)

	st, err = s.Import([]byte(`{"version":1,"favorites":["v1"],"history":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, st.Favorites)
	assert.Empty(t, st.History)

	data, err := s.Export()
	require.NoError(t, err)
	b, err := ParseBackup(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, b.Favorites)
}

func TestStore_Subscribe(t *testing.T) {
	s := newTestStore(newFakeKV(), &fakeScheduler{})
	var views []View
	s.Subscribe(func(st State) { views = append(views, st.View) })

	s.Dispatch(SetView{View: ViewVocab})
	s.Dispatch(SetView{View: ViewHistory})
	assert.Equal(t, []View{ViewVocab, ViewHistory}, views)
}
