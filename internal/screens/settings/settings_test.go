package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/llm"
)

type noopScheduler struct{}

func (noopScheduler) After(time.Duration, func()) appstate.Cancel { return func() {} }
func (noopScheduler) Every(time.Duration, func()) appstate.Cancel { return func() {} }

type fakeChecker struct {
	valid bool
	err   error
	keys  []string
}

func (f *fakeChecker) CheckKey(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.valid, f.err
}

func testSettings(t *testing.T, checker KeyChecker) (*SettingsScreen, *appstate.Store) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := appstate.New(appstate.Options{Scheduler: noopScheduler{}, Log: log})
	t.Cleanup(st.Close)
	return newScreen(st, checker), st
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func moveTo(s *SettingsScreen, row int) {
	for s.row < row {
		s.Update(specialKey(tea.KeyDown))
	}
}

func TestSettingsScreen_KanjiAndKanaAreExclusive(t *testing.T) {
	s, st := testSettings(t, nil)

	moveTo(s, rowShowKanji)
	s.Update(specialKey(tea.KeyEnter))
	got := st.State().Settings
	if !got.ShowKanji || got.KanaOnly {
		t.Errorf("after enabling kanji: ShowKanji=%v KanaOnly=%v", got.ShowKanji, got.KanaOnly)
	}

	s.Update(specialKey(tea.KeyUp))
	s.Update(specialKey(tea.KeyEnter))
	got = st.State().Settings
	if got.ShowKanji || !got.KanaOnly {
		t.Errorf("after enabling kana only: ShowKanji=%v KanaOnly=%v", got.ShowKanji, got.KanaOnly)
	}
}

func TestSettingsScreen_Toggles(t *testing.T) {
	s, st := testSettings(t, nil)

	moveTo(s, rowTimer)
	s.Update(specialKey(tea.KeyEnter))
	moveTo(s, rowContrast)
	s.Update(specialKey(tea.KeyEnter))

	got := st.State().Settings
	if !got.TimerPerQuestion {
		t.Error("expected the per-question timer on")
	}
	if !got.HighContrast {
		t.Error("expected high contrast on")
	}
	if !got.Sound {
		t.Error("sound should be untouched")
	}
}

func TestSettingsScreen_SecondsAreClamped(t *testing.T) {
	s, st := testSettings(t, nil)
	moveTo(s, rowSeconds)

	s.Update(specialKey(tea.KeyRight))
	if got := st.State().Settings.PerQuestionSeconds; got != 35 {
		t.Errorf("PerQuestionSeconds = %d, want 35", got)
	}
	for range 20 {
		s.Update(specialKey(tea.KeyLeft))
	}
	if got := st.State().Settings.PerQuestionSeconds; got != minSeconds {
		t.Errorf("PerQuestionSeconds = %d, want %d", got, minSeconds)
	}
}

func TestSettingsScreen_EditAPIKey(t *testing.T) {
	s, st := testSettings(t, nil)
	moveTo(s, rowAPIKey)

	s.Update(specialKey(tea.KeyEnter))
	if !s.HandlesEscape() {
		t.Fatal("expected the key editor to take Esc")
	}
	for _, r := range "sk-test-1234" {
		s.Update(keyPress(r))
	}
	s.Update(specialKey(tea.KeyEnter))

	if got := st.State().Settings.APIKey; got != "sk-test-1234" {
		t.Errorf("APIKey = %q, want sk-test-1234", got)
	}
	view := s.View(100, 30)
	if strings.Contains(view, "sk-test") {
		t.Error("the saved key must be masked")
	}
	if !strings.Contains(view, "1234") {
		t.Error("expected the last four characters of the key")
	}
}

func TestSettingsScreen_EditAPIKeyCancel(t *testing.T) {
	s, st := testSettings(t, nil)
	moveTo(s, rowAPIKey)

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('x'))
	s.Update(specialKey(tea.KeyEscape))

	if s.editingKey {
		t.Error("expected Esc to close the editor")
	}
	if st.State().Settings.APIKey != "" {
		t.Error("cancelled edit must not save")
	}
}

func TestSettingsScreen_CheckKey(t *testing.T) {
	checker := &fakeChecker{valid: true}
	s, st := testSettings(t, checker)
	key := "sk-abc"
	st.Dispatch(appstate.SaveSettings{Patch: appstate.SettingsPatch{APIKey: &key}})
	s.state = st.State()

	moveTo(s, rowCheckKey)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected an async key check")
	}
	if !s.checking {
		t.Error("expected checking state")
	}
	s.Update(cmd())

	if s.checking {
		t.Error("expected the check to finish")
	}
	if len(checker.keys) != 1 || checker.keys[0] != "sk-abc" {
		t.Errorf("checked keys = %v, want [sk-abc]", checker.keys)
	}
	if toast := st.State().Toast; toast == nil || toast.Message != MsgKeyValid {
		t.Errorf("toast = %+v, want %q", toast, MsgKeyValid)
	}
}

func TestSettingsScreen_CheckKeyFailure(t *testing.T) {
	checker := &fakeChecker{valid: true, err: errors.New("boom")}
	s, st := testSettings(t, checker)
	key := "sk-abc"
	st.Dispatch(appstate.SaveSettings{Patch: appstate.SettingsPatch{APIKey: &key}})
	s.state = st.State()

	moveTo(s, rowCheckKey)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())

	if toast := st.State().Toast; toast == nil || toast.Kind != appstate.ToastError {
		t.Errorf("toast = %+v, want an error", toast)
	}
}

func TestSettingsScreen_CheckKeyRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rejected key", fmt.Errorf("check: %w", &llm.ErrInvalidKey{Err: errors.New("401")}), MsgKeyRejected},
		{"unreachable", &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}, MsgKeyInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{err: tt.err}
			s, st := testSettings(t, checker)
			key := "sk-abc"
			st.Dispatch(appstate.SaveSettings{Patch: appstate.SettingsPatch{APIKey: &key}})
			s.state = st.State()

			moveTo(s, rowCheckKey)
			_, cmd := s.Update(specialKey(tea.KeyEnter))
			s.Update(cmd())

			if toast := st.State().Toast; toast == nil || toast.Message != tt.want {
				t.Errorf("toast = %+v, want %q", toast, tt.want)
			}
		})
	}
}

func TestSettingsScreen_CheckKeyWithoutKey(t *testing.T) {
	checker := &fakeChecker{valid: true}
	s, st := testSettings(t, checker)

	moveTo(s, rowCheckKey)
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no request without a key")
	}
	if toast := st.State().Toast; toast == nil || toast.Message != MsgKeyMissing {
		t.Errorf("toast = %+v, want %q", toast, MsgKeyMissing)
	}
	if len(checker.keys) != 0 {
		t.Error("checker must not be called")
	}
}

func TestSettingsScreen_Reset(t *testing.T) {
	s, st := testSettings(t, nil)
	st.Dispatch(appstate.LoadState{
		History:   []history.Entry{{Correct: true}},
		Favorites: []string{"v001"},
	})
	s.state = st.State()

	moveTo(s, rowReset)
	s.Update(specialKey(tea.KeyEnter))
	if !s.confirmReset {
		t.Fatal("expected a confirmation first")
	}

	s.Update(keyPress('n'))
	if len(st.State().History) != 1 {
		t.Fatal("declining must keep progress")
	}

	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('y'))
	got := st.State()
	if len(got.History) != 0 || len(got.Favorites) != 0 {
		t.Errorf("after reset: %d history, %d favorites", len(got.History), len(got.Favorites))
	}
}
