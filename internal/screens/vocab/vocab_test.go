package vocab

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

func testVocabScreen(t *testing.T) (*VocabScreen, *appstate.Store) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := appstate.New(appstate.Options{Scheduler: noopScheduler{}, Log: log})
	t.Cleanup(st.Close)
	return New(st), st
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func typeText(s *VocabScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func TestVocabScreen_ShowsEverything(t *testing.T) {
	s, _ := testVocabScreen(t)
	if len(s.Visible()) != len(bank.Vocabulary()) {
		t.Errorf("visible = %d, want all %d words", len(s.Visible()), len(bank.Vocabulary()))
	}
	if s.HandlesEscape() {
		t.Error("Esc should go back while the search box is not focused")
	}
}

func TestVocabScreen_ThemeFilter(t *testing.T) {
	s, _ := testVocabScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if got := s.Filter().Theme; got != bank.Themes[0] {
		t.Fatalf("Theme = %q, want %q", got, bank.Themes[0])
	}
	for _, v := range s.Visible() {
		if !v.HasTheme(bank.Themes[0]) {
			t.Errorf("%s is not tagged %q", v.ID, bank.Themes[0])
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.Filter().Theme != "" {
		t.Error("expected all themes after moving back")
	}
}

func TestVocabScreen_Search(t *testing.T) {
	s, _ := testVocabScreen(t)

	s.Update(keyPress('/'))
	if !s.HandlesEscape() {
		t.Fatal("expected the search box to take Esc while focused")
	}
	typeText(s, "gakusei")

	if len(s.Visible()) == 0 || s.Visible()[0].ID != "v003" {
		t.Errorf("search results = %v, want v003 first", s.Visible())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.HandlesEscape() {
		t.Error("expected Esc to leave the search box")
	}
	if s.Filter().Query != "gakusei" {
		t.Errorf("query = %q, want it kept after leaving the box", s.Filter().Query)
	}
}

func TestVocabScreen_ToggleFavorite(t *testing.T) {
	s, st := testVocabScreen(t)
	first := s.Visible()[0].ID

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !st.State().IsFavorite(first) {
		t.Fatalf("expected %s to be a favorite", first)
	}

	s.Update(keyPress('f'))
	if len(s.Visible()) != 1 || s.Visible()[0].ID != first {
		t.Errorf("favorites only = %v, want just %s", s.Visible(), first)
	}
	if !strings.Contains(s.View(120, 30), "★") {
		t.Error("expected a star next to the favorite")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if len(s.Visible()) != 0 {
		t.Errorf("expected no favorites left, got %d", len(s.Visible()))
	}
	if !strings.Contains(s.View(120, 30), "Tidak ada kosakata") {
		t.Error("expected the empty message")
	}
}

func TestVocabScreen_FollowsSettings(t *testing.T) {
	s, st := testVocabScreen(t)

	on := true
	off := false
	state, err := st.Dispatch(appstate.SaveSettings{Patch: appstate.SettingsPatch{ShowKanji: &on, KanaOnly: &off}})
	if err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	s.Update(screen.StateMsg{State: state})

	if !strings.Contains(s.View(120, 40), "学校") {
		t.Error("expected kanji spelling once ShowKanji is on")
	}
}
