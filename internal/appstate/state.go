// Package appstate is the single application state container. Every
// change goes through Reduce, a pure function from a state and an action
// to the next state plus the side effects the Store must carry out.
package appstate

import (
	"slices"
	"strings"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
	"github.com/abhisek/kotoba/internal/session"
)

// Keys under which the persisted parts of the state are stored.
const (
	KeySettings  = "kotoba_settings"
	KeyHistory   = "kotoba_history"
	KeyFavorites = "kotoba_favorites"
)

// View names the screen the user is on.
type View string

const (
	ViewHome      View = "home"
	ViewPractice  View = "practice"
	ViewTryout    View = "tryout"
	ViewSession   View = "session"
	ViewResults   View = "results"
	ViewHistory   View = "history"
	ViewVocab     View = "vocab"
	ViewParticles View = "particles"
	ViewSettings  View = "settings"
)

// Settings are the persisted user preferences.
type Settings struct {
	KanaOnly           bool   `json:"kanaOnly"`
	ShowKanji          bool   `json:"showKanji"`
	ShowFurigana       bool   `json:"showFurigana"`
	TimerPerQuestion   bool   `json:"timerPerQuestion"`
	PerQuestionSeconds int    `json:"perQuestionSeconds"`
	Sound              bool   `json:"sound"`
	HighContrast       bool   `json:"highContrast"`
	APIKey             string `json:"apiKey,omitempty"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		KanaOnly:           true,
		PerQuestionSeconds: 30,
		Sound:              true,
	}
}

// MaskKey hides all but the last four characters of an API key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// SettingsPatch holds the fields to change. Nil fields are left alone.
type SettingsPatch struct {
	KanaOnly           *bool   `json:"kanaOnly,omitempty"`
	ShowKanji          *bool   `json:"showKanji,omitempty"`
	ShowFurigana       *bool   `json:"showFurigana,omitempty"`
	TimerPerQuestion   *bool   `json:"timerPerQuestion,omitempty"`
	PerQuestionSeconds *int    `json:"perQuestionSeconds,omitempty" validate:"omitempty,min=5,max=600"`
	Sound              *bool   `json:"sound,omitempty"`
	HighContrast       *bool   `json:"highContrast,omitempty"`
	APIKey             *string `json:"apiKey,omitempty"`
}

// Merge returns s with every non-nil field of p applied.
func (s Settings) Merge(p SettingsPatch) Settings {
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.KanaOnly, p.KanaOnly)
	set(&s.ShowKanji, p.ShowKanji)
	set(&s.ShowFurigana, p.ShowFurigana)
	set(&s.TimerPerQuestion, p.TimerPerQuestion)
	set(&s.Sound, p.Sound)
	set(&s.HighContrast, p.HighContrast)
	if p.PerQuestionSeconds != nil {
		s.PerQuestionSeconds = *p.PerQuestionSeconds
	}
	if p.APIKey != nil {
		s.APIKey = *p.APIKey
	}
	return s
}

// ToastKind classifies a notification.
type ToastKind string

const (
	ToastInfo    ToastKind = "info"
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification. ID grows with every toast shown so a
// dismissal scheduled for an older toast cannot hide a newer one.
type Toast struct {
	ID      int64     `json:"id"`
	Message string    `json:"message"`
	Kind    ToastKind `json:"kind"`
}

// State is an immutable snapshot of the application. Slices are never
// modified in place; transitions replace them.
type State struct {
	View      View               `json:"view"`
	Settings  Settings           `json:"settings"`
	History   []history.Entry    `json:"history"`
	Favorites []string           `json:"favorites"`
	Session   session.Session    `json:"session"`
	Countdown *session.Countdown `json:"countdown,omitempty"`
	Toast     *Toast             `json:"toast,omitempty"`

	// Unsaved counts trailing history entries not yet written to storage.
	Unsaved int `json:"-"`
	// toastSeq is the ID of the most recent toast.
	toastSeq int64
}

// Initial returns the state before anything is loaded.
func Initial() State {
	return State{
		View:     ViewHome,
		Settings: DefaultSettings(),
	}
}

// IsFavorite reports whether vocabID is bookmarked.
func (s State) IsFavorite(vocabID string) bool {
	return slices.Contains(s.Favorites, vocabID)
}

// Summary grades the current or last session.
func (s State) Summary() (session.Summary, error) {
	if s.Session.Phase != session.PhaseFinished {
		return session.Summary{}, session.ErrNotFinished
	}
	return session.Summarize(s.Session), nil
}

// Stats aggregates the history log.
func (s State) Stats(catalog []bank.Vocab) history.Stats {
	return history.Summarize(s.History, catalog)
}
