package appstate

import (
	"time"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/history"
)

// Action is a request to change the state. The set of actions is closed:
// only the types in this file implement it.
type Action interface {
	actionName() string
}

// SetView switches the active screen.
type SetView struct {
	View View
}

// LoadState replaces the persisted parts of the state with what was read
// at startup. Nil fields keep their current value.
type LoadState struct {
	Settings  *Settings
	History   []history.Entry
	Favorites []string
}

// SaveSettings shallow-merges Patch into the current settings.
type SaveSettings struct {
	Patch SettingsPatch
}

// StartSession begins a new session, replacing any current one. The Store
// fills ID when it is empty. TimeLimit applies to tryouts only.
type StartSession struct {
	ID        string
	Questions []bank.Question
	Tryout    bool
	TimeLimit time.Duration
}

// SubmitAnswer records the answer for the current question.
type SubmitAnswer struct {
	Answer []string
}

// Advance grades the current question and moves on.
type Advance struct{}

// EndSession discards the session. SaveHistory forces a write of history
// entries that have not been stored yet.
type EndSession struct {
	SaveHistory bool
}

// RetryWrong starts an untimed session over the wrongly answered questions
// of the finished session. The Store fills ID when it is empty.
type RetryWrong struct {
	ID string
}

// Tick is one countdown step for the session with the given ID.
type Tick struct {
	SessionID string
}

// ToggleFavorite adds VocabID to the favorites or removes it.
type ToggleFavorite struct {
	VocabID string
}

// ImportBackup replaces history and favorites with the backup contents.
type ImportBackup struct {
	Backup Backup
}

// ResetProgress clears history and favorites.
type ResetProgress struct{}

// ShowToast displays a notification, replacing the visible one.
type ShowToast struct {
	Message string
	Kind    ToastKind
}

// HideToast dismisses the toast with the given ID. Zero hides whatever is
// showing.
type HideToast struct {
	ID int64
}

func (SetView) actionName() string        { return "set-view" }
func (LoadState) actionName() string      { return "load-state" }
func (SaveSettings) actionName() string   { return "save-settings" }
func (StartSession) actionName() string   { return "start-session" }
func (SubmitAnswer) actionName() string   { return "submit-answer" }
func (Advance) actionName() string        { return "advance" }
func (EndSession) actionName() string     { return "end-session" }
func (RetryWrong) actionName() string     { return "retry-wrong" }
func (Tick) actionName() string           { return "tick" }
func (ToggleFavorite) actionName() string { return "toggle-favorite" }
func (ImportBackup) actionName() string   { return "import-backup" }
func (ResetProgress) actionName() string  { return "reset-progress" }
func (ShowToast) actionName() string      { return "show-toast" }
func (HideToast) actionName() string      { return "hide-toast" }

// Effect is a side effect requested by Reduce and carried out by the Store.
type Effect interface {
	effect()
}

// Persist writes the current value of Key to storage.
type Persist struct {
	Key string
}

// ScheduleToastDismiss hides toast ID after the toast delay.
type ScheduleToastDismiss struct {
	ID int64
}

// StartCountdown begins ticking for SessionID, replacing any running
// countdown.
type StartCountdown struct {
	SessionID string
}

// StopCountdown cancels the running countdown, if any.
type StopCountdown struct{}

// CountdownExpired reports that the budget ran out and the session was
// advanced to the end.
type CountdownExpired struct {
	SessionID string
	Forced    int
}

func (Persist) effect()              {}
func (ScheduleToastDismiss) effect() {}
func (StartCountdown) effect()       {}
func (StopCountdown) effect()        {}
func (CountdownExpired) effect()     {}
