package appstate

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/kotoba/internal/session"
)

// MsgNoAnswer is the toast for confirming a question with nothing selected.
const MsgNoAnswer = "Pilih jawaban terlebih dahulu"

// Toast messages shown for rejected or notable actions.
const (
	msgNoSession     = "Tidak ada sesi yang berjalan"
	msgNoQuestions   = "Tidak ada soal yang tersedia"
	msgNothingWrong  = "Tidak ada jawaban yang salah!"
	msgNotFinished   = "Sesi belum selesai"
	msgImported      = "Data berhasil diimpor"
	msgInvalidImport = "File cadangan tidak valid"
	msgReset         = "Riwayat berhasil dihapus."
	msgTimeUp        = "Waktu habis!"
)

// Reduce applies a to st. It never mutates st and performs no I/O: the
// returned effects describe what the caller must do. A rejected action
// returns its error together with a state that only differs from st by an
// error toast.
func Reduce(st State, a Action, now time.Time) (State, []Effect, error) {
	switch a := a.(type) {
	case SetView:
		st.View = a.View
		return st, nil, nil

	case LoadState:
		if a.Settings != nil {
			st.Settings = *a.Settings
		}
		if a.History != nil {
			st.History = slices.Clone(a.History)
			st.Unsaved = 0
		}
		if a.Favorites != nil {
			st.Favorites = slices.Clone(a.Favorites)
		}
		return st, nil, nil

	case SaveSettings:
		st.Settings = st.Settings.Merge(a.Patch)
		return st, []Effect{Persist{Key: KeySettings}}, nil

	case StartSession:
		return startSession(st, a, now)

	case SubmitAnswer:
		next, err := st.Session.Submit(a.Answer)
		if err != nil {
			return reject(st, msgNoSession, err)
		}
		st.Session = next
		return st, nil, nil

	case Advance:
		if !st.Session.InProgress() {
			return reject(st, msgNoSession, session.ErrNotActive)
		}
		return advance(st, now)

	case EndSession:
		if st.Session.Phase == session.PhaseIdle {
			return st, nil, session.ErrNoSession
		}
		effects := []Effect{StopCountdown{}}
		if a.SaveHistory && st.Unsaved > 0 {
			effects = append(effects, Persist{Key: KeyHistory})
			st.Unsaved = 0
		}
		st.Session = session.Session{}
		st.Countdown = nil
		st.View = ViewHome
		return st, effects, nil

	case RetryWrong:
		next, err := st.Session.Retry(a.ID, now)
		switch {
		case errors.Is(err, session.ErrNothingToRetry):
			effects := pushToast(&st, msgNothingWrong, ToastSuccess)
			return st, effects, err
		case err != nil:
			return reject(st, msgNotFinished, err)
		}
		st.Session = next
		st.Countdown = nil
		st.View = ViewSession
		return st, []Effect{StopCountdown{}}, nil

	case Tick:
		return tick(st, a, now)

	case ToggleFavorite:
		if i := slices.Index(st.Favorites, a.VocabID); i >= 0 {
			st.Favorites = slices.Delete(slices.Clone(st.Favorites), i, i+1)
		} else {
			st.Favorites = append(slices.Clone(st.Favorites), a.VocabID)
		}
		return st, []Effect{Persist{Key: KeyFavorites}}, nil

	case ImportBackup:
		if err := a.Backup.check(); err != nil {
			return reject(st, msgInvalidImport, err)
		}
		st.History = slices.Clone(a.Backup.History)
		st.Favorites = slices.Clone(a.Backup.Favorites)
		st.Unsaved = 0
		effects := append([]Effect{Persist{Key: KeyHistory}, Persist{Key: KeyFavorites}},
			pushToast(&st, msgImported, ToastSuccess)...)
		return st, effects, nil

	case ResetProgress:
		st.History = nil
		st.Favorites = nil
		st.Unsaved = 0
		effects := append([]Effect{Persist{Key: KeyHistory}, Persist{Key: KeyFavorites}},
			pushToast(&st, msgReset, ToastInfo)...)
		return st, effects, nil

	case ShowToast:
		effects := pushToast(&st, a.Message, a.Kind)
		return st, effects, nil

	case HideToast:
		if st.Toast != nil && (a.ID == 0 || a.ID == st.Toast.ID) {
			st.Toast = nil
		}
		return st, nil, nil

	default:
		return st, nil, fmt.Errorf("unknown action %T", a)
	}
}

func startSession(st State, a StartSession, now time.Time) (State, []Effect, error) {
	next, err := session.Start(a.ID, a.Questions, a.Tryout, now)
	if err != nil {
		return reject(st, msgNoQuestions, err)
	}
	st.Session = next
	st.View = ViewSession
	if a.Tryout {
		cd := session.NewCountdown(a.ID, a.TimeLimit)
		st.Countdown = &cd
		return st, []Effect{StartCountdown{SessionID: a.ID}}, nil
	}
	st.Countdown = nil
	return st, []Effect{StopCountdown{}}, nil
}

// advance moves past the current question, recording its history entry.
// Reaching the end stops the countdown and writes the history.
func advance(st State, now time.Time) (State, []Effect, error) {
	next, entry, err := st.Session.Advance(now)
	if err != nil {
		return reject(st, msgNoSession, err)
	}
	st.Session = next
	st.History = append(slices.Clone(st.History), entry)
	st.Unsaved++

	if next.Phase != session.PhaseFinished {
		return st, nil, nil
	}
	st.Unsaved = 0
	st.Countdown = nil
	st.View = ViewResults
	return st, []Effect{StopCountdown{}, Persist{Key: KeyHistory}}, nil
}

// tick decrements the countdown. Ticks for another session or an inactive
// one are ignored. On expiry every remaining question is advanced with
// whatever answer it holds.
func tick(st State, a Tick, now time.Time) (State, []Effect, error) {
	if st.Countdown == nil || st.Countdown.SessionID != a.SessionID || !st.Session.InProgress() {
		return st, nil, nil
	}
	cd := st.Countdown.Tick()
	st.Countdown = &cd
	if !cd.Expired() {
		return st, nil, nil
	}

	var effects []Effect
	forced := 0
	for st.Session.InProgress() {
		next, e, err := advance(st, now)
		if err != nil {
			return st, effects, err
		}
		st = next
		effects = append(effects, e...)
		forced++
	}
	effects = append(effects, CountdownExpired{SessionID: a.SessionID, Forced: forced})
	effects = append(effects, pushToast(&st, msgTimeUp, ToastInfo)...)
	return st, effects, nil
}

// pushToast sets a new toast on st and returns its dismissal effect.
func pushToast(st *State, msg string, kind ToastKind) []Effect {
	st.toastSeq++
	st.Toast = &Toast{ID: st.toastSeq, Message: msg, Kind: kind}
	return []Effect{ScheduleToastDismiss{ID: st.toastSeq}}
}

func reject(st State, msg string, err error) (State, []Effect, error) {
	effects := pushToast(&st, msg, ToastError)
	return st, effects, err
}
