// Package session runs a single practice or tryout attempt.
//
// A Session is a value: every transition returns a new Session and leaves
// the receiver untouched, so snapshots handed to readers never change
// underneath them.
package session

import (
	"errors"
	"slices"
	"time"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/grading"
	"github.com/abhisek/kotoba/internal/history"
)

var (
	// ErrNoQuestions is returned when starting a session with no questions.
	ErrNoQuestions = errors.New("session needs at least one question")
	// ErrNotActive is returned by transitions that need an active session.
	ErrNotActive = errors.New("no active session")
	// ErrNoSession is returned when ending a session while idle.
	ErrNoSession = errors.New("no session to end")
	// ErrNotFinished is returned when results are requested too early.
	ErrNotFinished = errors.New("session is not finished")
	// ErrNothingToRetry is returned by Retry when every answer was correct.
	ErrNothingToRetry = errors.New("no wrong answers to retry")
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // No session
	PhaseActive                // Serving questions
	PhaseFinished              // All questions advanced past, results readable
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseFinished:
		return "finished"
	default:
		return "idle"
	}
}

// Session is one run through an ordered list of questions.
type Session struct {
	ID    string `json:"id,omitempty"`
	Phase Phase  `json:"phase"`

	// Timed marks a tryout: a countdown runs while the session is active.
	Timed bool `json:"timed"`

	Questions    []bank.Question `json:"questions,omitempty"`
	CurrentIndex int             `json:"currentIndex"`

	// Answers has one slot per question; a nil slot is unanswered.
	Answers [][]string `json:"answers,omitempty"`

	StartTime         time.Time `json:"startTime,omitzero"`
	QuestionStartTime time.Time `json:"questionStartTime,omitzero"`
	EndTime           time.Time `json:"endTime,omitzero"`
}

// Start begins a session over questions.
func Start(id string, questions []bank.Question, timed bool, now time.Time) (Session, error) {
	if len(questions) == 0 {
		return Session{}, ErrNoQuestions
	}
	return Session{
		ID:                id,
		Phase:             PhaseActive,
		Timed:             timed,
		Questions:         slices.Clone(questions),
		Answers:           make([][]string, len(questions)),
		StartTime:         now,
		QuestionStartTime: now,
	}, nil
}

// InProgress reports whether the session is still serving questions.
func (s Session) InProgress() bool {
	return s.Phase == PhaseActive
}

// Current returns the question being answered.
func (s Session) Current() (bank.Question, bool) {
	if s.Phase != PhaseActive || s.CurrentIndex >= len(s.Questions) {
		return bank.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// CurrentAnswer returns the answer recorded for the current question.
func (s Session) CurrentAnswer() []string {
	if s.CurrentIndex >= len(s.Answers) {
		return nil
	}
	return s.Answers[s.CurrentIndex]
}

// Submit records answer for the current question, replacing any earlier
// submission. Grading happens on Advance.
func (s Session) Submit(answer []string) (Session, error) {
	if s.Phase != PhaseActive {
		return s, ErrNotActive
	}
	answers := slices.Clone(s.Answers)
	answers[s.CurrentIndex] = slices.Clone(answer)
	s.Answers = answers
	return s, nil
}

// Advance grades the current question, produces its history entry, and
// moves to the next question or to PhaseFinished after the last one.
func (s Session) Advance(now time.Time) (Session, history.Entry, error) {
	q, ok := s.Current()
	if !ok {
		return s, history.Entry{}, ErrNotActive
	}

	elapsed := now.Sub(s.QuestionStartTime).Milliseconds()
	if elapsed < 0 {
		elapsed = 0
	}
	entry := history.Entry{
		Timestamp:  now,
		Type:       q.Type,
		Topics:     slices.Clone(q.Topics),
		Correct:    grading.IsCorrect(q, s.Answers[s.CurrentIndex]),
		DurationMs: elapsed,
		QuestionID: q.ID,
		VocabIDs:   slices.Clone(q.VocabIDs),
		Tryout:     s.Timed,
	}

	if s.CurrentIndex+1 < len(s.Questions) {
		s.CurrentIndex++
		s.QuestionStartTime = now
	} else {
		s.CurrentIndex = len(s.Questions)
		s.Phase = PhaseFinished
		s.EndTime = now
	}
	return s, entry, nil
}

// Progress returns the 1-based position of the current question and the
// total count.
func (s Session) Progress() (int, int) {
	pos := s.CurrentIndex + 1
	if pos > len(s.Questions) {
		pos = len(s.Questions)
	}
	return pos, len(s.Questions)
}

// WrongQuestions re-grades a finished session and returns the questions
// whose recorded answer was incorrect, in session order.
func (s Session) WrongQuestions() []bank.Question {
	var wrong []bank.Question
	for i, q := range s.Questions {
		if i >= len(s.Answers) || !grading.IsCorrect(q, s.Answers[i]) {
			wrong = append(wrong, q)
		}
	}
	return wrong
}

// Retry starts an untimed session over the questions answered wrongly in
// the finished session s.
func (s Session) Retry(id string, now time.Time) (Session, error) {
	if s.Phase != PhaseFinished {
		return s, ErrNotFinished
	}
	wrong := s.WrongQuestions()
	if len(wrong) == 0 {
		return s, ErrNothingToRetry
	}
	return Start(id, wrong, false, now)
}
