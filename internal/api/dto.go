package api

import (
	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/grading"
)

type StartSessionRequest struct {
	Count  int    `json:"count" validate:"omitempty,min=1,max=50"`
	Type   string `json:"type" validate:"omitempty,oneof=cloze particle ordering tf mc kana mixed"`
	Source string `json:"source" validate:"omitempty,oneof=local ai mixed"`
	Topic  string `json:"topic" validate:"omitempty,max=40"`
	Tryout bool   `json:"tryout"`
}

type SubmitAnswerRequest struct {
	Answer []string `json:"answer" validate:"required,min=1,dive,required"`
}

type EndSessionRequest struct {
	SaveHistory bool `json:"saveHistory"`
}

type CheckKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required,min=8"`
}

type CheckKeyResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type SessionView struct {
	ID       string         `json:"id,omitempty"`
	Phase    string         `json:"phase"`
	Timed    bool           `json:"timed"`
	Position int            `json:"position"`
	Total    int            `json:"total"`
	Current  *QuestionView `json:"current,omitempty"`
	Answer   []string      `json:"answer,omitempty"`
	// Remaining is the countdown in whole seconds for tryouts.
	Remaining *int `json:"remaining,omitempty"`
}

// QuestionView is the current question as shown to the learner. The
// answer fields stay empty until the question has an answer.
type QuestionView struct {
	ID           string            `json:"id"`
	Type         bank.QuestionType `json:"type"`
	Stem         string            `json:"stem,omitempty"`
	Passage      string            `json:"passage,omitempty"`
	Choices      []string          `json:"choices,omitempty"`
	Tokens       []string          `json:"tokens,omitempty"`
	MultiSelect  bool              `json:"multiSelect"`
	Topics       []string          `json:"tema,omitempty"`
	KanaQuestion string            `json:"kanaQuestion,omitempty"`
	KanaSet      bank.KanaSet      `json:"kanaSet,omitempty"`

	CorrectKeys  []string `json:"correctKeys,omitempty"`
	Explain      string   `json:"explain,omitempty"`
	RomajiAnswer string   `json:"romajiAnswer,omitempty"`
}

func newQuestionView(q bank.Question, answered bool) *QuestionView {
	v := &QuestionView{
		ID:           q.ID,
		Type:         q.Type,
		Stem:         q.Stem,
		Passage:      q.Passage,
		Choices:      q.Choices,
		Tokens:       q.Tokens,
		MultiSelect:  q.MultiSelect(),
		Topics:       q.Topics,
		KanaQuestion: q.KanaQuestion,
		KanaSet:      q.KanaSet,
	}
	if answered {
		v.CorrectKeys = q.CorrectKeys
		v.Explain = q.Explain
		v.RomajiAnswer = q.RomajiAnswer
	}
	return v
}

type StateResponse struct {
	View      appstate.View     `json:"view"`
	Settings  appstate.Settings `json:"settings"`
	Favorites []string          `json:"favorites"`
	Session   SessionView       `json:"session"`
	Toast     *appstate.Toast   `json:"toast,omitempty"`
}

type StartSessionResponse struct {
	State     StateResponse `json:"state"`
	Generated int           `json:"generated"`
	FellBack  bool          `json:"fellBack"`
}

func newStateResponse(st appstate.State) StateResponse {
	settings := st.Settings
	settings.APIKey = appstate.MaskKey(settings.APIKey)

	favorites := st.Favorites
	if favorites == nil {
		favorites = []string{}
	}

	return StateResponse{
		View:      st.View,
		Settings:  settings,
		Favorites: favorites,
		Session:   newSessionView(st),
		Toast:     st.Toast,
	}
}

func newSessionView(st appstate.State) SessionView {
	s := st.Session
	pos, total := s.Progress()
	v := SessionView{
		ID:       s.ID,
		Phase:    s.Phase.String(),
		Timed:    s.Timed,
		Position: pos,
		Total:    total,
	}
	if q, ok := s.Current(); ok {
		v.Answer = s.CurrentAnswer()
		v.Current = newQuestionView(q, grading.Answered(v.Answer))
	}
	if st.Countdown != nil {
		secs := int(st.Countdown.Remaining.Seconds())
		v.Remaining = &secs
	}
	return v
}
