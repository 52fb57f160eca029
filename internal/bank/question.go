package bank

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// QuestionType identifies how a question is answered and graded.
type QuestionType string

const (
	TypeCloze          QuestionType = "cloze"
	TypeParticle       QuestionType = "particle"
	TypeOrdering       QuestionType = "ordering"
	TypeTrueFalse      QuestionType = "tf"
	TypeMultipleChoice QuestionType = "mc"
	TypeKana           QuestionType = "kana"
)

// AllTypes lists every question type in display order.
var AllTypes = []QuestionType{
	TypeCloze,
	TypeParticle,
	TypeOrdering,
	TypeTrueFalse,
	TypeMultipleChoice,
	TypeKana,
}

var typeLabels = map[QuestionType]string{
	TypeCloze:          "Fill in the blank",
	TypeParticle:       "Particle",
	TypeOrdering:       "Sentence ordering",
	TypeTrueFalse:      "True / False",
	TypeMultipleChoice: "Multiple choice",
	TypeKana:           "Kana drill",
}

// Label returns a human-readable name for the type.
func (t QuestionType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

// ParseType converts a string into a QuestionType. The empty string and
// "mixed" map to the zero value, which means "no type filter".
func ParseType(s string) (QuestionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "mixed" {
		return "", nil
	}
	t := QuestionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return t, nil
}

// KanaSet groups kana drills by script and difficulty.
type KanaSet string

const (
	HiraganaBasic    KanaSet = "hiragana_basic"
	HiraganaAdvanced KanaSet = "hiragana_advanced"
	KatakanaBasic    KanaSet = "katakana_basic"
	KatakanaAdvanced KanaSet = "katakana_advanced"
)

// Question is an immutable practice item. Ordering questions store the
// canonical sentence in CorrectKeys and the fragments in Tokens; every
// other type is answered by picking values out of Choices.
type Question struct {
	ID           string       `json:"id" validate:"required"`
	Type         QuestionType `json:"type" validate:"required,oneof=cloze particle ordering tf mc kana"`
	Stem         string       `json:"stem,omitempty"`
	Passage      string       `json:"passage,omitempty"`
	Choices      []string     `json:"choices,omitempty" validate:"required_unless=Type ordering,dive,required"`
	Tokens       []string     `json:"tokens,omitempty" validate:"required_if=Type ordering,dive,required"`
	CorrectKeys  []string     `json:"correctKeys" validate:"required,min=1,dive,required"`
	Explain      string       `json:"explain,omitempty"`
	VocabIDs     []string     `json:"vocabIds,omitempty"`
	Topics       []string     `json:"tema,omitempty"`
	KanaQuestion string       `json:"kanaQuestion,omitempty"`
	RomajiAnswer string       `json:"romajiAnswer,omitempty"`
	KanaSet      KanaSet      `json:"kanaSet,omitempty" validate:"omitempty,oneof=hiragana_basic hiragana_advanced katakana_basic katakana_advanced"`
}

// Prompt returns the text shown to the learner: the stem, or the kana
// glyph for pure kana drills.
func (q Question) Prompt() string {
	if q.Stem != "" {
		return q.Stem
	}
	return q.KanaQuestion
}

// MultiSelect reports whether more than one choice must be picked.
func (q Question) MultiSelect() bool {
	return q.Type != TypeOrdering && len(q.CorrectKeys) > 1
}

// Clone returns a deep copy so callers may reorder slices freely.
func (q Question) Clone() Question {
	q.Choices = slices.Clone(q.Choices)
	q.Tokens = slices.Clone(q.Tokens)
	q.CorrectKeys = slices.Clone(q.CorrectKeys)
	q.VocabIDs = slices.Clone(q.VocabIDs)
	q.Topics = slices.Clone(q.Topics)
	return q
}

// ContentError reports a question whose data breaks a content rule.
type ContentError struct {
	QuestionID string
	Reason     string
	Err        error
}

func (e *ContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question %q: %s: %v", e.QuestionID, e.Reason, e.Err)
	}
	return fmt.Sprintf("question %q: %s", e.QuestionID, e.Reason)
}

func (e *ContentError) Unwrap() error { return e.Err }

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field-level rules and the answer-key invariants:
// choice-based keys must all appear among the choices, and an ordering
// question's keys must be a permutation of its tokens.
func Validate(q Question) error {
	if err := structValidator.Struct(q); err != nil {
		return &ContentError{QuestionID: q.ID, Reason: "invalid fields", Err: err}
	}

	if q.Type == TypeOrdering {
		if !sameMultiset(q.Tokens, q.CorrectKeys) {
			return &ContentError{QuestionID: q.ID, Reason: "correct keys are not a permutation of tokens"}
		}
		return nil
	}

	choices := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		choices[strings.ToLower(c)] = true
	}
	for _, k := range q.CorrectKeys {
		if !choices[strings.ToLower(k)] {
			return &ContentError{QuestionID: q.ID, Reason: fmt.Sprintf("correct key %q is not a choice", k)}
		}
	}
	return nil
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[strings.ToLower(s)]++
	}
	for _, s := range b {
		k := strings.ToLower(s)
		if counts[k] == 0 {
			return false
		}
		counts[k]--
	}
	return true
}
