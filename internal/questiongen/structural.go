package questiongen

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/abhisek/kotoba/internal/bank"
)

const (
	maxPromptRunes  = 300
	maxExplainRunes = 400
	maxChoices      = 5
)

// StructuralValidator checks that the prompt and explanation are present
// and within length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *bank.Question, _ GenerateInput) *ValidationError {
	if q.Prompt() == "" {
		return v.fail("stem is empty")
	}
	if utf8.RuneCountInString(q.Stem) > maxPromptRunes {
		return v.fail(fmt.Sprintf("stem exceeds %d characters", maxPromptRunes))
	}
	if utf8.RuneCountInString(q.Passage) > maxPromptRunes {
		return v.fail(fmt.Sprintf("passage exceeds %d characters", maxPromptRunes))
	}
	if utf8.RuneCountInString(q.Explain) > maxExplainRunes {
		return v.fail(fmt.Sprintf("explanation exceeds %d characters", maxExplainRunes))
	}
	return nil
}

func (v *StructuralValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

// ShapeValidator enforces per-type layout: ordering questions carry
// tokens and no choices, true/false questions offer exactly Benar/Salah,
// kana drills name the glyph, and choice lists stay short.
type ShapeValidator struct{}

func (v *ShapeValidator) Name() string { return "shape" }

func (v *ShapeValidator) Validate(q *bank.Question, input GenerateInput) *ValidationError {
	if q.Type != input.Type {
		return v.fail(fmt.Sprintf("type %q does not match requested %q", q.Type, input.Type))
	}

	switch q.Type {
	case bank.TypeOrdering:
		if len(q.Tokens) < 2 {
			return v.fail("ordering question needs at least 2 tokens")
		}
		if len(q.Choices) > 0 {
			return v.fail("ordering question must not have choices")
		}
		return nil
	case bank.TypeTrueFalse:
		if len(q.Choices) != 2 || len(q.CorrectKeys) != 1 {
			return v.fail("true/false question needs exactly 2 choices and 1 key")
		}
	case bank.TypeKana:
		if q.KanaQuestion == "" {
			return v.fail("kana question is empty")
		}
	}

	if len(q.Choices) < 2 || len(q.Choices) > maxChoices {
		return v.fail(fmt.Sprintf("expected 2 to %d choices, got %d", maxChoices, len(q.Choices)))
	}
	return nil
}

func (v *ShapeValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}

// ContentValidator applies the bank's own content rules so generated
// questions satisfy the same answer-key invariants as local ones.
type ContentValidator struct{}

func (v *ContentValidator) Name() string { return "content" }

func (v *ContentValidator) Validate(q *bank.Question, _ GenerateInput) *ValidationError {
	if err := bank.Validate(*q); err != nil {
		msg := err.Error()
		var ce *bank.ContentError
		if errors.As(err, &ce) {
			msg = ce.Reason
		}
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	return nil
}
