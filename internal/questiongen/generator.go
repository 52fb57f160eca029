package questiongen

import (
	"context"

	"github.com/abhisek/kotoba/internal/bank"
)

// Generator produces practice questions using an LLM provider.
type Generator interface {
	// Generate produces a single question for the given input.
	// All configured validators are run before returning.
	Generate(ctx context.Context, input GenerateInput) (bank.Question, error)
}

// GenerateInput holds the context for one generated question.
type GenerateInput struct {
	// Type is the question type to produce. Required.
	Type bank.QuestionType

	// Topic is a vocabulary theme such as "Keluarga". Empty means general.
	Topic string

	// PriorStems lists prompts already used in this batch or session so
	// the model avoids repeating them.
	PriorStems []string
}
