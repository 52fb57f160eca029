package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/google/uuid"
)

// IDPrefix marks questions that did not come from the local catalog.
const IDPrefix = "gen-"

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Stem         string   `json:"stem"`
	Passage      string   `json:"passage"`
	Tokens       []string `json:"tokens"`
	Choices      []string `json:"choices"`
	CorrectKeys  []string `json:"correct_keys"`
	Explanation  string   `json:"explanation"`
	KanaQuestion string   `json:"kana_question"`
	RomajiAnswer string   `json:"romaji_answer"`
}

// Generate produces a single question for the given input.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (bank.Question, error) {
	if !input.Type.Valid() {
		return bank.Question{}, fmt.Errorf("generate: unknown question type %q", input.Type)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return bank.Question{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return bank.Question{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := bank.Question{
		ID:           IDPrefix + uuid.NewString(),
		Type:         input.Type,
		Stem:         strings.TrimSpace(raw.Stem),
		Passage:      strings.TrimSpace(raw.Passage),
		Tokens:       nonEmpty(raw.Tokens),
		Choices:      nonEmpty(raw.Choices),
		CorrectKeys:  nonEmpty(raw.CorrectKeys),
		Explain:      strings.TrimSpace(raw.Explanation),
		KanaQuestion: strings.TrimSpace(raw.KanaQuestion),
		RomajiAnswer: strings.TrimSpace(raw.RomajiAnswer),
	}
	if input.Topic != "" {
		q.Topics = []string{input.Topic}
	}
	if q.Type == bank.TypeOrdering {
		q.Choices = nil
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&q, input); verr != nil {
			return bank.Question{}, verr
		}
	}

	return q, nil
}

// nonEmpty trims every entry and drops blanks; it returns nil for an
// all-blank slice so optional fields stay absent.
func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
