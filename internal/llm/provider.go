package llm

import (
	"context"
	"encoding/json"
)

// Provider is a generative model behind one vendor API. Question
// generation and key checks are its only callers.
type Provider interface {
	// Generate sends req and returns the model's answer. With a Schema the
	// answer is a JSON document that has already been checked against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the vendor model id requests are sent to.
	ModelID() string
}

// Request is a single-turn prompt, optionally constrained to a schema.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider into its structured output mode.
	Schema *Schema

	MaxTokens   int
	Temperature float64

	// NoThinking disables reasoning on models that think by default, so a
	// key check's tiny token budget still produces text.
	NoThinking bool
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name
// and as the compile cache key, so it must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a provider answer. Content is the checked JSON document when
// the request had a schema and the raw text otherwise.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string // StopEnd or StopMaxTokens
}

// Usage is the token count billed for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
