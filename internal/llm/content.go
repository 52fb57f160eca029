package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// newResponse turns the text a provider returned into a Response. With a
// schema the text must be a complete JSON document that satisfies it; a
// markdown fence around the document is tolerated.
func newResponse(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	resp := &Response{Usage: usage, Model: model, StopReason: stop}

	if req.Schema == nil {
		resp.Content = json.RawMessage(text)
		return resp, nil
	}

	body := stripFence(text)
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(body)}
	}
	if err := checkSchema(req.Schema, body); err != nil {
		return nil, err
	}
	resp.Content = json.RawMessage(body)
	return resp, nil
}

// stripFence removes a ```json ... ``` wrapper. Models add one now and then
// even when asked for bare JSON.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if i := strings.IndexAny(s, "{[\n"); i >= 0 && s[i] == '\n' {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	return strings.TrimSpace(s)
}

func checkSchema(schema *Schema, body string) error {
	if body == "" {
		return &ErrInvalidResponse{Err: errors.New("empty response")}
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return &ErrInvalidResponse{Content: json.RawMessage(body), Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchemas.get(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: json.RawMessage(body), Err: err}
	}
	return nil
}

// schemaSet compiles each named schema once.
type schemaSet struct {
	mu     sync.Mutex
	byName map[string]*jsonschema.Schema
}

var compiledSchemas = &schemaSet{byName: make(map[string]*jsonschema.Schema)}

func (s *schemaSet) get(schema *Schema) (*jsonschema.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.byName[schema.Name]; ok {
		return c, nil
	}

	// The compiler takes decoded JSON, so round-trip the Go literal.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schema.Name + ".json"
	if err := c.AddResource(url, def); err != nil {
		return nil, err
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	s.byName[schema.Name] = compiled
	return compiled, nil
}
