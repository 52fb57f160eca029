package llm

import (
	"context"
	"strings"
)

// KeyCheckMaxTokens caps the reply so a key check costs almost
// nothing.
const KeyCheckMaxTokens = 5

// CheckKey performs a minimal round trip and reports whether p answered
// with non-empty content. Errors are returned so callers can tell a bad
// key from a timeout or a refused call.
func CheckKey(ctx context.Context, p Provider) (bool, error) {
	resp, err := p.Generate(WithPurpose(ctx, PurposeKeyCheck), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "Reply with: OK"},
		},
		MaxTokens:  KeyCheckMaxTokens,
		NoThinking: true,
	})
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(resp.Content)) != "", nil
}
