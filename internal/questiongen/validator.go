package questiongen

import (
	"fmt"

	"github.com/abhisek/kotoba/internal/bank"
)

// Validator checks a generated question before it may enter a session.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural" or "shape".
	Name() string

	// Validate returns nil if q passes.
	Validate(q *bank.Question, input GenerateInput) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
