package llm

import "context"

// Purpose labels why a request was made. It is stored with every request
// event and is what `kotoba llm list --purpose` filters on.
type Purpose string

const (
	PurposeQuestionGen Purpose = "question-gen"
	PurposeKeyCheck    Purpose = "key-check"
	PurposeUnknown     Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose returns a context whose requests are logged under p.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose attached to ctx, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
