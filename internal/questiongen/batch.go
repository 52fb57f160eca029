package questiongen

import (
	"context"

	"github.com/abhisek/kotoba/internal/bank"
	"github.com/sourcegraph/conc/pool"
)

// MaxParallel caps concurrent generation calls in one batch.
const MaxParallel = 4

// GenerateBatch runs one Generate call per input in parallel. Calls are
// independent: a failure or timeout in one does not cancel the others.
// It returns the successful questions in input order together with the
// joined errors of the failed calls.
func GenerateBatch(ctx context.Context, gen Generator, inputs []GenerateInput) ([]bank.Question, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	p := pool.NewWithResults[bank.Question]().
		WithContext(ctx).
		WithMaxGoroutines(min(len(inputs), MaxParallel))

	for _, in := range inputs {
		p.Go(func(ctx context.Context) (bank.Question, error) {
			return gen.Generate(ctx, in)
		})
	}

	return p.Wait()
}

// Failures splits a batch error into its per-call errors.
func Failures(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
