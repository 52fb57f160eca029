package llm

import (
	"context"
	"errors"
	"time"
)

// TimeoutProvider is a decorator that bounds each Generate call.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider so every call is cancelled after d.
// Deadline overruns surface as *ErrTimeout; a cancellation by the caller
// is passed through unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(callCtx, req)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return nil, &ErrTimeout{After: t.timeout, Err: err}
	}
	return resp, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
