package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient provider failures with exponential
// backoff. A response that fails the schema gets one more attempt.
// Failures another attempt cannot fix are returned at once: a rejected
// key or request, truncated output, the local rate limit, a timeout and
// caller cancellation.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	sleep  func(context.Context, time.Duration) error
}

// WithRetry wraps p with the retry policy in cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg, sleep: sleepCtx}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	schemaRetried := false

	var err error
	for attempt := range attempts {
		if attempt > 0 {
			wait, ok := r.backoff(attempt-1, err)
			if !ok {
				return nil, err
			}
			if serr := r.sleep(ctx, wait); serr != nil {
				return nil, serr
			}
		}

		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch retryPolicyFor(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if schemaRetried {
				return nil, err
			}
			schemaRetried = true
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

type retryPolicy int

const (
	retryTransient retryPolicy = iota
	retryOnce
	retryNever
)

func retryPolicyFor(err error) retryPolicy {
	var (
		badKey    *ErrInvalidKey
		rejected  *ErrRequestRejected
		truncated *ErrMaxTokensExceeded
		limited   *ErrRateLimitExceeded
		timedOut  *ErrTimeout
		invalid   *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &badKey), errors.As(err, &rejected), errors.As(err, &truncated),
		errors.As(err, &limited), errors.As(err, &timedOut):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryTransient
}

// backoff returns how long to wait before the next attempt. A provider
// Retry-After longer than MaxWait is not worth waiting for and ends the
// loop.
func (r *RetryProvider) backoff(attempt int, err error) (time.Duration, bool) {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		if r.config.MaxWait > 0 && rl.RetryAfter > r.config.MaxWait {
			return 0, false
		}
		return rl.RetryAfter, true
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 {
		wait = math.Min(wait, float64(r.config.MaxWait))
	}
	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0)), true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
