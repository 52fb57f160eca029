package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitProvider is a decorator that refuses calls once Count calls have
// started within the trailing Window. Refusal happens before the inner
// provider is touched.
type RateLimitProvider struct {
	inner  Provider
	config RateLimitConfig
	now    func() time.Time

	mu    sync.Mutex
	calls []time.Time
}

// WithRateLimit wraps a Provider with a client-side sliding-window limiter.
func WithRateLimit(p Provider, cfg RateLimitConfig) *RateLimitProvider {
	return &RateLimitProvider{inner: p, config: cfg, now: time.Now}
}

func (r *RateLimitProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitProvider) ModelID() string {
	return r.inner.ModelID()
}

// Remaining reports how many calls the current window still allows.
func (r *RateLimitProvider) Remaining() int {
	if r.config.Count <= 0 {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evict(r.now())
	return r.config.Count - len(r.calls)
}

func (r *RateLimitProvider) acquire() error {
	if r.config.Count <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evict(now)
	if len(r.calls) >= r.config.Count {
		return &ErrRateLimitExceeded{
			Limit:   r.config.Count,
			Window:  r.config.Window,
			RetryAt: r.calls[0].Add(r.config.Window),
		}
	}
	r.calls = append(r.calls, now)
	return nil
}

func (r *RateLimitProvider) evict(now time.Time) {
	cutoff := now.Add(-r.config.Window)
	i := 0
	for i < len(r.calls) && !r.calls[i].After(cutoff) {
		i++
	}
	r.calls = r.calls[i:]
}
