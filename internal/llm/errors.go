package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrInvalidKey indicates the provider rejected the API key. Retrying
// cannot help; the learner has to fix the key in settings.
type ErrInvalidKey struct {
	Err error
}

func (e *ErrInvalidKey) Error() string {
	return fmt.Sprintf("API key rejected: %v", e.Err)
}

func (e *ErrInvalidKey) Unwrap() error { return e.Err }

// ErrRequestRejected is any other 4xx: the request itself is wrong, for
// example a schema the model does not support.
type ErrRequestRejected struct {
	Status int
	Err    error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("request rejected (%d): %v", e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status from a provider SDK to one of the
// error types above.
func classifyStatus(status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return &ErrInvalidKey{Err: err}
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter, Err: err}
	case status >= 400 && status < 500 && status != http.StatusRequestTimeout:
		return &ErrRequestRejected{Status: status, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. Unparseable or past values yield zero.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// ErrRateLimitExceeded is returned by the client-side limiter before any
// network call is made. It is distinct from ErrRateLimit, which reports a
// 429 from the provider itself.
type ErrRateLimitExceeded struct {
	Limit  int
	Window time.Duration
	// RetryAt is when the oldest call in the window expires.
	RetryAt time.Time
}

func (e *ErrRateLimitExceeded) Error() string {
	return fmt.Sprintf("generation limit reached: %d calls per %s", e.Limit, e.Window)
}

// ErrTimeout indicates a single generation call ran past its deadline.
type ErrTimeout struct {
	After time.Duration
	Err   error
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("LLM request timed out after %s", e.After)
}

func (e *ErrTimeout) Unwrap() error { return e.Err }
