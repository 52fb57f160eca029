package llm

import (
	"cmp"
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MockResponse is one queued answer for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
	// StopReason defaults to StopEnd; StopMaxTokens simulates truncation.
	StopReason string
	// Delay holds the answer back, honoring context cancellation.
	Delay time.Duration
}

// MockProvider serves queued answers in order and records every request.
// Queued content passes through the same schema handling as a real
// provider, so an answer that breaks the question schema fails the way a
// model's would. An empty queue reports the provider as down; with
// llm.provider set to mock that drives every session to the local bank.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	Calls []Request
}

// NewMockProvider queues responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// Generate is safe for concurrent use; each call takes one answer.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	next, ok := m.take(req)
	if !ok {
		return nil, &ErrProviderUnavailable{}
	}

	if next.Delay > 0 {
		t := time.NewTimer(next.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return newResponse(req, string(next.Content), next.Usage, "mock", cmp.Or(next.StopReason, StopEnd))
}

func (m *MockProvider) take(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.queue) == 0 {
		return MockResponse{}, false
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	return next, true
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues one more answer.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
