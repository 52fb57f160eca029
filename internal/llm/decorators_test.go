package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRateLimit_RefusesBeforeCalling(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"a"`)},
		MockResponse{Content: json.RawMessage(`"b"`)},
		MockResponse{Content: json.RawMessage(`"c"`)},
	)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	p := WithRateLimit(mock, RateLimitConfig{Count: 2, Window: 5 * time.Minute})
	p.now = func() time.Time { return now }

	for i := range 2 {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimitExceeded
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimitExceeded, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("limited call reached the provider: %d calls", mock.CallCount())
	}
	if !rl.RetryAt.Equal(now.Add(5 * time.Minute)) {
		t.Errorf("RetryAt = %v", rl.RetryAt)
	}
	if p.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", p.Remaining())
	}

	// The window slides: once the first calls age out, a slot frees up.
	now = now.Add(5*time.Minute + time.Second)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("after window: %v", err)
	}
}

func TestRateLimit_ZeroCountDisables(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"a"`)},
		MockResponse{Content: json.RawMessage(`"b"`)},
	)
	p := WithRateLimit(mock, RateLimitConfig{})
	for range 2 {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatal(err)
		}
	}
	if p.Remaining() != -1 {
		t.Errorf("Remaining = %d, want -1 for unlimited", p.Remaining())
	}
}

func TestTimeout_DistinguishesDeadline(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`"slow"`), Delay: time.Second},
		MockResponse{Content: json.RawMessage(`"fast"`)},
	)
	p := WithTimeout(mock, 20*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var te *ErrTimeout
	if !errors.As(err, &te) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("ErrTimeout should unwrap to context.DeadlineExceeded")
	}

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("fast call: %v", err)
	}
	if string(resp.Content) != `"fast"` {
		t.Errorf("content = %s", resp.Content)
	}
}

func TestTimeout_CallerCancelPassesThrough(t *testing.T) {
	mock := NewMockProvider(MockResponse{Delay: time.Second})
	p := WithTimeout(mock, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	var te *ErrTimeout
	if errors.As(err, &te) {
		t.Fatal("caller cancellation reported as timeout")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckKey(t *testing.T) {
	tests := []struct {
		name    string
		resp    MockResponse
		want    bool
		wantErr bool
	}{
		{name: "reply", resp: MockResponse{Content: json.RawMessage("OK")}, want: true},
		{name: "empty reply", resp: MockResponse{Content: json.RawMessage("  ")}, want: false},
		{name: "provider error", resp: MockResponse{Err: &ErrProviderUnavailable{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.resp)
			got, err := CheckKey(context.Background(), mock)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CheckKey = %v, want %v", got, tt.want)
			}
			if mock.Calls[0].MaxTokens != KeyCheckMaxTokens {
				t.Errorf("MaxTokens = %d, want %d", mock.Calls[0].MaxTokens, KeyCheckMaxTokens)
			}
		})
	}
}

type fakeEventRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func TestLogging_RecordsEvents(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 7, OutputTokens: 3}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, "mock", repo, quietLogger())
	ctx := WithPurpose(context.Background(), "question-gen")

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 2 {
		t.Fatalf("events = %d, want 2", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.InputTokens != 7 || ok.Purpose != "question-gen" || ok.Provider != "mock" {
		t.Errorf("success event = %+v", ok)
	}
	if ok.ResponseBody != `{"ok":true}` {
		t.Errorf("ResponseBody = %q", ok.ResponseBody)
	}
	if failed.Success || failed.ErrorMessage != "boom" {
		t.Errorf("failure event = %+v", failed)
	}
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", repo, quietLogger())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("request failed because of event log: %v", err)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	cfg.Provider = "gemini"
	if _, err := NewProvider(context.Background(), cfg, nil, quietLogger()); err == nil {
		t.Error("expected error for gemini without key")
	}
}
