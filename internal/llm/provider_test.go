package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(particleJSON), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage("OK")},
	)

	first, err := mock.Generate(context.Background(), Request{Schema: particleSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != particleJSON || first.Usage.TotalTokens != 15 || first.StopReason != StopEnd {
		t.Errorf("first = %+v", first)
	}

	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != "OK" {
		t.Errorf("second content = %s", second.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: expected ErrProviderUnavailable, got %T", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_AppliesSchema(t *testing.T) {
	tests := []struct {
		name string
		resp MockResponse
		want func(error) bool
	}{
		{
			"missing correct keys",
			MockResponse{Content: json.RawMessage(`{"stem":"s","choices":["は"]}`)},
			func(err error) bool { var e *ErrInvalidResponse; return errors.As(err, &e) },
		},
		{
			"truncated",
			MockResponse{Content: json.RawMessage(`{"stem":"わ`), StopReason: StopMaxTokens},
			func(err error) bool { var e *ErrMaxTokensExceeded; return errors.As(err, &e) },
		},
		{
			"configured error",
			MockResponse{Err: &ErrInvalidKey{}},
			func(err error) bool { var e *ErrInvalidKey; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.resp)
			_, err := mock.Generate(context.Background(), Request{
				System: "Kamu menulis soal JLPT N5.",
				Schema: particleSchema(),
			})
			if !tt.want(err) {
				t.Errorf("err = %T %v", err, err)
			}
			if mock.Calls[0].System != "Kamu menulis soal JLPT N5." {
				t.Errorf("recorded system = %q", mock.Calls[0].System)
			}
		})
	}
}

func TestMockProvider_DelayHonoursCancel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("OK"), Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := mock.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if mock.ModelID() != "mock" {
		t.Errorf("ModelID = %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != PurposeUnknown {
		t.Fatalf("expected %q, got %q", PurposeUnknown, p)
	}

	ctx = WithPurpose(ctx, PurposeKeyCheck)
	if p := PurposeFrom(ctx); p != PurposeKeyCheck {
		t.Fatalf("expected %q, got %q", PurposeKeyCheck, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
