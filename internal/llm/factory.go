package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/kotoba/internal/store"
	"github.com/sirupsen/logrus"
)

// NewProvider creates a Provider from configuration, wrapped with the
// standard middleware chain:
//
//	caller → rate limit → timeout → retry → logging → base
//
// The limiter sits outermost so a refused call never reaches the network
// and never counts against the timeout.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logrus.Logger) (Provider, error) {
	base, err := newBaseProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)
	timed := WithTimeout(retried, cfg.Timeout)
	return WithRateLimit(timed, cfg.RateLimit), nil
}

func newBaseProvider(ctx context.Context, cfg Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return base, nil
}
