package questiongen

import (
	"context"
	"sync"

	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/sirupsen/logrus"
)

// Providers builds generators on demand and keeps one per API key, so the
// rate limit of a key survives across sessions.
type Providers struct {
	llmConfig llm.Config
	config    Config
	events    store.EventRepo
	log       *logrus.Logger

	mu   sync.Mutex
	gens map[string]Generator
}

// NewProviders creates a Providers. events may be nil.
func NewProviders(llmCfg llm.Config, cfg Config, events store.EventRepo, log *logrus.Logger) *Providers {
	return &Providers{
		llmConfig: llmCfg,
		config:    cfg,
		events:    events,
		log:       log,
		gens:      make(map[string]Generator),
	}
}

// Generator returns the generator for apiKey, or for the configured key
// when apiKey is empty. It returns nil when no provider can be set up,
// which callers treat as "serve locally".
func (p *Providers) Generator(ctx context.Context, apiKey string) Generator {
	p.mu.Lock()
	defer p.mu.Unlock()

	if g, ok := p.gens[apiKey]; ok {
		return g
	}
	provider, err := llm.NewProvider(ctx, p.llmConfig.WithAPIKey(apiKey), p.events, p.log)
	if err != nil {
		p.log.WithError(err).Debug("question generation unavailable")
		return nil
	}
	g := New(provider, p.config)
	p.gens[apiKey] = g
	return g
}

// CheckKey sends a minimal request with apiKey. Key checks skip the rate
// limiter and retries.
func (p *Providers) CheckKey(ctx context.Context, apiKey string) (bool, error) {
	cfg := p.llmConfig.WithAPIKey(apiKey)
	cfg.RateLimit = llm.RateLimitConfig{}
	cfg.Retry.MaxAttempts = 1

	provider, err := llm.NewProvider(ctx, cfg, p.events, p.log)
	if err != nil {
		return false, err
	}
	return llm.CheckKey(ctx, provider)
}
