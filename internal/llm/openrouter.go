package llm

import (
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	openRouterReferer = "https://github.com/abhisek/kotoba"
	openRouterTitle   = "kotoba"
)

// NewOpenRouterProvider returns an OpenAI-compatible provider aimed at
// OpenRouter. Model ids are OpenRouter's vendor/model form and skip alias
// resolution. Every request carries OpenRouter's app attribution headers.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: attribution{next: http.DefaultTransport}}
	return newOpenAICompatible(config, cfg.Model), nil
}

type attribution struct {
	next http.RoundTripper
}

func (a attribution) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("HTTP-Referer", openRouterReferer)
	r.Header.Set("X-Title", openRouterTitle)
	return a.next.RoundTrip(r)
}
