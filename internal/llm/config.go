package llm

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
	RateLimit  RateLimitConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// RateLimitConfig caps generation calls per rolling window.
// A zero Count disables the limiter.
type RateLimitConfig struct {
	Count  int
	Window time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     2 * time.Second,
			Multiplier:  2.0,
		},
		RateLimit: RateLimitConfig{
			Count:  10,
			Window: 5 * time.Minute,
		},
		Timeout: 5 * time.Second,
	}
}

// ConfigFromViper builds a Config from the llm.* and generation.* keys,
// falling back to defaults for unset values. When the selected provider
// has no key, the first provider that does is used instead.
func ConfigFromViper(v *viper.Viper) Config {
	cfg := DefaultConfig()

	setString(v, "llm.provider", &cfg.Provider)

	setString(v, "llm.gemini.api_key", &cfg.Gemini.APIKey)
	setString(v, "llm.gemini.model", &cfg.Gemini.Model)

	setString(v, "llm.openai.api_key", &cfg.OpenAI.APIKey)
	setString(v, "llm.openai.model", &cfg.OpenAI.Model)
	setString(v, "llm.openai.base_url", &cfg.OpenAI.BaseURL)

	setString(v, "llm.anthropic.api_key", &cfg.Anthropic.APIKey)
	setString(v, "llm.anthropic.model", &cfg.Anthropic.Model)

	setString(v, "llm.openrouter.api_key", &cfg.OpenRouter.APIKey)
	setString(v, "llm.openrouter.model", &cfg.OpenRouter.Model)
	setString(v, "llm.openrouter.base_url", &cfg.OpenRouter.BaseURL)

	if d := v.GetDuration("generation.timeout"); d > 0 {
		cfg.Timeout = d
	}
	if v.IsSet("generation.rate_limit.count") {
		cfg.RateLimit.Count = v.GetInt("generation.rate_limit.count")
	}
	if d := v.GetDuration("generation.rate_limit.window"); d > 0 {
		cfg.RateLimit.Window = d
	}

	if cfg.Validate() != nil {
		if p, ok := cfg.discover(); ok {
			cfg.Provider = p
		}
	}
	return cfg
}

func setString(v *viper.Viper, key string, dst *string) {
	if s := v.GetString(key); s != "" {
		*dst = s
	}
}

// discover returns the first provider with an API key in priority order
// Gemini, OpenAI, Anthropic, OpenRouter.
func (c Config) discover() (string, bool) {
	switch {
	case c.Gemini.APIKey != "":
		return "gemini", true
	case c.OpenAI.APIKey != "":
		return "openai", true
	case c.Anthropic.APIKey != "":
		return "anthropic", true
	case c.OpenRouter.APIKey != "":
		return "openrouter", true
	}
	return "", false
}

// WithAPIKey returns a copy of c with key set on the selected provider.
// Settings carry a single user-supplied key which overrides config.
func (c Config) WithAPIKey(key string) Config {
	if key == "" {
		return c
	}
	switch c.Provider {
	case "openai":
		c.OpenAI.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	case "mock":
	default:
		c.Provider = "gemini"
		c.Gemini.APIKey = key
	}
	return c
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("llm.anthropic.api_key (or ANTHROPIC_API_KEY) is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("llm.openai.api_key (or OPENAI_API_KEY) is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("llm.gemini.api_key (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("llm.openrouter.api_key (or OPENROUTER_API_KEY) is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
