package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoProvider is returned by LoadConfig when neither LECTIZ_LLM_PROVIDER
// nor any well-known API key variable is set.
var ErrNoProvider = errors.New("no LLM provider configured")

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend: anthropic, openai, gemini, openrouter
	// or mock.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
	// BaseURL points the client at an OpenAI-compatible endpoint.
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with default models and retry settings.
func DefaultConfig() Config {
	return Config{
		Provider:   BackendAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 45 * time.Second,
	}
}

// envOverrides maps LECTIZ_* variables onto Config fields.
var envOverrides = []struct {
	name  string
	apply func(*Config, string)
}{
	{"LECTIZ_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"LECTIZ_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"LECTIZ_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"LECTIZ_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"LECTIZ_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"LECTIZ_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"LECTIZ_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"LECTIZ_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"LECTIZ_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"LECTIZ_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
}

// ConfigFromEnv builds a Config from LECTIZ_* variables over the defaults.
// LECTIZ_CONTENT_TIMEOUT, when set, must parse as a time.Duration.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	for _, o := range envOverrides {
		if v := os.Getenv(o.name); v != "" {
			o.apply(&cfg, v)
		}
	}
	if v := os.Getenv("LECTIZ_CONTENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("LECTIZ_CONTENT_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// DiscoverConfig checks the vendors' own API key variables in order
// (Gemini, OpenAI, Anthropic, OpenRouter) and selects the first found.
func DiscoverConfig() (Config, bool) {
	candidates := []struct {
		env     string
		backend string
		set     func(*Config, string)
	}{
		{"GEMINI_API_KEY", BackendGemini, func(c *Config, k string) { c.Gemini.APIKey = k }},
		{"OPENAI_API_KEY", BackendOpenAI, func(c *Config, k string) { c.OpenAI.APIKey = k }},
		{"ANTHROPIC_API_KEY", BackendAnthropic, func(c *Config, k string) { c.Anthropic.APIKey = k }},
		{"OPENROUTER_API_KEY", BackendOpenRouter, func(c *Config, k string) { c.OpenRouter.APIKey = k }},
	}

	for _, p := range candidates {
		if k := os.Getenv(p.env); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = p.backend
			p.set(&cfg, k)
			return cfg, true
		}
	}
	return Config{}, false
}

// LoadConfig returns the explicit LECTIZ_* configuration when
// LECTIZ_LLM_PROVIDER is set, otherwise a discovered one. It returns
// ErrNoProvider when nothing is configured.
func LoadConfig() (Config, error) {
	if os.Getenv("LECTIZ_LLM_PROVIDER") != "" {
		cfg, err := ConfigFromEnv()
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	cfg, ok := DiscoverConfig()
	if !ok {
		return Config{}, ErrNoProvider
	}
	if v := os.Getenv("LECTIZ_CONTENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("LECTIZ_CONTENT_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case BackendAnthropic:
		key, env = c.Anthropic.APIKey, "LECTIZ_ANTHROPIC_API_KEY"
	case BackendOpenAI:
		key, env = c.OpenAI.APIKey, "LECTIZ_OPENAI_API_KEY"
	case BackendGemini:
		key, env = c.Gemini.APIKey, "LECTIZ_GEMINI_API_KEY"
	case BackendOpenRouter:
		key, env = c.OpenRouter.APIKey, "LECTIZ_OPENROUTER_API_KEY"
	case BackendMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
