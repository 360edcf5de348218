package llm

import (
	"fmt"
	"os"
	"time"
)

// Providers lists the supported provider names.
var Providers = []string{"anthropic", "openai", "gemini", "openrouter", "mock"}

// defaultModels is used when no model is configured.
var defaultModels = map[string]string{
	"anthropic":  "claude-haiku",
	"openai":     "gpt-4o-mini",
	"gemini":     "gemini-flash",
	"openrouter": "openai/gpt-4o-mini",
}

// Config selects and configures one provider.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the API endpoint for OpenAI-compatible servers.
	BaseURL string

	Retry RetryConfig
	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures backoff between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetry is three attempts starting at one second.
func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2,
	}
}

// keyEnv names the standard API key variable of each provider.
var keyEnv = map[string]string{
	"anthropic":  "ANTHROPIC_API_KEY",
	"openai":     "OPENAI_API_KEY",
	"gemini":     "GEMINI_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
}

// LoadConfig reads LESSBUILDER_LLM_PROVIDER, _MODEL, _API_KEY and
// _BASE_URL. Without an explicit provider it picks the first of Anthropic,
// OpenAI, Gemini and OpenRouter whose standard API key is set. ok is false when no
// provider could be determined.
func LoadConfig() (cfg Config, ok bool) {
	cfg = Config{
		Provider: os.Getenv("LESSBUILDER_LLM_PROVIDER"),
		Model:    os.Getenv("LESSBUILDER_LLM_MODEL"),
		APIKey:   os.Getenv("LESSBUILDER_LLM_API_KEY"),
		BaseURL:  os.Getenv("LESSBUILDER_LLM_BASE_URL"),
		Retry:    DefaultRetry(),
		Timeout:  90 * time.Second,
	}

	if cfg.Provider == "" {
		for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
			if k := os.Getenv(keyEnv[p]); k != "" {
				cfg.Provider = p
				if cfg.APIKey == "" {
					cfg.APIKey = k
				}
				break
			}
		}
	}
	if cfg.Provider == "" {
		return cfg, false
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(keyEnv[cfg.Provider])
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	return cfg, true
}

// Validate checks the provider name and that a key is present.
func (c Config) Validate() error {
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic", "openai", "gemini", "openrouter":
		if c.APIKey == "" {
			return fmt.Errorf("%s provider needs LESSBUILDER_LLM_API_KEY or %s", c.Provider, keyEnv[c.Provider])
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}
