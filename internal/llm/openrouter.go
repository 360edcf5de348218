package llm

import (
	"errors"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter reaches any model routed by OpenRouter through its
// OpenAI-compatible API.
type OpenRouter struct {
	*OpenAI
}

// NewOpenRouter creates an OpenRouter provider. BaseURL defaults to the
// public endpoint.
func NewOpenRouter(cfg Config) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	inner, err := NewOpenAI(cfg)
	if err != nil {
		return nil, err
	}
	return &OpenRouter{OpenAI: inner}, nil
}
