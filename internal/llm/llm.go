// Package llm drafts structured content with a hosted language model. A
// Provider sends one prompt and returns JSON that conforms to the request
// schema; decorators add retries and request recording.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured response per call.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema constrains the output. Nil means free text, returned as a
	// JSON string.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema for structured output.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any

	// Strict asks providers that support it to reject any output that
	// deviates from Definition. It requires every property to be listed in
	// required and additionalProperties to be false.
	Strict bool
}

// Response is the output of one successful call.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string
}

// Usage reports token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// textContent wraps free text as a JSON string.
func textContent(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// finish validates raw against the request schema, or wraps it as text when
// no schema was requested.
func finish(req Request, raw string) (json.RawMessage, error) {
	if req.Schema == nil {
		return textContent(raw), nil
	}
	content := json.RawMessage(raw)
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
