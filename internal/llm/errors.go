package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error kinds. Use errors.Is to classify a provider error.
var (
	ErrRateLimit       = errors.New("rate limited")
	ErrUnavailable     = errors.New("provider unavailable")
	ErrInvalidResponse = errors.New("invalid response")
	ErrTruncated       = errors.New("response truncated at max tokens")
)

// ProviderError carries a failed call with its kind.
type ProviderError struct {
	Kind       error
	Provider   string
	RetryAfter time.Duration
	// Content holds the offending output for ErrInvalidResponse and
	// ErrTruncated.
	Content json.RawMessage
	Err     error
}

func (e *ProviderError) Error() string {
	msg := e.Kind.Error()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// classifyStatus maps an HTTP status from a provider API to an error kind.
func classifyStatus(provider string, status int, err error) error {
	kind := ErrUnavailable
	if status == http.StatusTooManyRequests {
		kind = ErrRateLimit
	}
	return &ProviderError{Kind: kind, Provider: provider, Err: err}
}

func invalidResponse(content json.RawMessage, format string, args ...any) error {
	return &ProviderError{Kind: ErrInvalidResponse, Content: content, Err: fmt.Errorf(format, args...)}
}
