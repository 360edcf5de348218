package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAI{client: openai.NewClientWithConfig(config), model: "gpt-4o-mini"}
}

func openaiReply(content, finish string, seen *map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAI_StructuredOutput(t *testing.T) {
	var body map[string]any
	p := newTestOpenAI(t, openaiReply(`{"name":"Luis","age":11}`, "stop", &body))

	resp, err := p.Generate(context.Background(), Request{
		System: "You write Spanish lessons.",
		Prompt: "Draft a student.",
		Schema: testSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %+v", resp.Usage)
	}

	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	format, _ := body["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("response_format = %v", format)
	}
	js, _ := format["json_schema"].(map[string]any)
	if js["name"] != "test-object" {
		t.Fatalf("schema name = %v", js["name"])
	}
}

func TestOpenAI_Truncated(t *testing.T) {
	p := newTestOpenAI(t, openaiReply(`{"name":`, "length", nil))

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Schema: testSchema()})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestOpenAI_ErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimit},
		{http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "server_error", "message": "nope"},
			})
		})
		_, err := p.Generate(context.Background(), Request{Prompt: "x"})
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(Config{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without API key")
	}
	p, err := NewOpenAI(Config{APIKey: "k", Model: "gpt-4o", BaseURL: "http://localhost:11434/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
