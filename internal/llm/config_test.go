package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func clearLLMEnv(t *testing.T) {
	for _, k := range []string{
		"LESSBUILDER_LLM_PROVIDER", "LESSBUILDER_LLM_MODEL", "LESSBUILDER_LLM_API_KEY", "LESSBUILDER_LLM_BASE_URL",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Discovery(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := LoadConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := LoadConfig()
	if !ok || cfg.Provider != "openai" || cfg.APIKey != "o" || cfg.Model != "gpt-4o-mini" {
		t.Fatalf("cfg = %+v, ok = %v", cfg, ok)
	}
}

func TestLoadConfig_Explicit(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("LESSBUILDER_LLM_PROVIDER", "gemini")
	t.Setenv("LESSBUILDER_LLM_MODEL", "gemini-pro")

	cfg, ok := LoadConfig()
	if !ok || cfg.Provider != "gemini" || cfg.APIKey != "g" || cfg.Model != "gemini-pro" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadConfig_OpenRouter(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "r")

	cfg, ok := LoadConfig()
	if !ok || cfg.Provider != "openrouter" || cfg.APIKey != "r" || cfg.Model != "openai/gpt-4o-mini" {
		t.Fatalf("cfg = %+v, ok = %v", cfg, ok)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Provider: "anthropic"}).Validate(); err == nil {
		t.Error("expected missing key error")
	}
	if err := (Config{Provider: "ollama", APIKey: "x"}).Validate(); err == nil {
		t.Error("expected unknown provider error")
	}
	if err := (Config{Provider: "mock"}).Validate(); err != nil {
		t.Errorf("mock: %v", err)
	}
}

func TestNewMockProviderPipeline(t *testing.T) {
	events := &memEvents{}
	p, err := New(context.Background(), Config{Provider: "mock", Retry: RetryConfig{MaxAttempts: 1}}, events, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}
	_, err = p.Generate(context.Background(), Request{Prompt: "x"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from empty mock, got %v", err)
	}
	if len(events.llm) != 1 {
		t.Fatalf("events = %d, want 1", len(events.llm))
	}
}

func TestMockValidatesSchema(t *testing.T) {
	m := NewMock(MockReply{Content: json.RawMessage(`{"name":1}`)})
	_, err := m.Generate(context.Background(), Request{Schema: testSchema()})
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if len(m.Requests()) != 1 {
		t.Fatal("request not recorded")
	}
}
