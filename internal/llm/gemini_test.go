package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"word":  map[string]any{"type": "string", "description": "Spanish word"},
			"id":    map[string]any{"type": []any{"integer", "string"}},
			"level": map[string]any{"type": "string", "enum": []any{"A1", "A2"}},
			"cards": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object", "required": []string{"english"}},
			},
		},
		"required": []any{"word"},
	}

	s := geminiSchema(def)

	if s.Type != genai.TypeObject {
		t.Fatalf("type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(s.Properties))
	}
	if got := s.Properties["id"].Type; got != genai.TypeInteger {
		t.Errorf("union type narrowed to %s, want INTEGER", got)
	}
	if s.Properties["word"].Description != "Spanish word" {
		t.Errorf("description lost")
	}
	if len(s.Properties["level"].Enum) != 2 {
		t.Errorf("enum = %v", s.Properties["level"].Enum)
	}
	items := s.Properties["cards"].Items
	if items == nil || items.Type != genai.TypeObject || len(items.Required) != 1 {
		t.Errorf("items = %+v", items)
	}
	if len(s.Required) != 1 || s.Required[0] != "word" {
		t.Errorf("required = %v", s.Required)
	}
}

func TestGeminiSchemaDefaultsToString(t *testing.T) {
	if got := geminiSchema(map[string]any{}).Type; got != genai.TypeString {
		t.Fatalf("type = %s, want STRING", got)
	}
}
