package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"level": map[string]any{"type": "string", "enum": []any{"A1", "A2", "B1"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Ana","age":10,"level":"A1"}`, false},
		{"optional omitted", `{"name":"Ana","age":10}`, false},
		{"missing required", `{"name":"Ana"}`, true},
		{"wrong type", `{"name":"Ana","age":"ten"}`, true},
		{"below minimum", `{"name":"Ana","age":-1}`, true},
		{"bad enum", `{"name":"Ana","age":1,"level":"C2"}`, true},
		{"not json", `name: Ana`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidResponse) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
			var pe *ProviderError
			if !errors.As(err, &pe) || string(pe.Content) != tt.raw {
				t.Fatalf("content not preserved: %+v", pe)
			}
		})
	}
}

func TestValidateResponse_CachesBySchemaName(t *testing.T) {
	s := testSchema()
	s.Name = "cached-object"
	if err := validateResponse(s, json.RawMessage(`{"name":"a","age":1}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := compiled.Load("cached-object"); !ok {
		t.Fatal("schema not cached")
	}
}
