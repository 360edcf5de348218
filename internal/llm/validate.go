package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches schemas by name. A name must always map to the same
// definition.
var compiled sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against schema and returns an
// ErrInvalidResponse error on mismatch.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return invalidResponse(raw, "not JSON: %w", err)
	}
	sch, err := compile(schema)
	if err != nil {
		return invalidResponse(raw, "compile schema %s: %w", schema.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalidResponse(raw, "%w", err)
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// Round-trip through JSON so the compiler sees plain JSON values.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("mem://llm/%s.json", schema.Name)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.Store(schema.Name, s)
	return s, nil
}
