package lesson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiledSchemas caches compiled config schemas by block type.
var compiledSchemas sync.Map // map[BlockType]*jsonschema.Schema

// BlockError describes a block that failed validation.
type BlockError struct {
	Index int
	Type  BlockType
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Validate checks the lesson structure and every block config against its
// schema. Blocks are migrated before validation; l itself is not modified.
// All block failures are reported, joined with errors.Join.
func Validate(l *Lesson) error {
	if err := l.Check(); err != nil {
		return err
	}

	var errs []error
	for i, b := range l.Blocks {
		if err := ValidateBlock(b); err != nil {
			errs = append(errs, &BlockError{Index: i, Type: b.Type, Err: err})
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ValidateBlock migrates b and validates its config against the schema for
// its type.
func ValidateBlock(b Block) error {
	if !b.Type.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownBlockType, b.Type)
	}
	migrated, err := Migrate(b)
	if err != nil {
		return err
	}
	return ValidateConfig(b.Type, migrated.Config)
}

// ValidateConfig validates raw config JSON against the schema for t.
func ValidateConfig(t BlockType, raw json.RawMessage) error {
	compiled, err := compiledSchema(t)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(t BlockType) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(t); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def := ConfigSchema(t)
	if def == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownBlockType, t)
	}

	// Round-trip through JSON so the compiler sees plain decoded values.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal %s schema: %w", t, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", t, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", t)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", t, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", t, err)
	}

	compiledSchemas.Store(t, compiled)
	return compiled, nil
}
