package lesson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a lesson from YAML or JSON. JSON is a subset of YAML, so
// both go through the YAML decoder and are then re-encoded as JSON to reuse
// the json struct tags and flexible field types.
func Decode(data []byte) (*Lesson, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse lesson: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalid)
	}

	js, err := json.Marshal(stringKeys(doc))
	if err != nil {
		return nil, fmt.Errorf("convert lesson: %w", err)
	}

	var l Lesson
	if err := json.Unmarshal(js, &l); err != nil {
		return nil, fmt.Errorf("decode lesson: %w", err)
	}
	return &l, nil
}

// stringKeys converts YAML mappings with non-string keys, such as numeric
// card ids in matches, into JSON-compatible maps.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = stringKeys(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = stringKeys(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = stringKeys(e)
		}
		return t
	default:
		return v
	}
}

// EncodeJSON renders the lesson as indented JSON.
func EncodeJSON(l *Lesson) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode lesson: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the lesson as block-style YAML, keeping the field
// order of the JSON encoding.
func EncodeYAML(l *Lesson) ([]byte, error) {
	js, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("encode lesson: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(js, &node); err != nil {
		return nil, fmt.Errorf("convert lesson: %w", err)
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encode lesson yaml: %w", err)
	}
	return out, nil
}

// blockStyle clears the flow style inherited from JSON input.
func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Style&yaml.DoubleQuotedStyle != 0 && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// ReadFile loads a lesson from a YAML or JSON file.
func ReadFile(path string) (*Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lesson file: %w", err)
	}
	return Decode(data)
}

// WriteFile writes a lesson to path. Files ending in .json are written as
// JSON, everything else as YAML.
func WriteFile(path string, l *Lesson) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = EncodeJSON(l)
	} else {
		data, err = EncodeYAML(l)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write lesson file: %w", err)
	}
	return nil
}
