package schemakit

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FromJSON constructs an entity from a JSON object document. Numbers decode
// as json.Number, which the Int and Float kinds accept. Only the document
// shape can fail here — malformed JSON or a non-object top level; data that
// merely violates the schema still constructs and reports through
// ErrorMessages.
func (t *Type) FromJSON(b []byte) (*Entity, error) {
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("schemakit: decode json: %w", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemakit: expected a JSON object, got %T", doc)
	}
	return t.New(m), nil
}

// FromYAML constructs an entity from a YAML mapping document. An empty
// document constructs an entity with no data.
func (t *Type) FromYAML(b []byte) (*Entity, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("schemakit: decode yaml: %w", err)
	}
	return t.New(doc), nil
}
