package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Mismatch is one schema violation: where, and why.
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// CompileSchema compiles a schema map once so per-batch validation doesn't
// pay recompilation.
func CompileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// ValidateAgainstSchema validates data and returns the flattened mismatch
// list. Validation never rejects the data for the caller: an empty list means
// clean, a non-empty list is diagnostic only (the pipeline proceeds fail-open
// with the raw parsed object). A non-nil error means data was not JSON at all.
func ValidateAgainstSchema(schema *jsonschema.Schema, data []byte) ([]Mismatch, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal data: %w", err)
	}
	err := schema.Validate(v)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Mismatch{{Path: "", Reason: err.Error()}}, nil
	}
	var out []Mismatch
	flattenCauses(ve, &out)
	return out, nil
}

// flattenCauses walks to leaf causes; intermediate nodes only restate their
// children.
func flattenCauses(ve *jsonschema.ValidationError, out *[]Mismatch) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Mismatch{
			Path:   ve.InstanceLocation,
			Reason: ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		flattenCauses(c, out)
	}
}
