package llm

import (
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/quotewise/factfinder/constants"
)

func compileFor(t *testing.T, typ constants.InsuranceType) *jsonschema.Schema {
	t.Helper()
	s, err := CompileSchema(BuildPartialSchema(typ))
	if err != nil {
		t.Fatalf("CompileSchema(%s): %v", typ, err)
	}
	return s
}

func TestValidate_CleanPartial(t *testing.T) {
	schema := compileFor(t, constants.InsuranceHome)
	data := []byte(`{
		"personal": {
			"ownerFirstName": {"value": "John", "confidence": "high", "flagged": false},
			"zip": {"value": null, "confidence": "low", "flagged": true}
		},
		"safety": {
			"poolOnPremises": {"value": true, "confidence": "medium", "flagged": false, "rawText": "pool: yes"}
		}
	}`)
	mismatches, err := ValidateAgainstSchema(schema, data)
	if err != nil {
		t.Fatalf("ValidateAgainstSchema: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("want clean, got mismatches: %v", mismatches)
	}
}

func TestValidate_EmptyObjectIsValid(t *testing.T) {
	// A batch that mentioned nothing in any category is a valid partial.
	schema := compileFor(t, constants.InsuranceAuto)
	mismatches, err := ValidateAgainstSchema(schema, []byte(`{}`))
	if err != nil || len(mismatches) != 0 {
		t.Fatalf("empty partial must validate, got %v %v", mismatches, err)
	}
}

func TestValidate_BadConfidenceEnum(t *testing.T) {
	schema := compileFor(t, constants.InsuranceHome)
	data := []byte(`{"personal": {"city": {"value": "Austin", "confidence": "certain", "flagged": false}}}`)
	mismatches, err := ValidateAgainstSchema(schema, data)
	if err != nil {
		t.Fatalf("ValidateAgainstSchema: %v", err)
	}
	if len(mismatches) == 0 {
		t.Fatal("want mismatch for confidence enum violation")
	}
}

func TestValidate_UnknownTopLevelKey(t *testing.T) {
	schema := compileFor(t, constants.InsuranceHome)
	data := []byte(`{"vehicles": []}`)
	mismatches, err := ValidateAgainstSchema(schema, data)
	if err != nil {
		t.Fatalf("ValidateAgainstSchema: %v", err)
	}
	if len(mismatches) == 0 {
		t.Fatal("home schema must reject auto-only keys")
	}
}

func TestValidate_AutoEntityArray(t *testing.T) {
	schema := compileFor(t, constants.InsuranceAuto)
	data := []byte(`{
		"vehicles": [
			{"vin": {"value": "1HGBH41JXMN109186", "confidence": "high", "flagged": false},
			 "make": {"value": "Toyota", "confidence": "medium", "flagged": false}}
		]
	}`)
	mismatches, err := ValidateAgainstSchema(schema, data)
	if err != nil {
		t.Fatalf("ValidateAgainstSchema: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("want clean, got %v", mismatches)
	}
}
