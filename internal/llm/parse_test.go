package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quotewise/factfinder/internal/common"
)

func TestExtractJSONObject_Fenced(t *testing.T) {
	text := "Here is the data:\n```json\n{\"personal\": {\"city\": {\"value\": \"Austin\", \"confidence\": \"high\", \"flagged\": false}}}\n```\nLet me know if you need more."
	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("result not JSON: %v", err)
	}
	if _, ok := m["personal"]; !ok {
		t.Fatalf("personal key missing from %v", m)
	}
}

func TestExtractJSONObject_ProseWrapped(t *testing.T) {
	text := "Sure! The extracted fields are {\"coverage\": {}} — hope that helps."
	raw, err := ExtractJSONObject(text)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(raw) != `{"coverage": {}}` {
		t.Fatalf("got %q", raw)
	}
}

func TestExtractJSONObject_BareObject(t *testing.T) {
	raw, err := ExtractJSONObject(`{"vehicles": []}`)
	if err != nil {
		t.Fatalf("ExtractJSONObject: %v", err)
	}
	if string(raw) != `{"vehicles": []}` {
		t.Fatalf("got %q", raw)
	}
}

func TestExtractJSONObject_NoBraces(t *testing.T) {
	_, err := ExtractJSONObject("I could not read anything on these pages.")
	if !errors.Is(err, common.ErrMalformedResponse) {
		t.Fatalf("want ErrMalformedResponse, got %v", err)
	}
	var me *MalformedResponseError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedResponseError, got %T", err)
	}
	if me.Snippet == "" {
		t.Fatal("error must carry a snippet of the offending text")
	}
}

func TestExtractJSONObject_InvalidJSONCarriesOffset(t *testing.T) {
	_, err := ExtractJSONObject(`{"personal": {"city": }}`)
	var me *MalformedResponseError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedResponseError, got %v", err)
	}
	if me.Offset == 0 {
		t.Fatalf("want parser offset in error, got %+v", me)
	}
}

func TestExtractJSONObject_SnippetStaysValidUTF8(t *testing.T) {
	// A multi-byte rune straddling the truncation point must not be split.
	text := strings.Repeat("a", 159) + "é" + strings.Repeat("b", 40)
	_, err := ExtractJSONObject(text)
	var me *MalformedResponseError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedResponseError, got %v", err)
	}
	if !utf8.ValidString(me.Snippet) {
		t.Fatalf("snippet is not valid UTF-8: %q", me.Snippet)
	}
}

func TestExtractJSONObject_StrayTrailingBrace(t *testing.T) {
	// The first-{ to last-} heuristic widens over trailing commentary with a
	// stray brace. The over-wide slice fails to parse; that is the accepted
	// behavior, not silently repaired.
	_, err := ExtractJSONObject(`{"a": 1} see the notes above :-}`)
	if !errors.Is(err, common.ErrMalformedResponse) {
		t.Fatalf("want ErrMalformedResponse, got %v", err)
	}
}
