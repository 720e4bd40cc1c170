package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/quotewise/factfinder/internal/common"
)

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// MalformedResponseError reports a model response with no usable JSON. It
// keeps a snippet of the offending text and, when the JSON decoder reported
// one, the character offset of the syntax error.
type MalformedResponseError struct {
	Snippet string
	Offset  int64 // 0 when not reported
	Reason  string
}

func (e *MalformedResponseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("%s at offset %d (snippet: %q)", e.Reason, e.Offset, e.Snippet)
	}
	return fmt.Sprintf("%s (snippet: %q)", e.Reason, e.Snippet)
}

func (e *MalformedResponseError) Unwrap() error { return common.ErrMalformedResponse }

// ExtractJSONObject recovers a single JSON object from a response that may be
// wrapped in prose or a fenced code block. If a fenced block exists its
// contents are used; the slice from the first '{' to the last '}' inclusive
// is then parsed. Stray trailing braces outside a fence can widen the slice;
// that is accepted behavior, surfaced as a parse error rather than repaired.
func ExtractJSONObject(text string) (json.RawMessage, error) {
	candidate := text
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	}

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end == -1 || end < start {
		return nil, &MalformedResponseError{
			Snippet: snippet(text),
			Reason:  "no JSON object delimiters in response",
		}
	}
	candidate = candidate[start : end+1]

	var v map[string]any
	if err := json.Unmarshal([]byte(candidate), &v); err != nil {
		me := &MalformedResponseError{
			Snippet: snippet(candidate),
			Reason:  "response slice is not valid JSON",
		}
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			me.Offset = syn.Offset
		}
		return nil, me
	}
	return json.RawMessage(candidate), nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	const max = 160
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so the snippet stays valid UTF-8.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
