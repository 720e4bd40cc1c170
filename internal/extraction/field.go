package extraction

// Confidence reflects extractor certainty for a single field.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank orders confidence levels for merge decisions. Unknown values rank
// below low so a partial with a garbled confidence never wins a conflict.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// Field is one extracted fact. Value is nil when the document did not yield
// the field. Flagged marks the field for human review and is independent of
// Confidence: a high-confidence field can still be flagged when it is
// contextually suspicious. RawText preserves the page text when the
// normalized Value differs from it.
//
// The two closed instantiations below are the only field variants; the
// compiler carries the variant, so nothing inspects field shapes at runtime.
type Field[T any] struct {
	Value      *T         `json:"value"`
	Confidence Confidence `json:"confidence"`
	Flagged    bool       `json:"flagged"`
	RawText    string     `json:"rawText,omitempty"`
}

type (
	TextField = Field[string]
	BoolField = Field[bool]
)

// DefaultField is the unfilled state: no value, low confidence, flagged for
// review.
func DefaultField[T any]() Field[T] {
	return Field[T]{Confidence: ConfidenceLow, Flagged: true}
}

// Text builds a populated text field.
func Text(v string, c Confidence, flagged bool) TextField {
	return TextField{Value: &v, Confidence: c, Flagged: flagged}
}

// Bool builds a populated boolean field.
func Bool(v bool, c Confidence, flagged bool) BoolField {
	return BoolField{Value: &v, Confidence: c, Flagged: flagged}
}
