package llm

import "context"

// VisionRequest is one batch of page images plus the category prompt.
type VisionRequest struct {
	Prompt string
	Images [][]byte // PNG-encoded page images, in page order
}

// TokenUsage mirrors the endpoint's usage accounting.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// VisionResponse is the raw textual model output for one batch.
type VisionResponse struct {
	Content string
	Usage   TokenUsage
}

// VisionClient is the interface the pipeline depends on.
type VisionClient interface {
	Complete(ctx context.Context, req VisionRequest) (VisionResponse, error)
}
