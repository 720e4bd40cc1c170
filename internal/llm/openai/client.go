package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/quotewise/factfinder/internal/common"
	"github.com/quotewise/factfinder/internal/llm"
)

// Complete implements llm.VisionClient against an OpenAI-compatible
// chat/completions endpoint. One message carries the prompt as a text part
// followed by every page image of the batch as a base64 PNG data URL.
func (c *Client) Complete(ctx context.Context, req llm.VisionRequest) (llm.VisionResponse, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.vision.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"images", len(req.Images),
		"prompt_len", len(req.Prompt),
	)

	parts := make([]map[string]any, 0, len(req.Images)+1)
	parts = append(parts, map[string]any{"type": "text", "text": req.Prompt})
	for _, img := range req.Images {
		parts = append(parts, map[string]any{
			"type": "image_url",
			"image_url": map[string]any{
				"url": "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
			},
		})
	}

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": parts},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.vision.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.VisionResponse{}, fmt.Errorf("vision call: %v: %w", err, common.ErrUpstream)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage llm.TokenUsage `json:"usage"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.vision.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.VisionResponse{}, fmt.Errorf("decode vision response: %v: %w", err, common.ErrUpstream)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.vision.no_choices",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.VisionResponse{}, fmt.Errorf("no choices in vision response: %w", common.ErrUpstream)
	}

	c.log.Info("llm.vision.response",
		"req_id", rid,
		"content_len", len(cc.Choices[0].Message.Content),
		"prompt_tokens", cc.Usage.PromptTokens,
		"completion_tokens", cc.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return llm.VisionResponse{
		Content: strings.TrimSpace(cc.Choices[0].Message.Content),
		Usage:   cc.Usage,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.log.Warn("vision response body close error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vision status %d: %s", resp.StatusCode, truncate(raw, 512))
	}
	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	// Back off to a rune boundary so the log line stays valid UTF-8.
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	return string(b[:n]) + "…"
}
