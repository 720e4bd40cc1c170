package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quotewise/factfinder/internal/common"
	"github.com/quotewise/factfinder/internal/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"}, nil)
}

func TestComplete_RequestShape(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": `{"personal": {}}`}}},
			"usage":   map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		})
	})

	resp, err := client.Complete(context.Background(), llm.VisionRequest{
		Prompt: "extract the fields",
		Images: [][]byte{[]byte("page-one"), []byte("page-two")},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != `{"personal": {}}` {
		t.Fatalf("content = %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Fatalf("usage = %+v", resp.Usage)
	}

	messages := captured["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("want 1 message, got %d", len(messages))
	}
	parts := messages[0].(map[string]any)["content"].([]any)
	if len(parts) != 3 { // prompt + two images
		t.Fatalf("want 3 content parts, got %d", len(parts))
	}
	if parts[0].(map[string]any)["type"] != "text" {
		t.Fatalf("first part must be the prompt text")
	}
	imgURL := parts[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	if !strings.HasPrefix(imgURL, "data:image/png;base64,") {
		t.Fatalf("image part url = %q", imgURL)
	}
}

func TestComplete_Non2xxIsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := client.Complete(context.Background(), llm.VisionRequest{Prompt: "p", Images: [][]byte{[]byte("x")}})
	if !errors.Is(err, common.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestComplete_ErrorBodyTruncatedOnRuneBoundary(t *testing.T) {
	// 200 three-byte runes; the 512-byte truncation point lands mid-rune.
	body := strings.Repeat("€", 200)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	})
	_, err := client.Complete(context.Background(), llm.VisionRequest{Prompt: "p", Images: [][]byte{[]byte("x")}})
	if !errors.Is(err, common.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
	if !utf8.ValidString(err.Error()) {
		t.Fatalf("error message is not valid UTF-8: %q", err.Error())
	}
}

func TestComplete_NoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})
	_, err := client.Complete(context.Background(), llm.VisionRequest{Prompt: "p", Images: [][]byte{[]byte("x")}})
	if !errors.Is(err, common.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Complete(ctx, llm.VisionRequest{Prompt: "p", Images: [][]byte{[]byte("x")}})
	if !errors.Is(err, common.ErrUpstream) {
		t.Fatalf("want ErrUpstream on cancelled context, got %v", err)
	}
}
