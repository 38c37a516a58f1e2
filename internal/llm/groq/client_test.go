package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Maazpendari01/InterviewQi/internal/llm"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := NewClient(&Config{
		APIKey:      "test",
		Model:       "llama-test",
		BaseURL:     server.URL,
		Temperature: 0.3,
	})
	return client, server.Close
}

func TestClientGenerateContentSuccess(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test" {
			t.Errorf("unexpected auth header %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if body["model"] != "llama-test" {
			t.Errorf("unexpected model %v", body["model"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"llama-test","choices":[{"index":0,"message":{"role":"assistant","content":" Score: 72/100 \n"},"finish_reason":"stop"}]}`))
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	resp, err := client.GenerateContent(context.Background(), "prompt", "req-1")
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if resp.Content != "Score: 72/100" {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if resp.Metadata.Provider != "groq" || resp.Metadata.Model != "llama-test" {
		t.Fatalf("unexpected metadata %+v", resp.Metadata)
	}
}

func TestClientGenerateContentRateLimit(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limit reached","type":"tokens","code":"rate_limit_exceeded"}}`))
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if llm.ErrorCode(err) != llm.ErrCodeRateLimit {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestClientGenerateContentUnauthorized(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if llm.ErrorCode(err) != llm.ErrCodeAPIKey {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestClientGenerateContentEmptyChoices(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[]}`))
	}
	client, cleanup := newStubClient(t, handler)
	defer cleanup()

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if llm.ErrorCode(err) != llm.ErrCodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestNewConfig(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error when API key missing")
	}

	t.Setenv("GROQ_API_KEY", "key")
	t.Setenv("GROQ_MODEL", "")
	t.Setenv("GROQ_BASE_URL", "")
	t.Setenv("GROQ_TEMPERATURE", "")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.BaseURL != defaultBaseURL || cfg.Model != "llama-3.1-8b-instant" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}

	t.Setenv("GROQ_TEMPERATURE", "9")
	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for out of range temperature")
	}
}
