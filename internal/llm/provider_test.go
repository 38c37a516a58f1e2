package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

type testProvider struct{}

func (testProvider) GenerateContent(context.Context, string, string) (*models.GenerationResponse, error) {
	return &models.GenerationResponse{Content: "ok"}, nil
}
func (testProvider) GetProviderName() string { return "test" }

func TestProviderErrorError(t *testing.T) {
	err := &ProviderError{Provider: "gemini", Message: "failed"}
	if err.Error() != "gemini error: failed" {
		t.Fatalf("unexpected error message: %s", err.Error())
	}

	detail := errors.New("detail")
	wrapped := &ProviderError{Provider: "gemini", Message: "failed", Err: detail}
	if got := wrapped.Error(); got != "gemini error: failed (detail)" {
		t.Fatalf("unexpected wrapped error message: %s", got)
	}
	if !errors.Is(wrapped, detail) {
		t.Fatal("expected ProviderError to unwrap to its cause")
	}
}

func TestErrorCode(t *testing.T) {
	err := fmt.Errorf("evaluate: %w", &ProviderError{Provider: "groq", Code: ErrCodeRateLimit})
	if got := ErrorCode(err); got != ErrCodeRateLimit {
		t.Fatalf("expected rate limit code, got %q", got)
	}
	if got := ErrorCode(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code for non-provider error, got %q", got)
	}
}

func TestRegisterAndNewProvider(t *testing.T) {
	RegisterProvider("test_provider", func() (Provider, error) {
		return testProvider{}, nil
	})
	defer delete(providers, "test_provider")

	provider, err := NewProvider("test_provider")
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if name := provider.GetProviderName(); name != "test" {
		t.Fatalf("expected provider name test, got %s", name)
	}

	if _, err := NewProvider("missing"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}

	found := false
	for _, name := range Registered() {
		if name == "test_provider" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected registered provider to be listed")
	}
}
