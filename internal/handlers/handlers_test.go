package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Maazpendari01/InterviewQi/internal/middleware"
	"github.com/Maazpendari01/InterviewQi/internal/models"
)

type mockProvider struct {
	generateContentFn func(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error)
	getProviderNameFn func() string
}

func (m *mockProvider) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	if m.generateContentFn == nil {
		return &models.GenerationResponse{}, nil
	}
	return m.generateContentFn(ctx, prompt, requestID)
}

func (m *mockProvider) GetProviderName() string {
	if m.getProviderNameFn == nil {
		return "mock"
	}
	return m.getProviderNameFn()
}

type mockPromptManager struct {
	getTemplatesFn func() map[string][]string
}

func (m *mockPromptManager) GetTemplates() map[string][]string {
	if m.getTemplatesFn == nil {
		return map[string][]string{"evaluate": {"default"}}
	}
	return m.getTemplatesFn()
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockInterviewService struct {
	startFn      func(ctx context.Context, category, difficulty, userID string) (*models.StartInterviewResponse, error)
	submitFn     func(ctx context.Context, sessionID, answer, userID string) (*models.SubmitAnswerResponse, error)
	transcriptFn func(ctx context.Context, sessionID, userID string) (*models.TranscriptResponse, error)
}

func (m *mockInterviewService) Start(ctx context.Context, category, difficulty, userID string) (*models.StartInterviewResponse, error) {
	return m.startFn(ctx, category, difficulty, userID)
}

func (m *mockInterviewService) Submit(ctx context.Context, sessionID, answer, userID string) (*models.SubmitAnswerResponse, error) {
	return m.submitFn(ctx, sessionID, answer, userID)
}

func (m *mockInterviewService) Transcript(ctx context.Context, sessionID, userID string) (*models.TranscriptResponse, error) {
	return m.transcriptFn(ctx, sessionID, userID)
}

// serveValidated runs handler behind the same validation middleware the router uses
func serveValidated[T middleware.Validator](handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	middleware.ValidateRequest[T]()(handler).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp
}
