package interview

import (
	"context"
	"fmt"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

type searchCall struct {
	query    string
	category string
	k        int
}

type mockRetriever struct {
	searchFunc func(ctx context.Context, query, category string, k int) ([]models.Exemplar, error)
	calls      []searchCall
}

func (m *mockRetriever) Search(ctx context.Context, query, category string, k int) ([]models.Exemplar, error) {
	m.calls = append(m.calls, searchCall{query: query, category: category, k: k})
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query, category, k)
	}
	return nil, nil
}

type mockCompleter struct {
	generateFunc func(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error)
	prompts      []string
}

func (m *mockCompleter) GenerateContent(ctx context.Context, prompt, requestID string) (*models.GenerationResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt, requestID)
	}
	return &models.GenerationResponse{Content: "Score: 75/100", RequestID: requestID}, nil
}

type promptCall struct {
	mode    string
	variant string
	data    any
}

// mockPrompts renders "<mode>:<variant>" so completers can tell stages apart
type mockPrompts struct {
	buildFunc func(mode, variant string, data any) (string, error)
	calls     []promptCall
}

func (m *mockPrompts) BuildPrompt(mode, variant string, data any) (string, error) {
	m.calls = append(m.calls, promptCall{mode: mode, variant: variant, data: data})
	if m.buildFunc != nil {
		return m.buildFunc(mode, variant, data)
	}
	return fmt.Sprintf("%s:%s", mode, variant), nil
}

func (m *mockPrompts) lastFor(mode string) (promptCall, bool) {
	for i := len(m.calls) - 1; i >= 0; i-- {
		if m.calls[i].mode == mode {
			return m.calls[i], true
		}
	}
	return promptCall{}, false
}

func exemplar(id, category, difficulty, question string) models.Exemplar {
	return models.Exemplar{
		Content: "Question: " + question + "\nCategory: " + category,
		Metadata: models.ExemplarMetadata{
			ID:         id,
			Question:   question,
			Category:   category,
			Difficulty: difficulty,
		},
	}
}

func respond(content string) func(context.Context, string, string) (*models.GenerationResponse, error) {
	return func(_ context.Context, _ string, requestID string) (*models.GenerationResponse, error) {
		return &models.GenerationResponse{Content: content, RequestID: requestID}, nil
	}
}
