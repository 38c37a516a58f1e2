package interview

import (
	"context"

	"github.com/Maazpendari01/InterviewQi/internal/models"
)

// Retriever returns up to k exemplars for query, best first. An empty
// category searches every category.
type Retriever interface {
	Search(ctx context.Context, query, category string, k int) ([]models.Exemplar, error)
}

// Completer turns a prompt into final text. llm.Provider satisfies it.
type Completer interface {
	GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error)
}

// PromptBuilder renders a named prompt. prompts.PromptManager satisfies it.
type PromptBuilder interface {
	BuildPrompt(mode, variant string, data any) (string, error)
}
