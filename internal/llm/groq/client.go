package groq

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Maazpendari01/InterviewQi/internal/llm"
	"github.com/Maazpendari01/InterviewQi/internal/models"
)

const providerName = "groq"

// Client talks to Groq through its OpenAI-compatible chat completions API
type Client struct {
	client *openai.Client
	config *Config
}

func NewClient(config *Config) *Client {
	cfg := openai.DefaultConfig(config.APIKey)
	cfg.BaseURL = config.BaseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		config: config,
	}
}

func (c *Client) GenerateContent(ctx context.Context, prompt string, requestID string) (*models.GenerationResponse, error) {
	startTime := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: c.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     classify(ctx, err),
			Message:  "Failed to generate content",
			Err:      err,
		}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, &llm.ProviderError{
			Provider: providerName,
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	model := resp.Model
	if model == "" {
		model = c.config.Model
	}

	return &models.GenerationResponse{
		Content:   strings.TrimSpace(resp.Choices[0].Message.Content),
		RequestID: requestID,
		Metadata: models.GenerationMetadata{
			ProcessingTime: int(time.Since(startTime).Milliseconds()),
			Provider:       providerName,
			Model:          model,
		},
	}, nil
}

func (c *Client) GetProviderName() string {
	return providerName
}

func classify(ctx context.Context, err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return llm.ErrCodeRateLimit
		case http.StatusUnauthorized, http.StatusForbidden:
			return llm.ErrCodeAPIKey
		case http.StatusBadRequest:
			return llm.ErrCodeInvalidInput
		}
	}
	if ctx.Err() != nil {
		return llm.ErrCodeTimeout
	}
	return llm.ErrCodeServiceDown
}
