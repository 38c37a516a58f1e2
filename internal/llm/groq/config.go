package groq

import (
	"errors"
	"os"
	"strconv"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// holds Groq-specific configuration
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
}

func NewConfig() (*Config, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GROQ_API_KEY environment variable is required")
	}

	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	baseURL := os.Getenv("GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	temperature := float32(0.3)
	if raw := os.Getenv("GROQ_TEMPERATURE"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 32)
		if err != nil || parsed < 0 || parsed > 2 {
			return nil, errors.New("GROQ_TEMPERATURE must be a number between 0 and 2")
		}
		temperature = float32(parsed)
	}

	return &Config{
		APIKey:      apiKey,
		Model:       model,
		BaseURL:     baseURL,
		Temperature: temperature,
	}, nil
}
