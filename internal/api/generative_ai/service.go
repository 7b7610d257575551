package generativeAI

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned by NewAIClient when no credential is
// configured. Callers treat it as "provider not configured" and must not
// attempt completion calls.
var ErrMissingAPIKey = fmt.Errorf("GOOGLE_GEMINI_API_KEY environment variable is not set")

type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewAIClient constructs the Gemini client once at startup. The API key is
// read from the environment; its absence is surfaced as ErrMissingAPIKey
// rather than failing lazily on the first request.
func NewAIClient(ctx context.Context, model string, temperature float32) (*AIClient, error) {
	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &AIClient{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// GenerateContent runs a single completion call and returns the raw text.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](ai.temperature),
	}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return result.Text(), nil
}
