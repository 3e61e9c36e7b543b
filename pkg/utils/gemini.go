package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const generationTimeout = 30 * time.Second

// QuestionClientInterface abstracts the generative-language provider that
// produces raw trivia question JSON from a prompt.
type QuestionClientInterface interface {
	GenerateQuestionJSON(ctx context.Context, prompt string) (string, error)
	Close() error
}

// GeminiQuestionClient implements QuestionClientInterface using Google's Gemini models
type GeminiQuestionClient struct {
	client *genai.Client
	model  string
}

// NewGeminiQuestionClient creates a new Gemini client
func NewGeminiQuestionClient(apiKey, model string) (QuestionClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiQuestionClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiQuestionClient) GenerateQuestionJSON(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so fence stripping is only a fallback.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	content = CleanJSONResponse(content)

	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini returned invalid JSON")
	}
	return content, nil
}

// Close closes the Gemini client
func (c *GeminiQuestionClient) Close() error {
	return c.client.Close()
}

// NewQuestionClient Factory function to create either an OpenAI or Gemini client based on config
func NewQuestionClient(provider, apiKey, model string) (QuestionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIQuestionClient(apiKey, model), nil
	case "gemini":
		return NewGeminiQuestionClient(apiKey, model)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}
