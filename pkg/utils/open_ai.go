package utils

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIQuestionClient is the alternative provider behind QuestionClientInterface.
type OpenAIQuestionClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIQuestionClient(apiKey, model string) *OpenAIQuestionClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIQuestionClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIQuestionClient) GenerateQuestionJSON(ctx context.Context, prompt string) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	content := CleanJSONResponse(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("openai returned invalid JSON")
	}
	return content, nil
}

// Close is a no-op; the OpenAI client holds no persistent connection.
func (c *OpenAIQuestionClient) Close() error {
	return nil
}
