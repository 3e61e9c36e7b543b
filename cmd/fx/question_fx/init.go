package question_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"triviaquest/internal/api/controllers"
	"triviaquest/internal/services"
	"triviaquest/pkg/utils"
)

var Module = fx.Provide(
	ProvideQuestionClient,
	ProvideQuestionService,
	ProvideQuestionController)

// ProviderConfig holds configuration for question generation clients
type ProviderConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideQuestionClient creates a question client based on environment variables
func ProvideQuestionClient() (utils.QuestionClientInterface, error) {
	config := getProviderConfig()

	log.Printf("Initializing %s question client with model: %s", config.Provider, config.Model)

	client, err := utils.NewQuestionClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", config.Provider, err)
	}
	return client, nil
}

// ProvideQuestionService creates the question service
func ProvideQuestionService(client utils.QuestionClientInterface) services.QuestionServiceInterface {
	return services.NewQuestionService(client)
}

// ProvideQuestionController creates the question controller
func ProvideQuestionController(questionService services.QuestionServiceInterface) *controllers.QuestionController {
	return controllers.NewQuestionController(questionService)
}

// getProviderConfig reads configuration from environment variables
func getProviderConfig() ProviderConfig {
	provider := getEnvWithDefault("QUESTION_PROVIDER", "gemini") // Default to free Gemini

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return ProviderConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
