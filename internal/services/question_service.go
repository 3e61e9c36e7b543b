package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"triviaquest/internal/models/response_models"
	"triviaquest/pkg/utils"
)

const (
	defaultQuestionCount = 10
	maxQuestionCount     = 10
	optionsPerQuestion   = 4
)

type QuestionServiceInterface interface {
	GenerateQuestion(ctx context.Context, category string) (*response_models.QuestionResponse, error)
	GenerateQuestions(ctx context.Context, category string, count int) ([]response_models.QuestionResponse, error)
}

type QuestionService struct {
	client     utils.QuestionClientInterface
	maxRetries int
	retryDelay time.Duration
}

func NewQuestionService(client utils.QuestionClientInterface) QuestionServiceInterface {
	return &QuestionService{
		client:     client,
		maxRetries: 3,
		retryDelay: time.Second,
	}
}

func (s *QuestionService) GenerateQuestion(ctx context.Context, category string) (*response_models.QuestionResponse, error) {
	questions, err := s.GenerateQuestions(ctx, category, 1)
	if err != nil {
		return nil, err
	}
	return &questions[0], nil
}

func (s *QuestionService) GenerateQuestions(ctx context.Context, category string, count int) ([]response_models.QuestionResponse, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, utils.ErrCategoryRequired
	}

	if count == 0 {
		count = defaultQuestionCount
	}
	if count < 0 || count > maxQuestionCount {
		return nil, utils.ErrInvalidCount
	}

	prompt := buildTriviaPrompt(category, count)

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		raw, err := s.client.GenerateQuestionJSON(ctx, prompt)
		if err != nil {
			log.Printf("Failed to fetch trivia questions (attempt %d/%d): %v", attempt, s.maxRetries, err)
			lastErr = fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
		} else {
			questions, parseErr := parseQuestionPayload(raw)
			if parseErr == nil {
				return questions, nil
			}
			log.Printf("Failed to parse response (attempt %d/%d): %v", attempt, s.maxRetries, parseErr)
			lastErr = parseErr
		}

		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}
	}

	log.Printf("Max retries reached. Failed to fetch questions for category %q", category)
	return nil, lastErr
}

// generatedQuestion mirrors the shape the model is instructed to emit.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// parseQuestionPayload decodes the cleaned upstream JSON and normalizes every
// entry. One invalid entry invalidates the whole batch so a retry can produce
// a consistent set.
func parseQuestionPayload(raw string) ([]response_models.QuestionResponse, error) {
	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(raw), &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedAIResponse, err)
	}
	if len(generated) == 0 {
		return nil, fmt.Errorf("%w: empty question list", utils.ErrMalformedAIResponse)
	}

	questions := make([]response_models.QuestionResponse, 0, len(generated))
	for i, q := range generated {
		normalized, err := normalizeQuestion(q)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", utils.ErrMalformedAIResponse, i+1, err)
		}
		questions = append(questions, *normalized)
	}

	return questions, nil
}

func normalizeQuestion(q generatedQuestion) (*response_models.QuestionResponse, error) {
	text := strings.TrimSpace(q.Question)
	if text == "" {
		return nil, fmt.Errorf("empty question text")
	}
	if len(q.Options) != optionsPerQuestion {
		return nil, fmt.Errorf("expected %d options, got %d", optionsPerQuestion, len(q.Options))
	}

	options := make([]string, len(q.Options))
	for i, opt := range q.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			return nil, fmt.Errorf("option %d is empty", i+1)
		}
		options[i] = opt
	}

	correct, err := matchCorrectOption(q.CorrectAnswer, options)
	if err != nil {
		return nil, err
	}

	return &response_models.QuestionResponse{
		Question:      text,
		Options:       options,
		CorrectAnswer: correct,
	}, nil
}

// matchCorrectOption resolves the model's correctAnswer against the option
// list case-insensitively, tolerating minor wording drift. Exactly one option
// may match; the exact option text is returned so the caller never has to
// compare loosely again.
func matchCorrectOption(correct string, options []string) (string, error) {
	correct = strings.TrimSpace(correct)
	if correct == "" {
		return "", fmt.Errorf("empty correctAnswer")
	}

	lowered := strings.ToLower(correct)
	matched := ""
	matches := 0
	for _, option := range options {
		if strings.Contains(strings.ToLower(option), lowered) {
			matched = option
			matches++
		}
	}

	switch matches {
	case 1:
		return matched, nil
	case 0:
		return "", fmt.Errorf("correctAnswer %q not found in options", correct)
	default:
		return "", fmt.Errorf("correctAnswer %q matches %d options", correct, matches)
	}
}

func buildTriviaPrompt(category string, count int) string {
	return fmt.Sprintf(`You are a fun and engaging trivia game host.
Generate %d trivia questions for the category: %q.
Provide each question, %d multiple-choice options, and clearly indicate the correct answer.
The value for "correctAnswer" MUST EXACTLY MATCH one of the strings in the "options" array, without any leading or trailing whitespace.
Return your response as a single, valid JSON array of question objects with this structure:
[
  {
    "question": "The actual trivia question text?",
    "options": ["Option A Text", "Option B Text", "Option C Text", "Option D Text"],
    "correctAnswer": "The text of the correct option"
  }
]
Ensure the options are distinct and plausible. The questions should be engaging and fit the category.
For "Brain Teasers", make it a riddle or short puzzle.
Ensure the entire response is ONLY the JSON array, without any surrounding text or markdown.`,
		count, category, optionsPerQuestion)
}
