package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"triviaquest/pkg/utils"
)

type fakeClient struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (f *fakeClient) GenerateQuestionJSON(ctx context.Context, prompt string) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func (f *fakeClient) Close() error { return nil }

func newTestService(client utils.QuestionClientInterface, retries int) *QuestionService {
	return &QuestionService{client: client, maxRetries: retries, retryDelay: 0}
}

const validBatch = `[
	{
		"question": "What planet is known as the Red Planet?",
		"options": ["Earth", "Mars", "Jupiter", "Venus"],
		"correctAnswer": "Mars"
	}
]`

func TestGenerateQuestion_Valid(t *testing.T) {
	client := &fakeClient{responses: []string{validBatch}}
	svc := newTestService(client, 3)

	q, err := svc.GenerateQuestion(context.Background(), "Science")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Question != "What planet is known as the Red Planet?" {
		t.Errorf("unexpected question: %q", q.Question)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.CorrectAnswer != "Mars" {
		t.Errorf("expected correct answer Mars, got %q", q.CorrectAnswer)
	}

	matches := 0
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("correct answer should match exactly one option, matched %d", matches)
	}
}

func TestGenerateQuestions_PromptEmbedsCategoryAndCount(t *testing.T) {
	client := &fakeClient{responses: []string{validBatch}}
	svc := newTestService(client, 1)

	if _, err := svc.GenerateQuestions(context.Background(), "History", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", len(client.prompts))
	}
	prompt := client.prompts[0]
	if !strings.Contains(prompt, `"History"`) {
		t.Errorf("prompt does not embed the category: %s", prompt)
	}
	if !strings.Contains(prompt, "Generate 5 trivia questions") {
		t.Errorf("prompt does not embed the count: %s", prompt)
	}
}

func TestGenerateQuestions_EmptyCategory(t *testing.T) {
	client := &fakeClient{}
	svc := newTestService(client, 3)

	for _, category := range []string{"", "   "} {
		_, err := svc.GenerateQuestions(context.Background(), category, 1)
		if !errors.Is(err, utils.ErrCategoryRequired) {
			t.Errorf("category %q: expected ErrCategoryRequired, got %v", category, err)
		}
	}
	if client.calls != 0 {
		t.Errorf("upstream should not be called for invalid input, got %d calls", client.calls)
	}
}

func TestGenerateQuestions_CountValidation(t *testing.T) {
	client := &fakeClient{responses: []string{validBatch}}
	svc := newTestService(client, 1)

	if _, err := svc.GenerateQuestions(context.Background(), "Science", -1); !errors.Is(err, utils.ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount for negative count, got %v", err)
	}
	if _, err := svc.GenerateQuestions(context.Background(), "Science", 11); !errors.Is(err, utils.ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount for oversized count, got %v", err)
	}

	// Zero falls back to the default batch size.
	if _, err := svc.GenerateQuestions(context.Background(), "Science", 0); err != nil {
		t.Fatalf("unexpected error for default count: %v", err)
	}
	if !strings.Contains(client.prompts[0], "Generate 10 trivia questions") {
		t.Errorf("default count not applied: %s", client.prompts[0])
	}
}

func TestGenerateQuestions_RetriesThenSucceeds(t *testing.T) {
	client := &fakeClient{
		responses: []string{"", validBatch},
		errs:      []error{errors.New("rate limited"), nil},
	}
	svc := newTestService(client, 3)

	questions, err := svc.GenerateQuestions(context.Background(), "Science", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if client.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", client.calls)
	}
}

func TestGenerateQuestions_UpstreamFailure(t *testing.T) {
	client := &fakeClient{
		errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")},
	}
	svc := newTestService(client, 3)

	_, err := svc.GenerateQuestions(context.Background(), "Science", 1)
	if !errors.Is(err, utils.ErrUpstreamFailure) {
		t.Fatalf("expected ErrUpstreamFailure, got %v", err)
	}
	if client.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", client.calls)
	}
}

func TestGenerateQuestions_CanceledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &fakeClient{
		errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")},
	}
	// A real delay here so the canceled context wins the retry wait.
	svc := &QuestionService{client: client, maxRetries: 3, retryDelay: time.Second}

	_, err := svc.GenerateQuestions(ctx, "Science", 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if client.calls != 1 {
		t.Errorf("expected a single attempt before the canceled wait, got %d", client.calls)
	}
}

func TestParseQuestionPayload_InvalidEntryRejectsBatch(t *testing.T) {
	payload := `[
		{
			"question": "Valid?",
			"options": ["A", "B", "C", "D"],
			"correctAnswer": "A"
		},
		{
			"question": "Broken",
			"options": ["A", "B"],
			"correctAnswer": "A"
		}
	]`

	_, err := parseQuestionPayload(payload)
	if !errors.Is(err, utils.ErrMalformedAIResponse) {
		t.Fatalf("expected ErrMalformedAIResponse, got %v", err)
	}
}

func TestParseQuestionPayload_NotAnArray(t *testing.T) {
	for _, payload := range []string{`{"question": "x"}`, `[]`, `not json`} {
		_, err := parseQuestionPayload(payload)
		if !errors.Is(err, utils.ErrMalformedAIResponse) {
			t.Errorf("payload %q: expected ErrMalformedAIResponse, got %v", payload, err)
		}
	}
}

func TestMatchCorrectOption(t *testing.T) {
	options := []string{"Earth", "Mars", "Jupiter", "Venus"}

	got, err := matchCorrectOption(" mars ", options)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Mars" {
		t.Errorf("expected normalized option Mars, got %q", got)
	}

	if _, err := matchCorrectOption("Pluto", options); err == nil {
		t.Error("expected error for answer missing from options")
	}

	// "a" is contained in both "Earth" and "Mars": ambiguous.
	if _, err := matchCorrectOption("a", options); err == nil {
		t.Error("expected error for ambiguous answer")
	}

	if _, err := matchCorrectOption("  ", options); err == nil {
		t.Error("expected error for blank answer")
	}
}

func TestNormalizeQuestion_TrimsWhitespace(t *testing.T) {
	q := generatedQuestion{
		Question:      "  Who wrote Hamlet?  ",
		Options:       []string{" Shakespeare ", "Dickens", "Austen", "Tolstoy"},
		CorrectAnswer: "Shakespeare",
	}

	normalized, err := normalizeQuestion(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalized.Question != "Who wrote Hamlet?" {
		t.Errorf("question not trimmed: %q", normalized.Question)
	}
	if normalized.Options[0] != "Shakespeare" {
		t.Errorf("option not trimmed: %q", normalized.Options[0])
	}
	if normalized.CorrectAnswer != "Shakespeare" {
		t.Errorf("unexpected correct answer: %q", normalized.CorrectAnswer)
	}
}
