// Package gemini implements the generation gateway. It turns raw material
// text into structured assessments by calling the Gemini generateContent API
// with a schema-constrained JSON response, and validates the returned shape
// before handing it back to the caller.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"training-hub-service/internal/domain"
)

// ErrAPIKeyNotConfigured is returned before any network call when the
// credential is missing.
var ErrAPIKeyNotConfigured = errors.New("gemini api key is not configured")

// GenerationError is the single user-facing failure for any network,
// deserialization or schema problem. The underlying cause is logged, never
// exposed.
type GenerationError struct {
	Kind domain.AssessmentType
}

func (e *GenerationError) Error() string {
	if e.Kind == domain.AssessmentAssignment {
		return "could not generate assignment, please check the content or API configuration"
	}
	return "could not generate test, please check the content or API configuration"
}

// ClientConfig contains configuration for the Gemini API client.
type ClientConfig struct {
	// BaseURL is the API base URL; override it in tests.
	BaseURL string

	// APIKey authenticates requests. Empty means generation is unavailable.
	APIKey string

	// Model names the generative model to invoke.
	Model string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(apiKey string) ClientConfig {
	return ClientConfig{
		BaseURL: "https://generativelanguage.googleapis.com",
		APIKey:  apiKey,
		Model:   "gemini-2.5-flash",
		Timeout: 30 * time.Second,
	}
}

// Client is the Gemini API client.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Gemini API client.
func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultClientConfig("").BaseURL
	}
	if config.Model == "" {
		config.Model = DefaultClientConfig("").Model
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientConfig("").Timeout
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     config.Logger,
	}
}

// GenerateTest produces exactly 5 multiple-choice questions with 4 options
// each, derived solely from the given content.
func (c *Client) GenerateTest(ctx context.Context, content string) ([]domain.AssessmentQuestion, error) {
	if c.config.APIKey == "" {
		return nil, ErrAPIKeyNotConfigured
	}

	prompt := fmt.Sprintf("Based on the following content, generate a 5-question multiple-choice test. "+
		"Each question must have exactly 4 options. Ensure the correct answer is one of the options. Content: %q", content)

	raw, err := c.generate(ctx, prompt, testSchema())
	if err != nil {
		c.logger.Error("test generation failed", "error", err)
		return nil, &GenerationError{Kind: domain.AssessmentTest}
	}

	var payload testPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Error("test generation returned malformed JSON", "error", err)
		return nil, &GenerationError{Kind: domain.AssessmentTest}
	}
	if err := payload.validate(); err != nil {
		c.logger.Error("test generation returned unexpected shape", "error", err)
		return nil, &GenerationError{Kind: domain.AssessmentTest}
	}
	return payload.Questions, nil
}

// GenerateAssignment produces a titled set of 3-5 open-ended questions
// derived solely from the given content.
func (c *Client) GenerateAssignment(ctx context.Context, content string) (domain.GeneratedAssignment, error) {
	if c.config.APIKey == "" {
		return domain.GeneratedAssignment{}, ErrAPIKeyNotConfigured
	}

	prompt := fmt.Sprintf("Based on the following content, generate a 3-question open-ended assignment. "+
		"Create a suitable title for the assignment. Content: %q", content)

	raw, err := c.generate(ctx, prompt, assignmentSchema())
	if err != nil {
		c.logger.Error("assignment generation failed", "error", err)
		return domain.GeneratedAssignment{}, &GenerationError{Kind: domain.AssessmentAssignment}
	}

	var payload assignmentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Error("assignment generation returned malformed JSON", "error", err)
		return domain.GeneratedAssignment{}, &GenerationError{Kind: domain.AssessmentAssignment}
	}
	if err := payload.validate(); err != nil {
		c.logger.Error("assignment generation returned unexpected shape", "error", err)
		return domain.GeneratedAssignment{}, &GenerationError{Kind: domain.AssessmentAssignment}
	}

	questions := make([]domain.AssessmentQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		questions = append(questions, domain.AssessmentQuestion{Question: q.Question})
	}
	return domain.GeneratedAssignment{Title: payload.Title, Questions: questions}, nil
}

// generate performs a single schema-constrained generateContent call and
// returns the raw JSON text of the first candidate.
func (c *Client) generate(ctx context.Context, prompt string, schema *responseSchema) ([]byte, error) {
	reqBody := generateContentRequest{
		Contents: []contentDTO{{Parts: []partDTO{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.config.BaseURL, c.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generateContent failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	text, err := decoded.firstText()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}
