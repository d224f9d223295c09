// Package openai is the language-interpretation client over an OpenAI-compatible chat completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinefind/internal/domain"
	"github.com/kailas-cloud/cinefind/internal/metrics"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = openai.GPT3Dot5Turbo

const (
	opExtract = "extract"
	opNarrate = "narrate"
)

// TokenBudget gates requests on consumed tokens.
type TokenBudget interface {
	Check(ctx context.Context) error
	Record(tokens int64)
}

// Config holds the interpreter settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	// Budget is optional. A rejecting budget fails requests before they are sent.
	Budget TokenBudget
	Logger *zap.Logger
}

// Client extracts search parameters and writes narrations. It is safe for concurrent use.
type Client struct {
	client *openai.Client
	model  string
	budget TokenBudget
	logger *zap.Logger
}

// New creates an interpreter client.
func New(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	switch {
	case cfg.HTTPClient != nil:
		clientCfg.HTTPClient = cfg.HTTPClient
	case cfg.Timeout > 0:
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		budget: cfg.Budget,
		logger: logger,
	}
}

// ExtractParameters asks the model for a JSON object of search parameters.
// The raw object is returned unvalidated.
func (c *Client) ExtractParameters(ctx context.Context, text string) ([]byte, error) {
	content, err := c.complete(ctx, opExtract, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractUserPrompt, text)},
		},
		Temperature: 0.1,
		MaxTokens:   500,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}

	content = stripFence(content)
	if content == "" {
		metrics.LLMErrorsTotal.WithLabelValues(opExtract, c.model, "empty_response").Inc()
		return nil, fmt.Errorf("empty extraction response: %w", domain.ErrInterpreterUnavailable)
	}
	return []byte(content), nil
}

// Narrate writes a short recommendation text for the listing. An empty completion is not an error.
func (c *Client) Narrate(ctx context.Context, query, listing string) (string, error) {
	content, err := c.complete(ctx, opNarrate, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narrateSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(narrateUserPrompt, query, listing)},
		},
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", parseAPIError(err))
	}
	return nil
}

// complete runs one chat completion and records transport-level metrics.
func (c *Client) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	if c.budget != nil {
		if err := c.budget.Check(ctx); err != nil {
			metrics.LLMErrorsTotal.WithLabelValues(op, c.model, "budget").Inc()
			return "", fmt.Errorf("budget check: %w: %w", domain.ErrInterpreterUnavailable, err)
		}
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(op, c.model, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(op, c.model, "api_error").Inc()
		c.logger.Debug("chat completion failed",
			zap.String("operation", op),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.LLMRequestsTotal.WithLabelValues(op, c.model, "error").Inc()
		metrics.LLMErrorsTotal.WithLabelValues(op, c.model, "no_choices").Inc()
		return "", fmt.Errorf("chat completion returned no choices: %w", domain.ErrInterpreterUnavailable)
	}

	metrics.LLMRequestsTotal.WithLabelValues(op, c.model, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(op, c.model).Observe(duration.Seconds())
	if c.budget != nil {
		c.budget.Record(int64(resp.Usage.TotalTokens))
	}
	if resp.Usage.TotalTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(op, c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LLMTokensTotal.WithLabelValues(op, c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
	}

	return resp.Choices[0].Message.Content, nil
}

// stripFence removes a markdown code fence some compatible providers wrap JSON in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrInterpreterUnavailable.
func parseAPIError(err error) error {
	wrap := domain.ErrInterpreterUnavailable

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("interpreter request: %w: %w", wrap, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("interpreter API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("interpreter API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("interpreter API error %d: %w", reqErr.HTTPStatusCode, wrap)
	}

	return fmt.Errorf("interpreter request failed: %w", wrap)
}

// extractDetail reads the "detail" field some compatible providers return instead of an error object.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
