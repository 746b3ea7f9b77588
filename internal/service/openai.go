package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bevin/internal/config"
)

// TextGenerator is the interface for text-generation providers. The
// composer treats every call as fallible; a nil or disabled generator is a
// valid configuration and routes everything to the deterministic templates.
type TextGenerator interface {
	// Complete submits the message list and returns the best completion,
	// trimmed. Temperature is per-call because the persona branch runs
	// warmer than recommendation composition.
	Complete(ctx context.Context, messages []ChatMessage, temperature float64) (string, error)

	// IsEnabled returns whether the generator is configured and ready
	IsEnabled() bool
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionRequest represents a chat completion request
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatCompletionResponse represents the API response
type chatCompletionResponse struct {
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// OpenAIClient handles OpenAI-compatible API interactions
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
}

// Ensure OpenAIClient implements TextGenerator
var _ TextGenerator = (*OpenAIClient)(nil)

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// Complete performs a chat completion request and returns the first
// choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, messages []ChatMessage, temperature float64) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	req := chatCompletionRequest{
		Model:       c.config.ChatModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.config.MaxTokens,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}
