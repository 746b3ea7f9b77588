package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bevin/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAITestConfig(apiBase string) *config.OpenAIConfig {
	return &config.OpenAIConfig{
		APIKey:    "test-key",
		APIBase:   apiBase,
		ChatModel: "gpt-4o-mini",
		MaxTokens: 512,
		Timeout:   5,
		Enabled:   true,
	}
}

func TestOpenAIClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, 0.4, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  Try the Mango Cloud.  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(openAITestConfig(server.URL))

	got, err := client.Complete(context.Background(), []ChatMessage{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "tropical under $8"},
	}, 0.4)

	require.NoError(t, err)
	assert.Equal(t, "Try the Mango Cloud.", got)
}

func TestOpenAIClientCompleteUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(openAITestConfig(server.URL))

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 0.4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIClientCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(openAITestConfig(server.URL))

	_, err := client.Complete(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}}, 0.4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestOpenAIClientDisabled(t *testing.T) {
	cfg := openAITestConfig("http://unused")
	cfg.Enabled = false
	client := NewOpenAIClient(cfg)

	assert.False(t, client.IsEnabled())
	_, err := client.Complete(context.Background(), nil, 0.4)
	assert.Error(t, err)
}
