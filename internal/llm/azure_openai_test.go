package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragdocs/internal/config"
)

func newTestClient(t *testing.T, url string, retry config.RetryConfig) *AzureOpenAI {
	t.Helper()
	if retry.Attempts == 0 {
		retry.Attempts = 1
	}
	c, err := NewAzureOpenAI(config.OpenAIConfig{
		APIKey:     "key",
		Endpoint:   url,
		Deployment: "gpt-deploy",
		APIVersion: "2023-03-15-preview",
		Timeout:    5 * time.Second,
		Retry:      retry,
	})
	require.NoError(t, err)
	return c
}

const completionBody = `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  hello there \n"},"finish_reason":"stop"}]}`

func TestAzureOpenAI_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/gpt-deploy/chat/completions", r.URL.Path)
		assert.Equal(t, "2023-03-15-preview", r.URL.Query().Get("api-version"))
		assert.Equal(t, "key", r.Header.Get("api-key"))

		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
			MaxTokens   int     `json:"max_tokens"`
			Temperature float64 `json:"temperature"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "sys", body.Messages[0].Content)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "hi", body.Messages[1].Content)
		assert.Equal(t, 1000, body.MaxTokens)
		assert.InDelta(t, 0.7, body.Temperature, 0.0001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL, config.RetryConfig{}).Complete(context.Background(), Request{
		System: "sys", User: "hi", MaxTokens: 1000, Temperature: 0.7,
	})
	require.NoError(t, err)
	// trimming is the caller's job
	assert.Equal(t, "  hello there \n", got)
}

func TestAzureOpenAI_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, config.RetryConfig{}).Complete(context.Background(), Request{User: "hi"})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestAzureOpenAI_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"content_filter","message":"prompt rejected"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL, config.RetryConfig{}).Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.HTTPStatusCode())
	assert.Contains(t, err.Error(), "prompt rejected")
}

func TestAzureOpenAI_RetriesThrottling(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":"429","message":"rate limited"}}`))
			return
		}
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond})
	_, err := c.Complete(context.Background(), Request{User: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
