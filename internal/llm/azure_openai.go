package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"ragdocs/internal/config"
	"ragdocs/internal/httpclient"
	"ragdocs/internal/retry"
)

// ErrNoChoices is returned when the model answers without any choice.
var ErrNoChoices = errors.New("model returned no choices")

// HTTPError carries the upstream status of a failed model call. Its message is
// the underlying client error unchanged.
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string       { return e.Err.Error() }
func (e *HTTPError) Unwrap() error       { return e.Err }
func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }

// AzureOpenAI is a Completer backed by an Azure OpenAI chat deployment.
type AzureOpenAI struct {
	client     *openai.Client
	deployment string
	retry      config.RetryConfig
}

var _ Completer = (*AzureOpenAI)(nil)

// NewAzureOpenAI creates a client for the configured deployment.
func NewAzureOpenAI(cfg config.OpenAIConfig) (*AzureOpenAI, error) {
	if cfg.APIKey == "" || cfg.Endpoint == "" || cfg.Deployment == "" {
		return nil, fmt.Errorf("azure openai api key, endpoint and deployment are required")
	}

	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }
	clientCfg.HTTPClient = httpclient.New(cfg.Timeout)

	return &AzureOpenAI{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: deployment,
		retry:      cfg.Retry,
	}, nil
}

// Complete sends a system and a user message and returns the first choice's content.
func (a *AzureOpenAI) Complete(ctx context.Context, req Request) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: a.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	resp, err := retry.Do(ctx, a.retry, func() (openai.ChatCompletionResponse, error) {
		r, err := a.client.CreateChatCompletion(ctx, chatReq)
		return r, withStatus(err)
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func withStatus(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &HTTPError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &HTTPError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}
