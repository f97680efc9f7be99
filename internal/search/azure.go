package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"ragdocs/internal/config"
	"ragdocs/internal/httpclient"
	"ragdocs/internal/retry"
)

// maxPages bounds how many continuation pages one query follows.
const maxPages = 100

// HTTPError is a non-2xx answer from the search service.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("search: HTTP %d: %s", e.StatusCode, e.Message)
}

// HTTPStatusCode exposes the status to the retry policy.
func (e *HTTPError) HTTPStatusCode() int {
	return e.StatusCode
}

type searchResponse struct {
	Value          []Document     `json:"value"`
	NextPageParams map[string]any `json:"@search.nextPageParameters"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AzureSearch queries an Azure AI Search index over its REST API.
type AzureSearch struct {
	client *resty.Client
	index  string
	retry  config.RetryConfig
}

var _ Searcher = (*AzureSearch)(nil)

// NewAzureSearch builds a client for one index. It does not contact the service.
func NewAzureSearch(cfg config.SearchConfig) (*AzureSearch, error) {
	if cfg.Endpoint == "" || cfg.APIKey == "" || cfg.IndexName == "" {
		return nil, fmt.Errorf("search endpoint, api key and index name are required")
	}

	client := resty.NewWithClient(httpclient.New(cfg.Timeout)).
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("Accept", "application/json").
		SetQueryParam("api-version", cfg.APIVersion)

	return &AzureSearch{client: client, index: cfg.IndexName, retry: cfg.Retry}, nil
}

// Query runs a simple full-text search for text and collects every page of
// results the service returns.
func (s *AzureSearch) Query(ctx context.Context, text string) ([]Document, error) {
	docs := make([]Document, 0)
	body := map[string]any{"search": text}

	for page := 0; page < maxPages && body != nil; page++ {
		res, err := retry.Do(ctx, s.retry, func() (*searchResponse, error) {
			return s.post(ctx, body)
		})
		if err != nil {
			return nil, err
		}
		docs = append(docs, res.Value...)
		body = res.NextPageParams
	}
	return docs, nil
}

func (s *AzureSearch) post(ctx context.Context, body map[string]any) (*searchResponse, error) {
	var (
		out    searchResponse
		errRes errorResponse
	)
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("index", s.index).
		SetBody(body).
		SetResult(&out).
		SetError(&errRes).
		Post("/indexes/{index}/docs/search")
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	if resp.IsError() {
		msg := errRes.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return &out, nil
}
