// Package retry wraps avast/retry-go for upstream calls that may be throttled.
package retry

import (
	"context"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"

	"ragdocs/internal/config"
)

// StatusCoder is implemented by errors that carry an upstream HTTP status.
type StatusCoder interface {
	HTTPStatusCode() int
}

// Throttled reports whether err came from a 429 or 503 response.
func Throttled(err error) bool {
	var sc StatusCoder
	if !errors.As(err, &sc) {
		return false
	}
	switch sc.HTTPStatusCode() {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// Options converts cfg into retry-go options. Only throttled errors are retried
// and the last error is returned unwrapped.
func Options(ctx context.Context, cfg config.RetryConfig) []retry.Option {
	attempts := cfg.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(cfg.Delay),
		retry.MaxDelay(cfg.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(Throttled),
		retry.LastErrorOnly(true),
	}
}

// Do runs fn under the retry policy in cfg.
func Do[T any](ctx context.Context, cfg config.RetryConfig, fn func() (T, error)) (T, error) {
	return retry.DoWithData(fn, Options(ctx, cfg)...)
}
