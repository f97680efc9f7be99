// Package llm sends chat prompts to a hosted language model.
package llm

import "context"

// Request is a single-turn chat prompt.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Completer returns the model's completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
