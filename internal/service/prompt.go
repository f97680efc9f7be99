package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"ragdocs/internal/llm"
	"ragdocs/internal/logger"
	"ragdocs/internal/search"
)

// Generation parameters are fixed; clients cannot change them.
const (
	SystemMessage = "You are a helpful assistant."
	MaxTokens     = 1000
	Temperature   = 0.7
)

// PromptService answers free-text prompts, optionally grounded on documents
// retrieved from the search index.
type PromptService interface {
	Ask(ctx context.Context, prompt string, useRAG bool) (string, error)
}

type promptService struct {
	searcher  search.Searcher
	completer llm.Completer
}

// NewPromptService constructs a new PromptService.
func NewPromptService(searcher search.Searcher, completer llm.Completer) PromptService {
	return &promptService{searcher: searcher, completer: completer}
}

// Ask builds the user message, sends it to the model and returns the trimmed
// first completion. A search failure aborts the request.
func (s *promptService) Ask(ctx context.Context, prompt string, useRAG bool) (string, error) {
	if prompt == "" {
		return "", invalid(ErrNoPrompt)
	}
	log := logger.FromContext(ctx)
	log.Debug("received prompt", zap.Bool("use_rag", useRAG), zap.Int("prompt_length", len(prompt)))

	userMessage := prompt
	if useRAG {
		docs, err := s.searcher.Query(ctx, prompt)
		if err != nil {
			log.Error("search query failed", zap.Error(err))
			return "", upstream("", err)
		}
		userMessage = AugmentPrompt(prompt, docs)
		log.Debug("search completed", zap.Int("documents", len(docs)), zap.Bool("augmented", userMessage != prompt))
	}

	out, err := s.completer.Complete(ctx, llm.Request{
		System:      SystemMessage,
		User:        userMessage,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		log.Error("completion failed", zap.Error(err))
		return "", upstream("", err)
	}

	return strings.TrimSpace(out), nil
}

// AugmentPrompt prefixes prompt with the content of docs. Each document's
// content is followed by a blank line. If the combined text is empty the
// prompt is returned unchanged.
func AugmentPrompt(prompt string, docs []search.Document) string {
	var b strings.Builder
	for _, d := range docs {
		b.WriteString(d.Content())
		b.WriteString("\n\n")
	}
	if b.Len() == 0 {
		return prompt
	}
	return "Documents:\n" + b.String() + "\n\nUser prompt: " + prompt
}
