// Package llm wraps the text-generation providers behind a single interface.
// It is used only for the optional cat profile summaries; the image
// embedding providers live in internal/embedding.
package llm

import (
	"context"
)

// DefaultMaxTokens caps a summary completion when the config leaves
// max_tokens unset. Profile summaries are a paragraph, not an essay.
const DefaultMaxTokens = 1000

type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return DefaultMaxTokens
	}
	return n
}
