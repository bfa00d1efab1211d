package llm

import (
	"context"
)

// Provider generates a single completion for a conversation.
type Provider interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tunes sampling per request. Zero values are omitted from the
// request so the provider's own defaults apply.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
}
