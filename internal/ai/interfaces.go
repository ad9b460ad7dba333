package ai

import "context"

// TextProvider is the transport-level interface to a text generation
// backend. Service wraps it with logging and usage reporting before the
// rest of the application sees it.
type TextProvider interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int32) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}
