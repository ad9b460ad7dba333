package ai

import (
	"context"
	"fmt"

	"atsmatch/internal/config"
	"atsmatch/internal/errors"
)

// Service handles text enhancement requests against the configured provider.
// It satisfies the engine's TextEnhancer contract.
type Service struct {
	Provider TextProvider // Exported for access from server package
	config   *config.EnhancerConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance from the enhancer configuration
func NewService(cfg *config.EnhancerConfig, logger *errors.Logger) (*Service, error) {
	var provider TextProvider
	var err error

	// Debug logging for service initialization
	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// Generate sends a prompt to the provider and returns the plain-text response.
func (s *Service) Generate(ctx context.Context, prompt string, maxTokens int32) (string, error) {
	text, _, err := s.GenerateWithUsage(ctx, prompt, maxTokens)
	return text, err
}

// GenerateWithUsage is Generate with token usage for callers that record metrics.
func (s *Service) GenerateWithUsage(ctx context.Context, prompt string, maxTokens int32) (string, *TokenUsage, error) {
	text, usage, err := s.Provider.GenerateText(ctx, prompt, maxTokens)
	if err != nil {
		return "", nil, err
	}
	if usage != nil {
		s.logger.Debug("Text generation completed",
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}
	return text, usage, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// Close releases provider resources.
func (s *Service) Close() error {
	return s.Provider.Close()
}
