package cli

import (
	"context"
	"fmt"

	"atsmatch/internal/ai"
	"atsmatch/internal/config"
	"atsmatch/internal/engine"
	"atsmatch/internal/errors"
)

// newEngine builds the matching engine for a CLI invocation. When the
// enhancer is enabled it wires in the AI service, otherwise the engine
// runs the deterministic pipeline only. The returned cleanup function
// releases the AI client, if any.
func newEngine(cfg *config.Config, logger *errors.Logger) (*engine.Engine, func(), error) {
	opts := engine.Options{
		EnhancerTimeout: cfg.Enhancer.Timeout,
		Logger:          logger,
	}
	cleanup := func() {}

	if cfg.Enhancer.Enabled {
		service, err := ai.NewService(&cfg.Enhancer, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create enhancer service: %w", err)
		}
		opts.Enhancer = service
		cleanup = func() {
			if err := service.Close(); err != nil {
				logger.LogError(err, "Failed to close enhancer service")
			}
		}
	}

	return engine.New(opts), cleanup, nil
}

// engineFromCommandContext is a convenience wrapper for subcommands.
func engineFromCommandContext(ctx context.Context) (*engine.Engine, func(), error) {
	return newEngine(getConfigFromContext(ctx), getLoggerFromContext(ctx))
}
