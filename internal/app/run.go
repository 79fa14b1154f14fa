package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

type Runner func(ctx context.Context, logger zerolog.Logger) error

// Run executes a service until SIGINT/SIGTERM and translates the result
// into a process exit code. The runner gets a bounded window to finish
// its shutdown after the signal.
func Run(serviceName string, run Runner) int {
	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	logger.Info().Msg("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- run(ctx, logger) }()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		select {
		case err := <-errCh:
			if err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("shutdown failed")
				return 1
			}
		case <-time.After(15 * time.Second):
			logger.Error().Msg("shutdown timed out")
			return 1
		}
		return 0

	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("failed")
			return 1
		}
		logger.Info().Msg("stopped")
		return 0
	}
}
