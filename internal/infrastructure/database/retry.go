package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Retry runs connect until it succeeds or attempts are exhausted.
// The delay doubles after every failure: base, 2*base, 4*base, ...
func Retry(ctx context.Context, component string, attempts int, base time.Duration, connect func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		log.Info().Str("component", component).Int("attempt", attempt).Int("max", attempts).Msg("connecting")

		if lastErr = connect(ctx); lastErr == nil {
			log.Info().Str("component", component).Int("attempt", attempt).Msg("connected")
			return nil
		}

		log.Warn().Err(lastErr).Str("component", component).Int("attempt", attempt).Msg("connection attempt failed")

		if attempt == attempts {
			break
		}

		delay := base * time.Duration(1<<uint(attempt-1))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s connection cancelled: %w", component, ctx.Err())
		}
	}

	return fmt.Errorf("%s: failed to connect after %d attempts: %w", component, attempts, lastErr)
}
