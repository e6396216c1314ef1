package retry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config holds configuration for retry behavior.
type Config struct {
	MaxAttempts int           // Maximum number of retry attempts (default: 3)
	BaseDelay   time.Duration // Base delay between retries (default: 500ms)
	MaxDelay    time.Duration // Maximum delay between retries (default: 5s)

	// Retryable classifies errors; nil falls back to a network-error
	// heuristic.
	Retryable func(error) bool
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// WithResult executes a function that returns a result with retry logic.
func WithResult[T any](ctx context.Context, config Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	retryable := config.Retryable
	if retryable == nil {
		retryable = isNetworkError
	}

	for attempt := 0; attempt <= config.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !retryable(err) {
			slog.WarnContext(ctx, "Non-retryable error encountered, not retrying",
				"attempt", attempt+1,
				"error", err)
			return zero, err
		}

		if attempt == config.MaxAttempts {
			slog.WarnContext(ctx, "Max retry attempts reached, giving up",
				"attempts", config.MaxAttempts+1,
				"error", err)
			return zero, fmt.Errorf("max retry attempts (%d) reached, last error: %w", config.MaxAttempts+1, err)
		}

		delay := calculateDelay(config, attempt)
		slog.WarnContext(ctx, "Retryable error encountered, will retry",
			"attempt", attempt+1,
			"max_attempts", config.MaxAttempts+1,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return zero, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}

// isNetworkError checks if error looks like a transient network failure.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	errorStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection",
		"timeout",
		"network",
		"dial",
		"eof",
		"reset",
		"refused",
	}
	for _, keyword := range networkKeywords {
		if strings.Contains(errorStr, keyword) {
			return true
		}
	}
	return false
}

// calculateDelay computes the delay for exponential backoff.
func calculateDelay(config Config, attempt int) time.Duration {
	// Simple exponential backoff: base * 2^attempt
	delay := config.BaseDelay * time.Duration(1<<uint(attempt))

	if delay > config.MaxDelay {
		delay = config.MaxDelay
	}

	return delay
}
