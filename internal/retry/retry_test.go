package retry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func TestWithResult_SuccessFirstTry(t *testing.T) {
	calls := 0
	got, err := WithResult(context.Background(), fastConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("WithResult() error = %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("got %q after %d calls, want ok after 1", got, calls)
	}
}

func TestWithResult_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := WithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("connection reset")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("WithResult() error = %v", err)
	}
	if got != 42 || calls != 3 {
		t.Errorf("got %d after %d calls, want 42 after 3", got, calls)
	}
}

func TestWithResult_NonRetryableStopsImmediately(t *testing.T) {
	terminal := errors.New("invalid credentials")
	calls := 0
	_, err := WithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		return 0, terminal
	})
	if !errors.Is(err, terminal) {
		t.Fatalf("WithResult() error = %v, want the original error", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestWithResult_ExhaustionWrapsLastError(t *testing.T) {
	cause := errors.New("connection refused")
	calls := 0
	_, err := WithResult(context.Background(), fastConfig(), func() (int, error) {
		calls++
		return 0, cause
	})
	if calls != 3 {
		t.Errorf("fn called %d times, want 3 (initial + 2 retries)", calls)
	}
	if !errors.Is(err, cause) {
		t.Errorf("wrapped error does not unwrap to cause: %v", err)
	}
	if !strings.Contains(err.Error(), "max retry attempts (3) reached") {
		t.Errorf("error = %v, want exhaustion message", err)
	}
}

func TestWithResult_CustomClassifier(t *testing.T) {
	// The classifier, not the message text, decides retryability.
	cfg := fastConfig()
	cfg.Retryable = func(err error) bool { return err.Error() == "again" }

	calls := 0
	got, err := WithResult(context.Background(), cfg, func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("again")
		}
		return "done", nil
	})
	if err != nil {
		t.Fatalf("WithResult() error = %v", err)
	}
	if got != "done" || calls != 2 {
		t.Errorf("got %q after %d calls, want done after 2", got, calls)
	}
}

func TestWithResult_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastConfig()
	cfg.BaseDelay = time.Minute

	_, err := WithResult(ctx, cfg, func() (int, error) {
		return 0, errors.New("connection reset")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithResult() error = %v, want context.Canceled", err)
	}
}
