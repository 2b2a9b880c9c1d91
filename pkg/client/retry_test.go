package client

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fastRetryConfig keeps retry tests quick.
func fastRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:       maxAttempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
		Jitter:            false,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 6 {
		t.Errorf("MaxAttempts = %d, want 6", config.MaxAttempts)
	}
	if config.InitialBackoff != 1*time.Second {
		t.Errorf("InitialBackoff = %v, want 1s", config.InitialBackoff)
	}
	if config.MaxBackoff != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want 30s", config.MaxBackoff)
	}
	if config.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want 2.0", config.BackoffMultiplier)
	}
}

func TestRetryWithBackoff_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(6), func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(6), func() error {
		calls++
		if calls < 3 {
			return &FetchError{URL: "u", StatusCode: 429, ErrorClass: ErrorClassRateLimit}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryWithBackoff_PermanentErrorNotRetried(t *testing.T) {
	permanent := &FetchError{URL: "u", StatusCode: 404, ErrorClass: ErrorClassClient}

	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(6), func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("error = %v, want the permanent error unchanged", err)
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Error("permanent error must not be wrapped as exhaustion")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryWithBackoff_Exhaustion(t *testing.T) {
	transient := &FetchError{URL: "u", StatusCode: 429, ErrorClass: ErrorClassRateLimit}

	calls := 0
	err := retryWithBackoff(context.Background(), fastRetryConfig(6), func() error {
		calls++
		return transient
	})

	if calls != 6 {
		t.Errorf("calls = %d, want 6", calls)
	}
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("error = %v, want ErrRetryExhausted", err)
	}
	if !errors.Is(err, transient) {
		t.Errorf("error = %v, should wrap the last transient error", err)
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	config := RetryConfig{
		MaxAttempts:       6,
		InitialBackoff:    time.Second,
		MaxBackoff:        time.Second,
		BackoffMultiplier: 2.0,
	}

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- retryWithBackoff(ctx, config, func() error {
			calls++
			return &FetchError{URL: "u", ErrorClass: ErrorClassNetwork, Err: errors.New("down")}
		})
	}()

	// Cancel during the first backoff sleep.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, ErrContextCancelled) {
			t.Errorf("error = %v, want ErrContextCancelled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("retry loop did not stop after context cancellation")
	}
}
