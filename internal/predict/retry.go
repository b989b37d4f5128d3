package predict

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry policy used for remote models.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 200 * time.Millisecond,
		MaxWait:     2 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryPredictor is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryPredictor struct {
	inner  Predictor
	config RetryConfig
}

// WithRetry wraps a Predictor with retry logic.
func WithRetry(p Predictor, cfg RetryConfig) Predictor {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryPredictor{inner: p, config: cfg}
}

func (r *RetryPredictor) Predict(ctx context.Context, f Features) (bool, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		eligible, err := r.inner.Predict(ctx, f)
		if err == nil {
			return eligible, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return false, err
		}

		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return false, lastErr
}

func (r *RetryPredictor) Name() string {
	return r.inner.Name()
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// A client error will not change on repeat.
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}

	// Network and decode failures are treated as transient.
	return true
}

func (r *RetryPredictor) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
