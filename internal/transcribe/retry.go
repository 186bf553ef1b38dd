package transcribe

import (
	"context"
	"time"

	"github.com/rampinfotech/meetscribe/internal/logger"
)

const (
	maxAttempts = 5
	baseDelay   = 3 * time.Second
)

type retryService struct {
	inner  Service
	logger logger.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps a transcription Service with the retry policy: up to 5
// attempts, linear backoff of baseDelay * attempt between them, transient
// failures only. Fatal errors and exhausted retries propagate the
// service's error unchanged.
func WithRetry(inner Service, log logger.Logger) Service {
	return &retryService{
		inner:  inner,
		logger: log,
		sleep:  sleepContext,
	}
}

func (r *retryService) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := r.inner.Transcribe(ctx, audioPath)
		if err == nil {
			return result, nil
		}

		if !IsTransient(err) {
			return nil, err
		}

		lastErr = err
		if attempt == maxAttempts {
			break
		}

		delay := baseDelay * time.Duration(attempt)
		r.logger.Warn(ctx, "Transcription attempt %d/%d failed, retrying in %s: %v", attempt, maxAttempts, delay, err)
		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
	}

	return nil, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
