package tavily

import (
	"context"
	"time"
)

// DefaultRetryDelays returns the backoff delays between search attempts: 500ms, 1s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// WithRetryDelays sets the waits between attempts. Passing no delays
// disables retries.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(s *Searcher) {
		s.retryDelays = delays
	}
}

// attemptFunc performs one request. retry reports whether a failure is
// transient.
type attemptFunc func(ctx context.Context) (retry bool, err error)

// withRetry runs attempt once plus once per delay, stopping at the first
// success or permanent failure.
func withRetry(ctx context.Context, delays []time.Duration, attempt attemptFunc) error {
	var lastErr error
	for i := 0; i <= len(delays); i++ {
		retry, err := attempt(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || i == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[i]):
		}
	}
	return lastErr
}
