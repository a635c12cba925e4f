// Package backoff decides which transfer failures are worth retrying and
// runs operations under an exponential retry policy.
package backoff

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/logging"
	"github.com/dmitrijs2005/photokeeper/internal/telegram"
	"github.com/sethvargo/go-retry"
)

// retriablePatterns mark transport-level failures by message when no API
// error code is available (case-insensitive substring match).
var retriablePatterns = []string{"timeout", "network", "fetch failed", "connection refused", "connection reset"}

// IsRetriable classifies an error. Rules, in priority order: API error codes
// 5xx and 429 are retriable; other 4xx are terminal; transport-looking
// messages are retriable; anything unclassified is retriable — blocking a
// user's backup on an unknown failure is worse than one extra attempt.
func IsRetriable(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		code := apiErr.Code
		switch {
		case code >= 500 && code < 600:
			return true
		case code == 429:
			return true
		case code >= 400 && code < 500:
			return false
		}
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retriablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return true
}

// Options control one retry run. When Backoff is nil, an exponential policy
// is built from MaxRetries and BaseDelay (delays of 1x, 2x, 4x... the base).
// Tests inject a zero-delay recording Backoff instead.
type Options struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	Backoff    retry.Backoff
	Logger     logging.Logger
}

// DefaultBackoff is the policy the upload pipeline uses between attempts.
func DefaultBackoff(maxRetries uint64, baseDelay time.Duration) retry.Backoff {
	return retry.WithMaxRetries(maxRetries, retry.NewExponential(baseDelay))
}

// Run executes op, retrying retriable failures per the policy. Terminal
// errors are returned after the first attempt; when retries are exhausted
// the last error is returned. Each wait is logged with the attempt number
// and the computed delay.
func Run[T any](ctx context.Context, opts Options, op func(ctx context.Context) (T, error)) (T, error) {

	b := opts.Backoff
	if b == nil {
		b = DefaultBackoff(opts.MaxRetries, opts.BaseDelay)
	}

	attempt := 0
	b = logDelays(ctx, b, opts.Logger, &attempt)

	var result T
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		var opErr error
		result, opErr = op(ctx)
		if opErr == nil {
			return nil
		}
		if !IsRetriable(opErr) {
			return opErr
		}
		return retry.RetryableError(opErr)
	})

	return result, err
}

// logDelays wraps a backoff so every computed wait is observable.
func logDelays(ctx context.Context, b retry.Backoff, log logging.Logger, attempt *int) retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		delay, stop := b.Next()
		if !stop && log != nil {
			log.Warn(ctx, "transfer attempt failed, retrying",
				"attempt", *attempt, "delay", delay.String())
		}
		return delay, stop
	})
}
