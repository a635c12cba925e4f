package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/photokeeper/internal/telegram"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetriable_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"500", &telegram.APIError{Code: 500, Description: "Internal Server Error"}, true},
		{"503", &telegram.APIError{Code: 503, Description: "Service Unavailable"}, true},
		{"599", &telegram.APIError{Code: 599, Description: "whatever"}, true},
		{"429", &telegram.APIError{Code: 429, Description: "Too Many Requests"}, true},
		{"400", &telegram.APIError{Code: 400, Description: "Bad Request"}, false},
		{"401", &telegram.APIError{Code: 401, Description: "Unauthorized"}, false},
		{"404", &telegram.APIError{Code: 404, Description: "Not Found"}, false},
		{"499", &telegram.APIError{Code: 499, Description: "client closed"}, false},
		{"timeout text", &telegram.APIError{Description: "request Timeout exceeded"}, true},
		{"network text", &telegram.APIError{Description: "Network is unreachable"}, true},
		{"fetch text", errors.New("fetch failed"), true},
		{"plain unknown", errors.New("something odd happened"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetriable(tt.err))
		})
	}
}

func TestDefaultBackoff_DelaySequence(t *testing.T) {
	b := DefaultBackoff(3, 2000*time.Millisecond)

	var delays []time.Duration
	for {
		d, stop := b.Next()
		if stop {
			break
		}
		delays = append(delays, d)
	}

	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, delays)
}

// zeroBackoff allows n retries with no delay and records how many waits
// were consumed.
func zeroBackoff(n int, waits *int) retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		if *waits >= n {
			return 0, true
		}
		*waits++
		return 0, false
	})
}

func TestRun_RetriableExhaustsAttempts(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	waits := 0
	last := &telegram.APIError{Code: 503, Description: "Service Unavailable"}

	_, err := Run(ctx, Options{Backoff: zeroBackoff(3, &waits)}, func(ctx context.Context) (int, error) {
		attempts++
		return 0, last
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts, "1 initial + 3 retries")
	assert.Equal(t, 3, waits)

	var apiErr *telegram.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 503, apiErr.Code)
}

func TestRun_TerminalFailsImmediately(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	waits := 0

	_, err := Run(ctx, Options{Backoff: zeroBackoff(3, &waits)}, func(ctx context.Context) (int, error) {
		attempts++
		return 0, &telegram.APIError{Code: 404, Description: "Not Found"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Zero(t, waits)
}

func TestRun_SucceedsAfterTransientFailures(t *testing.T) {
	ctx := context.Background()

	attempts := 0
	waits := 0

	got, err := Run(ctx, Options{Backoff: zeroBackoff(3, &waits)}, func(ctx context.Context) (string, error) {
		attempts++
		if attempts <= 2 {
			return "", &telegram.APIError{Code: 503, Description: "Service Unavailable"}
		}
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", got)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 2, waits)
}

func TestRun_FirstTrySuccessNoWaits(t *testing.T) {
	ctx := context.Background()

	waits := 0
	got, err := Run(ctx, Options{Backoff: zeroBackoff(3, &waits)}, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Zero(t, waits)
}

func TestRun_ContextCancelledStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	waits := 0
	_, err := Run(ctx, Options{Backoff: zeroBackoff(10, &waits)}, func(ctx context.Context) (int, error) {
		attempts++
		cancel()
		return 0, &telegram.APIError{Code: 503, Description: "Service Unavailable"}
	})

	require.Error(t, err)
	assert.LessOrEqual(t, attempts, 2)
}
