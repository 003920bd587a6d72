package lichess

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/example/arbiter/internal/config"
	"github.com/example/arbiter/internal/ports/secondary"
)

// retryableStatuses are the transient responses worth another attempt.
// Everything else is final on the first response.
var retryableStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// RetryPolicy bounds repeated attempts of one outbound call: a fixed
// attempt ceiling with capped exponential backoff between attempts.
type RetryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewRetryPolicy builds a policy from the configured retry bounds.
func NewRetryPolicy(cfg config.Retry) RetryPolicy {
	return RetryPolicy{
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
	}
}

// Do runs one outbound call under the policy. A fresh request is built for
// every attempt since request bodies are single-use. Transport errors and
// retryable statuses consume attempts; once the budget is exhausted the
// call fails with ErrRemoteUnavailable.
func (p RetryPolicy) Do(ctx context.Context, build func() (*http.Request, error), client *http.Client) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.baseDelay
	bo.MaxInterval = p.maxDelay
	// The attempt ceiling is the only budget; no wall-clock cutoff.
	bo.MaxElapsedTime = 0
	bo.Reset()

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		req, err := build()
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}

		resp, err := client.Do(req)
		switch {
		case err != nil:
			lastErr = err
		case retryableStatuses[resp.StatusCode]:
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			// Drain so the connection can be reused.
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
		default:
			return resp, nil
		}

		if attempt == p.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(bo.NextBackOff()):
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %v",
		secondary.ErrRemoteUnavailable, p.maxAttempts, lastErr)
}
