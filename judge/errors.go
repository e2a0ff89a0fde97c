/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the judge failure taxonomy. The batch orchestrator
// retries ErrRateLimited and ErrTimeout with backoff; ErrUnavailable
// routes straight to the fallback evaluator.
var (
	// ErrUnavailable means the judge cannot be reached or is not
	// configured at all.
	ErrUnavailable = errors.New("judge unavailable")

	// ErrTimeout means the judge did not answer in time.
	ErrTimeout = errors.New("judge timeout")

	// ErrRateLimited means the judge signalled quota exhaustion or
	// backoff. It is surfaced rather than retried internally.
	ErrRateLimited = errors.New("judge rate limited")
)

// Classify maps a backend failure onto the judge error taxonomy. status
// is the HTTP status reported by the provider SDK, or 0 when the failure
// never reached the service (connection refused, DNS, etc.).
func Classify(status int, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case status == 0 || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		// 4xx other than 429/408: a request-shaped problem, not transient.
		return err
	}
}

// Retryable reports whether the error should be retried with backoff.
// Only rate limits and timeouts qualify.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTimeout)
}
