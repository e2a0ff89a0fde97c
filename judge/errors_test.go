/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"careline.dev/convoscore/judge"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	backendErr := errors.New("backend said no")

	tests := []struct {
		name   string
		status int
		err    error
		want   error
	}{{
		name: "nil error",
	}, {
		name:   "rate limited",
		status: http.StatusTooManyRequests,
		err:    backendErr,
		want:   judge.ErrRateLimited,
	}, {
		name:   "request timeout",
		status: http.StatusRequestTimeout,
		err:    backendErr,
		want:   judge.ErrTimeout,
	}, {
		name:   "gateway timeout",
		status: http.StatusGatewayTimeout,
		err:    backendErr,
		want:   judge.ErrTimeout,
	}, {
		name:   "deadline exceeded",
		status: http.StatusInternalServerError,
		err:    fmt.Errorf("call failed: %w", context.DeadlineExceeded),
		want:   judge.ErrTimeout,
	}, {
		name:   "server error",
		status: http.StatusInternalServerError,
		err:    backendErr,
		want:   judge.ErrUnavailable,
	}, {
		name:   "bad gateway",
		status: http.StatusBadGateway,
		err:    backendErr,
		want:   judge.ErrUnavailable,
	}, {
		name: "no status means never reached the service",
		err:  backendErr,
		want: judge.ErrUnavailable,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := judge.Classify(tt.status, tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("Classify() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
			if !errors.Is(got, tt.err) && !errors.Is(tt.err, context.DeadlineExceeded) {
				t.Errorf("Classify() should wrap the original error, got %v", got)
			}
		})
	}
}

func TestClassify_ClientErrorPassesThrough(t *testing.T) {
	t.Parallel()
	// A 400 is a request problem, not a transient condition; it keeps its
	// original identity so it is neither retried nor treated as downtime.
	badReq := errors.New("invalid request body")
	got := judge.Classify(http.StatusBadRequest, badReq)
	if !errors.Is(got, badReq) {
		t.Fatalf("Classify() = %v, want the original error", got)
	}
	if judge.Retryable(got) {
		t.Error("Retryable() = true for a 400, want false")
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{{
		name: "rate limited",
		err:  fmt.Errorf("wrapping: %w", judge.ErrRateLimited),
		want: true,
	}, {
		name: "timeout",
		err:  judge.ErrTimeout,
		want: true,
	}, {
		name: "unavailable",
		err:  judge.ErrUnavailable,
		want: false,
	}, {
		name: "arbitrary",
		err:  errors.New("boom"),
		want: false,
	}, {
		name: "nil",
		want: false,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := judge.Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNew_MissingCredential(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		model string
	}{{
		name:  "claude without key",
		model: "claude-sonnet-4-20250514",
	}, {
		name:  "gemini without key",
		model: "gemini-2.5-flash",
	}, {
		name:  "gpt without key",
		model: "gpt-4o",
	}, {
		name:  "o-series without key",
		model: "o3-mini",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := judge.New(context.Background(), judge.Config{Model: tt.model}, nil)
			if !errors.Is(err, judge.ErrUnavailable) {
				t.Errorf("New() error = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestNew_UnsupportedModel(t *testing.T) {
	t.Parallel()
	// "ollama-3" starts with "o" but is not an o-series model; it must
	// not route to the OpenAI backend.
	for _, model := range []string{"llama-3", "ollama-3", "o"} {
		_, err := judge.New(context.Background(), judge.Config{Model: model, OpenAIAPIKey: "key"}, nil)
		if err == nil {
			t.Errorf("New(%q): expected error for unsupported model", model)
			continue
		}
		if errors.Is(err, judge.ErrUnavailable) {
			t.Errorf("New(%q): unsupported model should not look like unavailability: %v", model, err)
		}
	}
}
