/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"strings"

	"careline.dev/convoscore/rubric"
)

// Config selects and authenticates a judge backend. Only the credential
// matching the chosen model family needs to be set.
type Config struct {
	// Model is the judge model identifier. The backend is chosen by
	// prefix: claude-* uses Anthropic, gemini-* uses Google, gpt-* and
	// o-series models use OpenAI.
	Model string

	AnthropicAPIKey string
	GeminiAPIKey    string
	OpenAIAPIKey    string
}

// New creates a Client for the configured model by delegating to the
// matching backend, the same way a deployment would pick a judge per
// environment. A missing credential for the selected backend is reported
// as ErrUnavailable so callers can route to the fallback evaluator
// instead of aborting.
func New(ctx context.Context, cfg Config, r *rubric.Rubric) (Client, error) {
	model := strings.ToLower(cfg.Model)

	switch {
	case strings.HasPrefix(model, "claude-"):
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("%w: no Anthropic API key configured", ErrUnavailable)
		}
		return newClaude(cfg.AnthropicAPIKey, cfg.Model, r), nil

	case strings.HasPrefix(model, "gemini-"):
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("%w: no Gemini API key configured", ErrUnavailable)
		}
		return newGoogle(ctx, cfg.GeminiAPIKey, cfg.Model, r)

	case strings.HasPrefix(model, "gpt-") || oSeries(model):
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("%w: no OpenAI API key configured", ErrUnavailable)
		}
		return newOpenAI(cfg.OpenAIAPIKey, cfg.Model, r), nil

	default:
		return nil, fmt.Errorf("unsupported judge model: %s (expected claude-*, gemini-*, gpt-* or an o-series model)", cfg.Model)
	}
}

// oSeries reports whether the model is an OpenAI reasoning model: "o"
// followed by a digit ("o1", "o3-mini", "o4"). A bare "o" prefix is not
// enough; other vendors ship models starting with the letter.
func oSeries(model string) bool {
	return len(model) >= 2 && model[0] == 'o' && model[1] >= '0' && model[1] <= '9'
}
