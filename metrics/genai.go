/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry counters for judge model usage.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI records token usage for judge calls. The meter name is unified
// across all judge backends with the model name as a dimension, so Claude,
// Gemini and OpenAI usage land on the same instruments.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
}

// NewGenAI creates a GenAI metrics instance for the given meter name.
// Counter creation failures degrade to no-op counters rather than failing
// the judge.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens sent to the judge"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens returned by the judge"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
	}
}

// RecordTokens records prompt and completion token usage for one judge call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, inputTokens, outputTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	if inputTokens > 0 {
		m.promptTokens.Add(ctx, inputTokens, attrs)
	}
	if outputTokens > 0 {
		m.completionTokens.Add(ctx, outputTokens, attrs)
	}
}
