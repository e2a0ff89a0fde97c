/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"

	"careline.dev/convoscore/conversations"
	"careline.dev/convoscore/metrics"
	"careline.dev/convoscore/rubric"
)

// google implements Client using Google Gemini.
type google struct {
	client *genai.Client
	model  string
	system string
	schema *genai.Schema
	genai  *metrics.GenAI
}

// newGoogle creates a Gemini judge instance using API-key authentication.
func newGoogle(ctx context.Context, apiKey, model string, r *rubric.Rubric) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	return &google{
		client: client,
		model:  model,
		system: systemInstruction(r),
		schema: verdictSchema(r),
		genai:  metrics.NewGenAI(judgeMeterName),
	}, nil
}

// verdictSchema constrains Gemini's structured output to the verdict
// shape: one numeric score per rubric criterion plus the qualitative
// text fields. Scores are required; text is optional by design, the
// validator defaults it.
func verdictSchema(r *rubric.Rubric) *genai.Schema {
	props := map[string]*genai.Schema{
		"overall_assessment": {
			Type:        "string",
			Description: "Brief overall evaluation of the conversation",
		},
		"strengths": {
			Type:  "array",
			Items: &genai.Schema{Type: "string"},
		},
		"improvements": {
			Type:  "array",
			Items: &genai.Schema{Type: "string"},
		},
	}
	for _, name := range r.Names() {
		props[name] = &genai.Schema{
			Type:        "number",
			Description: fmt.Sprintf("Score 0-100 for %s", name),
		}
	}
	return &genai.Schema{
		Type:       "object",
		Properties: props,
		Required:   r.Names(),
	}
}

// Model implements Client.
func (g *google) Model() string { return g.model }

// Evaluate implements Client.
func (g *google) Evaluate(ctx context.Context, conv *conversations.Conversation) (string, error) {
	log := clog.FromContext(ctx)

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(float32(judgeTemperature)),
		MaxOutputTokens: maxOutputTokens,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: g.system}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.schema,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(userPrompt(conv)), config)
	if err != nil {
		var apiErr genai.APIError
		status := 0
		if errors.As(err, &apiErr) {
			status = apiErr.Code
		}
		return "", Classify(status, fmt.Errorf("gemini generate: %w", err))
	}

	if resp.UsageMetadata != nil {
		g.genai.RecordTokens(ctx, g.model,
			int64(resp.UsageMetadata.PromptTokenCount),
			int64(resp.UsageMetadata.CandidatesTokenCount))
	}

	text := resp.Text()
	log.With("model", g.model).
		With("conversation", conv.ID).
		With("response_length", len(text)).
		Info("Judge call complete")

	return text, nil
}

// ptr returns a pointer to the given value.
func ptr[T any](v T) *T {
	return &v
}
