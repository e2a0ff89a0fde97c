/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"

	"careline.dev/convoscore/conversations"
	"careline.dev/convoscore/metrics"
	"careline.dev/convoscore/rubric"
)

// claude implements Client using the Anthropic API.
type claude struct {
	client anthropic.Client
	model  string
	system string
	genai  *metrics.GenAI
}

// newClaude creates a Claude judge instance.
func newClaude(apiKey, model string, r *rubric.Rubric) Client {
	return &claude{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		system: systemInstruction(r),
		genai:  metrics.NewGenAI(judgeMeterName),
	}
}

// Model implements Client.
func (c *claude) Model() string { return c.model }

// Evaluate implements Client.
func (c *claude) Evaluate(ctx context.Context, conv *conversations.Conversation) (string, error) {
	log := clog.FromContext(ctx)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxOutputTokens,
		Temperature: anthropic.Float(judgeTemperature),
		System:      []anthropic.TextBlockParam{{Text: c.system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt(conv))),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		status := 0
		if errors.As(err, &apierr) {
			status = apierr.StatusCode
		}
		return "", Classify(status, fmt.Errorf("claude message: %w", err))
	}

	c.genai.RecordTokens(ctx, c.model, msg.Usage.InputTokens, msg.Usage.OutputTokens)

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
		}
	}

	log.With("model", c.model).
		With("conversation", conv.ID).
		With("response_length", len(text)).
		Info("Judge call complete")

	return text, nil
}
