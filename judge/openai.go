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
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"careline.dev/convoscore/conversations"
	"careline.dev/convoscore/metrics"
	"careline.dev/convoscore/rubric"
	"careline.dev/convoscore/schema"
)

// oai implements Client using the OpenAI API with a JSON-schema response
// format derived from the verdict wire shape.
type oai struct {
	client openai.Client
	model  string
	system string
	genai  *metrics.GenAI
}

// newOpenAI creates an OpenAI judge instance.
func newOpenAI(apiKey, model string, r *rubric.Rubric) Client {
	return &oai{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		system: systemInstruction(r),
		genai:  metrics.NewGenAI(judgeMeterName),
	}
}

// Model implements Client.
func (o *oai) Model() string { return o.model }

// Evaluate implements Client.
func (o *oai) Evaluate(ctx context.Context, conv *conversations.Conversation) (string, error) {
	log := clog.FromContext(ctx)

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.model),
		Temperature: openai.Float(judgeTemperature),
		MaxTokens:   openai.Int(maxOutputTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(o.system),
			openai.UserMessage(userPrompt(conv)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "conversation_verdict",
					Description: openai.String("Weighted per-criterion evaluation of a healthcare conversation"),
					Schema:      schema.ReflectType[wireVerdict](),
				},
			},
		},
	})
	if err != nil {
		var apierr *openai.Error
		status := 0
		if errors.As(err, &apierr) {
			status = apierr.StatusCode
		}
		return "", Classify(status, fmt.Errorf("openai completion: %w", err))
	}

	o.genai.RecordTokens(ctx, o.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
	}

	log.With("model", o.model).
		With("conversation", conv.ID).
		With("response_length", len(text)).
		Info("Judge call complete")

	return text, nil
}
