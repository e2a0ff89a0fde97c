/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge sends conversations to an external language-model judge
// and returns its raw structured output. The judge is asked to score each
// rubric criterion on a 0-100 scale and to supply strengths, improvements
// and an overall assessment as JSON.
//
// A Client does not interpret or validate the response body beyond
// receiving it; parsing and normalization belong to the scoring package.
package judge

import (
	"context"

	"careline.dev/convoscore/conversations"
)

// Client is the contract for judge backends.
type Client interface {
	// Evaluate sends one conversation to the judge and returns the raw
	// response text. Failures are classified into ErrUnavailable,
	// ErrTimeout or ErrRateLimited; retry policy lives in the batch
	// orchestrator, not here.
	Evaluate(ctx context.Context, conv *conversations.Conversation) (string, error)

	// Model returns the judge model identifier, for logging and metrics.
	Model() string
}

// Generation configuration shared by all backends: low temperature for
// deterministic judgments, output bounded well above the verdict size so
// responses are never truncated.
const (
	judgeTemperature = 0.1
	maxOutputTokens  = 4096
	judgeMeterName   = "careline.convoscore.judge"
)

// wireVerdict is the JSON shape the judge is instructed to emit. It is
// used to derive response schemas for backends with structured output;
// the scoring package still treats the actual payload as untyped until
// validated.
type wireVerdict struct {
	IntentRecognition   float64  `json:"intent_recognition" jsonschema:"required"`
	ResponseCorrectness float64  `json:"response_correctness" jsonschema:"required"`
	ErrorHandling       float64  `json:"error_handling" jsonschema:"required"`
	ToneAppropriateness float64  `json:"tone_appropriateness" jsonschema:"required"`
	SafetyCompliance    float64  `json:"safety_compliance" jsonschema:"required"`
	ConversationFlow    float64  `json:"conversation_flow" jsonschema:"required"`
	OverallAssessment   string   `json:"overall_assessment"`
	Strengths           []string `json:"strengths"`
	Improvements        []string `json:"improvements"`
}
