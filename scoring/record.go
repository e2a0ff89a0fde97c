/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scoring

import (
	"maps"
	"time"

	"careline.dev/convoscore/conversations"
)

// EvaluationResult is the final persisted evaluation entity for one
// conversation. Immutable once built; upserted into the store keyed by
// conversation id.
type EvaluationResult struct {
	ConversationID    string             `json:"conversation_id"`
	ConversationTitle string             `json:"conversation_title"`
	CriterionScores   map[string]float64 `json:"criterion_scores"`
	OverallScore      float64            `json:"overall_score"`
	Passed            bool               `json:"passed"`
	Strengths         []string           `json:"strengths"`
	Improvements      []string           `json:"improvements"`
	OverallAssessment string             `json:"overall_assessment"`
	EvaluatedAt       time.Time          `json:"evaluated_at"`
	Source            Source             `json:"source"`
}

// BuildRecord assembles the evaluation record from the conversation
// identity, the verdict and the scorer output, stamping the evaluation
// time. No external effects; the orchestrator hands the record to the
// store.
func BuildRecord(conv *conversations.Conversation, verdict *Verdict, overall float64, passed bool, src Source, at time.Time) *EvaluationResult {
	scores := make(map[string]float64, len(verdict.Scores))
	maps.Copy(scores, verdict.Scores)

	strengths := make([]string, len(verdict.Strengths))
	copy(strengths, verdict.Strengths)
	improvements := make([]string, len(verdict.Improvements))
	copy(improvements, verdict.Improvements)

	return &EvaluationResult{
		ConversationID:    conv.ID,
		ConversationTitle: conv.Title,
		CriterionScores:   scores,
		OverallScore:      overall,
		Passed:            passed,
		Strengths:         strengths,
		Improvements:      improvements,
		OverallAssessment: verdict.Assessment,
		EvaluatedAt:       at.UTC(),
		Source:            src,
	}
}
