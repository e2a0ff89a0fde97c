/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report computes batch-level statistics over evaluation records
// and renders them for a dashboard or terminal.
package report

import (
	"sort"

	"careline.dev/convoscore/scoring"
)

// BatchReport is the aggregate view of one batch. It is derived state:
// recomputed fresh from evaluation records on demand, never persisted as
// authoritative.
type BatchReport struct {
	Total              int                         `json:"total"`
	PassedCount        int                         `json:"passed_count"`
	FailedCount        int                         `json:"failed_count"`
	AverageOverall     float64                     `json:"average_overall"`
	AverageByCriterion map[string]float64          `json:"average_by_criterion"`
	RankedResults      []*scoring.EvaluationResult `json:"ranked_results"`
}

// Build computes the batch report from successfully produced evaluation
// records. failedCount counts input items that produced no record; they
// are excluded from the statistics but reported alongside them. Pure
// function of its input, safe to recompute from a store scan.
func Build(results []*scoring.EvaluationResult, failedCount int) *BatchReport {
	rep := &BatchReport{
		Total:              len(results),
		FailedCount:        failedCount,
		AverageByCriterion: make(map[string]float64),
		RankedResults:      make([]*scoring.EvaluationResult, len(results)),
	}
	copy(rep.RankedResults, results)

	if len(results) == 0 {
		return rep
	}

	var overallSum float64
	criterionSums := make(map[string]float64)
	criterionCounts := make(map[string]int)
	for _, r := range results {
		overallSum += r.OverallScore
		if r.Passed {
			rep.PassedCount++
		}
		for name, value := range r.CriterionScores {
			criterionSums[name] += value
			criterionCounts[name]++
		}
	}
	rep.AverageOverall = overallSum / float64(len(results))
	for name, sum := range criterionSums {
		rep.AverageByCriterion[name] = sum / float64(criterionCounts[name])
	}

	// Rank by overall score descending; ties broken by conversation id
	// ascending so the ordering is deterministic.
	sort.SliceStable(rep.RankedResults, func(i, j int) bool {
		a, b := rep.RankedResults[i], rep.RankedResults[j]
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		return a.ConversationID < b.ConversationID
	})

	return rep
}
