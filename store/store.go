/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package store defines the persistence contract for evaluation records.
// The engine only needs an idempotent upsert and a scan; the backing
// technology belongs to the caller.
package store

import (
	"context"

	"careline.dev/convoscore/scoring"
)

// Interface is the store contract the batch orchestrator and report
// aggregator depend on.
type Interface interface {
	// Put upserts the record keyed by its conversation id. Re-evaluating
	// a conversation overwrites its previous record.
	Put(ctx context.Context, rec *scoring.EvaluationResult) error

	// Scan returns every stored record, ordered by conversation id, for
	// report recomputation.
	Scan(ctx context.Context) ([]*scoring.EvaluationResult, error)
}
