/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package store_test

import (
	"context"
	"testing"

	"careline.dev/convoscore/scoring"
	"careline.dev/convoscore/store"
)

func result(id string, overall float64) *scoring.EvaluationResult {
	return &scoring.EvaluationResult{
		ConversationID: id,
		OverallScore:   overall,
		Source:         scoring.SourceJudged,
	}
}

func TestMemory_PutAndScan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := store.NewMemory()

	for _, r := range []*scoring.EvaluationResult{
		result("c2", 0.7),
		result("c1", 0.9),
		result("c3", 0.5),
	} {
		if err := m.Put(ctx, r); err != nil {
			t.Fatalf("Put(%s) error: %v", r.ConversationID, err)
		}
	}

	got, err := m.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Scan() returned %d records, want 3", len(got))
	}
	// Scan is ordered by conversation id for deterministic output.
	for i, want := range []string{"c1", "c2", "c3"} {
		if got[i].ConversationID != want {
			t.Errorf("Scan()[%d].ConversationID = %q, want %q", i, got[i].ConversationID, want)
		}
	}
}

func TestMemory_PutIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := store.NewMemory()

	if err := m.Put(ctx, result("c1", 0.6)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	// Re-evaluating the same conversation replaces the record.
	if err := m.Put(ctx, result("c1", 0.9)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	if got := m.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	recs, err := m.Scan(ctx)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if recs[0].OverallScore != 0.9 {
		t.Errorf("OverallScore = %v, want the latest write 0.9", recs[0].OverallScore)
	}
}

func TestMemory_EmptyScan(t *testing.T) {
	t.Parallel()
	m := store.NewMemory()
	got, err := m.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Scan() returned %d records, want 0", len(got))
	}
}
