/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"context"
	"sort"
	"sync"

	"careline.dev/convoscore/scoring"
)

// Memory is an in-memory Interface implementation used by the CLI and
// tests. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*scoring.EvaluationResult
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]*scoring.EvaluationResult)}
}

// Put implements Interface.
func (m *Memory) Put(_ context.Context, rec *scoring.EvaluationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.ConversationID] = rec
	return nil
}

// Scan implements Interface.
func (m *Memory) Scan(_ context.Context) ([]*scoring.EvaluationResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*scoring.EvaluationResult, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ConversationID < out[j].ConversationID
	})
	return out, nil
}

// Len returns the number of stored records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
