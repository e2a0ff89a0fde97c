/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package conversations

import (
	"fmt"
	"strings"
)

// InvalidRecordError reports an input record that cannot become a
// Conversation. The record is skipped and the reason attached to the
// batch outcome; it never aborts the batch.
type InvalidRecordError struct {
	ID     string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid record: %s", e.Reason)
	}
	return fmt.Sprintf("invalid record %q: %s", e.ID, e.Reason)
}

// Parser validates raw records into Conversations. A Parser is scoped to
// one batch: it remembers every id it has accepted so that duplicate ids
// are rejected rather than silently overwriting an earlier conversation.
// Not safe for concurrent use; the orchestrator parses sequentially.
type Parser struct {
	seen map[string]bool
}

// NewParser returns a Parser with an empty id set.
func NewParser() *Parser {
	return &Parser{seen: make(map[string]bool)}
}

// Parse validates a single record. It fails with *InvalidRecordError when
// the id or title is empty, when the transcript is empty after trimming,
// or when the id duplicates one already accepted in this batch.
func (p *Parser) Parse(rec Record) (*Conversation, error) {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return nil, &InvalidRecordError{Reason: "empty conversation id"}
	}
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		return nil, &InvalidRecordError{ID: id, Reason: "empty title"}
	}
	transcript := strings.TrimSpace(rec.Text)
	if transcript == "" {
		return nil, &InvalidRecordError{ID: id, Reason: "empty transcript"}
	}
	if p.seen[id] {
		return nil, &InvalidRecordError{ID: id, Reason: "duplicate conversation id"}
	}
	p.seen[id] = true

	return &Conversation{
		ID:         id,
		Title:      title,
		Transcript: transcript,
	}, nil
}
