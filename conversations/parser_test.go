/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package conversations_test

import (
	"errors"
	"testing"

	"careline.dev/convoscore/conversations"
)

func TestParse(t *testing.T) {
	t.Parallel()
	p := conversations.NewParser()

	conv, err := p.Parse(conversations.Record{
		ID:    " conv-001 ",
		Title: "Medication refill",
		Text:  "Patient: I need a refill.\nAssistant: Which medication?",
	})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if conv.ID != "conv-001" {
		t.Errorf("ID = %q, want %q (trimmed)", conv.ID, "conv-001")
	}
	if conv.Title != "Medication refill" {
		t.Errorf("Title = %q, want %q", conv.Title, "Medication refill")
	}
	if conv.Transcript == "" {
		t.Error("Transcript is empty")
	}
}

func TestParse_InvalidRecords(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		rec  conversations.Record
	}{{
		name: "empty id",
		rec:  conversations.Record{Title: "t", Text: "x"},
	}, {
		name: "whitespace id",
		rec:  conversations.Record{ID: "   ", Title: "t", Text: "x"},
	}, {
		name: "empty title",
		rec:  conversations.Record{ID: "c1", Text: "x"},
	}, {
		name: "empty transcript",
		rec:  conversations.Record{ID: "c1", Title: "t"},
	}, {
		name: "whitespace transcript",
		rec:  conversations.Record{ID: "c1", Title: "t", Text: "  \n\t "},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := conversations.NewParser()
			_, err := p.Parse(tt.rec)
			if err == nil {
				t.Fatal("expected error")
			}
			var ire *conversations.InvalidRecordError
			if !errors.As(err, &ire) {
				t.Fatalf("expected *InvalidRecordError, got %T: %v", err, err)
			}
		})
	}
}

func TestParse_DuplicateID(t *testing.T) {
	t.Parallel()
	p := conversations.NewParser()

	first := conversations.Record{ID: "c1", Title: "first", Text: "hello"}
	if _, err := p.Parse(first); err != nil {
		t.Fatalf("Parse(first) error: %v", err)
	}

	dup := conversations.Record{ID: "c1", Title: "second", Text: "world"}
	_, err := p.Parse(dup)
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
	var ire *conversations.InvalidRecordError
	if !errors.As(err, &ire) {
		t.Fatalf("expected *InvalidRecordError, got %T: %v", err, err)
	}
	if ire.ID != "c1" {
		t.Errorf("ID = %q, want %q", ire.ID, "c1")
	}
}

func TestParse_SeparateBatches(t *testing.T) {
	t.Parallel()
	rec := conversations.Record{ID: "c1", Title: "t", Text: "x"}

	p1 := conversations.NewParser()
	if _, err := p1.Parse(rec); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// A fresh parser has no memory of earlier batches.
	p2 := conversations.NewParser()
	if _, err := p2.Parse(rec); err != nil {
		t.Fatalf("Parse() in new batch error: %v", err)
	}
}
