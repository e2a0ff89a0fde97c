/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"careline.dev/convoscore/conversations"
)

// Column aliases accepted in the CSV header, matching the formats the
// upstream exporters produce.
var (
	idColumns    = []string{"conversation_id", "id"}
	titleColumns = []string{"conversation_title", "title"}
	textColumns  = []string{"conversation", "conversation_text", "transcript"}
)

// readRecords loads raw conversation records from a CSV file. Validation
// beyond locating the three columns is the parser's job.
func readRecords(path string) ([]conversations.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	idIdx := columnIndex(header, idColumns)
	titleIdx := columnIndex(header, titleColumns)
	textIdx := columnIndex(header, textColumns)
	if idIdx < 0 || titleIdx < 0 || textIdx < 0 {
		return nil, fmt.Errorf("CSV header %v missing id, title or conversation column", header)
	}

	var records []conversations.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		records = append(records, conversations.Record{
			ID:    field(row, idIdx),
			Title: field(row, titleIdx),
			Text:  field(row, textIdx),
		})
	}
	return records, nil
}

// columnIndex finds the first header cell matching any of the aliases,
// case-insensitively.
func columnIndex(header []string, aliases []string) int {
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range aliases {
			if cell == alias {
				return i
			}
		}
	}
	return -1
}

// field returns the row cell at idx, tolerating short rows.
func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
