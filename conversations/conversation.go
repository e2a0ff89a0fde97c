/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package conversations defines the conversation entity and the parser
// that turns raw tabular records into validated conversations.
package conversations

// Record is one raw input row: the three fields the upstream source
// (CSV upload, export, fixture) must provide.
type Record struct {
	ID    string
	Title string
	Text  string
}

// Conversation is a validated, immutable conversation transcript ready
// for evaluation. Construct via Parser.Parse.
type Conversation struct {
	ID         string
	Title      string
	Transcript string
}
