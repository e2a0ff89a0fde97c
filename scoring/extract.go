/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scoring

import "strings"

// extractJSON pulls the JSON payload out of a judge response that may be
// wrapped in markdown code fences. Judges are told not to fence their
// output, but they occasionally do anyway, so the validator tolerates it.
func extractJSON(responseText string) string {
	// Prefer an explicit ```json block when one is present.
	if inner, ok := fencedBlock(responseText); ok {
		return inner
	}

	text := strings.TrimSpace(responseText)
	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	// Bare fences. These trims are no-ops when the markers are absent.
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// fencedBlock returns the content of the first ```json ... ``` block, if any.
func fencedBlock(text string) (string, bool) {
	var sb strings.Builder
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case !inBlock && line == "```json":
			inBlock = true
		case inBlock && line == "```":
			return strings.TrimSpace(sb.String()), true
		case inBlock:
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(line)
		}
	}
	if inBlock {
		// Unterminated block: return what we collected.
		return strings.TrimSpace(sb.String()), true
	}
	return "", false
}
