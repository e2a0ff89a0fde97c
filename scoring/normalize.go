/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package scoring turns raw judge output into validated, weighted,
// explainable scores. It is the only place untyped judge data is allowed:
// everything downstream of Normalize works with typed verdicts.
package scoring

import (
	"encoding/json"
	"errors"
	"fmt"

	"careline.dev/convoscore/rubric"
)

// ErrMalformed reports judge output that cannot be turned into a full
// criterion score set: unparseable JSON, a missing criterion, or a
// non-numeric score. Malformed output routes the conversation to the
// fallback evaluator; it is never retried.
var ErrMalformed = errors.New("malformed judge output")

// percentScaleCutoff decides how to read the judge's scores. The judge is
// instructed to use 0-100, so any score above this cutoff marks the whole
// set as percent-scaled; a set entirely at or below it is taken as already
// normalized to [0,1].
const percentScaleCutoff = 1.5

// Verdict is a validated, normalized judge verdict: one score in [0,1]
// per rubric criterion plus the qualitative text.
type Verdict struct {
	Scores       map[string]float64
	Strengths    []string
	Improvements []string
	Assessment   string
}

// Normalize parses raw judge output and produces a Verdict covering
// exactly the rubric's criteria. Scores on the 0-100 scale are divided by
// 100; values outside [0,1] are clamped to the nearest bound rather than
// rejected, since judges occasionally emit slightly out-of-range values.
// Missing qualitative text is defaulted, not fatal.
func Normalize(raw string, r *rubric.Rubric) (*Verdict, error) {
	var blob map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &blob); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	scores := make(map[string]float64, r.Len())
	percent := false
	for _, name := range r.Names() {
		v, ok := blob[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing criterion %q", ErrMalformed, name)
		}
		f, ok := asFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: criterion %q is not numeric (%T)", ErrMalformed, name, v)
		}
		if f > percentScaleCutoff {
			percent = true
		}
		scores[name] = f
	}

	for name, f := range scores {
		if percent {
			f /= 100
		}
		scores[name] = clamp01(f)
	}

	return &Verdict{
		Scores:       scores,
		Strengths:    asStrings(blob["strengths"]),
		Improvements: asStrings(blob["improvements"]),
		Assessment:   asString(blob["overall_assessment"]),
	}, nil
}

// clamp01 clamps v into [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// asFloat accepts the numeric types json.Unmarshal can produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asStrings coerces a JSON array into a string slice, dropping non-string
// entries. Absent or malformed text lists default to empty.
func asStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// asString coerces a JSON value into a string, defaulting to empty.
func asString(v any) string {
	s, _ := v.(string)
	return s
}
