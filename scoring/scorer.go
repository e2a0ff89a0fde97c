/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scoring

import (
	"errors"
	"fmt"

	"careline.dev/convoscore/rubric"
)

// ErrIncompleteScoring reports a criterion score set that does not cover
// the full rubric. The validator and fallback contracts make this
// unreachable in practice; it is a defensive check, fatal for the item
// and never silently defaulted.
var ErrIncompleteScoring = errors.New("incomplete scoring")

// Score computes the weighted overall score and pass verdict for a full
// criterion score set. Pure, no side effects. The threshold comparison is
// inclusive: an overall score exactly at the threshold passes.
func Score(r *rubric.Rubric, scores map[string]float64) (overall float64, passed bool, err error) {
	for _, name := range r.Names() {
		value, ok := scores[name]
		if !ok {
			return 0, false, fmt.Errorf("%w: missing criterion %q", ErrIncompleteScoring, name)
		}
		weight, _ := r.Weight(name)
		overall += weight * value
	}
	return overall, overall >= r.Threshold(), nil
}
