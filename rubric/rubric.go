/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubric defines the weighted evaluation criteria applied to
// healthcare-assistant conversations and the pass threshold for the
// overall score.
package rubric

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Criterion names. These match the JSON keys the judge is instructed to
// emit, so renaming one is a wire-format change.
const (
	IntentRecognition   = "intent_recognition"
	ResponseCorrectness = "response_correctness"
	ErrorHandling       = "error_handling"
	ToneAppropriateness = "tone_appropriateness"
	SafetyCompliance    = "safety_compliance"
	ConversationFlow    = "conversation_flow"
)

// weightTolerance is the floating-point slack allowed when checking that
// criterion weights sum to 1.0.
const weightTolerance = 1e-6

// DefaultPassThreshold is the minimum overall score for a passing verdict.
// The threshold is inclusive: exactly 0.80 passes.
const DefaultPassThreshold = 0.80

// Criterion is a single named evaluation dimension with its weight in the
// overall score.
type Criterion struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// Rubric is the fixed, ordered set of criteria plus the pass threshold.
// Construct one at startup and pass it by value into the components that
// need it; it is never mutated.
type Rubric struct {
	criteria  []Criterion
	threshold float64
}

// New validates the given criteria and threshold and returns a Rubric.
// Weights must be non-negative and sum to 1.0 within tolerance, criterion
// names must be non-empty and unique, and the threshold must be in [0,1].
func New(criteria []Criterion, threshold float64) (*Rubric, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("rubric requires at least one criterion")
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("pass threshold %v outside [0,1]", threshold)
	}

	seen := make(map[string]bool, len(criteria))
	var sum float64
	for _, c := range criteria {
		if c.Name == "" {
			return nil, fmt.Errorf("criterion with empty name")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate criterion %q", c.Name)
		}
		seen[c.Name] = true
		if c.Weight < 0 {
			return nil, fmt.Errorf("criterion %q has negative weight %v", c.Name, c.Weight)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return nil, fmt.Errorf("criterion weights sum to %v, want 1.0", sum)
	}

	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return &Rubric{criteria: out, threshold: threshold}, nil
}

// Default returns the healthcare conversation rubric: six criteria with
// fixed domain weights and the 0.80 pass threshold.
func Default() *Rubric {
	r, err := New([]Criterion{
		{Name: IntentRecognition, Weight: 0.15},
		{Name: ResponseCorrectness, Weight: 0.25},
		{Name: ErrorHandling, Weight: 0.15},
		{Name: ToneAppropriateness, Weight: 0.15},
		{Name: SafetyCompliance, Weight: 0.20},
		{Name: ConversationFlow, Weight: 0.10},
	}, DefaultPassThreshold)
	if err != nil {
		// The default rubric is a compile-time constant in all but syntax.
		panic(fmt.Sprintf("default rubric invalid: %v", err))
	}
	return r
}

// rubricFile is the on-disk YAML shape for rubric overrides. Threshold is
// a pointer so an explicit zero survives; only an absent key defaults.
type rubricFile struct {
	Criteria  []Criterion `yaml:"criteria"`
	Threshold *float64    `yaml:"threshold"`
}

// Load reads a rubric override from a YAML file and validates it with the
// same rules as New. Intended for experiments with alternate weightings;
// production runs use Default.
func Load(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rubric file: %w", err)
	}
	var f rubricFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rubric file %s: %w", path, err)
	}
	threshold := DefaultPassThreshold
	if f.Threshold != nil {
		threshold = *f.Threshold
	}
	r, err := New(f.Criteria, threshold)
	if err != nil {
		return nil, fmt.Errorf("rubric file %s: %w", path, err)
	}
	return r, nil
}

// Criteria returns the ordered criterion list. The returned slice is a copy.
func (r *Rubric) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

// Names returns the ordered criterion names.
func (r *Rubric) Names() []string {
	names := make([]string, len(r.criteria))
	for i, c := range r.criteria {
		names[i] = c.Name
	}
	return names
}

// Weight returns the weight for the named criterion, or false if the
// criterion is not part of this rubric.
func (r *Rubric) Weight(name string) (float64, bool) {
	for _, c := range r.criteria {
		if c.Name == name {
			return c.Weight, true
		}
	}
	return 0, false
}

// Threshold returns the inclusive pass threshold.
func (r *Rubric) Threshold() float64 {
	return r.threshold
}

// Len returns the number of criteria.
func (r *Rubric) Len() int {
	return len(r.criteria)
}
