/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scoring

import (
	"context"

	"github.com/chainguard-dev/clog"

	"careline.dev/convoscore/conversations"
	"careline.dev/convoscore/judge"
	"careline.dev/convoscore/rubric"
)

// Source tags which path produced an evaluation's scores.
type Source string

const (
	// SourceJudged means the external language-model judge scored the
	// conversation.
	SourceJudged Source = "judged"

	// SourceFallback means the deterministic fallback evaluator produced
	// the scores; they carry no quality signal.
	SourceFallback Source = "fallback"
)

// Provider produces a normalized verdict for a conversation. The
// orchestrator selects one variant per item: judged when the judge is
// reachable, fallback otherwise.
type Provider interface {
	Evaluate(ctx context.Context, conv *conversations.Conversation) (*Verdict, error)
	Source() Source
}

// JudgedProvider scores conversations through the external judge and
// validates the response.
type JudgedProvider struct {
	client judge.Client
	rubric *rubric.Rubric
}

// NewJudgedProvider wires a judge client to the rubric's validation rules.
func NewJudgedProvider(client judge.Client, r *rubric.Rubric) *JudgedProvider {
	return &JudgedProvider{client: client, rubric: r}
}

// Source implements Provider.
func (p *JudgedProvider) Source() Source { return SourceJudged }

// Evaluate implements Provider. Judge transport errors pass through
// unwrapped so the orchestrator can apply its retry policy; malformed
// output is logged with the raw payload for diagnosis and reported as
// ErrMalformed.
func (p *JudgedProvider) Evaluate(ctx context.Context, conv *conversations.Conversation) (*Verdict, error) {
	raw, err := p.client.Evaluate(ctx, conv)
	if err != nil {
		return nil, err
	}

	verdict, err := Normalize(raw, p.rubric)
	if err != nil {
		clog.FromContext(ctx).
			With("conversation", conv.ID).
			With("raw_payload", raw).
			Warn("Malformed judge output")
		return nil, err
	}
	return verdict, nil
}

// FallbackScore is the sentinel value the fallback evaluator assigns to
// every criterion. It means "not actually judged", not "mediocre": records
// carrying it are tagged SourceFallback and should be re-evaluated once a
// judge is available.
const FallbackScore = 0.5

// FallbackProvider is the deterministic stand-in scorer used when the
// judge is unavailable or misconfigured. It keeps the pipeline total: a
// batch run never halts for lack of judge access.
type FallbackProvider struct {
	rubric *rubric.Rubric
}

// NewFallbackProvider returns a fallback evaluator for the given rubric.
func NewFallbackProvider(r *rubric.Rubric) *FallbackProvider {
	return &FallbackProvider{rubric: r}
}

// Source implements Provider.
func (p *FallbackProvider) Source() Source { return SourceFallback }

// Evaluate implements Provider. It is a pure function of the conversation:
// the same input always yields an identical verdict.
func (p *FallbackProvider) Evaluate(_ context.Context, _ *conversations.Conversation) (*Verdict, error) {
	scores := make(map[string]float64, p.rubric.Len())
	for _, name := range p.rubric.Names() {
		scores[name] = FallbackScore
	}
	return &Verdict{
		Scores:       scores,
		Strengths:    []string{},
		Improvements: []string{},
		Assessment:   "Not judged: deterministic fallback scores assigned because no judge was available.",
	}, nil
}
