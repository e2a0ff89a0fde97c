/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package batch drives the evaluation of a batch of conversations:
// parse, judge (with retry and a shared rate limit), score, persist,
// and record a per-item outcome in input order.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"careline.dev/convoscore/conversations"
	"careline.dev/convoscore/judge"
	"careline.dev/convoscore/retry"
	"careline.dev/convoscore/rubric"
	"careline.dev/convoscore/scoring"
	"careline.dev/convoscore/store"
)

// State is a conversation's position in the evaluation pipeline.
type State string

const (
	StatePending    State = "pending"
	StateParsing    State = "parsing"
	StateEvaluating State = "evaluating"
	StateScored     State = "scored"
	StatePersisted  State = "persisted"
	StateFailed     State = "failed"
)

// Outcome is the terminal status of one input record. The batch result is
// the ordered sequence of outcomes for every input, in input order.
type Outcome struct {
	ConversationID string
	Title          string
	State          State
	Source         scoring.Source

	// Result is the built evaluation record. It stays attached even when
	// the store write failed, so persistence can be retried without
	// re-judging the conversation.
	Result *scoring.EvaluationResult

	// Reason describes the failure when State is StateFailed.
	Reason string
}

// Failed reports whether the item ended in a failure state.
func (o Outcome) Failed() bool { return o.State == StateFailed }

// Config tunes the orchestrator's concurrency and retry behavior.
type Config struct {
	// Workers bounds concurrent judge calls (default 4).
	Workers int
	// JudgeQPS is the shared judge call rate across all workers; the
	// judge's limit is per account, not per worker (default 2).
	JudgeQPS float64
	// Retry controls backoff for rate-limited and timed-out judge calls.
	Retry retry.Config
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.JudgeQPS <= 0 {
		c.JudgeQPS = 2
	}
	if c.Retry == (retry.Config{}) {
		c.Retry = retry.DefaultConfig()
	}
	return c
}

// Orchestrator runs evaluation batches. Construct with New; safe to reuse
// across batches.
type Orchestrator struct {
	judged   *scoring.JudgedProvider
	fallback *scoring.FallbackProvider
	rubric   *rubric.Rubric
	store    store.Interface
	limiter  *rate.Limiter
	cfg      Config
	now      func() time.Time
}

// New creates an Orchestrator. client may be nil when no judge is
// configured; every conversation then takes the fallback path.
func New(client judge.Client, r *rubric.Rubric, st store.Interface, cfg Config) *Orchestrator {
	cfg = cfg.withDefaults()

	o := &Orchestrator{
		fallback: scoring.NewFallbackProvider(r),
		rubric:   r,
		store:    st,
		limiter:  rate.NewLimiter(rate.Limit(cfg.JudgeQPS), 1),
		cfg:      cfg,
		now:      time.Now,
	}
	if client != nil {
		o.judged = scoring.NewJudgedProvider(client, r)
	}
	return o
}

// Run evaluates the batch and returns one outcome per input record,
// preserving input order regardless of judge call completion order.
// Individual failures never abort the batch; cancellation stops new
// dispatches and marks unfinished items failed.
func (o *Orchestrator) Run(ctx context.Context, records []conversations.Record) []Outcome {
	log := clog.FromContext(ctx)
	outcomes := make([]Outcome, len(records))

	// Parse sequentially so duplicate-id rejection is deterministic:
	// the first occurrence wins, later ones are rejected.
	parser := conversations.NewParser()
	convs := make([]*conversations.Conversation, len(records))
	for i, rec := range records {
		outcomes[i] = Outcome{ConversationID: rec.ID, Title: rec.Title, State: StateParsing}
		conv, err := parser.Parse(rec)
		if err != nil {
			outcomes[i].State = StateFailed
			outcomes[i].Reason = err.Error()
			failuresTotal.WithLabelValues("parse").Inc()
			log.With("conversation", rec.ID).With("error", err.Error()).Warn("Skipping invalid record")
			continue
		}
		convs[i] = conv
		outcomes[i].ConversationID = conv.ID
		outcomes[i].Title = conv.Title
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)
	for i := range records {
		if convs[i] == nil {
			continue
		}
		g.Go(func() error {
			o.evaluate(gctx, convs[i], &outcomes[i])
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// evaluate drives a single conversation through
// Evaluating -> Scored -> Persisted, or to Failed.
func (o *Orchestrator) evaluate(ctx context.Context, conv *conversations.Conversation, out *Outcome) {
	log := clog.FromContext(ctx).With("conversation", conv.ID)

	// Cancellation stops new work before any evaluation happens; this
	// covers the fallback path, which never touches the rate limiter.
	if ctx.Err() != nil {
		out.State = StateFailed
		out.Reason = "cancelled"
		failuresTotal.WithLabelValues("cancelled").Inc()
		return
	}
	out.State = StateEvaluating

	verdict, src, err := o.verdict(ctx, conv)
	if err != nil {
		// Only cancellation reaches here; judge failures fall back.
		out.State = StateFailed
		out.Reason = "cancelled"
		failuresTotal.WithLabelValues("cancelled").Inc()
		return
	}

	overall, passed, err := scoring.Score(o.rubric, verdict.Scores)
	if err != nil {
		out.State = StateFailed
		out.Reason = err.Error()
		failuresTotal.WithLabelValues("score").Inc()
		log.With("error", err.Error()).Error("Scoring invariant violated")
		return
	}

	rec := scoring.BuildRecord(conv, verdict, overall, passed, src, o.now())
	out.Result = rec
	out.Source = src
	out.State = StateScored
	evaluationsTotal.WithLabelValues(string(src)).Inc()

	if err := o.store.Put(ctx, rec); err != nil {
		out.State = StateFailed
		out.Reason = fmt.Sprintf("store write failed: %v", err)
		failuresTotal.WithLabelValues("persist").Inc()
		log.With("error", err.Error()).Error("Failed to persist evaluation record")
		return
	}
	out.State = StatePersisted

	log.With("overall_score", overall).
		With("passed", passed).
		With("source", string(src)).
		Info("Conversation evaluated")
}

// verdict obtains a normalized verdict for the conversation: judged when
// a judge is configured and reachable, fallback otherwise. Rate-limited
// and timed-out judge calls are retried with backoff before falling back;
// unavailability and malformed output fall back immediately. The returned
// error is non-nil only on cancellation.
func (o *Orchestrator) verdict(ctx context.Context, conv *conversations.Conversation) (*scoring.Verdict, scoring.Source, error) {
	if o.judged != nil {
		verdict, err := retry.WithBackoff(ctx, o.cfg.Retry, "judge_evaluate", judge.Retryable, func() (*scoring.Verdict, error) {
			// Shared limiter: the judge quota is per account, so every
			// attempt from every worker waits on the same gate.
			if err := o.limiter.Wait(ctx); err != nil {
				return nil, err
			}
			return o.judged.Evaluate(ctx, conv)
		})
		if err == nil {
			return verdict, scoring.SourceJudged, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		clog.FromContext(ctx).
			With("conversation", conv.ID).
			With("error", err.Error()).
			Warn("Judge evaluation failed, using fallback scores")
	}

	verdict, err := o.fallback.Evaluate(ctx, conv)
	if err != nil {
		// The fallback contract makes this unreachable.
		return nil, "", err
	}
	return verdict, scoring.SourceFallback, nil
}
