/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the convoscore CLI: it reads a CSV of recorded
// healthcare-assistant conversations, evaluates each against the weighted
// rubric using an external language-model judge (or the deterministic
// fallback when none is configured), and prints the batch report.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"

	"careline.dev/convoscore/batch"
	"careline.dev/convoscore/judge"
	"careline.dev/convoscore/report"
	"careline.dev/convoscore/rubric"
	"careline.dev/convoscore/store"
)

type config struct {
	// JudgeModel selects the judge backend by prefix (claude-*, gemini-*,
	// gpt-*). The matching API key must be set; with no key the batch
	// runs entirely on fallback scores.
	JudgeModel      string `env:"JUDGE_MODEL,default=gemini-2.5-flash"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`

	Workers  int     `env:"WORKERS,default=4"`
	JudgeQPS float64 `env:"JUDGE_QPS,default=2"`

	// RubricFile optionally overrides the default rubric with a YAML file.
	RubricFile string `env:"RUBRIC_FILE"`

	// MetricsPort exposes Prometheus metrics when non-zero.
	MetricsPort int `env:"METRICS_PORT,default=0"`

	// Output is "table" or "json".
	Output string `env:"OUTPUT,default=table"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: convoscore <conversations.csv>")
		os.Exit(1)
	}
	csvPath := os.Args[1]

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	// Invalid rubric configuration is fatal to the whole run; everything
	// after startup degrades per item instead.
	rub := rubric.Default()
	if cfg.RubricFile != "" {
		var err error
		if rub, err = rubric.Load(cfg.RubricFile); err != nil {
			clog.FatalContextf(ctx, "loading rubric: %v", err)
		}
	}

	if cfg.MetricsPort > 0 {
		go serveMetrics(ctx, cfg.MetricsPort)
	}

	client, err := judge.New(ctx, judge.Config{
		Model:           cfg.JudgeModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
	}, rub)
	switch {
	case err == nil:
		clog.InfoContextf(ctx, "Judge configured: %s", client.Model())
	case errors.Is(err, judge.ErrUnavailable):
		clog.WarnContextf(ctx, "No judge configured, using deterministic fallback scores: %v", err)
		client = nil
	default:
		clog.FatalContextf(ctx, "creating judge: %v", err)
	}

	records, err := readRecords(csvPath)
	if err != nil {
		clog.FatalContextf(ctx, "reading conversations: %v", err)
	}
	clog.InfoContextf(ctx, "Evaluating %d conversations from %s", len(records), csvPath)

	st := store.NewMemory()
	orch := batch.New(client, rub, st, batch.Config{
		Workers:  cfg.Workers,
		JudgeQPS: cfg.JudgeQPS,
	})
	outcomes := orch.Run(ctx, records)

	// Recompute the report from the store scan: the report is derived
	// state, reproducible from persisted records alone.
	results, err := st.Scan(ctx)
	if err != nil {
		clog.FatalContextf(ctx, "scanning store: %v", err)
	}
	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
	}
	rep := report.Build(results, failed)

	switch cfg.Output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			clog.FatalContextf(ctx, "encoding report: %v", err)
		}
	case "table":
		if err := report.Render(os.Stdout, rep); err != nil {
			clog.FatalContextf(ctx, "rendering report: %v", err)
		}
		if err := report.RenderOutcomes(os.Stdout, outcomes); err != nil {
			clog.FatalContextf(ctx, "rendering outcomes: %v", err)
		}
	default:
		clog.FatalContextf(ctx, "unknown output format %q (expected table or json)", cfg.Output)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// serveMetrics exposes Prometheus metrics for the duration of the run.
func serveMetrics(ctx context.Context, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	clog.InfoContextf(ctx, "Serving metrics on port %d", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		clog.ErrorContextf(ctx, "metrics server: %v", err)
	}
}
