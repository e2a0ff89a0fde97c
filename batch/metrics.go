/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "convoscore_evaluations_total",
		Help: "Conversations evaluated, by scoring source.",
	}, []string{"source"})

	failuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "convoscore_failures_total",
		Help: "Conversations that could not produce a persisted record, by stage.",
	}, []string{"stage"})
)
