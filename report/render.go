/*
Copyright 2026 Careline, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"io"
	"sort"

	"careline.dev/convoscore/batch"
)

// Render writes the batch report as markdown tables: summary, criterion
// averages, and the ranked results.
func Render(w io.Writer, rep *BatchReport) error {
	fmt.Fprintln(w, "## Batch summary")
	fmt.Fprintln(w)

	summary := createStandardTable([]string{"Total", "Passed", "Pass rate", "Failed", "Average overall"}, w)
	passRate := 0.0
	if rep.Total > 0 {
		passRate = float64(rep.PassedCount) / float64(rep.Total)
	}
	if err := summary.Append([]string{
		fmt.Sprintf("%d", rep.Total),
		fmt.Sprintf("%d", rep.PassedCount),
		fmt.Sprintf("%.1f%%", passRate*100),
		fmt.Sprintf("%d", rep.FailedCount),
		fmt.Sprintf("%.3f", rep.AverageOverall),
	}); err != nil {
		return err
	}
	if err := summary.Render(); err != nil {
		return err
	}

	if len(rep.AverageByCriterion) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "## Criterion averages")
		fmt.Fprintln(w)

		names := make([]string, 0, len(rep.AverageByCriterion))
		for name := range rep.AverageByCriterion {
			names = append(names, name)
		}
		sort.Strings(names)

		criteria := createStandardTable([]string{"Criterion", "Average"}, w)
		for _, name := range names {
			if err := criteria.Append([]string{name, fmt.Sprintf("%.3f", rep.AverageByCriterion[name])}); err != nil {
				return err
			}
		}
		if err := criteria.Render(); err != nil {
			return err
		}
	}

	if len(rep.RankedResults) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "## Ranked results")
		fmt.Fprintln(w)

		ranked := createStandardTable([]string{"Rank", "Conversation", "Title", "Overall", "Passed", "Source"}, w)
		for i, r := range rep.RankedResults {
			passed := "no"
			if r.Passed {
				passed = "yes"
			}
			if err := ranked.Append([]string{
				fmt.Sprintf("%d", i+1),
				r.ConversationID,
				r.ConversationTitle,
				fmt.Sprintf("%.3f", r.OverallScore),
				passed,
				string(r.Source),
			}); err != nil {
				return err
			}
		}
		if err := ranked.Render(); err != nil {
			return err
		}
	}

	return nil
}

// RenderOutcomes writes the per-item failure section so no input is
// silently lost from the report.
func RenderOutcomes(w io.Writer, outcomes []batch.Outcome) error {
	var failed []batch.Outcome
	for _, o := range outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	if len(failed) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Skipped and failed items")
	fmt.Fprintln(w)

	table := createStandardTable([]string{"Conversation", "Title", "Reason"}, w)
	for _, o := range failed {
		if err := table.Append([]string{o.ConversationID, o.Title, o.Reason}); err != nil {
			return err
		}
	}
	return table.Render()
}
