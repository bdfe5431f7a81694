// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/session"
)

// =============================================================================
// STATS COMMAND
// =============================================================================

func runStats(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	if statsTotal && statsSet != 0 {
		fail("--set and --total are mutually exclusive")
	}
	if statsSet < 0 {
		fail("set number must be positive, got %d", statsSet)
	}

	filter := ledger.AllSets
	withBreakdown := false
	switch {
	case statsTotal:
		// All-time totals only.
	case statsSet != 0:
		filter = statsSet
	default:
		withBreakdown = true
	}

	printStats(os.Stdout, app.session, filter, withBreakdown)
}

// printStats writes the player blocks and the opponent block. The same
// aggregation feeds the CSV export, so the numbers always agree.
func printStats(w io.Writer, sess *session.Session, filter int, withBreakdown bool) {
	printed := false
	for _, p := range sess.Players() {
		stats := sess.Aggregate(p.ID, filter)
		if !ledger.HasActivity(stats) {
			continue
		}
		printed = true

		fmt.Fprintf(w, "%s\n", p.Name)
		printStatBlock(w, "  ", scopeLabel(filter), stats)
		if withBreakdown {
			for _, set := range sess.ActiveSets(p.ID) {
				printStatBlock(w, "  ", fmt.Sprintf("set %d", set), sess.Aggregate(p.ID, set))
			}
		}
		fmt.Fprintln(w)
	}

	if opp := printOpponentBlock(w, sess, filter, withBreakdown); opp {
		printed = true
	}
	if !printed {
		fmt.Fprintln(w, "No recorded statistics.")
	}
}

func printStatBlock(w io.Writer, indent, scope string, stats ledger.SetStats) {
	fmt.Fprintf(w, "%s%-8s Points %-3d Mistakes %-3d |", indent, scope,
		ledger.Winners(stats), ledger.Errors(stats))
	for _, k := range ledger.PlayerActions {
		t := stats[k]
		fmt.Fprintf(w, " %s %d/%d/%d", k, t.Positive, t.Neutral, t.Negative)
	}
	fmt.Fprintln(w)
}

// printOpponentBlock reports whether anything was printed.
func printOpponentBlock(w io.Writer, sess *session.Session, filter int, withBreakdown bool) bool {
	total := sess.OpponentAggregate(filter)
	if countTotal(total) == 0 {
		return false
	}

	fmt.Fprintln(w, "Opponent errors")
	printOpponentLine(w, scopeLabel(filter), total)
	if withBreakdown {
		for _, set := range sess.OpponentSets() {
			printOpponentLine(w, fmt.Sprintf("set %d", set), sess.OpponentAggregate(set))
		}
	}
	return true
}

func printOpponentLine(w io.Writer, scope string, counts map[ledger.ActionKind]int) {
	fmt.Fprintf(w, "  %-8s total %-3d |", scope, countTotal(counts))
	for _, k := range ledger.OpponentActions {
		fmt.Fprintf(w, " %s %d", k, counts[k])
	}
	fmt.Fprintln(w)
}

func scopeLabel(filter int) string {
	if filter == ledger.AllSets {
		return "total"
	}
	return fmt.Sprintf("set %d", filter)
}

func countTotal(counts map[ledger.ActionKind]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
