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

	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/session"
)

// =============================================================================
// ROSTER COMMANDS
// =============================================================================

func runRosterAdd(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	p, err := app.session.AddPlayer(args[0])
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("Added %s (%s)\n", p.Name, shortID(p.ID))
}

func runRosterRemove(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	p, err := resolvePlayer(app.session, args[0])
	if err != nil {
		fail("%v", err)
	}
	if !app.session.RemovePlayer(p.ID) {
		fail("no player matches %q", args[0])
	}
	fmt.Printf("Removed %s. Recorded statistics are kept.\n", p.Name)
}

func runRosterList(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	printRoster(os.Stdout, app.session)
}

// printRoster writes the court and bench view used by `roster list`.
func printRoster(w io.Writer, sess *session.Session) {
	fmt.Fprintln(w, "Court:")
	for _, pos := range roster.Positions {
		occupant := "-"
		if p, ok := sess.PlayerInSlot(pos); ok {
			occupant = playerLabel(p)
		}
		fmt.Fprintf(w, "  %-17s %s\n", positionLabel(pos), occupant)
	}

	var bench []roster.Player
	for _, p := range sess.Players() {
		if p.Position == roster.NoPosition {
			bench = append(bench, p)
		}
	}
	fmt.Fprintln(w, "Bench:")
	if len(bench) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}
	for _, p := range bench {
		fmt.Fprintf(w, "  %s\n", playerLabel(p))
	}
}

func runRosterAssign(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	p, err := resolvePlayer(app.session, args[0])
	if err != nil {
		fail("%v", err)
	}
	pos, err := parsePosition(args[1])
	if err != nil {
		fail("%v", err)
	}
	if err := app.session.AssignPosition(p.ID, pos); err != nil {
		fail("%v", err)
	}
	if pos == roster.NoPosition {
		fmt.Printf("%s is now on the bench\n", p.Name)
	} else {
		fmt.Printf("%s is now %s\n", p.Name, positionLabel(pos))
	}
}

func runRosterSwapLibero(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	p, err := resolvePlayer(app.session, args[0])
	if err != nil {
		fail("%v", err)
	}
	if err := app.session.SwapWithLibero(p.ID); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Swapped %s with the libero slot\n", p.Name)
}

func runRosterExchange(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	field, err := resolvePlayer(app.session, args[0])
	if err != nil {
		fail("%v", err)
	}
	bench, err := resolvePlayer(app.session, args[1])
	if err != nil {
		fail("%v", err)
	}
	if err := app.session.ExchangeWithBench(field.ID, bench.ID); err != nil {
		fail("%v", err)
	}
	fmt.Printf("%s replaced %s on the court\n", bench.Name, field.Name)
}

// -----------------------------------------------------------------------------
// Labels
// -----------------------------------------------------------------------------

func playerLabel(p roster.Player) string {
	label := fmt.Sprintf("%s (%s)", p.Name, shortID(p.ID))
	if p.IsLibero {
		label += " [libero]"
	}
	return label
}

func positionLabel(pos roster.Position) string {
	switch pos {
	case roster.Setter:
		return "setter"
	case roster.OutsideHitter1:
		return "outside hitter 1"
	case roster.OutsideHitter2:
		return "outside hitter 2"
	case roster.MiddleBlocker1:
		return "middle blocker 1"
	case roster.MiddleBlocker2:
		return "middle blocker 2"
	case roster.OppositeHitter:
		return "opposite hitter"
	case roster.Libero:
		return "libero"
	default:
		return string(pos)
	}
}
