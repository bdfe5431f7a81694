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
	"github.com/spf13/cobra"
)

// CLI exit codes.
const (
	exitSuccess = 0
	exitError   = 1
	exitUsage   = 2
)

// --- Global Command Variables ---
var (
	configPath  string // --config override for the YAML config file
	dataDirFlag string // --data-dir override for the Badger directory

	statsSet   int
	statsTotal bool
	exportOut  string
	resetYes   bool

	rootCmd = &cobra.Command{
		Use:   "volleytrack",
		Short: "A cli to track volleyball rosters and scores on your own machine",
		Long: `Volleytrack keeps a single team's roster, per-set action statistics
				and opponent errors in a local embedded database. No server, no
				network, no accounts.`,
	}

	// --- Roster ---
	rosterCmd = &cobra.Command{
		Use:   "roster",
		Short: "Manage the team roster and the seven position slots",
	}
	rosterAddCmd = &cobra.Command{
		Use:   "add [name]",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(1),
		Run:   runRosterAdd, // Defined in cmd_roster.go
	}
	rosterRemoveCmd = &cobra.Command{
		Use:   "remove [player]",
		Short: "Remove a player; their recorded statistics are kept",
		Args:  cobra.ExactArgs(1),
		Run:   runRosterRemove, // Defined in cmd_roster.go
	}
	rosterListCmd = &cobra.Command{
		Use:   "list",
		Short: "List the court, the bench and the libero flags",
		Args:  cobra.NoArgs,
		Run:   runRosterList, // Defined in cmd_roster.go
	}
	rosterAssignCmd = &cobra.Command{
		Use:   "assign [player] [position]",
		Short: "Put a player in a position slot, or 'bench' to unassign",
		Args:  cobra.ExactArgs(2),
		Run:   runRosterAssign, // Defined in cmd_roster.go
	}
	rosterSwapLiberoCmd = &cobra.Command{
		Use:   "swap-libero [player]",
		Short: "Exchange a player with the current libero-slot occupant",
		Args:  cobra.ExactArgs(1),
		Run:   runRosterSwapLibero, // Defined in cmd_roster.go
	}
	rosterExchangeCmd = &cobra.Command{
		Use:   "exchange [field-player] [bench-player]",
		Short: "Substitute a bench player for a player on the court",
		Args:  cobra.ExactArgs(2),
		Run:   runRosterExchange, // Defined in cmd_roster.go
	}

	// --- Recording ---
	recordCmd = &cobra.Command{
		Use:   "record",
		Short: "Record a scored action",
	}
	recordPlayerCmd = &cobra.Command{
		Use:   "player [player] [action] [outcome]",
		Short: "Record one player action (serve|receive|attack|block|other, +|~|-)",
		Args:  cobra.ExactArgs(3),
		Run:   runRecordPlayer, // Defined in cmd_record.go
	}
	recordOpponentCmd = &cobra.Command{
		Use:   "opponent [action]",
		Short: "Record one opponent error (serve|attack|other)",
		Args:  cobra.ExactArgs(1),
		Run:   runRecordOpponent, // Defined in cmd_record.go
	}
	undoCmd = &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recently recorded action",
		Args:  cobra.NoArgs,
		Run:   runUndo, // Defined in cmd_record.go
	}

	// --- Sets ---
	setCmd = &cobra.Command{
		Use:   "set",
		Short: "Show or change the set being tracked",
	}
	setGetCmd = &cobra.Command{
		Use:   "get",
		Short: "Print the current set number",
		Args:  cobra.NoArgs,
		Run:   runSetGet, // Defined in cmd_set.go
	}
	setSetCmd = &cobra.Command{
		Use:   "set [n]",
		Short: "Switch tracking to set n (existing tallies are kept)",
		Args:  cobra.ExactArgs(1),
		Run:   runSetSet, // Defined in cmd_set.go
	}

	// --- Stats / Export ---
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Show per-player and opponent statistics",
		Args:  cobra.NoArgs,
		Run:   runStats, // Defined in cmd_stats.go
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export all statistics as CSV",
		Args:  cobra.NoArgs,
		Run:   runExport, // Defined in cmd_export.go
	}

	// --- Reset ---
	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "DANGER: Deletes all statistics and the undo history (roster is kept)",
		Args:  cobra.NoArgs,
		Run:   runReset, // Defined in cmd_reset.go
	}

	// --- Interactive tracking ---
	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Open the interactive score-tracking view",
		Args:  cobra.NoArgs,
		Run:   runPlay, // Defined in cmd_play.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML config file (default ~/.volleylocal/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"Override the database directory from the config file")

	rootCmd.AddCommand(rosterCmd)
	rosterCmd.AddCommand(rosterAddCmd)
	rosterCmd.AddCommand(rosterRemoveCmd)
	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterAssignCmd)
	rosterCmd.AddCommand(rosterSwapLiberoCmd)
	rosterCmd.AddCommand(rosterExchangeCmd)

	rootCmd.AddCommand(recordCmd)
	recordCmd.AddCommand(recordPlayerCmd)
	recordCmd.AddCommand(recordOpponentCmd)
	rootCmd.AddCommand(undoCmd)

	rootCmd.AddCommand(setCmd)
	setCmd.AddCommand(setGetCmd)
	setCmd.AddCommand(setSetCmd)

	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsSet, "set", 0, "Show one set only (default: current set)")
	statsCmd.Flags().BoolVar(&statsTotal, "total", false, "Show all-time totals across every set")

	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write the CSV to a file instead of stdout")

	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(playCmd)
}
