// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package export flattens the ledger's aggregates into a row table and
// renders it as CSV.
//
// Every number in a row comes from the ledger's single shared aggregation
// routine; the export deliberately has no arithmetic of its own beyond
// placing values into columns, so the live display and the exported file
// cannot drift apart.
//
// The table layout: one total row per player with any recorded activity,
// followed by one row per non-empty set for that player, then a parallel
// block for opponent errors using the negative-only sub-columns. Action
// columns follow the "{action}_{symbol}" convention, e.g. "Attack_+",
// "Attack_~", "Attack_-".
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
)

// Source is the slice of the session API the exporter reads. All numbers
// flow through the ledger's aggregation routine behind it.
type Source interface {
	Players() []roster.Player
	Aggregate(playerID string, filter int) ledger.SetStats
	ActiveSets(playerID string) []int
	OpponentAggregate(filter int) map[ledger.ActionKind]int
	OpponentSets() []int
}

// OpponentRowID is the identity column value for opponent-error rows.
const OpponentRowID = "opponent"

// Row is one line of the export table. Cells is keyed by the
// "{action}_{symbol}" column names.
type Row struct {
	ID       string
	Name     string
	Points   int
	Mistakes int
	Cells    map[string]int
}

// Cell returns the column name for one action/outcome pair.
func Cell(kind ledger.ActionKind, o ledger.Outcome) string {
	return fmt.Sprintf("%s_%s", kind, o.Symbol())
}

// Headers returns the CSV header row: identity and derived-metric columns
// first, then three sub-columns per player action kind.
func Headers() []string {
	h := []string{"id", "name", "Points", "Mistakes"}
	for _, k := range ledger.PlayerActions {
		for _, o := range ledger.Outcomes {
			h = append(h, Cell(k, o))
		}
	}
	return h
}

// Rows builds the full export table.
//
// Description:
//
//	Players with no recorded activity are skipped entirely. A player's
//	total row carries their name; per-set rows carry "{name} Set {n}".
//	The opponent block follows the same total-then-sets shape with counts
//	in the negative sub-columns only.
func Rows(src Source) []Row {
	var rows []Row

	for _, p := range src.Players() {
		total := src.Aggregate(p.ID, ledger.AllSets)
		if !ledger.HasActivity(total) {
			continue
		}
		rows = append(rows, playerRow(p.ID, p.Name, total))
		for _, setNum := range src.ActiveSets(p.ID) {
			perSet := src.Aggregate(p.ID, setNum)
			rows = append(rows, playerRow(p.ID, fmt.Sprintf("%s Set %d", p.Name, setNum), perSet))
		}
	}

	oppTotal := src.OpponentAggregate(ledger.AllSets)
	if countSum(oppTotal) > 0 {
		rows = append(rows, opponentRow("Opponent Errors", oppTotal))
		for _, setNum := range src.OpponentSets() {
			perSet := src.OpponentAggregate(setNum)
			rows = append(rows, opponentRow(fmt.Sprintf("Opponent Errors Set %d", setNum), perSet))
		}
	}
	return rows
}

func playerRow(id, name string, stats ledger.SetStats) Row {
	cells := make(map[string]int, len(ledger.PlayerActions)*len(ledger.Outcomes))
	for _, k := range ledger.PlayerActions {
		t := stats[k]
		for _, o := range ledger.Outcomes {
			cells[Cell(k, o)] = t.Count(o)
		}
	}
	return Row{
		ID:       id,
		Name:     name,
		Points:   ledger.Winners(stats),
		Mistakes: ledger.Errors(stats),
		Cells:    cells,
	}
}

// opponentRow places each opponent-error count into the action's negative
// sub-column; opponent errors have no outcome dimension of their own.
func opponentRow(name string, counts map[ledger.ActionKind]int) Row {
	cells := make(map[string]int, len(ledger.PlayerActions)*len(ledger.Outcomes))
	for _, k := range ledger.PlayerActions {
		for _, o := range ledger.Outcomes {
			cells[Cell(k, o)] = 0
		}
	}
	for k, n := range counts {
		cells[Cell(k, ledger.OutcomeNegative)] = n
	}
	return Row{
		ID:       OpponentRowID,
		Name:     name,
		Mistakes: countSum(counts),
		Cells:    cells,
	}
}

func countSum(counts map[ledger.ActionKind]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// WriteCSV renders the table with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Name,
			strconv.Itoa(row.Points),
			strconv.Itoa(row.Mistakes),
		}
		for _, k := range ledger.PlayerActions {
			for _, o := range ledger.Outcomes {
				record = append(record, strconv.Itoa(row.Cells[Cell(k, o)]))
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
