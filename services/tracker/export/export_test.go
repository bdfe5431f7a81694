// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/session"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/store"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	return session.Open(store.New(store.NewMemKV(), nil), nil)
}

// TestRowsShape verifies the total-then-sets row layout, activity
// filtering and the opponent block.
func TestRowsShape(t *testing.T) {
	s := newSession(t)

	ana, err := s.AddPlayer("Ana")
	require.NoError(t, err)
	_, err = s.AddPlayer("Idle")
	require.NoError(t, err)

	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionAttack, ledger.OutcomePositive))
	require.NoError(t, s.SetCurrentSet(3))
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionServe, ledger.OutcomeNegative))
	require.NoError(t, s.RecordOpponentError(ledger.ActionServe))

	rows := Rows(s)
	require.Len(t, rows, 5)

	assert.Equal(t, "Ana", rows[0].Name)
	assert.Equal(t, "Ana Set 1", rows[1].Name)
	assert.Equal(t, "Ana Set 3", rows[2].Name)
	assert.Equal(t, "Opponent Errors", rows[3].Name)
	assert.Equal(t, "Opponent Errors Set 3", rows[4].Name)

	// The idle player is skipped.
	for _, r := range rows {
		assert.NotContains(t, r.Name, "Idle")
	}
}

// TestRowValues verifies derived metrics and cell placement follow the
// ledger definitions.
func TestRowValues(t *testing.T) {
	s := newSession(t)
	ana, err := s.AddPlayer("Ana")
	require.NoError(t, err)

	// Two winners (attack, serve), one non-winner positive (receive), two
	// mistakes.
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionAttack, ledger.OutcomePositive))
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionServe, ledger.OutcomePositive))
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionReceive, ledger.OutcomePositive))
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionReceive, ledger.OutcomeNegative))
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionOther, ledger.OutcomeNegative))

	rows := Rows(s)
	require.NotEmpty(t, rows)
	total := rows[0]

	assert.Equal(t, ana.ID, total.ID)
	assert.Equal(t, 2, total.Points)
	assert.Equal(t, 2, total.Mistakes)
	assert.Equal(t, 1, total.Cells["Attack_+"])
	assert.Equal(t, 1, total.Cells["Serve_+"])
	assert.Equal(t, 1, total.Cells["Receive_+"])
	assert.Equal(t, 1, total.Cells["Receive_-"])
	assert.Equal(t, 1, total.Cells["Other_-"])
	assert.Equal(t, 0, total.Cells["Block_~"])
}

// TestOpponentRowValues verifies opponent counts land in the negative
// sub-columns only.
func TestOpponentRowValues(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.RecordOpponentError(ledger.ActionServe))
	require.NoError(t, s.RecordOpponentError(ledger.ActionServe))
	require.NoError(t, s.RecordOpponentError(ledger.ActionOther))

	rows := Rows(s)
	require.Len(t, rows, 2)
	opp := rows[0]

	assert.Equal(t, OpponentRowID, opp.ID)
	assert.Equal(t, 0, opp.Points)
	assert.Equal(t, 3, opp.Mistakes)
	assert.Equal(t, 2, opp.Cells["Serve_-"])
	assert.Equal(t, 1, opp.Cells["Other_-"])
	assert.Equal(t, 0, opp.Cells["Serve_+"])
	assert.Equal(t, 0, opp.Cells["Attack_-"])
}

// TestTotalRowEqualsSetRows verifies, through the export surface, that the
// total row is the element-wise sum of the set rows.
func TestTotalRowEqualsSetRows(t *testing.T) {
	s := newSession(t)
	ana, err := s.AddPlayer("Ana")
	require.NoError(t, err)

	sets := []int{1, 2, 5}
	for _, n := range sets {
		require.NoError(t, s.SetCurrentSet(n))
		require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionAttack, ledger.OutcomePositive))
		require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionBlock, ledger.OutcomeNeutral))
	}

	rows := Rows(s)
	require.Len(t, rows, 1+len(sets))

	for cell := range rows[0].Cells {
		sum := 0
		for i := 1; i <= len(sets); i++ {
			sum += rows[i].Cells[cell]
		}
		assert.Equal(t, rows[0].Cells[cell], sum, "cell %s", cell)
	}
}

// TestWriteCSV verifies the rendered CSV parses back with the declared
// header and consistent record widths.
func TestWriteCSV(t *testing.T) {
	s := newSession(t)
	ana, err := s.AddPlayer("Ana, \"The Wall\"")
	require.NoError(t, err)
	require.NoError(t, s.RecordPlayerAction(ana.ID, ledger.ActionBlock, ledger.OutcomePositive))
	require.NoError(t, s.RecordOpponentError(ledger.ActionAttack))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Rows(s)))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5) // header + 2 player rows + 2 opponent rows

	assert.Equal(t, Headers(), records[0])
	assert.Equal(t, `Ana, "The Wall"`, records[1][1])
	assert.Equal(t, "1", records[1][2]) // one block winner

	for i, rec := range records {
		assert.Len(t, rec, len(Headers()), "record %d", i)
	}
}

// TestWriteCSVEmpty verifies an activity-free session exports just the
// header.
func TestWriteCSVEmpty(t *testing.T) {
	s := newSession(t)
	_, err := s.AddPlayer("Ana")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Rows(s)))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}
