// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
	badgerstorage "github.com/jinterlante1206/VolleyLocal/services/tracker/storage/badger"
)

// TestRosterRoundTrip verifies the roster blob round-trips exactly.
func TestRosterRoundTrip(t *testing.T) {
	s := New(NewMemKV(), nil)

	players := []roster.Player{
		{ID: "a", Name: "Ana", Position: roster.Libero, IsLibero: true},
		{ID: "b", Name: "Bea"},
	}
	require.NoError(t, s.SaveRoster(players))
	assert.Equal(t, players, s.LoadRoster())
}

// TestLoadRosterMissing verifies a fresh store yields an empty roster.
func TestLoadRosterMissing(t *testing.T) {
	s := New(NewMemKV(), nil)
	assert.Empty(t, s.LoadRoster())
}

// TestLoadRosterCorrupted verifies a malformed blob degrades to empty.
func TestLoadRosterCorrupted(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyPlayers, []byte("{not json")))

	s := New(kv, nil)
	assert.Empty(t, s.LoadRoster())
}

// TestLedgerRoundTrip verifies the full persisted state (tallies, opponent
// errors, log, current set) yields an observably identical ledger.
func TestLedgerRoundTrip(t *testing.T) {
	l := ledger.New(nil)
	require.NoError(t, l.RecordPlayerAction("p1", ledger.ActionAttack, ledger.OutcomePositive))
	require.NoError(t, l.RecordPlayerAction("p1", ledger.ActionServe, ledger.OutcomeNeutral))
	require.NoError(t, l.RecordOpponentError(ledger.ActionOther))
	require.NoError(t, l.SetCurrentSet(4))
	require.NoError(t, l.RecordPlayerAction("p2", ledger.ActionBlock, ledger.OutcomeNegative))

	s := New(NewMemKV(), nil)
	require.NoError(t, s.SaveLedger(l.Snapshot()))
	restored := ledger.FromSnapshot(s.LoadLedger(), nil)

	assert.Equal(t, 4, restored.CurrentSet())
	assert.Equal(t, l.LogLen(), restored.LogLen())
	assert.Equal(t, l.Aggregate("p1", ledger.AllSets), restored.Aggregate("p1", ledger.AllSets))
	assert.Equal(t, l.Aggregate("p1", 1), restored.Aggregate("p1", 1))
	assert.Equal(t, l.Aggregate("p2", 4), restored.Aggregate("p2", 4))
	assert.Equal(t, l.OpponentAggregate(ledger.AllSets), restored.OpponentAggregate(ledger.AllSets))

	// The restored log still undoes the last record.
	assert.True(t, restored.UndoLastAction())
	assert.Equal(t, ledger.Tally{}, restored.Aggregate("p2", 4)[ledger.ActionBlock])
}

// TestLedgerRoundTripOnBadger runs the round trip against the real
// storage backend.
func TestLedgerRoundTripOnBadger(t *testing.T) {
	db, err := badgerstorage.OpenInMemory()
	require.NoError(t, err)
	kv := NewBadgerKV(db)
	defer kv.Close()

	l := ledger.New(nil)
	require.NoError(t, l.RecordPlayerAction("p1", ledger.ActionReceive, ledger.OutcomePositive))
	require.NoError(t, l.RecordOpponentError(ledger.ActionServe))

	s := New(kv, nil)
	require.NoError(t, s.SaveLedger(l.Snapshot()))
	restored := ledger.FromSnapshot(s.LoadLedger(), nil)

	assert.Equal(t, l.Aggregate("p1", ledger.AllSets), restored.Aggregate("p1", ledger.AllSets))
	assert.Equal(t, l.OpponentAggregate(ledger.AllSets), restored.OpponentAggregate(ledger.AllSets))
	assert.Equal(t, l.LogLen(), restored.LogLen())
}

// TestLegacyPlayerStatsMigration verifies a pre-sets blob is reinterpreted
// as set 1 data.
func TestLegacyPlayerStatsMigration(t *testing.T) {
	kv := NewMemKV()
	legacy := `{
		"p1": {"Serve": {"positive": 2, "neutral": 1, "negative": 0}},
		"p2": {"sets": {"3": {"Attack": {"positive": 1, "neutral": 0, "negative": 4}}}}
	}`
	require.NoError(t, kv.Set(KeyPlayerStats, []byte(legacy)))

	s := New(kv, nil)
	restored := ledger.FromSnapshot(s.LoadLedger(), nil)

	// p1's unwrapped data landed in set 1.
	assert.Equal(t, ledger.Tally{Positive: 2, Neutral: 1},
		restored.Aggregate("p1", 1)[ledger.ActionServe])
	assert.Equal(t, ledger.Tally{}, restored.Aggregate("p1", 2)[ledger.ActionServe])

	// p2's wrapped data stayed where it was.
	assert.Equal(t, ledger.Tally{Positive: 1, Negative: 4},
		restored.Aggregate("p2", 3)[ledger.ActionAttack])
}

// TestCorruptedBlobsDegradeIndependently verifies one bad blob does not
// take the others down.
func TestCorruptedBlobsDegradeIndependently(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyPlayerStats, []byte("][")))
	require.NoError(t, kv.Set(KeyOpponentStats, []byte(`{"2": {"Serve": 3}}`)))
	require.NoError(t, kv.Set(KeyActionStack, []byte("nope")))
	require.NoError(t, kv.Set(KeyCurrentSet, []byte("two")))

	s := New(kv, nil)
	snap := s.LoadLedger()

	assert.Empty(t, snap.Players)
	assert.Empty(t, snap.Log)
	assert.Equal(t, 1, snap.CurrentSet)
	restored := ledger.FromSnapshot(snap, nil)
	assert.Equal(t, 3, restored.OpponentAggregate(2)[ledger.ActionServe])
}

// TestInvalidSetKeysDropped verifies non-numeric or non-positive set keys
// are skipped rather than poisoning the load.
func TestInvalidSetKeysDropped(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyPlayerStats,
		[]byte(`{"p1": {"sets": {"1": {"Serve": {"positive": 1}}, "zero": {"Serve": {"positive": 9}}}}}`)))
	require.NoError(t, kv.Set(KeyOpponentStats,
		[]byte(`{"-3": {"Serve": 5}, "2": {"Other": 1}}`)))

	s := New(kv, nil)
	restored := ledger.FromSnapshot(s.LoadLedger(), nil)

	assert.Equal(t, ledger.Tally{Positive: 1}, restored.Aggregate("p1", ledger.AllSets)[ledger.ActionServe])
	agg := restored.OpponentAggregate(ledger.AllSets)
	assert.Equal(t, 0, agg[ledger.ActionServe])
	assert.Equal(t, 1, agg[ledger.ActionOther])
}

// TestUntaggedLogEntries verifies pre-tagging log entries load with an
// empty kind, which the ledger undoes as player entries.
func TestUntaggedLogEntries(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyActionStack,
		[]byte(`[{"playerId": "p1", "action": "Serve", "outcome": "positive", "set": 1}]`)))
	require.NoError(t, kv.Set(KeyPlayerStats,
		[]byte(`{"p1": {"sets": {"1": {"Serve": {"positive": 1}}}}}`)))

	s := New(kv, nil)
	restored := ledger.FromSnapshot(s.LoadLedger(), nil)

	require.Equal(t, 1, restored.LogLen())
	assert.True(t, restored.UndoLastAction())
	assert.Equal(t, ledger.Tally{}, restored.Aggregate("p1", 1)[ledger.ActionServe])
}

// TestClear verifies reset removes the tally blobs and rewinds the set
// pointer.
func TestClear(t *testing.T) {
	kv := NewMemKV()
	s := New(kv, nil)

	l := ledger.New(nil)
	require.NoError(t, l.SetCurrentSet(3))
	require.NoError(t, l.RecordPlayerAction("p1", ledger.ActionOther, ledger.OutcomeNegative))
	require.NoError(t, s.SaveLedger(l.Snapshot()))

	require.NoError(t, s.Clear())

	snap := s.LoadLedger()
	assert.Empty(t, snap.Players)
	assert.Empty(t, snap.Opponent)
	assert.Empty(t, snap.Log)
	assert.Equal(t, 1, snap.CurrentSet)
}

// TestCurrentSetStoredAsDecimalString pins the wire format of the set
// pointer.
func TestCurrentSetStoredAsDecimalString(t *testing.T) {
	kv := NewMemKV()
	s := New(kv, nil)
	require.NoError(t, s.SaveCurrentSet(12))

	raw, ok, err := kv.Get(KeyCurrentSet)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "12", string(raw))
}
