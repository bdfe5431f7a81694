// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAggregateTotalEqualsPerSetSum verifies the core aggregation
// invariant over a randomized recording sequence: the all-sets total is
// the element-wise sum of every per-set aggregate.
func TestAggregateTotalEqualsPerSetSum(t *testing.T) {
	l := New(nil)
	rng := rand.New(rand.NewSource(42))

	players := []string{"p1", "p2", "p3"}
	for i := 0; i < 500; i++ {
		require.NoError(t, l.SetCurrentSet(1+rng.Intn(5)))
		p := players[rng.Intn(len(players))]
		k := PlayerActions[rng.Intn(len(PlayerActions))]
		o := Outcomes[rng.Intn(len(Outcomes))]
		require.NoError(t, l.RecordPlayerAction(p, k, o))
	}

	for _, p := range players {
		sum := make(SetStats)
		for _, setNum := range l.ActiveSets(p) {
			perSet := l.Aggregate(p, setNum)
			for _, k := range PlayerActions {
				tl := sum[k]
				tl.merge(perSet[k])
				sum[k] = tl
			}
		}
		total := l.Aggregate(p, AllSets)
		for _, k := range PlayerActions {
			assert.Equal(t, total[k], sum[k], "player %s action %s", p, k)
		}
	}
}

// TestOpponentAggregateTotalEqualsPerSetSum mirrors the invariant for the
// opponent ledger.
func TestOpponentAggregateTotalEqualsPerSetSum(t *testing.T) {
	l := New(nil)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		require.NoError(t, l.SetCurrentSet(1+rng.Intn(4)))
		require.NoError(t, l.RecordOpponentError(OpponentActions[rng.Intn(len(OpponentActions))]))
	}

	sum := make(map[ActionKind]int)
	for _, setNum := range l.OpponentSets() {
		for k, n := range l.OpponentAggregate(setNum) {
			sum[k] += n
		}
	}
	total := l.OpponentAggregate(AllSets)
	for _, k := range OpponentActions {
		assert.Equal(t, total[k], sum[k], "action %s", k)
	}
}

// TestWinnersAndErrors verifies the derived metric definitions: winners
// count positives on Serve, Attack and Block only; errors count negatives
// on everything.
func TestWinnersAndErrors(t *testing.T) {
	stats := SetStats{
		ActionServe:   {Positive: 2, Neutral: 1, Negative: 1},
		ActionReceive: {Positive: 3, Negative: 2},
		ActionAttack:  {Positive: 4},
		ActionBlock:   {Positive: 1, Negative: 1},
		ActionOther:   {Positive: 5, Negative: 3},
	}

	// Receive and Other positives are not winners.
	assert.Equal(t, 7, Winners(stats))
	assert.Equal(t, 7, Errors(stats))

	assert.Zero(t, Winners(SetStats{}))
	assert.Zero(t, Errors(SetStats{}))
}

// TestActiveSets verifies only sets with real activity are listed, in
// order.
func TestActiveSets(t *testing.T) {
	l := New(nil)
	require.NoError(t, l.SetCurrentSet(3))
	require.NoError(t, l.RecordPlayerAction("p1", ActionServe, OutcomePositive))
	require.NoError(t, l.SetCurrentSet(1))
	require.NoError(t, l.RecordPlayerAction("p1", ActionAttack, OutcomeNeutral))

	// Record and fully undo in set 2: no remaining activity there.
	require.NoError(t, l.SetCurrentSet(2))
	require.NoError(t, l.RecordPlayerAction("p1", ActionBlock, OutcomePositive))
	require.True(t, l.UndoLastAction())

	assert.Equal(t, []int{1, 3}, l.ActiveSets("p1"))
	assert.Nil(t, l.ActiveSets("nobody"))
}

// TestSnapshotRoundTrip verifies snapshot/restore yields an observably
// identical ledger.
func TestSnapshotRoundTrip(t *testing.T) {
	l := New(nil)
	require.NoError(t, l.RecordPlayerAction("p1", ActionAttack, OutcomePositive))
	require.NoError(t, l.RecordOpponentError(ActionServe))
	require.NoError(t, l.SetCurrentSet(2))
	require.NoError(t, l.RecordPlayerAction("p2", ActionReceive, OutcomeNegative))

	restored := FromSnapshot(l.Snapshot(), nil)

	assert.Equal(t, l.CurrentSet(), restored.CurrentSet())
	assert.Equal(t, l.LogLen(), restored.LogLen())
	assert.Equal(t, l.Aggregate("p1", AllSets), restored.Aggregate("p1", AllSets))
	assert.Equal(t, l.Aggregate("p2", AllSets), restored.Aggregate("p2", AllSets))
	assert.Equal(t, l.OpponentAggregate(AllSets), restored.OpponentAggregate(AllSets))

	// Undo works across the restore boundary.
	assert.True(t, restored.UndoLastAction())
	assert.Equal(t, Tally{}, restored.Aggregate("p2", AllSets)[ActionReceive])
}

// TestSnapshotIsDeepCopy verifies mutating a snapshot cannot reach the
// ledger.
func TestSnapshotIsDeepCopy(t *testing.T) {
	l := New(nil)
	require.NoError(t, l.RecordPlayerAction("p1", ActionServe, OutcomePositive))

	snap := l.Snapshot()
	snap.Players["p1"].Sets[1][ActionServe] = Tally{Positive: 99}
	snap.Log[0].PlayerID = "tampered"

	assert.Equal(t, Tally{Positive: 1}, l.Aggregate("p1", AllSets)[ActionServe])
	assert.True(t, l.UndoLastAction())
}
