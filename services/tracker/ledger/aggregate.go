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

import "sort"

// AllSets is the Aggregate filter that sums across every set. Any positive
// value selects that single set instead.
const AllSets = 0

// Aggregate returns the element-wise tally sums for one player.
//
// Description:
//
//	This is the single shared aggregation routine: the live stats display,
//	the TUI counters and the export surface all go through it, so the two
//	views can never drift apart. Absent entries are zero tallies; the
//	returned map contains a key for every player action kind.
//
// Inputs:
//
//	playerID - Opaque player id. Unknown ids yield all-zero tallies.
//	filter - AllSets for the all-time sum, or a specific set number.
//
// Outputs:
//
//	SetStats - Freshly allocated; safe for the caller to hold.
func (l *Ledger) Aggregate(playerID string, filter int) SetStats {
	out := make(SetStats, len(PlayerActions))
	for _, k := range PlayerActions {
		out[k] = Tally{}
	}

	ps, ok := l.players[playerID]
	if !ok {
		return out
	}
	for setNum, set := range ps.Sets {
		if filter != AllSets && setNum != filter {
			continue
		}
		for _, k := range PlayerActions {
			t := out[k]
			t.merge(set[k])
			out[k] = t
		}
	}
	return out
}

// OpponentAggregate returns the opponent-error counts, summed across every
// set (filter = AllSets) or for one set. The returned map has a key for
// each opponent action kind.
func (l *Ledger) OpponentAggregate(filter int) map[ActionKind]int {
	out := make(map[ActionKind]int, len(OpponentActions))
	for _, k := range OpponentActions {
		out[k] = 0
	}
	for setNum, set := range l.opponent {
		if filter != AllSets && setNum != filter {
			continue
		}
		for _, k := range OpponentActions {
			out[k] += set[k]
		}
	}
	return out
}

// ActiveSets returns the sorted set numbers in which playerID has any
// recorded activity.
func (l *Ledger) ActiveSets(playerID string) []int {
	ps, ok := l.players[playerID]
	if !ok {
		return nil
	}
	var sets []int
	for setNum, set := range ps.Sets {
		if setHasActivity(set) {
			sets = append(sets, setNum)
		}
	}
	sort.Ints(sets)
	return sets
}

// OpponentSets returns the sorted set numbers with any opponent errors.
func (l *Ledger) OpponentSets() []int {
	var sets []int
	for setNum, set := range l.opponent {
		for _, n := range set {
			if n > 0 {
				sets = append(sets, setNum)
				break
			}
		}
	}
	sort.Ints(sets)
	return sets
}

func setHasActivity(set SetStats) bool {
	for _, t := range set {
		if !t.IsZero() {
			return true
		}
	}
	return false
}

// Winners computes the derived "points won" metric over aggregated
// tallies: positive outcomes on Serve, Attack and Block only. Receive and
// Other positives keep the ball in play but never close a point.
func Winners(stats SetStats) int {
	total := 0
	for k, t := range stats {
		if k.countsAsWinner() {
			total += t.Positive
		}
	}
	return total
}

// Errors computes the derived "points lost" metric: negative outcomes over
// every action kind.
func Errors(stats SetStats) int {
	total := 0
	for _, t := range stats {
		total += t.Negative
	}
	return total
}

// HasActivity reports whether any counter in stats is non-zero.
func HasActivity(stats SetStats) bool {
	return setHasActivity(stats)
}
