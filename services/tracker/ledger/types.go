// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ledger implements the statistics ledger: per-player outcome
// tallies partitioned by set, the opponent-error tallies, and the action
// log that backs undo.
//
// The ledger is the only component in VolleyLocal with real invariants:
//
//   - No tally counter is ever negative.
//   - Every successful record appends exactly one log entry; undo pops
//     exactly one.
//   - Per-set aggregates always sum to the all-sets total.
//
// All state is plain in-memory maps. The ledger performs no I/O; the
// session layer persists a Snapshot after each mutation. Reads are
// side-effect free: looking up an absent (player, set, action) key returns
// a zero Tally without allocating intermediate map levels.
//
// # Thread Safety
//
// Not safe for concurrent use. The application is single-threaded and
// event-driven; every mutation runs to completion before the next one
// starts.
package ledger

// -----------------------------------------------------------------------------
// Outcomes
// -----------------------------------------------------------------------------

// Outcome is the coarse judgement of an action's result.
type Outcome string

const (
	// OutcomePositive means the action won the point outright.
	OutcomePositive Outcome = "positive"

	// OutcomeNeutral means play continued.
	OutcomeNeutral Outcome = "neutral"

	// OutcomeNegative means the action lost the point.
	OutcomeNegative Outcome = "negative"
)

// Outcomes lists all outcomes in display order.
var Outcomes = []Outcome{OutcomePositive, OutcomeNeutral, OutcomeNegative}

// Valid reports whether o is one of the three known outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomePositive, OutcomeNeutral, OutcomeNegative:
		return true
	}
	return false
}

// Symbol returns the single-character column symbol used by the stats
// display and the export surface: "+", "~" or "-".
func (o Outcome) Symbol() string {
	switch o {
	case OutcomePositive:
		return "+"
	case OutcomeNeutral:
		return "~"
	case OutcomeNegative:
		return "-"
	}
	return "?"
}

// -----------------------------------------------------------------------------
// Action Kinds
// -----------------------------------------------------------------------------

// ActionKind identifies the kind of play being scored.
//
// The string values are the canonical labels. They double as JSON keys in
// the persisted tally blobs, so changing them is a storage migration.
type ActionKind string

const (
	ActionServe   ActionKind = "Serve"
	ActionReceive ActionKind = "Receive"
	ActionAttack  ActionKind = "Attack"
	ActionBlock   ActionKind = "Block"
	ActionOther   ActionKind = "Other"
)

// PlayerActions lists every action kind recordable for a player, in
// display order.
var PlayerActions = []ActionKind{
	ActionServe,
	ActionReceive,
	ActionAttack,
	ActionBlock,
	ActionOther,
}

// OpponentActions lists the restricted subset recordable as opponent
// errors. Opponent errors carry no outcome dimension; every recorded one
// is implicitly a point for us.
var OpponentActions = []ActionKind{
	ActionServe,
	ActionAttack,
	ActionOther,
}

// Valid reports whether k is a recordable player action.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionServe, ActionReceive, ActionAttack, ActionBlock, ActionOther:
		return true
	}
	return false
}

// ValidOpponent reports whether k is a recordable opponent-error action.
func (k ActionKind) ValidOpponent() bool {
	switch k {
	case ActionServe, ActionAttack, ActionOther:
		return true
	}
	return false
}

// countsAsWinner reports whether a positive outcome on k counts toward the
// derived Winners metric. Receive and Other positives keep a rally alive
// but do not win the point.
func (k ActionKind) countsAsWinner() bool {
	switch k {
	case ActionServe, ActionAttack, ActionBlock:
		return true
	}
	return false
}

// -----------------------------------------------------------------------------
// Tallies
// -----------------------------------------------------------------------------

// Tally is the fixed-shape counter attached to one (player, set, action)
// triple. All three counters are non-negative at all times.
type Tally struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// IsZero reports whether all three counters are zero.
func (t Tally) IsZero() bool {
	return t.Positive == 0 && t.Neutral == 0 && t.Negative == 0
}

// Count returns the counter for the given outcome.
func (t Tally) Count(o Outcome) int {
	switch o {
	case OutcomePositive:
		return t.Positive
	case OutcomeNeutral:
		return t.Neutral
	case OutcomeNegative:
		return t.Negative
	}
	return 0
}

// add increments the counter for o by 1.
func (t *Tally) add(o Outcome) {
	switch o {
	case OutcomePositive:
		t.Positive++
	case OutcomeNeutral:
		t.Neutral++
	case OutcomeNegative:
		t.Negative++
	}
}

// remove decrements the counter for o by 1 and reports success. A counter
// already at zero is left untouched and remove reports false; counters
// never go negative.
func (t *Tally) remove(o Outcome) bool {
	switch o {
	case OutcomePositive:
		if t.Positive == 0 {
			return false
		}
		t.Positive--
	case OutcomeNeutral:
		if t.Neutral == 0 {
			return false
		}
		t.Neutral--
	case OutcomeNegative:
		if t.Negative == 0 {
			return false
		}
		t.Negative--
	default:
		return false
	}
	return true
}

// merge adds other's counters into t.
func (t *Tally) merge(other Tally) {
	t.Positive += other.Positive
	t.Neutral += other.Neutral
	t.Negative += other.Negative
}

// SetStats maps action kind to its tally within a single set. Absent keys
// are equivalent to a zero Tally.
type SetStats map[ActionKind]Tally

// PlayerStats holds one player's tallies across all sets, keyed by set
// number. Absent sets are equivalent to empty SetStats.
type PlayerStats struct {
	Sets map[int]SetStats
}

// -----------------------------------------------------------------------------
// Action Log
// -----------------------------------------------------------------------------

// EntryKind tags a log entry as a player or an opponent mutation. Undo
// dispatches on this tag.
type EntryKind string

const (
	EntryPlayer   EntryKind = "player"
	EntryOpponent EntryKind = "opponent"
)

// LogEntry records exactly one ledger mutation, sufficient to reverse one
// tally increment. PlayerID and Outcome are empty for opponent entries.
type LogEntry struct {
	Kind     EntryKind  `json:"type"`
	PlayerID string     `json:"playerId,omitempty"`
	Action   ActionKind `json:"action"`
	Outcome  Outcome    `json:"outcome,omitempty"`
	Set      int        `json:"set"`
}
