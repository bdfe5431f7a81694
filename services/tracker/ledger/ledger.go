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
	"errors"
	"log/slog"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrUnknownAction indicates an action kind outside the recordable set.
	ErrUnknownAction = errors.New("unknown action kind")

	// ErrUnknownOutcome indicates an outcome outside {positive, neutral, negative}.
	ErrUnknownOutcome = errors.New("unknown outcome")

	// ErrInvalidSet indicates a set number below 1.
	ErrInvalidSet = errors.New("set number must be positive")
)

// -----------------------------------------------------------------------------
// Ledger
// -----------------------------------------------------------------------------

// Ledger owns the per-player tallies, the opponent-error tallies, the
// current-set pointer and the action log. It is the single writer for all
// of them; presentation reaches them only through the session layer.
//
// Player ids are opaque strings. The ledger deliberately does not validate
// them against the roster: tallies recorded for a player who is later
// removed stay queryable under the orphaned id.
type Ledger struct {
	players    map[string]*PlayerStats
	opponent   map[int]map[ActionKind]int
	currentSet int
	log        []LogEntry

	logger *slog.Logger
}

// New creates an empty ledger positioned at set 1.
//
// Inputs:
//
//	logger - Logger for undo/validation warnings. If nil, logging is
//	         discarded.
//
// Outputs:
//
//	*Ledger - Ready for use, all tallies zero, empty log.
func New(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ledger{
		players:    make(map[string]*PlayerStats),
		opponent:   make(map[int]map[ActionKind]int),
		currentSet: 1,
		log:        nil,
		logger:     logger,
	}
}

// RecordPlayerAction increments the (playerID, current set, kind, outcome)
// counter by 1 and appends a player entry to the action log.
//
// Description:
//
//	Intermediate map levels are created on demand; a first-ever action for
//	a player allocates their PlayerStats. The player id is not checked
//	against the roster on purpose (historical data survives roster edits).
//
// Inputs:
//
//	playerID - Opaque player id. Must be non-empty.
//	kind - One of the five player action kinds.
//	outcome - One of the three outcomes.
//
// Outputs:
//
//	error - ErrUnknownAction or ErrUnknownOutcome on a validation failure;
//	        nil otherwise. On error no state is mutated.
func (l *Ledger) RecordPlayerAction(playerID string, kind ActionKind, outcome Outcome) error {
	if playerID == "" {
		return errors.New("empty player id")
	}
	if !kind.Valid() {
		return ErrUnknownAction
	}
	if !outcome.Valid() {
		return ErrUnknownOutcome
	}

	ps, ok := l.players[playerID]
	if !ok {
		ps = &PlayerStats{Sets: make(map[int]SetStats)}
		l.players[playerID] = ps
	}
	set, ok := ps.Sets[l.currentSet]
	if !ok {
		set = make(SetStats)
		ps.Sets[l.currentSet] = set
	}
	t := set[kind]
	t.add(outcome)
	set[kind] = t

	l.log = append(l.log, LogEntry{
		Kind:     EntryPlayer,
		PlayerID: playerID,
		Action:   kind,
		Outcome:  outcome,
		Set:      l.currentSet,
	})
	return nil
}

// RecordOpponentError increments the (current set, kind) opponent counter
// by 1 and appends an opponent entry to the action log.
//
// Inputs:
//
//	kind - One of {Serve, Attack, Other}.
//
// Outputs:
//
//	error - ErrUnknownAction if kind is outside the opponent subset; nil
//	        otherwise. On error no state is mutated.
func (l *Ledger) RecordOpponentError(kind ActionKind) error {
	if !kind.ValidOpponent() {
		return ErrUnknownAction
	}

	set, ok := l.opponent[l.currentSet]
	if !ok {
		set = make(map[ActionKind]int)
		l.opponent[l.currentSet] = set
	}
	set[kind]++

	l.log = append(l.log, LogEntry{
		Kind:   EntryOpponent,
		Action: kind,
		Set:    l.currentSet,
	})
	return nil
}

// UndoLastAction pops the most recent log entry and decrements the counter
// it recorded.
//
// Description:
//
//	The undo policy is best-effort, not strict LIFO consistency: if the
//	targeted counter is already zero (the ledger was reset while the log
//	was stale), the popped entry is discarded and undo reports failure.
//	The entry is never re-pushed.
//
// Outputs:
//
//	bool - true if a counter was decremented; false if the log was empty
//	       or the target counter was already zero.
func (l *Ledger) UndoLastAction() bool {
	if len(l.log) == 0 {
		l.logger.Debug("undo requested with empty action log")
		return false
	}

	last := l.log[len(l.log)-1]
	l.log = l.log[:len(l.log)-1]

	switch last.Kind {
	case EntryOpponent:
		set, ok := l.opponent[last.Set]
		if !ok || set[last.Action] == 0 {
			l.logger.Warn("undo target already zero, entry discarded",
				slog.String("action", string(last.Action)),
				slog.Int("set", last.Set))
			return false
		}
		set[last.Action]--
		return true

	default:
		// Entries loaded from a pre-tagging blob carry no kind; they are
		// player entries.
		ps, ok := l.players[last.PlayerID]
		if !ok {
			l.logger.Warn("undo target player has no tallies, entry discarded",
				slog.String("player_id", last.PlayerID))
			return false
		}
		set, ok := ps.Sets[last.Set]
		if !ok {
			return false
		}
		t := set[last.Action]
		if !t.remove(last.Outcome) {
			l.logger.Warn("undo target already zero, entry discarded",
				slog.String("player_id", last.PlayerID),
				slog.String("action", string(last.Action)),
				slog.String("outcome", string(last.Outcome)),
				slog.Int("set", last.Set))
			return false
		}
		set[last.Action] = t
		return true
	}
}

// CurrentSet returns the active set number.
func (l *Ledger) CurrentSet() int {
	return l.currentSet
}

// SetCurrentSet moves the active set pointer. Tallies already accumulated
// for other sets are untouched.
//
// Outputs:
//
//	error - ErrInvalidSet if n < 1.
func (l *Ledger) SetCurrentSet(n int) error {
	if n < 1 {
		return ErrInvalidSet
	}
	l.currentSet = n
	return nil
}

// LogLen returns the number of undoable entries.
func (l *Ledger) LogLen() int {
	return len(l.log)
}

// ResetAll clears both tally maps and the action log and resets the
// current set to 1. Irreversible; callers gate it behind an explicit user
// confirmation.
func (l *Ledger) ResetAll() {
	l.players = make(map[string]*PlayerStats)
	l.opponent = make(map[int]map[ActionKind]int)
	l.log = nil
	l.currentSet = 1
	l.logger.Info("all statistics reset")
}
