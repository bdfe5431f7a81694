// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package session ties the tracker together: one Session owns the roster,
// the statistics ledger and the persistence store for an application run.
//
// There is deliberately no package-level mutable state; tests construct as
// many independent sessions as they want. Presentation layers (the cobra
// commands and the TUI) hold a single Session and call its mutators, each
// of which updates memory first, then mirrors the affected blobs to the
// store before returning.
//
// Persistence failures on a mutation are logged and swallowed: the
// in-memory state is the source of truth mid-session, and the next
// successful save rewrites the full affected blob. Validation failures
// never mutate anything.
package session

import (
	"log/slog"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/store"
)

// Session is the application context object.
type Session struct {
	roster *roster.Roster
	ledger *ledger.Ledger
	store  *store.Store
	logger *slog.Logger
}

// Open loads persisted state into a new session.
//
// Description:
//
//	Reads the roster and ledger blobs through the store; malformed or
//	missing blobs have already been degraded to empty defaults by the
//	store layer, so Open itself cannot fail.
//
// Inputs:
//
//	st - Persistence store. Must not be nil.
//	logger - Logger shared by the owned components. If nil, logging is
//	         discarded.
//
// Outputs:
//
//	*Session - Ready for use.
func Open(st *store.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		roster: roster.FromSnapshot(st.LoadRoster(), logger),
		ledger: ledger.FromSnapshot(st.LoadLedger(), logger),
		store:  st,
		logger: logger,
	}
	s.logger.Info("session opened",
		slog.Int("players", s.roster.Len()),
		slog.Int("current_set", s.ledger.CurrentSet()),
		slog.Int("undoable_actions", s.ledger.LogLen()))
	return s
}

// -----------------------------------------------------------------------------
// Ledger mutators
// -----------------------------------------------------------------------------

// RecordPlayerAction scores one action for a player in the current set and
// persists the tallies and the action log.
func (s *Session) RecordPlayerAction(playerID string, kind ledger.ActionKind, outcome ledger.Outcome) error {
	if err := s.ledger.RecordPlayerAction(playerID, kind, outcome); err != nil {
		return err
	}
	snap := s.ledger.Snapshot()
	s.persist("player stats", s.store.SavePlayerStats(snap))
	s.persist("action log", s.store.SaveActionLog(snap.Log))
	return nil
}

// RecordOpponentError scores one opponent error in the current set and
// persists the opponent tallies and the action log.
func (s *Session) RecordOpponentError(kind ledger.ActionKind) error {
	if err := s.ledger.RecordOpponentError(kind); err != nil {
		return err
	}
	snap := s.ledger.Snapshot()
	s.persist("opponent stats", s.store.SaveOpponentStats(snap))
	s.persist("action log", s.store.SaveActionLog(snap.Log))
	return nil
}

// UndoLastAction reverses the most recent recorded action. Reports false
// when there is nothing to undo or the target counter was already zero;
// in both cases the popped entry (if any) is consumed.
func (s *Session) UndoLastAction() bool {
	ok := s.ledger.UndoLastAction()
	snap := s.ledger.Snapshot()
	// The log shrank even on a failed best-effort undo.
	s.persist("action log", s.store.SaveActionLog(snap.Log))
	if ok {
		s.persist("player stats", s.store.SavePlayerStats(snap))
		s.persist("opponent stats", s.store.SaveOpponentStats(snap))
	}
	return ok
}

// CurrentSet returns the active set number.
func (s *Session) CurrentSet() int {
	return s.ledger.CurrentSet()
}

// SetCurrentSet moves the active set pointer and persists it. Tallies for
// other sets are untouched.
func (s *Session) SetCurrentSet(n int) error {
	if err := s.ledger.SetCurrentSet(n); err != nil {
		return err
	}
	s.persist("current set", s.store.SaveCurrentSet(n))
	return nil
}

// ResetAll irreversibly clears all statistics and the action log and
// rewinds the current set to 1. The roster is untouched. Callers gate
// this behind an explicit confirmation.
func (s *Session) ResetAll() {
	s.ledger.ResetAll()
	s.persist("reset", s.store.Clear())
}

// -----------------------------------------------------------------------------
// Roster mutators
// -----------------------------------------------------------------------------

// AddPlayer registers a player and persists the roster.
func (s *Session) AddPlayer(name string) (roster.Player, error) {
	p, err := s.roster.AddPlayer(name)
	if err != nil {
		return roster.Player{}, err
	}
	s.persistRoster()
	return p, nil
}

// RemovePlayer deletes a player record and persists the roster. The
// player's historical tallies stay in the ledger under the orphaned id.
func (s *Session) RemovePlayer(id string) bool {
	ok := s.roster.RemovePlayer(id)
	if ok {
		s.persistRoster()
	}
	return ok
}

// AssignPosition moves a player into a slot (or benches them) and persists
// the roster.
func (s *Session) AssignPosition(id string, pos roster.Position) error {
	if err := s.roster.AssignPosition(id, pos); err != nil {
		return err
	}
	s.persistRoster()
	return nil
}

// SwapWithLibero exchanges a player with the libero-slot occupant and
// persists the roster.
func (s *Session) SwapWithLibero(id string) error {
	if err := s.roster.SwapWithLibero(id); err != nil {
		return err
	}
	s.persistRoster()
	return nil
}

// ExchangeWithBench substitutes a bench player for a field player and
// persists the roster.
func (s *Session) ExchangeWithBench(fieldID, benchID string) error {
	if err := s.roster.ExchangeWithBench(fieldID, benchID); err != nil {
		return err
	}
	s.persistRoster()
	return nil
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// Players returns the roster in registration order.
func (s *Session) Players() []roster.Player {
	return s.roster.Players()
}

// Player looks up one player by id.
func (s *Session) Player(id string) (roster.Player, bool) {
	return s.roster.Player(id)
}

// PlayerInSlot returns the occupant of a position slot, if any.
func (s *Session) PlayerInSlot(pos roster.Position) (roster.Player, bool) {
	return s.roster.PlayerInSlot(pos)
}

// Aggregate sums one player's tallies; filter is ledger.AllSets or a set
// number.
func (s *Session) Aggregate(playerID string, filter int) ledger.SetStats {
	return s.ledger.Aggregate(playerID, filter)
}

// OpponentAggregate sums the opponent-error counts.
func (s *Session) OpponentAggregate(filter int) map[ledger.ActionKind]int {
	return s.ledger.OpponentAggregate(filter)
}

// ActiveSets lists the sets with recorded activity for a player.
func (s *Session) ActiveSets(playerID string) []int {
	return s.ledger.ActiveSets(playerID)
}

// OpponentSets lists the sets with recorded opponent errors.
func (s *Session) OpponentSets() []int {
	return s.ledger.OpponentSets()
}

// LogLen returns the number of undoable actions.
func (s *Session) LogLen() int {
	return s.ledger.LogLen()
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (s *Session) persist(what string, err error) {
	if err != nil {
		s.logger.Warn("persist failed, in-memory state kept",
			slog.String("blob", what),
			slog.String("error", err.Error()))
	}
}

func (s *Session) persistRoster() {
	s.persist("roster", s.store.SaveRoster(s.roster.Snapshot()))
}
