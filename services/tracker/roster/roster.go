// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package roster manages the registered players and the seven on-court
// position slots (setter, two outside hitters, two middle blockers,
// opposite hitter, libero).
//
// Slot occupancy is exclusive: assigning a slot evicts its previous
// holder. The libero designation is sticky: a player keeps their
// "designated libero" flag while benched or standing in another slot, and
// loses it only when a different player is explicitly assigned the libero
// slot.
//
// The roster owns nothing in the statistics ledger. The two are related
// only by player id; removing a player never removes their recorded
// tallies.
//
// # Thread Safety
//
// Not safe for concurrent use; the application is single-threaded.
package roster

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Positions
// -----------------------------------------------------------------------------

// Position is one of the seven on-court slots, or NoPosition for a player
// on the bench. The string values double as JSON values in the persisted
// roster blob.
type Position string

const (
	NoPosition     Position = ""
	Setter         Position = "setter"
	OutsideHitter1 Position = "outsideHitter1"
	OutsideHitter2 Position = "outsideHitter2"
	MiddleBlocker1 Position = "middleBlocker1"
	MiddleBlocker2 Position = "middleBlocker2"
	OppositeHitter Position = "oppositeHitter"
	Libero         Position = "libero"
)

// Positions lists the seven slots in court-diagram order.
var Positions = []Position{
	Setter,
	OutsideHitter1,
	OutsideHitter2,
	MiddleBlocker1,
	MiddleBlocker2,
	OppositeHitter,
	Libero,
}

// Valid reports whether p is a real slot or NoPosition.
func (p Position) Valid() bool {
	if p == NoPosition {
		return true
	}
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrPlayerNotFound indicates an id with no matching roster entry.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrUnknownPosition indicates an invalid position name.
	ErrUnknownPosition = errors.New("unknown position")

	// ErrNotBenched indicates a bench-exchange target that currently holds
	// a slot.
	ErrNotBenched = errors.New("bench player is not on the bench")

	// ErrEmptyName indicates a registration with a blank display name.
	ErrEmptyName = errors.New("player name must not be empty")
)

// -----------------------------------------------------------------------------
// Roster
// -----------------------------------------------------------------------------

// Player is one registered team member.
type Player struct {
	// ID is an opaque unique id (UUIDv4), the foreign key the ledger
	// indexes tallies by.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Position is the currently held slot, or NoPosition when benched.
	Position Position `json:"position,omitempty"`

	// IsLibero is the sticky designated-libero flag. It survives
	// unassignment and bench exchanges; only an explicit libero-slot
	// assignment to another player clears it.
	IsLibero bool `json:"isLibero,omitempty"`
}

// Roster holds the registered players in registration order.
type Roster struct {
	players []*Player
	logger  *slog.Logger
}

// New creates an empty roster.
func New(logger *slog.Logger) *Roster {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Roster{logger: logger}
}

// AddPlayer registers a new player with a fresh id, no position and the
// libero flag off.
//
// Inputs:
//
//	name - Display name. Leading/trailing whitespace is trimmed.
//
// Outputs:
//
//	Player - A copy of the created record.
//	error - ErrEmptyName if the trimmed name is blank.
func (r *Roster) AddPlayer(name string) (Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, ErrEmptyName
	}
	p := &Player{
		ID:   uuid.NewString(),
		Name: name,
	}
	r.players = append(r.players, p)
	r.logger.Info("player registered", slog.String("player_id", p.ID), slog.String("name", name))
	return *p, nil
}

// RemovePlayer deletes the player record entirely. Historical ledger
// tallies under the id are intentionally left in place (orphaned but
// preserved); the sticky libero flag dies with the record.
//
// Outputs:
//
//	bool - false if no player had that id.
func (r *Roster) RemovePlayer(id string) bool {
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			r.logger.Info("player removed", slog.String("player_id", id))
			return true
		}
	}
	r.logger.Warn("remove requested for unknown player", slog.String("player_id", id))
	return false
}

// AssignPosition puts the player into a slot, or benches them.
//
// Description:
//
//	Assigning a held slot evicts the current holder to the bench. If the
//	evicted slot was the libero slot, the evicted player also loses their
//	sticky libero flag; the new holder gains it. Assigning NoPosition
//	benches the player without touching their sticky flag (a player can be
//	"the libero" from the bench).
//
// Inputs:
//
//	id - Player to move.
//	pos - Target slot, or NoPosition to bench.
//
// Outputs:
//
//	error - ErrPlayerNotFound or ErrUnknownPosition; nil otherwise. On
//	        error no assignment changes.
func (r *Roster) AssignPosition(id string, pos Position) error {
	if !pos.Valid() {
		r.logger.Warn("invalid position name", slog.String("position", string(pos)))
		return ErrUnknownPosition
	}
	player := r.find(id)
	if player == nil {
		return ErrPlayerNotFound
	}

	if pos == NoPosition {
		player.Position = NoPosition
		return nil
	}

	for _, other := range r.players {
		if other.ID != id && other.Position == pos {
			other.Position = NoPosition
			if pos == Libero {
				other.IsLibero = false
			}
			r.logger.Info("evicted from slot",
				slog.String("player_id", other.ID),
				slog.String("position", string(pos)))
		}
	}
	player.Position = pos
	if pos == Libero {
		player.IsLibero = true
	}
	return nil
}

// SwapWithLibero exchanges the player with the current libero-slot
// occupant.
//
// Description:
//
//	If another player occupies the libero slot, the two trade slots: the
//	occupant takes this player's prior slot (possibly the bench), this
//	player takes libero. If the libero slot is empty, this player simply
//	moves there, vacating their prior slot. The sticky libero flag is not
//	touched; only AssignPosition changes it.
//
// Outputs:
//
//	error - ErrPlayerNotFound; nil otherwise.
func (r *Roster) SwapWithLibero(id string) error {
	player := r.find(id)
	if player == nil {
		return ErrPlayerNotFound
	}

	occupant := r.inSlot(Libero)
	if occupant != nil && occupant.ID != id {
		occupant.Position = player.Position
		player.Position = Libero
	} else if occupant == nil {
		player.Position = Libero
	}
	return nil
}

// ExchangeWithBench substitutes a bench player for a field player: the
// bench player takes the field player's slot, the field player is
// benched.
//
// Inputs:
//
//	fieldID - Player currently holding the slot being handed over.
//	benchID - Player coming in. Must currently hold no slot.
//
// Outputs:
//
//	error - ErrPlayerNotFound for either id, or ErrNotBenched if the bench
//	        target already holds a slot (operation is a no-op).
func (r *Roster) ExchangeWithBench(fieldID, benchID string) error {
	field := r.find(fieldID)
	bench := r.find(benchID)
	if field == nil || bench == nil {
		return ErrPlayerNotFound
	}
	if bench.Position != NoPosition {
		r.logger.Warn("bench exchange refused, target holds a slot",
			slog.String("player_id", benchID),
			slog.String("position", string(bench.Position)))
		return ErrNotBenched
	}
	bench.Position = field.Position
	field.Position = NoPosition
	return nil
}

// Players returns a copy of the roster in registration order.
func (r *Roster) Players() []Player {
	out := make([]Player, len(r.players))
	for i, p := range r.players {
		out[i] = *p
	}
	return out
}

// Player looks up one player by id.
func (r *Roster) Player(id string) (Player, bool) {
	if p := r.find(id); p != nil {
		return *p, true
	}
	return Player{}, false
}

// PlayerInSlot returns the occupant of a slot, if any.
func (r *Roster) PlayerInSlot(pos Position) (Player, bool) {
	if p := r.inSlot(pos); p != nil {
		return *p, true
	}
	return Player{}, false
}

// Len returns the number of registered players.
func (r *Roster) Len() int {
	return len(r.players)
}

func (r *Roster) find(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Roster) inSlot(pos Position) *Player {
	if pos == NoPosition {
		return nil
	}
	for _, p := range r.players {
		if p.Position == pos {
			return p
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Snapshot
// -----------------------------------------------------------------------------

// Snapshot returns a deep copy of the player records for persistence.
func (r *Roster) Snapshot() []Player {
	return r.Players()
}

// FromSnapshot rebuilds a roster from persisted player records. Records
// with an empty id are dropped with a warning rather than poisoning slot
// lookups.
func FromSnapshot(players []Player, logger *slog.Logger) *Roster {
	r := New(logger)
	for _, p := range players {
		if p.ID == "" {
			r.logger.Warn("dropping stored player without id", slog.String("name", p.Name))
			continue
		}
		cp := p
		r.players = append(r.players, &cp)
	}
	return r
}
