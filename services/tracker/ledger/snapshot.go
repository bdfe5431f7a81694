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

import "log/slog"

// Snapshot is a deep copy of the ledger's full persistable state. The
// store package encodes it into the persisted blob layout and decodes it
// back; a snapshot round-trip yields an observably identical ledger.
type Snapshot struct {
	Players    map[string]PlayerSnapshot
	Opponent   map[int]map[ActionKind]int
	Log        []LogEntry
	CurrentSet int
}

// PlayerSnapshot is one player's tallies keyed by set number.
type PlayerSnapshot struct {
	Sets map[int]SetStats
}

// Snapshot returns a deep copy of the ledger state. Mutating the returned
// value never affects the ledger.
func (l *Ledger) Snapshot() Snapshot {
	s := Snapshot{
		Players:    make(map[string]PlayerSnapshot, len(l.players)),
		Opponent:   make(map[int]map[ActionKind]int, len(l.opponent)),
		Log:        make([]LogEntry, len(l.log)),
		CurrentSet: l.currentSet,
	}
	for id, ps := range l.players {
		sets := make(map[int]SetStats, len(ps.Sets))
		for n, set := range ps.Sets {
			cp := make(SetStats, len(set))
			for k, t := range set {
				cp[k] = t
			}
			sets[n] = cp
		}
		s.Players[id] = PlayerSnapshot{Sets: sets}
	}
	for n, set := range l.opponent {
		cp := make(map[ActionKind]int, len(set))
		for k, c := range set {
			cp[k] = c
		}
		s.Opponent[n] = cp
	}
	copy(s.Log, l.log)
	return s
}

// FromSnapshot builds a ledger from previously captured state.
//
// Description:
//
//	The snapshot is deep-copied in, so the caller may keep or discard it
//	freely. A zero-valued snapshot produces the same ledger as New: empty
//	tallies, empty log, current set 1.
//
// Inputs:
//
//	s - State to restore. Nil maps are treated as empty.
//	logger - Logger for the restored ledger. If nil, logging is discarded.
//
// Outputs:
//
//	*Ledger - Ready for use.
func FromSnapshot(s Snapshot, logger *slog.Logger) *Ledger {
	l := New(logger)
	if s.CurrentSet >= 1 {
		l.currentSet = s.CurrentSet
	}
	for id, ps := range s.Players {
		sets := make(map[int]SetStats, len(ps.Sets))
		for n, set := range ps.Sets {
			cp := make(SetStats, len(set))
			for k, t := range set {
				cp[k] = t
			}
			sets[n] = cp
		}
		l.players[id] = &PlayerStats{Sets: sets}
	}
	for n, set := range s.Opponent {
		cp := make(map[ActionKind]int, len(set))
		for k, c := range set {
			cp[k] = c
		}
		l.opponent[n] = cp
	}
	if len(s.Log) > 0 {
		l.log = make([]LogEntry, len(s.Log))
		copy(l.log, s.Log)
	}
	return l
}
