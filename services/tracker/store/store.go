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
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
)

// Fixed persisted-blob keys. These names are the storage schema; changing
// one strands existing data.
const (
	KeyPlayers       = "players"
	KeyPlayerStats   = "volleyballPlayerStatistics"
	KeyOpponentStats = "volleyballOpponentErrors"
	KeyActionStack   = "volleyballActionStack"
	KeyCurrentSet    = "volleyballCurrentSet"
)

// Store reads and writes the tracker's persisted state through a KV.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// New creates a store over the given KV. The store does not take
// ownership of the KV; callers close it.
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

// -----------------------------------------------------------------------------
// Persisted forms
// -----------------------------------------------------------------------------

// storedPlayerStats is the on-disk shape of one player's tallies. A
// legacy blob may hold the set-1 action map directly, without the sets
// wrapper; UnmarshalJSON reinterprets such data as {"sets":{"1":old}}.
type storedPlayerStats struct {
	Sets map[string]map[ledger.ActionKind]ledger.Tally `json:"sets"`
}

func (s *storedPlayerStats) UnmarshalJSON(data []byte) error {
	type wrapped storedPlayerStats
	var w wrapped
	if err := json.Unmarshal(data, &w); err == nil && w.Sets != nil {
		s.Sets = w.Sets
		return nil
	}

	// Legacy format: the action map at top level is set 1's data.
	var legacy map[ledger.ActionKind]ledger.Tally
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	s.Sets = map[string]map[ledger.ActionKind]ledger.Tally{"1": legacy}
	return nil
}

// -----------------------------------------------------------------------------
// Roster
// -----------------------------------------------------------------------------

// LoadRoster reads the persisted player records. A missing or malformed
// blob yields an empty roster with a warning, never an error.
func (s *Store) LoadRoster() []roster.Player {
	raw, ok := s.get(KeyPlayers)
	if !ok {
		return nil
	}
	var players []roster.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		s.logger.Warn("malformed roster blob, starting empty",
			slog.String("key", KeyPlayers),
			slog.String("error", err.Error()))
		return nil
	}
	return players
}

// SaveRoster writes the player records.
func (s *Store) SaveRoster(players []roster.Player) error {
	if players == nil {
		players = []roster.Player{}
	}
	return s.setJSON(KeyPlayers, players)
}

// -----------------------------------------------------------------------------
// Ledger
// -----------------------------------------------------------------------------

// LoadLedger reads the tally maps, the action log and the current-set
// pointer into a ledger snapshot. Each blob degrades independently: a
// malformed one falls back to its empty default.
func (s *Store) LoadLedger() ledger.Snapshot {
	snap := ledger.Snapshot{
		Players:    s.loadPlayerStats(),
		Opponent:   s.loadOpponentStats(),
		Log:        s.loadActionLog(),
		CurrentSet: s.loadCurrentSet(),
	}
	return snap
}

// SaveLedger writes all four ledger blobs.
func (s *Store) SaveLedger(snap ledger.Snapshot) error {
	if err := s.SavePlayerStats(snap); err != nil {
		return err
	}
	if err := s.SaveOpponentStats(snap); err != nil {
		return err
	}
	if err := s.SaveActionLog(snap.Log); err != nil {
		return err
	}
	return s.SaveCurrentSet(snap.CurrentSet)
}

// SavePlayerStats writes the player-tallies blob from a snapshot.
func (s *Store) SavePlayerStats(snap ledger.Snapshot) error {
	out := make(map[string]storedPlayerStats, len(snap.Players))
	for id, ps := range snap.Players {
		sets := make(map[string]map[ledger.ActionKind]ledger.Tally, len(ps.Sets))
		for n, set := range ps.Sets {
			sets[strconv.Itoa(n)] = set
		}
		out[id] = storedPlayerStats{Sets: sets}
	}
	return s.setJSON(KeyPlayerStats, out)
}

// SaveOpponentStats writes the opponent-tallies blob from a snapshot.
func (s *Store) SaveOpponentStats(snap ledger.Snapshot) error {
	out := make(map[string]map[ledger.ActionKind]int, len(snap.Opponent))
	for n, set := range snap.Opponent {
		out[strconv.Itoa(n)] = set
	}
	return s.setJSON(KeyOpponentStats, out)
}

// SaveActionLog writes the undo stack blob.
func (s *Store) SaveActionLog(log []ledger.LogEntry) error {
	if log == nil {
		log = []ledger.LogEntry{}
	}
	return s.setJSON(KeyActionStack, log)
}

// SaveCurrentSet writes the current-set pointer as a decimal string.
func (s *Store) SaveCurrentSet(n int) error {
	return s.kv.Set(KeyCurrentSet, []byte(strconv.Itoa(n)))
}

// Clear removes every persisted blob and resets the current set to 1.
// Backs the irreversible reset-all operation.
func (s *Store) Clear() error {
	for _, key := range []string{KeyPlayerStats, KeyOpponentStats, KeyActionStack} {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
	}
	return s.SaveCurrentSet(1)
}

// -----------------------------------------------------------------------------
// Loaders
// -----------------------------------------------------------------------------

func (s *Store) loadPlayerStats() map[string]ledger.PlayerSnapshot {
	raw, ok := s.get(KeyPlayerStats)
	if !ok {
		return nil
	}
	var stored map[string]storedPlayerStats
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("malformed player statistics blob, starting empty",
			slog.String("key", KeyPlayerStats),
			slog.String("error", err.Error()))
		return nil
	}

	out := make(map[string]ledger.PlayerSnapshot, len(stored))
	for id, ps := range stored {
		sets := make(map[int]ledger.SetStats, len(ps.Sets))
		for key, set := range ps.Sets {
			n, err := strconv.Atoi(key)
			if err != nil || n < 1 {
				s.logger.Warn("dropping tallies under invalid set number",
					slog.String("player_id", id),
					slog.String("set", key))
				continue
			}
			sets[n] = ledger.SetStats(set)
		}
		out[id] = ledger.PlayerSnapshot{Sets: sets}
	}
	return out
}

func (s *Store) loadOpponentStats() map[int]map[ledger.ActionKind]int {
	raw, ok := s.get(KeyOpponentStats)
	if !ok {
		return nil
	}
	var stored map[string]map[ledger.ActionKind]int
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("malformed opponent errors blob, starting empty",
			slog.String("key", KeyOpponentStats),
			slog.String("error", err.Error()))
		return nil
	}
	out := make(map[int]map[ledger.ActionKind]int, len(stored))
	for key, set := range stored {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 {
			s.logger.Warn("dropping opponent errors under invalid set number",
				slog.String("set", key))
			continue
		}
		out[n] = set
	}
	return out
}

func (s *Store) loadActionLog() []ledger.LogEntry {
	raw, ok := s.get(KeyActionStack)
	if !ok {
		return nil
	}
	var log []ledger.LogEntry
	if err := json.Unmarshal(raw, &log); err != nil {
		s.logger.Warn("malformed action stack blob, starting empty",
			slog.String("key", KeyActionStack),
			slog.String("error", err.Error()))
		return nil
	}
	return log
}

func (s *Store) loadCurrentSet() int {
	raw, ok := s.get(KeyCurrentSet)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 1 {
		s.logger.Warn("malformed current set value, defaulting to 1",
			slog.String("value", string(raw)))
		return 1
	}
	return n
}

// get reads one key, folding KV errors into the missing case with a
// warning. Load never fails hard.
func (s *Store) get(key string) ([]byte, bool) {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Warn("storage read failed, using empty default",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	return raw, ok
}

func (s *Store) setJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Set(key, raw)
}
