// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jinterlante1206/VolleyLocal/pkg/logging"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/config"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/session"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/store"
	storagebadger "github.com/jinterlante1206/VolleyLocal/services/tracker/storage/badger"
)

// appContext bundles everything a command needs at runtime. Close releases
// the database and the log file.
type appContext struct {
	session *session.Session
	logger  *logging.Logger

	closers []func() error
}

// Close runs the registered cleanups in reverse order.
func (a *appContext) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// openApp wires config, logging, storage and the session for one command
// invocation.
//
// Description:
//
//	Loads the YAML config (or defaults when the file is absent), builds
//	the logger, opens the Badger database at the configured data
//	directory and loads the persisted state into a fresh session.
//
// Inputs:
//
//	quiet - Suppress stderr logging. Used while the TUI owns the
//	        terminal.
//
// Outputs:
//
//	*appContext - Caller must Close().
//	error - Config or database failures.
func openApp(quiet bool) (*appContext, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDirFlag != "" {
		cfg.DataDir, err = config.ExpandHome(dataDirFlag)
		if err != nil {
			return nil, fmt.Errorf("expand data dir: %w", err)
		}
	}

	logger := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Log.Level),
		LogDir:  cfg.Log.Dir,
		Service: "volleytrack",
		Quiet:   quiet,
	})

	dbCfg := storagebadger.DefaultConfig()
	dbCfg.Path = cfg.DataDir
	dbCfg.SyncWrites = cfg.SyncWrites
	dbCfg.Logger = logger.Slog()
	db, err := storagebadger.Open(dbCfg)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("open database at %s: %w", cfg.DataDir, err)
	}

	kv := store.NewBadgerKV(db)
	app := &appContext{
		session: session.Open(store.New(kv, logger.Slog()), logger.Slog()),
		logger:  logger,
		closers: []func() error{logger.Close, kv.Close},
	}
	return app, nil
}

// mustOpenApp is openApp for Run handlers: print and exit on failure.
func mustOpenApp() *appContext {
	app, err := openApp(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	return app
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(exitError)
}

// -----------------------------------------------------------------------------
// Argument parsing
// -----------------------------------------------------------------------------

// resolvePlayer finds a player by exact id, unique id prefix, or unique
// case-insensitive name.
func resolvePlayer(sess *session.Session, arg string) (roster.Player, error) {
	if p, ok := sess.Player(arg); ok {
		return p, nil
	}

	var matches []roster.Player
	lower := strings.ToLower(arg)
	for _, p := range sess.Players() {
		if strings.HasPrefix(p.ID, arg) || strings.ToLower(p.Name) == lower {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return roster.Player{}, fmt.Errorf("no player matches %q", arg)
	default:
		names := make([]string, len(matches))
		for i, p := range matches {
			names[i] = fmt.Sprintf("%s (%s)", p.Name, shortID(p.ID))
		}
		return roster.Player{}, fmt.Errorf("%q is ambiguous: %s", arg, strings.Join(names, ", "))
	}
}

// parsePosition maps user input to a position slot. "bench" and "none"
// mean unassigned.
func parsePosition(arg string) (roster.Position, error) {
	switch strings.ToLower(arg) {
	case "bench", "none":
		return roster.NoPosition, nil
	case "setter", "s":
		return roster.Setter, nil
	case "outsidehitter1", "outside1", "oh1":
		return roster.OutsideHitter1, nil
	case "outsidehitter2", "outside2", "oh2":
		return roster.OutsideHitter2, nil
	case "middleblocker1", "middle1", "mb1":
		return roster.MiddleBlocker1, nil
	case "middleblocker2", "middle2", "mb2":
		return roster.MiddleBlocker2, nil
	case "oppositehitter", "opposite", "opp":
		return roster.OppositeHitter, nil
	case "libero", "lib", "l":
		return roster.Libero, nil
	default:
		return roster.NoPosition, fmt.Errorf("unknown position %q", arg)
	}
}

// parseAction maps user input to an action kind.
func parseAction(arg string) (ledger.ActionKind, error) {
	switch strings.ToLower(arg) {
	case "serve", "s":
		return ledger.ActionServe, nil
	case "receive", "r":
		return ledger.ActionReceive, nil
	case "attack", "a":
		return ledger.ActionAttack, nil
	case "block", "b":
		return ledger.ActionBlock, nil
	case "other", "o":
		return ledger.ActionOther, nil
	default:
		return "", fmt.Errorf("unknown action %q", arg)
	}
}

// parseOutcome maps user input to an outcome.
func parseOutcome(arg string) (ledger.Outcome, error) {
	switch strings.ToLower(arg) {
	case "+", "positive", "p", "won", "win":
		return ledger.OutcomePositive, nil
	case "~", "neutral", "n", "play":
		return ledger.OutcomeNeutral, nil
	case "-", "negative", "m", "error", "err":
		return ledger.OutcomeNegative, nil
	default:
		return "", fmt.Errorf("unknown outcome %q", arg)
	}
}

// shortID abbreviates a uuid for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
