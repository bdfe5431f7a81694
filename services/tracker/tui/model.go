// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui provides the interactive score-tracking terminal interface.
//
// # Description
//
// This package implements the live tracking view using bubbletea: the
// court and bench, per-player action and outcome keys, opponent-error
// keys, undo and set switching. It is a thin presentation layer over
// session.Session; all rules live in the roster and ledger packages.
//
// # Thread Safety
//
// The model is designed for single-threaded use within the bubbletea
// event loop. Do not access model state from multiple goroutines.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/session"
)

// =============================================================================
// Modes
// =============================================================================

// Mode determines which input the tracker is waiting for.
type Mode int

const (
	// ModeCourt is the idle view: court, bench and opponent row.
	ModeCourt Mode = iota

	// ModePickPlayer selects the player to score from a list.
	ModePickPlayer

	// ModePickAction selects the action kind for the chosen player.
	ModePickAction

	// ModePickOutcome selects the outcome for the chosen action.
	ModePickOutcome

	// ModeOpponent records an opponent error by kind.
	ModeOpponent
)

// =============================================================================
// Config
// =============================================================================

// Config configures the tracker TUI.
type Config struct {
	// Width overrides terminal width (0 = auto-detect).
	Width int

	// Height overrides terminal height (0 = auto-detect).
	Height int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

// =============================================================================
// Model
// =============================================================================

// playerItem adapts a roster player for the bubbles list.
type playerItem struct {
	player roster.Player
	badge  string
}

func (i playerItem) Title() string {
	if i.player.IsLibero {
		return i.player.Name + " (L)"
	}
	return i.player.Name
}

func (i playerItem) Description() string { return i.badge }
func (i playerItem) FilterValue() string { return i.player.Name }

// Model is the bubbletea model for live score tracking.
//
// # Description
//
// Holds the session handle, the current input mode and transient
// selection state. Every recorded action goes straight through the
// session so it is persisted before the next keypress.
type Model struct {
	config  Config
	session *session.Session

	mode Mode

	// Player picker
	playerList list.Model

	// Current selection while scoring
	selectedID   string
	selectedName string
	action       ledger.ActionKind

	// Preselected action for the next entry (set after a neutral serve).
	nextAction ledger.ActionKind

	// Terminal dimensions
	width  int
	height int

	// Status line
	status string

	ready    bool
	quitting bool
}

// NewModel creates a tracker model over an open session.
//
// # Inputs
//
//   - sess: The application session. Must not be nil.
//   - config: Configuration options.
//
// # Outputs
//
//   - Model: Ready-to-use model for tea.NewProgram.
func NewModel(sess *session.Session, config Config) Model {
	delegate := list.NewDefaultDelegate()
	pl := list.New(nil, delegate, 0, 0)
	pl.Title = "Who scored?"
	pl.SetShowStatusBar(false)
	pl.SetFilteringEnabled(false)
	pl.SetShowHelp(false)

	m := Model{
		config:     config,
		session:    sess,
		playerList: pl,
	}
	if config.Width > 0 && config.Height > 0 {
		m.width = config.Width
		m.height = config.Height
		m.playerList.SetSize(config.Width-4, config.Height-6)
		m.ready = true
	}
	m.refreshPlayerList()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playerList.SetSize(msg.Width-4, msg.Height-6)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		// Quit keys work in every mode.
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		switch m.mode {
		case ModeCourt:
			return m.updateCourt(msg)
		case ModePickPlayer:
			return m.updatePickPlayer(msg)
		case ModePickAction:
			return m.updatePickAction(msg)
		case ModePickOutcome:
			return m.updatePickOutcome(msg)
		case ModeOpponent:
			return m.updateOpponent(msg)
		}
	}

	return m, nil
}

// =============================================================================
// Mode handlers
// =============================================================================

func (m Model) updateCourt(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "enter", "p":
		if len(m.session.Players()) == 0 {
			m.status = "no players; add some with `volleytrack roster add`"
			return m, nil
		}
		m.refreshPlayerList()
		m.mode = ModePickPlayer
		m.status = ""

	case "1", "2", "3", "4", "5", "6", "7":
		// Direct slot selection.
		idx := int(msg.String()[0] - '1')
		if p, ok := m.session.PlayerInSlot(roster.Positions[idx]); ok {
			m.beginScoring(p)
		} else {
			m.status = fmt.Sprintf("slot %s is empty", slotLabel(roster.Positions[idx]))
		}

	case "e":
		m.mode = ModeOpponent
		m.status = ""

	case "u":
		if m.session.UndoLastAction() {
			m.status = "undid last action"
		} else {
			m.status = "nothing to undo"
		}

	case "]":
		m.changeSet(m.session.CurrentSet() + 1)

	case "[":
		m.changeSet(m.session.CurrentSet() - 1)
	}

	return m, nil
}

func (m Model) updatePickPlayer(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeCourt
		return m, nil

	case "enter":
		if item, ok := m.playerList.SelectedItem().(playerItem); ok {
			m.beginScoring(item.player)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playerList, cmd = m.playerList.Update(msg)
	return m, cmd
}

func (m Model) updatePickAction(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeCourt
		m.nextAction = ""
		return m, nil

	case "enter":
		// Accept the preselected action, if any.
		if m.nextAction != "" {
			m.action = m.nextAction
			m.nextAction = ""
			m.mode = ModePickOutcome
		}
		return m, nil

	case "s":
		m.action = ledger.ActionServe
	case "r":
		m.action = ledger.ActionReceive
	case "a":
		m.action = ledger.ActionAttack
	case "b":
		m.action = ledger.ActionBlock
	case "o":
		m.action = ledger.ActionOther
	default:
		return m, nil
	}

	m.nextAction = ""
	m.mode = ModePickOutcome
	return m, nil
}

func (m Model) updatePickOutcome(msg tea.KeyMsg) (Model, tea.Cmd) {
	var outcome ledger.Outcome

	switch msg.String() {
	case "esc", "q":
		m.mode = ModePickAction
		return m, nil

	case "+", "p":
		outcome = ledger.OutcomePositive
	case "~", "n", "=":
		outcome = ledger.OutcomeNeutral
	case "-", "m":
		outcome = ledger.OutcomeNegative
	default:
		return m, nil
	}

	if err := m.session.RecordPlayerAction(m.selectedID, m.action, outcome); err != nil {
		m.status = "not recorded: " + err.Error()
		m.mode = ModeCourt
		return m, nil
	}

	m.status = fmt.Sprintf("%s: %s %s", m.selectedName, m.action, outcome.Symbol())

	// A serve that stays in play usually leads to an attack by the same
	// side, so preselect it for the next entry.
	if m.action == ledger.ActionServe && outcome == ledger.OutcomeNeutral {
		m.nextAction = ledger.ActionAttack
		m.mode = ModePickAction
		return m, nil
	}

	m.mode = ModeCourt
	return m, nil
}

func (m Model) updateOpponent(msg tea.KeyMsg) (Model, tea.Cmd) {
	var kind ledger.ActionKind

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeCourt
		return m, nil

	case "s":
		kind = ledger.ActionServe
	case "a":
		kind = ledger.ActionAttack
	case "o":
		kind = ledger.ActionOther
	default:
		return m, nil
	}

	if err := m.session.RecordOpponentError(kind); err != nil {
		m.status = "not recorded: " + err.Error()
	} else {
		m.status = fmt.Sprintf("opponent error: %s", kind)
	}
	m.mode = ModeCourt
	return m, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (m *Model) beginScoring(p roster.Player) {
	m.selectedID = p.ID
	m.selectedName = p.Name
	m.action = ""
	m.mode = ModePickAction
	m.status = ""
}

func (m *Model) changeSet(n int) {
	if err := m.session.SetCurrentSet(n); err != nil {
		m.status = "already at set 1"
		return
	}
	m.status = fmt.Sprintf("now tracking set %d", n)
	m.nextAction = ""
}

func (m *Model) refreshPlayerList() {
	players := m.session.Players()
	items := make([]list.Item, 0, len(players))
	set := m.session.CurrentSet()
	for _, p := range players {
		stats := m.session.Aggregate(p.ID, set)
		badge := fmt.Sprintf("set %d: %d winners / %d errors",
			set, ledger.Winners(stats), ledger.Errors(stats))
		if p.Position != roster.NoPosition {
			badge = slotLabel(p.Position) + " · " + badge
		}
		items = append(items, playerItem{player: p, badge: badge})
	}
	m.playerList.SetItems(items)
}

// slotLabel maps a position slot to its display name.
func slotLabel(pos roster.Position) string {
	switch pos {
	case roster.Setter:
		return "Setter"
	case roster.OutsideHitter1:
		return "Outside 1"
	case roster.OutsideHitter2:
		return "Outside 2"
	case roster.MiddleBlocker1:
		return "Middle 1"
	case roster.MiddleBlocker2:
		return "Middle 2"
	case roster.OppositeHitter:
		return "Opposite"
	case roster.Libero:
		return "Libero"
	default:
		return string(pos)
	}
}
