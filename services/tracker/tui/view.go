// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/ledger"
	"github.com/jinterlante1206/VolleyLocal/services/tracker/roster"
)

// Short labels for the opponent-error row.
var opponentShortLabels = map[ledger.ActionKind]string{
	ledger.ActionServe:  "S",
	ledger.ActionAttack: "A",
	ledger.ActionOther:  "O",
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Tracking saved.\n"
	}

	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.mode {
	case ModePickPlayer:
		b.WriteString(m.playerList.View())
	default:
		b.WriteString(m.renderCourt())
		b.WriteString("\n")
		b.WriteString(m.renderBench())
		b.WriteString("\n")
		b.WriteString(m.renderOpponentRow())
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())

	return b.String()
}

// =============================================================================
// Sections
// =============================================================================

func (m Model) renderHeader() string {
	title := titleStyle.Render("volleytrack")
	set := setStyle.Render(fmt.Sprintf("Set %d", m.session.CurrentSet()))
	undo := mutedStyle.Render(fmt.Sprintf("%d undoable", m.session.LogLen()))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", set, "  ", undo)
}

// renderCourt draws the seven slots, front row over back row, with the
// libero box alongside. Slot hotkeys follow roster.Positions order.
func (m Model) renderCourt() string {
	boxes := make([]string, len(roster.Positions))
	for i, pos := range roster.Positions {
		boxes[i] = m.renderSlot(i+1, pos)
	}

	front := lipgloss.JoinHorizontal(lipgloss.Top, boxes[1], boxes[3], boxes[5])
	back := lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[4], boxes[2])
	court := lipgloss.JoinVertical(lipgloss.Left, front, back)
	return lipgloss.JoinHorizontal(lipgloss.Top, court, " ", boxes[6])
}

func (m Model) renderSlot(hotkey int, pos roster.Position) string {
	label := mutedStyle.Render(fmt.Sprintf("%d %s", hotkey, slotLabel(pos)))

	p, ok := m.session.PlayerInSlot(pos)
	if !ok {
		return emptySlotStyle.Render(label + "\n" + mutedStyle.Render("—"))
	}

	name := p.Name
	if p.IsLibero {
		name += " (L)"
	}

	stats := m.session.Aggregate(p.ID, m.session.CurrentSet())
	line := fmt.Sprintf("%dW %dE", ledger.Winners(stats), ledger.Errors(stats))

	style := slotStyle
	if pos == roster.Libero {
		style = liberoSlotStyle
	}
	return style.Render(label + "\n" + nameStyle.Render(name) + "\n" + statsLineStyle.Render(line))
}

func (m Model) renderBench() string {
	var names []string
	for _, p := range m.session.Players() {
		if p.Position != roster.NoPosition {
			continue
		}
		name := p.Name
		if p.IsLibero {
			name += " (L)"
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return mutedStyle.Render("bench: empty")
	}
	return mutedStyle.Render("bench: ") + strings.Join(names, ", ")
}

func (m Model) renderOpponentRow() string {
	counts := m.session.OpponentAggregate(m.session.CurrentSet())
	parts := make([]string, 0, len(ledger.OpponentActions))
	for _, kind := range ledger.OpponentActions {
		parts = append(parts, fmt.Sprintf("%s:%d", opponentShortLabels[kind], counts[kind]))
	}
	return mutedStyle.Render("opponent errors  ") + opponentStyle.Render(strings.Join(parts, "  "))
}

func (m Model) renderFooter() string {
	var keys [][2]string

	switch m.mode {
	case ModeCourt:
		keys = [][2]string{
			{"enter", "pick player"},
			{"1-7", "slot"},
			{"e", "opponent error"},
			{"u", "undo"},
			{"[/]", "set"},
			{"q", "quit"},
		}
	case ModePickPlayer:
		keys = [][2]string{
			{"↑/↓", "move"},
			{"enter", "select"},
			{"esc", "back"},
		}
	case ModePickAction:
		keys = [][2]string{
			{"s", "serve"},
			{"r", "receive"},
			{"a", "attack"},
			{"b", "block"},
			{"o", "other"},
			{"esc", "back"},
		}
		if m.nextAction != "" {
			keys = append([][2]string{{"enter", strings.ToLower(string(m.nextAction))}}, keys...)
		}
	case ModePickOutcome:
		keys = [][2]string{
			{"+", "won point"},
			{"~", "in play"},
			{"-", "error"},
			{"esc", "back"},
		}
	case ModeOpponent:
		keys = [][2]string{
			{"s", "serve error"},
			{"a", "attack error"},
			{"o", "other error"},
			{"esc", "back"},
		}
	}

	parts := make([]string, 0, len(keys)+1)
	if m.mode == ModePickAction {
		parts = append(parts, nameStyle.Render(m.selectedName)+mutedStyle.Render(" — action?"))
	}
	if m.mode == ModePickOutcome {
		parts = append(parts, nameStyle.Render(m.selectedName)+mutedStyle.Render(
			fmt.Sprintf(" — %s: outcome?", strings.ToLower(string(m.action)))))
	}
	for _, k := range keys {
		parts = append(parts, helpKeyStyle.Render(k[0])+" "+helpDescStyle.Render(k[1]))
	}
	return strings.Join(parts, "   ")
}

// =============================================================================
// Styles
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	setStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("250"))

	statsLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(16)

	liberoSlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1).
			Width(16)

	emptySlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			Width(16)

	opponentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
)
