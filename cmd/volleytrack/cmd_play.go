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
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/tui"
)

// =============================================================================
// PLAY COMMAND
// =============================================================================

func runPlay(cmd *cobra.Command, args []string) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fail("play needs an interactive terminal")
	}

	// Keep stderr clean while bubbletea owns the screen; logs still go
	// to the configured log file.
	app, err := openApp(true)
	if err != nil {
		fail("%v", err)
	}
	defer app.Close()

	model := tui.NewModel(app.session, tui.DefaultConfig())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fail("%v", err)
	}
}
