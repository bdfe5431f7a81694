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

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// =============================================================================
// RESET COMMAND
// =============================================================================

func runReset(cmd *cobra.Command, args []string) {
	if !resetYes {
		if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			fail("refusing to reset without a terminal; pass --yes to confirm")
		}

		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete ALL statistics and the undo history?").
				Description("The roster is kept. This cannot be undone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			fail("%v", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			os.Exit(exitSuccess)
		}
	}

	app := mustOpenApp()
	defer app.Close()

	app.session.ResetAll()
	fmt.Println("All statistics deleted. Roster kept. Now tracking set 1.")
}
