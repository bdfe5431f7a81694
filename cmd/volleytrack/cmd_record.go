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

	"github.com/spf13/cobra"
)

// =============================================================================
// RECORD COMMANDS
// =============================================================================

func runRecordPlayer(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	p, err := resolvePlayer(app.session, args[0])
	if err != nil {
		fail("%v", err)
	}
	kind, err := parseAction(args[1])
	if err != nil {
		fail("%v", err)
	}
	outcome, err := parseOutcome(args[2])
	if err != nil {
		fail("%v", err)
	}

	if err := app.session.RecordPlayerAction(p.ID, kind, outcome); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Set %d: %s %s %s\n", app.session.CurrentSet(), p.Name, kind, outcome.Symbol())
}

func runRecordOpponent(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	kind, err := parseAction(args[0])
	if err != nil {
		fail("%v", err)
	}
	if err := app.session.RecordOpponentError(kind); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Set %d: opponent %s error\n", app.session.CurrentSet(), kind)
}

func runUndo(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	if app.session.UndoLastAction() {
		fmt.Println("Undid the last action")
	} else {
		fmt.Println("Nothing to undo")
	}
}
