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
	"strconv"

	"github.com/spf13/cobra"
)

// =============================================================================
// SET COMMANDS
// =============================================================================

func runSetGet(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	fmt.Println(app.session.CurrentSet())
}

func runSetSet(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	n, err := strconv.Atoi(args[0])
	if err != nil {
		fail("set number must be an integer, got %q", args[0])
	}
	if err := app.session.SetCurrentSet(n); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Now tracking set %d\n", n)
}
