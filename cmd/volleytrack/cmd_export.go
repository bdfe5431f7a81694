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

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/VolleyLocal/services/tracker/export"
)

// =============================================================================
// EXPORT COMMAND
// =============================================================================

func runExport(cmd *cobra.Command, args []string) {
	app := mustOpenApp()
	defer app.Close()

	rows := export.Rows(app.session)

	if exportOut == "" {
		if err := export.WriteCSV(os.Stdout, rows); err != nil {
			fail("%v", err)
		}
		return
	}

	f, err := os.Create(exportOut)
	if err != nil {
		fail("%v", err)
	}
	if err := export.WriteCSV(f, rows); err != nil {
		f.Close()
		fail("%v", err)
	}
	if err := f.Close(); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(rows), exportOut)
}
