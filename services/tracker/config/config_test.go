// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadMissingFileUsesDefaults verifies a missing file is not an
// error.
func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.SyncWrites)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotContains(t, cfg.DataDir, "~", "home expanded")
}

// TestLoadFile verifies YAML values override defaults.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"data_dir: /tmp/volley\nsync_writes: false\nlog:\n  level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/volley", cfg.DataDir)
	assert.False(t, cfg.SyncWrites)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestLoadRejectsBadContent verifies malformed YAML and invalid values
// are hard errors.
func TestLoadRejectsBadContent(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("data_dir: [oops\n"), 0o600))
	_, err := Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(
		"data_dir: /tmp/volley\nlog:\n  level: loud\n"), 0o600))
	_, err = Load(invalid)
	assert.Error(t, err)
}

// TestExpandHome verifies ~ handling.
func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/x/y")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), got)

	got, err = ExpandHome("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)

	got, err = ExpandHome("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
