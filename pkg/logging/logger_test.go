// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"  error  ", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.toSlogLevel())
	assert.Equal(t, slog.LevelInfo, LevelInfo.toSlogLevel())
	assert.Equal(t, slog.LevelWarn, LevelWarn.toSlogLevel())
	assert.Equal(t, slog.LevelError, LevelError.toSlogLevel())
	assert.Equal(t, slog.LevelInfo, Level(42).toSlogLevel())
}

// =============================================================================
// Logger Tests
// =============================================================================

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelDebug,
		LogDir:  dir,
		Service: "test",
		Quiet:   true,
	})
	logger.Info("hello", "key", "value")
	require.NoError(t, logger.Close())

	filename := "test_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "test", entry["service"])
}

func TestNew_DefaultServiceName(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{LogDir: dir, Quiet: true})
	logger.Info("named")
	require.NoError(t, logger.Close())

	filename := "volleylocal_" + time.Now().Format("2006-01-02") + ".log"
	_, err := os.Stat(filepath.Join(dir, filename))
	assert.NoError(t, err)
}

func TestNew_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filter",
		Quiet:   true,
	})
	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept too")
	require.NoError(t, logger.Close())

	filename := "filter_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "dropped")
	assert.Contains(t, text, "kept")
	assert.Contains(t, text, "kept too")
}

func TestNew_QuietWithoutFile(t *testing.T) {
	logger := New(Config{Quiet: true})
	// Nothing to assert beyond not panicking; output is discarded.
	logger.Info("into the void")
	assert.NoError(t, logger.Close())
}

func TestNew_BadLogDir(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail; the
	// logger must still work.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0640))

	logger := New(Config{LogDir: blocker, Quiet: true})
	logger.Info("no file")
	assert.NoError(t, logger.Close())
}

func TestClose_Idempotent(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Quiet: true})
	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}

func TestWith_AddsAttributes(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{LogDir: dir, Service: "with", Quiet: true})
	child := logger.With("player", "p1")
	child.Info("recorded")
	require.NoError(t, logger.Close())

	filename := "with_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "p1", entry["player"])
}

func TestSlog_ReturnsUsableLogger(t *testing.T) {
	logger := New(Config{Quiet: true})
	defer logger.Close()

	s := logger.Slog()
	require.NotNil(t, s)
	s.Info("through slog")
}

func TestDefault(t *testing.T) {
	logger := Default()
	defer logger.Close()
	require.NotNil(t, logger)
	assert.Equal(t, LevelInfo, logger.config.Level)
	assert.Equal(t, "volleylocal", logger.config.Service)
}

// =============================================================================
// multiHandler Tests
// =============================================================================

type countingHandler struct {
	level slog.Level
	count int
}

func (c *countingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level
}

func (c *countingHandler) Handle(_ context.Context, _ slog.Record) error {
	c.count++
	return nil
}

func (c *countingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return c }
func (c *countingHandler) WithGroup(_ string) slog.Handler      { return c }

func TestMultiHandler_FansOut(t *testing.T) {
	a := &countingHandler{level: slog.LevelDebug}
	b := &countingHandler{level: slog.LevelWarn}
	m := &multiHandler{handlers: []slog.Handler{a, b}}

	logger := slog.New(m)
	logger.Info("info")
	logger.Warn("warn")

	assert.Equal(t, 2, a.count, "debug-level handler sees both records")
	assert.Equal(t, 1, b.count, "warn-level handler sees only the warn")
}

func TestMultiHandler_Enabled(t *testing.T) {
	a := &countingHandler{level: slog.LevelError}
	b := &countingHandler{level: slog.LevelInfo}
	m := &multiHandler{handlers: []slog.Handler{a, b}}

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug))
}

// =============================================================================
// expandPath Tests
// =============================================================================

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, filepath.Join(home, "logs"), expandPath("~/logs"))
	assert.Equal(t, "/var/log", expandPath("/var/log"))
	assert.Equal(t, "relative/path", expandPath("relative/path"))
}
