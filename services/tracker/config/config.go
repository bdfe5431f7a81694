// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads the tracker's YAML configuration file.
//
// Configuration is intentionally small: where the database lives, whether
// writes are synchronous, and how to log. A missing config file is not an
// error; defaults apply. A present-but-invalid file is an error, because
// silently ignoring a file the user wrote hides typos.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "~/.volleylocal/config.yaml"

var validate = validator.New()

// Config is the full tracker configuration.
type Config struct {
	// DataDir is the BadgerDB directory. Created on first use.
	DataDir string `yaml:"data_dir" validate:"required"`

	// SyncWrites forces every write to disk before an operation returns.
	// Courtside score entry is not re-enterable, so this defaults to on.
	SyncWrites bool `yaml:"sync_writes"`

	// Log holds the logging settings.
	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Dir enables JSON file logging when non-empty. Supports ~ expansion.
	Dir string `yaml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DataDir:    "~/.volleylocal/data",
		SyncWrites: true,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads and validates the configuration at path.
//
// Description:
//
//	A missing file yields Default(). A file that exists but fails to
//	parse or validate is a hard error. ~ in path and in directory fields
//	is expanded against the user's home.
//
// Inputs:
//
//	path - Config file location. Empty means DefaultPath.
//
// Outputs:
//
//	Config - Ready for use, paths expanded.
//	error - Non-nil on unreadable, malformed or invalid content.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return expand(cfg)
		}
		return Config{}, fmt.Errorf("read config %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return expand(cfg)
}

func expand(cfg Config) (Config, error) {
	var err error
	if cfg.DataDir, err = ExpandHome(cfg.DataDir); err != nil {
		return Config{}, err
	}
	if cfg.Log.Dir, err = ExpandHome(cfg.Log.Dir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
