// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.starlark.net/resolve"
	"gopkg.in/yaml.v3"

	"github.com/startemporal/temporal"
)

// config is the optional YAML configuration file.
type config struct {
	// TimeZone overrides the host time zone reported by the clock.
	TimeZone string `yaml:"time_zone"`
	// Now fixes the clock at an instant, for reproducible scripts.
	Now         string  `yaml:"now"`
	Prompt      string  `yaml:"prompt"`
	HistoryFile string  `yaml:"history_file"`
	Dialect     dialect `yaml:"dialect"`
}

// dialect holds the non-standard Starlark language switches.
type dialect struct {
	Set            bool `yaml:"set"`
	Recursion      bool `yaml:"recursion"`
	GlobalReassign bool `yaml:"global_reassign"`
}

// defaultConfigPath returns $XDG_CONFIG_HOME/temporal/config.yaml or its
// equivalent for the platform.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "temporal", "config.yaml")
}

// loadConfig reads path. A missing file is not an error unless required.
func loadConfig(path string, required bool) (config, error) {
	var c config
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// apply enables the dialect switches set in c.
func (d dialect) apply() {
	resolve.AllowSet = resolve.AllowSet || d.Set
	resolve.AllowRecursion = resolve.AllowRecursion || d.Recursion
	resolve.AllowGlobalReassign = resolve.AllowGlobalReassign || d.GlobalReassign
}

// zoneClock is the system clock reporting a configured host zone.
type zoneClock struct {
	temporal.SystemClock
	zone string
}

func (c zoneClock) TimeZoneID() string { return c.zone }

// clock returns the clock selected by c.
func (c config) clock() (temporal.Clock, error) {
	if c.Now != "" {
		i, err := temporal.ParseInstant(c.Now)
		if err != nil {
			return nil, fmt.Errorf("now: %w", err)
		}
		return temporal.FixedClock{Instant: i, Zone: c.TimeZone}, nil
	}
	if c.TimeZone != "" {
		if _, err := temporal.TimeZones.Canonicalize(c.TimeZone); err != nil {
			return nil, fmt.Errorf("time_zone: %w", err)
		}
		return zoneClock{zone: c.TimeZone}, nil
	}
	return temporal.SystemClock{}, nil
}
