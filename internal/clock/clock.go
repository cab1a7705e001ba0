// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clock queries the host for the current time and time zone.
package clock // import "github.com/startemporal/temporal/internal/clock"

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ZoneID returns the host's time zone identifier: $TZ if it names a zone,
// else the target of /etc/localtime, else UTC.
func ZoneID() string {
	if tz, ok := os.LookupEnv("TZ"); ok {
		if id := strings.TrimPrefix(tz, ":"); id != "" && !filepath.IsAbs(id) {
			return id
		}
	}
	if id, ok := zoneFromLink("/etc/localtime"); ok {
		return id
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	return "UTC"
}

// zoneFromLink extracts "Area/City" from a symlink into a zoneinfo tree.
func zoneFromLink(path string) (string, bool) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", false
	}
	const marker = "zoneinfo/"
	i := strings.LastIndex(target, marker)
	if i < 0 {
		return "", false
	}
	id := target[i+len(marker):]
	return id, id != ""
}
