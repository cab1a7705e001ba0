// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !(linux || darwin || freebsd)

package clock

import "time"

// Now returns the wall clock as seconds and nanoseconds since the Unix
// epoch.
func Now() (sec, nsec int64, err error) {
	t := time.Now()
	return t.Unix(), int64(t.Nanosecond()), nil
}
