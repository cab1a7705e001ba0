// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux || darwin || freebsd

package clock

import "golang.org/x/sys/unix"

// Now returns the realtime clock as seconds and nanoseconds since the Unix
// epoch.
func Now() (sec, nsec int64, err error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return 0, 0, err
	}
	sec, nsec = ts.Unix()
	return sec, nsec, nil
}
