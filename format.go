// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"
	"strings"

	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/internal/isolex"
)

func formatFraction(ns int, p Precision) string {
	switch {
	case p == PrecisionAuto:
		if ns == 0 {
			return ""
		}
		return "." + strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	case p <= Digits(0):
		return ""
	}
	return "." + fmt.Sprintf("%09d", ns)[:int(p)-1]
}

// formatTime renders nanoseconds since midnight.
func formatTime(ns int64, p Precision) string {
	h, m, s := ns/3600e9, ns/60e9%60, ns/1e9%60
	if p == PrecisionMinute {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d%s", h, m, s, formatFraction(int(ns%1e9), p))
}

func calendarAnnotation(cal calendar.Calendar, name CalendarName) string {
	id := calendar.OrISO(cal).ID()
	switch name {
	case CalendarNever:
		return ""
	case CalendarAuto:
		if id == calendar.ISO.ID() {
			return ""
		}
	case CalendarCritical:
		return "[!u-ca=" + id + "]"
	}
	return "[u-ca=" + id + "]"
}

// calendarOf returns the calendar named by a parsed annotation.
func calendarOf(r isolex.Result) (calendar.Calendar, error) {
	if r.Calendar == "" {
		return calendar.ISO, nil
	}
	return calendar.Lookup(r.Calendar)
}

// timeOf returns the nanoseconds since midnight of a parsed time.
func timeOf(t isolex.Time) int64 {
	return (int64(t.Hour)*3600+int64(t.Minute)*60+int64(t.Second))*1e9 + int64(t.Nanosecond)
}
