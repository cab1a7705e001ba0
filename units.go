// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"strings"

	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
)

// Unit is a duration or rounding unit, ordered from smallest to largest.
// The zero value, Auto, selects the operation's default.
type Unit int

const (
	Auto Unit = iota
	Nanosecond
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{"auto", "nanosecond", "microsecond", "millisecond", "second", "minute", "hour", "day", "week", "month", "year"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return "invalid"
	}
	return unitNames[u]
}

// ParseUnit parses a singular or plural unit name, e.g. "hour" or "hours".
func ParseUnit(s string) (Unit, error) {
	name := strings.TrimSuffix(s, "s")
	for i, n := range unitNames {
		if name == n || s == n {
			return Unit(i), nil
		}
	}
	return 0, errors.New(errors.InvalidArgument, "invalid unit %q", s)
}

// nanos returns the exact length of a time unit; a day counts 24 hours.
func (u Unit) nanos() int64 {
	switch u {
	case Nanosecond:
		return 1
	case Microsecond:
		return 1e3
	case Millisecond:
		return 1e6
	case Second:
		return 1e9
	case Minute:
		return 60e9
	case Hour:
		return 3600e9
	case Day:
		return nsPerDay
	}
	return 0
}

// isCalendar reports whether u has a variable length in every context.
func (u Unit) isCalendar() bool { return u >= Week }

// isDate reports whether u belongs to the date category.
func (u Unit) isDate() bool { return u >= Day }

func (u Unit) dateUnit() calendar.DateUnit {
	switch u {
	case Year:
		return calendar.Years
	case Month:
		return calendar.Months
	case Week:
		return calendar.Weeks
	}
	return calendar.Days
}

// maxIncrement returns the range a rounding increment must divide for a
// time unit, or 0 for units without one.
func (u Unit) maxIncrement() int64 {
	switch u {
	case Hour:
		return 24
	case Minute, Second:
		return 60
	case Millisecond, Microsecond, Nanosecond:
		return 1000
	}
	return 0
}

const nsPerDay = 86400e9

func largerUnit(a, b Unit) Unit {
	if a > b {
		return a
	}
	return b
}
