// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isolex

import (
	"math"
	"strings"

	"github.com/startemporal/temporal/errors"
)

// Duration is a scanned ISO 8601 duration. Components are magnitudes;
// Negative carries the sign.
type Duration struct {
	Negative bool

	Years, Months, Weeks, Days              int64
	Hours, Minutes, Seconds                 int64
	Milliseconds, Microseconds, Nanoseconds int64
}

// nanosPer holds the length of the time designators H, M and S.
var nanosPer = map[byte]int64{'H': 3600e9, 'M': 60e9, 'S': 1e9}

// ParseDuration scans ±PnYnMnWnDTnHnMnS. A fraction is allowed only on
// the last time component and is distributed into the smaller units.
func ParseDuration(src string) (Duration, error) {
	var d Duration
	s := &scanner{src: src}
	switch s.peek() {
	case '-':
		d.Negative = true
		s.pos++
	case '+':
		s.pos++
	}
	if !s.accept("Pp") {
		return d, s.fail("duration designator")
	}
	order := "YMWD"
	inTime := false
	seen, seenTime := false, false
	var fracNanos int64
	sawFraction := false
	for !s.eof() {
		if s.accept("Tt") {
			if inTime {
				return d, s.fail("duration time designator")
			}
			inTime = true
			order = "HMS"
			continue
		}
		if sawFraction {
			return d, s.fail("duration component after fraction")
		}
		start := s.pos
		var v int64
		for !s.eof() && isDigit(s.peek()) {
			c := int64(s.peek() - '0')
			if v > (math.MaxInt64-c)/10 {
				return d, errors.Parse(src[start:s.pos+1], "duration component too large")
			}
			v = v*10 + c
			s.pos++
		}
		if s.pos == start {
			return d, s.fail("duration component")
		}
		frac, hasFrac, err := s.fraction()
		if err != nil {
			return d, err
		}
		if s.eof() {
			return d, s.fail("duration unit")
		}
		unit := s.peek() &^ 0x20 // upper case
		i := strings.IndexByte(order, unit)
		if i < 0 {
			return d, s.fail("duration unit")
		}
		order = order[i+1:]
		s.pos++
		if hasFrac && !inTime {
			return d, errors.Parse(src[start:s.pos], "fraction on a date component")
		}
		seen = true
		seenTime = seenTime || inTime
		if !inTime {
			switch unit {
			case 'Y':
				d.Years = v
			case 'M':
				d.Months = v
			case 'W':
				d.Weeks = v
			case 'D':
				d.Days = v
			}
			continue
		}
		switch unit {
		case 'H':
			d.Hours = v
		case 'M':
			d.Minutes = v
		case 'S':
			d.Seconds = v
		}
		if hasFrac {
			sawFraction = true
			// frac is in billionths of the unit.
			fracNanos = frac * (nanosPer[unit] / 1e9)
		}
	}
	if !seen {
		return d, errors.Parse(src, "duration has no components")
	}
	if inTime && !seenTime {
		return d, errors.Parse(src, "time designator without time components")
	}
	if fracNanos != 0 {
		d.Minutes += fracNanos / 60e9
		fracNanos %= 60e9
		d.Seconds += fracNanos / 1e9
		fracNanos %= 1e9
		d.Milliseconds = fracNanos / 1e6
		d.Microseconds = fracNanos / 1e3 % 1e3
		d.Nanoseconds = fracNanos % 1e3
	}
	return d, nil
}
