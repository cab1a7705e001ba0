// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/rounding"
	"github.com/startemporal/temporal/tz"
)

// A RoundingMode selects how a value between two increments is rounded.
// The zero value selects the operation's default.
type RoundingMode = rounding.Mode

const (
	Ceil       = rounding.Ceil
	Floor      = rounding.Floor
	Expand     = rounding.Expand
	Trunc      = rounding.Trunc
	HalfCeil   = rounding.HalfCeil
	HalfFloor  = rounding.HalfFloor
	HalfExpand = rounding.HalfExpand
	HalfTrunc  = rounding.HalfTrunc
	HalfEven   = rounding.HalfEven
)

// ParseRoundingMode parses a mode name such as "halfExpand".
func ParseRoundingMode(s string) (RoundingMode, error) { return rounding.Parse(s) }

// Overflow and Disambiguation are re-exported for convenience.
type (
	Overflow       = calendar.Overflow
	Disambiguation = tz.Disambiguation
)

// OffsetOption selects how an explicit UTC offset is reconciled with the
// time zone when a ZonedDateTime is built from text or fields.
type OffsetOption int

const (
	// OffsetDefault selects Reject for parsing and Prefer for With.
	OffsetDefault OffsetOption = iota
	// OffsetUse takes the offset as given and ignores the zone's rules.
	OffsetUse
	// OffsetIgnore resolves the local time in the zone, ignoring the offset.
	OffsetIgnore
	// OffsetPrefer uses the offset if the zone allows it, else resolves.
	OffsetPrefer
	// OffsetReject fails unless the zone allows the offset.
	OffsetReject
)

var offsetOptionNames = [...]string{"", "use", "ignore", "prefer", "reject"}

func (o OffsetOption) String() string { return offsetOptionNames[o] }

func (o OffsetOption) or(def OffsetOption) OffsetOption {
	if o == OffsetDefault {
		return def
	}
	return o
}

// ParseOffsetOption parses "use", "ignore", "prefer" or "reject".
func ParseOffsetOption(s string) (OffsetOption, error) {
	return parseEnum[OffsetOption](s, offsetOptionNames[:], "offset")
}

// CalendarName controls the [u-ca=...] annotation in text output.
type CalendarName int

const (
	// CalendarAuto annotates non-ISO calendars only.
	CalendarAuto CalendarName = iota
	CalendarAlways
	CalendarNever
	// CalendarCritical annotates always, with the critical flag.
	CalendarCritical
)

var calendarNameNames = [...]string{"auto", "always", "never", "critical"}

// ParseCalendarName parses "auto", "always", "never" or "critical".
func ParseCalendarName(s string) (CalendarName, error) {
	return parseEnum[CalendarName](s, calendarNameNames[:], "calendarName")
}

// TimeZoneName controls the [zone] annotation of a ZonedDateTime.
type TimeZoneName int

const (
	TimeZoneAuto TimeZoneName = iota
	TimeZoneNever
	TimeZoneCritical
)

var timeZoneNameNames = [...]string{"auto", "never", "critical"}

// ParseTimeZoneName parses "auto", "never" or "critical".
func ParseTimeZoneName(s string) (TimeZoneName, error) {
	return parseEnum[TimeZoneName](s, timeZoneNameNames[:], "timeZoneName")
}

// OffsetDisplay controls the UTC offset of a ZonedDateTime in text output.
type OffsetDisplay int

const (
	OffsetAuto OffsetDisplay = iota
	OffsetNever
)

var offsetDisplayNames = [...]string{"auto", "never"}

// ParseOffsetDisplay parses "auto" or "never".
func ParseOffsetDisplay(s string) (OffsetDisplay, error) {
	return parseEnum[OffsetDisplay](s, offsetDisplayNames[:], "offset")
}

func parseEnum[T ~int](s string, names []string, what string) (T, error) {
	if s == "" {
		return 0, nil
	}
	for i, n := range names {
		if n != "" && n == s {
			return T(i), nil
		}
	}
	return 0, errors.New(errors.InvalidArgument, "invalid %s %q", what, s)
}

// Precision is the number of fractional second digits in text output.
// The zero value, PrecisionAuto, prints as many digits as needed.
type Precision int

const (
	PrecisionAuto Precision = 0
	// PrecisionMinute omits the seconds field entirely.
	PrecisionMinute Precision = -1
)

// Digits returns the precision of exactly n fractional digits, 0 <= n <= 9.
func Digits(n int) Precision { return Precision(n + 1) }

// DifferenceOptions configures Until and Since.
type DifferenceOptions struct {
	LargestUnit       Unit
	SmallestUnit      Unit
	RoundingIncrement int64
	// RoundingMode defaults to Trunc.
	RoundingMode RoundingMode
}

// RoundOptions configures Round on date and time values.
type RoundOptions struct {
	SmallestUnit      Unit
	RoundingIncrement int64
	// RoundingMode defaults to HalfExpand.
	RoundingMode RoundingMode
}

// ToStringOptions configures the Format methods. The zero value produces
// the canonical text returned by String.
type ToStringOptions struct {
	CalendarName           CalendarName
	TimeZoneName           TimeZoneName
	Offset                 OffsetDisplay
	FractionalSecondDigits Precision
	// SmallestUnit, when set, overrides FractionalSecondDigits.
	SmallestUnit Unit
	// RoundingMode defaults to Trunc.
	RoundingMode RoundingMode
	// TimeZone, for Instant only, renders the local time and offset of
	// that zone instead of UTC.
	TimeZone string
}

// ZonedOptions configures construction of a ZonedDateTime from fields or
// text, and ZonedDateTime.With.
type ZonedOptions struct {
	Overflow       Overflow
	Disambiguation Disambiguation
	Offset         OffsetOption
}

// precision resolves the formatting precision and the rounding increment
// in nanoseconds.
func (o ToStringOptions) precision() (Precision, int64, error) {
	switch o.SmallestUnit {
	case Auto:
	case Minute:
		return PrecisionMinute, 60e9, nil
	case Second:
		return Digits(0), 1e9, nil
	case Millisecond:
		return Digits(3), 1e6, nil
	case Microsecond:
		return Digits(6), 1e3, nil
	case Nanosecond:
		return Digits(9), 1, nil
	default:
		return 0, 0, errors.New(errors.InvalidArgument, "invalid smallestUnit %s for formatting", o.SmallestUnit)
	}
	p := o.FractionalSecondDigits
	switch {
	case p == PrecisionAuto:
		return p, 1, nil
	case p < PrecisionMinute || p > Digits(9):
		return 0, 0, errors.New(errors.InvalidArgument, "fractionalSecondDigits out of range")
	case p == PrecisionMinute:
		return p, 60e9, nil
	}
	inc := int64(1)
	for i := int(p) - 1; i < 9; i++ {
		inc *= 10
	}
	return p, inc, nil
}

// validateIncrement validates a rounding increment against the unit's range. A
// max of zero means the unit has no limit.
func validateIncrement(inc, max int64, inclusive bool) (int64, error) {
	if inc == 0 {
		inc = 1
	}
	if inc < 1 || inc > 1e9 {
		return 0, errors.New(errors.InvalidRoundingIncrement, "roundingIncrement %d out of range", inc)
	}
	if max == 0 {
		return inc, nil
	}
	limit := max
	if !inclusive {
		limit--
	}
	if inc > limit || max%inc != 0 {
		return 0, errors.New(errors.InvalidRoundingIncrement, "roundingIncrement %d does not divide %d", inc, max)
	}
	return inc, nil
}

// differenceSettings are resolved DifferenceOptions.
type differenceSettings struct {
	largest, smallest Unit
	inc               int64
	mode              RoundingMode
}

// resolve validates o for a type whose units lie in [minUnit, maxUnit].
func (o DifferenceOptions) resolve(minUnit, maxUnit, defLargest, defSmallest Unit, negate bool) (differenceSettings, error) {
	s := differenceSettings{largest: o.LargestUnit, smallest: o.SmallestUnit, mode: o.RoundingMode.Or(Trunc)}
	if negate {
		s.mode = s.mode.Negate()
	}
	if s.smallest == Auto {
		s.smallest = defSmallest
	}
	if s.smallest < minUnit || s.smallest > maxUnit {
		return s, errors.New(errors.InvalidArgument, "smallestUnit %s not allowed here", s.smallest)
	}
	if s.largest == Auto {
		s.largest = largerUnit(defLargest, s.smallest)
	}
	if s.largest < minUnit || s.largest > maxUnit {
		return s, errors.New(errors.InvalidArgument, "largestUnit %s not allowed here", s.largest)
	}
	if s.largest < s.smallest {
		return s, errors.New(errors.InvalidArgument, "largestUnit %s is smaller than smallestUnit %s", s.largest, s.smallest)
	}
	var err error
	if s.inc, err = validateIncrement(o.RoundingIncrement, s.smallest.maxIncrement(), false); err != nil {
		return s, err
	}
	if s.inc > 1 && s.smallest.isCalendar() && s.largest != s.smallest {
		return s, errors.New(errors.InvalidRoundingIncrement, "roundingIncrement must be 1 when rounding to %s below %s", s.smallest, s.largest)
	}
	return s, nil
}

// resolve validates o for a value whose largest rounding unit is maxUnit.
// Increments of exact-time values must divide a solar day; others must
// divide the next larger unit.
func (o RoundOptions) resolve(maxUnit Unit, solarDay bool) (Unit, int64, RoundingMode, error) {
	u := o.SmallestUnit
	if u == Auto {
		return 0, 0, 0, errors.New(errors.InvalidArgument, "smallestUnit is required")
	}
	if u > maxUnit {
		return 0, 0, 0, errors.New(errors.InvalidArgument, "smallestUnit %s not allowed here", u)
	}
	var (
		inc int64
		err error
	)
	switch {
	case solarDay:
		inc, err = validateIncrement(o.RoundingIncrement, nsPerDay/u.nanos(), true)
	case u == Day:
		inc, err = validateIncrement(o.RoundingIncrement, 1, true)
	default:
		inc, err = validateIncrement(o.RoundingIncrement, u.maxIncrement(), false)
	}
	return u, inc, o.RoundingMode.Or(HalfExpand), err
}

func (s differenceSettings) rounds() bool { return s.smallest != Nanosecond || s.inc != 1 }
