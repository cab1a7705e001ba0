// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"
	"math"
	"strings"

	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
)

// A Duration is a signed span of calendar and clock units. All non-zero
// components share one sign.
type Duration struct {
	years, months, weeks, days              int64
	hours, minutes, seconds                 int64
	milliseconds, microseconds, nanoseconds int64
}

// DurationFields is the complete set of Duration components.
type DurationFields struct {
	Years, Months, Weeks, Days              int64
	Hours, Minutes, Seconds                 int64
	Milliseconds, Microseconds, Nanoseconds int64
}

// PartialDuration is a set of Duration components to replace.
type PartialDuration struct {
	Years, Months, Weeks, Days              calendar.Optional[int64]
	Hours, Minutes, Seconds                 calendar.Optional[int64]
	Milliseconds, Microseconds, Nanoseconds calendar.Optional[int64]
}

// NewDuration returns the Duration with the given components. It fails
// with RangeError for mixed signs or magnitudes beyond the supported range.
func NewDuration(f DurationFields) (Duration, error) {
	d := Duration{
		f.Years, f.Months, f.Weeks, f.Days,
		f.Hours, f.Minutes, f.Seconds,
		f.Milliseconds, f.Microseconds, f.Nanoseconds,
	}
	if err := d.validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

// ParseDuration parses ISO 8601 duration text such as "P1Y2M3DT4H5M6.5S".
func ParseDuration(s string) (Duration, error) {
	r, err := isolex.ParseDuration(s)
	if err != nil {
		return Duration{}, err
	}
	d := Duration{
		r.Years, r.Months, r.Weeks, r.Days,
		r.Hours, r.Minutes, r.Seconds,
		r.Milliseconds, r.Microseconds, r.Nanoseconds,
	}
	if r.Negative {
		d = d.Negated()
	}
	if err := d.validate(); err != nil {
		return Duration{}, err
	}
	return d, nil
}

func (d Duration) components() [10]int64 {
	return [10]int64{
		d.years, d.months, d.weeks, d.days,
		d.hours, d.minutes, d.seconds,
		d.milliseconds, d.microseconds, d.nanoseconds,
	}
}

func (d Duration) validate() error {
	sign := 0
	for _, v := range d.components() {
		if v == 0 {
			continue
		}
		s := 1
		if v < 0 {
			s = -1
		}
		if sign != 0 && s != sign {
			return errors.New(errors.RangeError, "duration components have mixed signs")
		}
		sign = s
	}
	for _, v := range []int64{d.years, d.months, d.weeks} {
		if v >= 1<<32 || v <= -(1<<32) {
			return errors.New(errors.RangeError, "duration calendar component out of range")
		}
	}
	if _, ok := d.daysTime(); !ok {
		return errors.New(errors.RangeError, "duration time span out of range")
	}
	return nil
}

// daysTime returns days (as 24 hours) plus the time components as a span.
func (d Duration) daysTime() (timeSpan, bool) {
	var sum timeSpan
	for _, c := range []struct {
		v    int64
		unit Unit
	}{
		{d.days, Day}, {d.hours, Hour}, {d.minutes, Minute}, {d.seconds, Second},
		{d.milliseconds, Millisecond}, {d.microseconds, Microsecond}, {d.nanoseconds, Nanosecond},
	} {
		s, ok := unitSpan(c.v, c.unit.nanos())
		if !ok {
			return timeSpan{}, false
		}
		sum = sum.add(s)
	}
	if sum.abs().sec > maxDurationSeconds {
		return timeSpan{}, false
	}
	return sum, true
}

// timePart returns hours through nanoseconds as a span.
func (d Duration) timePart() timeSpan {
	t, _ := Duration{
		hours: d.hours, minutes: d.minutes, seconds: d.seconds,
		milliseconds: d.milliseconds, microseconds: d.microseconds, nanoseconds: d.nanoseconds,
	}.daysTime()
	return t
}

func (d Duration) Years() int64        { return d.years }
func (d Duration) Months() int64       { return d.months }
func (d Duration) Weeks() int64        { return d.weeks }
func (d Duration) Days() int64         { return d.days }
func (d Duration) Hours() int64        { return d.hours }
func (d Duration) Minutes() int64      { return d.minutes }
func (d Duration) Seconds() int64      { return d.seconds }
func (d Duration) Milliseconds() int64 { return d.milliseconds }
func (d Duration) Microseconds() int64 { return d.microseconds }
func (d Duration) Nanoseconds() int64  { return d.nanoseconds }

// Fields returns all ten components.
func (d Duration) Fields() DurationFields {
	return DurationFields{
		d.years, d.months, d.weeks, d.days,
		d.hours, d.minutes, d.seconds,
		d.milliseconds, d.microseconds, d.nanoseconds,
	}
}

// Sign returns -1, 0 or +1.
func (d Duration) Sign() int {
	for _, v := range d.components() {
		if v < 0 {
			return -1
		} else if v > 0 {
			return 1
		}
	}
	return 0
}

// Blank reports whether every component is zero.
func (d Duration) Blank() bool { return d == Duration{} }

// Negated returns d with every component negated.
func (d Duration) Negated() Duration {
	return Duration{
		-d.years, -d.months, -d.weeks, -d.days,
		-d.hours, -d.minutes, -d.seconds,
		-d.milliseconds, -d.microseconds, -d.nanoseconds,
	}
}

// Abs returns d with every component non-negative.
func (d Duration) Abs() Duration {
	if d.Sign() < 0 {
		return d.Negated()
	}
	return d
}

// With returns d with the present components of p replaced.
func (d Duration) With(p PartialDuration) (Duration, error) {
	f := d.Fields()
	f.Years = p.Years.Or(f.Years)
	f.Months = p.Months.Or(f.Months)
	f.Weeks = p.Weeks.Or(f.Weeks)
	f.Days = p.Days.Or(f.Days)
	f.Hours = p.Hours.Or(f.Hours)
	f.Minutes = p.Minutes.Or(f.Minutes)
	f.Seconds = p.Seconds.Or(f.Seconds)
	f.Milliseconds = p.Milliseconds.Or(f.Milliseconds)
	f.Microseconds = p.Microseconds.Or(f.Microseconds)
	f.Nanoseconds = p.Nanoseconds.Or(f.Nanoseconds)
	return NewDuration(f)
}

func (d Duration) hasCalendarUnits() bool { return d.years != 0 || d.months != 0 || d.weeks != 0 }

// defaultLargestUnit returns the largest non-zero unit.
func (d Duration) defaultLargestUnit() Unit {
	c := d.components()
	for i, v := range c {
		if v != 0 {
			return Year - Unit(i)
		}
	}
	return Nanosecond
}

func (d Duration) internal() internalDuration {
	return internalDuration{d.years, d.months, d.weeks, d.days, d.timePart()}
}

// internal24 folds days into the time part as 24-hour days.
func (d Duration) internal24() internalDuration {
	t, _ := d.daysTime()
	return internalDuration{years: d.years, months: d.months, weeks: d.weeks, time: t}
}

// Add returns d + o. Durations with years, months or weeks cannot be
// added without a reference point and fail with RelativeToRequired.
func (d Duration) Add(o Duration) (Duration, error) {
	if d.hasCalendarUnits() || o.hasCalendarUnits() {
		return Duration{}, errors.New(errors.RelativeToRequired, "adding durations with calendar units requires relativeTo")
	}
	largest := largerUnit(d.defaultLargestUnit(), o.defaultLargestUnit())
	sum := d.internal24().time.add(o.internal24().time)
	if sum.abs().sec > maxDurationSeconds {
		return Duration{}, errors.New(errors.RangeError, "duration sum out of range")
	}
	return internalDuration{time: sum}.toDuration(largest)
}

// Subtract returns d - o.
func (d Duration) Subtract(o Duration) (Duration, error) { return d.Add(o.Negated()) }

// RelativeTo is a reference point for duration arithmetic: a PlainDate
// or a ZonedDateTime.
type RelativeTo interface {
	anchor() (anchor, error)
}

// DurationRoundOptions configures Duration.Round.
type DurationRoundOptions struct {
	LargestUnit       Unit
	SmallestUnit      Unit
	RoundingIncrement int64
	// RoundingMode defaults to HalfExpand.
	RoundingMode RoundingMode
	RelativeTo   RelativeTo
}

// Round rounds and rebalances d. Calendar units require RelativeTo.
func (d Duration) Round(opts DurationRoundOptions) (Duration, error) {
	if opts.RoundingMode == 0 {
		opts.RoundingMode = HalfExpand
	}
	s, err := DifferenceOptions{
		LargestUnit:       opts.LargestUnit,
		SmallestUnit:      opts.SmallestUnit,
		RoundingIncrement: opts.RoundingIncrement,
		RoundingMode:      opts.RoundingMode,
	}.resolve(Nanosecond, Year, d.defaultLargestUnit(), Nanosecond, false)
	if err != nil {
		return Duration{}, err
	}
	if opts.RelativeTo == nil {
		if d.hasCalendarUnits() || s.largest.isCalendar() || s.smallest.isCalendar() {
			return Duration{}, errors.New(errors.RelativeToRequired, "rounding to or from %s requires relativeTo", largerUnit(d.defaultLargestUnit(), s.largest))
		}
		t := d.internal24().time.round(s.inc*s.smallest.nanos(), s.mode)
		return internalDuration{time: t}.toDuration(s.largest)
	}
	a, err := opts.RelativeTo.anchor()
	if err != nil {
		return Duration{}, err
	}
	diff, dest, err := a.differenceTo(d, s.largest)
	if err != nil {
		return Duration{}, err
	}
	if diff, err = roundRelative(diff, dest, a, s); err != nil {
		return Duration{}, err
	}
	if a.zoned() && s.largest.isDate() {
		return diff.toDuration(Hour)
	}
	return diff.toDuration(s.largest)
}

// Total returns d expressed as a fractional count of unit. Calendar units
// require relativeTo, which may be nil otherwise.
func (d Duration) Total(unit Unit, relativeTo RelativeTo) (float64, error) {
	if unit == Auto {
		return 0, errors.New(errors.InvalidArgument, "unit is required")
	}
	if relativeTo == nil {
		if d.hasCalendarUnits() || unit.isCalendar() {
			return 0, errors.New(errors.RelativeToRequired, "total in %s requires relativeTo", unit)
		}
		return d.internal24().time.total(unit.nanos()), nil
	}
	a, err := relativeTo.anchor()
	if err != nil {
		return 0, err
	}
	diff, dest, err := a.differenceTo(d, unit)
	if err != nil {
		return 0, err
	}
	return totalRelative(diff, dest, a, unit)
}

// CompareDuration orders two durations by length. Durations with
// calendar units (or days, for a zoned reference) are measured from
// relativeTo, which may be nil otherwise.
func CompareDuration(a, b Duration, relativeTo RelativeTo) (int, error) {
	if a == b {
		return 0, nil
	}
	calendarUnits := a.hasCalendarUnits() || b.hasCalendarUnits()
	if relativeTo != nil {
		r, err := relativeTo.anchor()
		if err != nil {
			return 0, err
		}
		if r.zoned() && (calendarUnits || a.days != 0 || b.days != 0) {
			ea, err := r.add(a)
			if err != nil {
				return 0, err
			}
			eb, err := r.add(b)
			if err != nil {
				return 0, err
			}
			return ea.cmp(eb), nil
		}
		if calendarUnits {
			da, err := r.days(a)
			if err != nil {
				return 0, err
			}
			db, err := r.days(b)
			if err != nil {
				return 0, err
			}
			ta := a.timePart().add(timeSpan{da * 86400, 0})
			tb := b.timePart().add(timeSpan{db * 86400, 0})
			return ta.cmp(tb), nil
		}
	} else if calendarUnits {
		return 0, errors.New(errors.RelativeToRequired, "comparing durations with calendar units requires relativeTo")
	}
	return a.internal24().time.cmp(b.internal24().time), nil
}

// String returns the ISO 8601 representation, e.g. "PT1H30M".
func (d Duration) String() string {
	s, _ := d.Format(ToStringOptions{})
	return s
}

// Format returns the ISO 8601 representation, rounding the seconds to
// the precision selected by opts.
func (d Duration) Format(opts ToStringOptions) (string, error) {
	if opts.SmallestUnit == Minute || (opts.SmallestUnit == Auto && opts.FractionalSecondDigits == PrecisionMinute) {
		return "", errors.New(errors.InvalidArgument, "durations cannot be formatted to minute precision")
	}
	p, inc, err := opts.precision()
	if err != nil {
		return "", err
	}
	if inc != 1 {
		largest := largerUnit(d.defaultLargestUnit(), Second)
		in := d.internal()
		in.time = in.time.round(inc, opts.RoundingMode.Or(Trunc))
		if largest.isDate() {
			largest = Hour
		}
		if d, err = in.toDuration(largest); err != nil {
			return "", err
		}
	}
	return formatDuration(d, p), nil
}

func formatDuration(d Duration, p Precision) string {
	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	d = d.Abs()
	b.WriteByte('P')
	for _, c := range []struct {
		v int64
		u byte
	}{{d.years, 'Y'}, {d.months, 'M'}, {d.weeks, 'W'}, {d.days, 'D'}} {
		if c.v != 0 {
			fmt.Fprintf(&b, "%d%c", c.v, c.u)
		}
	}
	secs := d.timePart().sub(timeSpan{d.hours*3600 + d.minutes*60, 0})
	showSeconds := !secs.isZero() || d.Blank() || p != PrecisionAuto
	if d.hours != 0 || d.minutes != 0 || showSeconds {
		b.WriteByte('T')
		if d.hours != 0 {
			fmt.Fprintf(&b, "%dH", d.hours)
		}
		if d.minutes != 0 {
			fmt.Fprintf(&b, "%dM", d.minutes)
		}
		if showSeconds {
			fmt.Fprintf(&b, "%d%sS", secs.sec, formatFraction(int(secs.nsec), p))
		}
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// internalDuration is a duration split into calendar units and an exact
// time span.
type internalDuration struct {
	years, months, weeks, days int64
	time                       timeSpan
}

func (d internalDuration) sign() int {
	for _, v := range []int64{d.years, d.months, d.weeks, d.days} {
		if v < 0 {
			return -1
		} else if v > 0 {
			return 1
		}
	}
	return d.time.sign()
}

// toDuration balances the time span into units no larger than largest.
// For a date largest unit, whole 24-hour days are moved into days.
func (d internalDuration) toDuration(largest Unit) (Duration, error) {
	neg := d.time.sign() < 0
	mag := d.time.abs()
	sec := mag.sec
	ms, us, ns := mag.nsec/1e6, mag.nsec/1e3%1e3, mag.nsec%1e3
	var days, h, m, s int64
	tooLarge := errors.New(errors.RangeError, "duration too large to balance to %s", largest)
	switch {
	case largest.isDate():
		days, sec = sec/86400, sec%86400
		fallthrough
	case largest == Hour:
		h, m, s = sec/3600, sec/60%60, sec%60
	case largest == Minute:
		m, s = sec/60, sec%60
	case largest == Second:
		s = sec
	case largest == Millisecond:
		if sec > (math.MaxInt64-999)/1000 {
			return Duration{}, tooLarge
		}
		ms += sec * 1e3
	case largest == Microsecond:
		if sec > (math.MaxInt64-999_999)/1_000_000 {
			return Duration{}, tooLarge
		}
		us += sec*1e6 + ms*1e3
		ms = 0
	default:
		if sec > (math.MaxInt64-999_999_999)/1_000_000_000 {
			return Duration{}, tooLarge
		}
		ns += sec*1e9 + ms*1e6 + us*1e3
		ms, us = 0, 0
	}
	t := Duration{days: days, hours: h, minutes: m, seconds: s, milliseconds: ms, microseconds: us, nanoseconds: ns}
	if neg {
		t = t.Negated()
	}
	out := Duration{
		d.years, d.months, d.weeks, d.days + t.days,
		t.hours, t.minutes, t.seconds,
		t.milliseconds, t.microseconds, t.nanoseconds,
	}
	if err := out.validate(); err != nil {
		return Duration{}, err
	}
	return out, nil
}
