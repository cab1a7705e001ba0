// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
	"github.com/startemporal/temporal/internal/rounding"
)

// A PlainTime is a wall-clock time with no date or time zone.
type PlainTime struct {
	ns int64 // since midnight
}

// TimeFields is a partial record of wall-clock fields.
type TimeFields struct {
	Hour, Minute, Second                 calendar.Optional[int]
	Millisecond, Microsecond, Nanosecond calendar.Optional[int]
}

func (f TimeFields) empty() bool {
	return !f.Hour.Present() && !f.Minute.Present() && !f.Second.Present() &&
		!f.Millisecond.Present() && !f.Microsecond.Present() && !f.Nanosecond.Present()
}

// Midnight is 00:00.
var Midnight = PlainTime{}

// NewPlainTime returns the given time, failing with InvalidArgument if
// any field is out of range.
func NewPlainTime(hour, minute, second, millisecond, microsecond, nanosecond int) (PlainTime, error) {
	ns, err := regulateTime([6]int{hour, minute, second, millisecond, microsecond, nanosecond}, calendar.Reject)
	return PlainTime{ns}, err
}

var timeLimits = [6]int{23, 59, 59, 999, 999, 999}

var timeFieldNames = [6]string{"hour", "minute", "second", "millisecond", "microsecond", "nanosecond"}

// regulateTime validates or clamps time fields and returns nanoseconds
// since midnight.
func regulateTime(f [6]int, o Overflow) (int64, error) {
	for i, v := range f {
		if v >= 0 && v <= timeLimits[i] {
			continue
		}
		if o == calendar.Reject {
			return 0, errors.New(errors.InvalidArgument, "%s %d out of range", timeFieldNames[i], v)
		}
		f[i] = min(max(v, 0), timeLimits[i])
	}
	return (int64(f[0])*3600+int64(f[1])*60+int64(f[2]))*1e9 + int64(f[3])*1e6 + int64(f[4])*1e3 + int64(f[5]), nil
}

func (f TimeFields) over(t PlainTime) [6]int {
	return [6]int{
		f.Hour.Or(t.Hour()), f.Minute.Or(t.Minute()), f.Second.Or(t.Second()),
		f.Millisecond.Or(t.Millisecond()), f.Microsecond.Or(t.Microsecond()), f.Nanosecond.Or(t.Nanosecond()),
	}
}

// PlainTimeFromFields builds a time from fields; absent fields are zero.
func PlainTimeFromFields(f TimeFields, o Overflow) (PlainTime, error) {
	if f.empty() {
		return PlainTime{}, errors.New(errors.InvalidArgument, "at least one time field is required")
	}
	ns, err := regulateTime(f.over(Midnight), o)
	return PlainTime{ns}, err
}

// ParsePlainTime parses "HH:MM[:SS[.fffffffff]]", optionally preceded by
// "T" or a date.
func ParsePlainTime(s string) (PlainTime, error) {
	r, err := isolex.ParseTime(s)
	if err != nil {
		return PlainTime{}, err
	}
	if r.HasOffset && r.Offset.Z {
		return PlainTime{}, errors.Parse("Z", "UTC designator not allowed on a plain time")
	}
	if _, err := calendarOf(r); err != nil {
		return PlainTime{}, err
	}
	return PlainTime{timeOf(r.Time)}, nil
}

func (t PlainTime) Hour() int        { return int(t.ns / 3600e9) }
func (t PlainTime) Minute() int      { return int(t.ns / 60e9 % 60) }
func (t PlainTime) Second() int      { return int(t.ns / 1e9 % 60) }
func (t PlainTime) Millisecond() int { return int(t.ns / 1e6 % 1e3) }
func (t PlainTime) Microsecond() int { return int(t.ns / 1e3 % 1e3) }
func (t PlainTime) Nanosecond() int  { return int(t.ns % 1e3) }

// Add returns t advanced by the time units of d, wrapping around midnight.
// Calendar units and days are ignored.
func (t PlainTime) Add(d Duration) PlainTime {
	_, ns := splitDays(nanosSpan(t.ns).add(d.timePart()))
	return PlainTime{ns}
}

// Subtract returns t moved back by the time units of d.
func (t PlainTime) Subtract(d Duration) PlainTime { return t.Add(d.Negated()) }

// With returns t with the present fields of f replaced.
func (t PlainTime) With(f TimeFields, o Overflow) (PlainTime, error) {
	if f.empty() {
		return PlainTime{}, errors.New(errors.InvalidArgument, "at least one time field is required")
	}
	ns, err := regulateTime(f.over(t), o)
	return PlainTime{ns}, err
}

// Until returns the duration from t to u. Units range from nanoseconds to
// hours; the default largest unit is hours.
func (t PlainTime) Until(u PlainTime, opts DifferenceOptions) (Duration, error) {
	return t.difference(u, opts, false)
}

// Since returns the duration from u to t.
func (t PlainTime) Since(u PlainTime, opts DifferenceOptions) (Duration, error) {
	return t.difference(u, opts, true)
}

func (t PlainTime) difference(u PlainTime, opts DifferenceOptions, since bool) (Duration, error) {
	s, err := opts.resolve(Nanosecond, Hour, Hour, Nanosecond, since)
	if err != nil {
		return Duration{}, err
	}
	diff := nanosSpan(u.ns-t.ns).round(s.inc*s.smallest.nanos(), s.mode)
	d, err := internalDuration{time: diff}.toDuration(s.largest)
	if since {
		d = d.Negated()
	}
	return d, err
}

// Round rounds t to a multiple of the smallest unit, wrapping at midnight.
func (t PlainTime) Round(opts RoundOptions) (PlainTime, error) {
	u, inc, mode, err := opts.resolve(Hour, false)
	if err != nil {
		return PlainTime{}, err
	}
	return PlainTime{rounding.Int(t.ns, inc*u.nanos(), mode) % nsPerDay}, nil
}

// ComparePlainTime returns -1, 0 or +1.
func ComparePlainTime(a, b PlainTime) int { return sign64(a.ns - b.ns) }

// Equals reports whether t and u are the same time.
func (t PlainTime) Equals(u PlainTime) bool { return t == u }

// ToPlainDateTime combines t with a date.
func (t PlainTime) ToPlainDateTime(d PlainDate) (PlainDateTime, error) { return d.ToPlainDateTime(t) }

func (t PlainTime) String() string { return formatTime(t.ns, PrecisionAuto) }

// Format renders t with the precision and rounding selected by opts.
func (t PlainTime) Format(opts ToStringOptions) (string, error) {
	p, inc, err := opts.precision()
	if err != nil {
		return "", err
	}
	ns := rounding.Int(t.ns, inc, opts.RoundingMode.Or(Trunc)) % nsPerDay
	return formatTime(ns, p), nil
}

// MarshalText implements encoding.TextMarshaler.
func (t PlainTime) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PlainTime) UnmarshalText(text []byte) error {
	v, err := ParsePlainTime(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
