// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"
	"math/big"

	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
	"github.com/startemporal/temporal/internal/rounding"
	"github.com/startemporal/temporal/tz"
)

// TimeZones resolves zone identifiers and offsets for every zoned
// operation in the package. Replace it before first use to supply a
// different zone database.
var TimeZones tz.Resolver = tz.Default

// A ZonedDateTime is an exact instant together with the time zone and
// calendar used to interpret it as a wall-clock date and time.
type ZonedDateTime struct {
	epoch  timeSpan
	zone   string
	cal    calendar.Calendar
	offset int // seconds east of UTC at epoch
}

func newZonedDateTime(epoch timeSpan, zone string, cal calendar.Calendar) (ZonedDateTime, error) {
	if err := checkInstant(epoch); err != nil {
		return ZonedDateTime{}, err
	}
	off, err := TimeZones.OffsetAt(zone, epoch.sec)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{epoch, zone, calendar.OrISO(cal), off}, nil
}

// localOf returns the wall-clock date and time of epoch in zone.
func localOf(epoch timeSpan, zone string) (calendar.Date, int64, error) {
	off, err := TimeZones.OffsetAt(zone, epoch.sec)
	if err != nil {
		return calendar.Date{}, 0, err
	}
	d, ns := splitLocal(epoch.add(timeSpan{int64(off), 0}))
	return d, ns, nil
}

// addZoned adds the calendar part of d to the wall-clock date, resolving
// the result compatibly, then adds the time part as exact time.
func addZoned(epoch timeSpan, zone string, cal calendar.Calendar, d Duration, o Overflow) (timeSpan, error) {
	if !d.hasCalendarUnits() && d.days == 0 {
		r := epoch.add(d.timePart())
		return r, checkInstant(r)
	}
	date, ns, err := localOf(epoch, zone)
	if err != nil {
		return timeSpan{}, err
	}
	moved, err := calendar.OrISO(cal).DateAdd(date, d.years, d.months, d.weeks, d.days, o)
	if err != nil {
		return timeSpan{}, err
	}
	local := localSpan(moved, ns)
	if err := checkDateTime(local); err != nil {
		return timeSpan{}, err
	}
	mid, err := epochFor(zone, local, tz.Compatible)
	if err != nil {
		return timeSpan{}, err
	}
	r := mid.add(d.timePart())
	return r, checkInstant(r)
}

// startOfDay returns the first instant of date in zone. When midnight is
// skipped, that is the transition ending the gap.
func startOfDay(date calendar.Date, zone string) (timeSpan, error) {
	local := localSpan(date, 0)
	c, err := TimeZones.OffsetsFor(zone, local.sec)
	if err != nil {
		return timeSpan{}, err
	}
	sec, err := tz.Disambiguate(c, local.sec, tz.Earlier)
	if err != nil {
		return timeSpan{}, err
	}
	if c.Kind() == tz.Gap {
		t, ok, err := TimeZones.TransitionNear(zone, sec, 0, tz.Next)
		if err != nil {
			return timeSpan{}, err
		}
		if ok {
			sec = t
		}
	}
	epoch := timeSpan{sec, 0}
	return epoch, checkInstant(epoch)
}

// roundOffset rounds offset seconds to the nearest minute, ties away
// from zero.
func roundOffset(sec int) int { return rounding.Int(sec, 60, HalfExpand) }

// offsetInput is a UTC offset supplied alongside a local time.
type offsetInput struct {
	ns int64
	// exact is set for "Z", which always applies.
	exact bool
	// minute allows a match against a zone offset rounded to minutes.
	minute bool
}

// interpretLocal resolves local time in zone. A nil offset or the ignore
// option selects by disambiguation alone; use applies the offset as is;
// prefer and reject keep a zone offset equal to it, and otherwise
// disambiguate or fail respectively.
func interpretLocal(local timeSpan, zone string, off *offsetInput, option OffsetOption, d Disambiguation) (timeSpan, error) {
	if off == nil || option == OffsetIgnore {
		return epochFor(zone, local, d)
	}
	if off.exact || option == OffsetUse {
		epoch := local.addNanos(-off.ns)
		return epoch, checkInstant(epoch)
	}
	c, err := TimeZones.OffsetsFor(zone, local.sec)
	if err != nil {
		return timeSpan{}, err
	}
	for _, o := range c.Offsets() {
		if int64(o)*1e9 == off.ns || (off.minute && int64(roundOffset(o))*1e9 == off.ns) {
			epoch := timeSpan{local.sec - int64(o), local.nsec}
			return epoch, checkInstant(epoch)
		}
	}
	if option == OffsetReject {
		return timeSpan{}, errors.New(errors.RangeError, "offset %s is invalid for the local time in %s", formatOffsetNanos(off.ns), zone)
	}
	return epochFor(zone, local, d)
}

// formatOffsetNanos renders an offset that may carry a fraction of a
// second, which always spells out the seconds.
func formatOffsetNanos(ns int64) string {
	if ns%1e9 == 0 {
		return tz.FormatOffset(int(ns / 1e9))
	}
	sign := '+'
	if ns < 0 {
		sign, ns = '-', -ns
	}
	return fmt.Sprintf("%c%02d:%02d:%02d%s", sign, ns/3600e9, ns/60e9%60, ns/1e9%60, formatFraction(int(ns%1e9), PrecisionAuto))
}

// NewZonedDateTime returns the instant ns nanoseconds after the Unix epoch
// in zone, with the ISO calendar.
func NewZonedDateTime(ns *big.Int, zone string) (ZonedDateTime, error) {
	i, err := NewInstant(ns)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return i.ToZonedDateTimeISO(zone)
}

// ZonedDateTimeFromFields resolves date and time fields in zone. An
// offset such as "+01:00", if non-empty, is reconciled with the zone per
// opts.Offset, which defaults to reject.
func ZonedDateTimeFromFields(f DateTimeFields, zone, offset string, cal calendar.Calendar, opts ZonedOptions) (ZonedDateTime, error) {
	zone, err := TimeZones.Canonicalize(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	var off *offsetInput
	if offset != "" {
		o, err := isolex.ParseOffset(offset)
		if err != nil {
			return ZonedDateTime{}, err
		}
		if o.Z {
			return ZonedDateTime{}, errors.Parse(offset, "Z is not a valid offset field")
		}
		off = &offsetInput{ns: o.Nanoseconds}
	}
	dt, err := PlainDateTimeFromFields(f, cal, opts.Overflow)
	if err != nil {
		return ZonedDateTime{}, err
	}
	epoch, err := interpretLocal(dt.local(), zone, off, opts.Offset.or(OffsetReject), opts.Disambiguation)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, zone, dt.cal)
}

// ParseZonedDateTime parses a date-time with a required zone annotation,
// e.g. "2024-03-10T02:30-05:00[America/New_York]". A given offset is
// reconciled with the zone per opts.Offset, which defaults to reject; a
// "Z" offset always applies. A date alone means the start of that day.
func ParseZonedDateTime(s string, opts ZonedOptions) (ZonedDateTime, error) {
	r, err := isolex.ParseDateTime(s)
	if err != nil {
		return ZonedDateTime{}, err
	}
	if r.Zone == "" {
		return ZonedDateTime{}, errors.Parse(s, "a zoned date-time requires a time zone annotation")
	}
	zone, err := TimeZones.Canonicalize(r.Zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	cal, err := calendarOf(r)
	if err != nil {
		return ZonedDateTime{}, err
	}
	d, err := calendar.Regulate(r.Year, r.Month, r.Day, calendar.Reject)
	if err != nil {
		return ZonedDateTime{}, errors.Parse(s, "%v", err)
	}
	local := localSpan(d, timeOf(r.Time))
	if err := checkDateTime(local); err != nil {
		return ZonedDateTime{}, err
	}
	var epoch timeSpan
	switch {
	case !r.HasTime && !r.HasOffset:
		epoch, err = startOfDay(d, zone)
	case r.HasOffset:
		off := &offsetInput{ns: r.Offset.Nanoseconds, exact: r.Offset.Z, minute: !r.Offset.Precise}
		epoch, err = interpretLocal(local, zone, off, opts.Offset.or(OffsetReject), opts.Disambiguation)
	default:
		epoch, err = epochFor(zone, local, opts.Disambiguation)
	}
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, zone, cal)
}

func (z ZonedDateTime) calendar() calendar.Calendar { return calendar.OrISO(z.cal) }

// timeZone returns the zone identifier. The zero ZonedDateTime is the Unix
// epoch in UTC.
func (z ZonedDateTime) timeZone() string {
	if z.zone == "" {
		return "UTC"
	}
	return z.zone
}

// Calendar returns the calendar.
func (z ZonedDateTime) Calendar() calendar.Calendar { return z.calendar() }

// CalendarID returns the identifier of the calendar.
func (z ZonedDateTime) CalendarID() string { return z.calendar().ID() }

// TimeZoneID returns the canonical zone identifier.
func (z ZonedDateTime) TimeZoneID() string { return z.timeZone() }

// Offset returns the UTC offset in effect, e.g. "-05:00".
func (z ZonedDateTime) Offset() string { return tz.FormatOffset(z.offset) }

// OffsetNanoseconds returns the UTC offset in effect.
func (z ZonedDateTime) OffsetNanoseconds() int64 { return int64(z.offset) * 1e9 }

func (z ZonedDateTime) EpochMilliseconds() int64           { return z.ToInstant().EpochMilliseconds() }
func (z ZonedDateTime) EpochNanoseconds() *big.Int         { return z.epoch.big() }
func (z ZonedDateTime) Year() int                          { return z.ToPlainDate().Year() }
func (z ZonedDateTime) Month() int                         { return z.ToPlainDate().Month() }
func (z ZonedDateTime) MonthCode() string                  { return z.ToPlainDate().MonthCode() }
func (z ZonedDateTime) Day() int                           { return z.ToPlainDate().Day() }
func (z ZonedDateTime) Era() calendar.Optional[string]     { return z.ToPlainDate().Era() }
func (z ZonedDateTime) EraYear() calendar.Optional[int]    { return z.ToPlainDate().EraYear() }
func (z ZonedDateTime) DayOfWeek() int                     { return z.ToPlainDate().DayOfWeek() }
func (z ZonedDateTime) DayOfYear() int                     { return z.ToPlainDate().DayOfYear() }
func (z ZonedDateTime) WeekOfYear() calendar.Optional[int] { return z.ToPlainDate().WeekOfYear() }
func (z ZonedDateTime) YearOfWeek() calendar.Optional[int] { return z.ToPlainDate().YearOfWeek() }
func (z ZonedDateTime) DaysInWeek() int                    { return z.ToPlainDate().DaysInWeek() }
func (z ZonedDateTime) DaysInMonth() int                   { return z.ToPlainDate().DaysInMonth() }
func (z ZonedDateTime) DaysInYear() int                    { return z.ToPlainDate().DaysInYear() }
func (z ZonedDateTime) MonthsInYear() int                  { return z.ToPlainDate().MonthsInYear() }
func (z ZonedDateTime) InLeapYear() bool                   { return z.ToPlainDate().InLeapYear() }
func (z ZonedDateTime) Hour() int                          { return z.ToPlainTime().Hour() }
func (z ZonedDateTime) Minute() int                        { return z.ToPlainTime().Minute() }
func (z ZonedDateTime) Second() int                        { return z.ToPlainTime().Second() }
func (z ZonedDateTime) Millisecond() int                   { return z.ToPlainTime().Millisecond() }
func (z ZonedDateTime) Microsecond() int                   { return z.ToPlainTime().Microsecond() }
func (z ZonedDateTime) Nanosecond() int                    { return z.ToPlainTime().Nanosecond() }

// HoursInDay returns the length of z's local day in hours, such as 23 or
// 25 on transition days.
func (z ZonedDateTime) HoursInDay() (float64, error) {
	date := z.ToPlainDateTime().date
	start, err := startOfDay(date, z.timeZone())
	if err != nil {
		return 0, err
	}
	end, err := startOfDay(date.AddDays(1), z.timeZone())
	if err != nil {
		return 0, err
	}
	return end.sub(start).total(Hour.nanos()), nil
}

// Add returns z advanced by d: calendar units on the wall-clock date,
// then time units as exact time.
func (z ZonedDateTime) Add(d Duration, o Overflow) (ZonedDateTime, error) {
	epoch, err := addZoned(z.epoch, z.timeZone(), z.cal, d, o)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, z.timeZone(), z.cal)
}

// Subtract returns z moved back by d.
func (z ZonedDateTime) Subtract(d Duration, o Overflow) (ZonedDateTime, error) {
	return z.Add(d.Negated(), o)
}

// With returns z with the present fields of f replaced. The current
// offset is kept if still valid; opts.Offset defaults to prefer.
func (z ZonedDateTime) With(f DateTimeFields, opts ZonedOptions) (ZonedDateTime, error) {
	return z.WithOffset(f, "", opts)
}

// WithOffset is With where a non-empty offset such as "+01:00" replaces
// the current offset. The offset alone counts as a field.
func (z ZonedDateTime) WithOffset(f DateTimeFields, offset string, opts ZonedOptions) (ZonedDateTime, error) {
	if f.Fields.Empty() && f.TimeFields.empty() && offset == "" {
		return ZonedDateTime{}, errors.New(errors.InvalidArgument, "at least one field is required")
	}
	dt := z.ToPlainDateTime()
	if !f.Fields.Empty() || !f.TimeFields.empty() {
		var err error
		if dt, err = dt.With(f, opts.Overflow); err != nil {
			return ZonedDateTime{}, err
		}
	}
	off := &offsetInput{ns: z.OffsetNanoseconds()}
	if offset != "" {
		o, err := isolex.ParseOffset(offset)
		if err != nil {
			return ZonedDateTime{}, err
		}
		if o.Z {
			return ZonedDateTime{}, errors.Parse(offset, "Z is not a valid offset field")
		}
		off.ns = o.Nanoseconds
	}
	epoch, err := interpretLocal(dt.local(), z.timeZone(), off, opts.Offset.or(OffsetPrefer), opts.Disambiguation)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, z.timeZone(), z.cal)
}

// WithPlainTime returns z on the same local date at time t.
func (z ZonedDateTime) WithPlainTime(t PlainTime) (ZonedDateTime, error) {
	epoch, err := epochFor(z.timeZone(), localSpan(z.ToPlainDateTime().date, t.ns), tz.Compatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, z.timeZone(), z.cal)
}

// WithTimeZone returns the same instant in another zone.
func (z ZonedDateTime) WithTimeZone(zone string) (ZonedDateTime, error) {
	zone, err := TimeZones.Canonicalize(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(z.epoch, zone, z.cal)
}

// WithCalendar returns the same instant in another calendar.
func (z ZonedDateTime) WithCalendar(cal calendar.Calendar) ZonedDateTime {
	z.cal = calendar.OrISO(cal)
	return z
}

// Until returns the duration from z to other. Time units are exact; date
// units follow the wall clock of z's zone, which other must share. The
// default largest unit is hours.
func (z ZonedDateTime) Until(other ZonedDateTime, opts DifferenceOptions) (Duration, error) {
	return z.difference(other, opts, false)
}

// Since returns the duration from other to z.
func (z ZonedDateTime) Since(other ZonedDateTime, opts DifferenceOptions) (Duration, error) {
	return z.difference(other, opts, true)
}

func (z ZonedDateTime) difference(other ZonedDateTime, opts DifferenceOptions, since bool) (Duration, error) {
	s, err := opts.resolve(Nanosecond, Year, Hour, Nanosecond, since)
	if err != nil {
		return Duration{}, err
	}
	if !s.largest.isDate() {
		return exactDifference(z.epoch, other.epoch, s, since)
	}
	if !calendar.Equal(z.cal, other.cal) {
		return Duration{}, errors.New(errors.RangeError, "cannot difference date-times in calendars %s and %s", z.CalendarID(), other.CalendarID())
	}
	if z.timeZone() != other.timeZone() {
		return Duration{}, errors.New(errors.RangeError, "cannot difference in %s across time zones %s and %s", s.largest, z.timeZone(), other.timeZone())
	}
	if z.epoch == other.epoch {
		return Duration{}, nil
	}
	diff, err := diffZoned(z.epoch, other.epoch, z.timeZone(), z.cal, s.largest)
	if err != nil {
		return Duration{}, err
	}
	if s.rounds() {
		a, _ := z.anchor()
		if diff, err = roundRelative(diff, other.epoch, a, s); err != nil {
			return Duration{}, err
		}
	}
	d, err := diff.toDuration(Hour)
	if since {
		d = d.Negated()
	}
	return d, err
}

// Round rounds the wall-clock time of z. Rounding to days uses the actual
// length of the local day; other units keep the current offset if it is
// still valid.
func (z ZonedDateTime) Round(opts RoundOptions) (ZonedDateTime, error) {
	u, inc, mode, err := opts.resolve(Day, false)
	if err != nil {
		return ZonedDateTime{}, err
	}
	dt := z.ToPlainDateTime()
	var epoch timeSpan
	if u == Day {
		start, err := startOfDay(dt.date, z.timeZone())
		if err != nil {
			return ZonedDateTime{}, err
		}
		end, err := startOfDay(dt.date.AddDays(1), z.timeZone())
		if err != nil {
			return ZonedDateTime{}, err
		}
		dayLen, _ := end.sub(start).nanos()
		epoch = start.add(z.epoch.sub(start).round(dayLen, mode))
	} else {
		days, ns := roundTimeOfDay(dt.ns, u, inc, mode)
		local := localSpan(dt.date.AddDays(days), ns)
		off := &offsetInput{ns: z.OffsetNanoseconds()}
		if epoch, err = interpretLocal(local, z.timeZone(), off, OffsetPrefer, tz.Compatible); err != nil {
			return ZonedDateTime{}, err
		}
	}
	return newZonedDateTime(epoch, z.timeZone(), z.cal)
}

// StartOfDay returns the first instant of z's local day.
func (z ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	epoch, err := startOfDay(z.ToPlainDateTime().date, z.timeZone())
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, z.timeZone(), z.cal)
}

// TimeZoneTransition returns the nearest offset transition strictly after
// (tz.Next) or before (tz.Previous) z, and false if there is none.
func (z ZonedDateTime) TimeZoneTransition(dir tz.Direction) (ZonedDateTime, bool, error) {
	sec, ok, err := TimeZones.TransitionNear(z.timeZone(), z.epoch.sec, z.epoch.nsec, dir)
	if err != nil || !ok {
		return ZonedDateTime{}, false, err
	}
	r, err := newZonedDateTime(timeSpan{sec, 0}, z.timeZone(), z.cal)
	return r, err == nil, err
}

// CompareZonedDateTime orders by instant alone.
func CompareZonedDateTime(a, b ZonedDateTime) int { return a.epoch.cmp(b.epoch) }

// Equals reports whether z and other have the same instant, zone and
// calendar.
func (z ZonedDateTime) Equals(other ZonedDateTime) bool {
	return z.epoch == other.epoch && z.timeZone() == other.timeZone() && calendar.Equal(z.cal, other.cal)
}

// ToInstant drops the zone and calendar.
func (z ZonedDateTime) ToInstant() Instant { return Instant{z.epoch} }

// ToPlainDateTime returns the wall-clock date and time.
func (z ZonedDateTime) ToPlainDateTime() PlainDateTime {
	d, ns := splitLocal(z.epoch.add(timeSpan{int64(z.offset), 0}))
	return PlainDateTime{d, ns, z.calendar()}
}

// ToPlainDate returns the wall-clock date.
func (z ZonedDateTime) ToPlainDate() PlainDate { return z.ToPlainDateTime().ToPlainDate() }

// ToPlainTime returns the wall-clock time.
func (z ZonedDateTime) ToPlainTime() PlainTime { return z.ToPlainDateTime().ToPlainTime() }

// anchor implements RelativeTo.
func (z ZonedDateTime) anchor() (anchor, error) {
	return anchor{dt: z.ToPlainDateTime(), zone: z.timeZone(), epoch: z.epoch}, nil
}

func (z ZonedDateTime) String() string {
	s, _ := z.Format(ToStringOptions{})
	return s
}

// Format renders z as date, time, offset, zone annotation and calendar
// annotation, each controlled by opts. The offset is rounded to minutes.
func (z ZonedDateTime) Format(opts ToStringOptions) (string, error) {
	p, inc, err := opts.precision()
	if err != nil {
		return "", err
	}
	epoch := z.epoch.round(inc, opts.RoundingMode.Or(Trunc))
	if err := checkInstant(epoch); err != nil {
		return "", err
	}
	off, err := TimeZones.OffsetAt(z.timeZone(), epoch.sec)
	if err != nil {
		return "", err
	}
	date, ns := splitLocal(epoch.add(timeSpan{int64(off), 0}))
	s := date.String() + "T" + formatTime(ns, p)
	if opts.Offset != OffsetNever {
		s += tz.FormatOffset(roundOffset(off))
	}
	switch opts.TimeZoneName {
	case TimeZoneAuto:
		s += "[" + z.timeZone() + "]"
	case TimeZoneCritical:
		s += "[!" + z.timeZone() + "]"
	}
	return s + calendarAnnotation(z.cal, opts.CalendarName), nil
}

// MarshalText implements encoding.TextMarshaler.
func (z ZonedDateTime) MarshalText() ([]byte, error) { return []byte(z.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler with default options.
func (z *ZonedDateTime) UnmarshalText(text []byte) error {
	v, err := ParseZonedDateTime(string(text), ZonedOptions{})
	if err != nil {
		return err
	}
	*z = v
	return nil
}
