// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
	"github.com/startemporal/temporal/internal/rounding"
	"github.com/startemporal/temporal/tz"
)

// A PlainDateTime is a calendar date and wall-clock time with no zone.
type PlainDateTime struct {
	date calendar.Date
	ns   int64 // since midnight
	cal  calendar.Calendar
}

// DateTimeFields is a partial record of date and time fields.
type DateTimeFields struct {
	calendar.Fields
	TimeFields
}

// NewPlainDateTime returns the given ISO date-time.
func NewPlainDateTime(year, month, day, hour, minute, second, millisecond, microsecond, nanosecond int) (PlainDateTime, error) {
	d, err := calendar.Regulate(year, month, day, calendar.Reject)
	if err != nil {
		return PlainDateTime{}, err
	}
	ns, err := regulateTime([6]int{hour, minute, second, millisecond, microsecond, nanosecond}, calendar.Reject)
	if err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(d, ns, calendar.ISO)
}

func newPlainDateTime(d calendar.Date, ns int64, cal calendar.Calendar) (PlainDateTime, error) {
	if err := checkDateTime(localSpan(d, ns)); err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{d, ns, calendar.OrISO(cal)}, nil
}

// PlainDateTimeFromFields resolves date fields in cal (nil means ISO);
// absent time fields are zero.
func PlainDateTimeFromFields(f DateTimeFields, cal calendar.Calendar, o Overflow) (PlainDateTime, error) {
	cal = calendar.OrISO(cal)
	d, err := cal.DateFromFields(f.Fields, o)
	if err != nil {
		return PlainDateTime{}, err
	}
	ns, err := regulateTime(f.TimeFields.over(Midnight), o)
	if err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(d, ns, cal)
}

// ParsePlainDateTime parses "YYYY-MM-DD[THH:MM[:SS[.fffffffff]]]" with
// optional annotations. An offset is ignored; "Z" is rejected.
func ParsePlainDateTime(s string) (PlainDateTime, error) {
	r, err := isolex.ParseDateTime(s)
	if err != nil {
		return PlainDateTime{}, err
	}
	if r.HasOffset && r.Offset.Z {
		return PlainDateTime{}, errors.Parse("Z", "UTC designator not allowed on a plain date-time")
	}
	cal, err := calendarOf(r)
	if err != nil {
		return PlainDateTime{}, err
	}
	d, err := calendar.Regulate(r.Year, r.Month, r.Day, calendar.Reject)
	if err != nil {
		return PlainDateTime{}, errors.Parse(s, "%v", err)
	}
	return newPlainDateTime(d, timeOf(r.Time), cal)
}

func (dt PlainDateTime) calendar() calendar.Calendar { return calendar.OrISO(dt.cal) }

// local returns the wall-clock time as if it were UTC.
func (dt PlainDateTime) local() timeSpan { return localSpan(dt.date, dt.ns) }

func localSpan(d calendar.Date, ns int64) timeSpan { return spanOf(d.EpochDays()*86400, ns) }

func splitLocal(l timeSpan) (calendar.Date, int64) {
	days, ns := splitDays(l)
	return calendar.FromEpochDays(days), ns
}

// Calendar returns the date-time's calendar.
func (dt PlainDateTime) Calendar() calendar.Calendar { return dt.calendar() }

// CalendarID returns the identifier of the date-time's calendar.
func (dt PlainDateTime) CalendarID() string { return dt.calendar().ID() }

func (dt PlainDateTime) Year() int                          { return dt.ToPlainDate().Year() }
func (dt PlainDateTime) Month() int                         { return dt.ToPlainDate().Month() }
func (dt PlainDateTime) MonthCode() string                  { return dt.ToPlainDate().MonthCode() }
func (dt PlainDateTime) Day() int                           { return dt.ToPlainDate().Day() }
func (dt PlainDateTime) Era() calendar.Optional[string]     { return dt.ToPlainDate().Era() }
func (dt PlainDateTime) EraYear() calendar.Optional[int]    { return dt.ToPlainDate().EraYear() }
func (dt PlainDateTime) DayOfWeek() int                     { return dt.ToPlainDate().DayOfWeek() }
func (dt PlainDateTime) DayOfYear() int                     { return dt.ToPlainDate().DayOfYear() }
func (dt PlainDateTime) WeekOfYear() calendar.Optional[int] { return dt.ToPlainDate().WeekOfYear() }
func (dt PlainDateTime) YearOfWeek() calendar.Optional[int] { return dt.ToPlainDate().YearOfWeek() }
func (dt PlainDateTime) DaysInWeek() int                    { return dt.ToPlainDate().DaysInWeek() }
func (dt PlainDateTime) DaysInMonth() int                   { return dt.ToPlainDate().DaysInMonth() }
func (dt PlainDateTime) DaysInYear() int                    { return dt.ToPlainDate().DaysInYear() }
func (dt PlainDateTime) MonthsInYear() int                  { return dt.ToPlainDate().MonthsInYear() }
func (dt PlainDateTime) InLeapYear() bool                   { return dt.ToPlainDate().InLeapYear() }
func (dt PlainDateTime) Hour() int                          { return dt.ToPlainTime().Hour() }
func (dt PlainDateTime) Minute() int                        { return dt.ToPlainTime().Minute() }
func (dt PlainDateTime) Second() int                        { return dt.ToPlainTime().Second() }
func (dt PlainDateTime) Millisecond() int                   { return dt.ToPlainTime().Millisecond() }
func (dt PlainDateTime) Microsecond() int                   { return dt.ToPlainTime().Microsecond() }
func (dt PlainDateTime) Nanosecond() int                    { return dt.ToPlainTime().Nanosecond() }

// Add returns dt advanced by d: calendar units first, resolved with o,
// then the time units as an exact span carried into days.
func (dt PlainDateTime) Add(d Duration, o Overflow) (PlainDateTime, error) {
	days, ns := splitDays(nanosSpan(dt.ns).add(d.timePart()))
	date, err := dt.calendar().DateAdd(dt.date, d.years, d.months, d.weeks, d.days+days, o)
	if err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(date, ns, dt.cal)
}

// Subtract returns dt moved back by d.
func (dt PlainDateTime) Subtract(d Duration, o Overflow) (PlainDateTime, error) {
	return dt.Add(d.Negated(), o)
}

// With returns dt with the present fields of f replaced.
func (dt PlainDateTime) With(f DateTimeFields, o Overflow) (PlainDateTime, error) {
	if f.Fields.Empty() && f.TimeFields.empty() {
		return PlainDateTime{}, errors.New(errors.InvalidArgument, "at least one field is required")
	}
	cal := dt.calendar()
	d, err := cal.DateFromFields(cal.Fields(dt.date).Merge(f.Fields), o)
	if err != nil {
		return PlainDateTime{}, err
	}
	ns, err := regulateTime(f.TimeFields.over(dt.ToPlainTime()), o)
	if err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(d, ns, cal)
}

// WithPlainTime returns dt with its time replaced.
func (dt PlainDateTime) WithPlainTime(t PlainTime) (PlainDateTime, error) {
	return newPlainDateTime(dt.date, t.ns, dt.cal)
}

// WithCalendar returns the same ISO date-time in another calendar.
func (dt PlainDateTime) WithCalendar(cal calendar.Calendar) PlainDateTime {
	return PlainDateTime{dt.date, dt.ns, calendar.OrISO(cal)}
}

// Until returns the duration from dt to u. The default largest unit is
// days.
func (dt PlainDateTime) Until(u PlainDateTime, opts DifferenceOptions) (Duration, error) {
	return dt.difference(u, opts, false)
}

// Since returns the duration from u to dt.
func (dt PlainDateTime) Since(u PlainDateTime, opts DifferenceOptions) (Duration, error) {
	return dt.difference(u, opts, true)
}

func (dt PlainDateTime) difference(u PlainDateTime, opts DifferenceOptions, since bool) (Duration, error) {
	s, err := opts.resolve(Nanosecond, Year, Day, Nanosecond, since)
	if err != nil {
		return Duration{}, err
	}
	if s.largest > Day && !calendar.Equal(dt.cal, u.cal) {
		return Duration{}, errors.New(errors.RangeError, "cannot difference date-times in calendars %s and %s", dt.CalendarID(), u.CalendarID())
	}
	return differenceDateTimes(dt, u, s, since)
}

// Round rounds the time of dt, carrying into the date. The largest
// smallest unit is days.
func (dt PlainDateTime) Round(opts RoundOptions) (PlainDateTime, error) {
	u, inc, mode, err := opts.resolve(Day, false)
	if err != nil {
		return PlainDateTime{}, err
	}
	days, ns := roundTimeOfDay(dt.ns, u, inc, mode)
	return newPlainDateTime(dt.date.AddDays(days), ns, dt.cal)
}

// roundTimeOfDay rounds nanoseconds since midnight, returning the day
// carry and the rounded time.
func roundTimeOfDay(ns int64, u Unit, inc int64, mode RoundingMode) (int64, int64) {
	r := rounding.Int(ns, inc*u.nanos(), mode)
	return r / nsPerDay, r % nsPerDay
}

// ComparePlainDateTime orders date-times by ISO fields, ignoring
// calendars.
func ComparePlainDateTime(a, b PlainDateTime) int {
	if c := a.date.Compare(b.date); c != 0 {
		return c
	}
	return sign64(a.ns - b.ns)
}

// Equals reports whether dt and u have the same fields and calendar.
func (dt PlainDateTime) Equals(u PlainDateTime) bool {
	return dt.date == u.date && dt.ns == u.ns && calendar.Equal(dt.cal, u.cal)
}

// ToPlainDate drops the time.
func (dt PlainDateTime) ToPlainDate() PlainDate { return PlainDate{dt.date, dt.calendar()} }

// ToPlainTime drops the date.
func (dt PlainDateTime) ToPlainTime() PlainTime { return PlainTime{dt.ns} }

// ToZonedDateTime resolves dt in zone, choosing among ambiguous instants
// with d.
func (dt PlainDateTime) ToZonedDateTime(zone string, d Disambiguation) (ZonedDateTime, error) {
	zone, err := TimeZones.Canonicalize(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	epoch, err := epochFor(zone, dt.local(), d)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, zone, dt.cal)
}

func (dt PlainDateTime) String() string {
	s, _ := dt.Format(ToStringOptions{})
	return s
}

// Format renders dt with the precision, rounding and calendar annotation
// selected by opts.
func (dt PlainDateTime) Format(opts ToStringOptions) (string, error) {
	p, inc, err := opts.precision()
	if err != nil {
		return "", err
	}
	days, ns := roundTimeOfDay(dt.ns, Nanosecond, inc, opts.RoundingMode.Or(Trunc))
	date := dt.date.AddDays(days)
	if err := checkDateTime(localSpan(date, ns)); err != nil {
		return "", err
	}
	return date.String() + "T" + formatTime(ns, p) + calendarAnnotation(dt.cal, opts.CalendarName), nil
}

// MarshalText implements encoding.TextMarshaler.
func (dt PlainDateTime) MarshalText() ([]byte, error) { return []byte(dt.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (dt *PlainDateTime) UnmarshalText(text []byte) error {
	v, err := ParsePlainDateTime(string(text))
	if err != nil {
		return err
	}
	*dt = v
	return nil
}

// epochFor resolves a local time in zone.
func epochFor(zone string, local timeSpan, d Disambiguation) (timeSpan, error) {
	c, err := TimeZones.OffsetsFor(zone, local.sec)
	if err != nil {
		return timeSpan{}, err
	}
	sec, err := tz.Disambiguate(c, local.sec, d)
	if err != nil {
		return timeSpan{}, err
	}
	epoch := timeSpan{sec, local.nsec}
	return epoch, checkInstant(epoch)
}
