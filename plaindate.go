// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
)

// A PlainDate is a calendar date with no time or time zone.
type PlainDate struct {
	date calendar.Date
	cal  calendar.Calendar
}

// NewPlainDate returns the ISO date year-month-day. It fails with
// InvalidDate if the day does not exist and RangeError if the date lies
// outside the supported range.
func NewPlainDate(year, month, day int) (PlainDate, error) {
	d, err := calendar.Regulate(year, month, day, calendar.Reject)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(d, calendar.ISO)
}

func newPlainDate(d calendar.Date, cal calendar.Calendar) (PlainDate, error) {
	if !calendar.InRange(d) {
		return PlainDate{}, errors.New(errors.RangeError, "date %s outside of supported range", d)
	}
	return PlainDate{d, calendar.OrISO(cal)}, nil
}

// PlainDateFromFields resolves calendar fields in cal (nil means ISO).
func PlainDateFromFields(f calendar.Fields, cal calendar.Calendar, o Overflow) (PlainDate, error) {
	cal = calendar.OrISO(cal)
	d, err := cal.DateFromFields(f, o)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(d, cal)
}

// ParsePlainDate parses "YYYY-MM-DD" with optional time, offset and
// annotations; everything but the date and calendar is ignored.
func ParsePlainDate(s string) (PlainDate, error) {
	r, err := isolex.ParseDateTime(s)
	if err != nil {
		return PlainDate{}, err
	}
	if r.HasOffset && r.Offset.Z {
		return PlainDate{}, errors.Parse("Z", "UTC designator not allowed on a plain date")
	}
	cal, err := calendarOf(r)
	if err != nil {
		return PlainDate{}, err
	}
	d, err := calendar.Regulate(r.Year, r.Month, r.Day, calendar.Reject)
	if err != nil {
		return PlainDate{}, errors.Parse(s, "%v", err)
	}
	return newPlainDate(d, cal)
}

func (d PlainDate) calendar() calendar.Calendar { return calendar.OrISO(d.cal) }

// Calendar returns the date's calendar.
func (d PlainDate) Calendar() calendar.Calendar { return d.calendar() }

// CalendarID returns the identifier of the date's calendar.
func (d PlainDate) CalendarID() string { return d.calendar().ID() }

// ISO returns the underlying ISO year, month and day.
func (d PlainDate) ISO() calendar.Date { return d.date }

func (d PlainDate) Year() int                          { return d.calendar().Year(d.date) }
func (d PlainDate) Month() int                         { return d.calendar().Month(d.date) }
func (d PlainDate) MonthCode() string                  { return d.calendar().MonthCode(d.date) }
func (d PlainDate) Day() int                           { return d.calendar().Day(d.date) }
func (d PlainDate) Era() calendar.Optional[string]     { return d.calendar().Era(d.date) }
func (d PlainDate) EraYear() calendar.Optional[int]    { return d.calendar().EraYear(d.date) }
func (d PlainDate) DayOfWeek() int                     { return d.calendar().DayOfWeek(d.date) }
func (d PlainDate) DayOfYear() int                     { return d.calendar().DayOfYear(d.date) }
func (d PlainDate) WeekOfYear() calendar.Optional[int] { return d.calendar().WeekOfYear(d.date) }
func (d PlainDate) YearOfWeek() calendar.Optional[int] { return d.calendar().YearOfWeek(d.date) }
func (d PlainDate) DaysInWeek() int                    { return d.calendar().DaysInWeek(d.date) }
func (d PlainDate) DaysInMonth() int                   { return d.calendar().DaysInMonth(d.date) }
func (d PlainDate) DaysInYear() int                    { return d.calendar().DaysInYear(d.date) }
func (d PlainDate) MonthsInYear() int                  { return d.calendar().MonthsInYear(d.date) }
func (d PlainDate) InLeapYear() bool                   { return d.calendar().InLeapYear(d.date) }

// Fields returns the date's calendar fields.
func (d PlainDate) Fields() calendar.Fields { return d.calendar().Fields(d.date) }

// Add returns d advanced by dur: years and months first, resolved with o,
// then weeks and days. Time units count toward days in whole 24-hour
// multiples.
func (d PlainDate) Add(dur Duration, o Overflow) (PlainDate, error) {
	days, _ := dur.timePart().div(nsPerDay)
	r, err := d.calendar().DateAdd(d.date, dur.years, dur.months, dur.weeks, dur.days+days, o)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(r, d.cal)
}

// Subtract returns d moved back by dur.
func (d PlainDate) Subtract(dur Duration, o Overflow) (PlainDate, error) {
	return d.Add(dur.Negated(), o)
}

// With returns d with the present fields of f replaced, revalidated
// through the calendar.
func (d PlainDate) With(f calendar.Fields, o Overflow) (PlainDate, error) {
	if f.Empty() {
		return PlainDate{}, errors.New(errors.InvalidArgument, "at least one date field is required")
	}
	return PlainDateFromFields(d.Fields().Merge(f), d.cal, o)
}

// WithCalendar returns the same ISO date in another calendar.
func (d PlainDate) WithCalendar(cal calendar.Calendar) PlainDate {
	return PlainDate{d.date, calendar.OrISO(cal)}
}

// Until returns the duration from d to e. Units range from days to years;
// the default largest unit is days.
func (d PlainDate) Until(e PlainDate, opts DifferenceOptions) (Duration, error) {
	return d.difference(e, opts, false)
}

// Since returns the duration from e to d.
func (d PlainDate) Since(e PlainDate, opts DifferenceOptions) (Duration, error) {
	return d.difference(e, opts, true)
}

func (d PlainDate) difference(e PlainDate, opts DifferenceOptions, since bool) (Duration, error) {
	if !calendar.Equal(d.cal, e.cal) {
		return Duration{}, errors.New(errors.RangeError, "cannot difference dates in calendars %s and %s", d.CalendarID(), e.CalendarID())
	}
	s, err := opts.resolve(Day, Year, Day, Day, since)
	if err != nil {
		return Duration{}, err
	}
	return differenceDateTimes(d.atMidnight(), e.atMidnight(), s, since)
}

// differenceDateTimes differences local date-times with rounding.
func differenceDateTimes(a, b PlainDateTime, s differenceSettings, since bool) (Duration, error) {
	diff := diffDateTime(a, b, s.largest)
	if s.rounds() {
		var err error
		if diff, err = roundRelative(diff, b.local(), anchor{dt: a}, s); err != nil {
			return Duration{}, err
		}
	}
	r, err := diff.toDuration(s.largest)
	if since {
		r = r.Negated()
	}
	return r, err
}

// ComparePlainDate orders dates by ISO day, ignoring calendars.
func ComparePlainDate(a, b PlainDate) int { return a.date.Compare(b.date) }

// Equals reports whether d and e are the same date in the same calendar.
func (d PlainDate) Equals(e PlainDate) bool {
	return d.date == e.date && calendar.Equal(d.cal, e.cal)
}

func (d PlainDate) atMidnight() PlainDateTime { return PlainDateTime{d.date, 0, d.calendar()} }

// ToPlainDateTime combines d with a time.
func (d PlainDate) ToPlainDateTime(t PlainTime) (PlainDateTime, error) {
	return newPlainDateTime(d.date, t.ns, d.cal)
}

// ToZonedDateTime returns the start of d in zone.
func (d PlainDate) ToZonedDateTime(zone string) (ZonedDateTime, error) {
	zone, err := TimeZones.Canonicalize(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	epoch, err := startOfDay(d.date, zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(epoch, zone, d.cal)
}

// ToPlainYearMonth drops the day.
func (d PlainDate) ToPlainYearMonth() (PlainYearMonth, error) {
	f := d.Fields()
	f.Day = calendar.None[int]()
	return PlainYearMonthFromFields(f, d.cal, calendar.Constrain)
}

// ToPlainMonthDay drops the year.
func (d PlainDate) ToPlainMonthDay() (PlainMonthDay, error) {
	f := d.Fields()
	f.Era, f.EraYear, f.Year = calendar.None[string](), calendar.None[int](), calendar.None[int]()
	f.Month = calendar.None[int]()
	return PlainMonthDayFromFields(f, d.cal, calendar.Constrain)
}

// anchor implements RelativeTo.
func (d PlainDate) anchor() (anchor, error) { return anchor{dt: d.atMidnight()}, nil }

func (d PlainDate) String() string { return d.Format(CalendarAuto) }

// Format renders d, annotating the calendar as selected by name.
func (d PlainDate) Format(name CalendarName) string {
	return d.date.String() + calendarAnnotation(d.cal, name)
}

// MarshalText implements encoding.TextMarshaler.
func (d PlainDate) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *PlainDate) UnmarshalText(text []byte) error {
	v, err := ParsePlainDate(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
