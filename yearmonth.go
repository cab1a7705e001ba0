// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"

	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
)

// A PlainYearMonth is a month of a particular year. It is stored as the
// ISO date of a reference day, which is not observable.
type PlainYearMonth struct {
	date calendar.Date
	cal  calendar.Calendar
}

// NewPlainYearMonth returns the ISO year-month.
func NewPlainYearMonth(year, month int) (PlainYearMonth, error) {
	return PlainYearMonthFromFields(calendar.Fields{
		Year:  calendar.Some(year),
		Month: calendar.Some(month),
	}, calendar.ISO, calendar.Reject)
}

// PlainYearMonthFromFields resolves year and month fields in cal (nil
// means ISO). A day field is ignored.
func PlainYearMonthFromFields(f calendar.Fields, cal calendar.Calendar, o Overflow) (PlainYearMonth, error) {
	cal = calendar.OrISO(cal)
	d, err := cal.YearMonthFromFields(f, o)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{d, cal}, nil
}

// ParsePlainYearMonth parses "YYYY-MM" or a date, with optional
// annotations.
func ParsePlainYearMonth(s string) (PlainYearMonth, error) {
	r, err := isolex.ParseYearMonth(s)
	if err != nil {
		return PlainYearMonth{}, err
	}
	if r.HasOffset && r.Offset.Z {
		return PlainYearMonth{}, errors.Parse("Z", "UTC designator not allowed on a year-month")
	}
	cal, err := calendarOf(r)
	if err != nil {
		return PlainYearMonth{}, err
	}
	if r.HasDate {
		if _, err := calendar.Regulate(r.Year, r.Month, r.Day, calendar.Reject); err != nil {
			return PlainYearMonth{}, errors.Parse(s, "%v", err)
		}
	}
	iso, err := calendar.ISO.YearMonthFromFields(calendar.Fields{
		Year:  calendar.Some(r.Year),
		Month: calendar.Some(r.Month),
	}, calendar.Reject)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonthFromFields(cal.Fields(iso), cal, calendar.Reject)
}

func (ym PlainYearMonth) calendar() calendar.Calendar { return calendar.OrISO(ym.cal) }

// Calendar returns the year-month's calendar.
func (ym PlainYearMonth) Calendar() calendar.Calendar { return ym.calendar() }

// CalendarID returns the identifier of the year-month's calendar.
func (ym PlainYearMonth) CalendarID() string { return ym.calendar().ID() }

func (ym PlainYearMonth) Year() int                       { return ym.calendar().Year(ym.date) }
func (ym PlainYearMonth) Month() int                      { return ym.calendar().Month(ym.date) }
func (ym PlainYearMonth) MonthCode() string               { return ym.calendar().MonthCode(ym.date) }
func (ym PlainYearMonth) Era() calendar.Optional[string]  { return ym.calendar().Era(ym.date) }
func (ym PlainYearMonth) EraYear() calendar.Optional[int] { return ym.calendar().EraYear(ym.date) }
func (ym PlainYearMonth) DaysInMonth() int                { return ym.calendar().DaysInMonth(ym.date) }
func (ym PlainYearMonth) DaysInYear() int                 { return ym.calendar().DaysInYear(ym.date) }
func (ym PlainYearMonth) MonthsInYear() int               { return ym.calendar().MonthsInYear(ym.date) }
func (ym PlainYearMonth) InLeapYear() bool                { return ym.calendar().InLeapYear(ym.date) }

// fields returns the calendar fields without the day.
func (ym PlainYearMonth) fields() calendar.Fields {
	f := ym.calendar().Fields(ym.date)
	f.Day = calendar.None[int]()
	return f
}

// Add returns ym advanced by the years and months of d. Other units
// fail with RangeError.
func (ym PlainYearMonth) Add(d Duration, o Overflow) (PlainYearMonth, error) {
	if d.weeks != 0 || d.days != 0 || !d.timePart().isZero() {
		return PlainYearMonth{}, errors.New(errors.RangeError, "only years and months can be added to a year-month")
	}
	cal := ym.calendar()
	r, err := cal.DateAdd(ym.date, d.years, d.months, 0, 0, o)
	if err != nil {
		return PlainYearMonth{}, err
	}
	f := cal.Fields(r)
	f.Day = calendar.None[int]()
	return PlainYearMonthFromFields(f, cal, o)
}

// Subtract returns ym moved back by d.
func (ym PlainYearMonth) Subtract(d Duration, o Overflow) (PlainYearMonth, error) {
	return ym.Add(d.Negated(), o)
}

// With returns ym with the present fields of f replaced.
func (ym PlainYearMonth) With(f calendar.Fields, o Overflow) (PlainYearMonth, error) {
	if f.Empty() {
		return PlainYearMonth{}, errors.New(errors.InvalidArgument, "at least one field is required")
	}
	if f.Day.Present() {
		return PlainYearMonth{}, errors.New(errors.InvalidArgument, "day is not a year-month field")
	}
	return PlainYearMonthFromFields(ym.fields().Merge(f), ym.cal, o)
}

// Until returns the duration from ym to other in years and months; the
// default largest unit is years.
func (ym PlainYearMonth) Until(other PlainYearMonth, opts DifferenceOptions) (Duration, error) {
	return ym.difference(other, opts, false)
}

// Since returns the duration from other to ym.
func (ym PlainYearMonth) Since(other PlainYearMonth, opts DifferenceOptions) (Duration, error) {
	return ym.difference(other, opts, true)
}

func (ym PlainYearMonth) difference(other PlainYearMonth, opts DifferenceOptions, since bool) (Duration, error) {
	if !calendar.Equal(ym.cal, other.cal) {
		return Duration{}, errors.New(errors.RangeError, "cannot difference year-months in calendars %s and %s", ym.CalendarID(), other.CalendarID())
	}
	s, err := opts.resolve(Month, Year, Year, Month, since)
	if err != nil {
		return Duration{}, err
	}
	a := PlainDateTime{ym.date, 0, ym.calendar()}
	b := PlainDateTime{other.date, 0, ym.calendar()}
	return differenceDateTimes(a, b, s, since)
}

// ComparePlainYearMonth orders year-months by their ISO reference dates.
func ComparePlainYearMonth(a, b PlainYearMonth) int { return a.date.Compare(b.date) }

// Equals reports whether ym and other are the same month in the same
// calendar.
func (ym PlainYearMonth) Equals(other PlainYearMonth) bool {
	return ym.date == other.date && calendar.Equal(ym.cal, other.cal)
}

// ToPlainDate returns the given day of ym, constrained to the month.
func (ym PlainYearMonth) ToPlainDate(day int) (PlainDate, error) {
	f := ym.fields()
	f.Day = calendar.Some(day)
	return PlainDateFromFields(f, ym.cal, calendar.Constrain)
}

func (ym PlainYearMonth) String() string { return ym.Format(CalendarAuto) }

// Format renders ym. The reference day is included whenever the calendar
// is annotated.
func (ym PlainYearMonth) Format(name CalendarName) string {
	ann := calendarAnnotation(ym.cal, name)
	if ann == "" {
		return fmt.Sprintf("%s-%02d", calendar.FormatYear(ym.date.Year), ym.date.Month)
	}
	return ym.date.String() + ann
}

// MarshalText implements encoding.TextMarshaler.
func (ym PlainYearMonth) MarshalText() ([]byte, error) { return []byte(ym.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (ym *PlainYearMonth) UnmarshalText(text []byte) error {
	v, err := ParsePlainYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = v
	return nil
}
