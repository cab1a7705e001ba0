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

// A PlainMonthDay is a day of the year that recurs annually, such as a
// birthday. It is stored as an ISO date in the reference year 1972.
type PlainMonthDay struct {
	date calendar.Date
	cal  calendar.Calendar
}

// NewPlainMonthDay returns the ISO month-day. February 29 is valid.
func NewPlainMonthDay(month, day int) (PlainMonthDay, error) {
	return PlainMonthDayFromFields(calendar.Fields{
		Month: calendar.Some(month),
		Day:   calendar.Some(day),
	}, calendar.ISO, calendar.Reject)
}

// PlainMonthDayFromFields resolves month and day fields in cal (nil means
// ISO). A year, if given, is used only to validate the day.
func PlainMonthDayFromFields(f calendar.Fields, cal calendar.Calendar, o Overflow) (PlainMonthDay, error) {
	cal = calendar.OrISO(cal)
	d, err := cal.MonthDayFromFields(f, o)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{d, cal}, nil
}

// ParsePlainMonthDay parses "MM-DD", "--MM-DD" or a date, with optional
// annotations.
func ParsePlainMonthDay(s string) (PlainMonthDay, error) {
	r, err := isolex.ParseMonthDay(s)
	if err != nil {
		return PlainMonthDay{}, err
	}
	if r.HasOffset && r.Offset.Z {
		return PlainMonthDay{}, errors.Parse("Z", "UTC designator not allowed on a month-day")
	}
	cal, err := calendarOf(r)
	if err != nil {
		return PlainMonthDay{}, err
	}
	year := calendar.ReferenceYear
	if r.HasDate {
		year = r.Year
	}
	iso, err := calendar.Regulate(year, r.Month, r.Day, calendar.Reject)
	if err != nil {
		return PlainMonthDay{}, errors.Parse(s, "%v", err)
	}
	f := cal.Fields(iso)
	if !r.HasDate {
		f.Era, f.EraYear, f.Year = calendar.None[string](), calendar.None[int](), calendar.None[int]()
	}
	return PlainMonthDayFromFields(f, cal, calendar.Reject)
}

func (md PlainMonthDay) calendar() calendar.Calendar { return calendar.OrISO(md.cal) }

// Calendar returns the month-day's calendar.
func (md PlainMonthDay) Calendar() calendar.Calendar { return md.calendar() }

// CalendarID returns the identifier of the month-day's calendar.
func (md PlainMonthDay) CalendarID() string { return md.calendar().ID() }

func (md PlainMonthDay) MonthCode() string { return md.calendar().MonthCode(md.date) }
func (md PlainMonthDay) Day() int          { return md.calendar().Day(md.date) }

// fields returns the month code and day.
func (md PlainMonthDay) fields() calendar.Fields {
	return calendar.Fields{
		MonthCode: calendar.Some(md.MonthCode()),
		Day:       calendar.Some(md.Day()),
	}
}

// With returns md with the present fields of f replaced.
func (md PlainMonthDay) With(f calendar.Fields, o Overflow) (PlainMonthDay, error) {
	if f.Empty() {
		return PlainMonthDay{}, errors.New(errors.InvalidArgument, "at least one field is required")
	}
	return PlainMonthDayFromFields(md.fields().Merge(f), md.cal, o)
}

// Equals reports whether md and other are the same month-day in the same
// calendar.
func (md PlainMonthDay) Equals(other PlainMonthDay) bool {
	return md.date == other.date && calendar.Equal(md.cal, other.cal)
}

// ToPlainDate returns md in the given year, constraining February 29 to
// February 28 in common years.
func (md PlainMonthDay) ToPlainDate(year int) (PlainDate, error) {
	f := md.fields()
	f.Year = calendar.Some(year)
	return PlainDateFromFields(f, md.cal, calendar.Constrain)
}

func (md PlainMonthDay) String() string { return md.Format(CalendarAuto) }

// Format renders md. The reference year is included whenever the
// calendar is annotated.
func (md PlainMonthDay) Format(name CalendarName) string {
	ann := calendarAnnotation(md.cal, name)
	if ann == "" {
		return fmt.Sprintf("%02d-%02d", md.date.Month, md.date.Day)
	}
	return md.date.String() + ann
}

// MarshalText implements encoding.TextMarshaler.
func (md PlainMonthDay) MarshalText() ([]byte, error) { return []byte(md.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (md *PlainMonthDay) UnmarshalText(text []byte) error {
	v, err := ParsePlainMonthDay(string(text))
	if err != nil {
		return err
	}
	*md = v
	return nil
}
