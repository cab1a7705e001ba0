// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calendar maps calendar fields to and from ISO dates.
//
// A Calendar is a capability interface; the ISO 8601 calendar is the
// default implementation and every value type works in terms of ISO
// (proleptic Gregorian) year/month/day triples internally, asking its
// Calendar only for field projections and calendar-unit arithmetic.
// Calendars are stateless and safe for concurrent use.
package calendar // import "github.com/startemporal/temporal/calendar"

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/startemporal/temporal/errors"
)

// Date is an ISO 8601 calendar date. It carries no calendar identifier.
type Date struct {
	Year, Month, Day int
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	}
	return sign(d.Day - o.Day)
}

// EpochDays returns the number of days from 1970-01-01 to d.
func (d Date) EpochDays() int64 { return EpochDays(d.Year, d.Month, d.Day) }

// AddDays returns the date n days after d.
func (d Date) AddDays(n int64) Date { return FromEpochDays(d.EpochDays() + n) }

func (d Date) String() string {
	return fmt.Sprintf("%s-%02d-%02d", FormatYear(d.Year), d.Month, d.Day)
}

// FormatYear renders an ISO year, using the six-digit signed form outside
// 0..9999.
func FormatYear(y int) string {
	if y >= 0 && y <= 9999 {
		return fmt.Sprintf("%04d", y)
	}
	if y < 0 {
		return fmt.Sprintf("-%06d", -y)
	}
	return fmt.Sprintf("+%06d", y)
}

// Supported span of dates, in days from the epoch: -271821-04-19 and
// +275760-09-13.
const (
	MinEpochDay = -100000001
	MaxEpochDay = 100000000
)

// Overflow selects how out-of-range field combinations are resolved.
type Overflow int

const (
	// Constrain clamps the out-of-range field to its nearest valid value.
	Constrain Overflow = iota
	// Reject fails with an InvalidDate error.
	Reject
)

func (o Overflow) String() string {
	if o == Reject {
		return "reject"
	}
	return "constrain"
}

// ParseOverflow parses "constrain" or "reject".
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "constrain", "":
		return Constrain, nil
	case "reject":
		return Reject, nil
	}
	return 0, errors.New(errors.InvalidArgument, "invalid overflow %q", s)
}

// DateUnit is the largest unit of a calendar difference.
type DateUnit int

const (
	Days DateUnit = iota
	Weeks
	Months
	Years
)

// Fields is a partial record of calendar fields.
type Fields struct {
	Era       Optional[string]
	EraYear   Optional[int]
	Year      Optional[int]
	Month     Optional[int]
	MonthCode Optional[string]
	Day       Optional[int]
}

// Merge returns f with every field present in o overriding it. Setting
// Month clears a MonthCode in f, and vice versa.
func (f Fields) Merge(o Fields) Fields {
	if o.Era.Present() || o.EraYear.Present() || o.Year.Present() {
		f.Era, f.EraYear, f.Year = o.Era, o.EraYear, o.Year
	}
	if o.Month.Present() || o.MonthCode.Present() {
		f.Month, f.MonthCode = o.Month, o.MonthCode
	}
	if o.Day.Present() {
		f.Day = o.Day
	}
	return f
}

// Empty reports whether no field is present.
func (f Fields) Empty() bool {
	return !f.Era.Present() && !f.EraYear.Present() && !f.Year.Present() &&
		!f.Month.Present() && !f.MonthCode.Present() && !f.Day.Present()
}

// A Calendar is a calendar system.
type Calendar interface {
	// ID returns the calendar identifier, e.g. "iso8601".
	ID() string

	DateFromFields(f Fields, o Overflow) (Date, error)
	YearMonthFromFields(f Fields, o Overflow) (Date, error)
	MonthDayFromFields(f Fields, o Overflow) (Date, error)

	// DateAdd adds calendar units to d: years and months first,
	// resolved with o, then weeks and days.
	DateAdd(d Date, years, months, weeks, days int64, o Overflow) (Date, error)
	// DateUntil returns the largest-unit-first difference from a to b.
	DateUntil(a, b Date, largest DateUnit) (years, months, weeks, days int64)

	// Fields returns the calendar's fields for d.
	Fields(d Date) Fields

	Year(d Date) int
	Month(d Date) int
	MonthCode(d Date) string
	Day(d Date) int
	Era(d Date) Optional[string]
	EraYear(d Date) Optional[int]
	DayOfWeek(d Date) int
	DayOfYear(d Date) int
	WeekOfYear(d Date) Optional[int]
	YearOfWeek(d Date) Optional[int]
	DaysInWeek(d Date) int
	DaysInMonth(d Date) int
	DaysInYear(d Date) int
	MonthsInYear(d Date) int
	InLeapYear(d Date) bool
}

var (
	mu       sync.RWMutex
	registry = map[string]Calendar{}
)

func init() {
	Register(ISO)
	Register(Gregorian)
}

// Register makes c available to Lookup under its ID.
func Register(c Calendar) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(c.ID())] = c
}

// Lookup returns the calendar with the given identifier. Identifiers are
// matched case-insensitively.
func Lookup(id string) (Calendar, error) {
	mu.RLock()
	c, ok := registry[strings.ToLower(id)]
	mu.RUnlock()
	if !ok {
		return nil, &errors.Error{Code: errors.UnknownCalendar, Message: "unknown calendar", Token: id}
	}
	return c, nil
}

// IDs returns the registered calendar identifiers, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Equal reports whether a and b are the same calendar. A nil Calendar is
// the ISO calendar.
func Equal(a, b Calendar) bool { return OrISO(a).ID() == OrISO(b).ID() }

// OrISO returns c, or ISO if c is nil.
func OrISO(c Calendar) Calendar {
	if c == nil {
		return ISO
	}
	return c
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
