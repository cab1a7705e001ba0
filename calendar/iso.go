// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import (
	"fmt"
	"strconv"

	"github.com/startemporal/temporal/errors"
)

// ISO is the ISO 8601 calendar.
var ISO Calendar = iso{}

// ReferenceYear is the ISO year used to store month-days. It is a leap
// year so that --02-29 is representable.
const ReferenceYear = 1972

type iso struct{}

func (iso) ID() string { return "iso8601" }

// IsLeapYear reports whether y is a leap year in the proleptic Gregorian calendar.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

var monthDays = [...]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the length of month m of ISO year y.
func DaysInMonth(y, m int) int {
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return monthDays[m]
}

// EpochDays returns the number of days from 1970-01-01 to the given ISO
// date. The day need not be valid for the month; excess days carry over.
func EpochDays(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	era := floorDiv(yy, 400)
	yoe := yy - era*400
	mp := int64((m + 9) % 12)
	doy := (153*mp+2)/5 + int64(d) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// FromEpochDays is the inverse of EpochDays.
func FromEpochDays(n int64) Date {
	n += 719468
	era := floorDiv(n, 146097)
	doe := n - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return Date{Year: int(y), Month: int(m), Day: int(d)}
}

// BalanceYearMonth normalizes a month outside 1..12 into the year.
func BalanceYearMonth(y, m int64) (int64, int) {
	m--
	y += floorDiv(m, 12)
	return y, int(m-floorDiv(m, 12)*12) + 1
}

// Regulate validates or clamps an ISO date according to o.
func Regulate(y, m, d int, o Overflow) (Date, error) {
	if o == Reject {
		if m < 1 || m > 12 {
			return Date{}, errors.New(errors.InvalidDate, "month %d out of range", m)
		}
		if d < 1 || d > DaysInMonth(y, m) {
			return Date{}, errors.New(errors.InvalidDate, "day %d out of range for %s-%02d", d, FormatYear(y), m)
		}
		return Date{y, m, d}, nil
	}
	if m < 1 || d < 1 {
		return Date{}, errors.New(errors.InvalidArgument, "month and day must be positive")
	}
	m = min(m, 12)
	return Date{y, m, min(d, DaysInMonth(y, m))}, nil
}

// InRange reports whether d lies within the supported span of dates.
func InRange(d Date) bool {
	n := d.EpochDays()
	return n >= MinEpochDay && n <= MaxEpochDay
}

func rangeErr(d Date) error {
	return errors.New(errors.RangeError, "date %s outside of supported range", d)
}

// ParseMonthCode parses "M01".."M12".
func ParseMonthCode(code string) (int, error) {
	if len(code) != 3 || code[0] != 'M' {
		return 0, &errors.Error{Code: errors.InvalidArgument, Message: "invalid month code", Token: code}
	}
	m, err := strconv.Atoi(code[1:])
	if err != nil || m < 1 || m > 12 {
		return 0, &errors.Error{Code: errors.InvalidArgument, Message: "invalid month code", Token: code}
	}
	return m, nil
}

// resolveMonth reconciles Month and MonthCode.
func resolveMonth(f Fields) (int, error) {
	m, hasMonth := f.Month.Get()
	code, hasCode := f.MonthCode.Get()
	if !hasCode {
		if !hasMonth {
			return 0, errors.New(errors.InvalidArgument, "month or monthCode is required")
		}
		return m, nil
	}
	cm, err := ParseMonthCode(code)
	if err != nil {
		return 0, err
	}
	if hasMonth && m != cm {
		return 0, errors.New(errors.InvalidArgument, "month %d does not match monthCode %s", m, code)
	}
	return cm, nil
}

func (iso) DateFromFields(f Fields, o Overflow) (Date, error) {
	y, ok := f.Year.Get()
	if !ok {
		return Date{}, errors.New(errors.InvalidArgument, "year is required")
	}
	return isoDate(y, f, o)
}

func isoDate(y int, f Fields, o Overflow) (Date, error) {
	m, err := resolveMonth(f)
	if err != nil {
		return Date{}, err
	}
	d, ok := f.Day.Get()
	if !ok {
		return Date{}, errors.New(errors.InvalidArgument, "day is required")
	}
	date, err := Regulate(y, m, d, o)
	if err != nil {
		return Date{}, err
	}
	if !InRange(date) {
		return Date{}, rangeErr(date)
	}
	return date, nil
}

func (iso) YearMonthFromFields(f Fields, o Overflow) (Date, error) {
	y, ok := f.Year.Get()
	if !ok {
		return Date{}, errors.New(errors.InvalidArgument, "year is required")
	}
	return isoYearMonth(y, f, o)
}

func isoYearMonth(y int, f Fields, o Overflow) (Date, error) {
	m, err := resolveMonth(f)
	if err != nil {
		return Date{}, err
	}
	date, err := Regulate(y, m, 1, o)
	if err != nil {
		return Date{}, err
	}
	// The month containing the first supported day is valid as a whole.
	if n := date.EpochDays(); n+int64(DaysInMonth(y, date.Month)) <= MinEpochDay || n > MaxEpochDay {
		return Date{}, rangeErr(date)
	}
	return date, nil
}

func (iso) MonthDayFromFields(f Fields, o Overflow) (Date, error) {
	return isoMonthDay(f.Year, f, o)
}

func isoMonthDay(year Optional[int], f Fields, o Overflow) (Date, error) {
	m, err := resolveMonth(f)
	if err != nil {
		return Date{}, err
	}
	d, ok := f.Day.Get()
	if !ok {
		return Date{}, errors.New(errors.InvalidArgument, "day is required")
	}
	y := year.Or(ReferenceYear)
	date, err := Regulate(y, m, d, o)
	if err != nil {
		return Date{}, err
	}
	date.Year = ReferenceYear
	return date, nil
}

func (iso) DateAdd(d Date, years, months, weeks, days int64, o Overflow) (Date, error) {
	return isoDateAdd(d, years, months, weeks, days, o)
}

func isoDateAdd(d Date, years, months, weeks, days int64, o Overflow) (Date, error) {
	y, m := BalanceYearMonth(int64(d.Year)+years, int64(d.Month)+months)
	if y < -300000 || y > 300000 {
		return Date{}, errors.New(errors.RangeError, "year %d outside of supported range", y)
	}
	reg, err := Regulate(int(y), m, d.Day, o)
	if err != nil {
		return Date{}, err
	}
	n := reg.EpochDays() + weeks*7 + days
	if n < MinEpochDay || n > MaxEpochDay {
		return Date{}, errors.New(errors.RangeError, "date outside of supported range")
	}
	return FromEpochDays(n), nil
}

func (iso) DateUntil(a, b Date, largest DateUnit) (years, months, weeks, days int64) {
	return isoDateUntil(a, b, largest)
}

// surpasses reports whether the (possibly invalid) date y/m/d lies beyond
// target in the direction of sign.
func surpasses(sign int, y, m, d int, target Date) bool {
	if y != target.Year {
		return sign*(y-target.Year) > 0
	}
	if m != target.Month {
		return sign*(m-target.Month) > 0
	}
	if d != target.Day {
		return sign*(d-target.Day) > 0
	}
	return false
}

func isoDateUntil(a, b Date, largest DateUnit) (years, months, weeks, days int64) {
	s := b.Compare(a)
	if s == 0 {
		return 0, 0, 0, 0
	}
	if largest == Years || largest == Months {
		// The largest month count not surpassing b, using a's day
		// unconstrained so that Jan 31 + 1 month surpasses Feb 28.
		total := int64(b.Year-a.Year)*12 + int64(b.Month-a.Month)
		y, m := BalanceYearMonth(int64(a.Year), int64(a.Month)+total)
		if surpasses(s, int(y), m, a.Day, b) {
			total -= int64(s)
		}
		if largest == Years {
			years = total / 12
			months = total - years*12
		} else {
			months = total
		}
	}
	y, m := BalanceYearMonth(int64(a.Year)+years, int64(a.Month)+months)
	mid, _ := Regulate(int(y), m, a.Day, Constrain)
	days = b.EpochDays() - mid.EpochDays()
	if largest == Weeks {
		weeks = days / 7
		days -= weeks * 7
	}
	return years, months, weeks, days
}

func (c iso) Fields(d Date) Fields {
	return Fields{
		Year:      Some(d.Year),
		Month:     Some(d.Month),
		MonthCode: Some(c.MonthCode(d)),
		Day:       Some(d.Day),
	}
}

func (iso) Year(d Date) int  { return d.Year }
func (iso) Month(d Date) int { return d.Month }
func (iso) Day(d Date) int   { return d.Day }

func (iso) MonthCode(d Date) string { return fmt.Sprintf("M%02d", d.Month) }

func (iso) Era(Date) Optional[string]  { return None[string]() }
func (iso) EraYear(Date) Optional[int] { return None[int]() }

// DayOfWeek returns 1 for Monday through 7 for Sunday.
func (iso) DayOfWeek(d Date) int { return isoDayOfWeek(d) }

func isoDayOfWeek(d Date) int {
	return int(floorMod(d.EpochDays()+3, 7)) + 1
}

func (iso) DayOfYear(d Date) int { return isoDayOfYear(d) }

func isoDayOfYear(d Date) int {
	return int(d.EpochDays()-EpochDays(d.Year, 1, 1)) + 1
}

func isoWeeksInYear(y int) int {
	jan1 := isoDayOfWeek(Date{y, 1, 1})
	if jan1 == 4 || (jan1 == 3 && IsLeapYear(y)) {
		return 53
	}
	return 52
}

// isoWeek returns the ISO 8601 week number and week-numbering year of d.
func isoWeek(d Date) (week, year int) {
	week = (isoDayOfYear(d) - isoDayOfWeek(d) + 10) / 7
	year = d.Year
	switch {
	case week < 1:
		year--
		week = isoWeeksInYear(year)
	case week > isoWeeksInYear(year):
		year++
		week = 1
	}
	return week, year
}

func (iso) WeekOfYear(d Date) Optional[int] {
	w, _ := isoWeek(d)
	return Some(w)
}

func (iso) YearOfWeek(d Date) Optional[int] {
	_, y := isoWeek(d)
	return Some(y)
}

func (iso) DaysInWeek(Date) int    { return 7 }
func (iso) DaysInMonth(d Date) int { return DaysInMonth(d.Year, d.Month) }
func (iso) MonthsInYear(Date) int  { return 12 }
func (iso) InLeapYear(d Date) bool { return IsLeapYear(d.Year) }
func (c iso) DaysInYear(d Date) int {
	if IsLeapYear(d.Year) {
		return 366
	}
	return 365
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 { return a - floorDiv(a, b)*b }
