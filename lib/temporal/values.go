// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/calendar"
)

// Starlark representations of the temporal value types. Every type is
// immutable, hashable and unpacks from its canonical text.
type (
	Instant        temporal.Instant
	ZonedDateTime  temporal.ZonedDateTime
	PlainDate      temporal.PlainDate
	PlainTime      temporal.PlainTime
	PlainDateTime  temporal.PlainDateTime
	PlainYearMonth temporal.PlainYearMonth
	PlainMonthDay  temporal.PlainMonthDay
	Duration       temporal.Duration
)

var (
	_ starlark.HasAttrs   = Instant{}
	_ starlark.Comparable = Instant{}
	_ starlark.HasBinary  = Instant{}
	_ starlark.Unpacker   = (*Instant)(nil)
	_ starlark.HasUnary   = Duration{}
	_ starlark.Unpacker   = (*Duration)(nil)
)

func hashOf(v fmt.Stringer) (uint32, error) { return starlark.String(v.String()).Hash() }

// dateLike is implemented by the types that carry a full calendar date.
type dateLike interface {
	CalendarID() string
	Year() int
	Month() int
	MonthCode() string
	Day() int
	Era() calendar.Optional[string]
	EraYear() calendar.Optional[int]
	DayOfWeek() int
	DayOfYear() int
	WeekOfYear() calendar.Optional[int]
	YearOfWeek() calendar.Optional[int]
	DaysInWeek() int
	DaysInMonth() int
	DaysInYear() int
	MonthsInYear() int
	InLeapYear() bool
}

var dateAttrNames = []string{
	"calendar_id", "year", "month", "month_code", "day", "era", "era_year",
	"day_of_week", "day_of_year", "week_of_year", "year_of_week",
	"days_in_week", "days_in_month", "days_in_year", "months_in_year", "in_leap_year",
}

func dateAttr(d dateLike, name string) starlark.Value {
	switch name {
	case "calendar_id":
		return starlark.String(d.CalendarID())
	case "year":
		return starlark.MakeInt(d.Year())
	case "month":
		return starlark.MakeInt(d.Month())
	case "month_code":
		return starlark.String(d.MonthCode())
	case "day":
		return starlark.MakeInt(d.Day())
	case "era":
		return optional(d.Era())
	case "era_year":
		return optional(d.EraYear())
	case "day_of_week":
		return starlark.MakeInt(d.DayOfWeek())
	case "day_of_year":
		return starlark.MakeInt(d.DayOfYear())
	case "week_of_year":
		return optional(d.WeekOfYear())
	case "year_of_week":
		return optional(d.YearOfWeek())
	case "days_in_week":
		return starlark.MakeInt(d.DaysInWeek())
	case "days_in_month":
		return starlark.MakeInt(d.DaysInMonth())
	case "days_in_year":
		return starlark.MakeInt(d.DaysInYear())
	case "months_in_year":
		return starlark.MakeInt(d.MonthsInYear())
	case "in_leap_year":
		return starlark.Bool(d.InLeapYear())
	}
	return nil
}

// timeLike is implemented by the types that carry a wall-clock time.
type timeLike interface {
	Hour() int
	Minute() int
	Second() int
	Millisecond() int
	Microsecond() int
	Nanosecond() int
}

var timeAttrNames = []string{"hour", "minute", "second", "millisecond", "microsecond", "nanosecond"}

func timeAttr(t timeLike, name string) starlark.Value {
	switch name {
	case "hour":
		return starlark.MakeInt(t.Hour())
	case "minute":
		return starlark.MakeInt(t.Minute())
	case "second":
		return starlark.MakeInt(t.Second())
	case "millisecond":
		return starlark.MakeInt(t.Millisecond())
	case "microsecond":
		return starlark.MakeInt(t.Microsecond())
	case "nanosecond":
		return starlark.MakeInt(t.Nanosecond())
	}
	return nil
}

// Instant

func (i Instant) String() string        { return temporal.Instant(i).String() }
func (i Instant) Type() string          { return "temporal.instant" }
func (i Instant) Freeze()               {}
func (i Instant) Hash() (uint32, error) { return hashOf(i) }
func (i Instant) Truth() starlark.Bool  { return true }

func (i Instant) Attr(name string) (starlark.Value, error) {
	x := temporal.Instant(i)
	switch name {
	case "epoch_milliseconds":
		return starlark.MakeInt64(x.EpochMilliseconds()), nil
	case "epoch_nanoseconds":
		return starlark.MakeBigInt(x.EpochNanoseconds()), nil
	}
	return builtinAttr(i, name, instantMethods)
}

func (i Instant) AttrNames() []string {
	return append(builtinAttrNames(instantMethods), "epoch_milliseconds", "epoch_nanoseconds")
}

func (i Instant) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.CompareInstant(temporal.Instant(i), temporal.Instant(y.(Instant)))), nil
}

// Binary implements
//
//	instant + duration = instant
//	instant - duration = instant
//	instant - instant = duration
func (i Instant) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.Instant(i)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			r, err := x.Add(temporal.Duration(y))
			return result(Instant(r), err)
		case op == syntax.MINUS && side == starlark.Left:
			r, err := x.Subtract(temporal.Duration(y))
			return result(Instant(r), err)
		}
	case Instant:
		if op == syntax.MINUS {
			d, err := x.Since(temporal.Instant(y), temporal.DifferenceOptions{})
			return result(Duration(d), err)
		}
	}
	return nil, nil
}

func (i *Instant) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Instant:
		*i = v
		return nil
	case ZonedDateTime:
		*i = Instant(temporal.ZonedDateTime(v).ToInstant())
		return nil
	case starlark.String:
		x, err := temporal.ParseInstant(string(v))
		*i = Instant(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), i.Type())
}

// ZonedDateTime

func (z ZonedDateTime) String() string        { return temporal.ZonedDateTime(z).String() }
func (z ZonedDateTime) Type() string          { return "temporal.zoned_date_time" }
func (z ZonedDateTime) Freeze()               {}
func (z ZonedDateTime) Hash() (uint32, error) { return hashOf(z) }
func (z ZonedDateTime) Truth() starlark.Bool  { return true }

func (z ZonedDateTime) Attr(name string) (starlark.Value, error) {
	x := temporal.ZonedDateTime(z)
	if v := dateAttr(x, name); v != nil {
		return v, nil
	}
	if v := timeAttr(x, name); v != nil {
		return v, nil
	}
	switch name {
	case "time_zone_id":
		return starlark.String(x.TimeZoneID()), nil
	case "offset":
		return starlark.String(x.Offset()), nil
	case "offset_nanoseconds":
		return starlark.MakeInt64(x.OffsetNanoseconds()), nil
	case "epoch_milliseconds":
		return starlark.MakeInt64(x.EpochMilliseconds()), nil
	case "epoch_nanoseconds":
		return starlark.MakeBigInt(x.EpochNanoseconds()), nil
	case "hours_in_day":
		h, err := x.HoursInDay()
		if err != nil {
			return nil, err
		}
		return starlark.Float(h), nil
	}
	return builtinAttr(z, name, zonedMethods)
}

func (z ZonedDateTime) AttrNames() []string {
	names := join(builtinAttrNames(zonedMethods), dateAttrNames, timeAttrNames)
	return append(names, "time_zone_id", "offset", "offset_nanoseconds", "epoch_milliseconds", "epoch_nanoseconds", "hours_in_day")
}

// CompareSameType orders zoned date-times by instant. Equality also
// requires the same zone and calendar.
func (z ZonedDateTime) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	a, b := temporal.ZonedDateTime(z), temporal.ZonedDateTime(y.(ZonedDateTime))
	return compareEqual(op, a.Equals(b), temporal.CompareZonedDateTime(a, b)), nil
}

// Binary implements
//
//	zoned_date_time + duration = zoned_date_time
//	zoned_date_time - duration = zoned_date_time
//	zoned_date_time - zoned_date_time = duration
func (z ZonedDateTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.ZonedDateTime(z)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			r, err := x.Add(temporal.Duration(y), calendar.Constrain)
			return result(ZonedDateTime(r), err)
		case op == syntax.MINUS && side == starlark.Left:
			r, err := x.Subtract(temporal.Duration(y), calendar.Constrain)
			return result(ZonedDateTime(r), err)
		}
	case ZonedDateTime:
		if op == syntax.MINUS {
			d, err := x.Since(temporal.ZonedDateTime(y), temporal.DifferenceOptions{})
			return result(Duration(d), err)
		}
	}
	return nil, nil
}

func (z *ZonedDateTime) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case ZonedDateTime:
		*z = v
		return nil
	case starlark.String:
		x, err := temporal.ParseZonedDateTime(string(v), temporal.ZonedOptions{})
		*z = ZonedDateTime(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), z.Type())
}

// PlainDate

func (d PlainDate) String() string        { return temporal.PlainDate(d).String() }
func (d PlainDate) Type() string          { return "temporal.plain_date" }
func (d PlainDate) Freeze()               {}
func (d PlainDate) Hash() (uint32, error) { return hashOf(d) }
func (d PlainDate) Truth() starlark.Bool  { return true }

func (d PlainDate) Attr(name string) (starlark.Value, error) {
	if v := dateAttr(temporal.PlainDate(d), name); v != nil {
		return v, nil
	}
	return builtinAttr(d, name, plainDateMethods)
}

func (d PlainDate) AttrNames() []string {
	return join(builtinAttrNames(plainDateMethods), dateAttrNames)
}

// CompareSameType orders dates by ISO fields. Equality also requires the
// same calendar.
func (d PlainDate) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	a, b := temporal.PlainDate(d), temporal.PlainDate(y.(PlainDate))
	return compareEqual(op, a.Equals(b), temporal.ComparePlainDate(a, b)), nil
}

// Binary implements
//
//	plain_date + duration = plain_date
//	plain_date - duration = plain_date
//	plain_date - plain_date = duration
func (d PlainDate) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.PlainDate(d)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			r, err := x.Add(temporal.Duration(y), calendar.Constrain)
			return result(PlainDate(r), err)
		case op == syntax.MINUS && side == starlark.Left:
			r, err := x.Subtract(temporal.Duration(y), calendar.Constrain)
			return result(PlainDate(r), err)
		}
	case PlainDate:
		if op == syntax.MINUS {
			r, err := x.Since(temporal.PlainDate(y), temporal.DifferenceOptions{})
			return result(Duration(r), err)
		}
	}
	return nil, nil
}

func (d *PlainDate) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case PlainDate:
		*d = v
		return nil
	case PlainDateTime:
		*d = PlainDate(temporal.PlainDateTime(v).ToPlainDate())
		return nil
	case ZonedDateTime:
		*d = PlainDate(temporal.ZonedDateTime(v).ToPlainDate())
		return nil
	case starlark.String:
		x, err := temporal.ParsePlainDate(string(v))
		*d = PlainDate(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), d.Type())
}

// PlainTime

func (t PlainTime) String() string        { return temporal.PlainTime(t).String() }
func (t PlainTime) Type() string          { return "temporal.plain_time" }
func (t PlainTime) Freeze()               {}
func (t PlainTime) Hash() (uint32, error) { return hashOf(t) }
func (t PlainTime) Truth() starlark.Bool  { return true }

func (t PlainTime) Attr(name string) (starlark.Value, error) {
	if v := timeAttr(temporal.PlainTime(t), name); v != nil {
		return v, nil
	}
	return builtinAttr(t, name, plainTimeMethods)
}

func (t PlainTime) AttrNames() []string {
	return join(builtinAttrNames(plainTimeMethods), timeAttrNames)
}

func (t PlainTime) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	return threeway(op, temporal.ComparePlainTime(temporal.PlainTime(t), temporal.PlainTime(y.(PlainTime)))), nil
}

// Binary implements
//
//	plain_time + duration = plain_time
//	plain_time - duration = plain_time
//	plain_time - plain_time = duration
func (t PlainTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.PlainTime(t)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			return PlainTime(x.Add(temporal.Duration(y))), nil
		case op == syntax.MINUS && side == starlark.Left:
			return PlainTime(x.Subtract(temporal.Duration(y))), nil
		}
	case PlainTime:
		if op == syntax.MINUS {
			r, err := x.Since(temporal.PlainTime(y), temporal.DifferenceOptions{})
			return result(Duration(r), err)
		}
	}
	return nil, nil
}

func (t *PlainTime) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case PlainTime:
		*t = v
		return nil
	case PlainDateTime:
		*t = PlainTime(temporal.PlainDateTime(v).ToPlainTime())
		return nil
	case ZonedDateTime:
		*t = PlainTime(temporal.ZonedDateTime(v).ToPlainTime())
		return nil
	case starlark.String:
		x, err := temporal.ParsePlainTime(string(v))
		*t = PlainTime(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), t.Type())
}

// PlainDateTime

func (dt PlainDateTime) String() string        { return temporal.PlainDateTime(dt).String() }
func (dt PlainDateTime) Type() string          { return "temporal.plain_date_time" }
func (dt PlainDateTime) Freeze()               {}
func (dt PlainDateTime) Hash() (uint32, error) { return hashOf(dt) }
func (dt PlainDateTime) Truth() starlark.Bool  { return true }

func (dt PlainDateTime) Attr(name string) (starlark.Value, error) {
	x := temporal.PlainDateTime(dt)
	if v := dateAttr(x, name); v != nil {
		return v, nil
	}
	if v := timeAttr(x, name); v != nil {
		return v, nil
	}
	return builtinAttr(dt, name, plainDateTimeMethods)
}

func (dt PlainDateTime) AttrNames() []string {
	return join(builtinAttrNames(plainDateTimeMethods), dateAttrNames, timeAttrNames)
}

func (dt PlainDateTime) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	a, b := temporal.PlainDateTime(dt), temporal.PlainDateTime(y.(PlainDateTime))
	return compareEqual(op, a.Equals(b), temporal.ComparePlainDateTime(a, b)), nil
}

// Binary implements
//
//	plain_date_time + duration = plain_date_time
//	plain_date_time - duration = plain_date_time
//	plain_date_time - plain_date_time = duration
func (dt PlainDateTime) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.PlainDateTime(dt)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			r, err := x.Add(temporal.Duration(y), calendar.Constrain)
			return result(PlainDateTime(r), err)
		case op == syntax.MINUS && side == starlark.Left:
			r, err := x.Subtract(temporal.Duration(y), calendar.Constrain)
			return result(PlainDateTime(r), err)
		}
	case PlainDateTime:
		if op == syntax.MINUS {
			r, err := x.Since(temporal.PlainDateTime(y), temporal.DifferenceOptions{})
			return result(Duration(r), err)
		}
	}
	return nil, nil
}

func (dt *PlainDateTime) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case PlainDateTime:
		*dt = v
		return nil
	case PlainDate:
		x, err := temporal.PlainDate(v).ToPlainDateTime(temporal.Midnight)
		*dt = PlainDateTime(x)
		return err
	case ZonedDateTime:
		*dt = PlainDateTime(temporal.ZonedDateTime(v).ToPlainDateTime())
		return nil
	case starlark.String:
		x, err := temporal.ParsePlainDateTime(string(v))
		*dt = PlainDateTime(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), dt.Type())
}

// PlainYearMonth

func (ym PlainYearMonth) String() string        { return temporal.PlainYearMonth(ym).String() }
func (ym PlainYearMonth) Type() string          { return "temporal.plain_year_month" }
func (ym PlainYearMonth) Freeze()               {}
func (ym PlainYearMonth) Hash() (uint32, error) { return hashOf(ym) }
func (ym PlainYearMonth) Truth() starlark.Bool  { return true }

func (ym PlainYearMonth) Attr(name string) (starlark.Value, error) {
	x := temporal.PlainYearMonth(ym)
	switch name {
	case "calendar_id":
		return starlark.String(x.CalendarID()), nil
	case "year":
		return starlark.MakeInt(x.Year()), nil
	case "month":
		return starlark.MakeInt(x.Month()), nil
	case "month_code":
		return starlark.String(x.MonthCode()), nil
	case "era":
		return optional(x.Era()), nil
	case "era_year":
		return optional(x.EraYear()), nil
	case "days_in_month":
		return starlark.MakeInt(x.DaysInMonth()), nil
	case "days_in_year":
		return starlark.MakeInt(x.DaysInYear()), nil
	case "months_in_year":
		return starlark.MakeInt(x.MonthsInYear()), nil
	case "in_leap_year":
		return starlark.Bool(x.InLeapYear()), nil
	}
	return builtinAttr(ym, name, yearMonthMethods)
}

func (ym PlainYearMonth) AttrNames() []string {
	return append(builtinAttrNames(yearMonthMethods),
		"calendar_id", "year", "month", "month_code", "era", "era_year",
		"days_in_month", "days_in_year", "months_in_year", "in_leap_year")
}

func (ym PlainYearMonth) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	a, b := temporal.PlainYearMonth(ym), temporal.PlainYearMonth(y.(PlainYearMonth))
	return compareEqual(op, a.Equals(b), temporal.ComparePlainYearMonth(a, b)), nil
}

// Binary implements
//
//	plain_year_month + duration = plain_year_month
//	plain_year_month - duration = plain_year_month
//	plain_year_month - plain_year_month = duration
func (ym PlainYearMonth) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	x := temporal.PlainYearMonth(ym)
	switch y := y.(type) {
	case Duration:
		switch {
		case op == syntax.PLUS:
			r, err := x.Add(temporal.Duration(y), calendar.Constrain)
			return result(PlainYearMonth(r), err)
		case op == syntax.MINUS && side == starlark.Left:
			r, err := x.Subtract(temporal.Duration(y), calendar.Constrain)
			return result(PlainYearMonth(r), err)
		}
	case PlainYearMonth:
		if op == syntax.MINUS {
			r, err := x.Since(temporal.PlainYearMonth(y), temporal.DifferenceOptions{})
			return result(Duration(r), err)
		}
	}
	return nil, nil
}

func (ym *PlainYearMonth) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case PlainYearMonth:
		*ym = v
		return nil
	case starlark.String:
		x, err := temporal.ParsePlainYearMonth(string(v))
		*ym = PlainYearMonth(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), ym.Type())
}

// PlainMonthDay

func (md PlainMonthDay) String() string        { return temporal.PlainMonthDay(md).String() }
func (md PlainMonthDay) Type() string          { return "temporal.plain_month_day" }
func (md PlainMonthDay) Freeze()               {}
func (md PlainMonthDay) Hash() (uint32, error) { return hashOf(md) }
func (md PlainMonthDay) Truth() starlark.Bool  { return true }

func (md PlainMonthDay) Attr(name string) (starlark.Value, error) {
	x := temporal.PlainMonthDay(md)
	switch name {
	case "calendar_id":
		return starlark.String(x.CalendarID()), nil
	case "month_code":
		return starlark.String(x.MonthCode()), nil
	case "day":
		return starlark.MakeInt(x.Day()), nil
	}
	return builtinAttr(md, name, monthDayMethods)
}

func (md PlainMonthDay) AttrNames() []string {
	return append(builtinAttrNames(monthDayMethods), "calendar_id", "month_code", "day")
}

// CompareSameType supports only equality; month-days have no order.
func (md PlainMonthDay) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	eq := temporal.PlainMonthDay(md).Equals(temporal.PlainMonthDay(y.(PlainMonthDay)))
	switch op {
	case syntax.EQL:
		return eq, nil
	case syntax.NEQ:
		return !eq, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", md.Type(), op, y.Type())
}

func (md *PlainMonthDay) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case PlainMonthDay:
		*md = v
		return nil
	case starlark.String:
		x, err := temporal.ParsePlainMonthDay(string(v))
		*md = PlainMonthDay(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), md.Type())
}

// Duration

func (d Duration) String() string        { return temporal.Duration(d).String() }
func (d Duration) Type() string          { return "temporal.duration" }
func (d Duration) Freeze()               {}
func (d Duration) Hash() (uint32, error) { return hashOf(d) }
func (d Duration) Truth() starlark.Bool  { return starlark.Bool(!temporal.Duration(d).Blank()) }

var durationAttrNames = []string{
	"years", "months", "weeks", "days", "hours", "minutes", "seconds",
	"milliseconds", "microseconds", "nanoseconds", "sign", "blank",
}

func (d Duration) Attr(name string) (starlark.Value, error) {
	x := temporal.Duration(d)
	f := x.Fields()
	switch name {
	case "years":
		return starlark.MakeInt64(f.Years), nil
	case "months":
		return starlark.MakeInt64(f.Months), nil
	case "weeks":
		return starlark.MakeInt64(f.Weeks), nil
	case "days":
		return starlark.MakeInt64(f.Days), nil
	case "hours":
		return starlark.MakeInt64(f.Hours), nil
	case "minutes":
		return starlark.MakeInt64(f.Minutes), nil
	case "seconds":
		return starlark.MakeInt64(f.Seconds), nil
	case "milliseconds":
		return starlark.MakeInt64(f.Milliseconds), nil
	case "microseconds":
		return starlark.MakeInt64(f.Microseconds), nil
	case "nanoseconds":
		return starlark.MakeInt64(f.Nanoseconds), nil
	case "sign":
		return starlark.MakeInt(x.Sign()), nil
	case "blank":
		return starlark.Bool(x.Blank()), nil
	}
	return builtinAttr(d, name, durationMethods)
}

func (d Duration) AttrNames() []string {
	return join(builtinAttrNames(durationMethods), durationAttrNames)
}

// CompareSameType compares durations component-wise for equality and by
// length otherwise. Ordering durations with calendar units fails.
func (d Duration) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	a, b := temporal.Duration(d), temporal.Duration(y.(Duration))
	switch op {
	case syntax.EQL:
		return a == b, nil
	case syntax.NEQ:
		return a != b, nil
	}
	c, err := temporal.CompareDuration(a, b, nil)
	if err != nil {
		return false, err
	}
	return threeway(op, c), nil
}

// Binary implements
//
//	duration + duration = duration
//	duration - duration = duration
//
// Sums with date and time values are handled by the other operand.
func (d Duration) Binary(op syntax.Token, y starlark.Value, side starlark.Side) (starlark.Value, error) {
	e, ok := y.(Duration)
	if !ok {
		return nil, nil
	}
	a, b := temporal.Duration(d), temporal.Duration(e)
	if side == starlark.Right {
		a, b = b, a
	}
	switch op {
	case syntax.PLUS:
		r, err := a.Add(b)
		return result(Duration(r), err)
	case syntax.MINUS:
		r, err := a.Subtract(b)
		return result(Duration(r), err)
	}
	return nil, nil
}

// Unary implements -duration and +duration.
func (d Duration) Unary(op syntax.Token) (starlark.Value, error) {
	switch op {
	case syntax.MINUS:
		return Duration(temporal.Duration(d).Negated()), nil
	case syntax.PLUS:
		return d, nil
	}
	return nil, nil
}

// Unpack accepts a duration or ISO 8601 duration text.
func (d *Duration) Unpack(v starlark.Value) error {
	switch v := v.(type) {
	case Duration:
		*d = v
		return nil
	case starlark.String:
		x, err := temporal.ParseDuration(string(v))
		*d = Duration(x)
		return err
	}
	return fmt.Errorf("got %s, want %s", v.Type(), d.Type())
}

// result returns v, or the error alone if err is non-nil.
func result(v starlark.Value, err error) (starlark.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// compareEqual answers == and != with eq and orderings with cmp.
func compareEqual(op syntax.Token, eq bool, cmp int) bool {
	switch op {
	case syntax.EQL:
		return eq
	case syntax.NEQ:
		return !eq
	}
	return threeway(op, cmp)
}

// threeway interprets a three-way comparison value cmp (-1, 0, +1)
// as a boolean comparison (e.g. x < y).
func threeway(op syntax.Token, cmp int) bool {
	switch op {
	case syntax.EQL:
		return cmp == 0
	case syntax.NEQ:
		return cmp != 0
	case syntax.LE:
		return cmp <= 0
	case syntax.LT:
		return cmp < 0
	case syntax.GE:
		return cmp >= 0
	case syntax.GT:
		return cmp > 0
	}
	panic(op)
}
