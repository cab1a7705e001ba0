// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/calendar"
)

// ModuleName defines the expected name for this Module when used in the
// starlark runtime.
const ModuleName = "temporal"

// Module temporal is a Starlark module of calendar and time values.
var Module = &starlarkstruct.Module{
	Name: ModuleName,
	Members: starlark.StringDict{
		"instant":                         starlark.NewBuiltin("instant", newInstant),
		"instant_from_epoch_milliseconds": starlark.NewBuiltin("instant_from_epoch_milliseconds", instantFromEpochMilliseconds),
		"zoned_date_time":                 starlark.NewBuiltin("zoned_date_time", newZonedDateTime),
		"plain_date":                      starlark.NewBuiltin("plain_date", newPlainDate),
		"plain_time":                      starlark.NewBuiltin("plain_time", newPlainTime),
		"plain_date_time":                 starlark.NewBuiltin("plain_date_time", newPlainDateTime),
		"plain_year_month":                starlark.NewBuiltin("plain_year_month", newPlainYearMonth),
		"plain_month_day":                 starlark.NewBuiltin("plain_month_day", newPlainMonthDay),
		"duration":                        starlark.NewBuiltin("duration", newDuration),
		"compare":                         starlark.NewBuiltin("compare", compare),
		"calendars":                       starlark.NewBuiltin("calendars", calendars),
		"now":                             now,

		"midnight": PlainTime(temporal.Midnight),
	},
}

var now = &starlarkstruct.Module{
	Name: "now",
	Members: starlark.StringDict{
		"instant":             starlark.NewBuiltin("now.instant", nowInstant),
		"time_zone_id":        starlark.NewBuiltin("now.time_zone_id", nowTimeZoneID),
		"zoned_date_time_iso": starlark.NewBuiltin("now.zoned_date_time_iso", nowZoned(func(z temporal.ZonedDateTime) starlark.Value { return ZonedDateTime(z) })),
		"plain_date_time_iso": starlark.NewBuiltin("now.plain_date_time_iso", nowZoned(func(z temporal.ZonedDateTime) starlark.Value { return PlainDateTime(z.ToPlainDateTime()) })),
		"plain_date_iso":      starlark.NewBuiltin("now.plain_date_iso", nowZoned(func(z temporal.ZonedDateTime) starlark.Value { return PlainDate(z.ToPlainDate()) })),
		"plain_time_iso":      starlark.NewBuiltin("now.plain_time_iso", nowZoned(func(z temporal.ZonedDateTime) starlark.Value { return PlainTime(z.ToPlainTime()) })),
	},
}

// LoadModule loads the temporal module.
// It is concurrency-safe and idempotent.
func LoadModule() (starlark.StringDict, error) {
	return starlark.StringDict{
		ModuleName: Module,
	}, nil
}

const contextKey = "temporal.clock"

// SetClock sets the clock consulted by the now functions called from
// thread. Threads without a clock use temporal.CurrentClock.
func SetClock(thread *starlark.Thread, c temporal.Clock) {
	thread.SetLocal(contextKey, c)
}

func clockOf(thread *starlark.Thread) temporal.Clock {
	if c, ok := thread.Local(contextKey).(temporal.Clock); ok {
		return c
	}
	return temporal.CurrentClock
}

func nowInstant(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	i, err := clockOf(thread).Now()
	return result(Instant(i), wrap(b.Name(), err))
}

func nowTimeZoneID(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return starlark.String(temporal.ClockTimeZoneID(clockOf(thread))), nil
}

func nowZoned(conv func(temporal.ZonedDateTime) starlark.Value) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var zone string
		if err := starlark.UnpackArgs(b.Name(), args, kwargs, "time_zone?", &zone); err != nil {
			return nil, err
		}
		z, err := temporal.ClockZonedDateTimeISO(clockOf(thread), zone)
		if err != nil {
			return nil, wrap(b.Name(), err)
		}
		return conv(z), nil
	}
}

// text reports whether args is a single string, the text form of a value.
func text(args starlark.Tuple) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	s, ok := args[0].(starlark.String)
	return string(s), ok
}

func newInstant(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}
	if n, ok := x.(starlark.Int); ok {
		i, err := temporal.NewInstant(n.BigInt())
		return result(Instant(i), wrap(b.Name(), err))
	}
	var i Instant
	if err := i.Unpack(x); err != nil {
		return nil, wrap(b.Name(), err)
	}
	return i, nil
}

func instantFromEpochMilliseconds(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var ms int64
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &ms); err != nil {
		return nil, err
	}
	i, err := temporal.InstantFromEpochMilliseconds(ms)
	return result(Instant(i), wrap(b.Name(), err))
}

// newZonedDateTime accepts text, epoch nanoseconds with a zone, or fields
// with a zone.
func newZonedDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if s, ok := text(args); ok {
		o, err := collect(fn, kwargs, "disambiguation", "offset_option")
		if err != nil {
			return nil, err
		}
		opts, err := o.zoned()
		if err != nil {
			return nil, wrap(fn, err)
		}
		z, err := temporal.ParseZonedDateTime(s, opts)
		return result(ZonedDateTime(z), wrap(fn, err))
	}
	if len(args) > 0 {
		var (
			ns   starlark.Int
			zone string
			cal  starlark.Value = starlark.None
		)
		if err := starlark.UnpackArgs(fn, args, kwargs, "epoch_nanoseconds", &ns, "time_zone", &zone, "calendar?", &cal); err != nil {
			return nil, err
		}
		z, err := temporal.NewZonedDateTime(ns.BigInt(), zone)
		if err != nil {
			return nil, wrap(fn, err)
		}
		if cal != starlark.None {
			c, err := toCalendar(cal)
			if err != nil {
				return nil, wrap(fn, err)
			}
			z = z.WithCalendar(c)
		}
		return ZonedDateTime(z), nil
	}
	o, err := collect(fn, kwargs, join(dateFieldNames, timeFieldNames, zonedOptionNames, []string{"time_zone", "offset", "calendar"})...)
	if err != nil {
		return nil, err
	}
	zone, err := o.str("time_zone")
	if err != nil {
		return nil, wrap(fn, err)
	}
	if zone == "" {
		return nil, fmt.Errorf("%s: missing argument for time_zone", fn)
	}
	offset, err := o.str("offset")
	if err != nil {
		return nil, wrap(fn, err)
	}
	f, err := o.dateTimeFields()
	if err != nil {
		return nil, wrap(fn, err)
	}
	cal, err := o.calendar()
	if err != nil {
		return nil, wrap(fn, err)
	}
	opts, err := o.zoned()
	if err != nil {
		return nil, wrap(fn, err)
	}
	z, err := temporal.ZonedDateTimeFromFields(f, zone, offset, cal, opts)
	return result(ZonedDateTime(z), wrap(fn, err))
}

// newPlainDate accepts text, ISO year, month and day, or calendar fields.
func newPlainDate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if s, ok := text(args); ok && len(kwargs) == 0 {
		d, err := temporal.ParsePlainDate(s)
		return result(PlainDate(d), wrap(fn, err))
	}
	if len(args) > 0 {
		var (
			year, month, day int
			cal              starlark.Value = starlark.None
		)
		if err := starlark.UnpackArgs(fn, args, kwargs, "year", &year, "month", &month, "day", &day, "calendar?", &cal); err != nil {
			return nil, err
		}
		d, err := temporal.NewPlainDate(year, month, day)
		if err != nil {
			return nil, wrap(fn, err)
		}
		if cal != starlark.None {
			c, err := toCalendar(cal)
			if err != nil {
				return nil, wrap(fn, err)
			}
			d = d.WithCalendar(c)
		}
		return PlainDate(d), nil
	}
	o, err := collect(fn, kwargs, join(dateFieldNames, []string{"calendar", "overflow"})...)
	if err != nil {
		return nil, err
	}
	f, err := o.dateFields()
	if err != nil {
		return nil, wrap(fn, err)
	}
	cal, err := o.calendar()
	if err != nil {
		return nil, wrap(fn, err)
	}
	of, err := o.overflow()
	if err != nil {
		return nil, wrap(fn, err)
	}
	d, err := temporal.PlainDateFromFields(f, cal, of)
	return result(PlainDate(d), wrap(fn, err))
}

// newPlainTime accepts text, positional components, or time fields.
func newPlainTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if s, ok := text(args); ok && len(kwargs) == 0 {
		t, err := temporal.ParsePlainTime(s)
		return result(PlainTime(t), wrap(fn, err))
	}
	if len(args) > 0 {
		var c [6]int
		if err := starlark.UnpackArgs(fn, args, kwargs, "hour?", &c[0], "minute?", &c[1], "second?", &c[2], "millisecond?", &c[3], "microsecond?", &c[4], "nanosecond?", &c[5]); err != nil {
			return nil, err
		}
		t, err := temporal.NewPlainTime(c[0], c[1], c[2], c[3], c[4], c[5])
		return result(PlainTime(t), wrap(fn, err))
	}
	o, err := collect(fn, kwargs, join(timeFieldNames, []string{"overflow"})...)
	if err != nil {
		return nil, err
	}
	f, err := o.timeFields()
	if err != nil {
		return nil, wrap(fn, err)
	}
	of, err := o.overflow()
	if err != nil {
		return nil, wrap(fn, err)
	}
	t, err := temporal.PlainTimeFromFields(f, of)
	return result(PlainTime(t), wrap(fn, err))
}

// newPlainDateTime accepts text, positional ISO components, or fields.
func newPlainDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if s, ok := text(args); ok && len(kwargs) == 0 {
		dt, err := temporal.ParsePlainDateTime(s)
		return result(PlainDateTime(dt), wrap(fn, err))
	}
	if len(args) > 0 {
		var (
			year, month, day int
			c                [6]int
			cal              starlark.Value = starlark.None
		)
		if err := starlark.UnpackArgs(fn, args, kwargs,
			"year", &year, "month", &month, "day", &day,
			"hour?", &c[0], "minute?", &c[1], "second?", &c[2],
			"millisecond?", &c[3], "microsecond?", &c[4], "nanosecond?", &c[5],
			"calendar?", &cal); err != nil {
			return nil, err
		}
		dt, err := temporal.NewPlainDateTime(year, month, day, c[0], c[1], c[2], c[3], c[4], c[5])
		if err != nil {
			return nil, wrap(fn, err)
		}
		if cal != starlark.None {
			c, err := toCalendar(cal)
			if err != nil {
				return nil, wrap(fn, err)
			}
			dt = dt.WithCalendar(c)
		}
		return PlainDateTime(dt), nil
	}
	o, err := collect(fn, kwargs, join(dateFieldNames, timeFieldNames, []string{"calendar", "overflow"})...)
	if err != nil {
		return nil, err
	}
	f, err := o.dateTimeFields()
	if err != nil {
		return nil, wrap(fn, err)
	}
	cal, err := o.calendar()
	if err != nil {
		return nil, wrap(fn, err)
	}
	of, err := o.overflow()
	if err != nil {
		return nil, wrap(fn, err)
	}
	dt, err := temporal.PlainDateTimeFromFields(f, cal, of)
	return result(PlainDateTime(dt), wrap(fn, err))
}

// newPlainYearMonth accepts text, ISO year and month, or fields.
func newPlainYearMonth(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if s, ok := text(args); ok && len(kwargs) == 0 {
		ym, err := temporal.ParsePlainYearMonth(s)
		return result(PlainYearMonth(ym), wrap(fn, err))
	}
	if len(args) > 0 {
		var year, month int
		if err := starlark.UnpackArgs(fn, args, kwargs, "year", &year, "month", &month); err != nil {
			return nil, err
		}
		ym, err := temporal.NewPlainYearMonth(year, month)
		return result(PlainYearMonth(ym), wrap(fn, err))
	}
	f, cal, of, err := calendarFields(fn, kwargs)
	if err != nil {
		return nil, err
	}
	ym, err := temporal.PlainYearMonthFromFields(f, cal, of)
	return result(PlainYearMonth(ym), wrap(fn, err))
}

// newPlainMonthDay accepts text, ISO month and day, or fields.
func newPlainMonthDay(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if s, ok := text(args); ok && len(kwargs) == 0 {
		md, err := temporal.ParsePlainMonthDay(s)
		return result(PlainMonthDay(md), wrap(fn, err))
	}
	if len(args) > 0 {
		var month, day int
		if err := starlark.UnpackArgs(fn, args, kwargs, "month", &month, "day", &day); err != nil {
			return nil, err
		}
		md, err := temporal.NewPlainMonthDay(month, day)
		return result(PlainMonthDay(md), wrap(fn, err))
	}
	f, cal, of, err := calendarFields(fn, kwargs)
	if err != nil {
		return nil, err
	}
	md, err := temporal.PlainMonthDayFromFields(f, cal, of)
	return result(PlainMonthDay(md), wrap(fn, err))
}

func calendarFields(fn string, kwargs []starlark.Tuple) (calendar.Fields, calendar.Calendar, temporal.Overflow, error) {
	o, err := collect(fn, kwargs, join(dateFieldNames, []string{"calendar", "overflow"})...)
	if err != nil {
		return calendar.Fields{}, nil, 0, err
	}
	f, err := o.dateFields()
	if err != nil {
		return f, nil, 0, wrap(fn, err)
	}
	cal, err := o.calendar()
	if err != nil {
		return f, nil, 0, wrap(fn, err)
	}
	of, err := o.overflow()
	return f, cal, of, wrap(fn, err)
}

// newDuration accepts ISO 8601 text or unit keywords.
func newDuration(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	if len(args) > 0 {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		return d, nil
	}
	o, err := collect(fn, kwargs, durationFieldNames...)
	if err != nil {
		return nil, err
	}
	f, err := o.durationFields()
	if err != nil {
		return nil, wrap(fn, err)
	}
	d, err := temporal.NewDuration(f)
	return result(Duration(d), wrap(fn, err))
}

// compare returns -1, 0 or +1 for two values of the same type. Durations
// with calendar units need relative_to.
func compare(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	fn := b.Name()
	o, err := collect(fn, kwargs, "relative_to")
	if err != nil {
		return nil, err
	}
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(fn, args, nil, 2, &x, &y); err != nil {
		return nil, err
	}
	if x.Type() != y.Type() {
		return nil, fmt.Errorf("%s: cannot compare %s with %s", fn, x.Type(), y.Type())
	}
	var c int
	switch x := x.(type) {
	case Instant:
		c = temporal.CompareInstant(temporal.Instant(x), temporal.Instant(y.(Instant)))
	case ZonedDateTime:
		c = temporal.CompareZonedDateTime(temporal.ZonedDateTime(x), temporal.ZonedDateTime(y.(ZonedDateTime)))
	case PlainDate:
		c = temporal.ComparePlainDate(temporal.PlainDate(x), temporal.PlainDate(y.(PlainDate)))
	case PlainTime:
		c = temporal.ComparePlainTime(temporal.PlainTime(x), temporal.PlainTime(y.(PlainTime)))
	case PlainDateTime:
		c = temporal.ComparePlainDateTime(temporal.PlainDateTime(x), temporal.PlainDateTime(y.(PlainDateTime)))
	case PlainYearMonth:
		c = temporal.ComparePlainYearMonth(temporal.PlainYearMonth(x), temporal.PlainYearMonth(y.(PlainYearMonth)))
	case Duration:
		rel, err := o.relativeTo()
		if err != nil {
			return nil, wrap(fn, err)
		}
		if c, err = temporal.CompareDuration(temporal.Duration(x), temporal.Duration(y.(Duration)), rel); err != nil {
			return nil, wrap(fn, err)
		}
	default:
		return nil, fmt.Errorf("%s: %s values are not ordered", fn, x.Type())
	}
	return starlark.MakeInt(c), nil
}

func calendars(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := noArgs(b.Name(), args, kwargs); err != nil {
		return nil, err
	}
	ids := calendar.IDs()
	elems := make([]starlark.Value, len(ids))
	for i, id := range ids {
		elems[i] = starlark.String(id)
	}
	return starlark.NewList(elems), nil
}
