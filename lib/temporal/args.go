// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"fmt"
	"sort"
	"strings"

	"go.starlark.net/starlark"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/tz"
)

// options holds the keyword arguments of a call, keyed by name.
type options map[string]starlark.Value

// collect gathers keyword arguments, rejecting names outside allowed.
func collect(fn string, kwargs []starlark.Tuple, allowed ...string) (options, error) {
	o := make(options, len(kwargs))
	for _, kv := range kwargs {
		name := string(kv[0].(starlark.String))
		if !contains(allowed, name) {
			return nil, fmt.Errorf("%s: unexpected keyword argument %q", fn, name)
		}
		o[name] = kv[1]
	}
	return o, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// join concatenates name lists.
func join(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}

var (
	dateFieldNames     = []string{"year", "month", "month_code", "day", "era", "era_year"}
	timeFieldNames     = []string{"hour", "minute", "second", "millisecond", "microsecond", "nanosecond"}
	durationFieldNames = []string{"years", "months", "weeks", "days", "hours", "minutes", "seconds", "milliseconds", "microseconds", "nanoseconds"}
	differenceNames    = []string{"largest_unit", "smallest_unit", "rounding_increment", "rounding_mode"}
	roundNames         = []string{"smallest_unit", "rounding_increment", "rounding_mode"}
	formatNames        = []string{"calendar_name", "time_zone_name", "offset", "fractional_second_digits", "smallest_unit", "rounding_mode", "time_zone"}
	zonedOptionNames   = []string{"overflow", "disambiguation", "offset_option"}
)

func (o options) has(name string) bool {
	v, ok := o[name]
	return ok && v != starlark.None
}

func (o options) str(name string) (string, error) {
	v, ok := o[name]
	if !ok || v == starlark.None {
		return "", nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("%s: got %s, want string", name, v.Type())
	}
	return s, nil
}

func (o options) int(name string) (int, error) {
	v, ok := o[name]
	if !ok || v == starlark.None {
		return 0, nil
	}
	n, err := starlark.AsInt32(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", name, err)
	}
	return n, nil
}

func (o options) int64(name string) (int64, error) {
	v, ok := o[name]
	if !ok || v == starlark.None {
		return 0, nil
	}
	var n int64
	if err := starlark.AsInt(v, &n); err != nil {
		return 0, fmt.Errorf("%s: %v", name, err)
	}
	return n, nil
}

func (o options) optInt(name string) (calendar.Optional[int], error) {
	if !o.has(name) {
		return calendar.None[int](), nil
	}
	n, err := o.int(name)
	return calendar.Some(n), err
}

func (o options) optString(name string) (calendar.Optional[string], error) {
	if !o.has(name) {
		return calendar.None[string](), nil
	}
	s, err := o.str(name)
	return calendar.Some(s), err
}

func (o options) unit(name string) (temporal.Unit, error) {
	s, err := o.str(name)
	if err != nil || s == "" {
		return temporal.Auto, err
	}
	return temporal.ParseUnit(s)
}

func (o options) roundingMode() (temporal.RoundingMode, error) {
	s, err := o.str("rounding_mode")
	if err != nil || s == "" {
		return 0, err
	}
	return temporal.ParseRoundingMode(s)
}

func (o options) overflow() (temporal.Overflow, error) {
	s, err := o.str("overflow")
	if err != nil {
		return 0, err
	}
	return calendar.ParseOverflow(s)
}

func (o options) disambiguation() (temporal.Disambiguation, error) {
	s, err := o.str("disambiguation")
	if err != nil {
		return 0, err
	}
	return tz.ParseDisambiguation(s)
}

func (o options) calendar() (calendar.Calendar, error) {
	v, ok := o["calendar"]
	if !ok || v == starlark.None {
		return nil, nil
	}
	return toCalendar(v)
}

func toCalendar(v starlark.Value) (calendar.Calendar, error) {
	s, ok := starlark.AsString(v)
	if !ok {
		return nil, fmt.Errorf("calendar: got %s, want string", v.Type())
	}
	return calendar.Lookup(s)
}

func (o options) dateFields() (f calendar.Fields, err error) {
	if f.Year, err = o.optInt("year"); err != nil {
		return
	}
	if f.Month, err = o.optInt("month"); err != nil {
		return
	}
	if f.MonthCode, err = o.optString("month_code"); err != nil {
		return
	}
	if f.Day, err = o.optInt("day"); err != nil {
		return
	}
	if f.Era, err = o.optString("era"); err != nil {
		return
	}
	f.EraYear, err = o.optInt("era_year")
	return
}

func (o options) timeFields() (f temporal.TimeFields, err error) {
	for i, p := range []*calendar.Optional[int]{&f.Hour, &f.Minute, &f.Second, &f.Millisecond, &f.Microsecond, &f.Nanosecond} {
		if *p, err = o.optInt(timeFieldNames[i]); err != nil {
			return
		}
	}
	return
}

func (o options) dateTimeFields() (temporal.DateTimeFields, error) {
	d, err := o.dateFields()
	if err != nil {
		return temporal.DateTimeFields{}, err
	}
	t, err := o.timeFields()
	return temporal.DateTimeFields{Fields: d, TimeFields: t}, err
}

func (o options) durationFields() (f temporal.DurationFields, err error) {
	for i, p := range []*int64{&f.Years, &f.Months, &f.Weeks, &f.Days, &f.Hours, &f.Minutes, &f.Seconds, &f.Milliseconds, &f.Microseconds, &f.Nanoseconds} {
		if *p, err = o.int64(durationFieldNames[i]); err != nil {
			return
		}
	}
	return
}

func (o options) partialDuration() (p temporal.PartialDuration, err error) {
	for i, q := range []*calendar.Optional[int64]{&p.Years, &p.Months, &p.Weeks, &p.Days, &p.Hours, &p.Minutes, &p.Seconds, &p.Milliseconds, &p.Microseconds, &p.Nanoseconds} {
		name := durationFieldNames[i]
		if !o.has(name) {
			continue
		}
		n, err := o.int64(name)
		if err != nil {
			return p, err
		}
		*q = calendar.Some(n)
	}
	return
}

func (o options) difference() (opts temporal.DifferenceOptions, err error) {
	if opts.LargestUnit, err = o.unit("largest_unit"); err != nil {
		return
	}
	if opts.SmallestUnit, err = o.unit("smallest_unit"); err != nil {
		return
	}
	if opts.RoundingIncrement, err = o.int64("rounding_increment"); err != nil {
		return
	}
	opts.RoundingMode, err = o.roundingMode()
	return
}

func (o options) round() (opts temporal.RoundOptions, err error) {
	if opts.SmallestUnit, err = o.unit("smallest_unit"); err != nil {
		return
	}
	if opts.RoundingIncrement, err = o.int64("rounding_increment"); err != nil {
		return
	}
	opts.RoundingMode, err = o.roundingMode()
	return
}

func (o options) zoned() (opts temporal.ZonedOptions, err error) {
	if opts.Overflow, err = o.overflow(); err != nil {
		return
	}
	if opts.Disambiguation, err = o.disambiguation(); err != nil {
		return
	}
	s, err := o.str("offset_option")
	if err != nil {
		return
	}
	opts.Offset, err = temporal.ParseOffsetOption(s)
	return
}

func (o options) format() (opts temporal.ToStringOptions, err error) {
	var s string
	if s, err = o.str("calendar_name"); err != nil {
		return
	}
	if opts.CalendarName, err = temporal.ParseCalendarName(s); err != nil {
		return
	}
	if s, err = o.str("time_zone_name"); err != nil {
		return
	}
	if opts.TimeZoneName, err = temporal.ParseTimeZoneName(s); err != nil {
		return
	}
	if s, err = o.str("offset"); err != nil {
		return
	}
	if opts.Offset, err = temporal.ParseOffsetDisplay(s); err != nil {
		return
	}
	if v, ok := o["fractional_second_digits"]; ok && v != starlark.None {
		if s, ok := starlark.AsString(v); ok {
			if s != "auto" {
				return opts, fmt.Errorf("fractional_second_digits: got %q, want \"auto\" or int", s)
			}
		} else {
			n, err := starlark.AsInt32(v)
			if err != nil {
				return opts, fmt.Errorf("fractional_second_digits: %v", err)
			}
			if n < 0 || n > 9 {
				return opts, fmt.Errorf("fractional_second_digits: %d out of range", n)
			}
			opts.FractionalSecondDigits = temporal.Digits(n)
		}
	}
	if opts.SmallestUnit, err = o.unit("smallest_unit"); err != nil {
		return
	}
	if opts.RoundingMode, err = o.roundingMode(); err != nil {
		return
	}
	opts.TimeZone, err = o.str("time_zone")
	return
}

// relativeTo converts a relative_to argument: a plain date, a zoned
// date-time, or text for either.
func (o options) relativeTo() (temporal.RelativeTo, error) {
	v, ok := o["relative_to"]
	if !ok || v == starlark.None {
		return nil, nil
	}
	switch v := v.(type) {
	case PlainDate:
		return temporal.PlainDate(v), nil
	case ZonedDateTime:
		return temporal.ZonedDateTime(v), nil
	case PlainDateTime:
		return temporal.PlainDateTime(v).ToPlainDate(), nil
	case starlark.String:
		s := string(v)
		if strings.Contains(s, "[") {
			if z, err := temporal.ParseZonedDateTime(s, temporal.ZonedOptions{}); err == nil {
				return z, nil
			}
		}
		d, err := temporal.ParsePlainDate(s)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("relative_to: got %s, want plain_date, zoned_date_time or string", v.Type())
}

// optional converts an absent calendar field to None.
func optional[T int | string](o calendar.Optional[T]) starlark.Value {
	v, ok := o.Get()
	if !ok {
		return starlark.None
	}
	switch v := any(v).(type) {
	case int:
		return starlark.MakeInt(v)
	case string:
		return starlark.String(v)
	}
	panic("unreachable")
}

// dateFieldsDict renders calendar fields as a dict of the present fields.
func dateFieldsDict(f calendar.Fields) *starlark.Dict {
	d := starlark.NewDict(6)
	set := func(name string, v starlark.Value) {
		if v != starlark.None {
			_ = d.SetKey(starlark.String(name), v)
		}
	}
	set("year", optional(f.Year))
	set("month", optional(f.Month))
	set("month_code", optional(f.MonthCode))
	set("day", optional(f.Day))
	set("era", optional(f.Era))
	set("era_year", optional(f.EraYear))
	return d
}

// noArgs rejects any argument.
func noArgs(fn string, args starlark.Tuple, kwargs []starlark.Tuple) error {
	return starlark.UnpackPositionalArgs(fn, args, kwargs, 0)
}

// wrap prefixes err with the name of the failing function.
func wrap(fn string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fn, err)
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
