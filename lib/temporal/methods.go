// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"go.starlark.net/starlark"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/tz"
)

type builtinMethod func(fnname string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv starlark.Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	// Allocate a closure over 'method'.
	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), b.Receiver(), args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

// unpacker is a pointer to a value type that unpacks from text.
type unpacker[T any] interface {
	*T
	starlark.Unpacker
}

// differenceMethod builds an until or since method.
func differenceMethod[T starlark.Value, P unpacker[T]](diff func(x, y T, opts temporal.DifferenceOptions) (temporal.Duration, error)) builtinMethod {
	return func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := collect(fn, kwargs, differenceNames...)
		if err != nil {
			return nil, err
		}
		var other T
		if err := starlark.UnpackPositionalArgs(fn, args, nil, 1, P(&other)); err != nil {
			return nil, err
		}
		opts, err := o.difference()
		if err != nil {
			return nil, wrap(fn, err)
		}
		d, err := diff(recv.(T), other, opts)
		if err != nil {
			return nil, wrap(fn, err)
		}
		return Duration(d), nil
	}
}

// equalsMethod builds an equals method.
func equalsMethod[T starlark.Value, P unpacker[T]](eq func(x, y T) bool) builtinMethod {
	return func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var other T
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, P(&other)); err != nil {
			return nil, err
		}
		return starlark.Bool(eq(recv.(T), other)), nil
	}
}

// roundMethod builds a round method taking a unit name or round options.
func roundMethod[T starlark.Value](round func(x T, opts temporal.RoundOptions) (starlark.Value, error)) builtinMethod {
	return func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := collect(fn, kwargs, roundNames...)
		if err != nil {
			return nil, err
		}
		var unit starlark.Value
		if err := starlark.UnpackPositionalArgs(fn, args, nil, 0, &unit); err != nil {
			return nil, err
		}
		if unit != nil {
			o["smallest_unit"] = unit
		}
		opts, err := o.round()
		if err != nil {
			return nil, wrap(fn, err)
		}
		v, err := round(recv.(T), opts)
		return v, wrap(fn, err)
	}
}

// formatMethod builds a to_string method accepting the named options.
func formatMethod[T starlark.Value](format func(x T, opts temporal.ToStringOptions) (string, error), allowed ...string) builtinMethod {
	return func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(fn, args, nil, 0); err != nil {
			return nil, err
		}
		o, err := collect(fn, kwargs, allowed...)
		if err != nil {
			return nil, err
		}
		opts, err := o.format()
		if err != nil {
			return nil, wrap(fn, err)
		}
		s, err := format(recv.(T), opts)
		if err != nil {
			return nil, wrap(fn, err)
		}
		return starlark.String(s), nil
	}
}

// arithmetic unpacks the duration operand and overflow option of add and
// subtract.
func arithmetic(fn string, args starlark.Tuple, kwargs []starlark.Tuple) (temporal.Duration, temporal.Overflow, error) {
	o, err := collect(fn, kwargs, "overflow")
	if err != nil {
		return temporal.Duration{}, 0, err
	}
	var d Duration
	if err := starlark.UnpackPositionalArgs(fn, args, nil, 1, &d); err != nil {
		return temporal.Duration{}, 0, err
	}
	of, err := o.overflow()
	return temporal.Duration(d), of, wrap(fn, err)
}

// fieldsArgs collects the keyword fields of a with_fields call.
func fieldsArgs(fn string, args starlark.Tuple, kwargs []starlark.Tuple, names ...string) (options, error) {
	if err := starlark.UnpackPositionalArgs(fn, args, nil, 0); err != nil {
		return nil, err
	}
	return collect(fn, kwargs, names...)
}

var instantMethods = map[string]builtinMethod{
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		r, err := temporal.Instant(recv.(Instant)).Add(temporal.Duration(d))
		return result(Instant(r), wrap(fn, err))
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		r, err := temporal.Instant(recv.(Instant)).Subtract(temporal.Duration(d))
		return result(Instant(r), wrap(fn, err))
	},
	"until": differenceMethod(func(x, y Instant, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.Instant(x).Until(temporal.Instant(y), o)
	}),
	"since": differenceMethod(func(x, y Instant, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.Instant(x).Since(temporal.Instant(y), o)
	}),
	"round": roundMethod(func(x Instant, o temporal.RoundOptions) (starlark.Value, error) {
		r, err := temporal.Instant(x).Round(o)
		return result(Instant(r), err)
	}),
	"equals": equalsMethod(func(x, y Instant) bool { return temporal.Instant(x).Equals(temporal.Instant(y)) }),
	"to_zoned_date_time_iso": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var zone string
		if err := starlark.UnpackArgs(fn, args, kwargs, "time_zone", &zone); err != nil {
			return nil, err
		}
		z, err := temporal.Instant(recv.(Instant)).ToZonedDateTimeISO(zone)
		return result(ZonedDateTime(z), wrap(fn, err))
	},
	"to_zoned_date_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var zone, cal string
		if err := starlark.UnpackArgs(fn, args, kwargs, "time_zone", &zone, "calendar", &cal); err != nil {
			return nil, err
		}
		c, err := toCalendar(starlark.String(cal))
		if err != nil {
			return nil, wrap(fn, err)
		}
		z, err := temporal.Instant(recv.(Instant)).ToZonedDateTime(zone, c)
		return result(ZonedDateTime(z), wrap(fn, err))
	},
	"to_string": formatMethod(func(x Instant, o temporal.ToStringOptions) (string, error) {
		return temporal.Instant(x).Format(o)
	}, "fractional_second_digits", "smallest_unit", "rounding_mode", "time_zone"),
}

var zonedMethods = map[string]builtinMethod{
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.ZonedDateTime(recv.(ZonedDateTime)).Add(d, of)
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.ZonedDateTime(recv.(ZonedDateTime)).Subtract(d, of)
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, join(dateFieldNames, timeFieldNames, zonedOptionNames, []string{"offset"})...)
		if err != nil {
			return nil, err
		}
		z := temporal.ZonedDateTime(recv.(ZonedDateTime))
		f, err := o.dateTimeFields()
		if err != nil {
			return nil, wrap(fn, err)
		}
		opts, err := o.zoned()
		if err != nil {
			return nil, wrap(fn, err)
		}
		offset, err := o.str("offset")
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := z.WithOffset(f, offset, opts)
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"with_plain_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		t := PlainTime(temporal.Midnight)
		if err := starlark.UnpackArgs(fn, args, kwargs, "plain_time?", &t); err != nil {
			return nil, err
		}
		r, err := temporal.ZonedDateTime(recv.(ZonedDateTime)).WithPlainTime(temporal.PlainTime(t))
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"with_time_zone": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var zone string
		if err := starlark.UnpackArgs(fn, args, kwargs, "time_zone", &zone); err != nil {
			return nil, err
		}
		r, err := temporal.ZonedDateTime(recv.(ZonedDateTime)).WithTimeZone(zone)
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"with_calendar": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var cal string
		if err := starlark.UnpackArgs(fn, args, kwargs, "calendar", &cal); err != nil {
			return nil, err
		}
		c, err := toCalendar(starlark.String(cal))
		if err != nil {
			return nil, wrap(fn, err)
		}
		return ZonedDateTime(temporal.ZonedDateTime(recv.(ZonedDateTime)).WithCalendar(c)), nil
	},
	"until": differenceMethod(func(x, y ZonedDateTime, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.ZonedDateTime(x).Until(temporal.ZonedDateTime(y), o)
	}),
	"since": differenceMethod(func(x, y ZonedDateTime, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.ZonedDateTime(x).Since(temporal.ZonedDateTime(y), o)
	}),
	"round": roundMethod(func(x ZonedDateTime, o temporal.RoundOptions) (starlark.Value, error) {
		r, err := temporal.ZonedDateTime(x).Round(o)
		return result(ZonedDateTime(r), err)
	}),
	"start_of_day": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		r, err := temporal.ZonedDateTime(recv.(ZonedDateTime)).StartOfDay()
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"get_time_zone_transition": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var direction string
		if err := starlark.UnpackArgs(fn, args, kwargs, "direction", &direction); err != nil {
			return nil, err
		}
		dir, err := tz.ParseDirection(direction)
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, ok, err := temporal.ZonedDateTime(recv.(ZonedDateTime)).TimeZoneTransition(dir)
		if err != nil {
			return nil, wrap(fn, err)
		}
		if !ok {
			return starlark.None, nil
		}
		return ZonedDateTime(r), nil
	},
	"equals": equalsMethod(func(x, y ZonedDateTime) bool {
		return temporal.ZonedDateTime(x).Equals(temporal.ZonedDateTime(y))
	}),
	"to_instant": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return Instant(temporal.ZonedDateTime(recv.(ZonedDateTime)).ToInstant()), nil
	},
	"to_plain_date_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return PlainDateTime(temporal.ZonedDateTime(recv.(ZonedDateTime)).ToPlainDateTime()), nil
	},
	"to_plain_date": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return PlainDate(temporal.ZonedDateTime(recv.(ZonedDateTime)).ToPlainDate()), nil
	},
	"to_plain_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return PlainTime(temporal.ZonedDateTime(recv.(ZonedDateTime)).ToPlainTime()), nil
	},
	"to_string": formatMethod(func(x ZonedDateTime, o temporal.ToStringOptions) (string, error) {
		return temporal.ZonedDateTime(x).Format(o)
	}, "calendar_name", "time_zone_name", "offset", "fractional_second_digits", "smallest_unit", "rounding_mode"),
}

var plainDateMethods = map[string]builtinMethod{
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.PlainDate(recv.(PlainDate)).Add(d, of)
		return result(PlainDate(r), wrap(fn, err))
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.PlainDate(recv.(PlainDate)).Subtract(d, of)
		return result(PlainDate(r), wrap(fn, err))
	},
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, join(dateFieldNames, []string{"overflow"})...)
		if err != nil {
			return nil, err
		}
		f, err := o.dateFields()
		if err != nil {
			return nil, wrap(fn, err)
		}
		of, err := o.overflow()
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.PlainDate(recv.(PlainDate)).With(f, of)
		return result(PlainDate(r), wrap(fn, err))
	},
	"with_calendar": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var cal string
		if err := starlark.UnpackArgs(fn, args, kwargs, "calendar", &cal); err != nil {
			return nil, err
		}
		c, err := toCalendar(starlark.String(cal))
		if err != nil {
			return nil, wrap(fn, err)
		}
		return PlainDate(temporal.PlainDate(recv.(PlainDate)).WithCalendar(c)), nil
	},
	"fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return dateFieldsDict(temporal.PlainDate(recv.(PlainDate)).Fields()), nil
	},
	"until": differenceMethod(func(x, y PlainDate, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainDate(x).Until(temporal.PlainDate(y), o)
	}),
	"since": differenceMethod(func(x, y PlainDate, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainDate(x).Since(temporal.PlainDate(y), o)
	}),
	"equals": equalsMethod(func(x, y PlainDate) bool { return temporal.PlainDate(x).Equals(temporal.PlainDate(y)) }),
	"to_plain_date_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		t := PlainTime(temporal.Midnight)
		if err := starlark.UnpackArgs(fn, args, kwargs, "plain_time?", &t); err != nil {
			return nil, err
		}
		r, err := temporal.PlainDate(recv.(PlainDate)).ToPlainDateTime(temporal.PlainTime(t))
		return result(PlainDateTime(r), wrap(fn, err))
	},
	"to_zoned_date_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var zone string
		var t starlark.Value = starlark.None
		if err := starlark.UnpackArgs(fn, args, kwargs, "time_zone", &zone, "plain_time?", &t); err != nil {
			return nil, err
		}
		d := temporal.PlainDate(recv.(PlainDate))
		if t == starlark.None {
			r, err := d.ToZonedDateTime(zone)
			return result(ZonedDateTime(r), wrap(fn, err))
		}
		var pt PlainTime
		if err := pt.Unpack(t); err != nil {
			return nil, wrap(fn, err)
		}
		dt, err := d.ToPlainDateTime(temporal.PlainTime(pt))
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := dt.ToZonedDateTime(zone, tz.Compatible)
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"to_plain_year_month": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		r, err := temporal.PlainDate(recv.(PlainDate)).ToPlainYearMonth()
		return result(PlainYearMonth(r), wrap(fn, err))
	},
	"to_plain_month_day": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		r, err := temporal.PlainDate(recv.(PlainDate)).ToPlainMonthDay()
		return result(PlainMonthDay(r), wrap(fn, err))
	},
	"to_string": formatMethod(func(x PlainDate, o temporal.ToStringOptions) (string, error) {
		return temporal.PlainDate(x).Format(o.CalendarName), nil
	}, "calendar_name"),
}

var plainTimeMethods = map[string]builtinMethod{
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		return PlainTime(temporal.PlainTime(recv.(PlainTime)).Add(temporal.Duration(d))), nil
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		return PlainTime(temporal.PlainTime(recv.(PlainTime)).Subtract(temporal.Duration(d))), nil
	},
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, join(timeFieldNames, []string{"overflow"})...)
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
		r, err := temporal.PlainTime(recv.(PlainTime)).With(f, of)
		return result(PlainTime(r), wrap(fn, err))
	},
	"until": differenceMethod(func(x, y PlainTime, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainTime(x).Until(temporal.PlainTime(y), o)
	}),
	"since": differenceMethod(func(x, y PlainTime, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainTime(x).Since(temporal.PlainTime(y), o)
	}),
	"round": roundMethod(func(x PlainTime, o temporal.RoundOptions) (starlark.Value, error) {
		r, err := temporal.PlainTime(x).Round(o)
		return result(PlainTime(r), err)
	}),
	"equals": equalsMethod(func(x, y PlainTime) bool { return temporal.PlainTime(x).Equals(temporal.PlainTime(y)) }),
	"to_plain_date_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d PlainDate
		if err := starlark.UnpackArgs(fn, args, kwargs, "plain_date", &d); err != nil {
			return nil, err
		}
		r, err := temporal.PlainTime(recv.(PlainTime)).ToPlainDateTime(temporal.PlainDate(d))
		return result(PlainDateTime(r), wrap(fn, err))
	},
	"to_string": formatMethod(func(x PlainTime, o temporal.ToStringOptions) (string, error) {
		return temporal.PlainTime(x).Format(o)
	}, "fractional_second_digits", "smallest_unit", "rounding_mode"),
}

var plainDateTimeMethods = map[string]builtinMethod{
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.PlainDateTime(recv.(PlainDateTime)).Add(d, of)
		return result(PlainDateTime(r), wrap(fn, err))
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.PlainDateTime(recv.(PlainDateTime)).Subtract(d, of)
		return result(PlainDateTime(r), wrap(fn, err))
	},
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, join(dateFieldNames, timeFieldNames, []string{"overflow"})...)
		if err != nil {
			return nil, err
		}
		f, err := o.dateTimeFields()
		if err != nil {
			return nil, wrap(fn, err)
		}
		of, err := o.overflow()
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.PlainDateTime(recv.(PlainDateTime)).With(f, of)
		return result(PlainDateTime(r), wrap(fn, err))
	},
	"with_plain_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		t := PlainTime(temporal.Midnight)
		if err := starlark.UnpackArgs(fn, args, kwargs, "plain_time?", &t); err != nil {
			return nil, err
		}
		r, err := temporal.PlainDateTime(recv.(PlainDateTime)).WithPlainTime(temporal.PlainTime(t))
		return result(PlainDateTime(r), wrap(fn, err))
	},
	"with_calendar": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var cal string
		if err := starlark.UnpackArgs(fn, args, kwargs, "calendar", &cal); err != nil {
			return nil, err
		}
		c, err := toCalendar(starlark.String(cal))
		if err != nil {
			return nil, wrap(fn, err)
		}
		return PlainDateTime(temporal.PlainDateTime(recv.(PlainDateTime)).WithCalendar(c)), nil
	},
	"until": differenceMethod(func(x, y PlainDateTime, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainDateTime(x).Until(temporal.PlainDateTime(y), o)
	}),
	"since": differenceMethod(func(x, y PlainDateTime, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainDateTime(x).Since(temporal.PlainDateTime(y), o)
	}),
	"round": roundMethod(func(x PlainDateTime, o temporal.RoundOptions) (starlark.Value, error) {
		r, err := temporal.PlainDateTime(x).Round(o)
		return result(PlainDateTime(r), err)
	}),
	"equals": equalsMethod(func(x, y PlainDateTime) bool {
		return temporal.PlainDateTime(x).Equals(temporal.PlainDateTime(y))
	}),
	"to_plain_date": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return PlainDate(temporal.PlainDateTime(recv.(PlainDateTime)).ToPlainDate()), nil
	},
	"to_plain_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return PlainTime(temporal.PlainDateTime(recv.(PlainDateTime)).ToPlainTime()), nil
	},
	"to_zoned_date_time": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var zone, disambiguation string
		if err := starlark.UnpackArgs(fn, args, kwargs, "time_zone", &zone, "disambiguation?", &disambiguation); err != nil {
			return nil, err
		}
		d, err := tz.ParseDisambiguation(disambiguation)
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.PlainDateTime(recv.(PlainDateTime)).ToZonedDateTime(zone, d)
		return result(ZonedDateTime(r), wrap(fn, err))
	},
	"to_string": formatMethod(func(x PlainDateTime, o temporal.ToStringOptions) (string, error) {
		return temporal.PlainDateTime(x).Format(o)
	}, "calendar_name", "fractional_second_digits", "smallest_unit", "rounding_mode"),
}

var yearMonthMethods = map[string]builtinMethod{
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.PlainYearMonth(recv.(PlainYearMonth)).Add(d, of)
		return result(PlainYearMonth(r), wrap(fn, err))
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		d, of, err := arithmetic(fn, args, kwargs)
		if err != nil {
			return nil, err
		}
		r, err := temporal.PlainYearMonth(recv.(PlainYearMonth)).Subtract(d, of)
		return result(PlainYearMonth(r), wrap(fn, err))
	},
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, join(dateFieldNames, []string{"overflow"})...)
		if err != nil {
			return nil, err
		}
		f, err := o.dateFields()
		if err != nil {
			return nil, wrap(fn, err)
		}
		of, err := o.overflow()
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.PlainYearMonth(recv.(PlainYearMonth)).With(f, of)
		return result(PlainYearMonth(r), wrap(fn, err))
	},
	"until": differenceMethod(func(x, y PlainYearMonth, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainYearMonth(x).Until(temporal.PlainYearMonth(y), o)
	}),
	"since": differenceMethod(func(x, y PlainYearMonth, o temporal.DifferenceOptions) (temporal.Duration, error) {
		return temporal.PlainYearMonth(x).Since(temporal.PlainYearMonth(y), o)
	}),
	"equals": equalsMethod(func(x, y PlainYearMonth) bool {
		return temporal.PlainYearMonth(x).Equals(temporal.PlainYearMonth(y))
	}),
	"to_plain_date": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var day int
		if err := starlark.UnpackArgs(fn, args, kwargs, "day", &day); err != nil {
			return nil, err
		}
		r, err := temporal.PlainYearMonth(recv.(PlainYearMonth)).ToPlainDate(day)
		return result(PlainDate(r), wrap(fn, err))
	},
	"to_string": formatMethod(func(x PlainYearMonth, o temporal.ToStringOptions) (string, error) {
		return temporal.PlainYearMonth(x).Format(o.CalendarName), nil
	}, "calendar_name"),
}

var monthDayMethods = map[string]builtinMethod{
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, join(dateFieldNames, []string{"overflow"})...)
		if err != nil {
			return nil, err
		}
		f, err := o.dateFields()
		if err != nil {
			return nil, wrap(fn, err)
		}
		of, err := o.overflow()
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.PlainMonthDay(recv.(PlainMonthDay)).With(f, of)
		return result(PlainMonthDay(r), wrap(fn, err))
	},
	"equals": equalsMethod(func(x, y PlainMonthDay) bool {
		return temporal.PlainMonthDay(x).Equals(temporal.PlainMonthDay(y))
	}),
	"to_plain_date": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var year int
		if err := starlark.UnpackArgs(fn, args, kwargs, "year", &year); err != nil {
			return nil, err
		}
		r, err := temporal.PlainMonthDay(recv.(PlainMonthDay)).ToPlainDate(year)
		return result(PlainDate(r), wrap(fn, err))
	},
	"to_string": formatMethod(func(x PlainMonthDay, o temporal.ToStringOptions) (string, error) {
		return temporal.PlainMonthDay(x).Format(o.CalendarName), nil
	}, "calendar_name"),
}

var durationMethods = map[string]builtinMethod{
	"negated": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return Duration(temporal.Duration(recv.(Duration)).Negated()), nil
	},
	"abs": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := noArgs(fn, args, kwargs); err != nil {
			return nil, err
		}
		return Duration(temporal.Duration(recv.(Duration)).Abs()), nil
	},
	"add": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		r, err := temporal.Duration(recv.(Duration)).Add(temporal.Duration(d))
		return result(Duration(r), wrap(fn, err))
	},
	"subtract": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d Duration
		if err := starlark.UnpackPositionalArgs(fn, args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		r, err := temporal.Duration(recv.(Duration)).Subtract(temporal.Duration(d))
		return result(Duration(r), wrap(fn, err))
	},
	"with_fields": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := fieldsArgs(fn, args, kwargs, durationFieldNames...)
		if err != nil {
			return nil, err
		}
		p, err := o.partialDuration()
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.Duration(recv.(Duration)).With(p)
		return result(Duration(r), wrap(fn, err))
	},
	"round": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := collect(fn, kwargs, join(differenceNames, []string{"relative_to"})...)
		if err != nil {
			return nil, err
		}
		var unit starlark.Value
		if err := starlark.UnpackPositionalArgs(fn, args, nil, 0, &unit); err != nil {
			return nil, err
		}
		if unit != nil {
			o["smallest_unit"] = unit
		}
		d, err := o.difference()
		if err != nil {
			return nil, wrap(fn, err)
		}
		rel, err := o.relativeTo()
		if err != nil {
			return nil, wrap(fn, err)
		}
		r, err := temporal.Duration(recv.(Duration)).Round(temporal.DurationRoundOptions{
			LargestUnit:       d.LargestUnit,
			SmallestUnit:      d.SmallestUnit,
			RoundingIncrement: d.RoundingIncrement,
			RoundingMode:      d.RoundingMode,
			RelativeTo:        rel,
		})
		return result(Duration(r), wrap(fn, err))
	},
	"total": func(fn string, recv starlark.Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		o, err := collect(fn, kwargs, "unit", "relative_to")
		if err != nil {
			return nil, err
		}
		var unit starlark.Value
		if err := starlark.UnpackPositionalArgs(fn, args, nil, 0, &unit); err != nil {
			return nil, err
		}
		if unit != nil {
			o["unit"] = unit
		}
		u, err := o.unit("unit")
		if err != nil {
			return nil, wrap(fn, err)
		}
		rel, err := o.relativeTo()
		if err != nil {
			return nil, wrap(fn, err)
		}
		t, err := temporal.Duration(recv.(Duration)).Total(u, rel)
		return result(starlark.Float(t), wrap(fn, err))
	},
	"to_string": formatMethod(func(x Duration, o temporal.ToStringOptions) (string, error) {
		return temporal.Duration(x).Format(o)
	}, "fractional_second_digits", "smallest_unit", "rounding_mode"),
}
