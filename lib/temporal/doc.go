// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package temporal defines calendar and time values for starlark, backed by
the github.com/startemporal/temporal package.

	outline: temporal
	  temporal defines calendar and time values for starlark
	  path: temporal
	  functions:
	    instant(x) instant
	      an instant from text with an offset or from epoch nanoseconds
	    instant_from_epoch_milliseconds(int) instant
	      an instant from epoch milliseconds
	    zoned_date_time(x, time_zone=..., calendar=..., **fields) zoned_date_time
	      a zoned date-time from text, from epoch nanoseconds and a zone, or
	      from fields with time_zone, offset and the options overflow,
	      disambiguation and offset_option
	    plain_date(x, ...) plain_date
	      a date from text, from year, month and day, or from fields
	    plain_time(x, ...) plain_time
	      a wall-clock time from text, from components, or from fields
	    plain_date_time(x, ...) plain_date_time
	      a date and time from text, from components, or from fields
	    plain_year_month(x, ...) plain_year_month
	      a month of a year from text, from year and month, or from fields
	    plain_month_day(x, ...) plain_month_day
	      a recurring day from text, from month and day, or from fields
	    duration(x, **units) duration
	      a duration from ISO 8601 text or unit keywords
	    compare(a, b, relative_to=...) int
	      -1, 0 or +1; durations with calendar units need relative_to
	    calendars() list
	      the identifiers of the supported calendars
	    midnight plain_time
	      a constant

	  modules:
	    now
	      functions:
	        instant() instant
	        time_zone_id() string
	        zoned_date_time_iso(time_zone=...) zoned_date_time
	        plain_date_time_iso(time_zone=...) plain_date_time
	        plain_date_iso(time_zone=...) plain_date
	        plain_time_iso(time_zone=...) plain_time

	  types:
	    instant
	      fields:
	        epoch_milliseconds int
	        epoch_nanoseconds int
	      functions:
	        add(duration) instant
	        subtract(duration) instant
	        until(instant, largest_unit=..., smallest_unit=..., rounding_increment=..., rounding_mode=...) duration
	        since(instant, ...) duration
	        round(smallest_unit, rounding_increment=..., rounding_mode=...) instant
	        equals(instant) bool
	        to_zoned_date_time_iso(time_zone) zoned_date_time
	        to_zoned_date_time(time_zone, calendar) zoned_date_time
	        to_string(fractional_second_digits=..., smallest_unit=..., rounding_mode=..., time_zone=...) string
	      operators:
	        instant == instant = boolean
	        instant < instant = boolean
	        instant + duration = instant
	        instant - duration = instant
	        instant - instant = duration
	    zoned_date_time
	      fields:
	        the fields of plain_date_time, and
	        time_zone_id string
	        offset string
	        offset_nanoseconds int
	        epoch_milliseconds int
	        epoch_nanoseconds int
	        hours_in_day float
	      functions:
	        add, subtract(duration, overflow=...) zoned_date_time
	        with_fields(**fields, offset=..., overflow=..., disambiguation=..., offset_option=...) zoned_date_time
	        with_plain_time(plain_time=midnight) zoned_date_time
	        with_time_zone(string) zoned_date_time
	        with_calendar(string) zoned_date_time
	        until, since(zoned_date_time, ...) duration
	        round(smallest_unit, ...) zoned_date_time
	        start_of_day() zoned_date_time
	        get_time_zone_transition(direction) zoned_date_time or None
	        to_instant, to_plain_date_time, to_plain_date, to_plain_time
	        to_string(calendar_name=..., time_zone_name=..., offset=..., ...) string
	      operators:
	        zoned_date_time == zoned_date_time = boolean
	        zoned_date_time < zoned_date_time = boolean
	        zoned_date_time + duration = zoned_date_time
	        zoned_date_time - duration = zoned_date_time
	        zoned_date_time - zoned_date_time = duration
	    plain_date
	      fields:
	        calendar_id string
	        era string or None
	        era_year int or None
	        year int
	        month int
	        month_code string
	        day int
	        day_of_week int
	        day_of_year int
	        week_of_year int or None
	        year_of_week int or None
	        days_in_week int
	        days_in_month int
	        days_in_year int
	        months_in_year int
	        in_leap_year bool
	      functions:
	        add, subtract(duration, overflow=...) plain_date
	        with_fields(**fields, overflow=...) plain_date
	        with_calendar(string) plain_date
	        fields() dict
	        until, since(plain_date, ...) duration
	        to_plain_date_time(plain_time=midnight) plain_date_time
	        to_zoned_date_time(time_zone, plain_time=...) zoned_date_time
	        to_plain_year_month() plain_year_month
	        to_plain_month_day() plain_month_day
	        to_string(calendar_name=...) string
	    plain_time
	      fields:
	        hour, minute, second, millisecond, microsecond, nanosecond int
	      functions:
	        add, subtract(duration) plain_time
	        with_fields(**fields, overflow=...) plain_time
	        until, since(plain_time, ...) duration
	        round(smallest_unit, ...) plain_time
	        to_plain_date_time(plain_date) plain_date_time
	        to_string(fractional_second_digits=..., smallest_unit=..., rounding_mode=...) string
	    plain_date_time
	      fields:
	        the fields of plain_date and plain_time
	      functions:
	        add, subtract(duration, overflow=...) plain_date_time
	        with_fields(**fields, overflow=...) plain_date_time
	        with_plain_time(plain_time=midnight) plain_date_time
	        with_calendar(string) plain_date_time
	        until, since(plain_date_time, ...) duration
	        round(smallest_unit, ...) plain_date_time
	        to_plain_date, to_plain_time
	        to_zoned_date_time(time_zone, disambiguation=...) zoned_date_time
	        to_string(calendar_name=..., fractional_second_digits=..., ...) string
	    plain_year_month
	      functions:
	        add, subtract(duration, overflow=...) plain_year_month
	        with_fields(**fields, overflow=...) plain_year_month
	        until, since(plain_year_month, ...) duration
	        to_plain_date(day) plain_date
	        to_string(calendar_name=...) string
	    plain_month_day
	      functions:
	        with_fields(**fields, overflow=...) plain_month_day
	        to_plain_date(year) plain_date
	        to_string(calendar_name=...) string
	      operators:
	        plain_month_day == plain_month_day = boolean
	    duration
	      fields:
	        years, months, weeks, days, hours, minutes, seconds int
	        milliseconds, microseconds, nanoseconds int
	        sign int
	        blank bool
	      functions:
	        negated() duration
	        abs() duration
	        add, subtract(duration) duration
	        with_fields(**units) duration
	        round(smallest_unit, largest_unit=..., rounding_increment=..., rounding_mode=..., relative_to=...) duration
	        total(unit, relative_to=...) float
	        to_string(fractional_second_digits=..., smallest_unit=..., rounding_mode=...) string
	      operators:
	        duration == duration = boolean
	        duration < duration = boolean
	        duration + duration = duration
	        duration - duration = duration
	        -duration = duration
*/
package temporal
