// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "github.com/startemporal/temporal/errors"

// Gregorian is the proleptic Gregorian calendar with the eras "ce" and
// "bce". It shares ISO arithmetic but numbers years by era and defines no
// week numbering.
var Gregorian Calendar = gregory{}

type gregory struct{ iso }

func (gregory) ID() string { return "gregory" }

// year resolves era/eraYear against year.
func (gregory) year(f Fields) (int, error) {
	era, hasEra := f.Era.Get()
	eraYear, hasEraYear := f.EraYear.Get()
	y, hasYear := f.Year.Get()
	if hasEra != hasEraYear {
		return 0, errors.New(errors.InvalidArgument, "era and eraYear must be given together")
	}
	if !hasEra {
		if !hasYear {
			return 0, errors.New(errors.InvalidArgument, "year is required")
		}
		return y, nil
	}
	var fromEra int
	switch era {
	case "ce", "ad":
		fromEra = eraYear
	case "bce", "bc":
		fromEra = 1 - eraYear
	default:
		return 0, &errors.Error{Code: errors.InvalidArgument, Message: "unknown era", Token: era}
	}
	if hasYear && y != fromEra {
		return 0, errors.New(errors.InvalidArgument, "year %d does not match era year %d %s", y, eraYear, era)
	}
	return fromEra, nil
}

func (g gregory) DateFromFields(f Fields, o Overflow) (Date, error) {
	y, err := g.year(f)
	if err != nil {
		return Date{}, err
	}
	return isoDate(y, f, o)
}

func (g gregory) YearMonthFromFields(f Fields, o Overflow) (Date, error) {
	y, err := g.year(f)
	if err != nil {
		return Date{}, err
	}
	return isoYearMonth(y, f, o)
}

func (g gregory) MonthDayFromFields(f Fields, o Overflow) (Date, error) {
	year := None[int]()
	if f.Year.Present() || f.Era.Present() {
		y, err := g.year(f)
		if err != nil {
			return Date{}, err
		}
		year = Some(y)
	}
	return isoMonthDay(year, f, o)
}

func (g gregory) Fields(d Date) Fields {
	f := g.iso.Fields(d)
	f.Era = g.Era(d)
	f.EraYear = g.EraYear(d)
	return f
}

func (gregory) Era(d Date) Optional[string] {
	if d.Year > 0 {
		return Some("ce")
	}
	return Some("bce")
}

func (gregory) EraYear(d Date) Optional[int] {
	if d.Year > 0 {
		return Some(d.Year)
	}
	return Some(1 - d.Year)
}

func (gregory) WeekOfYear(Date) Optional[int] { return None[int]() }
func (gregory) YearOfWeek(Date) Optional[int] { return None[int]() }
