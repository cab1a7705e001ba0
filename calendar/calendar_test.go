// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/startemporal/temporal/calendar"
	temporalerrors "github.com/startemporal/temporal/errors"
)

func TestEpochDaysRoundTrip(t *testing.T) {
	for _, test := range []struct {
		date calendar.Date
		days int64
	}{
		{calendar.Date{Year: 1970, Month: 1, Day: 1}, 0},
		{calendar.Date{Year: 2000, Month: 3, Day: 1}, 11017},
		{calendar.Date{Year: 1969, Month: 12, Day: 31}, -1},
		{calendar.Date{Year: -271821, Month: 4, Day: 19}, calendar.MinEpochDay},
		{calendar.Date{Year: 275760, Month: 9, Day: 13}, calendar.MaxEpochDay},
	} {
		if got := test.date.EpochDays(); got != test.days {
			t.Errorf("%s.EpochDays() = %d, want %d", test.date, got, test.days)
		}
		if got := calendar.FromEpochDays(test.days); got != test.date {
			t.Errorf("FromEpochDays(%d) = %s, want %s", test.days, got, test.date)
		}
	}
}

func TestDateFromFieldsOverflow(t *testing.T) {
	f := calendar.Fields{
		Year:  calendar.Some(2024),
		Month: calendar.Some(2),
		Day:   calendar.Some(30),
	}
	got, err := calendar.ISO.DateFromFields(f, calendar.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	if want := (calendar.Date{Year: 2024, Month: 2, Day: 29}); got != want {
		t.Errorf("constrain: got %s, want %s", got, want)
	}
	_, err = calendar.ISO.DateFromFields(f, calendar.Reject)
	if !errors.Is(err, temporalerrors.ErrInvalidDate) {
		t.Errorf("reject: got %v, want InvalidDate", err)
	}
}

func TestMonthCodeConflict(t *testing.T) {
	f := calendar.Fields{
		Year:      calendar.Some(2024),
		Month:     calendar.Some(3),
		MonthCode: calendar.Some("M04"),
		Day:       calendar.Some(1),
	}
	if _, err := calendar.ISO.DateFromFields(f, calendar.Constrain); !errors.Is(err, temporalerrors.ErrInvalidArgument) {
		t.Errorf("got %v, want InvalidArgument", err)
	}
}

func TestDateAdd(t *testing.T) {
	d := calendar.Date{Year: 2023, Month: 1, Day: 31}
	got, err := calendar.ISO.DateAdd(d, 0, 1, 0, 0, calendar.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	if want := (calendar.Date{Year: 2023, Month: 2, Day: 28}); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if _, err := calendar.ISO.DateAdd(d, 0, 1, 0, 0, calendar.Reject); !errors.Is(err, temporalerrors.ErrInvalidDate) {
		t.Errorf("reject: got %v", err)
	}
	if _, err := calendar.ISO.DateAdd(d, 300000, 0, 0, 0, calendar.Constrain); !errors.Is(err, temporalerrors.ErrRange) {
		t.Errorf("range: got %v", err)
	}
}

func TestDateUntil(t *testing.T) {
	type diff struct{ Years, Months, Weeks, Days int64 }
	for _, test := range []struct {
		a, b    calendar.Date
		largest calendar.DateUnit
		want    diff
	}{
		{calendar.Date{2023, 1, 31}, calendar.Date{2023, 2, 28}, calendar.Months, diff{0, 0, 0, 28}},
		{calendar.Date{2023, 1, 31}, calendar.Date{2023, 3, 1}, calendar.Months, diff{0, 1, 0, 1}},
		{calendar.Date{2020, 2, 29}, calendar.Date{2024, 2, 28}, calendar.Years, diff{3, 11, 0, 30}},
		{calendar.Date{2023, 3, 31}, calendar.Date{2023, 2, 28}, calendar.Months, diff{0, -1, 0, 0}},
		{calendar.Date{2023, 1, 1}, calendar.Date{2023, 1, 20}, calendar.Weeks, diff{0, 0, 2, 5}},
		{calendar.Date{2023, 1, 20}, calendar.Date{2023, 1, 1}, calendar.Weeks, diff{0, 0, -2, -5}},
		{calendar.Date{2000, 1, 1}, calendar.Date{2001, 1, 1}, calendar.Days, diff{0, 0, 0, 366}},
	} {
		var got diff
		got.Years, got.Months, got.Weeks, got.Days = calendar.ISO.DateUntil(test.a, test.b, test.largest)
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("DateUntil(%s, %s) mismatch (-want +got):\n%s", test.a, test.b, d)
		}
		// a + (a until b) == b
		back, err := calendar.ISO.DateAdd(test.a, got.Years, got.Months, got.Weeks, got.Days, calendar.Constrain)
		if err != nil || back != test.b {
			t.Errorf("%s + %v = %s (%v), want %s", test.a, got, back, err, test.b)
		}
	}
}

func TestISOWeek(t *testing.T) {
	for _, test := range []struct {
		date       calendar.Date
		week, year int
	}{
		{calendar.Date{2021, 1, 3}, 53, 2020},
		{calendar.Date{2021, 1, 4}, 1, 2021},
		{calendar.Date{2024, 12, 30}, 1, 2025},
		{calendar.Date{2026, 10, 17}, 42, 2026},
	} {
		w, _ := calendar.ISO.WeekOfYear(test.date).Get()
		y, _ := calendar.ISO.YearOfWeek(test.date).Get()
		if w != test.week || y != test.year {
			t.Errorf("%s: week %d/%d, want %d/%d", test.date, w, y, test.week, test.year)
		}
	}
	if got := calendar.ISO.DayOfWeek(calendar.Date{1970, 1, 1}); got != 4 {
		t.Errorf("1970-01-01 day of week = %d, want 4", got)
	}
}

func TestGregorianEras(t *testing.T) {
	g, err := calendar.Lookup("Gregory")
	if err != nil {
		t.Fatal(err)
	}
	d, err := g.DateFromFields(calendar.Fields{
		Era:     calendar.Some("bce"),
		EraYear: calendar.Some(1),
		Month:   calendar.Some(6),
		Day:     calendar.Some(1),
	}, calendar.Reject)
	if err != nil {
		t.Fatal(err)
	}
	if d.Year != 0 {
		t.Errorf("1 BCE = ISO year %d, want 0", d.Year)
	}
	if era, _ := g.Era(d).Get(); era != "bce" {
		t.Errorf("era = %q", era)
	}
	if g.WeekOfYear(d).Present() {
		t.Error("gregory should not define week numbering")
	}
	if calendar.ISO.Era(d).Present() {
		t.Error("iso8601 should not define eras")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := calendar.Lookup("discworld")
	if !errors.Is(err, temporalerrors.ErrUnknownCalendar) {
		t.Errorf("got %v, want UnknownCalendar", err)
	}
}

func TestMonthDayReferenceYear(t *testing.T) {
	d, err := calendar.ISO.MonthDayFromFields(calendar.Fields{
		MonthCode: calendar.Some("M02"),
		Day:       calendar.Some(29),
	}, calendar.Reject)
	if err != nil {
		t.Fatal(err)
	}
	if want := (calendar.Date{calendar.ReferenceYear, 2, 29}); d != want {
		t.Errorf("got %s, want %s", d, want)
	}
	d, err = calendar.ISO.MonthDayFromFields(calendar.Fields{
		Year:  calendar.Some(2023),
		Month: calendar.Some(2),
		Day:   calendar.Some(29),
	}, calendar.Constrain)
	if err != nil {
		t.Fatal(err)
	}
	if d.Day != 28 {
		t.Errorf("constrained against 2023: day %d, want 28", d.Day)
	}
}
