// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package isolex

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	temporalerrors "github.com/startemporal/temporal/errors"
)

func TestParseDateTime(t *testing.T) {
	for _, test := range []struct {
		src  string
		want Result
	}{
		{"2024-03-10", Result{Year: 2024, Month: 3, Day: 10, HasDate: true}},
		{"20240310", Result{Year: 2024, Month: 3, Day: 10, HasDate: true}},
		{"-000044-03-15", Result{Year: -44, Month: 3, Day: 15, HasDate: true}},
		{"2024-03-10T02:30:00.5", Result{
			Year: 2024, Month: 3, Day: 10, HasDate: true,
			Time: Time{2, 30, 0, 500000000}, HasTime: true,
		}},
		{"1970-01-01T00:00Z", Result{
			Year: 1970, Month: 1, Day: 1, HasDate: true, HasTime: true,
			Offset: Offset{Z: true}, HasOffset: true,
		}},
		{"2024-11-03T01:30-04:00[America/New_York][u-ca=gregory]", Result{
			Year: 2024, Month: 11, Day: 3, HasDate: true,
			Time: Time{Hour: 1, Minute: 30}, HasTime: true,
			Offset: Offset{Nanoseconds: -4 * 3600e9}, HasOffset: true,
			Zone: "America/New_York", Calendar: "gregory",
		}},
		{"2016-12-31T23:59:60", Result{
			Year: 2016, Month: 12, Day: 31, HasDate: true,
			Time: Time{23, 59, 59, 0}, HasTime: true,
		}},
		{"2024-01-01[foo=bar][!u-ca=iso8601]", Result{
			Year: 2024, Month: 1, Day: 1, HasDate: true,
			Calendar: "iso8601", CalendarCritical: true,
		}},
	} {
		got, err := ParseDateTime(test.src)
		if err != nil {
			t.Errorf("ParseDateTime(%q): %v", test.src, err)
			continue
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("ParseDateTime(%q) mismatch (-want +got):\n%s", test.src, d)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"2024-13-01",
		"2024-02-32",
		"2024-02-01T25:00",
		"-000000-01-01",
		"2024-01-01[!x-unknown=1]",
		"2024-01-01[u-ca=gregory][!u-ca=iso8601]",
		"2024-01-01T00:00:00.0000000001",
		"2024-01-01junk",
		"2024-01-01Z",
	} {
		_, err := ParseDateTime(src)
		if !errors.Is(err, temporalerrors.ErrParse) {
			t.Errorf("ParseDateTime(%q) = %v, want ParseError", src, err)
		}
	}
}

func TestParseTimeYearMonthMonthDay(t *testing.T) {
	r, err := ParseTime("T12:30")
	if err != nil || r.Time != (Time{Hour: 12, Minute: 30}) {
		t.Errorf("ParseTime(T12:30) = %+v, %v", r.Time, err)
	}
	r, err = ParseTime("2024-01-01T08:00")
	if err != nil || r.Time.Hour != 8 {
		t.Errorf("ParseTime(date-time) = %+v, %v", r, err)
	}
	if _, err := ParseTime("2024-01-01"); err == nil {
		t.Error("ParseTime(date) succeeded")
	}
	r, err = ParseYearMonth("2024-02")
	if err != nil || r.Year != 2024 || r.Month != 2 {
		t.Errorf("ParseYearMonth = %+v, %v", r, err)
	}
	r, err = ParseMonthDay("--02-29")
	if err != nil || r.Month != 2 || r.Day != 29 || r.Year != 0 {
		t.Errorf("ParseMonthDay = %+v, %v", r, err)
	}
	o, err := ParseOffset("+05:30")
	if err != nil || o.Nanoseconds != 19800e9 || o.Precise {
		t.Errorf("ParseOffset = %+v, %v", o, err)
	}
}

func TestParseDuration(t *testing.T) {
	for _, test := range []struct {
		src  string
		want Duration
	}{
		{"P1Y2M3W4DT5H6M7.008009010S", Duration{
			Years: 1, Months: 2, Weeks: 3, Days: 4, Hours: 5, Minutes: 6, Seconds: 7,
			Milliseconds: 8, Microseconds: 9, Nanoseconds: 10,
		}},
		{"-PT1H30M", Duration{Negative: true, Hours: 1, Minutes: 30}},
		{"PT1.5H", Duration{Hours: 1, Minutes: 30}},
		{"pt0s", Duration{}},
		{"P1D", Duration{Days: 1}},
	} {
		got, err := ParseDuration(test.src)
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", test.src, err)
			continue
		}
		if d := cmp.Diff(test.want, got); d != "" {
			t.Errorf("ParseDuration(%q) mismatch (-want +got):\n%s", test.src, d)
		}
	}
	for _, src := range []string{"P", "PT", "P1H", "PT1.5H2M", "P1.5D", "P1M1Y", "1D", "P99999999999999999999Y"} {
		if _, err := ParseDuration(src); !errors.Is(err, temporalerrors.ErrParse) {
			t.Errorf("ParseDuration(%q) = %v, want ParseError", src, err)
		}
	}
}
