// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/calendar"
	temporalerrors "github.com/startemporal/temporal/errors"
)

func yearMonth(t *testing.T, s string) temporal.PlainYearMonth {
	t.Helper()
	return must(temporal.ParsePlainYearMonth(s))
}

func TestPlainYearMonthParse(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"2024-05", "2024-05"},
		{"2024-05-17", "2024-05"},
		{"2024-05-17T10:00", "2024-05"},
		{"+012024-05", "+012024-05"},
	} {
		require.Equal(t, test.want, yearMonth(t, test.in).String(), "%s", test.in)
	}
	_, err := temporal.ParsePlainYearMonth("2024-02-30")
	requireCode(t, err, temporalerrors.ParseError)
	_, err = temporal.ParsePlainYearMonth("2024-13")
	requireCode(t, err, temporalerrors.ParseError)
	_, err = temporal.ParsePlainYearMonth("2024-05-01T00:00Z")
	requireCode(t, err, temporalerrors.ParseError)
}

func TestPlainYearMonthAccessors(t *testing.T) {
	ym := must(temporal.NewPlainYearMonth(2024, 2))
	require.Equal(t, 2024, ym.Year())
	require.Equal(t, 2, ym.Month())
	require.Equal(t, "M02", ym.MonthCode())
	require.Equal(t, 29, ym.DaysInMonth())
	require.Equal(t, 366, ym.DaysInYear())
	require.True(t, ym.InLeapYear())
	require.Equal(t, "2024-02-01[u-ca=iso8601]", ym.Format(temporal.CalendarAlways))
}

func TestPlainYearMonthArithmetic(t *testing.T) {
	ym := yearMonth(t, "2024-01")
	require.Equal(t, "2024-02", must(ym.Add(duration(t, "P1M"), calendar.Constrain)).String())
	require.Equal(t, "2025-01", must(ym.Add(duration(t, "P12M"), calendar.Constrain)).String())
	require.Equal(t, "2022-11", must(ym.Subtract(duration(t, "P1Y2M"), calendar.Constrain)).String())

	for _, d := range []string{"P1D", "P1W", "PT1H"} {
		_, err := ym.Add(duration(t, d), calendar.Constrain)
		requireCode(t, err, temporalerrors.RangeError)
	}
}

func TestPlainYearMonthUntil(t *testing.T) {
	a, b := yearMonth(t, "2024-01"), yearMonth(t, "2025-03")
	require.Equal(t, "P1Y2M", must(a.Until(b, temporal.DifferenceOptions{})).String())
	require.Equal(t, "P14M", must(a.Until(b, temporal.DifferenceOptions{LargestUnit: temporal.Month})).String())
	require.Equal(t, "-P1Y2M", must(a.Since(b, temporal.DifferenceOptions{})).String())
	require.Equal(t, "P1Y", must(a.Until(b, temporal.DifferenceOptions{SmallestUnit: temporal.Year})).String())

	_, err := a.Until(b, temporal.DifferenceOptions{LargestUnit: temporal.Day})
	requireCode(t, err, temporalerrors.InvalidArgument)
}

func TestPlainYearMonthWith(t *testing.T) {
	ym := yearMonth(t, "2024-02")
	require.Equal(t, "2024-12", must(ym.With(calendar.Fields{Month: some(12)}, calendar.Reject)).String())
	_, err := ym.With(calendar.Fields{}, calendar.Reject)
	requireCode(t, err, temporalerrors.InvalidArgument)
	_, err = ym.With(calendar.Fields{Day: some(3)}, calendar.Reject)
	requireCode(t, err, temporalerrors.InvalidArgument)

	require.Equal(t, "2024-02-29", must(ym.ToPlainDate(31)).String())
	require.Equal(t, "2023-02-28", must(yearMonth(t, "2023-02").ToPlainDate(31)).String())

	require.Equal(t, -1, temporal.ComparePlainYearMonth(ym, yearMonth(t, "2024-03")))
	require.True(t, ym.Equals(yearMonth(t, "2024-02-15")))
}

func TestPlainMonthDay(t *testing.T) {
	for _, test := range []struct{ in, want string }{
		{"--12-25", "12-25"},
		{"12-25", "12-25"},
		{"1225", "12-25"},
		{"2023-12-25", "12-25"},
		{"02-29", "02-29"},
	} {
		md := must(temporal.ParsePlainMonthDay(test.in))
		require.Equal(t, test.want, md.String(), "%s", test.in)
	}
	_, err := temporal.ParsePlainMonthDay("2023-02-29")
	requireCode(t, err, temporalerrors.ParseError)
	_, err = temporal.ParsePlainMonthDay("02-30")
	requireCode(t, err, temporalerrors.ParseError)

	_, err = temporal.NewPlainMonthDay(4, 31)
	requireCode(t, err, temporalerrors.InvalidDate)

	leap := must(temporal.NewPlainMonthDay(2, 29))
	require.Equal(t, "M02", leap.MonthCode())
	require.Equal(t, 29, leap.Day())
	require.Equal(t, "2023-02-28", must(leap.ToPlainDate(2023)).String())
	require.Equal(t, "2024-02-29", must(leap.ToPlainDate(2024)).String())
	require.Equal(t, "1972-02-29[u-ca=iso8601]", leap.Format(temporal.CalendarAlways))

	md := must(leap.With(calendar.Fields{Day: some(31)}, calendar.Constrain))
	require.Equal(t, "02-29", md.String())
	_, err = leap.With(calendar.Fields{Day: some(31)}, calendar.Reject)
	requireCode(t, err, temporalerrors.InvalidDate)

	require.True(t, must(temporal.ParsePlainMonthDay("--02-29")).Equals(leap))
}

func TestPlainMonthDayText(t *testing.T) {
	var md temporal.PlainMonthDay
	require.NoError(t, md.UnmarshalText([]byte("07-04")))
	text, err := md.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "07-04", string(text))
}
