// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/calendar"
	temporalerrors "github.com/startemporal/temporal/errors"
)

func TestNewPlainDate(t *testing.T) {
	d := must(temporal.NewPlainDate(2024, 2, 29))
	require.Equal(t, "2024-02-29", d.String())
	require.Equal(t, 4, d.DayOfWeek())
	require.Equal(t, 60, d.DayOfYear())
	require.Equal(t, 29, d.DaysInMonth())
	require.Equal(t, 366, d.DaysInYear())
	require.True(t, d.InLeapYear())
	require.Equal(t, "M02", d.MonthCode())
	require.False(t, d.Era().Present())

	_, err := temporal.NewPlainDate(2024, 2, 30)
	requireCode(t, err, temporalerrors.InvalidDate)
	_, err = temporal.NewPlainDate(2024, 13, 1)
	requireCode(t, err, temporalerrors.InvalidDate)
	_, err = temporal.NewPlainDate(275760, 9, 14)
	requireCode(t, err, temporalerrors.RangeError)
}

func TestPlainDateFromFieldsOverflow(t *testing.T) {
	f := calendar.Fields{Year: calendar.Some(2024), Month: calendar.Some(2), Day: calendar.Some(30)}
	d := must(temporal.PlainDateFromFields(f, nil, calendar.Constrain))
	require.Equal(t, "2024-02-29", d.String())

	_, err := temporal.PlainDateFromFields(f, nil, calendar.Reject)
	requireCode(t, err, temporalerrors.InvalidDate)

	f = calendar.Fields{Year: calendar.Some(2024), MonthCode: calendar.Some("M03"), Day: calendar.Some(1)}
	require.Equal(t, "2024-03-01", must(temporal.PlainDateFromFields(f, nil, calendar.Reject)).String())
}

func TestPlainDateFields(t *testing.T) {
	got := date(t, "2024-05-17").Fields()
	want := calendar.Fields{
		Year:      calendar.Some(2024),
		Month:     calendar.Some(5),
		MonthCode: calendar.Some("M05"),
		Day:       calendar.Some(17),
	}
	opt := cmp.AllowUnexported(calendar.Optional[int]{}, calendar.Optional[string]{})
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlainDateAdd(t *testing.T) {
	for _, test := range []struct {
		date, dur string
		want      string
	}{
		{"2023-01-31", "P1M", "2023-02-28"},
		{"2024-01-31", "P1M", "2024-02-29"},
		{"2024-02-29", "P1Y", "2025-02-28"},
		{"2024-02-29", "-P1Y", "2023-02-28"},
		{"2024-01-01", "P2W3D", "2024-01-18"},
		{"2024-01-01", "PT47H", "2024-01-02"},
		{"2024-12-31", "P1D", "2025-01-01"},
	} {
		got, err := date(t, test.date).Add(duration(t, test.dur), calendar.Constrain)
		require.NoError(t, err, "%s + %s", test.date, test.dur)
		require.Equal(t, test.want, got.String(), "%s + %s", test.date, test.dur)
	}

	_, err := date(t, "2023-01-31").Add(duration(t, "P1M"), calendar.Reject)
	requireCode(t, err, temporalerrors.InvalidDate)

	got := must(date(t, "2023-03-31").Subtract(duration(t, "P1M"), calendar.Constrain))
	require.Equal(t, "2023-02-28", got.String())
}

func TestPlainDateWith(t *testing.T) {
	d := date(t, "2024-01-31")
	got := must(d.With(calendar.Fields{Month: calendar.Some(2)}, calendar.Constrain))
	require.Equal(t, "2024-02-29", got.String())

	_, err := d.With(calendar.Fields{Month: calendar.Some(2)}, calendar.Reject)
	requireCode(t, err, temporalerrors.InvalidDate)

	_, err = d.With(calendar.Fields{}, calendar.Constrain)
	requireCode(t, err, temporalerrors.InvalidArgument)
}

func TestPlainDateUntil(t *testing.T) {
	for _, test := range []struct {
		a, b    string
		largest temporal.Unit
		want    string
	}{
		{"2024-01-31", "2024-03-01", temporal.Auto, "P30D"},
		{"2024-01-31", "2024-03-01", temporal.Month, "P1M1D"},
		{"2024-03-01", "2024-01-31", temporal.Month, "-P1M1D"},
		{"2020-02-29", "2024-02-28", temporal.Year, "P3Y11M30D"},
		{"2024-01-01", "2024-01-20", temporal.Week, "P2W5D"},
		{"2024-01-01", "2024-01-01", temporal.Year, "PT0S"},
	} {
		got, err := date(t, test.a).Until(date(t, test.b), temporal.DifferenceOptions{LargestUnit: test.largest})
		require.NoError(t, err)
		require.Equal(t, test.want, got.String(), "%s until %s (%s)", test.a, test.b, test.largest)
	}
}

func TestPlainDateUntilRounding(t *testing.T) {
	a, b := date(t, "2024-01-01"), date(t, "2024-02-20")
	opts := temporal.DifferenceOptions{LargestUnit: temporal.Month, SmallestUnit: temporal.Month, RoundingMode: temporal.HalfExpand}
	require.Equal(t, "P2M", must(a.Until(b, opts)).String())

	opts.RoundingMode = temporal.Trunc
	require.Equal(t, "P1M", must(a.Until(b, opts)).String())

	// Rounding direction is mirrored for since.
	opts.RoundingMode = temporal.Floor
	require.Equal(t, "P1M", must(b.Since(a, opts)).String())
	require.Equal(t, "-P2M", must(a.Since(b, opts)).String())
}

func TestPlainDateUntilAddRoundTrip(t *testing.T) {
	dates := []string{"2020-02-29", "2023-01-31", "2023-12-31", "2024-02-28", "2024-03-31", "2025-07-15"}
	for _, largest := range []temporal.Unit{temporal.Day, temporal.Week, temporal.Month, temporal.Year} {
		for _, x := range dates {
			for _, y := range dates {
				a, b := date(t, x), date(t, y)
				d := must(a.Until(b, temporal.DifferenceOptions{LargestUnit: largest}))
				got := must(a.Add(d, calendar.Constrain))
				require.True(t, got.Equals(b), "%s + (%s until %s = %s) = %s", x, x, y, d, got)

				back := must(b.Since(a, temporal.DifferenceOptions{LargestUnit: largest}))
				if largest <= temporal.Week {
					require.Equal(t, d.String(), back.String())
				}
			}
		}
	}
}

func TestPlainDateCalendarMismatch(t *testing.T) {
	a := date(t, "2024-01-01")
	b := date(t, "2024-02-01[u-ca=gregory]")
	_, err := a.Until(b, temporal.DifferenceOptions{})
	requireCode(t, err, temporalerrors.RangeError)
	require.Equal(t, -1, temporal.ComparePlainDate(a, b))

	iso := date(t, "2024-02-01")
	require.False(t, iso.Equals(b))
	require.True(t, iso.Equals(b.WithCalendar(nil)))
	require.Equal(t, "2024-02-01[u-ca=gregory]", b.String())
	era, ok := b.Era().Get()
	require.True(t, ok)
	require.Equal(t, "ce", era)
}
