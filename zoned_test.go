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
	"github.com/startemporal/temporal/tz"
)

const newYork = "America/New_York"

func TestEpochInUTC(t *testing.T) {
	i := must(temporal.InstantFromEpochMilliseconds(0))
	z := must(i.ToZonedDateTimeISO("UTC"))
	require.Equal(t, "1970-01-01T00:00:00+00:00[UTC]", z.String())
	require.Equal(t, "UTC", z.TimeZoneID())
	require.Equal(t, "+00:00", z.Offset())
}

func TestToZonedDateTimeDisambiguation(t *testing.T) {
	gap := must(temporal.ParsePlainDateTime("2024-03-10T02:30"))
	for _, test := range []struct {
		d    temporal.Disambiguation
		want string
	}{
		{tz.Compatible, "2024-03-10T03:30:00-04:00[America/New_York]"},
		{tz.Later, "2024-03-10T03:30:00-04:00[America/New_York]"},
		{tz.Earlier, "2024-03-10T01:30:00-05:00[America/New_York]"},
	} {
		z := must(gap.ToZonedDateTime(newYork, test.d))
		require.Equal(t, test.want, z.String(), "gap, %s", test.d)
	}
	_, err := gap.ToZonedDateTime(newYork, tz.Reject)
	requireCode(t, err, temporalerrors.AmbiguousTime)

	overlap := must(temporal.ParsePlainDateTime("2024-11-03T01:30"))
	for _, test := range []struct {
		d    temporal.Disambiguation
		want string
	}{
		{tz.Compatible, "2024-11-03T01:30:00-04:00[America/New_York]"},
		{tz.Earlier, "2024-11-03T01:30:00-04:00[America/New_York]"},
		{tz.Later, "2024-11-03T01:30:00-05:00[America/New_York]"},
	} {
		z := must(overlap.ToZonedDateTime(newYork, test.d))
		require.Equal(t, test.want, z.String(), "overlap, %s", test.d)
	}
	_, err = overlap.ToZonedDateTime(newYork, tz.Reject)
	requireCode(t, err, temporalerrors.AmbiguousTime)
}

func TestParseZonedDateTimeOffsetOption(t *testing.T) {
	const s = "2024-01-15T12:00+01:00[America/New_York]"
	_, err := temporal.ParseZonedDateTime(s, temporal.ZonedOptions{})
	requireCode(t, err, temporalerrors.RangeError)

	for _, test := range []struct {
		o    temporal.OffsetOption
		want string
	}{
		{temporal.OffsetPrefer, "2024-01-15T12:00:00-05:00[America/New_York]"},
		{temporal.OffsetIgnore, "2024-01-15T12:00:00-05:00[America/New_York]"},
		{temporal.OffsetUse, "2024-01-15T06:00:00-05:00[America/New_York]"},
	} {
		z := must(temporal.ParseZonedDateTime(s, temporal.ZonedOptions{Offset: test.o}))
		require.Equal(t, test.want, z.String(), "offset %s", test.o)
	}

	z := zoned(t, "2024-01-15T17:00Z[America/New_York]")
	require.Equal(t, "2024-01-15T12:00:00-05:00[America/New_York]", z.String())

	// The offset selects between the two instants of a repeated hour.
	z = zoned(t, "2024-11-03T01:30-05:00[America/New_York]")
	require.Equal(t, "2024-11-03T01:30:00-05:00[America/New_York]", z.String())
	z = zoned(t, "2024-11-03T01:30-04:00[America/New_York]")
	require.Equal(t, "2024-11-03T01:30:00-04:00[America/New_York]", z.String())

	// A date alone is the start of the day.
	z = zoned(t, "2024-03-10[America/New_York]")
	require.Equal(t, "2024-03-10T00:00:00-05:00[America/New_York]", z.String())
}

func TestParseZonedDateTimeSubMinuteOffset(t *testing.T) {
	// Monrovia kept -00:44:30 until 1972.
	z := zoned(t, "1970-01-01T00:00-00:45[Africa/Monrovia]")
	require.Equal(t, "-00:44:30", z.Offset())
	require.Equal(t, int64(-2670e9), z.OffsetNanoseconds())
	require.Equal(t, "1970-01-01T00:00:00-00:45[Africa/Monrovia]", z.String())

	_, err := temporal.ParseZonedDateTime("1970-01-01T00:00-00:45:00[Africa/Monrovia]", temporal.ZonedOptions{})
	requireCode(t, err, temporalerrors.RangeError)
}

func TestParseZonedDateTimeErrors(t *testing.T) {
	_, err := temporal.ParseZonedDateTime("2024-01-01T00:00", temporal.ZonedOptions{})
	requireCode(t, err, temporalerrors.ParseError)

	_, err = temporal.ParseZonedDateTime("2024-01-01T00:00[Mars/Olympus_Mons]", temporal.ZonedOptions{})
	requireCode(t, err, temporalerrors.UnknownTimeZone)

	z := zoned(t, "2024-01-01T00:00+05:30[+05:30]")
	require.Equal(t, "2024-01-01T00:00:00+05:30[+05:30]", z.String())
}

func TestZonedDateTimeFromFields(t *testing.T) {
	f := temporal.DateTimeFields{
		Fields:     calendar.Fields{Year: some(2024), Month: some(3), Day: some(10)},
		TimeFields: temporal.TimeFields{Hour: some(2), Minute: some(30)},
	}
	_, err := temporal.ZonedDateTimeFromFields(f, newYork, "", nil, temporal.ZonedOptions{Disambiguation: tz.Reject})
	requireCode(t, err, temporalerrors.AmbiguousTime)

	z := must(temporal.ZonedDateTimeFromFields(f, newYork, "", nil, temporal.ZonedOptions{}))
	require.Equal(t, "2024-03-10T03:30:00-04:00[America/New_York]", z.String())

	f.Hour = some(12)
	_, err = temporal.ZonedDateTimeFromFields(f, newYork, "-05:00", nil, temporal.ZonedOptions{})
	requireCode(t, err, temporalerrors.RangeError)
	z = must(temporal.ZonedDateTimeFromFields(f, newYork, "-04:00", nil, temporal.ZonedOptions{}))
	require.Equal(t, "2024-03-10T12:30:00-04:00[America/New_York]", z.String())
}

func TestZonedDateTimeRejectedOffset(t *testing.T) {
	f := temporal.DateTimeFields{
		Fields:     calendar.Fields{Year: some(2024), Month: some(1), Day: some(15)},
		TimeFields: temporal.TimeFields{Hour: some(12)},
	}
	for _, test := range []struct {
		offset, want string
	}{
		{"+05:00", "+05:00"},
		{"+05:30:00.5", "+05:30:00.5"},
		{"-00:00:00.25", "-00:00:00.25"},
		{"+05:29:59.999", "+05:29:59.999"},
	} {
		_, err := temporal.ZonedDateTimeFromFields(f, "Asia/Kolkata", test.offset, nil, temporal.ZonedOptions{})
		requireCode(t, err, temporalerrors.RangeError)
		require.ErrorContains(t, err, "offset "+test.want+" is invalid", test.offset)
	}
}

func TestZonedDateTimeZeroValue(t *testing.T) {
	var z temporal.ZonedDateTime
	require.Equal(t, "1970-01-01T00:00:00+00:00[UTC]", z.String())
	require.Equal(t, "UTC", z.TimeZoneID())
	require.True(t, z.Equals(zoned(t, "1970-01-01T00:00Z[UTC]")))

	next := must(z.Add(duration(t, "P1D"), calendar.Constrain))
	require.Equal(t, "1970-01-02T00:00:00+00:00[UTC]", next.String())
}

func TestZonedDateTimeArithmeticAcrossDST(t *testing.T) {
	z := zoned(t, "2024-03-09T12:00-05:00[America/New_York]")

	day := must(z.Add(duration(t, "P1D"), calendar.Constrain))
	require.Equal(t, "2024-03-10T12:00:00-04:00[America/New_York]", day.String())

	hours := must(z.Add(duration(t, "PT24H"), calendar.Constrain))
	require.Equal(t, "2024-03-10T13:00:00-04:00[America/New_York]", hours.String())

	require.Equal(t, "PT23H", must(z.Until(day, temporal.DifferenceOptions{})).String())
	require.Equal(t, "P1D", must(z.Until(day, temporal.DifferenceOptions{LargestUnit: temporal.Day})).String())
	require.Equal(t, "P1DT1H", must(z.Until(hours, temporal.DifferenceOptions{LargestUnit: temporal.Day})).String())
	require.Equal(t, "-P1DT1H", must(z.Since(hours, temporal.DifferenceOptions{LargestUnit: temporal.Day})).String())

	back := must(day.Subtract(duration(t, "P1D"), calendar.Constrain))
	require.True(t, back.Equals(z))

	tokyo := must(day.WithTimeZone("Asia/Tokyo"))
	_, err := z.Until(tokyo, temporal.DifferenceOptions{LargestUnit: temporal.Day})
	requireCode(t, err, temporalerrors.RangeError)
	require.Equal(t, "PT23H", must(z.Until(tokyo, temporal.DifferenceOptions{})).String())
}

func TestZonedDateTimeUntilAddRoundTrip(t *testing.T) {
	starts := []string{
		"2024-01-31T10:00-05:00[America/New_York]",
		"2024-03-09T02:30-05:00[America/New_York]",
		"2024-11-02T01:30-04:00[America/New_York]",
	}
	ends := []string{
		"2024-03-10T03:30-04:00[America/New_York]",
		"2024-11-03T01:30-05:00[America/New_York]",
		"2025-02-28T23:59:59.5-05:00[America/New_York]",
	}
	for _, largest := range []temporal.Unit{temporal.Hour, temporal.Day, temporal.Week, temporal.Month, temporal.Year} {
		for _, x := range starts {
			for _, y := range ends {
				a, b := zoned(t, x), zoned(t, y)
				d := must(a.Until(b, temporal.DifferenceOptions{LargestUnit: largest}))
				got := must(a.Add(d, calendar.Constrain))
				require.True(t, got.Equals(b), "%s + (%s) = %s, want %s", x, d, got, y)
			}
		}
	}
}

func TestHoursInDay(t *testing.T) {
	for _, test := range []struct {
		s    string
		want float64
	}{
		{"2024-01-15T12:00-05:00[America/New_York]", 24},
		{"2024-03-10T12:00-04:00[America/New_York]", 23},
		{"2024-11-03T12:00-05:00[America/New_York]", 25},
		{"2024-03-31T12:00+05:30[Asia/Kolkata]", 24},
	} {
		require.Equal(t, test.want, must(zoned(t, test.s).HoursInDay()), test.s)
	}
}

func TestStartOfDay(t *testing.T) {
	z := zoned(t, "2024-03-10T15:00-04:00[America/New_York]")
	require.Equal(t, "2024-03-10T00:00:00-05:00[America/New_York]", must(z.StartOfDay()).String())

	// Clocks in São Paulo skipped from 00:00 to 01:00 on this day.
	z = zoned(t, "2018-11-04T12:00-02:00[America/Sao_Paulo]")
	require.Equal(t, "2018-11-04T01:00:00-02:00[America/Sao_Paulo]", must(z.StartOfDay()).String())
}

func TestZonedDateTimeRound(t *testing.T) {
	for _, test := range []struct {
		s    string
		unit temporal.Unit
		want string
	}{
		{"2024-03-10T12:29-04:00[America/New_York]", temporal.Hour, "2024-03-10T12:00:00-04:00[America/New_York]"},
		{"2024-03-10T12:30-04:00[America/New_York]", temporal.Hour, "2024-03-10T13:00:00-04:00[America/New_York]"},
		{"2024-01-15T12:00-05:00[America/New_York]", temporal.Day, "2024-01-16T00:00:00-05:00[America/New_York]"},
		// 11 of the day's 23 hours have elapsed.
		{"2024-03-10T12:00-04:00[America/New_York]", temporal.Day, "2024-03-10T00:00:00-05:00[America/New_York]"},
	} {
		got := must(zoned(t, test.s).Round(temporal.RoundOptions{SmallestUnit: test.unit}))
		require.Equal(t, test.want, got.String(), "%s to %s", test.s, test.unit)
	}

	_, err := zoned(t, "2024-01-15T12:00-05:00[America/New_York]").Round(temporal.RoundOptions{SmallestUnit: temporal.Day, RoundingIncrement: 2})
	requireCode(t, err, temporalerrors.InvalidRoundingIncrement)
}

func TestZonedDateTimeWith(t *testing.T) {
	for _, s := range []string{
		"2024-11-03T01:30-04:00[America/New_York]",
		"2024-11-03T01:30-05:00[America/New_York]",
	} {
		z := zoned(t, s)
		got := must(z.With(temporal.DateTimeFields{TimeFields: temporal.TimeFields{Minute: some(45)}}, temporal.ZonedOptions{}))
		require.Equal(t, z.Offset(), got.Offset(), s)
		require.Equal(t, 45, got.Minute())
	}

	z := zoned(t, "2024-01-31T09:00-05:00[America/New_York]")
	got := must(z.With(temporal.DateTimeFields{Fields: calendar.Fields{Month: some(2)}}, temporal.ZonedOptions{}))
	require.Equal(t, "2024-02-29T09:00:00-05:00[America/New_York]", got.String())

	got = must(z.WithPlainTime(temporal.Midnight))
	require.Equal(t, "2024-01-31T00:00:00-05:00[America/New_York]", got.String())
}

func TestTimeZoneTransition(t *testing.T) {
	z := zoned(t, "2024-01-01T00:00-05:00[America/New_York]")
	next, ok, err := z.TimeZoneTransition(tz.Next)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2024-03-10T03:00:00-04:00[America/New_York]", next.String())

	prev, ok, err := z.TimeZoneTransition(tz.Previous)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2023-11-05T01:00:00-05:00[America/New_York]", prev.String())

	_, ok, err = zoned(t, "2024-01-01T00:00Z[UTC]").TimeZoneTransition(tz.Next)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestZonedDateTimeFormat(t *testing.T) {
	z := zoned(t, "2024-01-15T12:00:30.5-05:00[America/New_York]")
	for _, test := range []struct {
		opts temporal.ToStringOptions
		want string
	}{
		{temporal.ToStringOptions{}, "2024-01-15T12:00:30.5-05:00[America/New_York]"},
		{temporal.ToStringOptions{SmallestUnit: temporal.Minute}, "2024-01-15T12:00-05:00[America/New_York]"},
		{temporal.ToStringOptions{SmallestUnit: temporal.Second, RoundingMode: temporal.HalfExpand}, "2024-01-15T12:00:31-05:00[America/New_York]"},
		{temporal.ToStringOptions{FractionalSecondDigits: temporal.Digits(3)}, "2024-01-15T12:00:30.500-05:00[America/New_York]"},
		{temporal.ToStringOptions{TimeZoneName: temporal.TimeZoneCritical}, "2024-01-15T12:00:30.5-05:00[!America/New_York]"},
		{temporal.ToStringOptions{TimeZoneName: temporal.TimeZoneNever, Offset: temporal.OffsetNever, CalendarName: temporal.CalendarAlways}, "2024-01-15T12:00:30.5[u-ca=iso8601]"},
	} {
		require.Equal(t, test.want, must(z.Format(test.opts)))
	}
}

func TestZonedDateTimeConversions(t *testing.T) {
	z := zoned(t, "2024-01-15T12:00-05:00[America/New_York]")
	require.Equal(t, "2024-01-15T17:00:00Z", z.ToInstant().String())
	require.Equal(t, "2024-01-15T12:00:00", z.ToPlainDateTime().String())
	require.Equal(t, "2024-01-15", z.ToPlainDate().String())
	require.Equal(t, "12:00:00", z.ToPlainTime().String())
	require.Equal(t, int64(1705338000000), z.EpochMilliseconds())

	tokyo := must(z.WithTimeZone("Asia/Tokyo"))
	require.Equal(t, "2024-01-16T02:00:00+09:00[Asia/Tokyo]", tokyo.String())
	require.Equal(t, 0, temporal.CompareZonedDateTime(z, tokyo))
	require.False(t, z.Equals(tokyo))

	d := date(t, "2024-03-10")
	start := must(d.ToZonedDateTime(newYork))
	require.Equal(t, "2024-03-10T00:00:00-05:00[America/New_York]", start.String())
}
