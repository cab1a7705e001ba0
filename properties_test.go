// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/startemporal/temporal"
)

// checkTextRoundTrip parses each input, formats it, and requires that the
// text parses back to an equal value with the same text.
func checkTextRoundTrip[T fmt.Stringer](t *testing.T, inputs []string, parse func(string) (T, error), equal func(a, b T) bool) {
	t.Helper()
	for _, s := range inputs {
		v, err := parse(s)
		require.NoError(t, err, s)
		text := v.String()
		w, err := parse(text)
		require.NoError(t, err, "%s -> %s", s, text)
		require.True(t, equal(v, w), "%s -> %s -> %s", s, text, w)
		require.Equal(t, text, w.String())
	}
}

func parseZoned(s string) (temporal.ZonedDateTime, error) {
	return temporal.ParseZonedDateTime(s, temporal.ZonedOptions{})
}

func TestTextRoundTrip(t *testing.T) {
	t.Run("instant", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"1970-01-01T00:00Z",
			"-271821-04-20T00:00Z",
			"+275760-09-13T00:00Z",
			"2024-03-10T06:59:59.123456789Z",
			"2024-01-15T12:00+05:30:15.5",
			"1969-12-31T23:59:59.999999999Z",
		}, temporal.ParseInstant, temporal.Instant.Equals)
	})
	t.Run("zoned", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"2024-03-10T03:30-04:00[America/New_York]",
			"2024-11-03T01:30-04:00[America/New_York]",
			"2024-11-03T01:30-05:00[America/New_York]",
			"1850-01-01T00:00-04:56:02[America/New_York]",
			"2024-06-01T12:00+05:45[Asia/Kathmandu]",
			"2024-01-15T12:00+09:00[Asia/Tokyo][u-ca=gregory]",
			"+100000-01-01T00:00+00:00[UTC]",
			"2024-01-15T12:00-03:30[-03:30]",
		}, parseZoned, temporal.ZonedDateTime.Equals)
	})
	t.Run("date", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"2024-02-29",
			"0000-01-01",
			"-000001-12-31",
			"-271821-04-19",
			"+275760-09-13",
			"2024-01-15[u-ca=gregory]",
		}, temporal.ParsePlainDate, temporal.PlainDate.Equals)
	})
	t.Run("time", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"00:00",
			"12:30:00.5",
			"23:59:59.999999999",
		}, temporal.ParsePlainTime, temporal.PlainTime.Equals)
	})
	t.Run("datetime", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"2024-01-15T12:00",
			"-271821-04-19T00:00:00.000000001",
			"+275760-09-13T23:59:59.999999999",
			"2024-01-15T12:00[u-ca=gregory]",
		}, temporal.ParsePlainDateTime, temporal.PlainDateTime.Equals)
	})
	t.Run("yearmonth", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"2024-02",
			"-271821-04",
			"+275760-09",
			"2024-01-01[u-ca=gregory]",
		}, temporal.ParsePlainYearMonth, temporal.PlainYearMonth.Equals)
	})
	t.Run("monthday", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"02-29",
			"--12-31",
			"1972-03-01[u-ca=gregory]",
		}, temporal.ParsePlainMonthDay, temporal.PlainMonthDay.Equals)
	})
	t.Run("duration", func(t *testing.T) {
		checkTextRoundTrip(t, []string{
			"PT0S",
			"P1Y2M3W4DT5H6M7.00800901S",
			"-PT0.000000001S",
			"P4294967295Y",
			"PT9007199254740991S",
		}, temporal.ParseDuration, func(a, b temporal.Duration) bool { return a == b })
	})
}

var roundingModes = []temporal.RoundingMode{
	temporal.Ceil, temporal.Floor, temporal.Expand, temporal.Trunc,
	temporal.HalfCeil, temporal.HalfFloor, temporal.HalfExpand, temporal.HalfTrunc, temporal.HalfEven,
}

type increment struct {
	unit temporal.Unit
	n    int64
}

// checkRoundIdempotent requires that rounding an already rounded value
// leaves it unchanged, in every mode.
func checkRoundIdempotent[T fmt.Stringer](t *testing.T, values []T, incs []increment, round func(T, temporal.RoundOptions) (T, error), equal func(a, b T) bool) {
	t.Helper()
	for _, v := range values {
		for _, inc := range incs {
			for _, mode := range roundingModes {
				opts := temporal.RoundOptions{SmallestUnit: inc.unit, RoundingIncrement: inc.n, RoundingMode: mode}
				once, err := round(v, opts)
				require.NoError(t, err, "%s %v", v, opts)
				twice, err := round(once, opts)
				require.NoError(t, err, "%s %v", once, opts)
				require.True(t, equal(once, twice), "%s %v: %s then %s", v, opts, once, twice)
			}
		}
	}
}

func TestRoundIdempotent(t *testing.T) {
	timeIncrements := []increment{
		{temporal.Hour, 6},
		{temporal.Minute, 15},
		{temporal.Second, 10},
		{temporal.Millisecond, 250},
		{temporal.Microsecond, 1},
		{temporal.Nanosecond, 1},
	}
	t.Run("instant", func(t *testing.T) {
		values := []temporal.Instant{
			must(temporal.ParseInstant("2024-03-10T06:52:29.500000001Z")),
			must(temporal.ParseInstant("1969-12-31T23:59:59.5Z")),
			must(temporal.ParseInstant("1970-01-01T00:00Z")),
		}
		incs := append([]increment{{temporal.Hour, 3}, {temporal.Minute, 30}, {temporal.Second, 45}}, timeIncrements...)
		checkRoundIdempotent(t, values, incs, temporal.Instant.Round, temporal.Instant.Equals)
	})
	t.Run("zoned", func(t *testing.T) {
		values := []temporal.ZonedDateTime{
			must(parseZoned("2024-03-10T12:45:30.25-04:00[America/New_York]")),
			must(parseZoned("2024-11-03T01:30-05:00[America/New_York]")),
			must(parseZoned("1850-01-01T11:59:59.5-04:56:02[America/New_York]")),
		}
		incs := append([]increment{{temporal.Day, 1}}, timeIncrements...)
		checkRoundIdempotent(t, values, incs, temporal.ZonedDateTime.Round, temporal.ZonedDateTime.Equals)
	})
	t.Run("datetime", func(t *testing.T) {
		values := []temporal.PlainDateTime{
			must(temporal.ParsePlainDateTime("2024-01-15T12:00:00.5")),
			must(temporal.ParsePlainDateTime("2024-02-29T23:59:59.999999999")),
			must(temporal.ParsePlainDateTime("-000001-06-30T06:07:08.009")),
		}
		incs := append([]increment{{temporal.Day, 1}}, timeIncrements...)
		checkRoundIdempotent(t, values, incs, temporal.PlainDateTime.Round, temporal.PlainDateTime.Equals)
	})
	t.Run("time", func(t *testing.T) {
		values := []temporal.PlainTime{
			must(temporal.ParsePlainTime("12:30:30")),
			must(temporal.ParsePlainTime("23:59:59.999999999")),
			must(temporal.ParsePlainTime("00:07:29.999")),
		}
		checkRoundIdempotent(t, values, timeIncrements, temporal.PlainTime.Round, temporal.PlainTime.Equals)
	})
	t.Run("duration", func(t *testing.T) {
		values := []temporal.Duration{
			must(temporal.ParseDuration("PT1H29M30.5S")),
			must(temporal.ParseDuration("-PT1H29M30.5S")),
			must(temporal.ParseDuration("P1DT12H0.000000001S")),
			must(temporal.ParseDuration("PT0S")),
		}
		round := func(d temporal.Duration, o temporal.RoundOptions) (temporal.Duration, error) {
			return d.Round(temporal.DurationRoundOptions{
				SmallestUnit:      o.SmallestUnit,
				RoundingIncrement: o.RoundingIncrement,
				RoundingMode:      o.RoundingMode,
			})
		}
		incs := append([]increment{{temporal.Day, 1}}, timeIncrements...)
		checkRoundIdempotent(t, values, incs, round, func(a, b temporal.Duration) bool { return a == b })
	})
}

// checkOrdering requires cmp to be reflexive, antisymmetric and transitive
// over values.
func checkOrdering[T any](t *testing.T, values []T, cmp func(a, b T) int) {
	t.Helper()
	for _, a := range values {
		require.Zero(t, cmp(a, a), "%v", a)
		for _, b := range values {
			require.Equal(t, cmp(a, b), -cmp(b, a), "%v %v", a, b)
			for _, c := range values {
				if cmp(a, b) <= 0 && cmp(b, c) <= 0 {
					require.LessOrEqual(t, cmp(a, c), 0, "%v %v %v", a, b, c)
				}
			}
		}
	}
}

func TestCompareOrdering(t *testing.T) {
	t.Run("instant", func(t *testing.T) {
		checkOrdering(t, []temporal.Instant{
			must(temporal.ParseInstant("2024-01-15T12:00Z")),
			must(temporal.ParseInstant("2024-01-15T13:00+01:00")),
			must(temporal.ParseInstant("1969-12-31T23:59:59.999999999Z")),
			must(temporal.ParseInstant("-271821-04-20T00:00Z")),
			must(temporal.ParseInstant("+275760-09-13T00:00Z")),
		}, temporal.CompareInstant)
	})
	t.Run("zoned", func(t *testing.T) {
		checkOrdering(t, []temporal.ZonedDateTime{
			must(parseZoned("2024-11-03T01:30-04:00[America/New_York]")),
			must(parseZoned("2024-11-03T01:30-05:00[America/New_York]")),
			must(parseZoned("2024-11-03T06:00+00:00[UTC]")),
			must(parseZoned("2024-11-03T15:30+09:00[Asia/Tokyo]")),
		}, temporal.CompareZonedDateTime)
	})
	t.Run("date", func(t *testing.T) {
		checkOrdering(t, []temporal.PlainDate{
			date(t, "2024-02-29"),
			date(t, "2024-03-01"),
			date(t, "-000001-12-31"),
			date(t, "0000-01-01"),
		}, temporal.ComparePlainDate)
	})
	t.Run("time", func(t *testing.T) {
		checkOrdering(t, []temporal.PlainTime{
			must(temporal.ParsePlainTime("00:00")),
			must(temporal.ParsePlainTime("12:00:00.000000001")),
			must(temporal.ParsePlainTime("12:00")),
			must(temporal.ParsePlainTime("23:59:59.999999999")),
		}, temporal.ComparePlainTime)
	})
	t.Run("datetime", func(t *testing.T) {
		checkOrdering(t, []temporal.PlainDateTime{
			must(temporal.ParsePlainDateTime("2024-01-15T12:00")),
			must(temporal.ParsePlainDateTime("2024-01-15T12:00:00.000000001")),
			must(temporal.ParsePlainDateTime("2024-01-14T23:59")),
			must(temporal.ParsePlainDateTime("2024-01-15T12:00[u-ca=gregory]")),
		}, temporal.ComparePlainDateTime)
	})
	t.Run("yearmonth", func(t *testing.T) {
		checkOrdering(t, []temporal.PlainYearMonth{
			must(temporal.ParsePlainYearMonth("2024-02")),
			must(temporal.ParsePlainYearMonth("2023-12")),
			must(temporal.ParsePlainYearMonth("+275760-09")),
		}, temporal.ComparePlainYearMonth)
	})
	t.Run("duration", func(t *testing.T) {
		rel := date(t, "2024-02-01")
		checkOrdering(t, []temporal.Duration{
			duration(t, "P1M"),
			duration(t, "P30D"),
			duration(t, "P29D"),
			duration(t, "PT696H"),
			duration(t, "-P1D"),
			duration(t, "PT0S"),
		}, func(a, b temporal.Duration) int { return must(temporal.CompareDuration(a, b, rel)) })
	})
}
