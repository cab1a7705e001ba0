// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/startemporal/temporal"
	temporalerrors "github.com/startemporal/temporal/errors"
)

func instant(t *testing.T, s string) temporal.Instant {
	t.Helper()
	return must(temporal.ParseInstant(s))
}

func TestParseInstant(t *testing.T) {
	require.Equal(t, "2019-12-31T23:00:00Z", instant(t, "2020-01-01T00:00:00+01:00").String())
	require.Equal(t, "2020-01-01T00:00:00.000000001Z", instant(t, "2020-01-01T00:00:00.000000001Z").String())
	require.Equal(t, "2020-01-01T05:30:00Z", instant(t, "2020-01-01T00:00-05:30[America/New_York]").String())

	_, err := temporal.ParseInstant("2020-01-01T00:00:00")
	requireCode(t, err, temporalerrors.ParseError)
	_, err = temporal.ParseInstant("2020-02-30T00:00:00Z")
	requireCode(t, err, temporalerrors.ParseError)
}

func TestInstantEpoch(t *testing.T) {
	i := temporal.InstantFromEpochNanoseconds(-1)
	require.Equal(t, int64(-1), i.EpochMilliseconds())
	require.Equal(t, "-1", i.EpochNanoseconds().String())
	require.Equal(t, "1969-12-31T23:59:59.999999999Z", i.String())

	ms := must(temporal.InstantFromEpochMilliseconds(-1))
	require.Equal(t, int64(-1), ms.EpochMilliseconds())
	require.Equal(t, "-1000000", ms.EpochNanoseconds().String())

	limit := new(big.Int).Mul(big.NewInt(864e10), big.NewInt(1e9))
	hi := must(temporal.NewInstant(limit))
	require.Equal(t, "+275760-09-13T00:00:00Z", hi.String())
	_, err := temporal.NewInstant(new(big.Int).Add(limit, big.NewInt(1)))
	requireCode(t, err, temporalerrors.RangeError)
	lo := must(temporal.NewInstant(new(big.Int).Neg(limit)))
	require.Equal(t, "-271821-04-20T00:00:00Z", lo.String())

	now := time.Date(2024, time.May, 1, 12, 0, 0, 123, time.UTC)
	require.True(t, now.Equal(must(temporal.InstantFromTime(now)).Time()))
}

func TestInstantArithmetic(t *testing.T) {
	i := instant(t, "2024-01-01T00:00:00Z")
	require.Equal(t, "2024-01-01T01:30:00Z", must(i.Add(duration(t, "PT1H30M"))).String())
	require.Equal(t, "2023-12-31T22:30:00Z", must(i.Subtract(duration(t, "PT1H30M"))).String())
	require.Equal(t, "2024-01-02T00:00:00Z", must(i.Add(duration(t, "PT24H"))).String())

	for _, d := range []string{"P1D", "P1W", "P1M", "P1Y"} {
		_, err := i.Add(duration(t, d))
		requireCode(t, err, temporalerrors.RangeError)
	}

	_, err := must(temporal.NewInstant(new(big.Int).Mul(big.NewInt(864e10), big.NewInt(1e9)))).Add(duration(t, "PT1S"))
	requireCode(t, err, temporalerrors.RangeError)
}

func TestInstantUntil(t *testing.T) {
	a := instant(t, "2024-01-01T00:00:00Z")
	b := instant(t, "2024-01-01T01:30:00.5Z")
	require.Equal(t, "PT5400.5S", must(a.Until(b, temporal.DifferenceOptions{})).String())
	require.Equal(t, "PT1H30M0.5S", must(a.Until(b, temporal.DifferenceOptions{LargestUnit: temporal.Hour})).String())
	require.Equal(t, "-PT5400.5S", must(a.Since(b, temporal.DifferenceOptions{})).String())
	require.Equal(t, "PT90M", must(a.Until(b, temporal.DifferenceOptions{SmallestUnit: temporal.Minute})).String())
	require.Equal(t, "PT91M", must(a.Until(b, temporal.DifferenceOptions{SmallestUnit: temporal.Minute, RoundingMode: temporal.Ceil})).String())

	_, err := a.Until(b, temporal.DifferenceOptions{LargestUnit: temporal.Day})
	requireCode(t, err, temporalerrors.InvalidArgument)
}

func TestInstantRound(t *testing.T) {
	i := instant(t, "1970-01-01T04:00:00Z")
	got := must(i.Round(temporal.RoundOptions{SmallestUnit: temporal.Hour, RoundingIncrement: 6}))
	require.Equal(t, "1970-01-01T06:00:00Z", got.String())

	got = must(i.Round(temporal.RoundOptions{SmallestUnit: temporal.Hour, RoundingIncrement: 24}))
	require.Equal(t, "1970-01-01T00:00:00Z", got.String())

	_, err := i.Round(temporal.RoundOptions{SmallestUnit: temporal.Hour, RoundingIncrement: 7})
	requireCode(t, err, temporalerrors.InvalidRoundingIncrement)

	_, err = i.Round(temporal.RoundOptions{})
	requireCode(t, err, temporalerrors.InvalidArgument)
}

func TestInstantFormat(t *testing.T) {
	i := instant(t, "1970-01-01T00:00:00Z")
	require.Equal(t, "1970-01-01T05:30:00+05:30", must(i.Format(temporal.ToStringOptions{TimeZone: "Asia/Kolkata"})))
	require.Equal(t, "1970-01-01T00:00Z", must(i.Format(temporal.ToStringOptions{SmallestUnit: temporal.Minute})))

	_, err := i.Format(temporal.ToStringOptions{TimeZone: "Nowhere/Special"})
	requireCode(t, err, temporalerrors.UnknownTimeZone)
}

func TestCompareInstant(t *testing.T) {
	a, b := instant(t, "2024-01-01T00:00:00Z"), instant(t, "2024-01-01T00:00:00.000000001Z")
	require.Equal(t, -1, temporal.CompareInstant(a, b))
	require.Equal(t, 1, temporal.CompareInstant(b, a))
	require.Equal(t, 0, temporal.CompareInstant(a, a))
	require.True(t, a.Equals(instant(t, "2024-01-01T01:00:00+01:00")))
}
