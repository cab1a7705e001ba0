// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpanNormalization(t *testing.T) {
	require.Equal(t, timeSpan{-1, 999_999_999}, nanosSpan(-1))
	require.Equal(t, timeSpan{2, 500_000_000}, spanOf(1, 1_500_000_000))
	require.Equal(t, timeSpan{-2, 500_000_000}, spanOf(-1, -500_000_000))
	require.Equal(t, timeSpan{0, 0}, spanOf(1, -1e9))

	a := timeSpan{5, 100}
	require.Equal(t, timeSpan{-6, 999_999_900}, a.neg())
	require.Equal(t, a, a.neg().neg())
	require.Equal(t, a, a.neg().abs())
	require.Equal(t, -1, a.neg().sign())
	require.Equal(t, timeSpan{0, 0}, a.add(a.neg()))
	require.Equal(t, timeSpan{4, 999_999_999}, a.addNanos(-101))
}

func TestSpanBig(t *testing.T) {
	for _, s := range []string{"0", "-1", "8640000000000000000000", "-8640000000000000000000", "1999999999"} {
		n, _ := new(big.Int).SetString(s, 10)
		require.Equal(t, s, spanFromBig(n).big().String())
	}
	_, ok := timeSpan{maxInstantSeconds, 0}.nanos()
	require.False(t, ok)
	ns, ok := nanosSpan(-42).nanos()
	require.True(t, ok)
	require.Equal(t, int64(-42), ns)
}

func TestSpanRound(t *testing.T) {
	for _, test := range []struct {
		span timeSpan
		inc  int64
		mode RoundingMode
		want timeSpan
	}{
		{timeSpan{1, 500_000_000}, 1e9, HalfExpand, timeSpan{2, 0}},
		{timeSpan{1, 500_000_000}, 1e9, HalfEven, timeSpan{2, 0}},
		{timeSpan{2, 500_000_000}, 1e9, HalfEven, timeSpan{2, 0}},
		{timeSpan{1, 500_000_000}, 1e9, Trunc, timeSpan{1, 0}},
		{nanosSpan(-1_500_000_000), 1e9, HalfExpand, timeSpan{-2, 0}},
		{nanosSpan(-1_500_000_000), 1e9, HalfCeil, timeSpan{-1, 0}},
		{nanosSpan(-1_500_000_000), 1e9, Floor, timeSpan{-2, 0}},
		{nanosSpan(-1_500_000_000), 1e9, Ceil, timeSpan{-1, 0}},
		{timeSpan{5399, 0}, 3600e9, HalfExpand, timeSpan{3600, 0}},
		{timeSpan{5400, 0}, 3600e9, HalfExpand, timeSpan{7200, 0}},
		{timeSpan{1, 1}, 1, Ceil, timeSpan{1, 1}},
	} {
		require.Equal(t, test.want, test.span.round(test.inc, test.mode), "%v / %d %v", test.span, test.inc, test.mode)
	}
}

func TestSpanDiv(t *testing.T) {
	q, r := timeSpan{3661, 5}.div(3600e9)
	require.Equal(t, int64(1), q)
	require.Equal(t, timeSpan{61, 5}, r)

	q, r = timeSpan{-3661, 0}.div(3600e9)
	require.Equal(t, int64(-1), q)
	require.Equal(t, timeSpan{-61, 0}, r)

	require.Equal(t, 1.5, timeSpan{5400, 0}.total(3600e9))
	require.Equal(t, 0.25, timeSpan{21600, 0}.ratio(timeSpan{86400, 0}))
}

func TestSplitDays(t *testing.T) {
	days, ns := splitDays(timeSpan{86400 + 3600, 7})
	require.Equal(t, int64(1), days)
	require.Equal(t, int64(3600e9+7), ns)

	days, ns = splitDays(timeSpan{-1, 0})
	require.Equal(t, int64(-1), days)
	require.Equal(t, int64(86399e9), ns)
}

func TestRangeChecks(t *testing.T) {
	require.NoError(t, checkInstant(timeSpan{maxInstantSeconds, 0}))
	require.Error(t, checkInstant(timeSpan{maxInstantSeconds, 1}))
	require.NoError(t, checkInstant(timeSpan{-maxInstantSeconds, 0}))
	require.Error(t, checkInstant(timeSpan{-maxInstantSeconds - 1, 999_999_999}))

	require.NoError(t, checkDateTime(timeSpan{maxInstantSeconds + 86399, 999_999_999}))
	require.Error(t, checkDateTime(timeSpan{maxInstantSeconds + 86400, 0}))
	require.Error(t, checkDateTime(timeSpan{-maxInstantSeconds - 86400, 0}))
}
