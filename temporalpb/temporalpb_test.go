// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporalpb_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/startemporal/temporal"
	temporalerrors "github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/temporalpb"
)

func TestInstantRoundTrip(t *testing.T) {
	for _, test := range []struct {
		text string
		want *timestamppb.Timestamp
	}{
		{"1970-01-01T00:00:00Z", &timestamppb.Timestamp{}},
		{"2024-03-10T07:00:00.5Z", &timestamppb.Timestamp{Seconds: 1710054000, Nanos: 5e8}},
		{"1969-12-31T23:59:59.999999999Z", &timestamppb.Timestamp{Seconds: -1, Nanos: 999999999}},
		{"0001-01-01T00:00:00Z", &timestamppb.Timestamp{Seconds: -62135596800}},
	} {
		i, err := temporal.ParseInstant(test.text)
		require.NoError(t, err)
		ts, err := temporalpb.FromInstant(i)
		require.NoError(t, err)
		if diff := cmp.Diff(test.want, ts, protocmp.Transform()); diff != "" {
			t.Errorf("FromInstant(%s) mismatch (-want +got):\n%s", test.text, diff)
		}
		back, err := temporalpb.ToInstant(ts)
		require.NoError(t, err)
		require.True(t, back.Equals(i), "%s != %s", back, i)
	}
}

func TestInstantOutOfRange(t *testing.T) {
	i, err := temporal.ParseInstant("+010000-01-01T00:00Z")
	require.NoError(t, err)
	_, err = temporalpb.FromInstant(i)
	require.Equal(t, temporalerrors.RangeError, temporalerrors.CodeOf(err))

	_, err = temporalpb.ToInstant(&timestamppb.Timestamp{Nanos: -1})
	require.Equal(t, temporalerrors.RangeError, temporalerrors.CodeOf(err))
}

func TestZonedDateTime(t *testing.T) {
	z, err := temporal.ParseZonedDateTime("2024-03-10T03:00-04:00[America/New_York]", temporal.ZonedOptions{})
	require.NoError(t, err)
	ts, err := temporalpb.FromZonedDateTime(z)
	require.NoError(t, err)
	require.Equal(t, int64(1710054000), ts.GetSeconds())
}

func TestDuration(t *testing.T) {
	for _, test := range []struct {
		in, back string
		want     *durationpb.Duration
	}{
		{"PT0S", "PT0S", &durationpb.Duration{}},
		{"PT1H30M0.5S", "PT1H30M0.5S", &durationpb.Duration{Seconds: 5400, Nanos: 5e8}},
		{"-PT1.5S", "-PT1.5S", &durationpb.Duration{Seconds: -1, Nanos: -5e8}},
		{"P1DT1S", "PT24H1S", &durationpb.Duration{Seconds: 86401}},
		{"PT0.000001S", "PT0.000001S", &durationpb.Duration{Nanos: 1000}},
	} {
		d, err := temporal.ParseDuration(test.in)
		require.NoError(t, err)
		pb, err := temporalpb.FromDuration(d)
		require.NoError(t, err)
		if diff := cmp.Diff(test.want, pb, protocmp.Transform()); diff != "" {
			t.Errorf("FromDuration(%s) mismatch (-want +got):\n%s", test.in, diff)
		}
		back, err := temporalpb.ToDuration(pb)
		require.NoError(t, err)
		require.Equal(t, test.back, back.String())
	}
}

func TestDurationErrors(t *testing.T) {
	d, err := temporal.ParseDuration("P1M")
	require.NoError(t, err)
	_, err = temporalpb.FromDuration(d)
	require.Equal(t, temporalerrors.RelativeToRequired, temporalerrors.CodeOf(err))

	d, err = temporal.ParseDuration("PT400000000000S")
	require.NoError(t, err)
	_, err = temporalpb.FromDuration(d)
	require.Equal(t, temporalerrors.RangeError, temporalerrors.CodeOf(err))

	_, err = temporalpb.ToDuration(&durationpb.Duration{Seconds: 1, Nanos: -1})
	require.Equal(t, temporalerrors.RangeError, temporalerrors.CodeOf(err))
}
