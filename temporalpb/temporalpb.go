// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package temporalpb converts between temporal values and the
// well-known protocol buffer types google.protobuf.Timestamp and
// google.protobuf.Duration.
//
// Both protobuf types cover a narrower range than their temporal
// counterparts: a Timestamp must lie in years 1 to 9999, and a Duration
// within about ±10,000 years. Conversions outside that range fail with
// a RangeError.
package temporalpb // import "github.com/startemporal/temporal/temporalpb"

import (
	"math/big"

	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/errors"
)

var billion = big.NewInt(1e9)

// FromInstant returns the Timestamp of i.
func FromInstant(i temporal.Instant) (*timestamppb.Timestamp, error) {
	sec, nsec := new(big.Int).DivMod(i.EpochNanoseconds(), billion, new(big.Int))
	ts := &timestamppb.Timestamp{Seconds: sec.Int64(), Nanos: int32(nsec.Int64())}
	if err := ts.CheckValid(); err != nil {
		return nil, errors.New(errors.RangeError, "%s: %v", i, err)
	}
	return ts, nil
}

// ToInstant returns the instant of ts.
func ToInstant(ts *timestamppb.Timestamp) (temporal.Instant, error) {
	if err := ts.CheckValid(); err != nil {
		return temporal.Instant{}, errors.New(errors.RangeError, "%v", err)
	}
	n := new(big.Int).Mul(big.NewInt(ts.GetSeconds()), billion)
	return temporal.NewInstant(n.Add(n, big.NewInt(int64(ts.GetNanos()))))
}

// FromZonedDateTime returns the Timestamp of z's instant.
func FromZonedDateTime(z temporal.ZonedDateTime) (*timestamppb.Timestamp, error) {
	return FromInstant(z.ToInstant())
}

// FromDuration returns the exact length of d. Days count as 24 hours;
// years, months and weeks have no fixed length and fail with
// RelativeToRequired.
func FromDuration(d temporal.Duration) (*durationpb.Duration, error) {
	secs, err := d.Round(temporal.DurationRoundOptions{
		LargestUnit:  temporal.Second,
		SmallestUnit: temporal.Nanosecond,
	})
	if err != nil {
		return nil, err
	}
	pb := &durationpb.Duration{
		Seconds: secs.Seconds(),
		Nanos:   int32(secs.Milliseconds()*1e6 + secs.Microseconds()*1e3 + secs.Nanoseconds()),
	}
	if err := pb.CheckValid(); err != nil {
		return nil, errors.New(errors.RangeError, "%s: %v", d, err)
	}
	return pb, nil
}

// ToDuration returns pb as a Duration balanced up to hours, such as
// "PT1H30M0.5S".
func ToDuration(pb *durationpb.Duration) (temporal.Duration, error) {
	if err := pb.CheckValid(); err != nil {
		return temporal.Duration{}, errors.New(errors.RangeError, "%v", err)
	}
	d, err := temporal.NewDuration(temporal.DurationFields{
		Seconds:     pb.GetSeconds(),
		Nanoseconds: int64(pb.GetNanos()),
	})
	if err != nil {
		return temporal.Duration{}, err
	}
	return d.Round(temporal.DurationRoundOptions{
		LargestUnit:  temporal.Hour,
		SmallestUnit: temporal.Nanosecond,
	})
}
