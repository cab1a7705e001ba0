// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"github.com/startemporal/temporal/internal/clock"
)

// A Clock supplies the current instant and the host time zone.
type Clock interface {
	Now() (Instant, error)
	TimeZoneID() string
}

// SystemClock reads the operating system's realtime clock.
type SystemClock struct{}

func (SystemClock) Now() (Instant, error) {
	sec, nsec, err := clock.Now()
	if err != nil {
		return Instant{}, err
	}
	epoch := timeSpan{sec, nsec}
	return Instant{epoch}, checkInstant(epoch)
}

func (SystemClock) TimeZoneID() string { return clock.ZoneID() }

// FixedClock always reports the same instant and zone.
type FixedClock struct {
	Instant Instant
	Zone    string
}

func (c FixedClock) Now() (Instant, error) { return c.Instant, nil }

func (c FixedClock) TimeZoneID() string {
	if c.Zone == "" {
		return "UTC"
	}
	return c.Zone
}

// CurrentClock is consulted by the Now functions.
var CurrentClock Clock = SystemClock{}

// NowInstant returns the current instant.
func NowInstant() (Instant, error) { return CurrentClock.Now() }

// NowTimeZoneID returns the canonical identifier of the host zone, or
// "UTC" if the host zone is unknown.
func NowTimeZoneID() string { return ClockTimeZoneID(CurrentClock) }

// ClockTimeZoneID is NowTimeZoneID for a specific clock.
func ClockTimeZoneID(c Clock) string {
	id, err := TimeZones.Canonicalize(c.TimeZoneID())
	if err != nil {
		return "UTC"
	}
	return id
}

// NowZonedDateTimeISO returns the current instant in zone, or in the host
// zone if zone is empty.
func NowZonedDateTimeISO(zone string) (ZonedDateTime, error) {
	return ClockZonedDateTimeISO(CurrentClock, zone)
}

// ClockZonedDateTimeISO is NowZonedDateTimeISO for a specific clock.
func ClockZonedDateTimeISO(c Clock, zone string) (ZonedDateTime, error) {
	if zone == "" {
		zone = ClockTimeZoneID(c)
	}
	i, err := c.Now()
	if err != nil {
		return ZonedDateTime{}, err
	}
	return i.ToZonedDateTimeISO(zone)
}

// NowPlainDateTimeISO returns the current wall-clock date and time in zone.
func NowPlainDateTimeISO(zone string) (PlainDateTime, error) {
	z, err := NowZonedDateTimeISO(zone)
	if err != nil {
		return PlainDateTime{}, err
	}
	return z.ToPlainDateTime(), nil
}

// NowPlainDateISO returns the current date in zone.
func NowPlainDateISO(zone string) (PlainDate, error) {
	dt, err := NowPlainDateTimeISO(zone)
	return dt.ToPlainDate(), err
}

// NowPlainTimeISO returns the current wall-clock time in zone.
func NowPlainTimeISO(zone string) (PlainTime, error) {
	dt, err := NowPlainDateTimeISO(zone)
	return dt.ToPlainTime(), err
}
