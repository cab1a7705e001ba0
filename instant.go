// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"math/big"
	"time"

	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/isolex"
	"github.com/startemporal/temporal/tz"
)

// An Instant is an exact point on the timeline, independent of calendar
// and zone, with nanosecond precision. Instants lie within 10^8 days of
// the Unix epoch.
type Instant struct {
	epoch timeSpan
}

// NewInstant returns the instant ns nanoseconds after the Unix epoch.
func NewInstant(ns *big.Int) (Instant, error) {
	if new(big.Int).Abs(ns).Cmp(maxEpochNanos) > 0 {
		return Instant{}, errors.New(errors.RangeError, "instant outside of supported range")
	}
	return Instant{spanFromBig(ns)}, nil
}

var maxEpochNanos = new(big.Int).Mul(big.NewInt(maxInstantSeconds), bigBillion)

// InstantFromEpochNanoseconds is NewInstant for int64 nanoseconds.
func InstantFromEpochNanoseconds(ns int64) Instant { return Instant{nanosSpan(ns)} }

// InstantFromEpochMilliseconds returns the instant ms milliseconds after
// the Unix epoch.
func InstantFromEpochMilliseconds(ms int64) (Instant, error) {
	epoch := spanOf(ms/1e3, ms%1e3*1e6)
	return Instant{epoch}, checkInstant(epoch)
}

// InstantFromTime converts a time.Time.
func InstantFromTime(t time.Time) (Instant, error) {
	epoch := timeSpan{t.Unix(), int64(t.Nanosecond())}
	return Instant{epoch}, checkInstant(epoch)
}

// ParseInstant parses a date-time with a required UTC offset or "Z".
// Annotations other than the calendar are ignored.
func ParseInstant(s string) (Instant, error) {
	r, err := isolex.ParseDateTime(s)
	if err != nil {
		return Instant{}, err
	}
	if !r.HasOffset {
		return Instant{}, errors.Parse(s, "an instant requires a UTC offset or Z")
	}
	if _, err := calendarOf(r); err != nil {
		return Instant{}, err
	}
	d, err := calendar.Regulate(r.Year, r.Month, r.Day, calendar.Reject)
	if err != nil {
		return Instant{}, errors.Parse(s, "%v", err)
	}
	local := localSpan(d, timeOf(r.Time))
	if err := checkDateTime(local); err != nil {
		return Instant{}, err
	}
	epoch := local
	if !r.Offset.Z {
		epoch = local.addNanos(-r.Offset.Nanoseconds)
	}
	return Instant{epoch}, checkInstant(epoch)
}

// EpochMilliseconds returns the milliseconds since the Unix epoch,
// rounded toward negative infinity.
func (i Instant) EpochMilliseconds() int64 { return i.epoch.sec*1e3 + i.epoch.nsec/1e6 }

// EpochNanoseconds returns the nanoseconds since the Unix epoch.
func (i Instant) EpochNanoseconds() *big.Int { return i.epoch.big() }

// Time converts i to a time.Time in UTC.
func (i Instant) Time() time.Time { return time.Unix(i.epoch.sec, i.epoch.nsec).UTC() }

// Add returns i advanced by the time units of d. Years, months, weeks and
// days have no fixed length and fail with RangeError.
func (i Instant) Add(d Duration) (Instant, error) {
	if d.hasCalendarUnits() || d.days != 0 {
		return Instant{}, errors.New(errors.RangeError, "cannot add %s to an instant", d)
	}
	epoch := i.epoch.add(d.timePart())
	return Instant{epoch}, checkInstant(epoch)
}

// Subtract returns i moved back by the time units of d.
func (i Instant) Subtract(d Duration) (Instant, error) { return i.Add(d.Negated()) }

// Until returns the exact duration from i to j. Units range from
// nanoseconds to hours; the default largest unit is seconds.
func (i Instant) Until(j Instant, opts DifferenceOptions) (Duration, error) {
	return i.difference(j, opts, false)
}

// Since returns the exact duration from j to i.
func (i Instant) Since(j Instant, opts DifferenceOptions) (Duration, error) {
	return i.difference(j, opts, true)
}

func (i Instant) difference(j Instant, opts DifferenceOptions, since bool) (Duration, error) {
	s, err := opts.resolve(Nanosecond, Hour, Second, Nanosecond, since)
	if err != nil {
		return Duration{}, err
	}
	return exactDifference(i.epoch, j.epoch, s, since)
}

// exactDifference rounds the span from a to b and balances it.
func exactDifference(a, b timeSpan, s differenceSettings, since bool) (Duration, error) {
	diff := b.sub(a).round(s.inc*s.smallest.nanos(), s.mode)
	d, err := internalDuration{time: diff}.toDuration(s.largest)
	if since {
		d = d.Negated()
	}
	return d, err
}

// Round rounds i to a multiple of the smallest unit. The increment must
// divide a 24-hour day.
func (i Instant) Round(opts RoundOptions) (Instant, error) {
	u, inc, mode, err := opts.resolve(Hour, true)
	if err != nil {
		return Instant{}, err
	}
	epoch := i.epoch.round(inc*u.nanos(), mode)
	return Instant{epoch}, checkInstant(epoch)
}

// CompareInstant returns -1, 0 or +1.
func CompareInstant(a, b Instant) int { return a.epoch.cmp(b.epoch) }

// Equals reports whether i and j are the same instant.
func (i Instant) Equals(j Instant) bool { return i == j }

// ToZonedDateTimeISO returns i in zone with the ISO calendar.
func (i Instant) ToZonedDateTimeISO(zone string) (ZonedDateTime, error) {
	return i.ToZonedDateTime(zone, calendar.ISO)
}

// ToZonedDateTime returns i in zone and cal.
func (i Instant) ToZonedDateTime(zone string, cal calendar.Calendar) (ZonedDateTime, error) {
	zone, err := TimeZones.Canonicalize(zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return newZonedDateTime(i.epoch, zone, cal)
}

func (i Instant) String() string {
	s, _ := i.Format(ToStringOptions{})
	return s
}

// Format renders i in UTC with a "Z" suffix, or, if opts.TimeZone is set,
// as the local time and offset of that zone.
func (i Instant) Format(opts ToStringOptions) (string, error) {
	p, inc, err := opts.precision()
	if err != nil {
		return "", err
	}
	epoch := i.epoch.round(inc, opts.RoundingMode.Or(Trunc))
	if err := checkInstant(epoch); err != nil {
		return "", err
	}
	suffix := "Z"
	local := epoch
	if opts.TimeZone != "" {
		zone, err := TimeZones.Canonicalize(opts.TimeZone)
		if err != nil {
			return "", err
		}
		off, err := TimeZones.OffsetAt(zone, epoch.sec)
		if err != nil {
			return "", err
		}
		local = epoch.add(timeSpan{int64(off), 0})
		suffix = tz.FormatOffset(roundOffset(off))
	}
	date, ns := splitLocal(local)
	return date.String() + "T" + formatTime(ns, p) + suffix, nil
}

// MarshalText implements encoding.TextMarshaler.
func (i Instant) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Instant) UnmarshalText(text []byte) error {
	v, err := ParseInstant(string(text))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
