// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

import (
	"math/big"

	"github.com/startemporal/temporal/errors"
	"github.com/startemporal/temporal/internal/rounding"
)

// timeSpan is an exact signed span of time, normalized so that
// 0 <= nsec < 1e9. It holds epoch times, local times (epoch times of the
// wall clock read as UTC) and the time part of durations, all of which
// exceed the int64 nanosecond range.
type timeSpan struct {
	sec, nsec int64
}

// Largest supported magnitudes.
const (
	maxInstantSeconds  = 8_640_000_000_000
	maxDurationSeconds = 1<<53 - 1
)

func spanOf(sec, nsec int64) timeSpan {
	sec += nsec / 1e9
	nsec %= 1e9
	if nsec < 0 {
		nsec += 1e9
		sec--
	}
	return timeSpan{sec, nsec}
}

func nanosSpan(ns int64) timeSpan { return spanOf(0, ns) }

// unitSpan returns v units of the given length, failing when the result
// exceeds the duration limit.
func unitSpan(v, unitNanos int64) (timeSpan, bool) {
	if unitNanos >= 1e9 {
		unitSec := unitNanos / 1e9
		if v > maxDurationSeconds/unitSec || v < -maxDurationSeconds/unitSec {
			return timeSpan{}, false
		}
		return timeSpan{v * unitSec, 0}, true
	}
	per := 1e9 / unitNanos
	return spanOf(v/per, v%per*unitNanos), true
}

func (a timeSpan) add(b timeSpan) timeSpan { return spanOf(a.sec+b.sec, a.nsec+b.nsec) }
func (a timeSpan) sub(b timeSpan) timeSpan { return spanOf(a.sec-b.sec, a.nsec-b.nsec) }
func (a timeSpan) neg() timeSpan           { return spanOf(-a.sec, -a.nsec) }
func (a timeSpan) addNanos(ns int64) timeSpan {
	return spanOf(a.sec+ns/1e9, a.nsec+ns%1e9)
}

func (a timeSpan) sign() int {
	switch {
	case a.sec < 0:
		return -1
	case a.sec > 0 || a.nsec > 0:
		return 1
	}
	return 0
}

func (a timeSpan) abs() timeSpan {
	if a.sign() < 0 {
		return a.neg()
	}
	return a
}

func (a timeSpan) isZero() bool { return a.sec == 0 && a.nsec == 0 }

func (a timeSpan) cmp(b timeSpan) int {
	switch {
	case a.sec < b.sec:
		return -1
	case a.sec > b.sec:
		return 1
	case a.nsec < b.nsec:
		return -1
	case a.nsec > b.nsec:
		return 1
	}
	return 0
}

var bigBillion = big.NewInt(1e9)

func (a timeSpan) big() *big.Int {
	n := new(big.Int).Mul(big.NewInt(a.sec), bigBillion)
	return n.Add(n, big.NewInt(a.nsec))
}

func spanFromBig(n *big.Int) timeSpan {
	q, r := new(big.Int).DivMod(n, bigBillion, new(big.Int))
	return timeSpan{q.Int64(), r.Int64()}
}

// round rounds a to a multiple of inc nanoseconds.
func (a timeSpan) round(inc int64, m rounding.Mode) timeSpan {
	if inc == 1 {
		return a
	}
	neg := a.sign() < 0
	mag := a.abs().big()
	d := big.NewInt(inc)
	q, r := new(big.Int).QuoRem(mag, d, new(big.Int))
	if r.Sign() != 0 {
		other := new(big.Int).Sub(d, r)
		if rounding.Away(m.ForSign(neg), r.Cmp(other), q.Bit(0) == 0) {
			q.Add(q, big.NewInt(1))
		}
	}
	out := spanFromBig(q.Mul(q, d))
	if neg {
		return out.neg()
	}
	return out
}

// div returns a / unit truncated toward zero, and the remainder.
func (a timeSpan) div(unitNanos int64) (int64, timeSpan) {
	q, r := new(big.Int).QuoRem(a.big(), big.NewInt(unitNanos), new(big.Int))
	return q.Int64(), spanFromBig(r)
}

// total returns a / unit as a float.
func (a timeSpan) total(unitNanos int64) float64 {
	f, _ := new(big.Rat).SetFrac(a.big(), big.NewInt(unitNanos)).Float64()
	return f
}

// ratio returns a / b as a float.
func (a timeSpan) ratio(b timeSpan) float64 {
	f, _ := new(big.Rat).SetFrac(a.big(), b.big()).Float64()
	return f
}

// nanos returns a in nanoseconds if it fits in an int64.
func (a timeSpan) nanos() (int64, bool) {
	n := a.big()
	return n.Int64(), n.IsInt64()
}

func checkInstant(s timeSpan) error {
	if s.sec < -maxInstantSeconds || s.sec > maxInstantSeconds || (s.sec == maxInstantSeconds && s.nsec > 0) {
		return errors.New(errors.RangeError, "instant outside of supported range")
	}
	return nil
}

// checkDateTime validates a local time: strictly within a day of the
// instant limits.
func checkDateTime(local timeSpan) error {
	limit := timeSpan{maxInstantSeconds + 86400, 0}
	if local.cmp(limit) >= 0 || local.cmp(limit.neg()) <= 0 {
		return errors.New(errors.RangeError, "date-time outside of supported range")
	}
	return nil
}

// splitDays splits s into whole days, rounding toward negative infinity,
// and nanoseconds into the last day.
func splitDays(s timeSpan) (int64, int64) {
	days := s.sec / 86400
	if s.sec%86400 < 0 {
		days--
	}
	return days, (s.sec-days*86400)*1e9 + s.nsec
}
