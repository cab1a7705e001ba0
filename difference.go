// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal

// Calendar-aware differencing and rounding of differences.
//
// A difference is computed largest unit first: whole calendar units come
// from the calendar's DateUntil, the remainder is an exact time span.
// Rounding then "nudges" the smallest unit to a boundary measured against
// the real timeline (actual month and day lengths) and "bubbles" any
// resulting carry up into the larger units.

import (
	"github.com/startemporal/temporal/calendar"
	"github.com/startemporal/temporal/internal/rounding"
	"github.com/startemporal/temporal/tz"
)

// anchor is the starting point of a relative difference: a local
// date-time, plus a zone and its epoch time when zoned.
type anchor struct {
	dt    PlainDateTime
	zone  string
	epoch timeSpan
}

func (a anchor) zoned() bool { return a.zone != "" }

// at returns the point a + (y, m, w, d): an epoch time when zoned, a
// local time otherwise.
func (a anchor) at(y, m, w, d int64) (timeSpan, error) {
	date, err := a.dt.calendar().DateAdd(a.dt.date, y, m, w, d, calendar.Constrain)
	if err != nil {
		return timeSpan{}, err
	}
	local := localSpan(date, a.dt.ns)
	if !a.zoned() {
		return local, checkDateTime(local)
	}
	return epochFor(a.zone, local, tz.Compatible)
}

// add returns the point a + d.
func (a anchor) add(d Duration) (timeSpan, error) {
	if a.zoned() {
		return addZoned(a.epoch, a.zone, a.dt.cal, d, calendar.Constrain)
	}
	dt, err := a.dt.Add(d, calendar.Constrain)
	if err != nil {
		return timeSpan{}, err
	}
	return dt.local(), nil
}

// days returns the date part of d as a count of days from a.
func (a anchor) days(d Duration) (int64, error) {
	later, err := a.dt.calendar().DateAdd(a.dt.date, d.years, d.months, d.weeks, 0, calendar.Constrain)
	if err != nil {
		return 0, err
	}
	return later.EpochDays() - a.dt.date.EpochDays() + d.days, nil
}

// differenceTo returns the difference from a to a + d with the given
// largest unit, and the target point.
func (a anchor) differenceTo(d Duration, largest Unit) (internalDuration, timeSpan, error) {
	if a.zoned() {
		target, err := addZoned(a.epoch, a.zone, a.dt.cal, d, calendar.Constrain)
		if err != nil {
			return internalDuration{}, timeSpan{}, err
		}
		if !largest.isDate() {
			return internalDuration{time: target.sub(a.epoch)}, target, nil
		}
		diff, err := diffZoned(a.epoch, target, a.zone, a.dt.cal, largest)
		return diff, target, err
	}
	target, err := a.dt.Add(d, calendar.Constrain)
	if err != nil {
		return internalDuration{}, timeSpan{}, err
	}
	return diffDateTime(a.dt, target, largest), target.local(), nil
}

// diffDateTime returns the difference between two local date-times in
// the calendar of a.
func diffDateTime(a, b PlainDateTime, largest Unit) internalDuration {
	t := b.ns - a.ns
	timeSign := sign64(t)
	adjusted := b.date
	if dateSign := b.date.Compare(a.date); timeSign != 0 && timeSign == -dateSign {
		adjusted = adjusted.AddDays(int64(timeSign))
		t -= int64(timeSign) * nsPerDay
	}
	y, m, w, d := a.calendar().DateUntil(a.date, adjusted, largerUnit(largest, Day).dateUnit())
	out := internalDuration{y, m, w, d, nanosSpan(t)}
	if !largest.isDate() {
		out.time = out.time.add(timeSpan{d * 86400, 0})
		out.days = 0
	}
	return out
}

// diffZoned returns the difference between two epoch times as seen in
// zone: whole calendar days of local time, then an exact remainder.
func diffZoned(start, end timeSpan, zone string, cal calendar.Calendar, largest Unit) (internalDuration, error) {
	sign := end.sub(start).sign()
	if sign == 0 {
		return internalDuration{}, nil
	}
	startDate, startNs, err := localOf(start, zone)
	if err != nil {
		return internalDuration{}, err
	}
	endDate, endNs, err := localOf(end, zone)
	if err != nil {
		return internalDuration{}, err
	}
	if startDate == endDate {
		return internalDuration{time: end.sub(start)}, nil
	}
	maxCorrection := int64(1)
	if sign == 1 {
		maxCorrection = 2
	}
	correction := int64(0)
	if sign64(endNs-startNs) == -sign {
		correction++
	}
	var (
		mid  calendar.Date
		rest timeSpan
		ok   bool
	)
	for ; correction <= maxCorrection && !ok; correction++ {
		mid = endDate.AddDays(-correction * int64(sign))
		midEpoch, err := epochFor(zone, localSpan(mid, startNs), tz.Compatible)
		if err != nil {
			return internalDuration{}, err
		}
		rest = end.sub(midEpoch)
		ok = rest.sign() != -sign
	}
	y, m, w, d := calendar.OrISO(cal).DateUntil(startDate, mid, largerUnit(largest, Day).dateUnit())
	return internalDuration{y, m, w, d, rest}, nil
}

// nudged is the result of rounding the smallest unit of a difference.
type nudged struct {
	d        internalDuration
	epoch    timeSpan
	expanded bool
	total    float64
}

// roundRelative rounds a difference from a to dest.
func roundRelative(d internalDuration, dest timeSpan, a anchor, s differenceSettings) (internalDuration, error) {
	sign := d.sign()
	if sign == 0 || !s.rounds() {
		return d, nil
	}
	var (
		n   nudged
		err error
	)
	switch {
	case s.smallest.isCalendar() || (a.zoned() && s.smallest == Day):
		n, err = nudgeToCalendarUnit(sign, d, dest, a, s.smallest, s.inc, s.mode)
	case a.zoned() && s.largest.isDate():
		n, err = nudgeToZonedTime(sign, d, a, s.smallest, s.inc, s.mode)
	default:
		n = nudgeToDayOrTime(d, dest, s.largest, s.smallest, s.inc, s.mode)
	}
	if err != nil {
		return internalDuration{}, err
	}
	if n.expanded && s.smallest != Week {
		return bubble(sign, n.d, n.epoch, a, s.largest, largerUnit(s.smallest, Day))
	}
	return n.d, nil
}

// totalRelative expresses a difference from a to dest in unit.
func totalRelative(d internalDuration, dest timeSpan, a anchor, unit Unit) (float64, error) {
	if unit.isCalendar() || (a.zoned() && unit == Day) {
		sign := d.sign()
		if sign == 0 {
			return 0, nil
		}
		n, err := nudgeToCalendarUnit(sign, d, dest, a, unit, 1, Trunc)
		return n.total, err
	}
	t := d.time.add(timeSpan{d.days * 86400, 0})
	return t.total(unit.nanos()), nil
}

// nudgeToCalendarUnit rounds d to a multiple of inc calendar units,
// measuring progress between the two candidate boundaries on the
// timeline.
func nudgeToCalendarUnit(sign int, d internalDuration, dest timeSpan, a anchor, unit Unit, inc int64, mode RoundingMode) (nudged, error) {
	var r1 int64
	var start, end internalDuration
	step := inc * int64(sign)
	switch unit {
	case Year:
		r1 = rounding.Int(d.years, inc, Trunc)
		start = internalDuration{years: r1}
		end = internalDuration{years: r1 + step}
	case Month:
		r1 = rounding.Int(d.months, inc, Trunc)
		start = internalDuration{years: d.years, months: r1}
		end = internalDuration{years: d.years, months: r1 + step}
	case Week:
		cal := a.dt.calendar()
		weeksStart, err := cal.DateAdd(a.dt.date, d.years, d.months, 0, 0, calendar.Constrain)
		if err != nil {
			return nudged{}, err
		}
		_, _, w, _ := cal.DateUntil(weeksStart, weeksStart.AddDays(d.days), calendar.Weeks)
		r1 = rounding.Int(d.weeks+w, inc, Trunc)
		start = internalDuration{years: d.years, months: d.months, weeks: r1}
		end = internalDuration{years: d.years, months: d.months, weeks: r1 + step}
	default:
		r1 = rounding.Int(d.days, inc, Trunc)
		start = internalDuration{years: d.years, months: d.months, weeks: d.weeks, days: r1}
		end = internalDuration{years: d.years, months: d.months, weeks: d.weeks, days: r1 + step}
	}
	startEpoch, err := a.at(start.years, start.months, start.weeks, start.days)
	if err != nil {
		return nudged{}, err
	}
	endEpoch, err := a.at(end.years, end.months, end.weeks, end.days)
	if err != nil {
		return nudged{}, err
	}
	num := dest.sub(startEpoch)
	den := endEpoch.sub(startEpoch)
	n := nudged{total: float64(r1) + num.ratio(den)*float64(step)}
	var up bool
	switch {
	case num.isZero():
	case num.cmp(den) == 0:
		up = true
	default:
		half := num.abs().cmp(den.sub(num).abs())
		up = rounding.Away(mode.ForSign(sign < 0), half, (r1/inc)%2 == 0)
	}
	if up {
		n.d, n.epoch, n.expanded = end, endEpoch, true
	} else {
		n.d, n.epoch = start, startEpoch
	}
	return n, nil
}

// nudgeToZonedTime rounds the time part of d within the local day it
// falls on, carrying into days when rounding reaches the day's end.
func nudgeToZonedTime(sign int, d internalDuration, a anchor, unit Unit, inc int64, mode RoundingMode) (nudged, error) {
	start, err := a.at(d.years, d.months, d.weeks, d.days)
	if err != nil {
		return nudged{}, err
	}
	end, err := a.at(d.years, d.months, d.weeks, d.days+int64(sign))
	if err != nil {
		return nudged{}, err
	}
	unitInc := inc * unit.nanos()
	rounded := d.time.round(unitInc, mode)
	beyond := rounded.sub(end.sub(start))
	n := nudged{d: d}
	if beyond.sign() != -sign {
		n.expanded = true
		n.d.days += int64(sign)
		rounded = beyond.round(unitInc, mode)
		n.epoch = end.add(rounded)
	} else {
		n.epoch = start.add(rounded)
	}
	n.d.time = rounded
	return n, nil
}

// nudgeToDayOrTime rounds a plain difference counting days as 24 hours.
func nudgeToDayOrTime(d internalDuration, dest timeSpan, largest, unit Unit, inc int64, mode RoundingMode) nudged {
	t := d.time.add(timeSpan{d.days * 86400, 0})
	rounded := t.round(inc*unit.nanos(), mode)
	wholeDays, _ := t.div(nsPerDay)
	roundedDays, _ := rounded.div(nsPerDay)
	delta := roundedDays - wholeDays
	n := nudged{
		epoch:    dest.add(rounded.sub(t)),
		expanded: delta != 0 && sign64(delta) == t.sign(),
		d:        internalDuration{years: d.years, months: d.months, weeks: d.weeks, time: rounded},
	}
	if largest.isDate() {
		n.d.days = roundedDays
		n.d.time = rounded.sub(timeSpan{roundedDays * 86400, 0})
	}
	return n
}

// bubble carries a rounded difference into larger units while the
// rounded point reaches the next boundary of each.
func bubble(sign int, d internalDuration, epoch timeSpan, a anchor, largest, smallest Unit) (internalDuration, error) {
	if smallest == largest {
		return d, nil
	}
	for u := smallest + 1; u <= largest; u++ {
		if u == Week && largest != Week {
			continue
		}
		var end internalDuration
		switch u {
		case Year:
			end = internalDuration{years: d.years + int64(sign)}
		case Month:
			end = internalDuration{years: d.years, months: d.months + int64(sign)}
		case Week:
			end = internalDuration{years: d.years, months: d.months, weeks: d.weeks + int64(sign)}
		default:
			continue
		}
		endEpoch, err := a.at(end.years, end.months, end.weeks, end.days)
		if err != nil {
			return internalDuration{}, err
		}
		if epoch.sub(endEpoch).sign() == -sign {
			break
		}
		d = end
	}
	return d, nil
}

func sign64(x int64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
