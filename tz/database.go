// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tz

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/startemporal/temporal/errors"
)

// Instants beyond this many seconds from the epoch are outside the
// supported span (±10^8 days).
const maxEpochSeconds = 8_640_000_000_000

// maxTransitionSteps bounds the number of zone periods inspected when a
// period boundary changes only the abbreviation, not the offset.
const maxTransitionSteps = 64

// Database is a Resolver backed by the Go runtime zone database.
// Locations are loaded on first use and cached; concurrent misses may
// load the same zone twice but only one result is kept.
type Database struct {
	locations sync.Map // canonical id -> *zone
}

type zone struct {
	id    string
	loc   *time.Location
	fixed bool
}

// Default is the process-wide database.
var Default = &Database{}

// NewDatabase returns an empty Database.
func NewDatabase() *Database { return &Database{} }

func (db *Database) zone(id string) (*zone, error) {
	if z, ok := db.locations.Load(id); ok {
		return z.(*zone), nil
	}
	z, err := loadZone(id)
	if err != nil {
		return nil, err
	}
	actual, _ := db.locations.LoadOrStore(id, z)
	if z.id != id {
		db.locations.LoadOrStore(z.id, actual)
	}
	return actual.(*zone), nil
}

func loadZone(id string) (*zone, error) {
	if id == "" {
		return nil, &errors.Error{Code: errors.UnknownTimeZone, Message: "empty time zone"}
	}
	if strings.EqualFold(id, "UTC") || strings.EqualFold(id, "Z") {
		return &zone{id: "UTC", loc: time.UTC, fixed: true}, nil
	}
	if id[0] == '+' || id[0] == '-' {
		off, err := ParseOffsetID(id)
		if err != nil {
			return nil, err
		}
		canon := FormatOffset(off)
		return &zone{id: canon, loc: time.FixedZone(canon, off), fixed: true}, nil
	}
	if id == "Local" {
		return nil, &errors.Error{Code: errors.UnknownTimeZone, Message: "unknown time zone", Token: id}
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, &errors.Error{Code: errors.UnknownTimeZone, Message: "unknown time zone", Token: id}
	}
	return &zone{id: loc.String(), loc: loc}, nil
}

// ParseOffsetID parses a fixed-offset zone identifier: ±HH, ±HHMM or
// ±HH:MM. Seconds are not permitted in zone identifiers.
func ParseOffsetID(id string) (int, error) {
	bad := &errors.Error{Code: errors.UnknownTimeZone, Message: "invalid offset time zone", Token: id}
	if len(id) < 3 {
		return 0, bad
	}
	sign := 1
	if id[0] == '-' {
		sign = -1
	} else if id[0] != '+' {
		return 0, bad
	}
	rest := strings.Replace(id[1:], ":", "", 1)
	if len(rest) != 2 && len(rest) != 4 || (len(id) == 6 && id[3] != ':') {
		return 0, bad
	}
	h, err := strconv.Atoi(rest[:2])
	if err != nil || h > 23 {
		return 0, bad
	}
	m := 0
	if len(rest) == 4 {
		m, err = strconv.Atoi(rest[2:])
		if err != nil || m > 59 {
			return 0, bad
		}
	}
	return sign * (h*3600 + m*60), nil
}

// Canonicalize implements Resolver.
func (db *Database) Canonicalize(id string) (string, error) {
	z, err := db.zone(id)
	if err != nil {
		return "", err
	}
	return z.id, nil
}

// OffsetAt implements Resolver.
func (db *Database) OffsetAt(id string, epochSeconds int64) (int, error) {
	z, err := db.zone(id)
	if err != nil {
		return 0, err
	}
	return z.offsetAt(epochSeconds), nil
}

func (z *zone) offsetAt(sec int64) int {
	_, off := time.Unix(sec, 0).In(z.loc).Zone()
	return off
}

// OffsetsFor implements Resolver. The offsets a day either side of the
// local time bracket any transition near it; each is kept if it maps the
// local time back onto itself.
func (db *Database) OffsetsFor(id string, localSeconds int64) (Candidates, error) {
	z, err := db.zone(id)
	if err != nil {
		return Candidates{}, err
	}
	if z.fixed {
		return UniqueOffset(z.offsetAt(localSeconds)), nil
	}
	before := z.offsetAt(localSeconds - 86400)
	after := z.offsetAt(localSeconds + 86400)
	var valid []int
	for _, off := range []int{before, after} {
		if len(valid) == 1 && valid[0] == off {
			continue
		}
		if z.offsetAt(localSeconds-int64(off)) == off {
			valid = append(valid, off)
		}
	}
	switch len(valid) {
	case 0:
		return GapOffsets(before, after), nil
	case 1:
		return UniqueOffset(valid[0]), nil
	}
	// The larger offset yields the earlier instant.
	if valid[0] < valid[1] {
		valid[0], valid[1] = valid[1], valid[0]
	}
	return OverlapOffsets(valid[0], valid[1]), nil
}

// TransitionNear implements Resolver.
func (db *Database) TransitionNear(id string, epochSeconds, nanos int64, dir Direction) (int64, bool, error) {
	z, err := db.zone(id)
	if err != nil {
		return 0, false, err
	}
	if z.fixed {
		return 0, false, nil
	}
	if dir == Next {
		t := time.Unix(epochSeconds, 0).In(z.loc)
		off := z.offsetAt(epochSeconds)
		for i := 0; i < maxTransitionSteps; i++ {
			_, end := t.ZoneBounds()
			if end.IsZero() || end.Unix() > maxEpochSeconds {
				return 0, false, nil
			}
			if z.offsetAt(end.Unix()) != off {
				return end.Unix(), true, nil
			}
			t = end
		}
		return 0, false, nil
	}

	// A transition at second s is strictly before the instant iff s <= probe.
	probe := epochSeconds
	if nanos == 0 {
		probe--
	}
	for i := 0; i < maxTransitionSteps; i++ {
		start, _ := time.Unix(probe, 0).In(z.loc).ZoneBounds()
		if start.IsZero() || start.Unix() < -maxEpochSeconds {
			return 0, false, nil
		}
		s := start.Unix()
		if z.offsetAt(s) != z.offsetAt(s-1) {
			return s, true, nil
		}
		probe = s - 1
	}
	return 0, false, nil
}
