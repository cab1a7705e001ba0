// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tz resolves UTC offsets for time zones.
//
// A local date-time, expressed as seconds since the epoch as if the local
// wall clock were UTC ("local seconds"), maps to exactly one offset in
// ordinary time, to none inside a forward transition (a gap) and to two
// inside a backward transition (an overlap). OffsetsFor reports which of
// the three applies as a Candidates value, and Disambiguate chooses an
// instant from it according to a Disambiguation policy.
//
// Zone data comes from the Go runtime's zone database; this package only
// adds the lookups the value types need, plus a shared location cache.
package tz // import "github.com/startemporal/temporal/tz"

import (
	"fmt"

	"github.com/startemporal/temporal/errors"
)

// Kind tags a Candidates value.
type Kind int

const (
	// Unique means a single offset is in effect.
	Unique Kind = iota
	// Gap means the local time was skipped by a forward transition.
	Gap
	// Overlap means the local time occurs twice.
	Overlap
)

func (k Kind) String() string {
	switch k {
	case Gap:
		return "gap"
	case Overlap:
		return "overlap"
	}
	return "unique"
}

// Candidates is the set of offsets (in seconds east of UTC) that may apply
// to a local date-time. It is one of
//
//	Unique(offset)
//	Gap(before, after)      offsets in effect on either side of the gap
//	Overlap(earlier, later) offsets of the earlier and later instants
type Candidates struct {
	kind Kind
	a, b int
}

// UniqueOffset returns the Candidates for ordinary time.
func UniqueOffset(offset int) Candidates { return Candidates{kind: Unique, a: offset, b: offset} }

// GapOffsets returns the Candidates for a skipped local time.
func GapOffsets(before, after int) Candidates { return Candidates{kind: Gap, a: before, b: after} }

// OverlapOffsets returns the Candidates for a repeated local time.
func OverlapOffsets(earlier, later int) Candidates {
	return Candidates{kind: Overlap, a: earlier, b: later}
}

// Kind returns the variant tag.
func (c Candidates) Kind() Kind { return c.kind }

// Offsets returns the offsets that map the local time to itself: one for
// Unique, two (earlier instant first) for Overlap and none for Gap.
func (c Candidates) Offsets() []int {
	switch c.kind {
	case Unique:
		return []int{c.a}
	case Overlap:
		return []int{c.a, c.b}
	}
	return nil
}

// Bounds returns the two offsets carried by a Gap or Overlap, or the
// unique offset twice.
func (c Candidates) Bounds() (int, int) { return c.a, c.b }

func (c Candidates) String() string {
	switch c.kind {
	case Gap:
		return fmt.Sprintf("Gap(%s, %s)", FormatOffset(c.a), FormatOffset(c.b))
	case Overlap:
		return fmt.Sprintf("Overlap(%s, %s)", FormatOffset(c.a), FormatOffset(c.b))
	}
	return fmt.Sprintf("Unique(%s)", FormatOffset(c.a))
}

// Disambiguation selects an instant for an ambiguous local time.
type Disambiguation int

const (
	// Compatible picks the earlier instant in an overlap and shifts
	// forward by the gap length in a gap.
	Compatible Disambiguation = iota
	Earlier
	Later
	// Reject fails with AmbiguousTime for gaps and overlaps.
	Reject
)

var disambiguationNames = [...]string{"compatible", "earlier", "later", "reject"}

func (d Disambiguation) String() string { return disambiguationNames[d] }

// ParseDisambiguation parses a policy name. The empty string is Compatible.
func ParseDisambiguation(s string) (Disambiguation, error) {
	if s == "" {
		return Compatible, nil
	}
	for i, name := range disambiguationNames {
		if s == name {
			return Disambiguation(i), nil
		}
	}
	return 0, errors.New(errors.InvalidArgument, "invalid disambiguation %q", s)
}

// Disambiguate returns the epoch seconds chosen for localSeconds.
func Disambiguate(c Candidates, localSeconds int64, d Disambiguation) (int64, error) {
	switch c.kind {
	case Unique:
		return localSeconds - int64(c.a), nil
	case Overlap:
		switch d {
		case Compatible, Earlier:
			return localSeconds - int64(c.a), nil
		case Later:
			return localSeconds - int64(c.b), nil
		}
		return 0, errors.New(errors.AmbiguousTime, "local time is repeated by a zone transition (%s)", c)
	default:
		switch d {
		case Compatible, Later:
			return localSeconds - int64(c.a), nil
		case Earlier:
			return localSeconds - int64(c.b), nil
		}
		return 0, errors.New(errors.AmbiguousTime, "local time is skipped by a zone transition (%s)", c)
	}
}

// Direction selects the search direction of TransitionNear.
type Direction int

const (
	Next Direction = iota
	Previous
)

// ParseDirection parses "next" or "previous".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "next":
		return Next, nil
	case "previous":
		return Previous, nil
	}
	return 0, errors.New(errors.InvalidArgument, "invalid direction %q", s)
}

// A Resolver answers offset queries for named zones. Implementations must
// be safe for concurrent use.
type Resolver interface {
	// Canonicalize validates a zone identifier and returns its canonical form.
	Canonicalize(zone string) (string, error)
	// OffsetAt returns the offset in effect at the given instant.
	OffsetAt(zone string, epochSeconds int64) (int, error)
	// OffsetsFor returns the offsets that may apply to a local time.
	OffsetsFor(zone string, localSeconds int64) (Candidates, error)
	// TransitionNear returns the nearest instant strictly after (Next) or
	// before (Previous) the given one at which the zone's offset changes.
	TransitionNear(zone string, epochSeconds, nanos int64, dir Direction) (int64, bool, error)
}

// FormatOffset renders offset seconds as ±HH:MM, or ±HH:MM:SS when the
// offset has a seconds part.
func FormatOffset(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	h, m, s := offset/3600, offset/60%60, offset%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}
