// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rounding implements increment-based rounding of signed values.
//
// A signed value is rounded by rounding its magnitude with the unsigned
// rule that its mode implies for the value's sign, so that, for example,
// Floor on a negative value moves away from zero.
package rounding // import "github.com/startemporal/temporal/internal/rounding"

import (
	"golang.org/x/exp/constraints"

	"github.com/startemporal/temporal/errors"
)

// Mode is a rounding mode. The zero value means "the operation's default".
type Mode int

const (
	Ceil Mode = iota + 1
	Floor
	Expand
	Trunc
	HalfCeil
	HalfFloor
	HalfExpand
	HalfTrunc
	HalfEven
)

var modeNames = [...]string{"", "ceil", "floor", "expand", "trunc", "halfCeil", "halfFloor", "halfExpand", "halfTrunc", "halfEven"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "invalid"
	}
	return modeNames[m]
}

// Or returns m, or def if m is unset.
func (m Mode) Or(def Mode) Mode {
	if m == 0 {
		return def
	}
	return m
}

// Negate returns the mode that rounds -x the way m rounds x.
func (m Mode) Negate() Mode {
	switch m {
	case Ceil:
		return Floor
	case Floor:
		return Ceil
	case HalfCeil:
		return HalfFloor
	case HalfFloor:
		return HalfCeil
	}
	return m
}

// Parse parses a mode name such as "halfExpand".
func Parse(s string) (Mode, error) {
	for i, name := range modeNames {
		if i > 0 && s == name {
			return Mode(i), nil
		}
	}
	return 0, errors.New(errors.InvalidArgument, "invalid rounding mode %q", s)
}

// Unsigned is a rounding rule over magnitudes.
type Unsigned int

const (
	Zero Unsigned = iota
	Infinity
	HalfZero
	HalfInfinity
	HalfToEven
)

// ForSign returns the unsigned rule m applies to a value of the given sign.
func (m Mode) ForSign(negative bool) Unsigned {
	switch m {
	case Ceil:
		if negative {
			return Zero
		}
		return Infinity
	case Floor:
		if negative {
			return Infinity
		}
		return Zero
	case Expand:
		return Infinity
	case Trunc:
		return Zero
	case HalfCeil:
		if negative {
			return HalfZero
		}
		return HalfInfinity
	case HalfFloor:
		if negative {
			return HalfInfinity
		}
		return HalfZero
	case HalfTrunc:
		return HalfZero
	case HalfEven:
		return HalfToEven
	}
	return HalfInfinity
}

// Away reports whether a magnitude strictly between two increments rounds
// to the larger one. half compares the remainder with the distance to the
// larger increment (-1, 0, +1); even reports whether the smaller increment
// is an even multiple.
func Away(u Unsigned, half int, even bool) bool {
	switch u {
	case Zero:
		return false
	case Infinity:
		return true
	}
	if half != 0 {
		return half > 0
	}
	switch u {
	case HalfZero:
		return false
	case HalfToEven:
		return !even
	}
	return true
}

// Div returns x/d rounded to an integer with mode m. d must be positive.
func Div[T constraints.Signed](x, d T, m Mode) T {
	neg := x < 0
	mag := x
	if neg {
		mag = -x
	}
	q, r := mag/d, mag%d
	if r != 0 && Away(m.ForSign(neg), cmp(r, d-r), q%2 == 0) {
		q++
	}
	if neg {
		return -q
	}
	return q
}

// Int rounds x to a multiple of inc with mode m. inc must be positive.
func Int[T constraints.Signed](x, inc T, m Mode) T {
	return Div(x, inc, m) * inc
}

func cmp[T constraints.Integer](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
