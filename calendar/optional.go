// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package calendar

import "fmt"

// Optional is a value that may be absent. Calendar-dependent fields such
// as Era or WeekOfYear return an Optional so that callers handle calendars
// that do not define the concept.
type Optional[T any] struct {
	v  T
	ok bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{v: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.v, o.ok }

// Present reports whether the value is present.
func (o Optional[T]) Present() bool { return o.ok }

// Or returns the value, or def if absent.
func (o Optional[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

func (o Optional[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.v)
}
