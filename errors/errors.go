// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors defines the failure taxonomy shared by the calendar,
// time zone and value packages.
//
// Every failure is an *Error carrying a Code. Callers test for a class of
// failure with the standard library:
//
//	if errors.Is(err, temporalerrors.ErrInvalidDate) { ... }
package errors // import "github.com/startemporal/temporal/errors"

import (
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

const (
	// InvalidArgument indicates a field outside its primitive bound, e.g. minute=60.
	InvalidArgument Code = "InvalidArgument"
	// InvalidDate indicates a calendar-invalid field combination under "reject" overflow.
	InvalidDate Code = "InvalidDate"
	// RangeError indicates a magnitude outside the supported range.
	RangeError Code = "RangeError"
	// UnknownCalendar indicates an unrecognized calendar identifier.
	UnknownCalendar Code = "UnknownCalendar"
	// UnknownTimeZone indicates an unrecognized time zone identifier.
	UnknownTimeZone Code = "UnknownTimeZone"
	// AmbiguousTime indicates that "reject" disambiguation hit a gap or overlap.
	AmbiguousTime Code = "AmbiguousTime"
	// ParseError indicates malformed canonical text.
	ParseError Code = "ParseError"
	// RelativeToRequired indicates variable-length units without an anchor.
	RelativeToRequired Code = "RelativeToRequired"
	// InvalidRoundingIncrement indicates an increment that does not divide its unit.
	InvalidRoundingIncrement Code = "InvalidRoundingIncrement"
)

// Sentinels for errors.Is. They match any *Error with the same Code.
var (
	ErrInvalidArgument          = &Error{Code: InvalidArgument}
	ErrInvalidDate              = &Error{Code: InvalidDate}
	ErrRange                    = &Error{Code: RangeError}
	ErrUnknownCalendar          = &Error{Code: UnknownCalendar}
	ErrUnknownTimeZone          = &Error{Code: UnknownTimeZone}
	ErrAmbiguousTime            = &Error{Code: AmbiguousTime}
	ErrParse                    = &Error{Code: ParseError}
	ErrRelativeToRequired       = &Error{Code: RelativeToRequired}
	ErrInvalidRoundingIncrement = &Error{Code: InvalidRoundingIncrement}
)

// Error is a classified failure.
type Error struct {
	Code    Code
	Message string
	// Token is the offending input component, for parse errors.
	Token string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = "failure"
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (at %q)", e.Code, msg, e.Token)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Parse returns a ParseError naming the offending token.
func Parse(token, format string, args ...any) error {
	return &Error{Code: ParseError, Message: fmt.Sprintf(format, args...), Token: token}
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
