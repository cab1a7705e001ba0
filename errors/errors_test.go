// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors_test

import (
	"errors"
	"fmt"
	"testing"

	temporalerrors "github.com/startemporal/temporal/errors"
)

func TestIsMatchesCode(t *testing.T) {
	err := temporalerrors.New(temporalerrors.InvalidDate, "day %d out of range", 31)
	if !errors.Is(err, temporalerrors.ErrInvalidDate) {
		t.Errorf("errors.Is(%v, ErrInvalidDate) = false", err)
	}
	if errors.Is(err, temporalerrors.ErrRange) {
		t.Errorf("errors.Is(%v, ErrRange) = true", err)
	}
	wrapped := fmt.Errorf("plain_date: %w", err)
	if got := temporalerrors.CodeOf(wrapped); got != temporalerrors.InvalidDate {
		t.Errorf("CodeOf(wrapped) = %q", got)
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := temporalerrors.Parse("13", "month out of range")
	want := `ParseError: month out of range (at "13")`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if temporalerrors.CodeOf(errors.New("x")) != "" {
		t.Error("CodeOf(plain error) should be empty")
	}
}
