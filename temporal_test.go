// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package temporal_test

import (
	"errors"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/startemporal/temporal"
	"github.com/startemporal/temporal/calendar"
	temporalerrors "github.com/startemporal/temporal/errors"
)

// must returns v, panicking if err is non-nil.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// requireCode fails the test unless err carries the given code.
func requireCode(t *testing.T, err error, code temporalerrors.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, temporalerrors.CodeOf(err), "error: %v", err)
}

func date(t *testing.T, s string) temporal.PlainDate {
	t.Helper()
	return must(temporal.ParsePlainDate(s))
}

func duration(t *testing.T, s string) temporal.Duration {
	t.Helper()
	return must(temporal.ParseDuration(s))
}

func zoned(t *testing.T, s string) temporal.ZonedDateTime {
	t.Helper()
	return must(temporal.ParseZonedDateTime(s, temporal.ZonedOptions{}))
}

func TestErrorsAreComparable(t *testing.T) {
	_, err := temporal.NewPlainDate(2023, 2, 29)
	require.True(t, errors.Is(err, temporalerrors.ErrInvalidDate), "got %v", err)
}

func some[T any](v T) calendar.Optional[T] { return calendar.Some(v) }
