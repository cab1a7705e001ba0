// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chunkedfile

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testReporter struct {
	reported []string
}

func (r *testReporter) Errorf(format string, args ...any) {
	r.reported = append(r.reported, fmt.Sprintf(format, args...))
}

const script = `temporal.plain_date(2023, 2, 29) ### "out of range"
---
d = temporal.duration("PT1H")
print(d)
`

func TestChunks(t *testing.T) {
	r := &testReporter{}
	chunks := readBytes("test.star", []byte(script), r, "\n")
	require.Empty(t, r.reported)
	require.Len(t, chunks, 2)

	first := chunks[0]
	require.Equal(t, `temporal.plain_date(2023, 2, 29) ### "out of range"`, first.Source)
	require.Len(t, first.wantErrs, 1)
	require.Equal(t, "out of range", first.wantErrs[1].String())

	first.GotError(1, "plain_date: day 29 out of range for 2023-02")
	require.Empty(t, r.reported)
	require.Empty(t, first.wantErrs)

	first.GotError(1, "again")
	require.Equal(t, []string{"\ntest.star:1: unexpected error: again"}, r.reported)

	second := chunks[1]
	require.Equal(t, "\n\nd = temporal.duration(\"PT1H\")\nprint(d)\n", second.Source)
	require.Empty(t, second.wantErrs)
	second.Done()
	require.Len(t, r.reported, 1)
}

func TestMismatchAndMissing(t *testing.T) {
	r := &testReporter{}
	chunks := readBytes("test.star", []byte(script), r, "\n")
	chunks[0].GotError(1, "something else")
	require.Equal(t, []string{"\ntest.star:1: error \"something else\" does not match pattern \"out of range\""}, r.reported)

	r.reported = nil
	chunks = readBytes("test.star", []byte(script), r, "\n")
	chunks[0].Done()
	require.Equal(t, []string{"\ntest.star:1: expected error matching \"out of range\""}, r.reported)
}

func TestBadPattern(t *testing.T) {
	r := &testReporter{}
	readBytes("test.star", []byte("x ### out of range\n"), r, "\n")
	require.Equal(t, []string{"\ntest.star:1: not a quoted regexp: out of range"}, r.reported)
}

func TestRead(t *testing.T) {
	name := filepath.Join(t.TempDir(), "x.star")
	require.NoError(t, os.WriteFile(name, []byte(script), 0o644))
	r := &testReporter{}
	require.Len(t, Read(name, r), 2)
	require.Empty(t, r.reported)

	require.Nil(t, Read(filepath.Join(t.TempDir(), "missing.star"), r))
	require.Len(t, r.reported, 1)
}
