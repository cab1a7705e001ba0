// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	before := time.Now().Unix()
	sec, nsec, err := Now()
	require.NoError(t, err)
	after := time.Now().Unix()
	require.GreaterOrEqual(t, sec, before)
	require.LessOrEqual(t, sec, after)
	require.True(t, nsec >= 0 && nsec < 1e9, "nsec = %d", nsec)
}

func TestZoneIDFromEnv(t *testing.T) {
	t.Setenv("TZ", "Europe/Paris")
	require.Equal(t, "Europe/Paris", ZoneID())
	t.Setenv("TZ", ":Asia/Tokyo")
	require.Equal(t, "Asia/Tokyo", ZoneID())
}

func TestZoneIDFallback(t *testing.T) {
	t.Setenv("TZ", "")
	require.NotEmpty(t, ZoneID())
}
