// Copyright 2024 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rounding

import "testing"

func TestInt(t *testing.T) {
	// Rows: value; columns follow the mode order below.
	modes := []Mode{Ceil, Floor, Expand, Trunc, HalfCeil, HalfFloor, HalfExpand, HalfTrunc, HalfEven}
	for _, test := range []struct {
		x    int64
		want [9]int64
	}{
		{15, [9]int64{20, 10, 20, 10, 20, 10, 20, 10, 20}},
		{25, [9]int64{30, 20, 30, 20, 30, 20, 30, 20, 20}},
		{-15, [9]int64{-10, -20, -20, -10, -10, -20, -20, -10, -20}},
		{-25, [9]int64{-20, -30, -30, -20, -20, -30, -30, -20, -20}},
		{14, [9]int64{20, 10, 20, 10, 10, 10, 10, 10, 10}},
		{-16, [9]int64{-10, -20, -20, -10, -20, -20, -20, -20, -20}},
		{30, [9]int64{30, 30, 30, 30, 30, 30, 30, 30, 30}},
	} {
		for i, m := range modes {
			if got := Int(test.x, 10, m); got != test.want[i] {
				t.Errorf("Int(%d, 10, %s) = %d, want %d", test.x, m, got, test.want[i])
			}
		}
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"ceil", "halfEven", "expand"} {
		m, err := Parse(name)
		if err != nil || m.String() != name {
			t.Errorf("Parse(%q) = %v, %v", name, m, err)
		}
	}
	if _, err := Parse("sideways"); err == nil {
		t.Error("Parse(sideways) succeeded")
	}
	if got := Mode(0).Or(HalfExpand); got != HalfExpand {
		t.Errorf("unset mode Or = %s", got)
	}
}
