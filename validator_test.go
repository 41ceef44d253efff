// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import "testing"

func TestRangeValidator(t *testing.T) {
	v := Range(-15, 15)
	testCases := []struct {
		value any
		want  bool
	}{
		{int8(0), true},
		{int8(15), true},
		{int8(-15), true},
		{int8(16), false},
		{int8(-16), false},
	}
	for _, tc := range testCases {
		if got := v.Check(tc.value); got != tc.want {
			t.Errorf("Range.Check(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestBitSizeValidator(t *testing.T) {
	unsigned := BitSize(4, false)
	if !unsigned.Check(uint8(15)) || unsigned.Check(uint8(16)) {
		t.Fatal("unsigned 4-bit validator boundary wrong")
	}
	signed := BitSize(4, true)
	if !signed.Check(int8(-8)) || !signed.Check(int8(7)) || signed.Check(int8(8)) || signed.Check(int8(-9)) {
		t.Fatal("signed 4-bit validator boundary wrong")
	}
}

func TestExactValueValidator(t *testing.T) {
	v := ExactValue(uint32(42))
	if !v.Check(uint32(42)) {
		t.Fatal("expected exact match to pass")
	}
	if v.Check(uint32(43)) {
		t.Fatal("expected mismatch to fail")
	}
}

func TestAlwaysTrueAlwaysFalse(t *testing.T) {
	if !AlwaysTrue().Check(nil) {
		t.Fatal("AlwaysTrue rejected a value")
	}
	if AlwaysFalse().Check(nil) {
		t.Fatal("AlwaysFalse accepted a value")
	}
}
