// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"errors"
	"testing"

	"github.com/pk910/binstruct/bwire"
)

func TestEnumerationAutoAssignment(t *testing.T) {
	e := NewEnumBuilder(1).
		Member("Red").
		Member("Green").
		Member("Blue").
		Build()

	testCases := []struct {
		name    string
		literal uint64
	}{
		{"Red", 0},
		{"Green", 1},
		{"Blue", 2},
	}
	for _, tc := range testCases {
		if got := e.byName[tc.name]; got != tc.literal {
			t.Errorf("%s: got literal %d, want %d", tc.name, got, tc.literal)
		}
	}
}

func TestEnumerationResumesAfterExplicitValue(t *testing.T) {
	e := NewEnumBuilder(1).
		Member("A").
		MemberWithValue("B", 10).
		Member("C").
		Build()

	if e.byName["C"] != 11 {
		t.Fatalf("expected C to resume at 11, got %d", e.byName["C"])
	}
}

func TestEnumerationRoundTrip(t *testing.T) {
	e := NewEnumBuilder(2).Member("Open").Member("Closed").Build()
	settings := DefaultSettings()

	buf, err := e.Format(nil, EnumValue("Closed"), settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	got, n, err := e.Parse(buf, settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != 2 || got != EnumValue("Closed") {
		t.Fatalf("round-trip mismatch: got %v (%d bytes)", got, n)
	}
}

func TestEnumerationUnknownLiteralOnParse(t *testing.T) {
	e := NewEnumBuilder(1).Member("Only").Build()
	_, _, err := e.Parse([]byte{99}, DefaultSettings(), EndianTargetDefault)
	if !errors.Is(err, bwire.ErrUnknownEnumLiteral) {
		t.Fatalf("expected ErrUnknownEnumLiteral, got %v", err)
	}
}

func TestEnumerationDuplicateMemberNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate member name")
		}
	}()
	NewEnumBuilder(1).Member("X").Member("X")
}

func TestEnumerationDuplicateLiteralPanicsOnBuild(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate literal")
		}
	}()
	NewEnumBuilder(1).Member("A").MemberWithValue("B", 0).Build()
}
