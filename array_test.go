// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pk910/binstruct/bwire"
)

func TestFixedArrayBytePadding(t *testing.T) {
	a := ByteArray(4)
	settings := DefaultSettings()

	buf, err := a.Format(nil, []byte{1, 2}, settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := []byte{1, 2, 0, 0}
	if !reflect.DeepEqual(buf, want) {
		t.Fatalf("got %v, want %v", buf, want)
	}
}

func TestFixedArrayOverflow(t *testing.T) {
	a := ByteArray(2)
	_, err := a.Format(nil, []byte{1, 2, 3}, DefaultSettings(), EndianTargetDefault)
	if !errors.Is(err, bwire.ErrArrayOverflow) {
		t.Fatalf("expected ErrArrayOverflow, got %v", err)
	}
}

func TestFixedArrayOfPrimitivesRoundTrip(t *testing.T) {
	a := Array(U16(), 3)
	settings := Settings{TargetEndian: EndianBig}

	in := []any{uint16(1), uint16(2), uint16(3)}
	buf, err := a.Format(nil, in, settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(buf) != 6 {
		t.Fatalf("expected 6 bytes, got %d", len(buf))
	}

	got, n, err := a.Parse(buf, settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != 6 || !reflect.DeepEqual(got, in) {
		t.Fatalf("round-trip mismatch: got %v (%d bytes)", got, n)
	}
}

func TestVariableArrayTailLengthFromBufferSize(t *testing.T) {
	a := VarArray(U32(), Lit(0), Unbounded())
	settings := Settings{TargetEndian: EndianBig}

	in := []any{uint32(10), uint32(20), uint32(30)}
	buf, err := a.Format(nil, in, settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	got, n, err := a.Parse(buf, settings, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if n != len(buf) || !reflect.DeepEqual(got, in) {
		t.Fatalf("round-trip mismatch: got %v", got)
	}
}

func TestVariableArrayTailAlignment(t *testing.T) {
	a := VarArray(U32(), Lit(0), Unbounded())
	_, _, err := a.Parse([]byte{1, 2, 3}, DefaultSettings(), EndianTargetDefault)
	if !errors.Is(err, bwire.ErrTailAlignment) {
		t.Fatalf("expected ErrTailAlignment, got %v", err)
	}
}

func TestVariableArrayLengthBoundsChecked(t *testing.T) {
	min, max, err := (&VariableArray{min: Lit(1), max: Lit(2)}).resolveBounds(nil)
	if err != nil {
		t.Fatalf("resolveBounds: %v", err)
	}
	if err := checkVariableArrayLength(0, min, max); !errors.Is(err, bwire.ErrArrayLengthOutOfRange) {
		t.Fatalf("expected out-of-range for count below min, got %v", err)
	}
	if err := checkVariableArrayLength(3, min, max); !errors.Is(err, bwire.ErrArrayLengthOutOfRange) {
		t.Fatalf("expected out-of-range for count above max, got %v", err)
	}
	if err := checkVariableArrayLength(2, min, max); err != nil {
		t.Fatalf("expected count within bounds to pass, got %v", err)
	}
}

func TestByteArrayDeclaredViaArrayIsByteMode(t *testing.T) {
	a := Array(U8(), 3)
	if !a.byteArr {
		t.Fatal("expected Array(U8(), n) to use byte-sequence representation")
	}
}
