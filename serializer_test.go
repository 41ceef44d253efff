// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import "testing"

func TestPrimitiveRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.TargetEndian = EndianBig

	testCases := []struct {
		name string
		ser  *Primitive
		val  any
	}{
		{"bool true", Bool(), true},
		{"bool false", Bool(), false},
		{"u8", U8(), uint8(200)},
		{"i8", I8(), int8(-5)},
		{"u16", U16(), uint16(40000)},
		{"i16", I16(), int16(-1000)},
		{"u32", U32(), uint32(1 << 30)},
		{"i32", I32(), int32(-123456)},
		{"u64", U64(), uint64(1) << 40},
		{"i64", I64(), int64(-1) << 40},
		{"f32", F32(), float32(3.5)},
		{"f64", F64(), float64(-2.25)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf, err := tc.ser.Format(nil, tc.val, settings, EndianTargetDefault)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if len(buf) != tc.ser.FixedSize() {
				t.Fatalf("expected %d bytes, got %d", tc.ser.FixedSize(), len(buf))
			}

			got, n, err := tc.ser.Parse(buf, settings, EndianTargetDefault)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if n != len(buf) {
				t.Fatalf("expected to consume %d bytes, consumed %d", len(buf), n)
			}
			if got != tc.val {
				t.Fatalf("round-trip mismatch: got %v, want %v", got, tc.val)
			}
		})
	}
}

func TestPrimitiveEndianAffectsWire(t *testing.T) {
	settingsBig := Settings{TargetEndian: EndianBig}
	settingsLittle := Settings{TargetEndian: EndianLittle}

	bufBig, err := U32().Format(nil, uint32(1), settingsBig, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Format big: %v", err)
	}
	bufLittle, err := U32().Format(nil, uint32(1), settingsLittle, EndianTargetDefault)
	if err != nil {
		t.Fatalf("Format little: %v", err)
	}
	if bufBig[3] != 1 || bufLittle[0] != 1 {
		t.Fatalf("endian policy did not affect byte layout: big=%v little=%v", bufBig, bufLittle)
	}
}

func TestPrimitiveFieldEndianOverridesAmbient(t *testing.T) {
	settings := Settings{TargetEndian: EndianLittle}
	buf, err := U16().Format(nil, uint16(1), settings, EndianBig)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if buf[0] != 0 || buf[1] != 1 {
		t.Fatalf("field-level Big override not honored over ambient Little: %v", buf)
	}
}

func TestPrimitiveParseShortBuffer(t *testing.T) {
	_, _, err := U32().Parse([]byte{1, 2}, DefaultSettings(), EndianTargetDefault)
	if err == nil {
		t.Fatal("expected error parsing short buffer")
	}
}
