// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"encoding/binary"
	"unsafe"
)

// Endian is a byte-order policy. It is used both as a per-field override and
// as the ambient target endian carried by Settings; TargetDefault is only
// meaningful in the former role.
type Endian uint8

const (
	// EndianTargetDefault defers to the ambient settings' TargetEndian.
	// Only valid as a per-field/per-type policy, never as Settings.TargetEndian.
	EndianTargetDefault Endian = iota
	EndianBig
	EndianLittle
	// EndianHost resolves to the machine's native byte order.
	EndianHost
)

// hostEndian is detected once via a three-line unsafe probe, yielding
// binary.LittleEndian or binary.BigEndian; see DESIGN.md for why
// golang.org/x/sys isn't pulled in for this one check instead.
var hostEndian = detectHostEndian()

func detectHostEndian() binary.ByteOrder {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	if b[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// resolveEndian implements the priority order from the core's endian policy:
// per-call override is applied by the caller before reaching here; this
// resolves (b) field policy, then (c) ambient target, then (d) host native.
func resolveEndian(fieldPolicy Endian, settings Settings) binary.ByteOrder {
	switch fieldPolicy {
	case EndianBig:
		return binary.BigEndian
	case EndianLittle:
		return binary.LittleEndian
	case EndianHost:
		return hostEndian
	default: // EndianTargetDefault
		switch settings.TargetEndian {
		case EndianBig:
			return binary.BigEndian
		case EndianLittle:
			return binary.LittleEndian
		default:
			return hostEndian
		}
	}
}
