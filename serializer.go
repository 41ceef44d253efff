// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"fmt"
	"math"

	"github.com/pk910/binstruct/bwire"
)

// Serializer is the contract every layout node (Primitive, Enumeration,
// FixedArray, VariableArray, NestedStruct, and any Mixin-expanded field)
// implements. The Engine never special-cases a kind; it only ever calls
// through this interface, the same dispatch shape as the teacher's
// TypeDescriptor-driven marshalType/unmarshalType switch, collapsed down to
// one method pair per node instead of one big switch.
type Serializer interface {
	// IsFixedSize reports whether this node occupies a compile-time-known
	// number of bytes (an FST leaf) or consumes the remaining tail buffer
	// (a VST leaf).
	IsFixedSize() bool

	// FixedSize returns the node's size in bytes. Only meaningful when
	// IsFixedSize reports true.
	FixedSize() int

	// Format appends the wire encoding of value to buf and returns the
	// result. endian is the byte-order policy for this call; nodes with a
	// byte order resolve it against settings themselves.
	Format(buf []byte, value any, settings Settings, endian Endian) ([]byte, error)

	// Parse decodes a value from buf. For an FST node buf is exactly
	// FixedSize() bytes; for a VST node buf is the full remaining tail the
	// Engine is handing its single trailing variable-size field. Parse
	// returns the decoded value and the number of bytes consumed.
	Parse(buf []byte, settings Settings, endian Endian) (any, int, error)

	// DefaultValue returns the zero value of this node's own value domain,
	// used when a field's FieldSpec carries no explicit default.
	DefaultValue() any
}

// Primitive is the atomic numeric/boolean leaf: an FST node of fixed byte
// width and a scalar Go value domain (bool or one of the sized int/uint/
// float kinds).
type Primitive struct {
	kind  primitiveKind
	width int
}

type primitiveKind uint8

const (
	kindBool primitiveKind = iota
	kindU8
	kindI8
	kindU16
	kindI16
	kindU32
	kindI32
	kindU64
	kindI64
	kindF32
	kindF64
)

func Bool() *Primitive { return &Primitive{kind: kindBool, width: 1} }
func U8() *Primitive   { return &Primitive{kind: kindU8, width: 1} }
func I8() *Primitive   { return &Primitive{kind: kindI8, width: 1} }
func U16() *Primitive  { return &Primitive{kind: kindU16, width: 2} }
func I16() *Primitive  { return &Primitive{kind: kindI16, width: 2} }
func U32() *Primitive  { return &Primitive{kind: kindU32, width: 4} }
func I32() *Primitive  { return &Primitive{kind: kindI32, width: 4} }
func U64() *Primitive  { return &Primitive{kind: kindU64, width: 8} }
func I64() *Primitive  { return &Primitive{kind: kindI64, width: 8} }
func F32() *Primitive  { return &Primitive{kind: kindF32, width: 4} }
func F64() *Primitive  { return &Primitive{kind: kindF64, width: 8} }

func (p *Primitive) IsFixedSize() bool { return true }
func (p *Primitive) FixedSize() int    { return p.width }

func (p *Primitive) DefaultValue() any {
	switch p.kind {
	case kindBool:
		return false
	case kindU8:
		return uint8(0)
	case kindI8:
		return int8(0)
	case kindU16:
		return uint16(0)
	case kindI16:
		return int16(0)
	case kindU32:
		return uint32(0)
	case kindI32:
		return int32(0)
	case kindU64:
		return uint64(0)
	case kindI64:
		return int64(0)
	case kindF32:
		return float32(0)
	case kindF64:
		return float64(0)
	}
	return nil
}

func (p *Primitive) Format(buf []byte, value any, settings Settings, endian Endian) ([]byte, error) {
	order := resolveEndian(endian, settings)

	if p.kind == kindBool {
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("binstruct: expected bool, got %T", value)
		}
		if b {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	}

	if p.kind == kindF32 || p.kind == kindF64 {
		f, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("binstruct: expected float, got %T", value)
		}
		if p.kind == kindF32 {
			var tmp [4]byte
			order.PutUint32(tmp[:], math.Float32bits(float32(f)))
			return append(buf, tmp[:]...), nil
		}
		var tmp [8]byte
		order.PutUint64(tmp[:], math.Float64bits(f))
		return append(buf, tmp[:]...), nil
	}

	u, ok := toUint64Value(value, p.kind)
	if !ok {
		return nil, fmt.Errorf("binstruct: expected integer, got %T", value)
	}
	switch p.width {
	case 1:
		return append(buf, byte(u)), nil
	case 2:
		var tmp [2]byte
		order.PutUint16(tmp[:], uint16(u))
		return append(buf, tmp[:]...), nil
	case 4:
		var tmp [4]byte
		order.PutUint32(tmp[:], uint32(u))
		return append(buf, tmp[:]...), nil
	default:
		var tmp [8]byte
		order.PutUint64(tmp[:], u)
		return append(buf, tmp[:]...), nil
	}
}

func (p *Primitive) Parse(buf []byte, settings Settings, endian Endian) (any, int, error) {
	if len(buf) < p.width {
		return nil, 0, bwire.ErrShortBuffer
	}
	order := resolveEndian(endian, settings)

	if p.kind == kindBool {
		return buf[0] != 0, 1, nil
	}

	if p.kind == kindF32 {
		return math.Float32frombits(order.Uint32(buf[:4])), 4, nil
	}
	if p.kind == kindF64 {
		return math.Float64frombits(order.Uint64(buf[:8])), 8, nil
	}

	var u uint64
	switch p.width {
	case 1:
		u = uint64(buf[0])
	case 2:
		u = uint64(order.Uint16(buf[:2]))
	case 4:
		u = uint64(order.Uint32(buf[:4]))
	default:
		u = order.Uint64(buf[:8])
	}
	return fromUint64Value(u, p.kind), p.width, nil
}

// toInt64 widens any supported scalar value (as produced by this package's
// constructors, or by a user-supplied default/initial value) to an int64 for
// use by validators. It returns false for values with no integer reading.
func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case EnumValue:
		return 0, false
	default:
		return 0, false
	}
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		if i, ok := toInt64(value); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// toUint64Value reinterprets value's bit pattern as a uint64 of the given
// primitive kind's width, so signed and unsigned fields share one encode path.
func toUint64Value(value any, kind primitiveKind) (uint64, bool) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), true
	case int8:
		return uint64(uint8(v)), true
	case uint16:
		return uint64(v), true
	case int16:
		return uint64(uint16(v)), true
	case uint32:
		return uint64(v), true
	case int32:
		return uint64(uint32(v)), true
	case uint64:
		return v, true
	case int64:
		return uint64(v), true
	case int:
		return uint64(v), true
	default:
		return 0, false
	}
}

func fromUint64Value(u uint64, kind primitiveKind) any {
	switch kind {
	case kindU8:
		return uint8(u)
	case kindI8:
		return int8(u)
	case kindU16:
		return uint16(u)
	case kindI16:
		return int16(u)
	case kindU32:
		return uint32(u)
	case kindI32:
		return int32(u)
	case kindU64:
		return u
	case kindI64:
		return int64(u)
	default:
		return u
	}
}
