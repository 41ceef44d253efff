// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"fmt"

	"github.com/pk910/binstruct/bwire"
)

// EnumValue is the value-domain representation of an enumeration member: its
// symbolic name, never its underlying literal. The literal only ever appears
// on the wire.
type EnumValue string

// Enumeration is a closed set of named members, each backed by an integer
// literal of a chosen width, serialized as that literal and decoded back to
// its symbolic name.
type Enumeration struct {
	width   int
	members []enumMember
	byName  map[string]uint64
	byValue map[uint64]string
	def     string
}

type enumMember struct {
	name  string
	value uint64
}

// EnumBuilder accumulates members before Build. Width is fixed at
// NewEnumBuilder time since every member shares one wire width.
type EnumBuilder struct {
	width   int
	members []enumMember
	next    uint64
	seen    map[string]bool
}

// NewEnumBuilder starts an enumeration whose members are each encoded in
// width bytes (1, 2, 4 or 8).
func NewEnumBuilder(width int) *EnumBuilder {
	return &EnumBuilder{width: width, seen: map[string]bool{}}
}

// Member appends a member whose literal is the predecessor's literal plus
// one, or 0 for the first member added.
func (b *EnumBuilder) Member(name string) *EnumBuilder {
	return b.MemberWithValue(name, b.next)
}

// MemberWithValue appends a member with an explicit literal and resumes
// auto-assignment from value+1 for any member added afterward.
func (b *EnumBuilder) MemberWithValue(name string, value uint64) *EnumBuilder {
	if b.seen[name] {
		panic(fmt.Sprintf("binstruct: duplicate enum member name %q", name))
	}
	b.seen[name] = true
	b.members = append(b.members, enumMember{name: name, value: value})
	b.next = value + 1
	return b
}

// Build finalizes the enumeration. It panics on a descriptor-construction
// error (duplicate literal, or a literal that doesn't fit width) the same
// way the rest of the builder surface treats ill-formed descriptors as
// programmer errors caught at construction, never at runtime.
func (b *EnumBuilder) Build() *Enumeration {
	if len(b.members) == 0 {
		panic("binstruct: enumeration has no members")
	}
	maxLiteral := uint64(1)<<(uint(b.width)*8) - 1
	if b.width == 8 {
		maxLiteral = ^uint64(0)
	}

	e := &Enumeration{
		width:   b.width,
		members: append([]enumMember{}, b.members...),
		byName:  make(map[string]uint64, len(b.members)),
		byValue: make(map[uint64]string, len(b.members)),
	}
	for _, m := range e.members {
		if m.value > maxLiteral {
			panic(fmt.Sprintf("binstruct: enum member %q literal %d does not fit in %d bytes", m.name, m.value, b.width))
		}
		if _, dup := e.byValue[m.value]; dup {
			panic(fmt.Sprintf("binstruct: enum member %q reuses literal %d", m.name, m.value))
		}
		e.byName[m.name] = m.value
		e.byValue[m.value] = m.name
	}
	e.def = e.members[0].name
	return e
}

func (e *Enumeration) IsFixedSize() bool { return true }
func (e *Enumeration) FixedSize() int    { return e.width }
func (e *Enumeration) DefaultValue() any { return EnumValue(e.def) }

func (e *Enumeration) Format(buf []byte, value any, settings Settings, endian Endian) ([]byte, error) {
	name, ok := value.(EnumValue)
	if !ok {
		return nil, fmt.Errorf("binstruct: expected EnumValue, got %T", value)
	}
	literal, ok := e.byName[string(name)]
	if !ok {
		return nil, fmt.Errorf("binstruct: %w: %q", bwire.ErrUnknownEnumLiteral, name)
	}
	order := resolveEndian(endian, settings)
	switch e.width {
	case 1:
		return append(buf, byte(literal)), nil
	case 2:
		var tmp [2]byte
		order.PutUint16(tmp[:], uint16(literal))
		return append(buf, tmp[:]...), nil
	case 4:
		var tmp [4]byte
		order.PutUint32(tmp[:], uint32(literal))
		return append(buf, tmp[:]...), nil
	default:
		var tmp [8]byte
		order.PutUint64(tmp[:], literal)
		return append(buf, tmp[:]...), nil
	}
}

func (e *Enumeration) Parse(buf []byte, settings Settings, endian Endian) (any, int, error) {
	if len(buf) < e.width {
		return nil, 0, bwire.ErrShortBuffer
	}
	order := resolveEndian(endian, settings)
	var literal uint64
	switch e.width {
	case 1:
		literal = uint64(buf[0])
	case 2:
		literal = uint64(order.Uint16(buf[:2]))
	case 4:
		literal = uint64(order.Uint32(buf[:4]))
	default:
		literal = order.Uint64(buf[:8])
	}
	name, ok := e.byValue[literal]
	if !ok {
		return nil, 0, fmt.Errorf("binstruct: %w: literal %d", bwire.ErrUnknownEnumLiteral, literal)
	}
	return EnumValue(name), e.width, nil
}
