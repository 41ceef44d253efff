// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"fmt"

	"github.com/pk910/binstruct/bwire"
)

// BoundExpr is a VariableArray element-count bound: a literal, a named
// expression resolved against a Codec's spec values at Build time, or
// unbounded (only legal on a struct's single trailing VST field).
type BoundExpr struct {
	kind     boundKind
	literal  uint64
	expr     string
	resolved bool
	value    uint64
}

type boundKind uint8

const (
	boundLiteral boundKind = iota
	boundExpr
	boundUnbounded
)

// Lit is a fixed, immediately-known element-count bound.
func Lit(n uint64) BoundExpr { return BoundExpr{kind: boundLiteral, literal: n, resolved: true, value: n} }

// Expr is a bound resolved at descriptor Build time by evaluating expr (a
// name or a govaluate expression over a codec's spec values), generalizing
// the teacher's dynssz-size/dynssz-max tag expressions to the builder
// surface.
func Expr(expr string) BoundExpr { return BoundExpr{kind: boundExpr, expr: expr} }

// Unbounded marks a VariableArray with no declared upper bound. Only valid
// on a struct's single trailing variable-size field.
func Unbounded() BoundExpr { return BoundExpr{kind: boundUnbounded, resolved: true} }

func (b BoundExpr) resolve(codec *Codec) (BoundExpr, error) {
	if b.resolved {
		return b, nil
	}
	if codec == nil || codec.specvals == nil {
		return b, fmt.Errorf("binstruct: %w: expression bound %q needs a codec with spec values", bwire.ErrIllFormedDescriptor, b.expr)
	}
	v, err := codec.specvals.Resolve(b.expr)
	if err != nil {
		return b, fmt.Errorf("binstruct: %w: %v", bwire.ErrIllFormedDescriptor, err)
	}
	b.resolved = true
	b.value = v
	return b, nil
}

// FixedArray is an FST node: a fixed element count of a uniform element
// type, padded with the element's default value if a shorter value is
// formatted and rejected if a longer one is.
type FixedArray struct {
	elem    Serializer
	count   int
	byteArr bool
}

// Array declares a FixedArray of count elements of elem.
func Array(elem Serializer, count int) *FixedArray {
	if !elem.IsFixedSize() {
		panic("binstruct: FixedArray element must itself be fixed-size")
	}
	return &FixedArray{elem: elem, count: count, byteArr: isByteElement(elem)}
}

// ByteArray is shorthand for Array(U8(), count), declared with the
// byte-sequence value representation ([]byte rather than []any).
func ByteArray(count int) *FixedArray { return Array(U8(), count) }

func isByteElement(s Serializer) bool {
	p, ok := s.(*Primitive)
	return ok && p.kind == kindU8 && p.width == 1
}

func (a *FixedArray) IsFixedSize() bool { return true }
func (a *FixedArray) FixedSize() int    { return a.elem.FixedSize() * a.count }

func (a *FixedArray) DefaultValue() any {
	if a.byteArr {
		return make([]byte, a.count)
	}
	out := make([]any, a.count)
	for i := range out {
		out[i] = a.elem.DefaultValue()
	}
	return out
}

func (a *FixedArray) Format(buf []byte, value any, settings Settings, endian Endian) ([]byte, error) {
	if a.byteArr {
		b, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("binstruct: expected []byte, got %T", value)
		}
		if len(b) > a.count {
			return nil, bwire.ErrArrayOverflow
		}
		buf = append(buf, b...)
		return bwire.AppendZero(buf, a.count-len(b)), nil
	}

	elems, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("binstruct: expected []any, got %T", value)
	}
	if len(elems) > a.count {
		return nil, bwire.ErrArrayOverflow
	}
	var err error
	for _, e := range elems {
		buf, err = a.elem.Format(buf, e, settings, endian)
		if err != nil {
			return nil, err
		}
	}
	for i := len(elems); i < a.count; i++ {
		buf, err = a.elem.Format(buf, a.elem.DefaultValue(), settings, endian)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (a *FixedArray) Parse(buf []byte, settings Settings, endian Endian) (any, int, error) {
	total := a.FixedSize()
	if len(buf) < total {
		return nil, 0, bwire.ErrShortBuffer
	}
	if a.byteArr {
		out := make([]byte, a.count)
		copy(out, buf[:a.count])
		return out, a.count, nil
	}

	out := make([]any, a.count)
	off := 0
	width := a.elem.FixedSize()
	for i := 0; i < a.count; i++ {
		v, n, err := a.elem.Parse(buf[off:off+width], settings, endian)
		if err != nil {
			return nil, 0, bwire.WithField(fmt.Sprintf("[%d]", i), err)
		}
		out[i] = v
		off += n
	}
	return out, off, nil
}

// VariableArray is a VST node: an element count that varies call to call,
// bounded by min/max (each a BoundExpr), recovering its length at parse time
// from the size of the buffer the Engine hands it rather than from any
// offset table on the wire.
type VariableArray struct {
	elem       Serializer
	min, max   BoundExpr
	elemWidth  int
	byteArr    bool
}

// VarArray declares a VariableArray of elem elements bounded by [min, max].
// elem must itself be fixed-size; nesting one VST inside another is not
// representable in this layout calculus.
func VarArray(elem Serializer, min, max BoundExpr) *VariableArray {
	if !elem.IsFixedSize() {
		panic("binstruct: VariableArray element must itself be fixed-size")
	}
	return &VariableArray{elem: elem, min: min, max: max, elemWidth: elem.FixedSize(), byteArr: isByteElement(elem)}
}

func (a *VariableArray) resolveBounds(codec *Codec) (min, max uint64, err error) {
	lo, err := a.min.resolve(codec)
	if err != nil {
		return 0, 0, err
	}
	hi, err := a.max.resolve(codec)
	if err != nil {
		return 0, 0, err
	}
	if hi.kind != boundUnbounded && lo.value > hi.value {
		return 0, 0, fmt.Errorf("binstruct: %w: min bound exceeds max bound", bwire.ErrIllFormedDescriptor)
	}
	if hi.kind == boundUnbounded {
		return lo.value, ^uint64(0), nil
	}
	return lo.value, hi.value, nil
}

func (a *VariableArray) IsFixedSize() bool { return false }
func (a *VariableArray) FixedSize() int    { return 0 }

func (a *VariableArray) DefaultValue() any {
	if a.byteArr {
		return []byte{}
	}
	return []any{}
}

func (a *VariableArray) Format(buf []byte, value any, settings Settings, endian Endian) ([]byte, error) {
	if a.byteArr {
		b, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("binstruct: expected []byte, got %T", value)
		}
		return append(buf, b...), nil
	}
	elems, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("binstruct: expected []any, got %T", value)
	}
	var err error
	for _, e := range elems {
		buf, err = a.elem.Format(buf, e, settings, endian)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// Parse treats buf as the full remaining tail: the Engine only ever invokes
// this on the struct's single trailing variable-size field, handing it every
// byte left in the source buffer.
func (a *VariableArray) Parse(buf []byte, settings Settings, endian Endian) (any, int, error) {
	if a.elemWidth == 0 {
		if len(buf) != 0 {
			return nil, 0, bwire.ErrTrailingBytes
		}
		return a.DefaultValue(), 0, nil
	}
	if len(buf)%a.elemWidth != 0 {
		return nil, 0, bwire.ErrTailAlignment
	}
	count := len(buf) / a.elemWidth

	if a.byteArr {
		out := make([]byte, count)
		copy(out, buf)
		return out, len(buf), nil
	}

	out := make([]any, count)
	off := 0
	for i := 0; i < count; i++ {
		v, n, err := a.elem.Parse(buf[off:off+a.elemWidth], settings, endian)
		if err != nil {
			return nil, 0, bwire.WithField(fmt.Sprintf("[%d]", i), err)
		}
		out[i] = v
		off += n
	}
	return out, off, nil
}

// checkVariableArrayLength validates a decoded or about-to-be-encoded element count
// against the array's resolved [min, max] bound, called by the Engine around
// Format/Parse since VariableArray itself only knows its bounds once a Codec
// has resolved them.
func checkVariableArrayLength(count, min, max uint64) error {
	if count < min || count > max {
		return bwire.ErrArrayLengthOutOfRange
	}
	return nil
}
