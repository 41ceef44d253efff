// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

// Validator is a pure predicate applied at boundaries (descriptor build for
// defaults, serialize/deserialize for live values) to accept or reject a
// value. Validators never mutate and never see more than the one value they
// guard; rejection is reported to the Engine, which signals InvalidValue.
type Validator interface {
	Check(value any) bool
}

// ValidatorFunc adapts a bare predicate function to a Validator, so "a bare
// predicate function is acceptable anywhere a validator is" holds without a
// wrapper at every call site.
type ValidatorFunc func(value any) bool

func (f ValidatorFunc) Check(value any) bool { return f(value) }

type rangeValidator struct{ lo, hi int64 }

func (r rangeValidator) Check(value any) bool {
	v, ok := toInt64(value)
	if !ok {
		return false
	}
	return v >= r.lo && v <= r.hi
}

// Range accepts any value whose integer reading satisfies lo <= value <= hi.
func Range(lo, hi int64) Validator {
	return rangeValidator{lo: lo, hi: hi}
}

type exactValueValidator struct{ want any }

func (e exactValueValidator) Check(value any) bool {
	return valuesEqual(value, e.want)
}

// ExactValue accepts only values structurally equal to k.
func ExactValue(k any) Validator {
	return exactValueValidator{want: k}
}

type bitSizeValidator struct {
	bits   int
	signed bool
}

func (b bitSizeValidator) Check(value any) bool {
	v, ok := toInt64(value)
	if !ok {
		return false
	}
	if b.signed {
		lo := -(int64(1) << (uint(b.bits) - 1))
		hi := int64(1) << (uint(b.bits) - 1)
		return v >= lo && v < hi
	}
	if v < 0 {
		return false
	}
	hi := int64(1) << uint(b.bits)
	return v < hi
}

// BitSize accepts integers representable in n bits: [0, 2^n) for unsigned,
// [-2^(n-1), 2^(n-1)) for signed.
func BitSize(n int, signed bool) Validator {
	return bitSizeValidator{bits: n, signed: signed}
}

// Custom wraps an arbitrary predicate.
func Custom(fn func(value any) bool) Validator {
	return ValidatorFunc(fn)
}

// AlwaysTrue never rejects.
func AlwaysTrue() Validator {
	return ValidatorFunc(func(any) bool { return true })
}

// AlwaysFalse always rejects; useful as an explicit "this field is write-only
// from defaults" marker.
func AlwaysFalse() Validator {
	return ValidatorFunc(func(any) bool { return false })
}
