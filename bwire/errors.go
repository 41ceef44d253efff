// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

// Package bwire holds the sentinel errors and small byte-buffer helpers
// shared by the binstruct core. It plays the role the teacher library
// (dynamic-ssz) gives to its sszutils package: a dependency-free leaf
// package that both the core and generated code can import.
package bwire

import "fmt"

// Sentinel errors for every named error kind in the core's error handling
// design. Callers match against these with errors.Is; FieldError wraps one
// of them with the dot-separated field path where it occurred.
var (
	ErrShortBuffer          = fmt.Errorf("bwire: buffer shorter than required size")
	ErrTrailingBytes        = fmt.Errorf("bwire: fixed-size value followed by trailing bytes")
	ErrTailAlignment        = fmt.Errorf("bwire: variable array tail is not a multiple of the element size")
	ErrArrayLengthOutOfRange = fmt.Errorf("bwire: variable array length outside its declared bounds")
	ErrArrayOverflow        = fmt.Errorf("bwire: fixed array value longer than its declared length")
	ErrUnknownEnumLiteral   = fmt.Errorf("bwire: no symbolic member for decoded enum literal")
	ErrInvalidValue         = fmt.Errorf("bwire: value rejected by its validator")
	ErrInvalidDefault       = fmt.Errorf("bwire: declared default rejected by its validator")
	ErrUnknownField         = fmt.Errorf("bwire: initial value references a field not on the descriptor")
	ErrValidationFailed     = fmt.Errorf("bwire: validate hook rejected the value")
	ErrIllFormedDescriptor  = fmt.Errorf("bwire: descriptor is ill-formed")
)

// FieldError wraps a sentinel error with the dot-separated path (from the
// root aggregate) of the field where it occurred. errors.Is still matches
// the wrapped sentinel; errors.Unwrap returns it.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// WithField wraps err with path, nesting an existing FieldError's path under
// the new prefix so errors from deeply nested struct fields read as
// "outer.inner.leaf: <cause>".
func WithField(path string, err error) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FieldError); ok {
		if path == "" {
			return fe
		}
		return &FieldError{Path: path + "." + fe.Path, Err: fe.Err}
	}
	return &FieldError{Path: path, Err: err}
}
