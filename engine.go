// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"fmt"

	"github.com/pk910/binstruct/bwire"
)

// Format encodes v as a *StructValue of this descriptor into buf, appending
// to it and returning the result. It is also how a StructDescriptor serves
// as a nested Serializer: the Engine never distinguishes a top-level struct
// from one embedded as a field of another.
func (d *StructDescriptor) Format(buf []byte, value any, settings Settings, endian Endian) ([]byte, error) {
	v, ok := value.(*StructValue)
	if !ok {
		return nil, fmt.Errorf("binstruct: expected *StructValue, got %T", value)
	}
	if v.descriptor != d {
		return nil, fmt.Errorf("binstruct: value belongs to descriptor %q, not %q", v.descriptor.name, d.name)
	}

	if !settings.DryRun && d.hooks.BeforeSerialize != nil {
		if err := d.hooks.BeforeSerialize(v); err != nil {
			return nil, bwire.WithField(d.name, err)
		}
	}

	if settings.ValidateOnSerialize {
		if err := d.runValidate(v); err != nil {
			return nil, err
		}
	}

	var err error
	for _, f := range d.fields {
		fv := v.fields[f.name]

		if va, isVar := f.serializer.(*VariableArray); isVar && f.arrayBounds != nil {
			count, cerr := variableArrayElementCount(fv, va)
			if cerr != nil {
				return nil, bwire.WithField(f.name, cerr)
			}
			if berr := checkVariableArrayLength(count, f.arrayBounds.min, f.arrayBounds.max); berr != nil {
				return nil, bwire.WithField(f.name, berr)
			}
		}

		buf, err = f.serializer.Format(buf, fv, settings, endian)
		if err != nil {
			return nil, bwire.WithField(f.name, err)
		}
	}

	if !settings.DryRun && d.hooks.AfterSerialize != nil {
		if err := d.hooks.AfterSerialize(v); err != nil {
			return nil, bwire.WithField(d.name, err)
		}
	}

	return buf, nil
}

// Parse decodes a *StructValue of this descriptor from buf. When buf is the
// full remaining tail of an outer call (this descriptor used as a nested
// VST field), its own single trailing variable-size field receives
// whatever remains after every FST field has been consumed.
func (d *StructDescriptor) Parse(buf []byte, settings Settings, endian Endian) (any, int, error) {
	v := d.NewValue()
	off := 0

	for i, f := range d.fields {
		isLast := i == len(d.fields)-1

		if f.serializer.IsFixedSize() {
			width := f.serializer.FixedSize()
			if len(buf)-off < width {
				return nil, 0, bwire.WithField(f.name, bwire.ErrShortBuffer)
			}
			val, n, err := f.serializer.Parse(buf[off:off+width], settings, endian)
			if err != nil {
				return nil, 0, bwire.WithField(f.name, err)
			}
			v.fields[f.name] = val
			off += n
			continue
		}

		if !isLast {
			return nil, 0, bwire.WithField(f.name, fmt.Errorf("binstruct: %w: variable-size field is not last", bwire.ErrIllFormedDescriptor))
		}

		tail := buf[off:]
		val, n, err := f.serializer.Parse(tail, settings, endian)
		if err != nil {
			return nil, 0, bwire.WithField(f.name, err)
		}

		if va, isVar := f.serializer.(*VariableArray); isVar && f.arrayBounds != nil {
			count, cerr := variableArrayElementCount(val, va)
			if cerr != nil {
				return nil, 0, bwire.WithField(f.name, cerr)
			}
			if berr := checkVariableArrayLength(count, f.arrayBounds.min, f.arrayBounds.max); berr != nil {
				return nil, 0, bwire.WithField(f.name, berr)
			}
		}

		v.fields[f.name] = val
		off += n
	}

	if settings.Validate {
		if err := d.runValidate(v); err != nil {
			return nil, 0, err
		}
	}

	return v, off, nil
}

func variableArrayElementCount(value any, va *VariableArray) (uint64, error) {
	switch v := value.(type) {
	case []byte:
		return uint64(len(v)), nil
	case []any:
		return uint64(len(v)), nil
	default:
		return 0, fmt.Errorf("binstruct: expected array value, got %T", value)
	}
}

// runValidate executes the descriptor's custom Validate hook if present,
// otherwise runs every field's own validator (skipping fields with none).
func (d *StructDescriptor) runValidate(v *StructValue) error {
	if d.hooks.Validate != nil {
		if !d.hooks.Validate(v) {
			return bwire.WithField(d.name, bwire.ErrValidationFailed)
		}
		return nil
	}
	for _, f := range d.fields {
		if f.validator == nil {
			continue
		}
		if !f.validator.Check(v.fields[f.name]) {
			return bwire.WithField(f.name, bwire.ErrInvalidValue)
		}
	}
	return nil
}
