// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"bytes"
	"fmt"

	"github.com/pk910/binstruct/bwire"
)

// StructValue is a live instance of a StructDescriptor: a map from field
// name to tagged value, created with the descriptor's defaults and then
// overridden field by field.
type StructValue struct {
	descriptor *StructDescriptor
	fields     map[string]any
}

// NewValue creates a StructValue populated with every field's declared
// default (or its domain's zero value, if the field declares none).
func (d *StructDescriptor) NewValue() *StructValue {
	v := &StructValue{descriptor: d, fields: make(map[string]any, len(d.fields))}
	for _, f := range d.fields {
		if f.hasDefault {
			v.fields[f.name] = deepCopyValue(f.defaultValue)
		} else {
			v.fields[f.name] = f.serializer.DefaultValue()
		}
	}
	return v
}

// WithInitial returns a copy of v with the named fields overridden. It
// rejects a name that isn't on the descriptor with ErrUnknownField-class
// failure, surfaced as a panic since this is construction-time misuse.
func (v *StructValue) WithInitial(initial map[string]any) *StructValue {
	out := &StructValue{descriptor: v.descriptor, fields: make(map[string]any, len(v.fields))}
	for k, val := range v.fields {
		out.fields[k] = deepCopyValue(val)
	}
	for name, val := range initial {
		if _, ok := v.descriptor.fieldByName[name]; !ok {
			panic(fmt.Sprintf("binstruct: %q is not a field of %s", name, v.descriptor.name))
		}
		out.fields[name] = deepCopyValue(val)
	}
	return out
}

// Get returns the named field's current value.
func (v *StructValue) Get(name string) any {
	return v.fields[name]
}

// Set overwrites the named field's current value.
func (v *StructValue) Set(name string, value any) {
	if _, ok := v.descriptor.fieldByName[name]; !ok {
		panic(fmt.Sprintf("binstruct: %q is not a field of %s", name, v.descriptor.name))
	}
	v.fields[name] = value
}

// Descriptor returns the StructDescriptor this value was built from.
func (v *StructValue) Descriptor() *StructDescriptor { return v.descriptor }

// Equal reports whether v and other carry the same field values under the
// same descriptor.
func (v *StructValue) Equal(other *StructValue) bool {
	if other == nil || v.descriptor != other.descriptor {
		return false
	}
	for name, val := range v.fields {
		if !valuesEqual(val, other.fields[name]) {
			return false
		}
	}
	return true
}

// valuesEqual compares two tagged values structurally, matching each value
// kind this package's Serializers produce.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *StructValue:
		bv, ok := b.(*StructValue)
		return ok && av.Equal(bv)
	default:
		return a == b
	}
}

// deepCopyValue clones a tagged value so WithInitial and descriptor defaults
// never alias mutable backing arrays across StructValue instances.
func deepCopyValue(value any) any {
	switch v := value.(type) {
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = deepCopyValue(e)
		}
		return out
	case *StructValue:
		return v.clone()
	default:
		return v
	}
}

func (v *StructValue) clone() *StructValue {
	out := &StructValue{descriptor: v.descriptor, fields: make(map[string]any, len(v.fields))}
	for k, val := range v.fields {
		out.fields[k] = deepCopyValue(val)
	}
	return out
}

// Size returns the encoded wire size of v in its current state: the sum of
// every FST field's fixed size plus the single trailing VST field's current
// length, if the descriptor has one. Sizing is a pure computed property
// (spec.md §4.5): it must never trigger a BeforeSerialize/AfterSerialize
// hook or a ValidateOnSerialize pass, including transitively through a
// nested struct field's own hooks, so it forces DryRun and disables
// ValidateOnSerialize on the settings it formats with regardless of what
// the codec's ambient settings say.
func (v *StructValue) Size(codec *Codec) (int, error) {
	settings := effectiveSettings(codec)
	settings.DryRun = true
	settings.ValidateOnSerialize = false

	total := 0
	for _, f := range v.descriptor.fields {
		if f.serializer.IsFixedSize() {
			total += f.serializer.FixedSize()
			continue
		}
		buf, err := f.serializer.Format(nil, v.fields[f.name], settings, EndianTargetDefault)
		if err != nil {
			return 0, bwire.WithField(f.name, err)
		}
		total += len(buf)
	}
	return total, nil
}
