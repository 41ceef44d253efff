// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"fmt"

	"github.com/pk910/binstruct/bwire"
)

// Hooks are the optional descriptor-level callbacks the Engine dispatches
// around a struct's serialize/deserialize cycle.
type Hooks struct {
	// BeforeSerialize runs immediately before encoding, given the value
	// about to be written. Returning an error aborts the Format call.
	BeforeSerialize func(v *StructValue) error

	// AfterSerialize runs after encoding succeeds, given the same value.
	AfterSerialize func(v *StructValue) error

	// Validate replaces the default per-field validator pass. Returning
	// false is reported to the caller as ErrValidationFailed.
	Validate func(v *StructValue) bool
}

// field is a resolved, built field: the outcome of one FieldSpec (or one
// field copied in by a Mixin) after Build has run every invariant check.
type field struct {
	name         string
	serializer   Serializer
	hasDefault   bool
	defaultValue any
	validator    Validator
	arrayBounds  *resolvedArrayBounds // non-nil only for VariableArray fields
}

type resolvedArrayBounds struct {
	min, max uint64
}

// FieldSpec declares one field on a DescriptorBuilder before Build resolves
// it into a field.
type FieldSpec struct {
	name       string
	serializer Serializer
	opts       fieldOptions
}

type fieldOptions struct {
	hasDefault   bool
	defaultValue any
	validator    Validator
}

// FieldOption configures a FieldSpec at declaration time.
type FieldOption func(*fieldOptions)

// WithDefault sets the field's default value, used whenever a StructValue is
// created without an explicit initial value for that field.
func WithDefault(value any) FieldOption {
	return func(o *fieldOptions) {
		o.hasDefault = true
		o.defaultValue = value
	}
}

// WithValidator attaches a per-field validator, run by the descriptor's
// default Validate hook (or by the Engine directly on serialize, if the
// caller's Settings.ValidateOnSerialize is set).
func WithValidator(v Validator) FieldOption {
	return func(o *fieldOptions) { o.validator = v }
}

// DescriptorBuilder accumulates fields and mixins before Build produces an
// immutable StructDescriptor. The builder surface is the only place
// field declaration order, mixin expansion, and invariant checking happen;
// once built, a StructDescriptor never changes.
type DescriptorBuilder struct {
	name     string
	specs    []FieldSpec
	mixins   []mixinRef
	hooks    Hooks
	declared map[string]bool
}

type mixinRef struct {
	source *StructDescriptor
	prefix string
}

// NewStructDescriptor starts a builder for a struct named name (used only
// for diagnostics and Name()).
func NewStructDescriptor(name string) *DescriptorBuilder {
	return &DescriptorBuilder{name: name, declared: map[string]bool{}}
}

// Field appends one field declaration. Panics immediately on a duplicate
// field name within this builder, since that is always a programmer error
// caught well before Build runs its full invariant pass.
func (b *DescriptorBuilder) Field(name string, s Serializer, opts ...FieldOption) *DescriptorBuilder {
	if b.declared[name] {
		panic(fmt.Sprintf("binstruct: duplicate field name %q on %s", name, b.name))
	}
	b.declared[name] = true

	spec := FieldSpec{name: name, serializer: s}
	for _, opt := range opts {
		opt(&spec.opts)
	}
	b.specs = append(b.specs, spec)
	return b
}

// Mixin copies every field of an already-built StructDescriptor into this
// builder, optionally prefixing each copied name. Mixin is a descriptor-
// construction-time directive only: it has no runtime serializer identity of
// its own, and is fully expanded away by the time Build returns. Build places
// every mixed-in field (mixins in the order they were added) ahead of every
// field declared with Field, whatever order Mixin and Field were called in.
func (b *DescriptorBuilder) Mixin(source *StructDescriptor, namePrefix string) *DescriptorBuilder {
	b.mixins = append(b.mixins, mixinRef{source: source, prefix: namePrefix})
	return b
}

// Hooks installs the descriptor-level hooks.
func (b *DescriptorBuilder) Hooks(h Hooks) *DescriptorBuilder {
	b.hooks = h
	return b
}

// StructDescriptor is the immutable, built layout of a struct: an ordered
// list of FST fields followed by, at most, one trailing VST field.
type StructDescriptor struct {
	name        string
	fields      []field
	fieldByName map[string]int
	hooks       Hooks
	fixedSize   int
	hasTail     bool
}

func (d *StructDescriptor) Name() string { return d.name }

func (d *StructDescriptor) IsFixedSize() bool { return !d.hasTail }
func (d *StructDescriptor) FixedSize() int    { return d.fixedSize }

func (d *StructDescriptor) DefaultValue() any { return d.NewValue() }

// Build resolves every mixin, checks every invariant (no duplicate names, at
// most one trailing variable-size field, every Expr bound resolvable, every
// default accepted by its validator), and returns the finished descriptor.
// codec is optional and only needed when a field's VariableArray carries an
// Expr bound; Build panics on any violation (with an ErrInvalidDefault
// message for a rejected default, an ErrIllFormedDescriptor one otherwise),
// since these are all caught once at construction and never again at
// runtime.
func (b *DescriptorBuilder) Build(codec ...*Codec) *StructDescriptor {
	var c *Codec
	if len(codec) > 0 {
		c = codec[0]
	}

	expanded := make([]FieldSpec, 0, len(b.specs))
	seen := map[string]bool{}

	appendSpec := func(spec FieldSpec) {
		if seen[spec.name] {
			panic(fmt.Sprintf("binstruct: %v: duplicate field name %q on %s", bwire.ErrIllFormedDescriptor, spec.name, b.name))
		}
		seen[spec.name] = true
		expanded = append(expanded, spec)
	}

	for _, m := range b.mixins {
		for _, f := range m.source.fields {
			name := f.name
			if m.prefix != "" {
				name = m.prefix + f.name
			}
			spec := FieldSpec{name: name, serializer: f.serializer, opts: fieldOptions{
				hasDefault:   f.hasDefault,
				defaultValue: f.defaultValue,
				validator:    f.validator,
			}}
			appendSpec(spec)
		}
	}
	for _, spec := range b.specs {
		appendSpec(spec)
	}

	fields := make([]field, 0, len(expanded))
	fieldByName := make(map[string]int, len(expanded))
	fixedSize := 0
	hasTail := false

	for i, spec := range expanded {
		if hasTail {
			panic(fmt.Sprintf("binstruct: %v: %s declares a field after its trailing variable-size field", bwire.ErrIllFormedDescriptor, b.name))
		}

		f := field{
			name:         spec.name,
			serializer:   spec.serializer,
			hasDefault:   spec.opts.hasDefault,
			defaultValue: spec.opts.defaultValue,
			validator:    spec.opts.validator,
		}

		if va, ok := spec.serializer.(*VariableArray); ok {
			hasTail = true
			if i != len(expanded)-1 {
				panic(fmt.Sprintf("binstruct: %v: %s's variable-size field %q must be last", bwire.ErrIllFormedDescriptor, b.name, spec.name))
			}
			min, max, err := va.resolveBounds(c)
			if err != nil {
				panic(fmt.Sprintf("binstruct: %s field %q: %v", b.name, spec.name, err))
			}
			f.arrayBounds = &resolvedArrayBounds{min: min, max: max}
		} else if nested, ok := spec.serializer.(*StructDescriptor); ok && !nested.IsFixedSize() {
			hasTail = true
			if i != len(expanded)-1 {
				panic(fmt.Sprintf("binstruct: %v: %s's variable-size field %q must be last", bwire.ErrIllFormedDescriptor, b.name, spec.name))
			}
		} else {
			if !spec.serializer.IsFixedSize() {
				panic(fmt.Sprintf("binstruct: %v: %s field %q is variable-size but not a recognized tail kind", bwire.ErrIllFormedDescriptor, b.name, spec.name))
			}
			fixedSize += spec.serializer.FixedSize()
		}

		if f.hasDefault && f.validator != nil && !f.validator.Check(f.defaultValue) {
			panic(fmt.Sprintf("binstruct: %v: %s field %q's default fails its own validator", bwire.ErrInvalidDefault, b.name, spec.name))
		}

		fieldByName[f.name] = len(fields)
		fields = append(fields, f)
	}

	return &StructDescriptor{
		name:        b.name,
		fields:      fields,
		fieldByName: fieldByName,
		hooks:       b.hooks,
		fixedSize:   fixedSize,
		hasTail:     hasTail,
	}
}
