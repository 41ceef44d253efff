// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

// Package binstruct provides declarative binary struct (de)serialization: a
// calculus of fixed-size and single-trailing-variable-size layout nodes, a
// builder surface for declaring them, and an Engine that formats and parses
// values against a built descriptor without any offset table on the wire.
package binstruct

import (
	"fmt"

	"github.com/pk910/binstruct/bwire"
	"github.com/pk910/binstruct/specvals"
)

// Codec is the ambient configuration a program builds once and reuses
// across every Serialize/Deserialize call: a log sink, a spec-value table
// for resolving Expr-valued array bounds, a descriptor registry, and a
// default Settings snapshot. It mirrors the teacher's DynSsz instance: cheap
// to share across goroutines, expensive to recreate per call.
//
// Example usage:
//
//	codec := binstruct.NewCodec(binstruct.WithSpecValues(map[string]any{
//	    "MAX_HEADERS": uint64(128),
//	}))
//	data, err := codec.Serialize(descriptor, value, nil)
//	val, err := codec.Deserialize(descriptor, data)
type Codec struct {
	verbose  bool
	logCb    func(format string, args ...any)
	specvals *specvals.Resolver
	registry *DescriptorRegistry
	settings Settings
}

// NewCodec creates a Codec configured by opts. Spec values default to an
// empty table (every Expr bound that references a name will fail to resolve
// until one is set via WithSpecValues or LoadSpecValuesYAML), and settings
// default to
// DefaultSettings().
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		settings: DefaultSettings(),
		specvals: specvals.NewResolver(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = NewDescriptorRegistry()
	}
	return c
}

func (c *Codec) logf(format string, args ...any) {
	if !c.verbose {
		return
	}
	if c.logCb != nil {
		c.logCb(format, args...)
		return
	}
	fmt.Printf(format, args...)
}

// Settings returns the codec's ambient Settings snapshot.
func (c *Codec) Settings() Settings { return c.settings }

// Registry returns the codec's DescriptorRegistry.
func (c *Codec) Registry() *DescriptorRegistry { return c.registry }

// LoadSpecValuesYAML parses data as a flat YAML mapping of spec-value names
// to numeric values and merges it into the codec's spec-value table,
// generalizing the teacher's preset-loading pattern (spectests/init.go) to
// the builder surface's Expr bounds.
func (c *Codec) LoadSpecValuesYAML(data []byte) error {
	values, err := decodeSpecValueYAML(data)
	if err != nil {
		return err
	}
	c.specvals.Merge(values)
	return nil
}

// Serialize formats value (a *StructValue of descriptor) to its wire
// encoding, appending to buf if non-nil. overrides, if given, wholesale
// replaces the codec's ambient Settings for this one call.
func (c *Codec) Serialize(descriptor *StructDescriptor, value *StructValue, buf []byte, overrides ...Settings) ([]byte, error) {
	settings := resolveSettings(c.settings, overrides...)
	c.logf("binstruct: serializing %s\n", descriptor.name)
	return descriptor.Format(buf, value, settings, EndianTargetDefault)
}

// Deserialize parses data as a *StructValue of descriptor. data must be
// exactly descriptor's encoded length: an FST descriptor requires
// len(data) == descriptor.FixedSize(); a descriptor with a trailing VST
// field consumes every remaining byte into that field.
func (c *Codec) Deserialize(descriptor *StructDescriptor, data []byte, overrides ...Settings) (*StructValue, error) {
	settings := resolveSettings(c.settings, overrides...)
	c.logf("binstruct: deserializing %s (%d bytes)\n", descriptor.name, len(data))

	if descriptor.IsFixedSize() && len(data) != descriptor.FixedSize() {
		if len(data) < descriptor.FixedSize() {
			return nil, bwire.ErrShortBuffer
		}
		return nil, bwire.ErrTrailingBytes
	}

	value, consumed, err := descriptor.Parse(data, settings, EndianTargetDefault)
	if err != nil {
		return nil, err
	}
	if consumed != len(data) {
		return nil, bwire.ErrTrailingBytes
	}
	return value.(*StructValue), nil
}

// effectiveSettings returns codec's ambient Settings, or the package default
// when codec is nil (StructValue.Size accepts a nil codec for callers with
// no Expr-valued bounds to resolve).
func effectiveSettings(codec *Codec) Settings {
	if codec == nil {
		return DefaultSettings()
	}
	return codec.settings
}
