// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import "github.com/pk910/binstruct/specvals"

// Option configures a Codec at construction time, mirroring the teacher's
// functional-options surface (DynSszOption / WithVerbose / WithLogCb).
type Option func(*Codec)

// WithVerbose toggles diagnostic logging, sent to the codec's log callback
// or, when none is set, printed to standard output.
func WithVerbose(verbose bool) Option {
	return func(c *Codec) { c.verbose = verbose }
}

// WithLogCb installs a callback invoked with diagnostic messages whenever
// WithVerbose(true) is also set. If never set, verbose messages are printed
// to standard output with fmt.Printf.
func WithLogCb(cb func(format string, args ...any)) Option {
	return func(c *Codec) { c.logCb = cb }
}

// WithSpecValues seeds the codec's named spec-value table, used to resolve
// Expr-valued VariableArray bounds at descriptor Build time.
func WithSpecValues(values map[string]any) Option {
	return func(c *Codec) { c.specvals = specvals.NewResolver(values) }
}

// WithSettings overrides the codec's ambient Settings (otherwise
// DefaultSettings()).
func WithSettings(s Settings) Option {
	return func(c *Codec) { c.settings = s }
}

// WithDescriptorRegistry installs a shared DescriptorRegistry, useful when
// several codecs should coalesce concurrent first-time descriptor builds
// through one singleflight group.
func WithDescriptorRegistry(r *DescriptorRegistry) Option {
	return func(c *Codec) { c.registry = r }
}
