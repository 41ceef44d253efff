// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

// Package specvals resolves the named/expression bounds a VariableArray may
// carry (e.g. "2*MAX_HEADERS") against a codec's spec-value table. It is the
// binstruct analogue of the teacher's specvals.go, generalized from
// struct-tag strings to the builder's BoundExpr values.
package specvals

import (
	"fmt"
	"sync"

	"github.com/casbin/govaluate"
)

// Resolver evaluates named bound expressions against a fixed table of
// values, caching parsed expressions the same way the teacher's
// cachedSpecValue does for dynssz-size/dynssz-max tags.
type Resolver struct {
	values map[string]any

	mu    sync.Mutex
	cache map[string]cachedValue
}

type cachedValue struct {
	resolved bool
	value    uint64
	err      error
}

// NewResolver builds a Resolver over values. A nil map resolves no names;
// every expression that references a name will fail with an unresolved-name
// error.
func NewResolver(values map[string]any) *Resolver {
	if values == nil {
		values = map[string]any{}
	}
	return &Resolver{
		values: values,
		cache:  map[string]cachedValue{},
	}
}

// Merge adds or overrides named values in the resolver's table and clears
// any cached evaluation, since a previously unresolved or stale expression
// may now resolve differently.
func (r *Resolver) Merge(values map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range values {
		r.values[k] = v
	}
	r.cache = map[string]cachedValue{}
}

// Resolve evaluates expr (a literal name or a govaluate expression
// referencing names in the resolver's table) and returns it as a uint64,
// rounding any fractional result up to the next whole unit since a partial
// byte cannot be serialized.
func (r *Resolver) Resolve(expr string) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[expr]; ok {
		return cached.value, cached.err
	}

	value, err := r.evaluate(expr)
	r.cache[expr] = cachedValue{resolved: err == nil, value: value, err: err}
	return value, err
}

func (r *Resolver) evaluate(expr string) (uint64, error) {
	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("specvals: invalid bound expression %q: %w", expr, err)
	}

	result, err := expression.Evaluate(r.values)
	if err != nil {
		return 0, fmt.Errorf("specvals: unresolved bound expression %q: %w", expr, err)
	}

	f, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("specvals: bound expression %q did not evaluate to a number", expr)
	}
	if f < 0 {
		return 0, fmt.Errorf("specvals: bound expression %q evaluated to a negative value", expr)
	}

	value := uint64(f)
	if float64(value) < f {
		value++
	}
	return value, nil
}
