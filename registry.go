// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// DescriptorRegistry caches built StructDescriptors by name and coalesces
// concurrent first-time builds of the same name through a singleflight
// group, the same role the teacher's TypeCache plays for reflected type
// descriptors, but keyed on a builder-supplied name instead of a
// reflect.Type since this package has no reflection to key on.
type DescriptorRegistry struct {
	mutex       sync.RWMutex
	descriptors map[string]*StructDescriptor
	group       singleflight.Group
}

// NewDescriptorRegistry creates an empty registry.
func NewDescriptorRegistry() *DescriptorRegistry {
	return &DescriptorRegistry{
		descriptors: map[string]*StructDescriptor{},
	}
}

// GetOrBuild returns the cached descriptor for name, building it with build
// if absent. Concurrent calls for the same name share one build via
// singleflight; build itself may panic on an ill-formed descriptor, which
// propagates to every waiting caller.
func (r *DescriptorRegistry) GetOrBuild(name string, build func() *StructDescriptor) *StructDescriptor {
	r.mutex.RLock()
	d, ok := r.descriptors[name]
	r.mutex.RUnlock()
	if ok {
		return d
	}

	result, _, _ := r.group.Do(name, func() (any, error) {
		r.mutex.RLock()
		if d, ok := r.descriptors[name]; ok {
			r.mutex.RUnlock()
			return d, nil
		}
		r.mutex.RUnlock()

		built := build()

		r.mutex.Lock()
		r.descriptors[name] = built
		r.mutex.Unlock()
		return built, nil
	})

	return result.(*StructDescriptor)
}

// Get returns the cached descriptor for name, if any.
func (r *DescriptorRegistry) Get(name string) (*StructDescriptor, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}
