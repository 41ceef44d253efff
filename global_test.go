// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import "testing"

func TestGetGlobalCodecLazyInit(t *testing.T) {
	SetGlobalCodec(nil)
	c := GetGlobalCodec()
	if c == nil {
		t.Fatal("expected a lazily-created global codec")
	}
	if GetGlobalCodec() != c {
		t.Fatal("expected repeated calls to return the same instance")
	}
}

func TestSetGlobalSpecValues(t *testing.T) {
	SetGlobalSpecValues(map[string]any{"MAX_ITEMS": uint64(10)})
	c := GetGlobalCodec()

	n, err := c.specvals.Resolve("MAX_ITEMS")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if n != 10 {
		t.Fatalf("expected 10, got %d", n)
	}
}
