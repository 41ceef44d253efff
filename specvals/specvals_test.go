// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package specvals

import "testing"

func TestResolveLiteralName(t *testing.T) {
	r := NewResolver(map[string]any{"MAX_HEADERS": uint64(128)})
	got, err := r.Resolve("MAX_HEADERS")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 128 {
		t.Fatalf("got %d, want 128", got)
	}
}

func TestResolveExpression(t *testing.T) {
	r := NewResolver(map[string]any{"MAX_HEADERS": uint64(128)})
	got, err := r.Resolve("2 * MAX_HEADERS")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 256 {
		t.Fatalf("got %d, want 256", got)
	}
}

func TestResolveRoundsFractionalUp(t *testing.T) {
	r := NewResolver(map[string]any{"N": uint64(5)})
	got, err := r.Resolve("N / 2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected fractional result rounded up to 3, got %d", got)
	}
}

func TestResolveUnknownNameFails(t *testing.T) {
	r := NewResolver(nil)
	if _, err := r.Resolve("UNKNOWN"); err == nil {
		t.Fatal("expected an error resolving an unknown name")
	}
}

func TestMergeInvalidatesCachedResult(t *testing.T) {
	r := NewResolver(map[string]any{"N": uint64(1)})
	if _, err := r.Resolve("N"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	r.Merge(map[string]any{"N": uint64(2)})
	got, err := r.Resolve("N")
	if err != nil {
		t.Fatalf("Resolve after merge: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected Merge to invalidate the cache, got %d", got)
	}
}

func TestResolveNegativeResultFails(t *testing.T) {
	r := NewResolver(map[string]any{"N": uint64(1)})
	if _, err := r.Resolve("N - 5"); err == nil {
		t.Fatal("expected negative result to fail")
	}
}
