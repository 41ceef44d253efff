// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package codegen

import (
	"strings"
	"testing"
)

func TestGenerateProducesCompilableShape(t *testing.T) {
	plan := Plan{
		Package:    "wire",
		StructName: "Header",
		Fields: []FieldPlan{
			{Name: "Opcode", GoType: "byte", Width: 1},
			{Name: "DataLength", GoType: "uint32", Width: 4, Endian: "little"},
		},
	}

	src, err := Generate(plan)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	text := string(src)
	for _, want := range []string{
		"package wire",
		"func FormatHeader(buf []byte, v *Header) []byte",
		"v.Opcode",
		"binary.LittleEndian.PutUint32",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("generated source missing %q:\n%s", want, text)
		}
	}
}

func TestModulePath(t *testing.T) {
	goMod := []byte("module github.com/pk910/binstruct\n\ngo 1.22.2\n")
	path, err := ModulePath(goMod)
	if err != nil {
		t.Fatalf("ModulePath: %v", err)
	}
	if path != "github.com/pk910/binstruct" {
		t.Fatalf("got %q", path)
	}
}
