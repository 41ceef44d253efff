// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

// Package codegen emits a small, static Go source file per StructDescriptor:
// a single Format<StructName> free function that appends the described
// fields' wire encoding to a buffer without going through the Engine
// dispatch; no parse function is generated. It serves callers
// on a hot path who've already paid the one-time descriptor Build() cost
// and want generated code instead. It is a drastically smaller relative of
// the teacher's codegen/dynssz-gen packages, which generate code from a
// reflected Go type instead of a built descriptor.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/imports"
)

// FieldPlan is the minimal shape the generator needs out of a
// binstruct.StructDescriptor field: enough to emit a write statement
// without importing the root package.
type FieldPlan struct {
	// Name is the Go-exported field name to emit.
	Name string
	// GoType is the Go type the field decodes to ("uint32", "[]byte", ...).
	GoType string
	// Width is the field's fixed byte width, or 0 for the trailing
	// variable-size field.
	Width int
	// Endian is "big", "little", or "host".
	Endian string
}

// Plan is everything needed to generate one descriptor's static codec.
type Plan struct {
	// Package is the package name the generated file declares.
	Package string
	// StructName is the Go type name the generated functions reference.
	StructName string
	// Fields are the descriptor's fields in wire order; at most the last
	// one may have Width == 0 (the trailing variable-size field).
	Fields []FieldPlan
}

const codeTemplate = `// Code generated by binstruct/codegen. DO NOT EDIT.

package {{.Package}}

import "encoding/binary"

// Format{{.StructName}} appends {{.StructName}}'s wire encoding to buf.
func Format{{.StructName}}(buf []byte, v *{{.StructName}}) []byte {
{{- range .Fields}}
{{- if eq .Width 0}}
	buf = append(buf, v.{{.Name}}...)
{{- else if eq .GoType "byte"}}
	buf = append(buf, v.{{.Name}})
{{- else}}
	{
		var tmp [{{.Width}}]byte
		binary.{{.Endian}}Endian.Put{{.PutSuffix}}(tmp[:], v.{{.Name}})
		buf = append(buf, tmp[:]...)
	}
{{- end}}
{{- end}}
	return buf
}
`

// PutSuffix returns the encoding/binary.ByteOrder method suffix for a
// field's byte width ("Uint32" for a 4-byte field), used by the template.
func (f FieldPlan) PutSuffix() string {
	switch f.Width {
	case 2:
		return "Uint16"
	case 4:
		return "Uint32"
	case 8:
		return "Uint64"
	default:
		return "Uint8"
	}
}

// Generate renders plan to formatted, import-resolved Go source.
func Generate(plan Plan) ([]byte, error) {
	for i := range plan.Fields {
		plan.Fields[i].Endian = capitalize(plan.Fields[i].Endian)
	}

	tmpl, err := template.New("codegen").Funcs(template.FuncMap{}).Parse(codeTemplate)
	if err != nil {
		return nil, fmt.Errorf("codegen: parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, plan); err != nil {
		return nil, fmt.Errorf("codegen: render template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: gofmt generated source: %w", err)
	}

	resolved, err := imports.Process("generated.go", formatted, nil)
	if err != nil {
		return nil, fmt.Errorf("codegen: resolve imports: %w", err)
	}

	return resolved, nil
}

func capitalize(s string) string {
	if s == "" {
		return "Little"
	}
	if s == "host" {
		return "Native"
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// ModulePath reads the module path declared in a go.mod file's contents.
// Generate does not call it; the generated source does not depend on it.
func ModulePath(goModContents []byte) (string, error) {
	f, err := modfile.Parse("go.mod", goModContents, nil)
	if err != nil {
		return "", fmt.Errorf("codegen: parse go.mod: %w", err)
	}
	if f.Module == nil {
		return "", fmt.Errorf("codegen: go.mod has no module directive")
	}
	return f.Module.Mod.Path, nil
}
