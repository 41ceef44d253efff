// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the binstruct library.

package binstruct

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var embeddedPresets embed.FS

// LoadPreset reads one of the library's bundled named spec-value presets
// ("default" or "strict") without the caller needing to ship its own YAML
// file, generalizing the teacher's mainnet/minimal preset convention
// (spectests/init.go) to this package's builder surface.
func LoadPreset(name string) (map[string]any, error) {
	data, err := embeddedPresets.ReadFile(fmt.Sprintf("presets/%s.yaml", name))
	if err != nil {
		return nil, fmt.Errorf("binstruct: unknown preset %q: %w", name, err)
	}
	return decodeSpecValueYAML(data)
}

// decodeSpecValueYAML parses a flat YAML mapping of names to integers into a
// spec-value table keyed the way specvals.Resolver expects (uint64 values).
func decodeSpecValueYAML(data []byte) (map[string]any, error) {
	var raw map[string]uint64
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("binstruct: invalid spec-value YAML: %w", err)
	}
	values := make(map[string]any, len(raw))
	for k, v := range raw {
		values[k] = v
	}
	return values, nil
}
