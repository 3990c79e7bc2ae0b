// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

// config.go loads and saves a World configuration as YAML, the one piece
// of the core boundary that is allowed to touch a filesystem: the World
// itself carries no process-wide state, but callers need a convenient
// way to describe one outside of Go source.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadWorldConfig reads a World from a YAML file. Fields absent from the
// file keep their worldDefaults value.
func LoadWorldConfig(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fabric: read world config: %w", err)
	}
	w := worldDefaults
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("fabric: parse world config: %w", err)
	}
	return &w, nil
}

// SaveWorldConfig writes w to path as YAML.
func SaveWorldConfig(w *World, path string) error {
	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("fabric: encode world config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fabric: write world config: %w", err)
	}
	return nil
}
