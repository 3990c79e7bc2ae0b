// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorldConfigRoundTripsThroughYAML(t *testing.T) {
	w := NewWorld(Surface(Bouncy), PushPull(true), Colors(true, false), Instance(3))
	w.Gravity = 0.5

	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := SaveWorldConfig(w, path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if loaded.SurfaceCharacter != Bouncy {
		t.Errorf("expected surface character Bouncy, got %v", loaded.SurfaceCharacter)
	}
	if !loaded.PushAndPull || !loaded.ColorPushes || loaded.ColorPulls {
		t.Errorf("expected push/pull and color flags to round trip, got push_and_pull=%v color_pushes=%v color_pulls=%v",
			loaded.PushAndPull, loaded.ColorPushes, loaded.ColorPulls)
	}
	if loaded.Instance != 3 {
		t.Errorf("expected instance 3, got %v", loaded.Instance)
	}
	if loaded.Gravity != 0.5 {
		t.Errorf("expected gravity 0.5, got %v", loaded.Gravity)
	}
}

func TestLoadWorldConfigFillsAbsentFieldsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("surface_character: sticky\n"), 0o644); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	loaded, err := LoadWorldConfig(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if loaded.SurfaceCharacter != Sticky {
		t.Errorf("expected surface character Sticky, got %v", loaded.SurfaceCharacter)
	}
	if loaded.Gravity != worldDefaults.Gravity {
		t.Errorf("expected absent gravity to keep its default %v, got %v", worldDefaults.Gravity, loaded.Gravity)
	}
}

func TestLoadWorldConfigMissingFileIsAnError(t *testing.T) {
	if _, err := LoadWorldConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error loading a nonexistent file")
	}
}
