// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

import "testing"

func TestFaceNameFromAtomRoundTrips(t *testing.T) {
	for _, name := range []FaceName{Aneg, Apos, Bneg, Bpos, Cneg, Cpos, Dneg, Dpos} {
		got, ok := FaceNameFromAtom(name.String())
		if !ok || got != name {
			t.Errorf("FaceNameFromAtom(%q) = %v, %v; want %v, true", name.String(), got, ok, name)
		}
	}
}

func TestFaceNameFromAtomRejectsUnknownAtoms(t *testing.T) {
	if _, ok := FaceNameFromAtom("E+"); ok {
		t.Error("expected E+ to not name a face")
	}
}

func TestSpinOpposite(t *testing.T) {
	if Left.Opposite() != Right || Right.Opposite() != Left {
		t.Error("Opposite should swap Left and Right")
	}
	if Left.Opposite().Opposite() != Left {
		t.Error("Opposite should be its own inverse")
	}
}

func TestFaceHasThreeRadialsAndThreePushes(t *testing.T) {
	f := New()
	face := Face{Scale: 1, Radials: [3]int{0, 1, 2}, Pushes: [3]int{3, 4, 5}}
	if len(face.Radials) != 3 || len(face.Pushes) != 3 {
		t.Fatalf("expected 3 radials and 3 pushes, got %d/%d", len(face.Radials), len(face.Pushes))
	}
	id := f.CreateFace(face)
	got := f.FindFace(id)
	if got == nil || got.Scale != 1 {
		t.Fatalf("expected to find the created face with scale 1, got %v", got)
	}
	if got.ID() != id {
		t.Errorf("expected ID() to match the id returned by CreateFace, got %v want %v", got.ID(), id)
	}
}
