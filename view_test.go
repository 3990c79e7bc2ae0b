// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

import (
	"testing"

	"github.com/galvanized/tensegrity/math/lin"
)

func TestRenderToFillsOneLineLocationPairPerInterval(t *testing.T) {
	f := New()
	a := f.CreateJoint(lin.V3{X: 0, Y: 0, Z: 0})
	b := f.CreateJoint(lin.V3{X: 1, Y: 0, Z: 0})
	f.CreateInterval(a, b, PullA, 1)

	var view View
	w := NewWorld()
	f.RenderTo(&view, w)

	if len(view.JointLocations) != 2*3 {
		t.Errorf("expected 2 joints * 3 floats, got %d", len(view.JointLocations))
	}
	if len(view.LineLocations) != 1*6 {
		t.Errorf("expected 1 interval * 6 floats, got %d", len(view.LineLocations))
	}
	if len(view.LineColors) != 1*6 {
		t.Errorf("expected 1 interval * 6 color floats, got %d", len(view.LineColors))
	}
	if view.Centroid[0] != 0.5 {
		t.Errorf("expected centroid.x 0.5, got %v", view.Centroid[0])
	}
}

func TestRenderToClearsPreviousContents(t *testing.T) {
	f := New()
	a := f.CreateJoint(lin.V3{})
	b := f.CreateJoint(lin.V3{X: 1})
	f.CreateInterval(a, b, PullA, 1)

	var view View
	w := NewWorld()
	f.RenderTo(&view, w)
	f.RenderTo(&view, w) // a second render must not accumulate onto the first.

	if len(view.JointLocations) != 2*3 {
		t.Errorf("expected render to clear between calls, got %d joint floats", len(view.JointLocations))
	}
}

func TestLineColorUsesRoleColorsWhenNeitherFlagIsSet(t *testing.T) {
	w := NewWorld()
	in := newInterval(0, 1, PushA, 1)
	c := lineColor(&in, w)
	want := roleColors[PushA.Tag]
	if c != want {
		t.Errorf("expected role color %v, got %v", want, c)
	}
}

func TestRainbowColorClampsToPaletteBounds(t *testing.T) {
	if c := rainbowColor(-1); c != rainbow[0] {
		t.Errorf("expected clamping to the first color for a negative nuance, got %v", c)
	}
	if c := rainbowColor(2); c != rainbow[len(rainbow)-1] {
		t.Errorf("expected clamping to the last color for an out-of-range nuance, got %v", c)
	}
}
