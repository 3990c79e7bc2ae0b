// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

// role.go defines the closed catalog of interval roles. A Role is an
// immutable value object: callers may compare roles by identity or by tag.

import "math"

// Root constants shared by reference lengths in the role catalog.
var (
	root3 = math.Sqrt(3)
	root6 = math.Sqrt(6)
	phi   = (1 + math.Sqrt(5)) / 2
)

// Role is an immutable descriptor for an interval: whether it pushes or
// pulls, its reference (rest) length, stiffness, and linear density.
type Role struct {
	Tag              string  // short label, also used in view color lookups.
	Push             bool    // true for a rigid compression member.
	ReferenceLength  float64 // unscaled rest length.
	Stiffness        float64 // force = strain * Stiffness.
	LinearDensity    float64 // mass contributed per unit of ideal length.
}

// The closed role catalog. Roles are drawn from exactly these six values;
// no other Role is ever constructed.
var (
	PushA = &Role{Tag: "A", Push: true, ReferenceLength: root6, Stiffness: 1, LinearDensity: 1}
	PushB = &Role{Tag: "[B]", Push: true, ReferenceLength: phi * root3, Stiffness: 1, LinearDensity: 1}
	PullA = &Role{Tag: "a", Push: false, ReferenceLength: 1, Stiffness: 1, LinearDensity: 1}
	PullB = &Role{Tag: "b", Push: false, ReferenceLength: root3, Stiffness: 1, LinearDensity: 1}

	// PullTogether closes a post-mark pair; unit rest length per §4.4.
	PullTogether = &Role{Tag: "*", Push: false, ReferenceLength: 1, Stiffness: 1, LinearDensity: 1}

	// PushShort is tagged "long" in the source material; the role table,
	// not the name, is canonical (see design notes on apparent misnomers).
	PushShort = &Role{Tag: "long", Push: true, ReferenceLength: root6, Stiffness: 1, LinearDensity: 1}
)

// roleColors gives the fixed role-color table used when neither
// color_pushes nor color_pulls is set. Indexed by Tag.
var roleColors = map[string][3]float64{
	"A":    {1, 1, 1},
	"[B]":  {0.4, 0.4, 1},
	"a":    {0.9, 0.5, 0.1},
	"b":    {0.6, 0.2, 0.8},
	"*":    {0.2, 0.8, 0.2},
	"long": {1, 1, 1},
}
