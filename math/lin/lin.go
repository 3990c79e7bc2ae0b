// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the 3 element vector math and scalar utilities
// needed by the fabric's geometry: joint locations, accumulated forces
// and velocities, and the face normals used by the twist generator.
package lin

import (
	"fmt"
	"math"
)

// Various linear math constants.
const (

	// PI and its commonly needed varient, used by the twist generator to
	// place the canonical base triangle at 120 degree intervals.
	PI   float64 = math.Pi
	PIx2 float64 = PI * 2

	// Epsilon is used to distinguish when a float is close enough to a number.
	// Wikipedia: "In set theory epsilon is the limit ordinal of the sequence..."
	Epsilon float64 = 0.000001
)

// AeqZ (~=) almost-equals returns true if the difference between x and zero
// is so small that it doesn't matter.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if the difference between a and b is
// so small that it doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float64) float64 { return (b-a)*ratio + a }

// Clamp returns a scalar value (one of: s, lb, ub) guaranteed to be within
// the range given by lower bound lb and upper bound ub.
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// dumpV3 renders a vector for debug and test output.
func dumpV3(v *V3) string { return fmt.Sprintf("%2.9f", *v) }
