// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

import (
	"fmt"

	"github.com/galvanized/tensegrity/math/lin"
)

// Surface interaction constants from the ground-plane force law.
const (
	resurface   = 0.01  // Frozen/Sticky resurface altitude.
	antigravity = -0.001 // Bouncy bounce-back acceleration.
)

// SurfaceCharacter selects how a joint resolves when its altitude drops
// to or below zero.
type SurfaceCharacter uint8

const (
	Frozen SurfaceCharacter = iota
	Sticky
	Slippery
	Bouncy
)

var surfaceCharacterNames = [...]string{"frozen", "sticky", "slippery", "bouncy"}

func (c SurfaceCharacter) String() string {
	if int(c) < len(surfaceCharacterNames) {
		return surfaceCharacterNames[c]
	}
	return "frozen"
}

// MarshalYAML renders the surface character as its lowercase tenscript name.
func (c SurfaceCharacter) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts any of the four lowercase surface character names.
func (c *SurfaceCharacter) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	for i, n := range surfaceCharacterNames {
		if n == name {
			*c = SurfaceCharacter(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized surface character %q", name)
}

// Joint is a point mass. Its force and interval-mass accumulators are
// zeroed by physics() at the end of every tick.
type Joint struct {
	Location     lin.V3
	Velocity     lin.V3
	Force        lin.V3
	IntervalMass float64
}

// physics advances the joint by one tick given the world's gravity,
// drag, and surface character. The force and interval-mass accumulators
// are always cleared before returning.
func (j *Joint) physics(w *World) {
	altitude := j.Location.Y
	if altitude > 0 {
		j.Velocity.Y -= w.Gravity
		j.Velocity.Scale(&j.Velocity, 1-w.Drag)
		if j.IntervalMass > 0 {
			var a lin.V3
			a.Scale(&j.Force, 1/j.IntervalMass)
			j.Velocity.Add(&j.Velocity, &a)
		}
	} else {
		if j.IntervalMass > 0 {
			var a lin.V3
			a.Scale(&j.Force, 1/j.IntervalMass)
			j.Velocity.Add(&j.Velocity, &a)
		}
		submerged := -altitude
		if submerged >= 1 {
			submerged = 0
		}
		cushioned := 1 - submerged
		switch w.SurfaceCharacter {
		case Frozen:
			j.Velocity = lin.V3{}
			j.Location.Y = resurface
		case Sticky:
			j.Velocity.Scale(&j.Velocity, cushioned)
			j.Velocity.Y = submerged * resurface
		case Slippery:
			j.Velocity = lin.V3{}
			j.Location = lin.V3{}
		case Bouncy:
			j.Velocity.Scale(&j.Velocity, cushioned)
			j.Velocity.Y -= antigravity * submerged
		}
	}
	j.Location.Add(&j.Location, &j.Velocity)
	j.Force = lin.V3{}
	j.IntervalMass = 0
}
