// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

import "github.com/galvanized/tensegrity/math/lin"

// Interval is a directed spring between two joints, referenced by stable
// integer indices into the fabric's joint slice.
type Interval struct {
	Alpha, Omega int     // joint indices; always distinct.
	Role         *Role
	RestLength   float64 // current committed rest length.
	Target       float64 // shadow target rest length, morphed toward.
	Countdown    uint32  // ticks remaining in the current morph.
	MaxCountdown uint32  // countdown value at the start of the morph.
	unit         lin.V3  // cached direction, alpha -> omega.
	Strain       float64 // last-computed strain.
}

// newInterval creates an interval with no morph in progress.
func newInterval(alpha, omega int, role *Role, restLength float64) Interval {
	return Interval{
		Alpha:      alpha,
		Omega:      omega,
		Role:       role,
		RestLength: restLength,
		Target:     restLength,
	}
}

// idealLength returns the ideal length at this tick: the committed rest
// length once the morph countdown reaches zero, otherwise a linear
// interpolation toward Target.
func (in *Interval) idealLength() float64 {
	if in.Countdown == 0 {
		return in.RestLength
	}
	p := float64(in.MaxCountdown-in.Countdown) / float64(in.MaxCountdown)
	return lin.Lerp(in.RestLength, in.Target, p)
}

// multiplyRestLength schedules a morph of this interval's rest length by
// the given factor over the given countdown. Used by Slack->Shaping.
func (in *Interval) multiplyRestLength(factor float64, countdown uint32) {
	in.RestLength = in.idealLength()
	in.Target = in.RestLength * factor
	in.MaxCountdown = countdown
	in.Countdown = countdown
}

// stageFactor returns the push-interval length multiplier for the given
// stage, per §4.1 step 1.
func stageFactor(stage Stage, w *World, nuance float64) float64 {
	switch stage {
	case Growing, Shaping:
		return 1 + w.ShapingPretenstFactor
	case Pretensing:
		return 1 + w.PretenstFactor*nuance
	case Pretenst:
		return 1 + w.PretenstFactor
	default: // Slack
		return 1
	}
}

// physics runs one tick of the per-tick algorithm of §4.1, steps 1-3.
// joints is the fabric's joint slice; stage is the fabric's current
// life-cycle stage; nuance is the Pretensing interpolation ratio.
func (in *Interval) physics(joints []Joint, stage Stage, w *World, nuance float64) {
	ideal := in.idealLength()
	if in.Role.Push {
		ideal *= stageFactor(stage, w, nuance)
	}

	alpha := &joints[in.Alpha]
	omega := &joints[in.Omega]
	in.unit.Sub(&omega.Location, &alpha.Location)
	real := in.unit.Len()
	if real > 0 {
		in.unit.Scale(&in.unit, 1/real)
	}

	strain := (real - ideal) / ideal
	if !w.PushAndPull {
		if in.Role.Push && strain > 0 {
			strain = 0
		} else if !in.Role.Push && strain < 0 {
			strain = 0
		}
	}
	in.Strain = strain

	force := strain * in.Role.Stiffness
	if stage <= Slack {
		force *= w.ShapingStiffnessFactor
	}

	var f lin.V3
	f.Scale(&in.unit, force*0.5)
	alpha.Force.Add(&alpha.Force, &f)
	omega.Force.Sub(&omega.Force, &f)

	halfMass := ideal * in.Role.LinearDensity / 2
	alpha.IntervalMass += halfMass
	omega.IntervalMass += halfMass
}

// tickCountdown advances the interval's morph countdown toward zero; when
// it reaches zero the target length is committed as the new rest length.
func (in *Interval) tickCountdown() {
	if in.Countdown == 0 {
		return
	}
	in.Countdown--
	if in.Countdown == 0 {
		in.RestLength = in.Target
	}
}
