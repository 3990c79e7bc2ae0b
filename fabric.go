// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package fabric

import "github.com/galvanized/tensegrity/math/lin"

// Fabric is the aggregate owning every joint, interval, and face. Joints
// and intervals are addressed by stable integer indices that never
// change once allocated; only faces may be removed, through RemoveFace
// (which twist.FacesToLoop calls when it welds two faces).
type Fabric struct {
	stage         Stage
	age           uint64
	busyCountdown uint32
	currentShape  int

	joints    []Joint
	intervals []Interval
	faces     faceTable

	Stats Stats
}

// New returns an empty Fabric in the Growing stage.
func New() *Fabric {
	return &Fabric{stage: Growing}
}

// Stage returns the fabric's current life-cycle stage.
func (f *Fabric) Stage() Stage { return f.stage }

// Age returns the total number of integration ticks applied so far.
func (f *Fabric) Age() uint64 { return f.age }

// JointCount, IntervalCount report the size of the fabric.
func (f *Fabric) JointCount() int    { return len(f.joints) }
func (f *Fabric) IntervalCount() int { return len(f.intervals) }

// CreateJoint appends a new point mass at the given location and returns
// its stable index.
func (f *Fabric) CreateJoint(loc lin.V3) int {
	f.joints = append(f.joints, Joint{Location: loc})
	return len(f.joints) - 1
}

// CreateInterval appends a new spring between two joint indices and
// returns its stable index. alpha and omega must differ.
func (f *Fabric) CreateInterval(alpha, omega int, role *Role, restLength float64) int {
	f.intervals = append(f.intervals, newInterval(alpha, omega, role, restLength))
	return len(f.intervals) - 1
}

// CreateFace stores a new face and returns its unique, stable id.
func (f *Fabric) CreateFace(face Face) UniqueId {
	return f.faces.create(face)
}

// FindFace returns the face for id, or nil if id is stale or removed.
func (f *Fabric) FindFace(id UniqueId) *Face { return f.faces.get(id) }

// RemoveFace discards a face. Its id becomes stale immediately.
func (f *Fabric) RemoveFace(id UniqueId) { f.faces.remove(id) }

// EachFace calls fn for every currently live face.
func (f *Fabric) EachFace(fn func(*Face)) { f.faces.each(fn) }

// Joint returns a pointer to the joint at the given stable index.
func (f *Fabric) Joint(index int) *Joint { return &f.joints[index] }

// Interval returns a pointer to the interval at the given stable index.
func (f *Fabric) Interval(index int) *Interval { return &f.intervals[index] }

// tick runs one integration step: interval force accumulation and morph
// countdown in insertion order, then joint integration in insertion
// order. Forces are summed on joints, so interval order doesn't affect
// the result; only the cross-tick countdown and age counters are ordered.
func (f *Fabric) tick(w *World, nuance float64) {
	for i := range f.intervals {
		in := &f.intervals[i]
		in.physics(f.joints, f.stage, w, nuance)
		in.tickCountdown()
	}
	for i := range f.joints {
		f.joints[i].physics(w)
	}
}

// maxIntervalCountdown returns the largest remaining morph countdown
// across all intervals, or zero if there are none.
func (f *Fabric) maxIntervalCountdown() uint32 {
	var max uint32
	for i := range f.intervals {
		if c := f.intervals[i].Countdown; c > max {
			max = c
		}
	}
	return max
}

// setAltitude translates every joint so the lowest one sits at the given
// altitude, and zeros all velocities. Iterate calls it on every call made
// in the Growing or Shaping stage, including the one entering Shaping.
func (f *Fabric) setAltitude(altitude float64) {
	if len(f.joints) == 0 {
		return
	}
	lowY := f.joints[0].Location.Y
	for i := range f.joints {
		if y := f.joints[i].Location.Y; y < lowY {
			lowY = y
		}
	}
	delta := altitude - lowY
	for i := range f.joints {
		f.joints[i].Location.Y += delta
		f.joints[i].Velocity = lin.V3{}
	}
}

// slackToShaping multiplies every push interval's target rest length by
// shaping_pretenst_factor, scheduling a morph over interval_countdown
// ticks, then re-enters Shaping.
func (f *Fabric) slackToShaping(w *World) {
	for i := range f.intervals {
		in := &f.intervals[i]
		if in.Role.Push {
			in.multiplyRestLength(w.ShapingPretenstFactor, w.IntervalCountdown)
		}
	}
	f.stage = Shaping
}

// startPretensing begins the Pretensing stage with a fresh busy countdown.
func (f *Fabric) startPretensing(w *World) {
	f.busyCountdown = w.PretensingCountdown
	f.stage = Pretensing
}

// Iterate advances the fabric by w.IterationsPerFrame integration ticks,
// applies any stage transition implied by requested, and returns the
// resulting stage together with whether the fabric is still busy (a
// countdown has not yet reached zero). See §4.1.
func (f *Fabric) Iterate(requested Stage, w *World) (Stage, bool) {
	nuance := 0.0
	if w.PretensingCountdown > 0 {
		nuance = (float64(w.PretensingCountdown) - float64(f.busyCountdown)) / float64(w.PretensingCountdown)
	}
	for i := uint32(0); i < w.IterationsPerFrame; i++ {
		f.tick(w, nuance)
	}
	f.age += uint64(w.IterationsPerFrame)
	f.Stats.Ticks += uint64(w.IterationsPerFrame)
	f.Stats.Calls++

	switch f.stage {
	case Growing:
		f.setAltitude(0)
		if requested == Shaping {
			f.stage = Shaping
			f.Stats.StageChanges++
			return f.stage, f.busy(w)
		}
		return f.stage, f.busy(w)
	case Shaping:
		f.setAltitude(0)
		if requested == Slack {
			f.stage = Slack
			f.Stats.StageChanges++
			return f.stage, f.busy(w)
		}
		return f.stage, f.busy(w)
	case Slack:
		switch requested {
		case Pretensing:
			f.startPretensing(w)
			f.Stats.StageChanges++
			return f.stage, f.busy(w)
		case Shaping:
			f.slackToShaping(w)
			f.Stats.StageChanges++
			return f.stage, f.busy(w)
		}
		return f.stage, f.busy(w)
	}

	// Pretensing and Pretenst: the only remaining transition is automatic.
	if f.stage == Pretensing && f.busyCountdown == 0 {
		f.stage = Pretenst
		f.Stats.StageChanges++
	}
	return f.stage, f.busy(w)
}

// busy reports whether the caller should consider the fabric still
// settling: a morph is in progress, or the busy countdown has not yet
// reached zero. When no morph is in progress it also advances the busy
// countdown toward zero.
func (f *Fabric) busy(w *World) bool {
	if f.maxIntervalCountdown() > 0 {
		return true
	}
	if f.busyCountdown == 0 {
		return false
	}
	next := f.busyCountdown - w.IterationsPerFrame
	if next > f.busyCountdown { // rollover
		next = 0
	}
	f.busyCountdown = next
	return next > 0
}
