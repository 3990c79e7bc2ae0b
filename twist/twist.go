// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package twist is the geometric constructor: given an optional parent
// face and a chirality, it builds a new tensegrity module (single or
// double twist) fused to the parent, producing new faces for further
// growth.
package twist

import (
	"math"

	fabric "github.com/galvanized/tensegrity"
	"github.com/galvanized/tensegrity/math/lin"
)

const radiusFactor = 1.4

// pair is one push interval's two endpoint locations before the joints
// backing them exist.
type pair struct {
	Alpha, Omega lin.V3
}

// baseTriangle returns the three points a new twist is built on top of:
// a face's radial joint locations, or the canonical equilateral in the
// y=0 plane when there is no parent.
func baseTriangle(f *fabric.Fabric, face *fabric.Face) [3]lin.V3 {
	if face != nil {
		joints := radialJoints(f, face)
		var pts [3]lin.V3
		for i, j := range joints {
			pts[i] = f.Joint(j).Location
		}
		return pts
	}
	var pts [3]lin.V3
	order := [3]float64{0, 2, 1}
	for i, idx := range order {
		angle := idx * lin.PIx2 / 3
		pts[i] = lin.V3{X: math.Cos(angle), Y: 0, Z: math.Sin(angle)}
	}
	return pts
}

// radialJoints returns a face's three outer joint indices, in radial
// order: the omega end of each of its radial intervals.
func radialJoints(f *fabric.Fabric, face *fabric.Face) [3]int {
	var js [3]int
	for i, ri := range face.Radials {
		js[i] = f.Interval(ri).Omega
	}
	return js
}

func middle(a, b, c lin.V3) lin.V3 {
	var m lin.V3
	m.Add(&a, &b)
	m.Add(&m, &c)
	m.Scale(&m, 1.0/3.0)
	return m
}

func middleOf(pts [3]lin.V3) lin.V3 { return middle(pts[0], pts[1], pts[2]) }

// normal returns the face normal of the triangle (p2-p1) x (p1-p0),
// normalized.
func normal(pts [3]lin.V3) lin.V3 {
	var v01, v12, n lin.V3
	v01.Sub(&pts[1], &pts[0])
	v12.Sub(&pts[2], &pts[1])
	n.Cross(&v12, &v01)
	return *n.Unit()
}

// createPairs computes the three (alpha, omega) endpoint pairs of a
// twist's push intervals from its base triangle, per §4.2.
func createPairs(base [3]lin.V3, spin fabric.Spin, alphaScale, omegaScale float64) [3]pair {
	mid := middleOf(base)
	n := normal(base)
	var up lin.V3
	up.Scale(&n, -(alphaScale + omegaScale) / 2)

	fromMid := func(index, offset int) lin.V3 {
		p := base[(index+3+offset)%3]
		var v lin.V3
		v.Sub(&p, &mid)
		return v
	}
	spinOffset := 0
	if spin == fabric.Right {
		spinOffset = 1
	}

	var pairs [3]pair
	for i := 0; i < 3; i++ {
		v0, v1 := fromMid(i, 0), fromMid(i, 1)
		var between lin.V3
		between.Add(&v0, &v1)
		between.Scale(&between, 0.5*radiusFactor)
		var alpha lin.V3
		alpha.Scale(&between, alphaScale)
		alpha.Add(&alpha, &mid)

		fm := fromMid(i, spinOffset)
		var omega lin.V3
		omega.Scale(&fm, omegaScale)
		omega.Add(&omega, &mid)
		omega.Add(&omega, &up)

		pairs[i] = pair{Alpha: alpha, Omega: omega}
	}
	return pairs
}

// FaceResult names one face produced by a twist, alongside its id.
type FaceResult struct {
	Name fabric.FaceName
	ID   fabric.UniqueId
}

// Single builds a single twist: one ring of three push intervals, their
// radial pulls, and three diagonal pull-B intervals. If parent is
// non-nil, the new A- face is welded to it. Returns the new A- and A+
// faces.
func Single(f *fabric.Fabric, spin fabric.Spin, scaleFactor float64, parent *fabric.UniqueId) (aNeg, aPos FaceResult) {
	scale := scaleFactor
	var parentFace *fabric.Face
	if parent != nil {
		parentFace = f.FindFace(*parent)
		scale = parentFace.Scale * scaleFactor
	}
	base := baseTriangle(f, parentFace)
	pairs := createPairs(base, spin, scale, scale)

	type ends struct{ Alpha, Omega int }
	var e [3]ends
	for i, p := range pairs {
		e[i] = ends{Alpha: f.CreateJoint(p.Alpha), Omega: f.CreateJoint(p.Omega)}
	}
	var pushIntervals [3]int
	for i := range e {
		pushIntervals[i] = f.CreateInterval(e[i].Alpha, e[i].Omega, fabric.PushA, scale)
	}

	alphaJoint := f.CreateJoint(middle(pairs[0].Alpha, pairs[1].Alpha, pairs[2].Alpha))
	omegaJoint := f.CreateJoint(middle(pairs[0].Omega, pairs[1].Omega, pairs[2].Omega))

	alphas := [3]int{e[2].Alpha, e[1].Alpha, e[0].Alpha}
	var alphaRadials [3]int
	for i, a := range alphas {
		alphaRadials[i] = f.CreateInterval(alphaJoint, a, fabric.PullA, scale)
	}
	aNegID := f.CreateFace(fabric.Face{Scale: scale, Spin: spin, Centroid: alphaJoint, Radials: alphaRadials, Pushes: pushIntervals})

	omegas := [3]int{e[0].Omega, e[1].Omega, e[2].Omega}
	var omegaRadials [3]int
	for i, o := range omegas {
		omegaRadials[i] = f.CreateInterval(omegaJoint, o, fabric.PullA, scale)
	}
	aPosID := f.CreateFace(fabric.Face{Scale: scale, Spin: spin, Centroid: omegaJoint, Radials: omegaRadials, Pushes: pushIntervals})

	offset := 1
	if spin == fabric.Right {
		offset = -1
	}
	for index := 0; index < 3; index++ {
		alpha := e[index].Alpha
		omega := e[(3+index+offset)%3].Omega
		f.CreateInterval(alpha, omega, fabric.PullB, scale)
	}

	if parent != nil {
		FacesToLoop(f, *parent, aNegID)
	}
	return FaceResult{fabric.Aneg, aNegID}, FaceResult{fabric.Apos, aPosID}
}

// faceRow is one entry of the double-twist face table.
type faceRow struct {
	name   fabric.FaceName
	spin   fabric.Spin
	joints [3]int
	pushes [3]int
}

// Double builds a double twist: two layers of three push intervals,
// producing 8 faces (one A-, three lateral +, three lateral -, one A+).
// If parent is non-nil, the new A- face is welded to it.
func Double(f *fabric.Fabric, spin fabric.Spin, scaleFactor float64, parent *fabric.UniqueId) [8]FaceResult {
	const widening = 1.5
	scale := scaleFactor
	var parentFace *fabric.Face
	if parent != nil {
		parentFace = f.FindFace(*parent)
		scale = parentFace.Scale * scaleFactor
	}
	base := baseTriangle(f, parentFace)
	bottomPairs := createPairs(base, spin, scale, scale*widening)
	var bottomOmegas [3]lin.V3
	for i, p := range bottomPairs {
		bottomOmegas[i] = p.Omega
	}
	topPairs := createPairs(bottomOmegas, spin.Opposite(), widening, scale)

	type ends struct{ Alpha, Omega int }
	var bot, top [3]ends
	for i, p := range bottomPairs {
		bot[i] = ends{Alpha: f.CreateJoint(p.Alpha), Omega: f.CreateJoint(p.Omega)}
	}
	for i, p := range topPairs {
		top[i] = ends{Alpha: f.CreateJoint(p.Alpha), Omega: f.CreateJoint(p.Omega)}
	}

	var botPush, topPush [3]int
	for i := range bot {
		botPush[i] = f.CreateInterval(bot[i].Alpha, bot[i].Omega, fabric.PushB, scale)
	}
	for i := range top {
		topPush[i] = f.CreateInterval(top[i].Alpha, top[i].Omega, fabric.PushB, scale)
	}

	var rows [8]faceRow
	if spin == fabric.Left {
		rows = [8]faceRow{
			{fabric.Aneg, fabric.Left, [3]int{bot[2].Alpha, bot[1].Alpha, bot[0].Alpha}, [3]int{botPush[0], botPush[2], botPush[1]}},
			{fabric.Bpos, fabric.Right, [3]int{bot[0].Alpha, bot[1].Omega, top[0].Alpha}, [3]int{botPush[0], botPush[1], topPush[0]}},
			{fabric.Cpos, fabric.Right, [3]int{bot[1].Alpha, bot[2].Omega, top[1].Alpha}, [3]int{botPush[1], botPush[2], topPush[1]}},
			{fabric.Dpos, fabric.Right, [3]int{bot[2].Alpha, bot[0].Omega, top[2].Alpha}, [3]int{botPush[2], botPush[0], topPush[2]}},
			{fabric.Bneg, fabric.Left, [3]int{top[2].Alpha, top[1].Omega, bot[2].Omega}, [3]int{topPush[2], topPush[1], botPush[2]}},
			{fabric.Cneg, fabric.Left, [3]int{top[0].Alpha, top[2].Omega, bot[0].Omega}, [3]int{topPush[0], topPush[2], botPush[0]}},
			{fabric.Dneg, fabric.Left, [3]int{top[1].Alpha, top[0].Omega, bot[1].Omega}, [3]int{topPush[1], topPush[0], botPush[1]}},
			{fabric.Apos, fabric.Right, [3]int{top[0].Omega, top[1].Omega, top[2].Omega}, [3]int{topPush[0], topPush[1], topPush[2]}},
		}
	} else {
		rows = [8]faceRow{
			{fabric.Aneg, fabric.Right, [3]int{bot[2].Alpha, bot[1].Alpha, bot[0].Alpha}, [3]int{botPush[0], botPush[2], botPush[1]}},
			{fabric.Bpos, fabric.Left, [3]int{bot[0].Alpha, top[2].Alpha, bot[2].Omega}, [3]int{botPush[0], topPush[2], botPush[2]}},
			{fabric.Cpos, fabric.Left, [3]int{bot[2].Alpha, top[1].Alpha, bot[1].Omega}, [3]int{botPush[2], topPush[1], botPush[1]}},
			{fabric.Dpos, fabric.Left, [3]int{bot[1].Alpha, top[0].Alpha, bot[0].Omega}, [3]int{botPush[1], topPush[0], botPush[0]}},
			{fabric.Bneg, fabric.Right, [3]int{top[0].Alpha, bot[1].Omega, top[1].Omega}, [3]int{topPush[0], botPush[1], topPush[1]}},
			{fabric.Cneg, fabric.Right, [3]int{top[2].Alpha, bot[0].Omega, top[0].Omega}, [3]int{topPush[2], botPush[0], topPush[0]}},
			{fabric.Dneg, fabric.Right, [3]int{top[1].Alpha, bot[2].Omega, top[2].Omega}, [3]int{topPush[1], botPush[2], topPush[2]}},
			{fabric.Apos, fabric.Left, [3]int{top[0].Omega, top[1].Omega, top[2].Omega}, [3]int{topPush[0], topPush[1], topPush[2]}},
		}
	}

	var results [8]FaceResult
	for i, row := range rows {
		var pts [3]lin.V3
		for j, idx := range row.joints {
			pts[j] = f.Joint(idx).Location
		}
		midJoint := f.CreateJoint(middleOf(pts))
		var radials [3]int
		for j, outer := range row.joints {
			radials[j] = f.CreateInterval(midJoint, outer, fabric.PullA, scale)
		}
		id := f.CreateFace(fabric.Face{Scale: scale, Spin: row.spin, Centroid: midJoint, Radials: radials, Pushes: row.pushes})
		results[i] = FaceResult{row.name, id}
	}

	if parent != nil {
		FacesToLoop(f, *parent, results[0].ID)
	}
	return results
}

// FacesToLoop welds two faces together with six pull-A intervals using a
// fixed chiral-preserving pattern, then removes both faces.
func FacesToLoop(f *fabric.Fabric, faceAID, faceBID fabric.UniqueId) {
	faceA := f.FindFace(faceAID)
	faceB := f.FindFace(faceBID)
	scale := (faceA.Scale + faceB.Scale) / 2
	a := radialJoints(f, faceA)
	b := radialJoints(f, faceB)
	f.CreateInterval(a[2], b[0], fabric.PullA, scale)
	f.CreateInterval(a[0], b[0], fabric.PullA, scale)
	f.CreateInterval(a[0], b[2], fabric.PullA, scale)
	f.CreateInterval(a[1], b[2], fabric.PullA, scale)
	f.CreateInterval(a[1], b[1], fabric.PullA, scale)
	f.CreateInterval(a[2], b[1], fabric.PullA, scale)
	f.RemoveFace(faceAID)
	f.RemoveFace(faceBID)
}
