// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package fabric

// View dictates the data a consumer (e.g. a renderer) receives for one
// render: joint positions, line endpoints, and line colors. The core
// never renders anything itself; RenderTo only ever appends to a View.
type View struct {
	Centroid      [3]float64  // average of all joint locations.
	JointLocations []float64  // x,y,z per joint.
	LineLocations  []float64  // alpha.xyz, omega.xyz per interval.
	LineColors     []float64  // two RGB triples per interval (one per endpoint).
}

// clear resets the view for reuse across renders without reallocating
// its backing slices.
func (v *View) clear() {
	v.Centroid = [3]float64{}
	v.JointLocations = v.JointLocations[:0]
	v.LineLocations = v.LineLocations[:0]
	v.LineColors = v.LineColors[:0]
}

// pushColor appends one line-color entry (two copies of the same RGB,
// one per endpoint) to the view.
func (v *View) pushColor(c [3]float64) {
	v.LineColors = append(v.LineColors, c[0], c[1], c[2], c[0], c[1], c[2])
}

// rainbow is the palette sampled for strained intervals when both
// color_pushes and color_pulls are set (or only one is set and the
// interval is of that kind) and the interval is not slack.
var rainbow = [][3]float64{
	{0.6, 0.0, 0.8},
	{0.2, 0.0, 1.0},
	{0.0, 0.4, 1.0},
	{0.0, 0.9, 0.9},
	{0.0, 0.8, 0.2},
	{0.8, 0.8, 0.0},
	{1.0, 0.5, 0.0},
	{1.0, 0.0, 0.0},
}

var slackColor = [3]float64{0.5, 0.5, 0.5}
var attenuatedColor = [3]float64{0.3, 0.3, 0.3}

// RenderTo fills view with a snapshot of the fabric's current geometry,
// coloring each interval's two endpoints according to w's color policy.
func (f *Fabric) RenderTo(view *View, w *World) {
	view.clear()
	for i := range f.joints {
		loc := f.joints[i].Location
		view.Centroid[0] += loc.X
		view.Centroid[1] += loc.Y
		view.Centroid[2] += loc.Z
		view.JointLocations = append(view.JointLocations, loc.X, loc.Y, loc.Z)
	}
	if n := float64(len(f.joints)); n > 0 {
		view.Centroid[0] /= n
		view.Centroid[1] /= n
		view.Centroid[2] /= n
	}

	for i := range f.intervals {
		in := &f.intervals[i]
		extend := in.Strain / 2 * w.VisualStrain
		alpha := f.joints[in.Alpha].Location
		omega := f.joints[in.Omega].Location
		view.LineLocations = append(view.LineLocations,
			alpha.X-in.unit.X*extend, alpha.Y-in.unit.Y*extend, alpha.Z-in.unit.Z*extend,
			omega.X+in.unit.X*extend, omega.Y+in.unit.Y*extend, omega.Z+in.unit.Z*extend,
		)
	}

	for i := range f.intervals {
		in := &f.intervals[i]
		view.pushColor(lineColor(in, w))
	}
}

// lineColor implements the color policy of §6: role color, rainbow
// strain color, slack color, or attenuated color, governed by the
// color_pushes/color_pulls flags.
func lineColor(in *Interval, w *World) [3]float64 {
	unsafeNuance := (in.Strain + w.MaxStrain) / (2 * w.MaxStrain)
	nuance := unsafeNuance
	if nuance < 0 {
		nuance = 0
	} else if nuance >= 1 {
		nuance = 0.9999999
	}
	slack := in.Strain < 0 && -in.Strain < w.SlackThreshold || in.Strain >= 0 && in.Strain < w.SlackThreshold

	strainColor := func() [3]float64 {
		if slack {
			return slackColor
		}
		return rainbowColor(nuance)
	}

	switch {
	case !w.ColorPushes && !w.ColorPulls:
		if c, ok := roleColors[in.Role.Tag]; ok {
			return c
		}
		return slackColor
	case w.ColorPushes && w.ColorPulls:
		return strainColor()
	case in.Role.Push:
		if w.ColorPulls {
			return attenuatedColor
		}
		return strainColor()
	default: // pull
		if w.ColorPushes {
			return attenuatedColor
		}
		return strainColor()
	}
}

func rainbowColor(nuance float64) [3]float64 {
	index := int(nuance * float64(len(rainbow)))
	if index >= len(rainbow) {
		index = len(rainbow) - 1
	}
	if index < 0 {
		index = 0
	}
	return rainbow[index]
}
