// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package growth drives a fabric's growth from a compiled tenscript
// plan: one call to IterateOn expands every pending bud by exactly one
// character of its forward string, queuing whatever buds and marks that
// produces for the next call.
package growth

import (
	fabric "github.com/galvanized/tensegrity"
	"github.com/galvanized/tensegrity/tenscript"
	"github.com/galvanized/tensegrity/twist"
)

// Bud is a pending growth step: a face waiting to have its next forward
// character consumed.
type Bud struct {
	FaceID      fabric.UniqueId
	Forward     string
	ScaleFactor float64
	Node        *tenscript.TenscriptNode
}

// PostMark is a face tagged with a mark name, waiting to be joined to
// its partner once both ends of the mark have grown.
type PostMark struct {
	FaceID   fabric.UniqueId
	MarkName string
}

// Growth drives one fabric's growth from its compiled plan.
type Growth struct {
	Plan  *tenscript.FabricPlan
	Buds  []Bud
	Marks []PostMark
}

// New returns a Growth ready to drive a fabric from empty.
func New(plan *tenscript.FabricPlan) *Growth {
	return &Growth{Plan: plan}
}

// IterateOn expands one layer of growth: on an empty fabric it plants
// the seed; otherwise it advances every pending bud by one forward
// character. Call repeatedly until Buds is empty to fully grow a plan.
func (g *Growth) IterateOn(f *fabric.Fabric) {
	var buds []Bud
	var marks []PostMark
	if f.JointCount() == 0 {
		newBuds, newMarks := g.useNode(f, nil, nil, nil)
		buds = append(buds, newBuds...)
		marks = append(marks, newMarks...)
	} else {
		for _, bud := range g.Buds {
			newBuds, newMarks := g.executeBud(f, bud)
			buds = append(buds, newBuds...)
			marks = append(marks, newMarks...)
		}
	}
	g.Buds = buds
	g.Marks = append(g.Marks, marks...)
}

// Done reports whether growth has finished: no bud remains pending.
func (g *Growth) Done() bool { return len(g.Buds) == 0 }

func (g *Growth) executeBud(f *fabric.Fabric, bud Bud) ([]Bud, []PostMark) {
	face := f.FindFace(bud.FaceID)
	if face == nil {
		return nil, nil
	}
	if len(bud.Forward) == 0 {
		// The bud was planted with an already-empty forward string (a
		// "grow ... 0" step): no character was ever consumed to pick a
		// spin, so the face's own spin carries through unchanged.
		if bud.Node == nil {
			return nil, nil
		}
		return g.useNode(f, bud.Node, &face.Spin, &bud.FaceID)
	}
	nextSwitch := bud.Forward[0]
	reduced := bud.Forward[1:]
	spin := face.Spin
	if nextSwitch == 'X' {
		spin = face.Spin.Opposite()
	}

	if len(reduced) == 0 {
		if bud.Node == nil {
			// Leaf: the last forward character still grows its twist,
			// but with no branch to continue into the shoot ends here.
			twist.Single(f, spin, bud.ScaleFactor, &bud.FaceID)
			return nil, nil
		}
		return g.useNode(f, bud.Node, &spin, &bud.FaceID)
	}

	_, aPos := twist.Single(f, spin, bud.ScaleFactor, &bud.FaceID)
	return []Bud{{
		FaceID:      aPos.ID,
		Forward:     reduced,
		ScaleFactor: bud.ScaleFactor,
		Node:        bud.Node,
	}}, nil
}

// ExecutePostMark joins the two faces tagged with sought, if exactly two
// exist, with a single pull-together interval between their centroids.
func (g *Growth) ExecutePostMark(f *fabric.Fabric, sought string) {
	var matched []fabric.UniqueId
	for _, m := range g.Marks {
		if m.MarkName == sought {
			matched = append(matched, m.FaceID)
		}
	}
	if len(matched) != 2 {
		return
	}
	alpha := f.FindFace(matched[0])
	omega := f.FindFace(matched[1])
	if alpha == nil || omega == nil {
		return
	}
	f.CreateInterval(alpha.Centroid, omega.Centroid, fabric.PullTogether, 1.0)
}

// useNode expands a single TenscriptNode: either a direct Grow (one more
// twist, queuing a bud for its remaining forward string) or a Branch
// (fanning a double twist's named faces out to the matching subtrees).
// node is nil only for the initial call on an empty fabric, where the
// plan's own build tree and seed chirality apply instead of a
// continuation already chosen by executeBud.
func (g *Growth) useNode(f *fabric.Fabric, node *tenscript.TenscriptNode, spinOverride *fabric.Spin, baseFaceID *fabric.UniqueId) ([]Bud, []PostMark) {
	continuation := node != nil
	var spin fabric.Spin
	if spinOverride != nil {
		spin = *spinOverride
	}
	if node == nil {
		spin = fabric.Left
		if g.Plan.BuildPhase.Seed != nil {
			switch *g.Plan.BuildPhase.Seed {
			case tenscript.SeedRight, tenscript.SeedRightLeft:
				spin = fabric.Right
			}
		}
		node = g.Plan.BuildPhase.Growth
		if node == nil {
			return nil, nil
		}
	}

	switch node.Kind {
	case tenscript.NodeGrow:
		_, aPos := twist.Single(f, spin, 1.0, baseFaceID)
		var marks []PostMark
		for _, m := range node.Marks {
			marks = append(marks, PostMark{FaceID: aPos.ID, MarkName: m.Name})
		}
		bud := Bud{FaceID: aPos.ID, Forward: node.Forward, ScaleFactor: 1.0, Node: node.Branch}
		return []Bud{bud}, marks

	case tenscript.NodeBranch:
		needsDouble := false
		for _, sub := range node.Subtrees {
			if sub.Face != fabric.Apos {
				needsDouble = true
				break
			}
		}
		if !needsDouble {
			_, aPos := twist.Single(f, spin, 1.0, baseFaceID)
			var marks []PostMark
			for _, sub := range node.Subtrees {
				if sub.Face == fabric.Apos {
					for _, m := range sub.Marks {
						marks = append(marks, PostMark{FaceID: aPos.ID, MarkName: m.Name})
					}
				}
			}
			return nil, marks
		}

		// On the initial seed twist the A- face is the anchor sitting on
		// the ground and is never itself a growth target; on a
		// continuation it was already welded away by the twist above and
		// including it is harmless since no subtree names it.
		faces := twist.Double(f, spin, 1.0, baseFaceID)
		start := 1
		if continuation {
			start = 0
		}
		var buds []Bud
		var marks []PostMark
		for _, fr := range faces[start:] {
			for _, sub := range node.Subtrees {
				if sub.Face != fr.Name {
					continue
				}
				buds = append(buds, Bud{FaceID: fr.ID, Forward: sub.Forward, ScaleFactor: 1.0, Node: sub.Branch})
				for _, m := range sub.Marks {
					marks = append(marks, PostMark{FaceID: fr.ID, MarkName: m.Name})
				}
			}
		}
		return buds, marks
	}
	return nil, nil
}
