// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package growth

import (
	"testing"

	fabric "github.com/galvanized/tensegrity"
	"github.com/galvanized/tensegrity/tenscript"
)

func compilePlan(t *testing.T, src string) *tenscript.FabricPlan {
	t.Helper()
	plan, err := tenscript.Compile(src)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return plan
}

func TestGrowZeroForwardProducesASingleTwistWithNoFurtherBuds(t *testing.T) {
	plan := compilePlan(t, `(fabric (build (seed :left) (grow A+ 0)))`)
	f := fabric.New()
	g := New(plan)

	g.IterateOn(f) // seed
	if f.JointCount() == 0 {
		t.Fatal("expected the seed twist to create joints")
	}
	if got := len(g.Buds); got != 1 {
		t.Fatalf("expected exactly 1 pending bud after the seed twist, got %d", got)
	}

	g.IterateOn(f) // the one bud's forward string is empty and it has no branch
	if !g.Done() {
		t.Errorf("expected growth to be done after the empty-forward bud is consumed, got %d buds", len(g.Buds))
	}
}

func TestGrowWithForwardStringAddsOneTwistPerCharacter(t *testing.T) {
	plan := compilePlan(t, `(fabric (build (seed :left) (grow A+ 2)))`)
	f := fabric.New()
	g := New(plan)

	g.IterateOn(f) // seed: one bud with forward "XX"
	if len(g.Buds) != 1 || g.Buds[0].Forward != "XX" {
		t.Fatalf("expected one bud with forward \"XX\", got %v", g.Buds)
	}
	jointsAfterSeed := f.JointCount()

	g.IterateOn(f) // consumes one 'X', grows a twist, queues a bud with forward "X"
	if len(g.Buds) != 1 || g.Buds[0].Forward != "X" {
		t.Fatalf("expected one bud with forward \"X\", got %v", g.Buds)
	}
	if f.JointCount() <= jointsAfterSeed {
		t.Error("expected another twist's worth of joints to be added")
	}

	jointsAfterFirst := f.JointCount()
	g.IterateOn(f) // consumes the final 'X', grows its twist; no branch, so growth ends
	if f.JointCount() <= jointsAfterFirst {
		t.Error("expected the final character to add a twist's worth of joints")
	}
	if !g.Done() {
		t.Errorf("expected growth to be done, got %d buds", len(g.Buds))
	}
}

func TestExecutePostMarkJoinsExactlyTwoMatchingFaces(t *testing.T) {
	plan := compilePlan(t, `
		(fabric (build (seed :left)
			(branch (grow A+ 0 (mark A+ :tie)) (grow B+ 0 (mark B+ :tie)))))
	`)
	f := fabric.New()
	g := New(plan)
	g.IterateOn(f) // seed: a double twist branch, queuing marks for A+ and B+

	if len(g.Marks) != 2 {
		t.Fatalf("expected 2 pending marks, got %d", len(g.Marks))
	}
	before := f.IntervalCount()
	g.ExecutePostMark(f, "tie")
	if f.IntervalCount() != before+1 {
		t.Errorf("expected exactly one new pull-together interval, got %d new", f.IntervalCount()-before)
	}
}

func TestPlainGrowNodeMarksAreRegistered(t *testing.T) {
	plan := compilePlan(t, `(fabric (build (seed :left) (grow A+ 0 (mark A+ :solo))))`)
	f := fabric.New()
	g := New(plan)
	g.IterateOn(f) // seed: a plain (non-branch) Grow node; its own mark must be registered too.
	if len(g.Marks) != 1 {
		t.Fatalf("expected the seed Grow step's own mark to be registered, got %d marks", len(g.Marks))
	}
	if g.Marks[0].MarkName != "solo" {
		t.Errorf("expected mark name \"solo\", got %q", g.Marks[0].MarkName)
	}
}

func TestExecutePostMarkIgnoresAnUnmatchedMarkCount(t *testing.T) {
	plan := compilePlan(t, `(fabric (build (seed :left) (grow A+ 0 (mark A+ :lonely))))`)
	f := fabric.New()
	g := New(plan)
	g.IterateOn(f)

	before := f.IntervalCount()
	g.ExecutePostMark(f, "lonely") // only one face ever carries this mark
	if f.IntervalCount() != before {
		t.Errorf("expected no new interval for an unmatched mark, got %d new", f.IntervalCount()-before)
	}
}
