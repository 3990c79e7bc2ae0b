// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package fabric

import "testing"

func TestIterateAccumulatesTicksAndCalls(t *testing.T) {
	f := New()
	w := NewWorld()
	w.IterationsPerFrame = 4

	f.Iterate(Growing, w)
	f.Iterate(Growing, w)

	if f.Stats.Ticks != 8 {
		t.Errorf("expected 8 accumulated ticks, got %d", f.Stats.Ticks)
	}
	if f.Stats.Calls != 2 {
		t.Errorf("expected 2 accumulated calls, got %d", f.Stats.Calls)
	}
}

func TestIterateCountsOnlyActualStageChanges(t *testing.T) {
	f := New()
	w := NewWorld()

	f.Iterate(Growing, w)  // still Growing: requested == current, no change
	f.Iterate(Shaping, w)  // Growing -> Shaping: one change
	f.Iterate(Shaping, w)  // still Shaping: no change
	f.Iterate(Slack, w)    // Shaping -> Slack: one change

	if f.Stats.StageChanges != 2 {
		t.Errorf("expected 2 stage changes, got %d", f.Stats.StageChanges)
	}
}

func TestStatsZeroResetsAllCounters(t *testing.T) {
	f := New()
	w := NewWorld()
	f.Iterate(Growing, w)
	f.Iterate(Shaping, w)

	f.Stats.Zero()

	if f.Stats.Ticks != 0 || f.Stats.Calls != 0 || f.Stats.StageChanges != 0 {
		t.Errorf("expected all counters zeroed, got %+v", f.Stats)
	}
}
