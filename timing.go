// Copyright © 2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package fabric

// FUTURE : track per-stage timing breakdowns once a caller needs them;
//          for now iterate/render_to costs are dominated by interval count
//          and aren't broken out further.

import "fmt"

// Stats collects iterate-loop numbers while the caller drives a fabric.
// The counters accumulate across the fabric's lifetime; callers that
// want a per-call delta should snapshot and subtract.
//
// Ticks counts individual physics integration steps (iterations_per_frame
// each, summed across calls to Iterate). Calls counts the number of
// Iterate invocations. StageChanges counts the stage transitions Iterate
// has made, requested or automatic.
type Stats struct {
	Ticks        uint64
	Calls        uint64
	StageChanges uint64
}

// Zero resets all counters to zero.
func (s *Stats) Zero() {
	s.Ticks = 0
	s.Calls = 0
	s.StageChanges = 0
}

// Dump renders the current counters for debug output.
func (s *Stats) Dump() {
	fmt.Printf("ticks:%d calls:%d stage-changes:%d\n", s.Ticks, s.Calls, s.StageChanges)
}
