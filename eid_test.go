// Copyright © 2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package fabric

import "testing"

func TestFaceTableCreateAndGet(t *testing.T) {
	var t1 faceTable
	id := t1.create(Face{Scale: 1})
	got := t1.get(id)
	if got == nil || got.Scale != 1 {
		t.Fatalf("expected to find the created face, got %v", got)
	}
}

func TestFaceTableRemoveInvalidatesTheOldId(t *testing.T) {
	var t1 faceTable
	id := t1.create(Face{Scale: 1})
	t1.remove(id)
	if t1.get(id) != nil {
		t.Error("expected a removed face's id to no longer resolve")
	}
}

func TestFaceTableReusesSlotsWithANewEdition(t *testing.T) {
	var t1 faceTable
	first := t1.create(Face{Scale: 1})
	t1.remove(first)
	second := t1.create(Face{Scale: 2})

	if first.index() != second.index() {
		t.Fatalf("expected the freed slot to be reused, got indices %d and %d", first.index(), second.index())
	}
	if first == second {
		t.Error("expected a reused slot to carry a new edition, changing the id")
	}
	if t1.get(first) != nil {
		t.Error("the old id must still be stale after the slot is reused")
	}
	got := t1.get(second)
	if got == nil || got.Scale != 2 {
		t.Fatalf("expected the new id to resolve to the new face, got %v", got)
	}
}

func TestFaceTableEachVisitsOnlyLiveFaces(t *testing.T) {
	var t1 faceTable
	a := t1.create(Face{Scale: 1})
	t1.create(Face{Scale: 2})
	t1.remove(a)

	count := 0
	t1.each(func(f *Face) { count++ })
	if count != 1 {
		t.Errorf("expected each to visit exactly 1 live face, visited %d", count)
	}
}
