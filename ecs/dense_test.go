// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs_test

import (
	"testing"

	"code.hybscloud.com/forge/ecs"
)

func TestDenseAddGetRemove(t *testing.T) {
	d := ecs.NewDense[string]()
	d.Add(1, "one")
	d.Add(2, "two")
	d.Add(3, "three")

	if got := *d.Get(2); got != "two" {
		t.Fatalf("Get(2): got %q, want %q", got, "two")
	}

	d.Remove(2)
	if d.Exists(2) {
		t.Fatal("Exists(2) after Remove: got true")
	}
	if !d.Exists(1) || !d.Exists(3) {
		t.Fatal("Remove(2) disturbed unrelated entities")
	}
	if got := *d.Get(3); got != "three" {
		t.Fatalf("Get(3) after swap-remove: got %q, want %q", got, "three")
	}
}

func TestDenseTryAddReplaces(t *testing.T) {
	d := ecs.NewDense[int]()
	d.Add(1, 10)
	d.TryAdd(1, 20)
	if got := *d.Get(1); got != 20 {
		t.Fatalf("TryAdd replace: got %d, want 20", got)
	}
	d.TryAdd(2, 99)
	if got := *d.Get(2); got != 99 {
		t.Fatalf("TryAdd insert: got %d, want 99", got)
	}
}

func TestDenseTryRemoveReportsAbsence(t *testing.T) {
	d := ecs.NewDense[int]()
	if d.TryRemove(1) {
		t.Fatal("TryRemove on empty table: got true")
	}
	d.Add(1, 1)
	if !d.TryRemove(1) {
		t.Fatal("TryRemove on present entity: got false")
	}
}

func TestDenseExtract(t *testing.T) {
	d := ecs.NewDense[int]()
	d.Add(1, 42)
	got := d.Extract(1)
	if got != 42 {
		t.Fatalf("Extract: got %d, want 42", got)
	}
	if d.Exists(1) {
		t.Fatal("Exists after Extract: got true")
	}
}

func TestDenseAddRangeAndRemoveRange(t *testing.T) {
	d := ecs.NewDense[int]()
	r := ecs.EntityRange{Begin: 10, End: 15}
	d.AddRange(r, 7)
	if d.Len() != 5 {
		t.Fatalf("Len after AddRange: got %d, want 5", d.Len())
	}
	d.RemoveRange(ecs.EntityRange{Begin: 10, End: 13})
	if d.Len() != 2 {
		t.Fatalf("Len after RemoveRange: got %d, want 2", d.Len())
	}
	if d.Exists(10) || d.Exists(11) || d.Exists(12) {
		t.Fatal("RemoveRange left entities it should have dropped")
	}
	if !d.Exists(13) || !d.Exists(14) {
		t.Fatal("RemoveRange dropped entities outside its range")
	}
}

func TestDenseSortOrdersTraversalAndKeepsSparseConsistent(t *testing.T) {
	d := ecs.NewDense[int]()
	ids := []ecs.EntityID{5, 1, 4, 2, 3}
	for _, e := range ids {
		d.Add(e, int(e)*10)
	}

	d.Sort(func(a, b ecs.EntityID) bool { return a < b })

	var seen []ecs.EntityID
	d.TraverseEntities(func(e ecs.EntityID) bool {
		seen = append(seen, e)
		return true
	})
	for i := 0; i < len(seen)-1; i++ {
		if seen[i] >= seen[i+1] {
			t.Fatalf("Traverse after Sort not ordered: %v", seen)
		}
	}

	d.Traverse(func(e ecs.EntityID, v *int) bool {
		if *v != int(e)*10 {
			t.Fatalf("entity %d paired with wrong component %d after Sort", e, *v)
		}
		return true
	})
}

func TestDenseTraverseStopsOnFalse(t *testing.T) {
	d := ecs.NewDense[int]()
	for i := 1; i <= 5; i++ {
		d.Add(ecs.EntityID(i), i)
	}
	count := 0
	d.TraverseValues(func(v *int) bool {
		count++
		return *v != 3
	})
	if count == 0 || count > 5 {
		t.Fatalf("Traverse stop: count=%d", count)
	}
}
