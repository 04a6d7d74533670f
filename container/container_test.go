// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container_test

import (
	"testing"

	"code.hybscloud.com/forge/container"
)

func TestSparseSetBasic(t *testing.T) {
	s := container.NewSparseSet()

	if s.Has(42) {
		t.Fatal("Has(42) on empty set: got true")
	}

	s.Set(42, 0)
	s.Set(10_000, 1) // forces a second page

	if !s.Has(42) || !s.Has(10_000) {
		t.Fatal("Has: expected both keys present")
	}

	idx, ok := s.IndexOf(42)
	if !ok || idx != 0 {
		t.Fatalf("IndexOf(42): got (%d, %v), want (0, true)", idx, ok)
	}

	s.Remove(42)
	if s.Has(42) {
		t.Fatal("Has(42) after Remove: got true")
	}
	if !s.Has(10_000) {
		t.Fatal("Has(10_000) after unrelated Remove: got false")
	}
}

func TestFlatVectorSwapRemove(t *testing.T) {
	v := container.NewFlatVector[int](0)
	for i := 0; i < 5; i++ {
		v.Append(i)
	}

	moved := v.SwapRemove(1)
	if moved != 4 {
		t.Fatalf("SwapRemove moved index: got %d, want 4", moved)
	}
	if v.Len() != 4 {
		t.Fatalf("Len after remove: got %d, want 4", v.Len())
	}
	if *v.At(1) != 4 {
		t.Fatalf("At(1) after swap remove: got %d, want 4", *v.At(1))
	}

	moved = v.SwapRemove(v.Len() - 1)
	if moved != -1 {
		t.Fatalf("SwapRemove of last element: got moved=%d, want -1", moved)
	}
}

func TestPagedVectorStableAddresses(t *testing.T) {
	v := container.NewPagedVector[int]()

	idx := v.Grow()
	v.Set(idx, 100)
	p := v.At(idx)

	for i := 0; i < 5000; i++ {
		j := v.Grow()
		v.Set(j, i)
	}

	if *p != 100 {
		t.Fatalf("address stability violated after growth: got %d, want 100", *p)
	}
	if *v.At(idx) != 100 {
		t.Fatalf("At(idx) after growth: got %d, want 100", *v.At(idx))
	}
}

func TestPagedVectorTruncate(t *testing.T) {
	v := container.NewPagedVector[int]()
	for i := 0; i < 10; i++ {
		j := v.Grow()
		v.Set(j, i)
	}
	v.Truncate(3)
	if v.Len() != 3 {
		t.Fatalf("Len after truncate: got %d, want 3", v.Len())
	}
}
