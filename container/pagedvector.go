// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

// pagedVectorPageSize is the fixed element count per page (power of
// two), matching the allocator's own bucket-class sizing philosophy:
// pages are carved once and never reallocated, so element addresses
// survive growth.
const pagedVectorPageSize = 1024

// PagedVector is a sequence of T stored in fixed-size pages. Unlike
// FlatVector, growing a PagedVector never moves existing elements —
// it only appends new pages — so At returns addresses that remain
// valid across Grow calls. This backs ecs.Stable tables, where
// pointer stability between packs is part of the contract.
type PagedVector[T any] struct {
	pages [][]T
	n     int
}

// NewPagedVector creates an empty PagedVector.
func NewPagedVector[T any]() *PagedVector[T] {
	return &PagedVector[T]{}
}

// Len returns the number of logical elements (including any the
// caller treats as tombstoned; PagedVector itself has no tombstone
// concept, ecs layers that on top).
func (v *PagedVector[T]) Len() int { return v.n }

func (v *PagedVector[T]) pageOf(i int) (page, offset int) {
	return i / pagedVectorPageSize, i % pagedVectorPageSize
}

// At returns a pointer to element i, which must be < Len().
func (v *PagedVector[T]) At(i int) *T {
	page, offset := v.pageOf(i)
	return &v.pages[page][offset]
}

// Grow appends a zero-valued element and returns its index.
func (v *PagedVector[T]) Grow() int {
	page, offset := v.pageOf(v.n)
	for page >= len(v.pages) {
		v.pages = append(v.pages, make([]T, pagedVectorPageSize))
	}
	idx := v.n
	v.n++
	_ = offset
	return idx
}

// Set stores value at index i.
func (v *PagedVector[T]) Set(i int, value T) {
	*v.At(i) = value
}

// Truncate logically shrinks the vector to n elements. Backing pages
// are retained (not released) since callers may Grow again soon after
// a pack; this matches the allocator's own "never release pages"
// fragmentation-over-coalescing policy.
func (v *PagedVector[T]) Truncate(n int) {
	var zero T
	for i := n; i < v.n; i++ {
		*v.At(i) = zero
	}
	v.n = n
}
