// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

import (
	"sort"

	"code.hybscloud.com/forge/internal/abort"

	"code.hybscloud.com/forge/container"
)

// Dense is the packed component table variant: components live in a
// contiguous, swap-with-last-removal vector. Iteration order is
// insertion-modulo-deletions, not entity-sorted, until Sort is called.
// Adding an entity may reallocate the backing vector and removing one
// moves the last component into the freed slot — Dense offers no
// pointer-stability guarantee.
type Dense[T any] struct {
	sparse   *container.SparseSet
	entities []EntityID
	dense    *container.FlatVector[T]
}

// NewDense creates an empty Dense table.
func NewDense[T any]() *Dense[T] {
	return &Dense[T]{
		sparse: container.NewSparseSet(),
		dense:  container.NewFlatVector[T](0),
	}
}

// Len returns the number of live components.
func (d *Dense[T]) Len() int { return d.dense.Len() }

// Exists reports whether e currently has a component in this table.
func (d *Dense[T]) Exists(e EntityID) bool { return d.sparse.Has(e) }

// Get returns a pointer to e's component, or nil if e has none. The
// pointer is invalidated by any subsequent Add/Remove on this table.
func (d *Dense[T]) Get(e EntityID) *T {
	idx, ok := d.sparse.IndexOf(e)
	if !ok {
		return nil
	}
	return d.dense.At(int(idx))
}

// Add appends a new component for e and returns a pointer to it.
// Adding an entity that already has a component is a logic error.
func (d *Dense[T]) Add(e EntityID, value T) *T {
	abort.If(d.sparse.Has(e), "ecs: Dense.Add called with entity %d already present", e)
	return d.insert(e, value)
}

func (d *Dense[T]) insert(e EntityID, value T) *T {
	idx := d.dense.Append(value)
	d.entities = append(d.entities, e)
	d.sparse.Set(e, uint32(idx))
	return d.dense.At(idx)
}

// TryAdd replaces e's existing component with value, or inserts it if
// e has none. Either way it returns a pointer to the stored value.
func (d *Dense[T]) TryAdd(e EntityID, value T) *T {
	if idx, ok := d.sparse.IndexOf(e); ok {
		p := d.dense.At(int(idx))
		*p = value
		return p
	}
	return d.insert(e, value)
}

// TryAddFunc ensures e has a component (inserting the zero value if
// absent) then invokes fn on it, matching the spec's "updater"
// overload of TryAdd.
func (d *Dense[T]) TryAddFunc(e EntityID, fn func(*T)) *T {
	var p *T
	if idx, ok := d.sparse.IndexOf(e); ok {
		p = d.dense.At(int(idx))
	} else {
		var zero T
		p = d.insert(e, zero)
	}
	fn(p)
	return p
}

// AddRange appends a component with the same value for every id in r,
// one Add per id in ascending order; an id already present aborts as
// in Add.
func (d *Dense[T]) AddRange(r EntityRange, value T) {
	for e := r.Begin; e < r.End; e++ {
		d.Add(e, value)
	}
}

// Remove drops e's component via swap-with-last. Removing an entity
// that has no component is a logic error; use TryRemove when absence
// is expected.
func (d *Dense[T]) Remove(e EntityID) {
	abort.If(!d.TryRemove(e), "ecs: Dense.Remove called with entity %d absent", e)
}

// TryRemove drops e's component if present, reporting whether it was.
func (d *Dense[T]) TryRemove(e EntityID) bool {
	idx, ok := d.sparse.IndexOf(e)
	if !ok {
		return false
	}
	d.removeAt(int(idx))
	return true
}

func (d *Dense[T]) removeAt(idx int) {
	last := len(d.entities) - 1
	movedFrom := d.dense.SwapRemove(idx)
	d.sparse.Remove(d.entities[idx])
	if movedFrom >= 0 {
		movedEntity := d.entities[movedFrom]
		d.entities[idx] = movedEntity
		d.sparse.Set(movedEntity, uint32(idx))
	}
	d.entities = d.entities[:last]
}

// RemoveRange removes every id in r that is present, one TryRemove
// (swap-with-last) per id in ascending order; the removals are not
// batched.
func (d *Dense[T]) RemoveRange(r EntityRange) {
	for e := r.Begin; e < r.End; e++ {
		d.TryRemove(e)
	}
}

// Extract returns e's component by value and removes it from the
// table. e must be present.
func (d *Dense[T]) Extract(e EntityID) T {
	idx, ok := d.sparse.IndexOf(e)
	abort.If(!ok, "ecs: Dense.Extract called with entity %d absent", e)
	value := *d.dense.At(int(idx))
	d.removeAt(int(idx))
	return value
}

// Sort reorders entities (and the parallel components/sparse mapping)
// by cmp, a less-than comparator over entity ids. It rebuilds the
// sparse index afterward so indexSet.at(entities[i]) == i continues
// to hold for every live entity.
func (d *Dense[T]) Sort(cmp func(a, b EntityID) bool) {
	n := len(d.entities)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return cmp(d.entities[perm[i]], d.entities[perm[j]])
	})

	sortedEntities := make([]EntityID, n)
	sortedComponents := make([]T, n)
	for i, from := range perm {
		sortedEntities[i] = d.entities[from]
		sortedComponents[i] = *d.dense.At(from)
	}
	d.entities = sortedEntities
	for i, v := range sortedComponents {
		*d.dense.At(i) = v
	}
	for i, e := range d.entities {
		d.sparse.Set(e, uint32(i))
	}
}

// Traverse visits every live (Entity, *Component) pair in dense order.
// Returning false from fn stops iteration early.
func (d *Dense[T]) Traverse(fn func(EntityID, *T) bool) {
	for i := 0; i < d.dense.Len(); i++ {
		if !fn(d.entities[i], d.dense.At(i)) {
			return
		}
	}
}

// TraverseValues visits every live component, ignoring entity ids.
func (d *Dense[T]) TraverseValues(fn func(*T) bool) {
	d.Traverse(func(_ EntityID, v *T) bool { return fn(v) })
}

// TraverseEntities visits every live entity id, ignoring components.
func (d *Dense[T]) TraverseEntities(fn func(EntityID) bool) {
	d.Traverse(func(e EntityID, _ *T) bool { return fn(e) })
}
