// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

import (
	"code.hybscloud.com/forge/internal/abort"

	"code.hybscloud.com/forge/container"
)

// Stable is the paged component table variant: components live in
// fixed-size pages and never move on Add/Remove, so addresses
// returned by Get remain valid across further Add/Remove calls (but
// not across Pack). Remove leaves a tombstone — the entity slot is
// set to NoEntity — rather than compacting immediately; Pack
// consolidates tombstoned slots later.
type Stable[T any] struct {
	sparse     *container.SparseSet
	entities   []EntityID
	components *container.PagedVector[T]
	tombstones []uint32
}

// NewStable creates an empty Stable table.
func NewStable[T any]() *Stable[T] {
	return &Stable[T]{
		sparse:     container.NewSparseSet(),
		components: container.NewPagedVector[T](),
	}
}

// Len returns the number of live (non-tombstoned) components.
func (s *Stable[T]) Len() int { return len(s.entities) - len(s.tombstones) }

// Exists reports whether e currently has a live component.
func (s *Stable[T]) Exists(e EntityID) bool { return s.sparse.Has(e) }

// Get returns a pointer to e's component, stable across further
// Add/Remove calls (but invalidated by Pack), or nil if e has none.
func (s *Stable[T]) Get(e EntityID) *T {
	idx, ok := s.sparse.IndexOf(e)
	if !ok {
		return nil
	}
	return s.components.At(int(idx))
}

// Add appends a new component for e. Adding an entity that already
// has a component is a logic error.
func (s *Stable[T]) Add(e EntityID, value T) *T {
	abort.If(s.sparse.Has(e), "ecs: Stable.Add called with entity %d already present", e)
	return s.insert(e, value)
}

func (s *Stable[T]) insert(e EntityID, value T) *T {
	var idx int
	if n := len(s.tombstones); n > 0 {
		idx = int(s.tombstones[n-1])
		s.tombstones = s.tombstones[:n-1]
		s.entities[idx] = e
	} else {
		idx = s.components.Grow()
		s.entities = append(s.entities, e)
	}
	s.components.Set(idx, value)
	s.sparse.Set(e, uint32(idx))
	return s.components.At(idx)
}

// TryAdd replaces e's existing component with value, or inserts it if
// e has none.
func (s *Stable[T]) TryAdd(e EntityID, value T) *T {
	if idx, ok := s.sparse.IndexOf(e); ok {
		p := s.components.At(int(idx))
		*p = value
		return p
	}
	return s.insert(e, value)
}

// TryAddFunc ensures e has a component then invokes fn on it.
func (s *Stable[T]) TryAddFunc(e EntityID, fn func(*T)) *T {
	var p *T
	if idx, ok := s.sparse.IndexOf(e); ok {
		p = s.components.At(int(idx))
	} else {
		var zero T
		p = s.insert(e, zero)
	}
	fn(p)
	return p
}

// AddRange batch-appends every id in r with an identical value.
func (s *Stable[T]) AddRange(r EntityRange, value T) {
	for e := r.Begin; e < r.End; e++ {
		s.Add(e, value)
	}
}

// Remove tombstones e's slot. Removing an absent entity is a logic
// error; use TryRemove when absence is expected.
func (s *Stable[T]) Remove(e EntityID) {
	abort.If(!s.TryRemove(e), "ecs: Stable.Remove called with entity %d absent", e)
}

// TryRemove tombstones e's slot if present, reporting whether it was.
func (s *Stable[T]) TryRemove(e EntityID) bool {
	idx, ok := s.sparse.IndexOf(e)
	if !ok {
		return false
	}
	var zero T
	s.components.Set(int(idx), zero)
	s.entities[idx] = NoEntity
	s.sparse.Remove(e)
	s.tombstones = append(s.tombstones, uint32(idx))
	return true
}

// RemoveRange tombstones every id in r that is present.
func (s *Stable[T]) RemoveRange(r EntityRange) {
	for e := r.Begin; e < r.End; e++ {
		s.TryRemove(e)
	}
}

// Pack consolidates live components by sliding each one down to the
// lowest free index, keeping their existing relative order (tail
// elements are not swapped into tombstoned slots), shrinking the
// backing storage to exactly the live count and leaving zero
// tombstones. Pointer stability across Pack is
// not preserved: any *T obtained before a Pack call may now address a
// different entity's component.
func (s *Stable[T]) Pack() {
	if len(s.tombstones) == 0 {
		return
	}
	write := 0
	for read := 0; read < len(s.entities); read++ {
		e := s.entities[read]
		if e == NoEntity {
			continue
		}
		if write != read {
			s.entities[write] = e
			*s.components.At(write) = *s.components.At(read)
			s.sparse.Set(e, uint32(write))
		}
		write++
	}
	s.entities = s.entities[:write]
	s.components.Truncate(write)
	s.tombstones = s.tombstones[:0]
}

// TombstoneCount returns the number of released-but-unpacked slots.
func (s *Stable[T]) TombstoneCount() int { return len(s.tombstones) }

// Traverse visits every live (Entity, *Component) pair, skipping
// tombstoned slots. Returning false from fn stops iteration early.
func (s *Stable[T]) Traverse(fn func(EntityID, *T) bool) {
	for i, e := range s.entities {
		if e == NoEntity {
			continue
		}
		if !fn(e, s.components.At(i)) {
			return
		}
	}
}

// TraverseValues visits every live component, ignoring entity ids.
func (s *Stable[T]) TraverseValues(fn func(*T) bool) {
	s.Traverse(func(_ EntityID, v *T) bool { return fn(v) })
}

// TraverseEntities visits every live entity id, ignoring components.
func (s *Stable[T]) TraverseEntities(fn func(EntityID) bool) {
	s.Traverse(func(e EntityID, _ *T) bool { return fn(e) })
}
