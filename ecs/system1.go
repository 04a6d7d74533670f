// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

import (
	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/pipeline"
)

// System1 is a System bound to one component type. Go generics cannot
// express a variadic component pack the way the original's template
// parameter list does (REDESIGN FLAGS "variadic system component
// packs ... generics + trait bounds"), so forge offers a fixed arity
// per component count instead: System1, System2, System3.
type System1[C1 any] struct {
	Base
	Graph *graph.Graph

	t1   Table[C1]
	tick func() bool
}

// NewSystem1 constructs a System1 bound to pipeline p, backed by table
// t1 for its one component type. tick may be nil, meaning "always run".
func NewSystem1[C1 any](p *pipeline.Pipeline, t1 Table[C1], tick func() bool) *System1[C1] {
	if tick == nil {
		tick = func() bool { return true }
	}
	return &System1[C1]{Base: NewBase(p), Graph: graph.New(), t1: t1, tick: tick}
}

// Tick runs the system's per-tick predicate; false tells the executor
// to skip this system's graph for the current tick.
func (s *System1[C1]) Tick() bool { return s.tick() }

// Table1 exposes the backing table for direct traversal/sort access.
func (s *System1[C1]) Table1() Table[C1] { return s.t1 }

// Add mints a new entity and attaches c1 to it.
func (s *System1[C1]) Add(c1 C1) EntityID {
	e := s.MintEntity()
	s.t1.Add(e, c1)
	return e
}

// Attach attaches c1 to the existing entity e. e must not already hold
// a component in this table.
func (s *System1[C1]) Attach(e EntityID, c1 C1) { s.t1.Add(e, c1) }

// TryAttach replaces or inserts c1 on e.
func (s *System1[C1]) TryAttach(e EntityID, c1 C1) { s.t1.TryAdd(e, c1) }

// Dettach removes e's component. e must hold one.
func (s *System1[C1]) Dettach(e EntityID) { s.t1.Remove(e) }

// TryDettach removes e's component if present, reporting whether it was.
func (s *System1[C1]) TryDettach(e EntityID) bool { return s.t1.TryRemove(e) }

// AttachRange attaches c1 to every id in r.
func (s *System1[C1]) AttachRange(r EntityRange, c1 C1) {
	for e := r.Begin; e < r.End; e++ {
		s.t1.Add(e, c1)
	}
}

// DettachRange removes every id in r's component if present.
func (s *System1[C1]) DettachRange(r EntityRange) {
	for e := r.Begin; e < r.End; e++ {
		s.t1.TryRemove(e)
	}
}

// Remove drops e from the table (tolerating absence) and releases its
// id back to the entity free list.
func (s *System1[C1]) Remove(e EntityID) {
	s.t1.TryRemove(e)
	s.ReleaseEntity(e)
}

// RemoveUnsafe drops e assuming it is present in the table (aborting
// if not) and releases its id; skips the existence check TryRemove
// pays for when the caller already knows e is present.
func (s *System1[C1]) RemoveUnsafe(e EntityID) {
	s.t1.Remove(e)
	s.ReleaseEntity(e)
}

// Handle builds the pipeline.SystemHandle the owning executor
// registers, wrapping this system's Tick and internal Graph.
func (s *System1[C1]) Handle(name string) pipeline.SystemHandle {
	return pipeline.SystemHandle{Name: name, Tick: s.Tick, Graph: s.Graph}
}
