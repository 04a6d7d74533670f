// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

import (
	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/pipeline"
)

// System2 is a System bound to two component types.
type System2[C1, C2 any] struct {
	Base
	Graph *graph.Graph

	t1   Table[C1]
	t2   Table[C2]
	tick func() bool
}

// NewSystem2 constructs a System2 bound to pipeline p, backed by
// tables t1, t2 for its two component types.
func NewSystem2[C1, C2 any](p *pipeline.Pipeline, t1 Table[C1], t2 Table[C2], tick func() bool) *System2[C1, C2] {
	if tick == nil {
		tick = func() bool { return true }
	}
	return &System2[C1, C2]{Base: NewBase(p), Graph: graph.New(), t1: t1, t2: t2, tick: tick}
}

// Tick runs the system's per-tick predicate.
func (s *System2[C1, C2]) Tick() bool { return s.tick() }

// Table1 exposes the first backing table.
func (s *System2[C1, C2]) Table1() Table[C1] { return s.t1 }

// Table2 exposes the second backing table.
func (s *System2[C1, C2]) Table2() Table[C2] { return s.t2 }

// Add mints a new entity and attaches both components to it.
func (s *System2[C1, C2]) Add(c1 C1, c2 C2) EntityID {
	e := s.MintEntity()
	s.t1.Add(e, c1)
	s.t2.Add(e, c2)
	return e
}

// Attach attaches both components to the existing entity e.
func (s *System2[C1, C2]) Attach(e EntityID, c1 C1, c2 C2) {
	s.t1.Add(e, c1)
	s.t2.Add(e, c2)
}

// TryAttach replaces or inserts both components on e.
func (s *System2[C1, C2]) TryAttach(e EntityID, c1 C1, c2 C2) {
	s.t1.TryAdd(e, c1)
	s.t2.TryAdd(e, c2)
}

// Dettach removes both of e's components. e must hold both.
func (s *System2[C1, C2]) Dettach(e EntityID) {
	s.t1.Remove(e)
	s.t2.Remove(e)
}

// TryDettach removes whichever of e's components are present.
func (s *System2[C1, C2]) TryDettach(e EntityID) {
	s.t1.TryRemove(e)
	s.t2.TryRemove(e)
}

// Remove drops e from both tables (tolerating absence in either) and
// releases its id back to the entity free list.
func (s *System2[C1, C2]) Remove(e EntityID) {
	s.t1.TryRemove(e)
	s.t2.TryRemove(e)
	s.ReleaseEntity(e)
}

// RemoveUnsafe drops e assuming presence in both tables and releases
// its id, skipping the existence checks TryRemove pays for.
func (s *System2[C1, C2]) RemoveUnsafe(e EntityID) {
	s.t1.Remove(e)
	s.t2.Remove(e)
	s.ReleaseEntity(e)
}

// Handle builds the pipeline.SystemHandle the owning executor registers.
func (s *System2[C1, C2]) Handle(name string) pipeline.SystemHandle {
	return pipeline.SystemHandle{Name: name, Tick: s.Tick, Graph: s.Graph}
}
