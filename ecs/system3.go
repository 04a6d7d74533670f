// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

import (
	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/pipeline"
)

// System3 is a System bound to three component types — the largest
// arity forge offers; systems needing more should split into multiple
// pipelines' systems interacting via Base.Interact, matching the
// spec's own note that systems, not components, are the unit of
// cross-pipeline composition.
type System3[C1, C2, C3 any] struct {
	Base
	Graph *graph.Graph

	t1   Table[C1]
	t2   Table[C2]
	t3   Table[C3]
	tick func() bool
}

// NewSystem3 constructs a System3 bound to pipeline p, backed by
// tables t1, t2, t3 for its three component types.
func NewSystem3[C1, C2, C3 any](p *pipeline.Pipeline, t1 Table[C1], t2 Table[C2], t3 Table[C3], tick func() bool) *System3[C1, C2, C3] {
	if tick == nil {
		tick = func() bool { return true }
	}
	return &System3[C1, C2, C3]{Base: NewBase(p), Graph: graph.New(), t1: t1, t2: t2, t3: t3, tick: tick}
}

// Tick runs the system's per-tick predicate.
func (s *System3[C1, C2, C3]) Tick() bool { return s.tick() }

// Table1 exposes the first backing table.
func (s *System3[C1, C2, C3]) Table1() Table[C1] { return s.t1 }

// Table2 exposes the second backing table.
func (s *System3[C1, C2, C3]) Table2() Table[C2] { return s.t2 }

// Table3 exposes the third backing table.
func (s *System3[C1, C2, C3]) Table3() Table[C3] { return s.t3 }

// Add mints a new entity and attaches all three components to it.
func (s *System3[C1, C2, C3]) Add(c1 C1, c2 C2, c3 C3) EntityID {
	e := s.MintEntity()
	s.t1.Add(e, c1)
	s.t2.Add(e, c2)
	s.t3.Add(e, c3)
	return e
}

// Attach attaches all three components to the existing entity e.
func (s *System3[C1, C2, C3]) Attach(e EntityID, c1 C1, c2 C2, c3 C3) {
	s.t1.Add(e, c1)
	s.t2.Add(e, c2)
	s.t3.Add(e, c3)
}

// TryAttach replaces or inserts all three components on e.
func (s *System3[C1, C2, C3]) TryAttach(e EntityID, c1 C1, c2 C2, c3 C3) {
	s.t1.TryAdd(e, c1)
	s.t2.TryAdd(e, c2)
	s.t3.TryAdd(e, c3)
}

// Dettach removes all three of e's components. e must hold them all.
func (s *System3[C1, C2, C3]) Dettach(e EntityID) {
	s.t1.Remove(e)
	s.t2.Remove(e)
	s.t3.Remove(e)
}

// TryDettach removes whichever of e's components are present.
func (s *System3[C1, C2, C3]) TryDettach(e EntityID) {
	s.t1.TryRemove(e)
	s.t2.TryRemove(e)
	s.t3.TryRemove(e)
}

// Remove drops e from all three tables (tolerating absence in any)
// and releases its id back to the entity free list.
func (s *System3[C1, C2, C3]) Remove(e EntityID) {
	s.t1.TryRemove(e)
	s.t2.TryRemove(e)
	s.t3.TryRemove(e)
	s.ReleaseEntity(e)
}

// RemoveUnsafe drops e assuming presence in all three tables and
// releases its id, skipping the existence checks TryRemove pays for.
func (s *System3[C1, C2, C3]) RemoveUnsafe(e EntityID) {
	s.t1.Remove(e)
	s.t2.Remove(e)
	s.t3.Remove(e)
	s.ReleaseEntity(e)
}

// Handle builds the pipeline.SystemHandle the owning executor registers.
func (s *System3[C1, C2, C3]) Handle(name string) pipeline.SystemHandle {
	return pipeline.SystemHandle{Name: name, Tick: s.Tick, Graph: s.Graph}
}
