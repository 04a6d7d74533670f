// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task defines the node type the scheduler and graph packages
// execute: a unit of work plus precedence links to its predecessors and
// successors and a join counter tracking how many predecessors have
// completed.
package task

import "code.hybscloud.com/atomix"

// Work is the closed set of task bodies a Task can hold.
type Work interface {
	isWork()
}

// StaticFunc is a zero-argument function run to completion; on return
// all of the task's successors become eligible.
type StaticFunc func()

func (StaticFunc) isWork() {}

// SwitchFunc is a zero-argument function returning an index in
// [0, successorCount]. The returned index selects the single successor
// to schedule; successorCount itself means "schedule none". Every
// unselected successor, and its transitive-only descendants, is
// drained rather than executed.
type SwitchFunc func() int

func (SwitchFunc) isWork() {}

// Subgraph is the interface a nested graph must satisfy to be driven
// by a SubGraphWork task. It is declared here, not as a concrete
// *graph.Graph, so this package does not import graph (which itself
// must import task for its task arena) — package graph's *Graph
// satisfies Subgraph structurally.
type Subgraph interface {
	PrepareToSchedule() []*Task
	Running() bool
}

// SubGraphWork dispatches another graph as a nested scheduling unit.
// The scheduler calls PrepareToSchedule on Graph, schedules its roots,
// and joins the outer task once Graph.Running() goes false.
type SubGraphWork struct {
	Graph Subgraph
}

func (SubGraphWork) isWork() {}

// Joiner is the interface a task's owning graph satisfies so a
// completed task can credit its active-task count without this
// package importing package graph. *graph.Graph implements Joiner.
type Joiner interface {
	JoinTasks(n int64)
}

// Task is a node in a graph: a work body plus non-owning links to the
// predecessors and successors within the same graph's task arena.
type Task struct {
	work         Work
	predecessors []*Task
	successors   []*Task
	join         atomix.Int32
	drained      atomix.Int32
	owner        Joiner
}

// New creates a detached task wrapping work. Graphs add tasks to their
// own arena via Graph.Add rather than constructing them directly.
func New(work Work) *Task {
	return &Task{work: work}
}

// Work returns the task's work body.
func (t *Task) Work() Work { return t.work }

// SetOwner records the graph (or other Joiner) that should be
// credited with a completed join when this task finishes. Called by
// Graph.Add; not intended for use outside package graph.
func (t *Task) SetOwner(owner Joiner) { t.owner = owner }

// Owner returns the Joiner set via SetOwner, or nil for a task that
// was constructed directly rather than added to a graph.
func (t *Task) Owner() Joiner { return t.owner }

// Predecessors returns the task's current predecessor links. Callers
// must not mutate the returned slice.
func (t *Task) Predecessors() []*Task { return t.predecessors }

// Successors returns the task's current successor links. Callers must
// not mutate the returned slice.
func (t *Task) Successors() []*Task { return t.successors }

// Before inserts a precedence link: other runs only after t completes.
// Acyclicity is not verified; a cycle is a user error that hangs the
// graph at schedule time.
func (t *Task) Before(other *Task) {
	t.successors = append(t.successors, other)
	other.predecessors = append(other.predecessors, t)
}

// After inserts a precedence link: t runs only after other completes.
func (t *Task) After(other *Task) {
	other.Before(t)
}

// Reset unhooks t from every neighbour's link list. Required before
// removing a task from its owning graph.
func (t *Task) Reset() {
	for _, p := range t.predecessors {
		p.successors = removeLink(p.successors, t)
	}
	for _, s := range t.successors {
		s.predecessors = removeLink(s.predecessors, t)
	}
	t.predecessors = nil
	t.successors = nil
}

func removeLink(links []*Task, target *Task) []*Task {
	for i, v := range links {
		if v == target {
			return append(links[:i], links[i+1:]...)
		}
	}
	return links
}

// TryJoin atomically increments the join counter and reports whether it
// now equals the predecessor count — true exactly once per graph
// invocation, the instant the task becomes schedulable.
//
// TryJoin is called only by package scheduler as
// predecessors complete; user code never calls it directly.
func (t *Task) TryJoin() bool {
	v := t.join.AddAcqRel(1)
	return int(v) == len(t.predecessors)
}

// TryJoinDrain is TryJoin's counterpart for a predecessor edge that
// completed by being drained (an unselected Switch branch) rather than
// by actually running. It increments both the join counter and a
// separate drained-edge counter, atomically, so that when the task
// becomes schedulable (ready) the caller can tell whether every
// contributing predecessor was drained (allDrained), or whether at
// least one predecessor actually ran — in which case this task has
// real work pending and must be scheduled for execution, not drained
// further, regardless of which edge happened to arrive last.
//
// This distinction matters only for a task reachable from more than
// one predecessor where some edges are drained and others execute: a
// plain join counter cannot tell those two completion sources apart,
// and treating "arrived last" as "was drained" would make whether this
// task's work runs depend on goroutine scheduling order. Recording
// which edges were drained removes that race.
func (t *Task) TryJoinDrain() (ready, allDrained bool) {
	d := t.drained.AddAcqRel(1)
	v := t.join.AddAcqRel(1)
	ready = int(v) == len(t.predecessors)
	if ready {
		allDrained = int(d) == len(t.predecessors)
	}
	return ready, allDrained
}

// PrepareToSchedule resets the join and drained counters to zero ahead
// of a new graph invocation. Called only by the owning graph.
func (t *Task) PrepareToSchedule() {
	t.join.StoreRelaxed(0)
	t.drained.StoreRelaxed(0)
}
