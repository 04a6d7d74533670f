// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package graph owns a set of tasks and the precedence links between
// them, and tracks whether the set is currently being executed by a
// scheduler. Modifying the task list while the graph is running is a
// precondition violation.
package graph

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"code.hybscloud.com/forge/internal/abort"
	"code.hybscloud.com/forge/task"
)

// Graph owns an arena of tasks and the roots list derived from their
// links. Tasks are added via Add and hold stable addresses for the
// lifetime of the graph (removal unhooks and drops the slot, but never
// moves a surviving task's address across an Add/Remove).
type Graph struct {
	tasks      []*task.Task
	roots      []*task.Task
	rootsValid bool

	running         atomix.Bool
	activeTaskCount atomix.Int64
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// Add appends a new task wrapping work to the graph's arena.
func (g *Graph) Add(work task.Work) *task.Task {
	abort.If(g.Running(), "graph: Add called while running")
	t := task.New(work)
	t.SetOwner(g)
	g.tasks = append(g.tasks, t)
	g.rootsValid = false
	return t
}

// Remove unhooks t from its neighbours and drops it from the arena.
func (g *Graph) Remove(t *task.Task) {
	abort.If(g.Running(), "graph: Remove called while running")
	idx := indexOf(g.tasks, t)
	if idx < 0 {
		return
	}
	t.Reset()
	g.tasks = append(g.tasks[:idx], g.tasks[idx+1:]...)
	g.rootsValid = false
}

// Clear unhooks and drops every task in the graph.
func (g *Graph) Clear() {
	abort.If(g.Running(), "graph: Clear called while running")
	for _, t := range g.tasks {
		t.Reset()
	}
	g.tasks = nil
	g.roots = nil
	g.rootsValid = false
}

// Count returns the number of tasks currently in the graph.
func (g *Graph) Count() int { return len(g.tasks) }

// Tasks returns the graph's task arena. Callers must not mutate it.
func (g *Graph) Tasks() []*task.Task { return g.tasks }

// Running reports whether the graph is currently being executed.
func (g *Graph) Running() bool { return g.running.LoadAcquire() }

// PrepareToSchedule marks the graph running, resets every task's join
// counter, and returns the (cached) root list. It rejects re-entry if
// the graph is already running.
func (g *Graph) PrepareToSchedule() []*task.Task {
	abort.If(g.running.LoadAcquire(), "graph: PrepareToSchedule called while already running")

	for _, t := range g.tasks {
		t.PrepareToSchedule()
	}

	if !g.rootsValid {
		g.roots = g.roots[:0]
		for _, t := range g.tasks {
			if len(t.Predecessors()) == 0 {
				g.roots = append(g.roots, t)
			}
		}
		g.rootsValid = true
	}

	if len(g.tasks) == 0 {
		return g.roots
	}

	g.activeTaskCount.StoreRelaxed(int64(len(g.tasks)))
	g.running.StoreRelease(true)
	return g.roots
}

// JoinTasks records n completed tasks; when the active count reaches
// zero the graph stops running and any waiter unblocks.
func (g *Graph) JoinTasks(n int64) {
	remaining := g.activeTaskCount.AddAcqRel(-n)
	if remaining <= 0 {
		g.running.StoreRelease(false)
	}
}

// WaitSleep blocks, sleeping in increments of d, until the graph stops running.
func (g *Graph) WaitSleep(d time.Duration) {
	for g.Running() {
		time.Sleep(d)
	}
}

// WaitSpin blocks in a tight spin-yield loop until the graph stops running.
func (g *Graph) WaitSpin() {
	sw := spin.Wait{}
	for g.Running() {
		sw.Once()
	}
}

// WaitUntil blocks until the graph stops running or deadline passes,
// whichever comes first.
func (g *Graph) WaitUntil(deadline time.Time) {
	for g.Running() {
		if !time.Now().Before(deadline) {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func indexOf(tasks []*task.Task, t *task.Task) int {
	for i, v := range tasks {
		if v == t {
			return i
		}
	}
	return -1
}
