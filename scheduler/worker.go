// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"context"
	"math/rand/v2"
	"runtime"

	"code.hybscloud.com/forge/internal/abort"
	"code.hybscloud.com/forge/queue"
	"code.hybscloud.com/forge/task"
)

// pendingSubgraph is a SubGraphWork task awaiting its child graph's
// completion. Only the worker that executed the outer task touches its
// own pending list; there is no cross-worker synchronization on it.
type pendingSubgraph struct {
	outer *task.Task
	child task.Subgraph
}

// worker drains its own local SPMC queue, then the shared submission
// queue, then steals; it sleeps on the scheduler's semaphore once both
// are empty and stealing makes no progress.
type worker struct {
	id    int
	sched *Scheduler
	local queue.Queue[*task.Task]

	pending []pendingSubgraph
}

func (w *worker) loop() {
	ctx := context.Background()
	for {
		if t, ok := w.popLocal(); ok {
			w.runAndDrainLocal(t)
			continue
		}
		if t, ok := w.popGlobal(); ok {
			w.runAndDrainLocal(t)
			continue
		}
		if w.stealPhase() {
			continue
		}
		if w.sched.activeWorkerCount.LoadAcquire() > 0 {
			// Other workers are still producing work; retry
			// stealing instead of sleeping prematurely.
			continue
		}
		if !w.sched.sleep(ctx) {
			return
		}
	}
}

func (w *worker) popLocal() (*task.Task, bool) {
	t, err := w.local.Dequeue()
	if err != nil {
		return nil, false
	}
	return t, true
}

func (w *worker) popGlobal() (*task.Task, bool) {
	t, err := w.sched.submission.Dequeue()
	if err != nil {
		return nil, false
	}
	return t, true
}

// runAndDrainLocal executes t, then keeps executing whatever lands in
// the worker's own local queue (including tasks scheduled by t itself)
// until that queue runs dry.
func (w *worker) runAndDrainLocal(t *task.Task) {
	w.enterActive()
	defer w.leaveActive()

	w.execute(t)
	w.checkPending()
	for {
		nt, ok := w.popLocal()
		if !ok {
			return
		}
		w.execute(nt)
		w.checkPending()
	}
}

func (w *worker) enterActive() {
	prev := w.sched.activeWorkerCount.AddAcqRel(1) - 1
	if prev == 0 && w.sched.stealingWorkerCount.LoadAcquire() == 0 {
		w.sched.sleepSem.Release(1)
	}
}

func (w *worker) leaveActive() {
	w.sched.activeWorkerCount.AddAcqRel(-1)
}

// stealPhase repeatedly samples a random worker index: its own index
// re-checks its own local queue, any other index checks the shared
// submission queue (the scheduler never lets one worker pop another
// worker's local queue directly). It reports whether it found and ran
// a task before giving up.
func (w *worker) stealPhase() bool {
	w.sched.stealingWorkerCount.AddAcqRel(1)
	defer w.sched.stealingWorkerCount.AddAcqRel(-1)

	failures := 0
	yields := 0
	for {
		victim := rand.IntN(len(w.sched.workers))
		var t *task.Task
		var ok bool
		if victim == w.id {
			t, ok = w.popLocal()
		} else {
			t, ok = w.popGlobal()
		}
		if ok {
			w.runAndDrainLocal(t)
			return true
		}
		if w.checkPending() {
			continue
		}

		failures++
		if failures < w.sched.stealBound {
			continue
		}
		failures = 0
		runtime.Gosched()
		yields++
		if yields >= YieldBound {
			return false
		}
	}
}

// checkPending observes the worker's pending sub-graph list, joining
// and scheduling successors for every entry whose child graph has
// stopped running. It reports whether any entry resolved.
func (w *worker) checkPending() bool {
	if len(w.pending) == 0 {
		return false
	}
	resolved := false
	kept := w.pending[:0]
	for _, e := range w.pending {
		if e.child.Running() {
			kept = append(kept, e)
			continue
		}
		if owner := e.outer.Owner(); owner != nil {
			owner.JoinTasks(1)
		}
		w.scheduleSuccessors(e.outer.Successors())
		resolved = true
	}
	w.pending = kept
	return resolved
}

// execute dispatches t according to its work kind and, for Static and
// Switch work, credits the task's owning graph with one completed
// join. SubGraphWork defers that credit until the child graph drains,
// tracked via the worker's pending list.
func (w *worker) execute(t *task.Task) {
	switch work := t.Work().(type) {
	case task.StaticFunc:
		work()
		w.scheduleSuccessors(t.Successors())
		w.join(t, 1)

	case task.SwitchFunc:
		successors := t.Successors()
		idx := work()
		if idx < 0 || idx > len(successors) {
			abort.Abort("scheduler: switch task returned index %d out of range [0,%d]", idx, len(successors))
		}
		if idx < len(successors) {
			w.scheduleSuccessors(successors[idx : idx+1])
		}
		var drained int64
		for i, s := range successors {
			if i == idx {
				continue
			}
			drained += w.drain(s)
		}
		if drained > 0 {
			w.join(t, drained)
		}
		w.join(t, 1)

	case task.SubGraphWork:
		roots := work.Graph.PrepareToSchedule()
		if len(roots) > 0 {
			w.scheduleSuccessors(roots)
		}
		w.pending = append(w.pending, pendingSubgraph{outer: t, child: work.Graph})

	default:
		abort.Abort("scheduler: task holds unrecognized work type %T", work)
	}
}

func (w *worker) join(t *task.Task, n int64) {
	if owner := t.Owner(); owner != nil {
		owner.JoinTasks(n)
	}
}

// drain recursively joins t (without executing its work) and every
// descendant reachable only through t, returning the number of tasks
// it joined this way. It models the effect of t's subtree having run
// when a Switch task didn't select it.
//
// A descendant reachable through more than one predecessor edge may
// have some edges that actually execute (e.g. it also follows the
// selected branch) and others that are drained. TryJoinDrain reports
// whether every contributing edge was itself drained; if not, this
// task is not a transitive-only descendant of the unselected branch,
// so it is pushed for real execution instead of being counted as
// drained here — its own completion will credit the graph once it
// runs.
func (w *worker) drain(t *task.Task) int64 {
	ready, allDrained := t.TryJoinDrain()
	if !ready {
		return 0
	}
	if !allDrained {
		w.pushReady(t)
		return 0
	}
	count := int64(1)
	for _, s := range t.Successors() {
		count += w.drain(s)
	}
	return count
}

// scheduleSuccessors joins every successor's predecessor count and
// pushes the ones that become schedulable: first into this worker's
// own local queue, then the shared submission queue on overflow, and
// finally by draining the local queue to make room and retrying.
func (w *worker) scheduleSuccessors(successors []*task.Task) {
	for _, s := range successors {
		if s.TryJoin() {
			w.pushReady(s)
		}
	}
}

func (w *worker) pushReady(t *task.Task) {
	if w.local.Enqueue(&t) == nil {
		return
	}
	if w.sched.submission.Enqueue(&t) == nil {
		return
	}
	for {
		if nt, ok := w.popLocal(); ok {
			w.execute(nt)
			w.checkPending()
		}
		if w.local.Enqueue(&t) == nil {
			return
		}
		if w.sched.submission.Enqueue(&t) == nil {
			return
		}
		runtime.Gosched()
	}
}
