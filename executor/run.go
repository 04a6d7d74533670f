// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"
	"time"

	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/pipeline"
	"code.hybscloud.com/forge/task"
)

// buildGraph constructs a pipeline's begin-task-plus-systems graph
// exactly once: a begin-task drains the event queue and consults
// beginPass, then for every system in the pipeline's resolved order a
// tick-task (switch: run the system's graph or skip it) precedes a
// graph-subtask holding that system's own Graph. Each tick-task is
// chained after both the previous system's graph-subtask and the
// previous system's tick-task, so a tick-task's successors are its own
// graph-subtask followed by the next tick-task: a skipping tick selects
// the next tick-task and drains only its own graph-subtask, and the
// next system still runs in declared order (spec.md §4.G).
func (st *pipelineState) buildGraph() {
	if st.built {
		return
	}
	st.built = true

	p := st.p
	p.Graph = graph.New()

	begin := p.Graph.Add(task.SwitchFunc(func() int {
		for {
			ev, err := p.Events.Dequeue()
			if err != nil {
				break
			}
			ev()
		}
		if p.Precondition != nil && !p.Precondition() {
			return 1 // drain: skip every system this tick
		}
		return 0
	}))

	prev := begin
	var prevTick *task.Task
	for _, sys := range p.Systems {
		sys := sys
		tick := p.Graph.Add(task.SwitchFunc(func() int {
			if sys.Tick() {
				return 0
			}
			return 1 // drain this system's graph subtask, select the next tick
		}))
		prev.Before(tick)
		if prevTick != nil {
			prevTick.Before(tick)
		}

		sub := p.Graph.Add(task.SubGraphWork{Graph: sys.Graph})
		tick.Before(sub)

		prev = sub
		prevTick = tick
	}
}

// Run builds every registered pipeline's graph (once), starts the
// scheduler, and drives the main loop until Shutdown is called or a
// control event requests it: observe elapsed time per pipeline and
// schedule any pipeline whose graph is due and not already running,
// pump the executor's own control queue, then sleep precisely until
// the earliest next tick across all pipelines.
//
// On return, every pipeline's graph has been spin-waited to
// completion and the scheduler has been shut down.
func (ex *Executor) Run() {
	for _, st := range ex.states {
		st.buildGraph()
	}

	ex.running.StoreRelease(true)
	ex.sched.Start()

	lastTick := ex.clk.Now()
	for ex.running.LoadAcquire() {
		now := ex.clk.Now()
		elapsed := now.Sub(lastTick)
		lastTick = now

		nextTick := time.Duration(math.MaxInt64)
		for _, st := range ex.states {
			rate := st.p.TickRate()
			if rate <= 0 {
				continue
			}

			st.elapsed += elapsed
			if st.elapsed >= rate && !st.p.Graph.Running() {
				_ = ex.sched.Schedule(st.p.Graph)
				if st.p.Mode == pipeline.Bound {
					st.elapsed -= rate
				} else {
					st.elapsed = 0
				}
			}

			if remain := rate - st.elapsed; remain < nextTick {
				nextTick = remain
			}
		}

		if !ex.pumpControl() {
			break
		}
		if !ex.running.LoadAcquire() {
			break
		}

		if nextTick > 0 && nextTick < time.Duration(math.MaxInt64) {
			ex.preciseSleep(nextTick)
		}
	}

	for _, st := range ex.states {
		st.p.Graph.WaitSpin()
	}
	ex.sched.Shutdown()
}

// pumpControl drains the executor's own control queue, reporting
// false the instant an event returns false (shutdown requested).
func (ex *Executor) pumpControl() bool {
	for {
		ev, err := ex.control.Dequeue()
		if err != nil {
			return true
		}
		if !ev() {
			ex.running.StoreRelease(false)
			return false
		}
	}
}
