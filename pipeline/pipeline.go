// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"time"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/queue"
)

// TimeMode selects how a pipeline reacts to missed tick periods.
type TimeMode int

const (
	// Free discards any lag: elapsed time beyond one tick period is
	// clamped away rather than accumulated.
	Free TimeMode = iota
	// Bound accumulates lag and schedules consecutive ticks until the
	// clock has caught up.
	Bound
)

// String returns the mode's name, for diagnostics.
func (m TimeMode) String() string {
	if m == Bound {
		return "Bound"
	}
	return "Free"
}

// DefaultEventQueueSize is used by AddPipeline callers that pass 0 for
// eventQueueSize, matching spec.md §4.G "eventQueueSize=0 uses the
// default (4096/eventSize)" — events here are always closures, so the
// per-event size term collapses to a flat slot count.
const DefaultEventQueueSize = 4096

// Event is a closure enqueued by one pipeline's system for execution
// on a (possibly different) destination pipeline's driving thread,
// during that pipeline's next begin-task.
type Event func()

// SystemHandle is the tagged replacement for a vtable-based ISystem:
// the system's name, a type-erased tick function and the system's own
// task graph, enough for an executor to build a pipeline's combined graph
// without depending on package ecs's generic System type.
type SystemHandle struct {
	Name  string
	Tick  func() bool
	Graph *graph.Graph
}

// Pipeline is a named, period-driven collection of systems together
// with the event queue other pipelines' systems enqueue into and the
// task graph built once from the system list.
type Pipeline struct {
	Name     string
	NameHash uint64

	Mode         TimeMode
	Precondition func() bool

	Events queue.Queue[Event]

	Systems []SystemHandle

	// Graph is the combined begin-task + per-system tick/graph task
	// graph, built once by the executor after all systems are added.
	Graph *graph.Graph

	tickRateNanos atomix.Uint64
}

// New creates a pipeline named name, ticking at tickRate, in the given
// time mode. eventQueueSize of 0 selects DefaultEventQueueSize.
func New(name string, tickRate time.Duration, mode TimeMode, precondition func() bool, eventQueueSize int) *Pipeline {
	if eventQueueSize <= 0 {
		eventQueueSize = DefaultEventQueueSize
	}
	p := &Pipeline{
		Name:         name,
		NameHash:     HashName(name),
		Mode:         mode,
		Precondition: precondition,
		Events:       queue.NewMPSC[Event](eventQueueSize),
	}
	p.tickRateNanos.StoreRelaxed(uint64(tickRate))
	return p
}

// TickRate returns the pipeline's current tick period. Reads are racy
// by design: SetTickRate may be observed mid-tick, and callers accept
// that a producer's read may be stale by one tick.
func (p *Pipeline) TickRate() time.Duration {
	return time.Duration(p.tickRateNanos.LoadRelaxed())
}

// SetTickRate updates the pipeline's tick period.
func (p *Pipeline) SetTickRate(d time.Duration) {
	p.tickRateNanos.StoreRelaxed(uint64(d))
}

// AddSystem appends a system handle to the pipeline's ordered list.
// Ordering (RunBefore/RunAfter resolution) is the executor's
// responsibility; Pipeline itself only stores whatever order it is
// given.
func (p *Pipeline) AddSystem(h SystemHandle) {
	p.Systems = append(p.Systems, h)
}

// SystemIndex returns the position of the system named name in the
// pipeline's ordered list.
func (p *Pipeline) SystemIndex(name string) (int, bool) {
	for i, s := range p.Systems {
		if s.Name == name {
			return i, true
		}
	}
	return 0, false
}
