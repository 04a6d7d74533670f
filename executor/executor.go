// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor

import (
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/atomix"

	"code.hybscloud.com/forge/internal/abort"
	"code.hybscloud.com/forge/internal/clock"
	"code.hybscloud.com/forge/pipeline"
	"code.hybscloud.com/forge/queue"
	"code.hybscloud.com/forge/scheduler"
)

// ControlEvent is one entry on the executor's own control queue,
// pumped once per main-loop iteration. Returning false requests
// shutdown, mirroring a pipeline begin-task's beginPass but at the
// whole-executor level.
type ControlEvent func() bool

type pipelineState struct {
	p       *pipeline.Pipeline
	entries []sysEntry
	handles map[string]pipeline.SystemHandle
	elapsed time.Duration
	built   bool
}

// Executor owns a set of pipelines and the scheduler that runs their
// graphs. Methods that mutate pipeline/system registration
// (AddPipeline, AddSystem) are not safe for concurrent use with each
// other or with Run; registration is expected to complete before Run
// is called, matching spec.md's "must precede addSystem"/single
// driving-thread model.
type Executor struct {
	states []*pipelineState
	byHash map[uint64]int

	sched   *scheduler.Scheduler
	running atomix.Bool
	clk     clock.Clock

	control queue.Queue[ControlEvent]

	sleepMean float64
	sleepM2   float64
	sleepN    uint64
}

// Option configures an Executor at construction time.
type Option func(*config)

type config struct {
	clk              clock.Clock
	schedulerOpts    []scheduler.Option
	controlQueueSize int
}

// WithClock overrides the wall clock the executor's main loop and
// precise sleep read.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) { cfg.clk = c }
}

// WithSchedulerOptions forwards options to the underlying scheduler.
func WithSchedulerOptions(opts ...scheduler.Option) Option {
	return func(cfg *config) { cfg.schedulerOpts = append(cfg.schedulerOpts, opts...) }
}

// WithControlQueueSize overrides the executor's own control queue capacity.
func WithControlQueueSize(n int) Option {
	return func(cfg *config) { cfg.controlQueueSize = n }
}

// New constructs an Executor with its own scheduler. Use Default for
// the process-wide singleton instance.
func New(opts ...Option) *Executor {
	cfg := config{clk: clock.Default, controlQueueSize: 256}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Executor{
		byHash:  make(map[uint64]int),
		sched:   scheduler.New(cfg.schedulerOpts...),
		clk:     cfg.clk,
		control: queue.NewMPMC[ControlEvent](cfg.controlQueueSize),
	}
}

var (
	defaultOnce sync.Once
	defaultExec *Executor
)

// Default returns the process-wide singleton Executor, constructing
// it lazily on first use (REDESIGN FLAGS "global state ... exactly
// one instance permitted").
func Default() *Executor {
	defaultOnce.Do(func() { defaultExec = New() })
	return defaultExec
}

// AddPipeline registers a new pipeline named name, ticking at
// freqHz Hz (0 disables automatic ticking: Run never schedules that
// pipeline's graph), draining its event queue and
// consulting beginPass (nil means always continue) at the start of
// every tick. eventQueueSize of 0 uses pipeline.DefaultEventQueueSize.
// Must be called before any AddSystem call naming this pipeline.
// Registering the same name twice is a precondition violation.
func (ex *Executor) AddPipeline(name string, freqHz float64, mode pipeline.TimeMode, beginPass func() bool, eventQueueSize int) uint64 {
	hash := pipeline.HashName(name)
	abort.If(freqHz < 0, "executor: AddPipeline %q: frequency must be >= 0", name)
	if _, exists := ex.byHash[hash]; exists {
		abort.Abort("executor: duplicate pipeline registration %q", name)
	}

	var tickRate time.Duration
	if freqHz > 0 {
		tickRate = time.Duration(float64(time.Second) / freqHz)
	}

	p := pipeline.New(name, tickRate, mode, beginPass, eventQueueSize)
	ex.byHash[hash] = len(ex.states)
	ex.states = append(ex.states, &pipelineState{p: p, handles: make(map[string]pipeline.SystemHandle)})
	return hash
}

// AddSystem registers a system's handle against the pipeline
// identified by pipelineHash, subject to the given ordering
// constraints. The pipeline's full system order is recomputed from
// every system registered against it so far; a cycle among the
// declared constraints aborts with "circular system dependencies".
func (ex *Executor) AddSystem(pipelineHash uint64, handle pipeline.SystemHandle, deps ...Dependency) {
	st := ex.stateFor(pipelineHash, "AddSystem")
	abort.If(st.built, "executor: AddSystem called after Run built pipeline %q's graph", st.p.Name)
	abort.If(handle.Name == "", "executor: AddSystem called with an unnamed system handle")
	if _, dup := st.handles[handle.Name]; dup {
		abort.Abort("executor: duplicate system registration %q on pipeline %q", handle.Name, st.p.Name)
	}

	st.entries = append(st.entries, sysEntry{name: handle.Name, deps: deps})
	st.handles[handle.Name] = handle

	order := finalizeOrder(st.entries)
	st.p.Systems = st.p.Systems[:0]
	for _, name := range order {
		st.p.AddSystem(st.handles[name])
	}
}

func (ex *Executor) stateFor(hash uint64, op string) *pipelineState {
	idx, ok := ex.byHash[hash]
	abort.If(!ok, "executor: %s: no pipeline registered for hash %d", op, hash)
	return ex.states[idx]
}

// GetPipelineIndex returns the registration index of the pipeline
// hashed to hash, or ErrNotFound.
func (ex *Executor) GetPipelineIndex(hash uint64) (int, error) {
	idx, ok := ex.byHash[hash]
	if !ok {
		return 0, ErrNotFound
	}
	return idx, nil
}

// GetSystemIndex returns the position of the system named by
// systemHash's matching name within pipeline pipelineIndex's ordered
// system list, or ErrNotFound.
func (ex *Executor) GetSystemIndex(pipelineIndex int, systemHash uint64) (int, error) {
	if pipelineIndex < 0 || pipelineIndex >= len(ex.states) {
		return 0, ErrNotFound
	}
	p := ex.states[pipelineIndex].p
	for i, s := range p.Systems {
		if pipeline.HashName(s.Name) == systemHash {
			return i, nil
		}
	}
	return 0, ErrNotFound
}

// SetPipelineTickRate updates pipeline i's tick rate in Hz. Like the
// pipeline's own SetTickRate, this is racy by design: an in-flight
// tick observes the old or new rate depending on timing.
func (ex *Executor) SetPipelineTickRate(i int, hz float64) {
	var d time.Duration
	if hz > 0 {
		d = time.Duration(float64(time.Second) / hz)
	}
	ex.states[i].p.SetTickRate(d)
}

// GetPipelineTickRate returns pipeline i's current tick rate in Hz,
// or 0 if automatic ticking is disabled.
func (ex *Executor) GetPipelineTickRate(i int) float64 {
	d := ex.states[i].p.TickRate()
	if d <= 0 {
		return 0
	}
	return float64(time.Second) / float64(d)
}

// SendEvent enqueues cb to run during the next begin-task of the
// pipeline hashed to pipelineHash. retryOnFailure selects the full-
// queue behavior: true yields and retries forever; false aborts
// immediately (spec.md §4.G "Events").
func (ex *Executor) SendEvent(pipelineHash uint64, retryOnFailure bool, cb func()) {
	st := ex.stateFor(pipelineHash, "SendEvent")
	ev := pipeline.Event(cb)
	if err := st.p.Events.Enqueue(&ev); err == nil {
		return
	}
	if !retryOnFailure {
		abort.Abort("executor: event queue for pipeline %q full and RetryOnFailure=false", st.p.Name)
	}
	for {
		if err := st.p.Events.Enqueue(&ev); err == nil {
			return
		}
		runtime.Gosched()
	}
}

// SendControlEvent enqueues cb onto the executor's own control queue,
// pumped once per main-loop iteration.
func (ex *Executor) SendControlEvent(cb ControlEvent) error {
	return ex.control.Enqueue(&cb)
}

// Running reports whether the executor's main loop is active.
func (ex *Executor) Running() bool { return ex.running.LoadAcquire() }

// Shutdown cooperatively requests the main loop to stop after its
// current iteration. It does not block for the loop to actually exit;
// callers awaiting full shutdown should wait on whatever signals Run
// returning via their own synchronization.
func (ex *Executor) Shutdown() {
	ex.running.StoreRelease(false)
}
