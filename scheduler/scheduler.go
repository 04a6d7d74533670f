// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scheduler runs task graphs across a fixed pool of worker
// goroutines. Each worker owns a single-producer multi-consumer queue
// for tasks it hands off to itself; a shared multi-producer
// multi-consumer queue carries graph roots and overflow from workers
// whose local queue is momentarily full. Idle workers steal from the
// shared queue and sleep on a counting semaphore when nothing is
// available anywhere.
package scheduler

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"

	"code.hybscloud.com/forge/queue"
	"code.hybscloud.com/forge/task"
)

// YieldBound is the number of processor yields a worker makes during
// the stealing phase before giving up and sleeping on the semaphore.
const YieldBound = 100

type pad [64]byte

// Scheduler owns the worker pool, the shared submission queue, and the
// bookkeeping counters workers use to decide when to sleep.
type Scheduler struct {
	_                   pad
	activeWorkerCount   atomix.Int32
	_                   pad
	stealingWorkerCount atomix.Int32
	_                   pad
	running             atomix.Bool
	_                   pad

	workers    []*worker
	submission queue.Queue[*task.Task]
	sleepSem   *semaphore.Weighted
	wg         sync.WaitGroup

	// stealBound is the number of failed steal attempts a worker makes
	// before yielding the processor during the stealing phase. It scales
	// with the pool size (2*(workerCount+1)) so a larger pool gives a
	// stealing worker proportionally more attempts to find work in its
	// own local queue or the shared submission queue before backing off.
	stealBound int
}

// Option configures a Scheduler at construction time.
type Option func(*config)

type config struct {
	workers          int
	localCapacity    int
	submitCapacity   int
	compactVariants  bool
}

// WithWorkerCount overrides the default worker count (hardware
// concurrency). n is clamped to at least 1.
func WithWorkerCount(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithLocalQueueCapacity overrides each worker's local SPMC capacity.
func WithLocalQueueCapacity(n int) Option {
	return func(c *config) { c.localCapacity = n }
}

// WithSubmissionQueueCapacity overrides the shared MPMC capacity.
func WithSubmissionQueueCapacity(n int) Option {
	return func(c *config) { c.submitCapacity = n }
}

// WithCompactQueues selects the sequence-lock (Compact) queue
// algorithm for both the local and submission queues instead of the
// default FAA-based algorithm. Compact trades peak throughput for a
// smaller memory footprint; see the queue package's Algorithm
// Selection notes.
func WithCompactQueues() Option {
	return func(c *config) { c.compactVariants = true }
}

// New builds a Scheduler and its worker pool. The pool is not started;
// call Start to spawn worker goroutines.
func New(opts ...Option) *Scheduler {
	cfg := config{
		workers:        runtime.NumCPU(),
		localCapacity:  256,
		submitCapacity: 4096,
	}
	if cfg.workers < 1 {
		// Hardware concurrency detection failed; fall back to a
		// conservative pool size rather than refusing to run at all.
		cfg.workers = 4
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Scheduler{
		sleepSem: semaphore.NewWeighted(int64(cfg.workers)),
	}
	if cfg.compactVariants {
		s.submission = queue.NewMPMCSeq[*task.Task](cfg.submitCapacity)
	} else {
		s.submission = queue.NewMPMC[*task.Task](cfg.submitCapacity)
	}

	s.workers = make([]*worker, cfg.workers)
	for i := range s.workers {
		w := &worker{id: i, sched: s}
		if cfg.compactVariants {
			w.local = queue.NewSPMCSeq[*task.Task](cfg.localCapacity)
		} else {
			w.local = queue.NewSPMC[*task.Task](cfg.localCapacity)
		}
		s.workers[i] = w
	}
	s.stealBound = 2 * (len(s.workers) + 1)
	return s
}

// Running reports whether the scheduler's worker pool is started.
func (s *Scheduler) Running() bool { return s.running.LoadAcquire() }

// WorkerCount returns the number of workers in the pool.
func (s *Scheduler) WorkerCount() int { return len(s.workers) }

// Start spawns one goroutine per worker. Calling Start twice without
// an intervening Shutdown is a precondition violation left to the
// caller to avoid; Start does not guard against it.
func (s *Scheduler) Start() {
	s.running.StoreRelease(true)
	s.wg.Add(len(s.workers))
	for _, w := range s.workers {
		w := w
		go func() {
			defer s.wg.Done()
			w.loop()
		}()
	}
}

// Shutdown flips the running flag, wakes every sleeping worker, and
// blocks until all worker goroutines have returned.
func (s *Scheduler) Shutdown() {
	s.running.StoreRelease(false)
	s.sleepSem.Release(int64(len(s.workers)))
	s.wg.Wait()
}

// Schedule prepares g for execution and pushes its roots onto the
// shared submission queue. g is any type satisfying task.Subgraph,
// which includes *graph.Graph; the scheduler package never imports
// graph to avoid a dependency cycle.
func (s *Scheduler) Schedule(g task.Subgraph) error {
	return s.scheduleRoots(g.PrepareToSchedule())
}

// ScheduleTask submits a single standalone task directly, bypassing
// any owning graph. The task's own Owner, if any, still receives
// JoinTasks credit when the task completes.
func (s *Scheduler) ScheduleTask(t *task.Task) error {
	return s.scheduleRoots([]*task.Task{t})
}

func (s *Scheduler) scheduleRoots(roots []*task.Task) error {
	if len(roots) == 0 {
		return nil
	}
	sw := spin.Wait{}
	for _, t := range roots {
		t := t
		for s.submission.Enqueue(&t) != nil {
			sw.Once()
		}
	}
	s.sleepSem.Release(1)
	return nil
}

func (s *Scheduler) sleep(ctx context.Context) bool {
	_ = s.sleepSem.Acquire(ctx, 1)
	return s.running.LoadAcquire()
}
