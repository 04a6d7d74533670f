// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides the bounded lock-free FIFO queues that back the
// forge scheduler: a per-worker SPMC run queue and a global MPMC
// submission queue, plus the MPSC queue used for pipeline event delivery.
//
// The queue algorithms themselves are [code.hybscloud.com/lfq], imported
// directly rather than re-implemented here. This package is the
// forge-specific front door onto lfq: a fluent Builder that picks an
// algorithm from producer/consumer constraints, and type aliases
// ([Queue], [Producer], [Consumer], [Drainer]) so callers never need to
// import lfq themselves.
//
// The package offers queue variants optimized for different
// producer/consumer patterns:
//
//   - SPSC: Single-Producer Single-Consumer
//   - MPSC: Multi-Producer Single-Consumer (pipeline event queues)
//   - SPMC: Single-Producer Multi-Consumer (worker run queues, stolen from)
//   - MPMC: Multi-Producer Multi-Consumer (scheduler submission queue)
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	q := queue.NewSPSC[Event](1024)
//	q := queue.NewMPMC[*task.Task](4096)
//
// Builder API auto-selects algorithm based on constraints:
//
//	q := queue.Build[Event](queue.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	q := queue.Build[Event](queue.New(1024).SingleConsumer())                  // → MPSC
//	q := queue.Build[Event](queue.New(1024).SingleProducer())                  // → SPMC
//	q := queue.Build[Event](queue.New(1024))                                   // → MPMC
//
// # Basic Usage
//
// All queues share the same interface for enqueueing and dequeueing:
//
//	q := queue.NewMPMC[int](1024)
//
//	value := 42
//	err := q.Enqueue(&value)
//	if queue.IsWouldBlock(err) {
//	    // Queue is full - handle backpressure
//	}
//
//	elem, err := q.Dequeue()
//	if queue.IsWouldBlock(err) {
//	    // Queue is empty - try again later
//	}
//
// # Algorithm Selection
//
// The builder selects algorithms based on constraints and Compact() hint:
//
// Default (FAA-based, 2n slots for capacity n):
//
//	SPSC: Lamport ring buffer (n slots, already optimal)
//	MPSC: FAA producers, sequential consumer
//	SPMC: Sequential producer, FAA consumers
//	MPMC: FAA-based SCQ algorithm
//
// With Compact() (CAS-based, ticket/sequence-number discipline, n slots for capacity n):
//
//	SPSC: Same as default (already optimal)
//	MPSC: CAS producers, sequential consumer
//	SPMC: Sequential producer, CAS consumers
//	MPMC: Sequence-based algorithm
//
// FAA (Fetch-And-Add) scales better under high contention but requires
// 2n physical slots. The scheduler's Scheduler cell — a task pointer plus
// a monotonic sequence number used by the MPMC queue's ticket protocol —
// is exactly this package's Compact/Seq variant: a per-slot sequence
// number validated against the producer/consumer index.
//
// # Graceful Shutdown
//
// FAA-based queues (MPMC, SPMC, MPSC) include a threshold mechanism to prevent
// livelock. This mechanism may cause Dequeue to return [ErrWouldBlock] even when
// items remain, waiting for producer activity to reset the threshold.
//
// For graceful shutdown scenarios where producers have finished but consumers
// need to drain remaining items, use the [Drainer] interface:
//
//	prodWg.Wait()
//	if d, ok := q.(queue.Drainer); ok {
//	    d.Drain()
//	}
//
// After Drain is called, Dequeue skips threshold checks, allowing consumers
// to fully drain the queue. Drain is a hint — the caller must ensure no
// further Enqueue calls will be made.
//
// SPSC queues do not implement [Drainer] as they have no threshold mechanism.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// Lock-free queues use sequence numbers with acquire-release semantics to
// protect non-atomic data fields; the race detector cannot observe
// happens-before relationships established through atomic memory
// orderings on separate variables, and may report false positives.
// Tests incompatible with race detection are excluded via //go:build !race.
//
// # Dependencies
//
// This package builds on [code.hybscloud.com/lfq] for the queue algorithms
// themselves, which in turn uses [code.hybscloud.com/iox] for semantic
// errors, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package queue
