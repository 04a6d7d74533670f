// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/lfq"

// Queue is the combined producer-consumer interface for a FIFO queue.
//
// Queue provides non-blocking Enqueue and Dequeue operations. Both operations
// return ErrWouldBlock when they cannot proceed (queue full or empty).
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
// Track counts in application logic when needed.
//
// Queue is an alias for [lfq.Queue]: the scheduler's run queues and the
// pipeline's event queues are built directly on the teacher library's
// generic primitives, so a value returned by this package's constructors
// is interchangeable with one built against lfq directly.
//
// Example:
//
//	q := queue.NewMPMC[*task.Task](1024)
//
//	// Enqueue
//	t := task.New(work)
//	if err := q.Enqueue(&t); err != nil {
//	    // Handle full queue
//	}
//
//	// Dequeue
//	elem, err := q.Dequeue()
//	if err == nil {
//	    _ = elem.Work()
//	}
type Queue[T any] = lfq.Queue[T]

// Producer is the interface for enqueueing elements. Alias for [lfq.Producer].
//
// The element is passed by pointer to avoid copying large structs; the
// queue stores a copy of the pointed-to value, so the original can be
// modified after Enqueue returns.
type Producer[T any] = lfq.Producer[T]

// Consumer is the interface for dequeueing elements. Alias for [lfq.Consumer].
//
// The element is returned by value, copied from the queue's internal
// buffer; the original slot is cleared to allow garbage collection of
// referenced objects.
type Consumer[T any] = lfq.Consumer[T]

// Drainer signals that no more enqueues will occur. Alias for [lfq.Drainer].
//
// FAA-based queues (MPMC, SPMC, MPSC) implement this interface.
// SPSC queues do not implement Drainer as they have no threshold mechanism.
//
// Call Drain after all producers have finished to allow consumers to
// drain remaining items without threshold blocking.
//
// Example:
//
//	prodWg.Wait()  // Wait for producers to finish
//	if d, ok := q.(queue.Drainer); ok {
//	    d.Drain()
//	}
//	// Consumers can now drain all remaining items
type Drainer = lfq.Drainer
