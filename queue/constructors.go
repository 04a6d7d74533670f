// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/lfq"

// NewSPSC creates a single-producer single-consumer bounded queue, backed
// by lfq's Lamport ring buffer. Capacity rounds up to the next power of 2.
// Panics if capacity < 2.
func NewSPSC[T any](capacity int) Queue[T] {
	return lfq.NewSPSC[T](capacity)
}

// NewMPSC creates a multi-producer single-consumer bounded queue, backed
// by lfq's FAA-based algorithm (2n physical slots for capacity n). Used
// for the pipeline's per-pipeline event queue, where any system running
// on any worker can post an event but only that pipeline's own tick
// delivers them. Panics if capacity < 2.
func NewMPSC[T any](capacity int) Queue[T] {
	return lfq.NewMPSC[T](capacity)
}

// NewSPMC creates a single-producer multi-consumer bounded queue, backed
// by lfq's FAA-based algorithm. Used for a worker's local run queue: the
// owning worker is the sole producer, and any worker in a stealing phase
// may consume from it. Panics if capacity < 2.
func NewSPMC[T any](capacity int) Queue[T] {
	return lfq.NewSPMC[T](capacity)
}

// NewMPMC creates a multi-producer multi-consumer bounded queue, backed
// by lfq's SCQ algorithm. Used for the scheduler's shared submission
// queue, where every worker both pushes overflow from its local queue
// and pops work during a stealing phase. Panics if capacity < 2.
func NewMPMC[T any](capacity int) Queue[T] {
	return lfq.NewMPMC[T](capacity)
}

// NewMPSCSeq creates a CAS/sequence-number based MPSC queue (n physical
// slots for capacity n, half the memory of NewMPSC, reduced scalability
// under high contention). Panics if capacity < 2.
func NewMPSCSeq[T any](capacity int) Queue[T] {
	return lfq.NewMPSCSeq[T](capacity)
}

// NewSPMCSeq creates a CAS/sequence-number based SPMC queue. Selected for
// a worker's local run queue when the scheduler is built with
// WithCompactQueues, trading steal-phase scalability for half the memory
// footprint across a large worker pool. Panics if capacity < 2.
func NewSPMCSeq[T any](capacity int) Queue[T] {
	return lfq.NewSPMCSeq[T](capacity)
}

// NewMPMCSeq creates a CAS/sequence-number based MPMC queue. Selected for
// the scheduler's submission queue under WithCompactQueues. Panics if
// capacity < 2.
func NewMPMCSeq[T any](capacity int) Queue[T] {
	return lfq.NewMPMCSeq[T](capacity)
}
