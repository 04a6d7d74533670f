// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/lfq"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the queue is full (backpressure)
// For Dequeue: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff or yield) rather than propagating
// the error.
//
// This is [lfq.ErrWouldBlock], itself an alias for iox.ErrWouldBlock, kept
// under this name for ecosystem consistency with the rest of this package.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(&item)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if queue.IsWouldBlock(err) {
//	        backoff.Wait()  // Adaptive backpressure
//	        continue
//	    }
//	    return err  // Unexpected error
//	}
var ErrWouldBlock = lfq.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [lfq.IsWouldBlock].
func IsWouldBlock(err error) bool {
	return lfq.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [lfq.IsSemantic].
func IsSemantic(err error) bool {
	return lfq.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [lfq.IsNonFailure].
func IsNonFailure(err error) bool {
	return lfq.IsNonFailure(err)
}
