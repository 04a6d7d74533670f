// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bucketalloc is a bucketed stack allocator: pages are carved
// into power-of-two size classes on demand, freed blocks return to a
// per-class free list instead of being coalesced, and a class's free
// list is consulted before the current page is carved further.
//
// Local is for single-owner use (typically one per scheduler worker)
// and does no synchronization. Shared is safe for concurrent use: its
// free-list heads are Treiber stacks guarded by a tagged counter
// (packed into a single atomix.Uint64, the same tagged-counter
// discipline the queue package's MPMC uses for its cycle numbers) and
// its page cursor advances with fetch-add.
//
// Sizes above 2^MaxSizePow bypass the bucket machinery entirely and
// fall back to an unretained system allocation.
package bucketalloc
