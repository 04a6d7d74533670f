// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

// EntityID is a 32-bit entity identifier. NoEntity is the reserved
// sentinel meaning "none".
type EntityID = uint32

// NoEntity is the sentinel EntityID denoting the absence of an entity.
const NoEntity EntityID = 0

// EntityRange is a half-open [Begin, End) span of contiguous entity
// ids, used by the batch range operations on component tables.
type EntityRange struct {
	Begin EntityID
	End   EntityID
}

// Len returns the number of ids spanned by the range.
func (r EntityRange) Len() int {
	if r.End <= r.Begin {
		return 0
	}
	return int(r.End - r.Begin)
}

// freeSpan is one contiguous run of released ids awaiting reuse,
// kept in a free list ordered oldest-released-first so reuse, not
// reissue, is the common case per the id-minting contract.
type freeSpan struct {
	begin, end EntityID
}

// EntityAllocator mints entity ids with a monotonically increasing
// counter, preferring to reissue ids from a free list of released
// ranges over minting new ones. It is not safe for concurrent use;
// callers serialize access the same way a System's owning pipeline
// does (one minting thread per pipeline).
type EntityAllocator struct {
	next EntityID
	free []freeSpan
}

// NewEntityAllocator creates an allocator whose first minted id is 1
// (0 is reserved as NoEntity).
func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{next: 1}
}

// Mint returns a single fresh or reused entity id.
func (a *EntityAllocator) Mint() EntityID {
	if n := len(a.free); n > 0 {
		span := &a.free[n-1]
		id := span.begin
		span.begin++
		if span.begin >= span.end {
			a.free = a.free[:n-1]
		}
		return id
	}
	id := a.next
	a.next++
	return id
}

// MintRange returns n contiguous fresh ids. Range minting never
// reuses from the free list: a contiguous run of released ids is not
// guaranteed to exist, and the operation's contract is a contiguous
// EntityRange, not merely n individual ids.
func (a *EntityAllocator) MintRange(n int) EntityRange {
	if n <= 0 {
		return EntityRange{}
	}
	begin := a.next
	a.next += EntityID(n)
	return EntityRange{Begin: begin, End: a.next}
}

// Release returns id to the free list for future reuse.
func (a *EntityAllocator) Release(id EntityID) {
	a.ReleaseRange(EntityRange{Begin: id, End: id + 1})
}

// ReleaseRange returns an entire range to the free list in one entry.
// Coalescing with adjacent free spans is not attempted: the scheduler
// workload this allocator serves releases in small, scattered bursts
// where coalescing's bookkeeping cost is not worth paying.
func (a *EntityAllocator) ReleaseRange(r EntityRange) {
	if r.Len() <= 0 {
		return
	}
	a.free = append(a.free, freeSpan{begin: r.Begin, end: r.End})
}
