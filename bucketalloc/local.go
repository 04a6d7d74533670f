// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc

import "unsafe"

// Local is an unsynchronized bucketed stack allocator for single-owner
// use — typically one per scheduler worker. It must not be shared
// across goroutines without external synchronization.
type Local struct {
	buckets  [NumBuckets]unsafe.Pointer
	current  *localPage
	full     []*localPage
	pageSize uintptr
}

type localPage struct {
	buf []byte
	off uintptr
}

// NewLocal creates an empty Local allocator with no pages yet carved.
func NewLocal() *Local {
	return &Local{}
}

// Allocate returns a block of at least max(size, alignment) bytes
// aligned to alignment. alignment must be a power of two.
func (a *Local) Allocate(size, alignment uintptr) unsafe.Pointer {
	t := targetSize(size, alignment)
	if t > MaxSize {
		return systemAllocate(t)
	}

	idx := bucketIndexForSize(t)
	if head := a.buckets[idx]; head != nil {
		node := (*freeNode)(head)
		a.buckets[idx] = node.next
		return head
	}
	return a.carve(idx)
}

// Deallocate returns the block to its size class's free list. size and
// alignment must match the values passed to the matching Allocate.
func (a *Local) Deallocate(p unsafe.Pointer, size, alignment uintptr) {
	t := targetSize(size, alignment)
	if t > MaxSize {
		systemDeallocate(p, t)
		return
	}

	idx := bucketIndexForSize(t)
	node := (*freeNode)(p)
	node.next = a.buckets[idx]
	a.buckets[idx] = p
}

func (a *Local) pushFree(addr, size uintptr) {
	idx := bucketIndexForSize(size)
	node := (*freeNode)(unsafe.Pointer(addr))
	node.next = a.buckets[idx]
	a.buckets[idx] = unsafe.Pointer(addr)
}

func (a *Local) carve(idx int) unsafe.Pointer {
	bsize := bucketSize(idx)
	if a.current == nil {
		a.newPage(bsize)
	}
	for {
		base := uintptr(unsafe.Pointer(&a.current.buf[0]))
		cur := base + a.current.off
		aligned := alignUp(cur, bsize)
		end := base + uintptr(len(a.current.buf))

		if aligned+bsize <= end {
			if pad := aligned - cur; pad > 0 {
				fragmentInto(cur, pad, a.pushFree)
			}
			a.current.off = aligned - base + bsize
			return unsafe.Pointer(aligned)
		}

		if tail := end - cur; tail > 0 {
			fragmentInto(cur, tail, a.pushFree)
		}
		a.full = append(a.full, a.current)
		a.newPage(bsize)
	}
}

func (a *Local) newPage(minBlock uintptr) {
	size := 16 * minBlock
	if size < defaultPageSize {
		size = defaultPageSize
	}
	if size > MaxStackSize {
		size = MaxStackSize
	}
	if a.pageSize >= MaxStackSize {
		if doubled := a.pageSize * 2; doubled > size {
			if doubled > MaxStackSize {
				doubled = MaxStackSize
			}
			size = doubled
		}
	}
	a.pageSize = size
	a.current = &localPage{buf: make([]byte, size)}
}
