// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc

import (
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// addrBits is the number of low bits of a packed bucket head that hold
// the free block's address; the remaining high bits hold a tag counter
// that changes on every push and pop, giving the Treiber stack ABA
// safety the same way the queue package's cycle numbers do.
const addrBits = 48
const addrMask = (uint64(1) << addrBits) - 1

func packTagged(addr uintptr, tag uint16) uint64 {
	return uint64(tag)<<addrBits | (uint64(addr) & addrMask)
}

func unpackTagged(v uint64) (addr uintptr, tag uint16) {
	return uintptr(v & addrMask), uint16(v >> addrBits)
}

// Shared is a thread-safe bucketed stack allocator. Bucket free lists
// are Treiber stacks guarded by a tagged counter packed into a single
// atomix.Uint64; the current page's cursor advances with fetch-add and
// rollover to a new page is CAS-guarded so only one roller installs it.
type Shared struct {
	buckets [NumBuckets]atomix.Uint64
	page    atomic.Pointer[sharedPage]
}

type sharedPage struct {
	buf    []byte
	base   uintptr
	size   uintptr
	cursor atomix.Uintptr
}

// NewShared creates an empty Shared allocator with no pages yet carved.
func NewShared() *Shared {
	return &Shared{}
}

// Allocate returns a block of at least max(size, alignment) bytes
// aligned to alignment. alignment must be a power of two.
func (a *Shared) Allocate(size, alignment uintptr) unsafe.Pointer {
	t := targetSize(size, alignment)
	if t > MaxSize {
		return systemAllocate(t)
	}

	idx := bucketIndexForSize(t)
	if p, ok := a.popBucket(idx); ok {
		return p
	}
	return a.carve(idx)
}

// Deallocate returns the block to its size class's free list. size and
// alignment must match the values passed to the matching Allocate.
func (a *Shared) Deallocate(p unsafe.Pointer, size, alignment uintptr) {
	t := targetSize(size, alignment)
	if t > MaxSize {
		systemDeallocate(p, t)
		return
	}
	idx := bucketIndexForSize(t)
	a.pushBucket(idx, uintptr(p))
}

func (a *Shared) popBucket(idx int) (unsafe.Pointer, bool) {
	b := &a.buckets[idx]
	sw := spin.Wait{}
	for {
		old := b.LoadAcquire()
		addr, tag := unpackTagged(old)
		if addr == 0 {
			return nil, false
		}
		next := (*freeNode)(unsafe.Pointer(addr)).next
		newVal := packTagged(uintptr(next), tag+1)
		if b.CompareAndSwapAcqRel(old, newVal) {
			return unsafe.Pointer(addr), true
		}
		sw.Once()
	}
}

func (a *Shared) pushFree(addr, size uintptr) {
	idx := bucketIndexForSize(size)
	a.pushBucket(idx, addr)
}

func (a *Shared) pushBucket(idx int, addr uintptr) {
	b := &a.buckets[idx]
	sw := spin.Wait{}
	for {
		old := b.LoadAcquire()
		oldAddr, tag := unpackTagged(old)
		node := (*freeNode)(unsafe.Pointer(addr))
		node.next = unsafe.Pointer(oldAddr)
		newVal := packTagged(addr, tag+1)
		if b.CompareAndSwapAcqRel(old, newVal) {
			return
		}
		sw.Once()
	}
}

func (a *Shared) carve(idx int) unsafe.Pointer {
	bsize := bucketSize(idx)
	for {
		page := a.page.Load()
		if page == nil {
			a.rollPage(nil, bsize)
			continue
		}

		rolled := false
		for {
			cur := page.cursor.LoadAcquire()
			aligned := alignUp(page.base+uintptr(cur), bsize) - page.base
			need := aligned + bsize

			if need > page.size {
				if page.cursor.CompareAndSwapAcqRel(cur, uintptr(page.size)) {
					if tail := page.size - uintptr(cur); tail > 0 {
						fragmentInto(page.base+uintptr(cur), tail, a.pushFree)
					}
				}
				rolled = true
				break
			}

			if page.cursor.CompareAndSwapAcqRel(cur, need) {
				if pad := aligned - uintptr(cur); pad > 0 {
					fragmentInto(page.base+uintptr(cur), pad, a.pushFree)
				}
				return unsafe.Pointer(page.base + aligned)
			}
		}
		if rolled {
			a.rollPage(page, bsize)
		}
	}
}

func (a *Shared) rollPage(old *sharedPage, minBlock uintptr) {
	if a.page.Load() != old {
		return
	}

	size := 16 * minBlock
	if size < defaultPageSize {
		size = defaultPageSize
	}
	if size > MaxStackSize {
		size = MaxStackSize
	}
	if old != nil && old.size >= MaxStackSize {
		if doubled := old.size * 2; doubled > size {
			if doubled > MaxStackSize {
				doubled = MaxStackSize
			}
			size = doubled
		}
	}

	buf := make([]byte, size+MaxSize)
	base := alignUp(uintptr(unsafe.Pointer(&buf[0])), MaxSize)
	next := &sharedPage{buf: buf, base: base, size: size}
	a.page.CompareAndSwap(old, next)
}
