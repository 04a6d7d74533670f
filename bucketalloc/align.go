// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc

import "unsafe"

// defaultPageSize is the starting page size before the 16x-request
// growth rule takes over.
const defaultPageSize = 4096

func alignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

// freeNode is the intrusive free-block header: a block on a bucket's
// free list stores nothing but a pointer to the next free block of the
// same class, written into the block's own memory.
type freeNode struct {
	next unsafe.Pointer
}

// systemAllocate satisfies an over-MaxSize request with an unretained,
// page-aligned allocation. Go has no raw mmap in this module's
// dependency set, so the fallback is a plain make([]byte) over-sized
// just enough to align the returned interior pointer to MaxSize.
func systemAllocate(size uintptr) unsafe.Pointer {
	buf := make([]byte, size+MaxSize)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := alignUp(base, MaxSize)
	return unsafe.Pointer(aligned)
}

// systemDeallocate releases an unretained system allocation. Go's
// garbage collector reclaims it once the last live pointer drops; there
// is no explicit free to issue.
func systemDeallocate(unsafe.Pointer, uintptr) {}
