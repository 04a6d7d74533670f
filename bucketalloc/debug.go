// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"code.hybscloud.com/forge/internal/abort"
)

type allocRecord struct {
	size, alignment uintptr
}

// Debug wraps an Allocator to validate allocate/deallocate pairing: it
// tracks every live allocation's (size, alignment) and reports a
// mismatched pair on Deallocate without refusing it, and aborts on a
// double free (the block address is not currently live).
type Debug struct {
	inner Allocator

	mu   sync.Mutex
	live map[uintptr]allocRecord
}

// NewDebug wraps inner with allocation bookkeeping.
func NewDebug(inner Allocator) *Debug {
	return &Debug{inner: inner, live: map[uintptr]allocRecord{}}
}

func (d *Debug) Allocate(size, alignment uintptr) unsafe.Pointer {
	p := d.inner.Allocate(size, alignment)
	d.mu.Lock()
	d.live[uintptr(p)] = allocRecord{size, alignment}
	d.mu.Unlock()
	return p
}

func (d *Debug) Deallocate(p unsafe.Pointer, size, alignment uintptr) {
	addr := uintptr(p)

	d.mu.Lock()
	rec, ok := d.live[addr]
	if ok {
		delete(d.live, addr)
	}
	d.mu.Unlock()

	if !ok {
		abort.Abort("bucketalloc: double free or foreign pointer at %#x", addr)
	}
	if rec.size != size || rec.alignment != alignment {
		fmt.Fprintf(os.Stderr, "bucketalloc: mismatched deallocate at %#x: allocated (size=%d align=%d), freed (size=%d align=%d)\n",
			addr, rec.size, rec.alignment, size, alignment)
	}

	d.inner.Deallocate(p, size, alignment)
}
