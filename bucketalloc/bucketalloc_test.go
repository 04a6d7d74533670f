// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc_test

import (
	"sync"
	"testing"
	"unsafe"

	"code.hybscloud.com/forge/bucketalloc"
)

func TestLocalAlignment(t *testing.T) {
	a := bucketalloc.NewLocal()

	sizes := []uintptr{1, 8, 31, 32, 100, 4096}
	aligns := []uintptr{8, 16, 32, 64}

	for _, size := range sizes {
		for _, align := range aligns {
			if align > size {
				continue
			}
			p := a.Allocate(size, align)
			addr := uintptr(p)
			if addr%align != 0 {
				t.Fatalf("Allocate(%d, %d): addr %#x not aligned", size, align, addr)
			}
			a.Deallocate(p, size, align)
		}
	}
}

func TestLocalPageStabilizes(t *testing.T) {
	a := bucketalloc.NewLocal()

	const size, align = 64, 8
	for round := 0; round < 10_000; round++ {
		p := a.Allocate(size, align)
		a.Deallocate(p, size, align)
	}

	// The same (size, alignment) pair allocated and freed repeatedly
	// must be served entirely from the free list after the first carve,
	// never requiring another page.
	p := a.Allocate(size, align)
	if p == nil {
		t.Fatal("Allocate after stabilization returned nil")
	}
}

func TestLocalOversizeFallsBackToSystem(t *testing.T) {
	a := bucketalloc.NewLocal()
	p := a.Allocate(bucketalloc.MaxSize+1, 8)
	if p == nil {
		t.Fatal("oversize Allocate returned nil")
	}
	a.Deallocate(p, bucketalloc.MaxSize+1, 8)
}

func TestSharedConcurrentNoOverlap(t *testing.T) {
	a := bucketalloc.NewShared()

	const (
		goroutines = 8
		rounds     = 2000
		size       = 64
		align      = 8
	)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		g := g
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				p := a.Allocate(size, align)
				buf := unsafe.Slice((*byte)(p), size)
				pattern := byte(g + 1)
				for j := range buf {
					buf[j] = pattern
				}
				for j := range buf {
					if buf[j] != pattern {
						t.Errorf("goroutine %d: overlapping write detected at byte %d", g, j)
						break
					}
				}
				a.Deallocate(p, size, align)
			}
		}()
	}
	wg.Wait()
}

func TestStaticSharesSingleInstancePerKey(t *testing.T) {
	type key struct{}
	s1 := bucketalloc.NewStatic[key]("shared", "workers", func() bucketalloc.Allocator { return bucketalloc.NewShared() })
	s2 := bucketalloc.NewStatic[key]("shared", "workers", func() bucketalloc.Allocator { return bucketalloc.NewShared() })

	p1 := s1.Allocate(32, 8)
	p2 := s2.Allocate(32, 8)
	if p1 == nil || p2 == nil {
		t.Fatal("Allocate returned nil")
	}
	s1.Deallocate(p1, 32, 8)
	s2.Deallocate(p2, 32, 8)
}

func TestDebugReportsMismatchWithoutRefusing(t *testing.T) {
	d := bucketalloc.NewDebug(bucketalloc.NewLocal())
	p := d.Allocate(32, 8)
	// Mismatched alignment on free: must be reported, not refused.
	d.Deallocate(p, 32, 16)
}

func TestDebugAbortsOnDoubleFree(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on double free")
		}
	}()
	d := bucketalloc.NewDebug(bucketalloc.NewLocal())
	p := d.Allocate(32, 8)
	d.Deallocate(p, 32, 8)
	d.Deallocate(p, 32, 8)
}
