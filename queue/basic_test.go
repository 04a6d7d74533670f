// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/forge/queue"
)

// =============================================================================
// Basic Operations
// =============================================================================

func TestSPSCBasic(t *testing.T) {
	q := queue.NewSPSC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestMPSCBasic(t *testing.T) {
	q := queue.NewMPSC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}

	q.Drain()
	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on drained empty: got %v, want ErrWouldBlock", err)
	}
}

func TestSPMCBasic(t *testing.T) {
	q := queue.NewSPMC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestMPMCBasic(t *testing.T) {
	q := queue.NewMPMC[int](3)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i + 100
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i+100 {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i+100)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}

	q.Drain()
	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on drained empty: got %v, want ErrWouldBlock", err)
	}
}

// =============================================================================
// Compact (Seq) variants
// =============================================================================

func TestMPSCSeqBasic(t *testing.T) {
	q := queue.NewMPSCSeq[int](4)

	if q.Cap() != 4 {
		t.Fatalf("Cap: got %d, want 4", q.Cap())
	}

	for i := range 4 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}
}

func TestSPMCSeqBasic(t *testing.T) {
	q := queue.NewSPMCSeq[int](4)

	for i := range 4 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestMPMCSeqBasic(t *testing.T) {
	q := queue.NewMPMCSeq[int](4)

	for i := range 4 {
		v := i
		if err := q.Enqueue(&v); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}

	v := 999
	if err := q.Enqueue(&v); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	for i := range 4 {
		val, err := q.Dequeue()
		if err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if val != i {
			t.Fatalf("Dequeue(%d): got %d, want %d", i, val, i)
		}
	}

	if _, err := q.Dequeue(); !errors.Is(err, queue.ErrWouldBlock) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

// =============================================================================
// Capacity rounding and panics
// =============================================================================

func TestCapacityRounding(t *testing.T) {
	cases := []struct {
		requested int
		want      int
	}{
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{1000, 1024},
	}
	for _, c := range cases {
		q := queue.NewSPSC[int](c.requested)
		if q.Cap() != c.want {
			t.Errorf("NewSPSC(%d).Cap(): got %d, want %d", c.requested, q.Cap(), c.want)
		}
	}
}

func TestNewPanicsOnSmallCapacity(t *testing.T) {
	constructors := map[string]func(){
		"SPSC":    func() { queue.NewSPSC[int](1) },
		"MPSC":    func() { queue.NewMPSC[int](1) },
		"SPMC":    func() { queue.NewSPMC[int](1) },
		"MPMC":    func() { queue.NewMPMC[int](1) },
		"MPSCSeq": func() { queue.NewMPSCSeq[int](1) },
		"SPMCSeq": func() { queue.NewSPMCSeq[int](1) },
		"MPMCSeq": func() { queue.NewMPMCSeq[int](1) },
	}
	for name, ctor := range constructors {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatalf("%s: expected panic for capacity < 2", name)
				}
			}()
			ctor()
		})
	}
}

// =============================================================================
// FIFO ordering under wraparound
// =============================================================================

func TestMPMCWraparoundOrdering(t *testing.T) {
	q := queue.NewMPMC[int](8)

	// Push the ring around twice to exercise cycle rollover.
	next := 0
	for round := range 3 {
		for i := range 6 {
			v := next
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("round %d enqueue %d: %v", round, i, err)
			}
			next++
		}
		for i := range 6 {
			want := next - 6 + i
			val, err := q.Dequeue()
			if err != nil {
				t.Fatalf("round %d dequeue %d: %v", round, i, err)
			}
			if val != want {
				t.Fatalf("round %d dequeue %d: got %d, want %d", round, i, val, want)
			}
		}
	}
}
