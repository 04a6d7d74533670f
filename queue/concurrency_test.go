// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package queue_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"code.hybscloud.com/forge/queue"
)

// These tests push concurrent producers/consumers hard enough that the race
// detector's happens-before tracking, which cannot see the acquire/release
// orderings the algorithms rely on, would otherwise flag false positives.
// See [queue.RaceEnabled].

func TestMPMCConcurrentProducersConsumers(t *testing.T) {
	const (
		producers  = 4
		consumers  = 4
		perProduce = 20_000
	)
	q := queue.NewMPMC[int](256)

	var produced, consumed atomic.Int64
	var wg sync.WaitGroup

	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProduce; i++ {
				v := i
				for q.Enqueue(&v) != nil {
					// backpressure: retry
				}
				produced.Add(1)
			}
		}()
	}

	done := make(chan struct{})
	wg.Add(consumers)
	for c := 0; c < consumers; c++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := q.Dequeue(); err == nil {
					consumed.Add(1)
				}
			}
		}()
	}

	go func() {
		for produced.Load() < int64(producers*perProduce) || consumed.Load() < produced.Load() {
		}
		close(done)
	}()

	wg.Wait()

	if got, want := consumed.Load(), int64(producers*perProduce); got != want {
		t.Fatalf("consumed: got %d, want %d", got, want)
	}
}

func TestSPMCConcurrentConsumers(t *testing.T) {
	const total = 50_000
	q := queue.NewSPMC[int](1024)

	var consumed atomic.Int64
	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(4)
	for c := 0; c < 4; c++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				if _, err := q.Dequeue(); err == nil {
					consumed.Add(1)
				}
			}
		}()
	}

	for i := 0; i < total; i++ {
		v := i
		for q.Enqueue(&v) != nil {
		}
	}

	for consumed.Load() < total {
	}
	close(done)
	wg.Wait()

	if got := consumed.Load(); got != total {
		t.Fatalf("consumed: got %d, want %d", got, total)
	}
}

func TestMPSCConcurrentProducers(t *testing.T) {
	const (
		producers  = 8
		perProduce = 10_000
	)
	q := queue.NewMPSC[int](1024)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perProduce; i++ {
				v := i
				for q.Enqueue(&v) != nil {
				}
			}
		}()
	}

	consumed := 0
	for consumed < producers*perProduce {
		if _, err := q.Dequeue(); err == nil {
			consumed++
		}
	}
	wg.Wait()

	if consumed != producers*perProduce {
		t.Fatalf("consumed: got %d, want %d", consumed, producers*perProduce)
	}
}
