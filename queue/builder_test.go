// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"testing"

	"code.hybscloud.com/forge/queue"
)

func TestBuildSelectsAlgorithm(t *testing.T) {
	cases := []struct {
		name string
		b    *queue.Builder
	}{
		{"spsc", queue.New(4).SingleProducer().SingleConsumer()},
		{"spmc", queue.New(4).SingleProducer()},
		{"spmc-compact", queue.New(4).SingleProducer().Compact()},
		{"mpsc", queue.New(4).SingleConsumer()},
		{"mpsc-compact", queue.New(4).SingleConsumer().Compact()},
		{"mpmc", queue.New(4)},
		{"mpmc-compact", queue.New(4).Compact()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := queue.Build[int](c.b)
			if q == nil {
				t.Fatal("Build returned nil")
			}
			if q.Cap() != 4 {
				t.Fatalf("Cap: got %d, want 4", q.Cap())
			}
			v := 7
			if err := q.Enqueue(&v); err != nil {
				t.Fatalf("Enqueue: %v", err)
			}
			if got, err := q.Dequeue(); err != nil || got != 7 {
				t.Fatalf("Dequeue: got (%d, %v), want (7, nil)", got, err)
			}
		})
	}
}

func TestBuildTypedConstructorsMatchConstraints(t *testing.T) {
	_ = queue.BuildSPSC[int](queue.New(4).SingleProducer().SingleConsumer())
	_ = queue.BuildMPSC[int](queue.New(4).SingleConsumer())
	_ = queue.BuildSPMC[int](queue.New(4).SingleProducer())
	_ = queue.BuildMPMC[int](queue.New(4))
}

func TestBuildMismatchedConstraintsPanic(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"SPSC without SingleConsumer", func() { queue.BuildSPSC[int](queue.New(4).SingleProducer()) }},
		{"MPSC with SingleProducer", func() { queue.BuildMPSC[int](queue.New(4).SingleProducer().SingleConsumer()) }},
		{"SPMC with SingleConsumer", func() { queue.BuildSPMC[int](queue.New(4).SingleProducer().SingleConsumer()) }},
		{"MPMC with constraints", func() { queue.BuildMPMC[int](queue.New(4).SingleProducer()) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatalf("%s: expected panic", c.name)
				}
			}()
			c.fn()
		})
	}
}

func TestNewPanicsOnSmallBuilderCapacity(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for capacity < 2")
		}
	}()
	queue.New(1)
}
