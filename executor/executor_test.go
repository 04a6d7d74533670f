// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor_test

import (
	"sync/atomic"
	"testing"
	"time"

	"code.hybscloud.com/forge/executor"
	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/pipeline"
	"code.hybscloud.com/forge/task"
)

func staticSystem(name string, ran *int64) pipeline.SystemHandle {
	g := graph.New()
	g.Add(task.StaticFunc(func() { atomic.AddInt64(ran, 1) }))
	return pipeline.SystemHandle{Name: name, Tick: func() bool { return true }, Graph: g}
}

func TestAddPipelineAndLookup(t *testing.T) {
	ex := executor.New()
	hash := ex.AddPipeline("physics", 60, pipeline.Free, nil, 0)

	idx, err := ex.GetPipelineIndex(hash)
	if err != nil || idx != 0 {
		t.Fatalf("GetPipelineIndex: got (%d, %v), want (0, nil)", idx, err)
	}

	if _, err := ex.GetPipelineIndex(0xdeadbeef); err != executor.ErrNotFound {
		t.Fatalf("GetPipelineIndex for unknown hash: got %v, want ErrNotFound", err)
	}
}

func TestDuplicatePipelineRegistrationAborts(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected abort on duplicate pipeline registration")
		}
	}()
	ex := executor.New()
	ex.AddPipeline("physics", 60, pipeline.Free, nil, 0)
	ex.AddPipeline("physics", 60, pipeline.Free, nil, 0)
}

func TestAddSystemOrdersByDependencyAndGetSystemIndex(t *testing.T) {
	ex := executor.New()
	var ran int64
	hash := ex.AddPipeline("physics", 60, pipeline.Free, nil, 0)

	ex.AddSystem(hash, staticSystem("render", &ran), executor.RunAfter("physics-step"))
	ex.AddSystem(hash, staticSystem("physics-step", &ran))

	pidx, _ := ex.GetPipelineIndex(hash)
	stepIdx, err := ex.GetSystemIndex(pidx, pipeline.HashName("physics-step"))
	if err != nil {
		t.Fatalf("GetSystemIndex(physics-step): %v", err)
	}
	renderIdx, err := ex.GetSystemIndex(pidx, pipeline.HashName("render"))
	if err != nil {
		t.Fatalf("GetSystemIndex(render): %v", err)
	}
	if stepIdx >= renderIdx {
		t.Fatalf("expected physics-step (%d) before render (%d)", stepIdx, renderIdx)
	}
}

func TestSinglePipelineTicksSystemsRepeatedly(t *testing.T) {
	ex := executor.New()
	var ran int64
	hash := ex.AddPipeline("main", 200, pipeline.Free, nil, 0)
	ex.AddSystem(hash, staticSystem("counter", &ran))

	done := make(chan struct{})
	go func() {
		ex.Run()
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	ex.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}

	if atomic.LoadInt64(&ran) < 5 {
		t.Fatalf("expected the 200Hz pipeline to have ticked several times in 100ms, got %d", ran)
	}
}

func TestEventSentToPipelineIsObservedBeforeSystemsTick(t *testing.T) {
	ex := executor.New()
	var seq int64
	var eventSeq, tickSeq int64
	hash := ex.AddPipeline("main", 500, pipeline.Free, nil, 0)

	g := graph.New()
	g.Add(task.StaticFunc(func() {
		atomic.CompareAndSwapInt64(&tickSeq, 0, atomic.AddInt64(&seq, 1))
	}))
	ex.AddSystem(hash, pipeline.SystemHandle{Name: "s", Tick: func() bool { return true }, Graph: g})

	ex.SendEvent(hash, true, func() {
		atomic.CompareAndSwapInt64(&eventSeq, 0, atomic.AddInt64(&seq, 1))
	})

	done := make(chan struct{})
	go func() {
		ex.Run()
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	ex.Shutdown()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}

	es, ts := atomic.LoadInt64(&eventSeq), atomic.LoadInt64(&tickSeq)
	if es == 0 || ts == 0 {
		t.Fatalf("expected both the event and the system tick to run, got eventSeq=%d tickSeq=%d", es, ts)
	}
	if es >= ts {
		t.Fatalf("expected event (seq %d) to be observed before the first system tick (seq %d)", es, ts)
	}
}
