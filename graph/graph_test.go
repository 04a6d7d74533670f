// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package graph_test

import (
	"testing"
	"time"

	"code.hybscloud.com/forge/graph"
	"code.hybscloud.com/forge/task"
)

func TestPrepareToScheduleComputesRoots(t *testing.T) {
	g := graph.New()
	a := g.Add(task.StaticFunc(func() {}))
	b := g.Add(task.StaticFunc(func() {}))
	c := g.Add(task.StaticFunc(func() {}))
	a.Before(c)
	b.Before(c)

	roots := g.PrepareToSchedule()
	if len(roots) != 2 {
		t.Fatalf("roots: got %d, want 2", len(roots))
	}
	for _, r := range roots {
		if r == c {
			t.Fatal("c has predecessors and should not be a root")
		}
	}
	if !g.Running() {
		t.Fatal("graph should be running after PrepareToSchedule")
	}
}

func TestJoinTasksStopsRunning(t *testing.T) {
	g := graph.New()
	g.Add(task.StaticFunc(func() {}))
	g.Add(task.StaticFunc(func() {}))

	g.PrepareToSchedule()
	g.JoinTasks(1)
	if !g.Running() {
		t.Fatal("graph stopped running before all tasks joined")
	}
	g.JoinTasks(1)
	if g.Running() {
		t.Fatal("graph still running after all tasks joined")
	}
}

func TestMutationWhileRunningAborts(t *testing.T) {
	g := graph.New()
	g.Add(task.StaticFunc(func() {}))
	g.PrepareToSchedule()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic mutating a running graph")
		}
	}()
	g.Add(task.StaticFunc(func() {}))
}

func TestWaitSleepReturnsAfterJoin(t *testing.T) {
	g := graph.New()
	g.Add(task.StaticFunc(func() {}))
	g.PrepareToSchedule()

	done := make(chan struct{})
	go func() {
		g.WaitSleep(time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	g.JoinTasks(1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitSleep did not return after graph completed")
	}
}

func TestEmptyGraphPrepareToScheduleIsNoOp(t *testing.T) {
	g := graph.New()
	roots := g.PrepareToSchedule()
	if len(roots) != 0 {
		t.Fatalf("roots on empty graph: got %d, want 0", len(roots))
	}
	if g.Running() {
		t.Fatal("empty graph should not be running")
	}
}
