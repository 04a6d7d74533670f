// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"
	"time"
)

func TestSleepEstimateStartsAtOneMillisecond(t *testing.T) {
	ex := &Executor{}
	if got := ex.sleepEstimate(); got != time.Millisecond {
		t.Fatalf("initial sleepEstimate: got %v, want %v", got, time.Millisecond)
	}
}

func TestObserveSleepConvergesTowardMean(t *testing.T) {
	ex := &Executor{}
	for i := 0; i < 100; i++ {
		ex.observeSleep(2 * time.Millisecond)
	}
	if got := time.Duration(ex.sleepMean); got != 2*time.Millisecond {
		t.Fatalf("sleepMean after constant samples: got %v, want %v", got, 2*time.Millisecond)
	}
	// Constant samples carry zero variance, so the estimate should sit
	// right at the mean.
	if est := ex.sleepEstimate(); est != 2*time.Millisecond {
		t.Fatalf("sleepEstimate after constant samples: got %v, want %v", est, 2*time.Millisecond)
	}
}
