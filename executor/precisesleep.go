// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"
	"time"

	"code.hybscloud.com/spin"
)

// preciseSleep blocks for approximately remaining, combining a
// 1ms-increment sleep loop — refined by a running mean/stddev of
// observed 1ms-sleep durations (Welford's algorithm) — with a final
// spin-yield for the last sliver, where OS sleep granularity would
// otherwise overshoot the deadline (spec.md §4.G "Sleep").
func (ex *Executor) preciseSleep(remaining time.Duration) {
	deadline := ex.clk.Now().Add(remaining)

	for {
		remaining = deadline.Sub(ex.clk.Now())
		if remaining <= ex.sleepEstimate() {
			break
		}
		before := ex.clk.Now()
		ex.clk.Sleep(time.Millisecond)
		actual := ex.clk.Now().Sub(before)
		ex.observeSleep(actual)
	}

	sw := spin.Wait{}
	for ex.clk.Now().Before(deadline) {
		sw.Once()
	}
}

// sleepEstimate returns mean + stddev of observed 1ms-sleep durations,
// the threshold below which the loop stops sleeping and spins instead.
func (ex *Executor) sleepEstimate() time.Duration {
	if ex.sleepN == 0 {
		return time.Millisecond
	}
	variance := ex.sleepM2 / float64(ex.sleepN)
	stddev := math.Sqrt(variance)
	return time.Duration(ex.sleepMean + stddev)
}

// observeSleep folds one observed sleep duration into the running
// mean/variance via Welford's online algorithm.
func (ex *Executor) observeSleep(actual time.Duration) {
	ex.sleepN++
	delta := float64(actual) - ex.sleepMean
	ex.sleepMean += delta / float64(ex.sleepN)
	delta2 := float64(actual) - ex.sleepMean
	ex.sleepM2 += delta * delta2
}
