// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock wraps time.Now/time.Sleep behind an interface so the
// executor's timing loop (tick-rate observation, precise sleep) can be
// driven by a fake clock in tests without real wall-clock waits.
package clock

import "time"

// Clock abstracts wall-clock time and sleeping.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// System is the real clock, backed directly by the time package.
type System struct{}

func (System) Now() time.Time         { return time.Now() }
func (System) Sleep(d time.Duration) { time.Sleep(d) }

// Default is the process-wide real clock.
var Default Clock = System{}
