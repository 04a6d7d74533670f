// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clock

import (
	"sync"
	"time"
)

// Fake is a controllable Clock for deterministic timing tests. Sleep
// advances the fake's notion of now immediately rather than blocking,
// so a test can drive an executor's main loop at whatever pace it wants.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake creates a Fake clock starting at the given time.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Sleep advances the fake clock by d without blocking the calling goroutine.
func (f *Fake) Sleep(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Advance moves the fake clock forward by d. Equivalent to Sleep, named
// for call sites that are driving the clock rather than waiting on it.
func (f *Fake) Advance(d time.Duration) {
	f.Sleep(d)
}
