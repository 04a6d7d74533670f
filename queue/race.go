// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "code.hybscloud.com/lfq"

// RaceEnabled reports whether the race detector is active. Used by tests
// to skip concurrent tests for generic [T] queue variants, which trigger
// false positives because the race detector's happens-before tracking
// cannot see the acquire/release orderings these algorithms rely on.
//
// Delegates to [lfq.RaceEnabled] rather than reimplementing the
// //go:build race / !race pair: lfq already resolves that distinction.
const RaceEnabled = lfq.RaceEnabled
