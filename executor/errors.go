// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor

import "errors"

// ErrNotFound is returned by GetPipelineIndex/GetSystemIndex when the
// given hash has no matching registration — a lookup miss, not a
// precondition violation, so it is returned rather than aborting
// (spec.md §7 "Lookup miss ... returned as a success/failure union").
var ErrNotFound = errors.New("executor: not found")
