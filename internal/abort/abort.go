// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package abort is the single primitive forge uses to terminate on
// precondition violations: mutating a running graph, a switch task
// returning an out-of-range index, circular system dependencies,
// duplicate pipeline registration, and similar logic errors.
//
// There is no recovery path around these conditions. A corrupted
// scheduler or graph state is not something callers can usefully
// continue from, so abort writes a message to stderr and panics rather
// than returning an error up a call stack that was never designed to
// carry one.
package abort

import (
	"fmt"
	"os"
)

// Abort writes a formatted message to stderr and panics.
//
// Callers never expect Abort to return; its signature has no result
// precisely so call sites read as terminal.
func Abort(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, "forge: fatal:", msg)
	panic(msg)
}

// If calls Abort with the given message when cond is true.
func If(cond bool, format string, args ...any) {
	if cond {
		Abort(format, args...)
	}
}
