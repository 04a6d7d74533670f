// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iofile is a small file-access facade over both the host
// filesystem and an embedded resource.Manager, named iofile rather
// than file or io to avoid shadowing the stdlib packages it wraps.
//
// A path starting with resource.Prefix (":/") binds to the process's
// resource.Manager and is always read-only; every other path binds to
// the host filesystem via os. Every operation returns a bool, a size,
// or an error — none of them panic, matching the bool/retry and
// size/error conventions the rest of forge uses for recoverable
// conditions.
package iofile
