// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package resource is an embedded, read-only resource system.
// Packages register a named environment's embed.FS at var-init time
// via Register, accumulating "registration intents" in a global list
// (REDESIGN FLAGS "deferred registration via global static
// initialisers ... registration intents accumulated in a global list,
// replayed by the manager's constructor") since Go has no equivalent
// of a pre-main static initializer that could reach into a
// not-yet-constructed Manager. NewManager drains that list.
//
// Resources are addressed by a path of the form ":/<environment>/<path>".
package resource
