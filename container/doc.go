// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package container is the generic container toolkit ecs builds on: a
// paged sparse set mapping entity ids to dense indices, a flat vector
// for the dense/swap-remove table variant, and a paged vector for the
// stable/tombstoned table variant.
//
// None of these types are entity- or component-aware. They provide the
// usual "mapping K→V" and "ordered sequence of T" operations; ecs
// supplies the domain semantics (entities, tombstones, packing).
package container
