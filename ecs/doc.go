// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ecs provides entity identity, the dense and stable component
// table variants, and the generic System type a pipeline registers
// against. Tables are built on package container's sparse set and
// vector types; they carry no threading discipline of their own — the
// single-writer-per-tick rule is an executor/pipeline-level contract,
// not something a table enforces.
package ecs
