// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package executor drives a set of pipelines at independent tick
// rates. Each pipeline's begin-task-plus-systems list is built once
// into a task graph; the executor's main loop observes elapsed time
// per pipeline, hands due graphs to the scheduler, pumps its own
// control queue, and sleeps precisely until the next pipeline is due.
//
// Executor is a process-wide singleton by convention (Default), with
// New available for test isolation — the spec's "exactly one instance
// permitted" global-state note is relaxed here so tests can run
// several executors concurrently without interfering; see DESIGN.md.
package executor
