// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipeline holds the named, period-driven container an
// executor ticks: a tick rate, a time-binding mode, an event queue
// fed by other pipelines' systems, an ordered system list, and the
// cached task graph built from that list. Package executor owns and
// drives Pipeline values; package ecs's System type is constructed
// against one.
package pipeline
