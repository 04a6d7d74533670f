// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

import (
	"runtime"
	"time"

	"code.hybscloud.com/forge/internal/abort"
	"code.hybscloud.com/forge/pipeline"
)

// Base is embedded by every generic System arity and supplies the
// parts that do not depend on the component type list: entity
// lifecycle, the owning pipeline reference, and same/cross-pipeline
// interaction.
//
// Go generics cannot deduce a pipeline tag from a runtime component
// table value the way the template original deduces DestPipeline from
// a system argument (spec.md §4.F); this is the Open Question
// resolution recorded in DESIGN.md: Interact takes the destination
// *pipeline.Pipeline explicitly, and InteractSame is the same-pipeline
// fast path that calls cb immediately instead of enqueuing an event.
type Base struct {
	pipeline *pipeline.Pipeline
	entities *EntityAllocator
}

// NewBase constructs the shared System state, bound to p at
// construction time per spec.md §4.F.
func NewBase(p *pipeline.Pipeline) Base {
	return Base{pipeline: p, entities: NewEntityAllocator()}
}

// Pipeline returns the pipeline this system is bound to.
func (b *Base) Pipeline() *pipeline.Pipeline { return b.pipeline }

// TickRate returns the owning pipeline's current tick period.
func (b *Base) TickRate() time.Duration { return b.pipeline.TickRate() }

// MintEntity returns a fresh or reused entity id from this system's
// own allocator.
func (b *Base) MintEntity() EntityID { return b.entities.Mint() }

// MintEntityRange returns n contiguous fresh ids.
func (b *Base) MintEntityRange(n int) EntityRange { return b.entities.MintRange(n) }

// ReleaseEntity returns id to this system's free list.
func (b *Base) ReleaseEntity(id EntityID) { b.entities.Release(id) }

// ReleaseEntityRange returns an entire range to the free list.
func (b *Base) ReleaseEntityRange(r EntityRange) { b.entities.ReleaseRange(r) }

// InteractSame invokes cb immediately: the destination is this
// system's own pipeline, so there is no cross-thread hop to make.
func (b *Base) InteractSame(cb func()) { cb() }

// Interact enqueues cb as a pipeline.Event on dest's event queue, to
// run during dest's next begin-task. retryOnFailure controls behavior
// when the queue is full: true yields and retries forever, false
// aborts immediately (spec.md §4.G "Events").
func (b *Base) Interact(dest *pipeline.Pipeline, retryOnFailure bool, cb func()) {
	ev := pipeline.Event(cb)
	if err := dest.Events.Enqueue(&ev); err == nil {
		return
	}
	if !retryOnFailure {
		abort.Abort("ecs: event queue for pipeline %q full and RetryOnFailure=false", dest.Name)
	}
	for {
		runtime.Gosched()
		if err := dest.Events.Enqueue(&ev); err == nil {
			return
		}
	}
}
