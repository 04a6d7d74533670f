// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc

import (
	"sync"
	"unsafe"
)

// Allocator is the common interface Local, Shared, and Debug satisfy.
type Allocator interface {
	Allocate(size, alignment uintptr) unsafe.Pointer
	Deallocate(p unsafe.Pointer, size, alignment uintptr)
}

type staticKey struct {
	flavour string
	name    string
}

var (
	staticMu        sync.Mutex
	staticInstances = map[staticKey]*staticEntry{}
)

type staticEntry struct {
	alloc   Allocator
	pending int
}

// Static is a process-wide allocator singleton keyed by (flavour,
// name): the first Allocate for a given key lazily constructs the
// underlying allocator via newFn, and the instance is disposed once
// pending deallocations drop to zero after the last Allocate.
type Static[K comparable] struct {
	flavour string
	name    string
	newFn   func() Allocator
}

// NewStatic creates a Static wrapper around newFn, keyed by flavour and name.
func NewStatic[K comparable](flavour, name string, newFn func() Allocator) *Static[K] {
	return &Static[K]{flavour: flavour, name: name, newFn: newFn}
}

func (s *Static[K]) key() staticKey { return staticKey{s.flavour, s.name} }

func (s *Static[K]) entry() *staticEntry {
	staticMu.Lock()
	defer staticMu.Unlock()
	k := s.key()
	e, ok := staticInstances[k]
	if !ok {
		e = &staticEntry{alloc: s.newFn()}
		staticInstances[k] = e
	}
	e.pending++
	return e
}

// Allocate lazily constructs the singleton allocator on first use and
// delegates to it.
func (s *Static[K]) Allocate(size, alignment uintptr) unsafe.Pointer {
	e := s.entry()
	return e.alloc.Allocate(size, alignment)
}

// Deallocate delegates to the singleton allocator and, once pending
// uses drop to zero, disposes the instance so a later Allocate starts fresh.
func (s *Static[K]) Deallocate(p unsafe.Pointer, size, alignment uintptr) {
	staticMu.Lock()
	k := s.key()
	e := staticInstances[k]
	if e == nil {
		staticMu.Unlock()
		return
	}
	e.alloc.Deallocate(p, size, alignment)
	e.pending--
	if e.pending <= 0 {
		delete(staticInstances, k)
	}
	staticMu.Unlock()
}
