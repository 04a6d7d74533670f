// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package executor

import "code.hybscloud.com/forge/internal/abort"

type depKind int

const (
	depAfter depKind = iota
	depBefore
)

// Dependency is one declared ordering constraint between systems in
// the same pipeline, built with RunAfter/RunBefore and passed to
// AddSystem. A dependency may name a system that is not registered
// yet; it simply has no effect on ordering until that system is added.
type Dependency struct {
	kind depKind
	name string
}

// RunAfter declares that the system being added must run after the
// system named name (which may be registered before or after it).
func RunAfter(name string) Dependency { return Dependency{kind: depAfter, name: name} }

// RunBefore declares that the system being added must run before the
// system named name (which may be registered before or after it).
func RunBefore(name string) Dependency { return Dependency{kind: depBefore, name: name} }

type sysEntry struct {
	name string
	deps []Dependency
}

// resolveOrder computes a full linear order over entries satisfying
// every entry's RunBefore/RunAfter constraints against the other
// entries present, via Kahn's algorithm over the edges those
// constraints imply. Ties (no constraint between two entries) keep
// their relative registration order — the insertion order entries
// arrived in — so that swapping which of two mutually-unconstrained
// systems declares RunAfter<other> first does not reorder them
// relative to a third, unrelated system.
//
// It reports ok=false when no linear order satisfies every
// constraint — spec.md §4.G "if the required position changes, the
// declaration is circular — fatal" reduces, for a full Kahn's-
// algorithm resolution, to "no topological order exists".
func resolveOrder(entries []sysEntry) (order []int, ok bool) {
	n := len(entries)
	indexOf := make(map[string]int, n)
	for i, e := range entries {
		indexOf[e.name] = i
	}

	indegree := make([]int, n)
	adj := make([][]int, n)
	for i, e := range entries {
		for _, d := range e.deps {
			j, known := indexOf[d.name]
			if !known {
				continue
			}
			switch d.kind {
			case depAfter: // j must come before i
				adj[j] = append(adj[j], i)
				indegree[i]++
			case depBefore: // i must come before j
				adj[i] = append(adj[i], j)
				indegree[j]++
			}
		}
	}

	ready := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	order = make([]int, 0, n)
	for len(ready) > 0 {
		// Pick the lowest-index ready node to keep ties in
		// registration order.
		best := 0
		for k := 1; k < len(ready); k++ {
			if ready[k] < ready[best] {
				best = k
			}
		}
		node := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		order = append(order, node)

		for _, next := range adj[node] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	return order, len(order) == n
}

// finalizeOrder recomputes the full system order for entries and
// aborts on a circular dependency, returning the names in resolved
// order.
func finalizeOrder(entries []sysEntry) []string {
	order, ok := resolveOrder(entries)
	abort.If(!ok, "executor: circular system dependencies")
	names := make([]string, len(order))
	for i, idx := range order {
		names[i] = entries[idx].name
	}
	return names
}
