// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ecs

// Table is the common contract both component table variants satisfy.
// A System composes one Table[C] per component type C it owns; the
// concrete variant (Dense or Stable) is chosen per component, not per
// System.
type Table[T any] interface {
	Exists(e EntityID) bool
	Get(e EntityID) *T
	Add(e EntityID, value T) *T
	TryAdd(e EntityID, value T) *T
	Remove(e EntityID)
	TryRemove(e EntityID) bool
	Len() int
}
