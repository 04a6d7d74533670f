// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

// FlatVector is a contiguous, growable sequence of T. It is the dense
// backing store for ecs.Dense tables: elements may move (index
// reassignment on swap-remove), so it carries no pointer-stability
// guarantee.
type FlatVector[T any] struct {
	data []T
}

// NewFlatVector creates an empty FlatVector with the given initial capacity hint.
func NewFlatVector[T any](capacityHint int) *FlatVector[T] {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &FlatVector[T]{data: make([]T, 0, capacityHint)}
}

// Len returns the number of elements.
func (v *FlatVector[T]) Len() int { return len(v.data) }

// At returns a pointer to the element at i. The pointer is invalidated
// by any subsequent Append, Remove, or Swap call.
func (v *FlatVector[T]) At(i int) *T { return &v.data[i] }

// Append adds value to the end and returns its index.
func (v *FlatVector[T]) Append(value T) int {
	v.data = append(v.data, value)
	return len(v.data) - 1
}

// SwapRemove removes the element at i by overwriting it with the last
// element and shrinking by one, returning the index that moved into i
// (or -1 if i was already last).
func (v *FlatVector[T]) SwapRemove(i int) (movedFrom int) {
	last := len(v.data) - 1
	if i == last {
		var zero T
		v.data[last] = zero
		v.data = v.data[:last]
		return -1
	}
	v.data[i] = v.data[last]
	var zero T
	v.data[last] = zero
	v.data = v.data[:last]
	return last
}

// Swap exchanges the elements at i and j.
func (v *FlatVector[T]) Swap(i, j int) {
	v.data[i], v.data[j] = v.data[j], v.data[i]
}

// Truncate shrinks the vector to n elements, zeroing the dropped tail
// so it does not keep references alive.
func (v *FlatVector[T]) Truncate(n int) {
	var zero T
	for i := n; i < len(v.data); i++ {
		v.data[i] = zero
	}
	v.data = v.data[:n]
}

// Slice returns the backing slice. Callers must not retain it across
// further mutation of the vector.
func (v *FlatVector[T]) Slice() []T { return v.data }
