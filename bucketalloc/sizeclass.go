// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bucketalloc

import "math/bits"

const (
	// MinSizePow is the log2 of the smallest retained block size.
	MinSizePow = 5
	// MaxSizePow is the log2 of the largest retained block size.
	MaxSizePow = 12
	// MaxStackPow is the log2 of the largest page a bucket page grows to.
	MaxStackPow = 16

	// MinSize is the smallest block size a bucket ever retains.
	MinSize = 1 << MinSizePow
	// MaxSize is the largest block size the bucket machinery handles;
	// requests for more bypass buckets entirely.
	MaxSize = 1 << MaxSizePow
	// MaxStackSize is the largest page size a page grows to.
	MaxStackSize = 1 << MaxStackPow

	// NumBuckets is the number of power-of-two size classes.
	NumBuckets = MaxSizePow - MinSizePow + 1
)

// targetSize returns max(size, alignment), the number of bytes the
// allocator must actually carve to satisfy a request.
func targetSize(size, alignment uintptr) uintptr {
	if alignment > size {
		return alignment
	}
	return size
}

// nextPow2 rounds v up to the next power of two (v itself if already one).
func nextPow2(v uintptr) uintptr {
	if v <= 1 {
		return 1
	}
	return 1 << uint(bits.Len64(uint64(v-1)))
}

// bucketIndexForSize returns the bucket index for a target size already
// known to be <= MaxSize, clamping below MinSize.
func bucketIndexForSize(t uintptr) int {
	if t < MinSize {
		t = MinSize
	}
	p := nextPow2(t)
	return bits.TrailingZeros64(uint64(p)) - MinSizePow
}

// bucketSize returns the block size of the given bucket index.
func bucketSize(index int) uintptr {
	return uintptr(MinSize) << uint(index)
}

// fragmentInto pushes push(size) for each maximal power-of-two chunk
// of length n (n bytes, n >= 0) down to MinSize granularity, from low
// address to high, reporting each chunk's absolute address (base plus
// its offset).
func fragmentInto(base uintptr, n uintptr, push func(addr uintptr, size uintptr)) {
	offset := uintptr(0)
	for n >= MinSize {
		// Largest power-of-two chunk that both fits in the remainder
		// and starts at a naturally aligned address.
		chunk := largestAlignedChunk(base+offset, n)
		push(base+offset, chunk)
		offset += chunk
		n -= chunk
	}
}

func largestAlignedChunk(addr, n uintptr) uintptr {
	maxByRemainder := uintptr(1) << uint(bits.Len64(uint64(n))-1)
	if maxByRemainder > MaxSize {
		maxByRemainder = MaxSize
	}
	for maxByRemainder > MinSize && addr%maxByRemainder != 0 {
		maxByRemainder >>= 1
	}
	if maxByRemainder < MinSize {
		maxByRemainder = MinSize
	}
	return maxByRemainder
}
