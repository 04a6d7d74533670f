// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import "hash/fnv"

// HashName computes the non-cryptographic hash pipelines and their
// tags are addressed by. FNV-1a is used rather than hash/maphash
// because pipeline hashes are compared across independent Executor
// instances in tests (a seeded maphash would differ per process),
// and no pack library supplies a non-cryptographic string hash.
func HashName(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}
