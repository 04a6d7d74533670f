// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

// sparsePageSize is the number of entries per sparse page. Entity ids
// are split into a page index and an in-page offset so that sparse
// entity id spaces (ids minted far apart) don't force one giant array.
const sparsePageSize = 4096

const noIndex = ^uint32(0)

// SparseSet maps a dense uint32 key (an entity id) to a dense array
// index, in paged blocks allocated lazily on first use of a page.
//
// SparseSet is not safe for concurrent use; callers serialize access
// the same way ecs tables do (single writer per tick).
type SparseSet struct {
	pages [][]uint32
}

// NewSparseSet creates an empty sparse set.
func NewSparseSet() *SparseSet {
	return &SparseSet{}
}

func (s *SparseSet) pageOf(key uint32) (page, offset uint32) {
	return key / sparsePageSize, key % sparsePageSize
}

func (s *SparseSet) ensurePage(page uint32) []uint32 {
	for uint32(len(s.pages)) <= page {
		s.pages = append(s.pages, nil)
	}
	if s.pages[page] == nil {
		p := make([]uint32, sparsePageSize)
		for i := range p {
			p[i] = noIndex
		}
		s.pages[page] = p
	}
	return s.pages[page]
}

// Has reports whether key has a mapped dense index.
func (s *SparseSet) Has(key uint32) bool {
	page, offset := s.pageOf(key)
	if page >= uint32(len(s.pages)) || s.pages[page] == nil {
		return false
	}
	return s.pages[page][offset] != noIndex
}

// IndexOf returns the dense index mapped to key, if any.
func (s *SparseSet) IndexOf(key uint32) (uint32, bool) {
	page, offset := s.pageOf(key)
	if page >= uint32(len(s.pages)) || s.pages[page] == nil {
		return 0, false
	}
	idx := s.pages[page][offset]
	return idx, idx != noIndex
}

// Set maps key to the given dense index, allocating a page on demand.
func (s *SparseSet) Set(key, index uint32) {
	page, offset := s.pageOf(key)
	p := s.ensurePage(page)
	p[offset] = index
}

// Remove clears any mapping for key.
func (s *SparseSet) Remove(key uint32) {
	page, offset := s.pageOf(key)
	if page >= uint32(len(s.pages)) || s.pages[page] == nil {
		return
	}
	s.pages[page][offset] = noIndex
}

// Clear drops every page, releasing their backing arrays.
func (s *SparseSet) Clear() {
	s.pages = nil
}
