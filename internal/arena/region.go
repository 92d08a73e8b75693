package arena

import (
	"fmt"

	"fortio.org/safecast"
	"github.com/bits-and-blooms/bitset"
)

// region is one fixed-capacity segment of the chain.
type region struct {
	index  uint64
	base   Ptr
	bitmap *bitset.BitSet
	starts *bitset.BitSet // first block of every allocation ever made
	data   []byte
	cursor uint64
}

func (a *Arena) newRegion(index uint64) *region {
	size, err := safecast.Conv[int](a.capacity)
	if err != nil {
		panic(fmt.Errorf("arena region size overflow: %w", err))
	}
	nbits, err := safecast.Conv[uint](a.blocks)
	if err != nil {
		panic(fmt.Errorf("arena bitmap size overflow: %w", err))
	}
	return &region{
		index:  index,
		base:   Ptr(a.space<<48 | index<<32),
		bitmap: bitset.New(nbits),
		starts: bitset.New(nbits),
		data:   make([]byte, size),
	}
}

func (r *region) ptr(off uint64) Ptr {
	return r.base + Ptr(off)
}

// contains reports whether p falls inside the written part of the region
// and returns its data offset.
func (r *region) contains(p Ptr) (uint64, bool) {
	if p < r.base {
		return 0, false
	}
	off := uint64(p - r.base)
	if off < headerSize || off >= r.cursor {
		return 0, false
	}
	return off, true
}

func (r *region) mark(first, blocks uint64, occupied bool) {
	for b := first; b < first+blocks; b++ {
		if occupied {
			r.bitmap.Set(uint(b))
		} else {
			r.bitmap.Clear(uint(b))
		}
	}
}

func (r *region) used() uint64 {
	return uint64(r.bitmap.Count())
}
