package arena

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"sync/atomic"

	"fortio.org/safecast"
)

const (
	// WordSize is the machine word the allocator is built around: the size
	// header width and the smallest aligned block.
	WordSize = 8

	headerSize = WordSize

	// MaxCapacity bounds a region so that offsets fit the low half of a Ptr.
	MaxCapacity = 1 << 31

	// MaxRegionLimit bounds the region chain so that region indices fit a Ptr.
	MaxRegionLimit = 1 << 16
)

// Ptr is an arena address. It encodes the owning arena space, the region
// index and the byte offset inside the region's data segment:
//
//	bits 63..48  space (unique per arena)
//	bits 47..32  region index
//	bits 31..0   offset
//
// A valid Ptr always points past a size header, so the zero value never
// addresses an allocation.
type Ptr uint64

// Nil is the zero Ptr.
const Nil Ptr = 0

// IsNil reports whether p is the zero Ptr.
func (p Ptr) IsNil() bool { return p == Nil }

func (p Ptr) String() string {
	return fmt.Sprintf("%#x", uint64(p))
}

var spaces atomic.Uint32

// Arena is a chain of same-shaped regions. See the package documentation.
type Arena struct {
	aligned    bool
	space      uint64
	capacity   uint64
	blockSize  uint64
	blocks     uint64
	maxRegions uint64
	regions    []*region
}

// New creates a packed arena (block size of one byte). capacity is rounded
// up to the next power of two.
func New(capacity, maxRegions uint64) (*Arena, error) {
	return newArena(false, capacity, 1, maxRegions)
}

// NewAligned creates an arena whose allocations are made of whole blocks.
// capacity and blockSize are rounded up to the next power of two; blockSize
// must be at least WordSize.
func NewAligned(capacity, blockSize, maxRegions uint64) (*Arena, error) {
	if blockSize < WordSize {
		return nil, ErrBlockSize
	}
	return newArena(true, capacity, blockSize, maxRegions)
}

func newArena(aligned bool, capacity, blockSize, maxRegions uint64) (*Arena, error) {
	if capacity == 0 {
		return nil, ErrZeroCapacity
	}
	capacity = nextPow2(capacity)
	blockSize = nextPow2(blockSize)
	if blockSize == 0 {
		return nil, ErrBlockSize
	}
	if capacity > MaxCapacity || capacity < blockSize {
		return nil, ErrCapacity
	}
	if maxRegions == 0 {
		maxRegions = 1
	}
	if maxRegions > MaxRegionLimit {
		maxRegions = MaxRegionLimit
	}
	a := &Arena{
		aligned:    aligned,
		space:      uint64(spaces.Add(1) & 0xFFFF),
		capacity:   capacity,
		blockSize:  blockSize,
		blocks:     capacity / blockSize,
		maxRegions: maxRegions,
	}
	a.regions = []*region{a.newRegion(0)}
	return a, nil
}

// Alloc reserves size bytes and returns a pointer past the size header.
// A full tail region is followed by a fresh one while the chain is below
// MaxRegions.
func (a *Arena) Alloc(size uint64) (Ptr, error) {
	r, off, err := a.alloc(size)
	if err != nil {
		return Nil, err
	}
	return r.ptr(off), nil
}

// AllocArray is Alloc(elemSize * count).
func (a *Arena) AllocArray(elemSize, count uint64) (Ptr, error) {
	hi, lo := bits.Mul64(elemSize, count)
	if hi != 0 {
		return Nil, ErrTooLarge
	}
	return a.Alloc(lo)
}

func (a *Arena) alloc(size uint64) (*region, uint64, error) {
	if a.regions == nil {
		return nil, 0, ErrDestroyed
	}
	if size == 0 {
		return nil, 0, ErrZeroSize
	}
	if size > a.capacity {
		return nil, 0, ErrTooLarge
	}
	blocks := a.blocksFor(size)
	need := blocks * a.blockSize
	if need > a.capacity {
		return nil, 0, ErrTooLarge
	}

	tail := a.regions[len(a.regions)-1]
	if tail.cursor+need > a.capacity {
		if uint64(len(a.regions)) >= a.maxRegions {
			return nil, 0, ErrExhausted
		}
		tail = a.newRegion(uint64(len(a.regions)))
		a.regions = append(a.regions, tail)
	}

	start := tail.cursor
	binary.LittleEndian.PutUint64(tail.data[start:start+headerSize], size)
	tail.mark(start/a.blockSize, blocks, true)
	tail.starts.Set(uint(start / a.blockSize))
	tail.cursor += need
	return tail, start + headerSize, nil
}

// Free zeroes the allocation at p and clears its bitmap bits. The space is
// not reused by later allocations in the same region.
func (a *Arena) Free(p Ptr) error {
	r, off, size, err := a.lookup(p)
	if err != nil {
		return err
	}
	a.release(r, off, size)
	return nil
}

func (a *Arena) release(r *region, off, size uint64) {
	blocks := a.blocksFor(size)
	start := off - headerSize
	clear(r.data[start : start+blocks*a.blockSize])
	r.mark(start/a.blockSize, blocks, false)
}

// Realloc moves the allocation at p into a new allocation of newSize bytes
// and frees the old one. Shrinking is refused.
func (a *Arena) Realloc(p Ptr, newSize uint64) (Ptr, error) {
	r, off, size, err := a.lookup(p)
	if err != nil {
		return Nil, err
	}
	if newSize < size {
		return Nil, ErrShrink
	}
	nr, noff, err := a.alloc(newSize)
	if err != nil {
		return Nil, err
	}
	// copy stays inside the readable tail of the old region
	n := min(newSize, a.capacity-off)
	copy(nr.data[noff:noff+n], r.data[off:off+n])
	a.release(r, off, size)
	return nr.ptr(noff), nil
}

// Strdup copies s into the arena as a NUL-terminated byte string.
func (a *Arena) Strdup(s string) (Ptr, error) {
	n, err := safecast.Conv[uint64](len(s))
	if err != nil {
		return Nil, err
	}
	r, off, err := a.alloc(n + 1)
	if err != nil {
		return Nil, err
	}
	copy(r.data[off:off+n], s)
	r.data[off+n] = 0
	return r.ptr(off), nil
}

// String reads a string written by Strdup.
func (a *Arena) String(p Ptr) (string, error) {
	b, err := a.Bytes(p)
	if err != nil {
		return "", err
	}
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return string(b), nil
}

// Bytes returns the payload of the allocation at p. The slice aliases arena
// memory and is only valid until the allocation is freed or the arena reset.
func (a *Arena) Bytes(p Ptr) ([]byte, error) {
	r, off, size, err := a.lookup(p)
	if err != nil {
		return nil, err
	}
	return r.data[off : off+size : off+size], nil
}

// SizeOf returns the size recorded in the header of the allocation at p.
func (a *Arena) SizeOf(p Ptr) (uint64, error) {
	_, _, size, err := a.lookup(p)
	return size, err
}

// Owns reports whether p addresses a live allocation of a.
func (a *Arena) Owns(p Ptr) bool {
	_, _, _, err := a.lookup(p)
	return err == nil
}

// Reset zeroes the head region, rewinds its cursor and drops every chained
// region. Pointers into dropped regions become foreign.
func (a *Arena) Reset() error {
	if a.regions == nil {
		return ErrDestroyed
	}
	head := a.regions[0]
	clear(head.data)
	head.bitmap.ClearAll()
	head.starts.ClearAll()
	head.cursor = 0
	for i := 1; i < len(a.regions); i++ {
		a.regions[i] = nil
	}
	a.regions = a.regions[:1]
	return nil
}

// Destroy releases every region. Any later call fails with ErrDestroyed.
func (a *Arena) Destroy() error {
	if a.regions == nil {
		return ErrDestroyed
	}
	for i := range a.regions {
		a.regions[i] = nil
	}
	a.regions = nil
	return nil
}

// lookup finds the region that contains p by bounds and validates the header.
func (a *Arena) lookup(p Ptr) (*region, uint64, uint64, error) {
	if a.regions == nil {
		return nil, 0, 0, ErrDestroyed
	}
	if p.IsNil() {
		return nil, 0, 0, ErrForeign
	}
	for _, r := range a.regions {
		off, ok := r.contains(p)
		if !ok {
			continue
		}
		start := off - headerSize
		// in packed mode every offset is block aligned, so only the start
		// bitmap tells a header from bytes inside another allocation
		if start%a.blockSize != 0 || !r.starts.Test(uint(start/a.blockSize)) {
			return nil, 0, 0, ErrForeign
		}
		size := binary.LittleEndian.Uint64(r.data[start:off])
		if size == 0 {
			return nil, 0, 0, ErrDoubleFree
		}
		if size > a.capacity || start+a.blocksFor(size)*a.blockSize > r.cursor {
			return nil, 0, 0, ErrForeign
		}
		if !r.bitmap.Test(uint(start / a.blockSize)) {
			return nil, 0, 0, ErrForeign
		}
		return r, off, size, nil
	}
	return nil, 0, 0, ErrForeign
}

func (a *Arena) blocksFor(size uint64) uint64 {
	total := size + headerSize
	if !a.aligned {
		return total
	}
	return (total + a.blockSize - 1) / a.blockSize
}

// RoundedSize returns the number of bytes an allocation of size occupies,
// header included.
func (a *Arena) RoundedSize(size uint64) uint64 {
	if size == 0 {
		return 0
	}
	return a.blocksFor(size) * a.blockSize
}

func nextPow2(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len64(v-1)
}
