package arena

import "encoding/binary"

// Little-endian field helpers for fixed-layout records stored in
// allocations. Offsets are relative to the payload returned by Bytes.

// PutU32 writes v at off.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads the uint32 at off.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutPtr writes p at off.
func PutPtr(b []byte, off int, p Ptr) {
	binary.LittleEndian.PutUint64(b[off:off+8], uint64(p))
}

// ReadPtr reads the Ptr at off.
func ReadPtr(b []byte, off int) Ptr {
	return Ptr(binary.LittleEndian.Uint64(b[off : off+8]))
}
