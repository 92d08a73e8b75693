// Package arena implements the region-based bump allocator that owns every
// tree node and string of a compilation.
//
// # Layout
//
// An Arena is a chain of regions with identical geometry. Each region has
// an occupancy bitmap (one bit per block) and a data segment of Capacity
// bytes partitioned into blocks:
//
//   - packed mode: block size is 1 byte, an allocation reserves
//     header+size bytes;
//   - aligned mode: block size is a power of two >= WordSize, an allocation
//     reserves ceil((header+size)/block) whole blocks.
//
// Every allocation starts with an 8-byte header holding the requested size.
// The returned Ptr points just past that header, so Free and Realloc can
// recompute the block count without a side table.
//
// # Cursor
//
// The bump cursor of a region only moves forward. Free zeroes the bytes and
// clears the bitmap bits of an allocation but never rewinds the cursor, so
// freed space is not handed out again until Reset. When the tail region
// cannot fit a request a new region is appended, up to MaxRegions.
//
// # Concurrency
//
// An Arena is not safe for concurrent use. The driver creates one arena per
// source file and never shares it between goroutines.
package arena
