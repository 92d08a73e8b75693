package arena

// Stats is a snapshot of the arena geometry and occupancy.
type Stats struct {
	Aligned    bool
	BitmapSize uint64 // bytes per region
	BlockSize  uint64
	Capacity   uint64 // data bytes per region
	Used       uint64 // bytes marked occupied across all regions
	Regions    uint64
	MaxRegions uint64
}

// IsAligned reports whether the arena allocates whole blocks.
func (a *Arena) IsAligned() bool { return a.aligned }

// Capacity returns the data capacity of one region in bytes.
func (a *Arena) Capacity() uint64 { return a.capacity }

// BlockSize returns the block size; 1 for packed arenas.
func (a *Arena) BlockSize() uint64 { return a.blockSize }

// BitmapSize returns the size of one region's bitmap in bytes.
func (a *Arena) BitmapSize() uint64 { return (a.blocks + 7) / 8 }

// MaxRegions returns the configured region limit.
func (a *Arena) MaxRegions() uint64 { return a.maxRegions }

// Regions returns the number of regions currently chained.
func (a *Arena) Regions() uint64 { return uint64(len(a.regions)) }

// Used returns the number of bytes currently marked occupied, computed by
// popcounting every region's bitmap.
func (a *Arena) Used() uint64 {
	var blocks uint64
	for _, r := range a.regions {
		blocks += r.used()
	}
	return blocks * a.blockSize
}

// Stats collects the introspection values in one struct.
func (a *Arena) Stats() Stats {
	return Stats{
		Aligned:    a.aligned,
		BitmapSize: a.BitmapSize(),
		BlockSize:  a.blockSize,
		Capacity:   a.capacity,
		Used:       a.Used(),
		Regions:    a.Regions(),
		MaxRegions: a.maxRegions,
	}
}
