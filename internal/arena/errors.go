package arena

import "errors"

var (
	// ErrZeroCapacity is returned when an arena is created with zero capacity.
	ErrZeroCapacity = errors.New("arena: zero capacity")

	// ErrCapacity is returned when the rounded capacity does not fit the
	// pointer encoding or is smaller than one block.
	ErrCapacity = errors.New("arena: capacity out of range")

	// ErrBlockSize is returned when an aligned block is smaller than a word.
	ErrBlockSize = errors.New("arena: block size smaller than a word")

	// ErrZeroSize is returned for zero-byte allocations.
	ErrZeroSize = errors.New("arena: zero-size allocation")

	// ErrTooLarge is returned when a single allocation can never fit a region.
	ErrTooLarge = errors.New("arena: allocation larger than a region")

	// ErrExhausted is returned when every region is full and the chain is at MaxRegions.
	ErrExhausted = errors.New("arena: regions exhausted")

	// ErrForeign is returned when a pointer does not belong to any region.
	ErrForeign = errors.New("arena: pointer not owned by arena")

	// ErrDoubleFree is returned when the stored size of an allocation is zero.
	ErrDoubleFree = errors.New("arena: allocation already freed")

	// ErrShrink is returned by Realloc when the new size is below the recorded size.
	ErrShrink = errors.New("arena: realloc cannot shrink")

	// ErrDestroyed is returned by every operation after Destroy.
	ErrDestroyed = errors.New("arena: destroyed")
)
