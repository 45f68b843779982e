package pool

import "sync"

// BlockSize is the number of symbols of one section.
const BlockSize = 4096

var uint16SlicePool = sync.Pool{
	New: func() any {
		s := make([]uint16, 0, BlockSize)
		return &s
	},
}

// GetUint16Slice retrieves a uint16 slice of exactly size elements from the pool.
//
// The contents of the returned slice are unspecified. If the pooled slice has
// insufficient capacity, a new slice is allocated. The caller must call the
// returned cleanup function to return the slice to the pool.
//
// Example:
//
//	block, cleanup := pool.GetUint16Slice(pool.BlockSize)
//	defer cleanup()
func GetUint16Slice(size int) ([]uint16, func()) {
	ptr, _ := uint16SlicePool.Get().(*[]uint16)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint16, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint16SlicePool.Put(ptr) }
}
