package bitpack

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/voxpack/errs"
)

const (
	// MaxWidth is the widest supported index width in bits.
	MaxWidth = 8

	// WordSize is the size in bytes of one word-grouped output word.
	WordSize = 8
)

// MinimalWidth returns the smallest width b >= 0 such that 2^b >= distinct.
//
// MinimalWidth(1) is 0: a single-entry palette needs no index bits at all.
// The result is not clamped to MaxWidth; callers that pack must reject
// widths above it.
//
// Returns errs.ErrInvalidDistinctCount when distinct is not positive.
func MinimalWidth(distinct int) (int, error) {
	if distinct <= 0 {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidDistinctCount, distinct)
	}

	return bits.Len(uint(distinct - 1)), nil
}

// GroupSize returns how many values of the given width share one packing unit:
// values per byte for widths 1, 2 and 4, values per 64-bit word for widths
// 3, 5, 6 and 7, and 1 for width 8. Width 0 and unsupported widths return 0.
func GroupSize(width int) int {
	switch width {
	case 1, 2, 4:
		return 8 / width
	case 3, 5, 6, 7:
		return 64 / width
	case 8:
		return 1
	default:
		return 0
	}
}

// isGrouped reports whether width uses the 64-bit word layout.
func isGrouped(width int) bool {
	return width == 3 || width == 5 || width == 6 || width == 7
}
