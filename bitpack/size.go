package bitpack

import (
	"fmt"

	"github.com/arloliu/voxpack/errs"
)

// PackedSize returns the exact number of bytes the packer for width writes for
// count values.
//
// Byte-aligned widths return errs.ErrInvalidCount when count is not a
// multiple of their values-per-byte factor. Grouped widths round a partial
// last group up to a whole 8-byte word.
func PackedSize(width, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("%w: negative count %d", errs.ErrInvalidCount, count)
	}

	switch {
	case width == 0:
		return 0, nil
	case width == 1 || width == 2 || width == 4:
		perByte := GroupSize(width)
		if count%perByte != 0 {
			return 0, fmt.Errorf("%w: %d values at width %d, need a multiple of %d",
				errs.ErrInvalidCount, count, width, perByte)
		}

		return count / perByte, nil
	case isGrouped(width):
		group := GroupSize(width)
		words := (count + group - 1) / group

		return words * WordSize, nil
	case width == MaxWidth:
		return count, nil
	default:
		return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedWidth, width)
	}
}

// MaxPackedSize returns a buffer size that holds count values packed at any
// supported width, including the trailing word of the grouped layouts.
func MaxPackedSize(count int) int {
	if count <= 0 {
		return WordSize
	}

	return count + WordSize
}
