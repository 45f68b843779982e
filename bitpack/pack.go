package bitpack

import (
	"fmt"

	"github.com/arloliu/voxpack/endian"
	"github.com/arloliu/voxpack/errs"
)

// PackFunc packs every value of src into dst and returns the number of bytes written.
//
// Values are masked to the packer's width. dst must hold at least
// PackedSize(width, len(src)) bytes; a shorter dst returns
// errs.ErrInsufficientCapacity before anything is written.
type PackFunc func(dst []byte, src []uint16) (int, error)

// The packed layout is little-endian regardless of the host byte order.
var engine = endian.GetLittleEndianEngine()

var packers = [MaxWidth + 1]PackFunc{
	Pack0, Pack1, Pack2, Pack3, Pack4, Pack5, Pack6, Pack7, Pack8,
}

// Pack packs src at the given width using that width's packer.
//
// Returns errs.ErrUnsupportedWidth for widths outside 0..8.
func Pack(width int, dst []byte, src []uint16) (int, error) {
	if width < 0 || width > MaxWidth {
		return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedWidth, width)
	}

	return packers[width](dst, src)
}

// Pack0 is the width-0 packer. It writes nothing: every value of a
// single-entry palette is index 0.
func Pack0(_ []byte, _ []uint16) (int, error) {
	return 0, nil
}

// Pack1 packs eight 1-bit values per byte. len(src) must be a multiple of 8.
func Pack1(dst []byte, src []uint16) (int, error) {
	n, err := reserve(1, dst, len(src))
	if err != nil {
		return 0, err
	}

	for i := range n {
		s := src[i*8 : i*8+8 : i*8+8]
		dst[i] = byte(s[0]&1) |
			byte(s[1]&1)<<1 |
			byte(s[2]&1)<<2 |
			byte(s[3]&1)<<3 |
			byte(s[4]&1)<<4 |
			byte(s[5]&1)<<5 |
			byte(s[6]&1)<<6 |
			byte(s[7]&1)<<7
	}

	return n, nil
}

// Pack2 packs four 2-bit values per byte. len(src) must be a multiple of 4.
func Pack2(dst []byte, src []uint16) (int, error) {
	n, err := reserve(2, dst, len(src))
	if err != nil {
		return 0, err
	}

	for i := range n {
		s := src[i*4 : i*4+4 : i*4+4]
		dst[i] = byte(s[0]&0x3) |
			byte(s[1]&0x3)<<2 |
			byte(s[2]&0x3)<<4 |
			byte(s[3]&0x3)<<6
	}

	return n, nil
}

// Pack3 packs 21 3-bit values per 64-bit word.
func Pack3(dst []byte, src []uint16) (int, error) {
	return packWords(3, dst, src)
}

// Pack4 packs two 4-bit values per byte, the first in the low nibble.
// len(src) must be even.
func Pack4(dst []byte, src []uint16) (int, error) {
	n, err := reserve(4, dst, len(src))
	if err != nil {
		return 0, err
	}

	for i := range n {
		dst[i] = byte(src[2*i]&0xF) | byte(src[2*i+1]&0xF)<<4
	}

	return n, nil
}

// Pack5 packs 12 5-bit values per 64-bit word.
func Pack5(dst []byte, src []uint16) (int, error) {
	return packWords(5, dst, src)
}

// Pack6 packs 10 6-bit values per 64-bit word.
func Pack6(dst []byte, src []uint16) (int, error) {
	return packWords(6, dst, src)
}

// Pack7 packs 9 7-bit values per 64-bit word.
func Pack7(dst []byte, src []uint16) (int, error) {
	return packWords(7, dst, src)
}

// Pack8 stores the low byte of every value.
func Pack8(dst []byte, src []uint16) (int, error) {
	n, err := reserve(8, dst, len(src))
	if err != nil {
		return 0, err
	}

	for i, v := range src {
		dst[i] = byte(v)
	}

	return n, nil
}

// packWords implements the word-grouped layout shared by widths 3, 5, 6 and 7.
// Input is consumed one group at a time, so the read stride always equals the
// group size.
func packWords(width int, dst []byte, src []uint16) (int, error) {
	n, err := reserve(width, dst, len(src))
	if err != nil {
		return 0, err
	}

	group := GroupSize(width)
	shift := uint(width)
	mask := uint64(1)<<shift - 1

	off := 0
	for len(src) > 0 {
		chunk := src[:min(group, len(src))]
		src = src[len(chunk):]

		var word uint64
		for k, v := range chunk {
			word |= (uint64(v) & mask) << (uint(k) * shift)
		}

		engine.PutUint64(dst[off:], word)
		off += WordSize
	}

	return n, nil
}

// reserve validates count for width and checks that dst can hold the result.
func reserve(width int, dst []byte, count int) (int, error) {
	n, err := PackedSize(width, count)
	if err != nil {
		return 0, err
	}

	if len(dst) < n {
		return 0, fmt.Errorf("%w: width %d needs %d bytes for %d values, have %d",
			errs.ErrInsufficientCapacity, width, n, count, len(dst))
	}

	return n, nil
}
