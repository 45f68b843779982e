package bitpack

import (
	"fmt"

	"github.com/arloliu/voxpack/errs"
)

// UnpackFunc decodes len(dst) values from src and returns the number of bytes consumed.
type UnpackFunc func(dst []uint16, src []byte) (int, error)

var unpackers = [MaxWidth + 1]UnpackFunc{
	Unpack0, Unpack1, Unpack2, Unpack3, Unpack4, Unpack5, Unpack6, Unpack7, Unpack8,
}

// Unpack decodes len(dst) values packed at width from src.
//
// It is the exact inverse of Pack for the same count. The returned byte count
// equals PackedSize(width, len(dst)), which lets callers walk concatenated streams.
func Unpack(width int, dst []uint16, src []byte) (int, error) {
	if width < 0 || width > MaxWidth {
		return 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedWidth, width)
	}

	return unpackers[width](dst, src)
}

// Unpack0 fills dst with index 0 and consumes nothing.
func Unpack0(dst []uint16, _ []byte) (int, error) {
	clear(dst)
	return 0, nil
}

// Unpack1 is the inverse of Pack1.
func Unpack1(dst []uint16, src []byte) (int, error) {
	return unpackBytes(1, dst, src)
}

// Unpack2 is the inverse of Pack2.
func Unpack2(dst []uint16, src []byte) (int, error) {
	return unpackBytes(2, dst, src)
}

// Unpack3 is the inverse of Pack3.
func Unpack3(dst []uint16, src []byte) (int, error) {
	return unpackWords(3, dst, src)
}

// Unpack4 is the inverse of Pack4.
func Unpack4(dst []uint16, src []byte) (int, error) {
	return unpackBytes(4, dst, src)
}

// Unpack5 is the inverse of Pack5.
func Unpack5(dst []uint16, src []byte) (int, error) {
	return unpackWords(5, dst, src)
}

// Unpack6 is the inverse of Pack6.
func Unpack6(dst []uint16, src []byte) (int, error) {
	return unpackWords(6, dst, src)
}

// Unpack7 is the inverse of Pack7.
func Unpack7(dst []uint16, src []byte) (int, error) {
	return unpackWords(7, dst, src)
}

// Unpack8 is the inverse of Pack8.
func Unpack8(dst []uint16, src []byte) (int, error) {
	n, err := available(8, src, len(dst))
	if err != nil {
		return 0, err
	}

	for i, b := range src[:n] {
		dst[i] = uint16(b)
	}

	return n, nil
}

func unpackBytes(width int, dst []uint16, src []byte) (int, error) {
	n, err := available(width, src, len(dst))
	if err != nil {
		return 0, err
	}

	perByte := GroupSize(width)
	shift := uint(width)
	mask := byte(1)<<shift - 1

	for i, b := range src[:n] {
		out := dst[i*perByte : (i+1)*perByte]
		for k := range out {
			out[k] = uint16((b >> (uint(k) * shift)) & mask)
		}
	}

	return n, nil
}

func unpackWords(width int, dst []uint16, src []byte) (int, error) {
	n, err := available(width, src, len(dst))
	if err != nil {
		return 0, err
	}

	group := GroupSize(width)
	shift := uint(width)
	mask := uint64(1)<<shift - 1

	off := 0
	for len(dst) > 0 {
		out := dst[:min(group, len(dst))]
		dst = dst[len(out):]

		word := engine.Uint64(src[off:])
		for k := range out {
			out[k] = uint16((word >> (uint(k) * shift)) & mask)
		}
		off += WordSize
	}

	return n, nil
}

// available validates count for width and checks that src holds enough bytes.
func available(width int, src []byte, count int) (int, error) {
	n, err := PackedSize(width, count)
	if err != nil {
		return 0, err
	}

	if len(src) < n {
		return 0, fmt.Errorf("%w: width %d needs %d bytes for %d values, have %d",
			errs.ErrTruncatedData, width, n, count, len(src))
	}

	return n, nil
}
