package section

import (
	"fmt"

	"github.com/arloliu/voxpack/bitpack"
	"github.com/arloliu/voxpack/endian"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
	"github.com/arloliu/voxpack/palette"
)

var engine = endian.GetLittleEndianEngine()

// RecordInfo describes an encoded section record.
type RecordInfo struct {
	// PaletteSize is the number of distinct symbols of the block.
	PaletteSize int
	// Width is the index width selected by the packing policy.
	Width int
	// Size is the total record size in bytes.
	Size int
}

// RecordSize returns the size of a record for a palette of n entries packed at width.
func RecordSize(n, width int) (int, error) {
	packed, err := bitpack.PackedSize(width, BlockSize)
	if err != nil {
		return 0, err
	}

	return 1 + 2*n + packed, nil
}

// Encoder turns blocks into section records.
//
// The encoder owns its palette and index scratch space and reuses them for
// every block, so it must not be used from more than one goroutine.
type Encoder struct {
	builder    palette.Builder
	palettizer palette.Palettizer
	dispatcher *bitpack.Dispatcher
	policy     format.Policy

	palette palette.Palette
	indices []uint16
}

// NewEncoder creates a section encoder using the given palette strategy and
// packing policy.
func NewEncoder(strategy format.Strategy, policy format.Policy) (*Encoder, error) {
	builder, err := palette.NewBuilder(strategy)
	if err != nil {
		return nil, err
	}

	palettizer, err := palette.NewPalettizer(strategy)
	if err != nil {
		return nil, err
	}

	dispatcher, err := bitpack.NewDispatcher(policy)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		builder:    builder,
		palettizer: palettizer,
		dispatcher: dispatcher,
		policy:     policy,
		indices:    make([]uint16, BlockSize),
	}, nil
}

// Policy returns the packing policy of the encoder.
func (e *Encoder) Policy() format.Policy {
	return e.policy
}

// EncodeInto writes the record of block to the start of dst.
//
// Returns errs.ErrInvalidSectionSize when block does not hold BlockSize
// symbols, errs.ErrPaletteOverflow when it has more than 256 distinct
// symbols, and errs.ErrInsufficientCapacity when dst cannot hold the record.
// dst is not modified on error.
func (e *Encoder) EncodeInto(dst []byte, block []uint16) (RecordInfo, error) {
	if len(block) != BlockSize {
		return RecordInfo{}, fmt.Errorf("%w: got %d symbols, want %d", errs.ErrInvalidSectionSize, len(block), BlockSize)
	}

	if err := e.builder.Build(block, &e.palette); err != nil {
		return RecordInfo{}, err
	}

	if err := e.palettizer.Apply(&e.palette, block, e.indices); err != nil {
		return RecordInfo{}, err
	}

	n := e.palette.Len()
	width, err := e.dispatcher.SelectWidth(n)
	if err != nil {
		return RecordInfo{}, err
	}

	size, err := RecordSize(n, width)
	if err != nil {
		return RecordInfo{}, err
	}

	if len(dst) < size {
		return RecordInfo{}, fmt.Errorf("%w: record needs %d bytes, have %d", errs.ErrInsufficientCapacity, size, len(dst))
	}

	dst[0] = byte(n - 1)
	endian.PutUint16s(engine, dst[1:], e.palette.Values())
	if _, err := bitpack.Pack(width, dst[1+2*n:size], e.indices); err != nil {
		return RecordInfo{}, err
	}

	return RecordInfo{PaletteSize: n, Width: width, Size: size}, nil
}

// AppendRecord appends the record of block to dst.
func (e *Encoder) AppendRecord(dst []byte, block []uint16) ([]byte, RecordInfo, error) {
	start := len(dst)
	if cap(dst)-start < MaxRecordSize {
		grown := make([]byte, start, start+MaxRecordSize)
		copy(grown, dst)
		dst = grown
	}

	info, err := e.EncodeInto(dst[start:start+MaxRecordSize], block)
	if err != nil {
		return dst[:start], RecordInfo{}, err
	}

	return dst[:start+info.Size], info, nil
}

// Decoder turns section records back into blocks.
//
// A Decoder owns its scratch space and must not be used from more than one
// goroutine.
type Decoder struct {
	dispatcher *bitpack.Dispatcher
	symbols    [palette.MaxSize]uint16
	indices    []uint16
}

// NewDecoder creates a section decoder for records written under policy.
func NewDecoder(policy format.Policy) (*Decoder, error) {
	dispatcher, err := bitpack.NewDispatcher(policy)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		dispatcher: dispatcher,
		indices:    make([]uint16, BlockSize),
	}, nil
}

// Decode decodes the record at the start of src into dst and returns the
// number of bytes consumed.
//
// Returns errs.ErrInvalidSectionSize when dst does not hold BlockSize
// symbols, errs.ErrTruncatedData when src ends inside the record and
// errs.ErrIndexOutOfRange when a packed index does not address a palette
// entry.
func (d *Decoder) Decode(src []byte, dst []uint16) (int, error) {
	if len(dst) != BlockSize {
		return 0, fmt.Errorf("%w: destination holds %d symbols, want %d", errs.ErrInvalidSectionSize, len(dst), BlockSize)
	}

	if len(src) < 1 {
		return 0, fmt.Errorf("%w: missing palette size", errs.ErrTruncatedData)
	}

	n := int(src[0]) + 1
	if len(src) < 1+2*n {
		return 0, fmt.Errorf("%w: palette of %d entries needs %d bytes, have %d",
			errs.ErrTruncatedData, n, 1+2*n, len(src))
	}

	symbols := d.symbols[:n]
	endian.Uint16s(engine, symbols, src[1:])

	consumed, err := d.dispatcher.Unpack(n, d.indices, src[1+2*n:])
	if err != nil {
		return 0, err
	}

	for i, idx := range d.indices {
		if int(idx) >= n {
			return 0, fmt.Errorf("%w: index %d at offset %d, palette has %d entries",
				errs.ErrIndexOutOfRange, idx, i, n)
		}
		dst[i] = symbols[idx]
	}

	return 1 + 2*n + consumed, nil
}
