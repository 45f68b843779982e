// Package errs defines the sentinel errors returned by voxpack.
//
// Every failure of the codec is terminal for the section or chunk being
// processed: callers match these values with errors.Is and abandon the
// operation. None of them describe a recoverable or degraded state.
package errs

import "errors"

// Palette and dispatch errors.
var (
	// ErrPaletteOverflow is returned when a block holds more distinct symbols
	// than a palette can store (256).
	ErrPaletteOverflow = errors.New("palette overflow: more than 256 distinct symbols")

	// ErrUnsupportedWidth is returned when the bit width required for a
	// distinct-symbol count exceeds 8, or a width outside 0..8 is requested.
	ErrUnsupportedWidth = errors.New("unsupported bit width")

	// ErrInvalidDistinctCount is returned when a distinct-symbol count is not positive.
	ErrInvalidDistinctCount = errors.New("invalid distinct symbol count")

	// ErrSymbolNotInPalette is returned when palettization meets a symbol that
	// is absent from the palette built for the same block.
	ErrSymbolNotInPalette = errors.New("symbol not found in palette")

	// ErrEmptyWidthSet is returned when a dispatcher is configured without any allowed width.
	ErrEmptyWidthSet = errors.New("empty width set")
)

// Packing and buffer errors.
var (
	// ErrInvalidCount is returned when a byte-aligned packer receives a value
	// count that is not a multiple of its values-per-byte factor.
	ErrInvalidCount = errors.New("invalid value count for bit width")

	// ErrInsufficientCapacity is returned when an output buffer is too small
	// to hold the complete result. Nothing is written in that case.
	ErrInsufficientCapacity = errors.New("insufficient output capacity")

	// ErrDecompressedSizeExceeded is returned when decompressed output grows
	// past the limit given to a bounded decompression.
	ErrDecompressedSizeExceeded = errors.New("decompressed size exceeds limit")

	// ErrTruncatedData is returned when encoded input ends before the
	// expected amount of data.
	ErrTruncatedData = errors.New("truncated data")

	// ErrIndexOutOfRange is returned when a decoded palette index does not
	// address an entry of the palette.
	ErrIndexOutOfRange = errors.New("palette index out of range")
)

// Section, chunk and region errors.
var (
	// ErrInvalidSectionSize is returned when a block does not hold exactly
	// section.BlockSize symbols.
	ErrInvalidSectionSize = errors.New("invalid section size")

	// ErrInvalidChunkMagic is returned when a chunk frame does not start with the chunk magic byte.
	ErrInvalidChunkMagic = errors.New("invalid chunk magic")

	// ErrChecksumMismatch is returned when a decoded chunk payload does not
	// match the checksum recorded in its frame.
	ErrChecksumMismatch = errors.New("chunk checksum mismatch")

	// ErrTooManySections is returned when more sections are added to a chunk than it can index.
	ErrTooManySections = errors.New("too many sections in chunk")

	// ErrTooManyChunks is returned when more chunks are added to a region than it can index.
	ErrTooManyChunks = errors.New("too many chunks in region")

	// ErrInvalidSectionIndex is returned when a section index is outside 0..15
	// or not greater than the previous section of the same chunk.
	ErrInvalidSectionIndex = errors.New("invalid section index")

	// ErrChunkNotStarted is returned when sections are added outside of a BeginChunk/EndChunk pair.
	ErrChunkNotStarted = errors.New("chunk not started")

	// ErrInvalidPayloadSize is returned when a chunk header records a payload
	// size no chunk can have.
	ErrInvalidPayloadSize = errors.New("invalid chunk payload size")

	// ErrTrailingData is returned when a decoded payload has bytes left after its last section.
	ErrTrailingData = errors.New("trailing data after last section")
)

// Configuration errors.
var (
	// ErrInvalidCompressionType is returned for an unknown or unsupported compression type.
	ErrInvalidCompressionType = errors.New("invalid compression type")

	// ErrInvalidCompressionLevel is returned for a level outside the codec's accepted range.
	ErrInvalidCompressionLevel = errors.New("invalid compression level")

	// ErrInvalidPolicy is returned for an unknown packing policy.
	ErrInvalidPolicy = errors.New("invalid packing policy")

	// ErrInvalidStrategy is returned for an unknown palette strategy.
	ErrInvalidStrategy = errors.New("invalid palette strategy")

	// ErrInvalidSchemeName is returned when a scheme name cannot be parsed.
	ErrInvalidSchemeName = errors.New("invalid scheme name")
)
