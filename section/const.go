package section

import (
	"github.com/arloliu/voxpack/bitpack"
	"github.com/arloliu/voxpack/palette"
)

const (
	// BlockSize is the number of symbols of one section (16×16×16).
	BlockSize = 4096

	// SectionsPerChunk is the number of sections a chunk can hold.
	SectionsPerChunk = 16

	// MaxRecordSize is the size of the largest possible section record:
	// a full palette packed at 8 bits.
	MaxRecordSize = 1 + 2*palette.MaxSize + BlockSize*bitpack.MaxWidth/8

	// MaxPayloadSize bounds the uncompressed payload of one chunk.
	MaxPayloadSize = SectionsPerChunk * MaxRecordSize
)

const (
	// ChunkHeaderSize is the fixed size of a chunk frame header.
	ChunkHeaderSize = 16

	// ChunkMagic is the first byte of every chunk frame.
	ChunkMagic = 0xB7
)
