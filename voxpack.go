// Package voxpack provides a compact, palette-indexed binary format for voxel
// sections: fixed blocks of 4096 16-bit symbols (16×16×16) grouped into
// chunks of up to 16 sections.
//
// Every section is reduced to the palette of its distinct symbols plus one
// small index per symbol, and the indices are bit-packed at the narrowest
// width that addresses the palette. The records of a chunk are concatenated
// and compressed with a general-purpose codec behind a checksummed header.
//
// # Core Features
//
//   - Palettes of up to 256 symbols, built by scalar or SIMD lookups
//   - Index packing at 0..8 bits, word-grouped for 3, 5, 6 and 7 bits
//   - Baseline (4..8 bit) and optimized (minimal width) packing policies
//   - Payload compression with Zstd, S2, LZ4, Snappy, Flate, Zlib, Gzip, Brotli or Bzip2
//   - xxHash64 payload checksums
//   - Region container parsing for bulk benchmarking
//
// # Basic Usage
//
// Encoding a chunk:
//
//	import "github.com/arloliu/voxpack"
//
//	encoder, _ := voxpack.NewDefaultChunkEncoder()
//
//	encoder.BeginChunk()
//	_ = encoder.AddSection(0, stone) // []uint16 of 4096 symbols
//	_ = encoder.AddSection(3, caves)
//	frame, _ := encoder.EndChunk()
//
// Decoding it again:
//
//	chunk, _ := voxpack.DecodeChunk(frame)
//	for index, block := range chunk.Sections() {
//	    fmt.Printf("section %d: first symbol %d\n", index, block[0])
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the scheme,
// section and region packages. For fine-grained control use them directly;
// the palette and bitpack packages expose the individual stages.
package voxpack

import (
	"fmt"

	"github.com/arloliu/voxpack/compress"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
	"github.com/arloliu/voxpack/region"
	"github.com/arloliu/voxpack/scheme"
	"github.com/arloliu/voxpack/section"
)

// BlockSize is the number of symbols of a section.
const BlockSize = section.BlockSize

var defaultOptions = []scheme.Option{
	scheme.WithStrategy(format.StrategyVectorized),
	scheme.WithPolicy(format.PolicyOptimized),
	scheme.WithCompression(format.CompressionZstd, compress.DefaultLevel),
}

// NewChunkEncoder creates a chunk encoder with custom options.
//
// Available options:
//   - scheme.WithStrategy(format.StrategyScalar|StrategyVectorized)
//   - scheme.WithPolicy(format.PolicyBaseline|PolicyOptimized)
//   - scheme.WithCompression(format.CompressionNone|Zstd|S2|LZ4|..., level)
//   - scheme.WithLogger(logger)
//   - scheme.WithMetrics(scheme.NewMetrics(registerer))
//
// Returns an error if the configuration is invalid.
func NewChunkEncoder(opts ...scheme.Option) (*scheme.ChunkEncoder, error) {
	return scheme.NewChunkEncoder(opts...)
}

// NewDefaultChunkEncoder creates a chunk encoder with the default settings:
// vectorized palettes, minimal-width packing and zstd compression.
func NewDefaultChunkEncoder() (*scheme.ChunkEncoder, error) {
	return scheme.NewChunkEncoder(defaultOptions...)
}

// NewSchemeEncoder creates a chunk encoder for a named scheme such as
// "vanilla", "opt1" or "opt2:zstd/3". Additional options are applied after
// the scheme's own, so a logger or metrics can be attached.
func NewSchemeEncoder(name string, opts ...scheme.Option) (*scheme.ChunkEncoder, error) {
	schemeOpts, err := scheme.ParseScheme(name)
	if err != nil {
		return nil, err
	}

	return scheme.NewChunkEncoder(append(schemeOpts, opts...)...)
}

// NewChunkDecoder creates a chunk decoder. Frames carry their own policy and
// compression type, so one decoder reads the output of every scheme.
func NewChunkDecoder(opts ...scheme.Option) (*scheme.ChunkDecoder, error) {
	return scheme.NewChunkDecoder(opts...)
}

// DecodeChunk decodes a single chunk frame with a temporary decoder.
//
// Use NewChunkDecoder to decode many frames without per-call setup.
func DecodeChunk(frame []byte) (*scheme.DecodedChunk, error) {
	dec, err := scheme.NewChunkDecoder()
	if err != nil {
		return nil, err
	}

	return dec.Decode(frame)
}

// EncodeSection encodes one block into a standalone section record using
// vectorized palettes and minimal-width packing.
func EncodeSection(block []uint16) ([]byte, error) {
	enc, err := section.NewEncoder(format.StrategyVectorized, format.PolicyOptimized)
	if err != nil {
		return nil, err
	}

	record, _, err := enc.AppendRecord(nil, block)
	if err != nil {
		return nil, err
	}

	return record, nil
}

// DecodeSection decodes a record produced by EncodeSection. The record must
// end exactly where the section does; extra bytes return errs.ErrTrailingData.
func DecodeSection(record []byte) ([]uint16, error) {
	dec, err := section.NewDecoder(format.PolicyOptimized)
	if err != nil {
		return nil, err
	}

	block := make([]uint16, BlockSize)
	n, err := dec.Decode(record, block)
	if err != nil {
		return nil, err
	}

	if n != len(record) {
		return nil, fmt.Errorf("%w: %d bytes after section record", errs.ErrTrailingData, len(record)-n)
	}

	return block, nil
}

// ParseRegion parses a region container. The returned region references data.
func ParseRegion(data []byte) (*region.Region, error) {
	return region.Parse(data)
}
