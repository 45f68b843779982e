package scheme

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/voxpack/bitpack"
	"github.com/arloliu/voxpack/compress"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/internal/hash"
	"github.com/arloliu/voxpack/internal/pool"
	"github.com/arloliu/voxpack/section"
)

// MaxCompressedSize is the output capacity reserved for a compressed chunk
// payload. A payload that does not compress into it fails with
// errs.ErrInsufficientCapacity.
const MaxCompressedSize = 4 * section.MaxPayloadSize

// ChunkEncoder encodes chunks into frames.
//
// Usage:
//
//	enc, _ := scheme.NewChunkEncoder(scheme.WithCompression(format.CompressionZstd, 3))
//	enc.BeginChunk()
//	_ = enc.AddSection(0, block0)
//	_ = enc.AddSection(5, block5)
//	frame, err := enc.EndChunk()
//
// Any error aborts the open chunk; the next chunk starts with BeginChunk.
type ChunkEncoder struct {
	cfg      *Config
	name     string
	sections *section.Encoder
	codec    compress.Codec
	logger   log.Logger

	payload *pool.ByteBuffer
	mask    uint16
	last    int
	started time.Time
	chunk   Stats
	total   Stats
}

// NewChunkEncoder creates a chunk encoder from the default configuration with
// opts applied.
func NewChunkEncoder(opts ...Option) (*ChunkEncoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	sections, err := section.NewEncoder(cfg.strategy, cfg.policy)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, cfg.level)
	if err != nil {
		return nil, err
	}

	name := cfg.Name()

	return &ChunkEncoder{
		cfg:      cfg,
		name:     name,
		sections: sections,
		codec:    codec,
		logger:   log.With(cfg.logger, "component", "chunk-encoder", "scheme", name),
	}, nil
}

// Name returns the scheme name of the encoder.
func (e *ChunkEncoder) Name() string {
	return e.name
}

// Config returns the encoder configuration.
func (e *ChunkEncoder) Config() *Config {
	return e.cfg
}

// BeginChunk starts a new chunk, discarding any chunk that is still open.
func (e *ChunkEncoder) BeginChunk() {
	e.abort()

	e.payload = pool.GetChunkBuffer()
	e.mask = 0
	e.last = -1
	e.started = time.Now()
	e.chunk = Stats{}
}

// AddSection encodes block as section index of the open chunk.
//
// Sections must be added in strictly ascending index order within 0..15,
// otherwise errs.ErrInvalidSectionIndex is returned. Returns
// errs.ErrChunkNotStarted without an open chunk, and the section.Encoder
// errors for invalid blocks.
func (e *ChunkEncoder) AddSection(index int, block []uint16) error {
	if e.payload == nil {
		return errs.ErrChunkNotStarted
	}

	if index < 0 || index >= section.SectionsPerChunk || index <= e.last {
		e.abort()
		return fmt.Errorf("%w: section %d after section %d", errs.ErrInvalidSectionIndex, index, e.last)
	}

	start := e.payload.Len()
	tail := e.payload.ExtendOrGrow(section.MaxRecordSize)

	info, err := e.sections.EncodeInto(tail, block)
	if err != nil {
		e.abort()
		return fmt.Errorf("section %d: %w", index, err)
	}
	e.payload.Truncate(start + info.Size)

	e.mask |= 1 << index
	e.last = index

	e.chunk.Sections++
	e.chunk.SectionsByWidth[info.Width]++
	if bits, err := bitpack.MinimalWidth(info.PaletteSize); err == nil {
		e.chunk.SectionsByPaletteBits[bits]++
	}
	e.chunk.RawBytes += 2 * section.BlockSize

	return nil
}

// EndChunk closes the open chunk and returns its frame.
//
// The frame is owned by the caller. Returns errs.ErrChunkNotStarted without
// an open chunk and errs.ErrInsufficientCapacity when the compressed payload
// exceeds MaxCompressedSize.
func (e *ChunkEncoder) EndChunk() ([]byte, error) {
	if e.payload == nil {
		return nil, errs.ErrChunkNotStarted
	}
	defer e.abort()

	payload := e.payload.Bytes()
	header := section.ChunkHeader{
		Checksum:    hash.Checksum(payload),
		PayloadSize: uint32(len(payload)), //nolint:gosec
		SectionMask: e.mask,
		Policy:      e.cfg.policy,
		Compression: e.cfg.compression,
	}

	frame := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(frame)

	frame.B = header.AppendTo(frame.B)
	n, err := compress.CompressInto(e.codec, frame.ExtendOrGrow(MaxCompressedSize), payload)
	if err != nil {
		return nil, fmt.Errorf("compress chunk payload: %w", err)
	}
	frame.Truncate(section.ChunkHeaderSize + n)

	out := bytes.Clone(frame.Bytes())

	e.chunk.Chunks = 1
	e.chunk.PackedBytes = int64(len(payload))
	e.chunk.FrameBytes = int64(len(out))
	e.chunk.Duration = time.Since(e.started)

	e.cfg.metrics.observeChunk(e.cfg.compression.String(), &e.chunk)
	level.Debug(e.logger).Log(
		"msg", "encoded chunk",
		"sections", e.chunk.Sections,
		"payload_bytes", len(payload),
		"frame_bytes", len(out),
		"ratio", e.chunk.Ratio(),
		"duration", e.chunk.Duration,
	)

	e.total.Add(e.chunk)

	return out, nil
}

// Stats returns the statistics of every chunk completed by the encoder.
func (e *ChunkEncoder) Stats() Stats {
	return e.total
}

// ResetStats clears the accumulated statistics.
func (e *ChunkEncoder) ResetStats() {
	e.total = Stats{}
}

// abort releases the open chunk, if any.
func (e *ChunkEncoder) abort() {
	if e.payload == nil {
		return
	}

	pool.PutChunkBuffer(e.payload)
	e.payload = nil
}
