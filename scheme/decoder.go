package scheme

import (
	"errors"
	"fmt"
	"iter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/arloliu/voxpack/compress"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
	"github.com/arloliu/voxpack/internal/hash"
	"github.com/arloliu/voxpack/internal/pool"
	"github.com/arloliu/voxpack/section"
)

// DecodedChunk holds the sections of a decoded chunk frame.
type DecodedChunk struct {
	// Header is the parsed frame header.
	Header   section.ChunkHeader
	sections [section.SectionsPerChunk][]uint16
}

// Section returns section i, or false if the chunk does not hold it.
func (c *DecodedChunk) Section(i int) ([]uint16, bool) {
	if !c.Header.HasSection(i) {
		return nil, false
	}

	return c.sections[i], true
}

// Sections iterates the present sections in ascending index order.
func (c *DecodedChunk) Sections() iter.Seq2[int, []uint16] {
	return func(yield func(int, []uint16) bool) {
		for i, block := range c.sections {
			if block == nil {
				continue
			}

			if !yield(i, block) {
				return
			}
		}
	}
}

// ChunkDecoder decodes chunk frames written by a ChunkEncoder of any scheme.
//
// The packing policy and compression type are read from each frame; the
// strategy and compression options of the decoder configuration are ignored.
//
// A ChunkDecoder is not safe for concurrent use; its section decoders share
// scratch buffers between calls.
type ChunkDecoder struct {
	decoders map[format.Policy]*section.Decoder
	logger   log.Logger
	metrics  *Metrics
}

// NewChunkDecoder creates a chunk decoder. Only the logger and metrics
// options take effect.
func NewChunkDecoder(opts ...Option) (*ChunkDecoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	decoders := make(map[format.Policy]*section.Decoder, 2)
	for _, policy := range []format.Policy{format.PolicyBaseline, format.PolicyOptimized} {
		dec, err := section.NewDecoder(policy)
		if err != nil {
			return nil, err
		}
		decoders[policy] = dec
	}

	return &ChunkDecoder{
		decoders: decoders,
		logger:   log.With(cfg.logger, "component", "chunk-decoder"),
		metrics:  cfg.metrics,
	}, nil
}

// Decode decodes every section of frame.
//
// Returns errs.ErrChecksumMismatch when the decompressed payload does not
// match the frame checksum, errs.ErrInvalidPayloadSize when its size differs
// from the header, errs.ErrTrailingData when bytes follow the last record,
// and the section.ChunkHeader and section.Decoder errors otherwise.
func (d *ChunkDecoder) Decode(frame []byte) (*DecodedChunk, error) {
	chunk := &DecodedChunk{}

	var backing []uint16
	err := d.walk(frame, &chunk.Header, func(index int) ([]uint16, error) {
		if backing == nil {
			backing = make([]uint16, chunk.Header.SectionCount()*section.BlockSize)
		}

		block := backing[:section.BlockSize:section.BlockSize]
		backing = backing[section.BlockSize:]
		chunk.sections[index] = block

		return block, nil
	}, nil)
	if err != nil {
		return nil, err
	}

	return chunk, nil
}

// DecodeFunc decodes frame and calls fn for every section in ascending index
// order. The block passed to fn is reused between calls; fn must copy it to
// retain it. An error returned by fn stops decoding and is returned as is.
func (d *ChunkDecoder) DecodeFunc(frame []byte, fn func(index int, block []uint16) error) (section.ChunkHeader, error) {
	block, release := pool.GetUint16Slice(section.BlockSize)
	defer release()

	var header section.ChunkHeader
	err := d.walk(frame, &header, func(int) ([]uint16, error) {
		return block, nil
	}, fn)

	return header, err
}

// walk verifies frame and decodes its records into the blocks returned by
// next, passing each decoded block to done when it is non-nil.
func (d *ChunkDecoder) walk(
	frame []byte,
	header *section.ChunkHeader,
	next func(index int) ([]uint16, error),
	done func(index int, block []uint16) error,
) (err error) {
	defer func() {
		d.metrics.observeDecode(err)
		if err != nil {
			level.Debug(d.logger).Log("msg", "failed to decode chunk", "err", err)
		}
	}()

	if err := header.Parse(frame); err != nil {
		return err
	}

	payload, err := d.payload(frame, header)
	if err != nil {
		return err
	}

	dec := d.decoders[header.Policy]
	offset := 0
	for i := range section.SectionsPerChunk {
		if !header.HasSection(i) {
			continue
		}

		block, err := next(i)
		if err != nil {
			return err
		}

		n, err := dec.Decode(payload[offset:], block)
		if err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
		offset += n

		if done != nil {
			if err := done(i, block); err != nil {
				return err
			}
		}
	}

	if offset != len(payload) {
		return fmt.Errorf("%w: %d bytes after section records", errs.ErrTrailingData, len(payload)-offset)
	}

	return nil
}

// payload decompresses and verifies the payload of frame.
func (d *ChunkDecoder) payload(frame []byte, header *section.ChunkHeader) ([]byte, error) {
	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}

	// Never inflate past the size the header declares.
	payload, err := codec.DecompressBounded(frame[section.ChunkHeaderSize:], int(header.PayloadSize))
	if errors.Is(err, errs.ErrDecompressedSizeExceeded) {
		return nil, fmt.Errorf("%w: header records %d bytes: %w", errs.ErrInvalidPayloadSize, header.PayloadSize, err)
	}
	if err != nil {
		return nil, fmt.Errorf("decompress chunk payload: %w", err)
	}

	if uint32(len(payload)) != header.PayloadSize { //nolint:gosec
		return nil, fmt.Errorf("%w: header records %d bytes, payload has %d",
			errs.ErrInvalidPayloadSize, header.PayloadSize, len(payload))
	}

	if !hash.Verify(payload, header.Checksum) {
		return nil, fmt.Errorf("%w: want %#016x, got %#016x",
			errs.ErrChecksumMismatch, header.Checksum, hash.Checksum(payload))
	}

	return payload, nil
}
