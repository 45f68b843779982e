// Package region reads and writes region containers: sparse collections of
// up to 1024 chunks of up to 16 raw sections each.
//
// A region starts with a 1024-bit chunk presence bitmap (bit i is bit i%8 of
// byte i/8). The present chunks follow in ascending index order. Each chunk
// is a little-endian uint16 section presence bitmap followed by its present
// sections, each BlockSize little-endian uint16 symbols.
package region

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/arloliu/voxpack/endian"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/internal/pool"
	"github.com/arloliu/voxpack/section"
)

const (
	// ChunksPerRegion is the number of chunk slots of a region (32×32).
	ChunksPerRegion = 1024

	// BitmapSize is the size of the chunk presence bitmap in bytes.
	BitmapSize = ChunksPerRegion / 8

	// SectionBytes is the size of one raw section.
	SectionBytes = section.BlockSize * 2
)

var engine = endian.GetLittleEndianEngine()

// Chunk is a parsed chunk. Its sections alias the region bytes.
type Chunk struct {
	index    int
	mask     uint16
	sections [section.SectionsPerChunk][]byte
}

// Index returns the chunk's slot in its region.
func (c *Chunk) Index() int {
	return c.index
}

// SectionMask returns the section presence bitmap.
func (c *Chunk) SectionMask() uint16 {
	return c.mask
}

// SectionCount returns the number of present sections.
func (c *Chunk) SectionCount() int {
	return bits.OnesCount16(c.mask)
}

// Section decodes section i into dst, which must hold section.BlockSize
// symbols. It returns false if the section is absent.
func (c *Chunk) Section(i int, dst []uint16) bool {
	if i < 0 || i >= section.SectionsPerChunk || c.sections[i] == nil {
		return false
	}

	endian.Uint16s(engine, dst[:section.BlockSize], c.sections[i])

	return true
}

// Sections iterates the present sections in ascending order.
//
// The yielded block is reused between iterations; callers that keep it must
// copy it.
func (c *Chunk) Sections() iter.Seq2[int, []uint16] {
	return func(yield func(int, []uint16) bool) {
		block, release := pool.GetUint16Slice(section.BlockSize)
		defer release()

		for i, raw := range c.sections {
			if raw == nil {
				continue
			}

			endian.Uint16s(engine, block, raw)
			if !yield(i, block) {
				return
			}
		}
	}
}

// Region is a parsed region container.
type Region struct {
	chunks [ChunksPerRegion]*Chunk
	size   int
}

// Parse parses a region from data. The returned region references data.
//
// Returns errs.ErrTruncatedData when data ends inside the bitmap, a chunk
// header or a section, and errs.ErrTrailingData when bytes remain after the
// last chunk.
func Parse(data []byte) (*Region, error) {
	if len(data) < BitmapSize {
		return nil, fmt.Errorf("%w: region bitmap needs %d bytes, have %d", errs.ErrTruncatedData, BitmapSize, len(data))
	}

	r := &Region{}
	off := BitmapSize

	for i := range ChunksPerRegion {
		if data[i/8]&(1<<(i%8)) == 0 {
			continue
		}

		if len(data)-off < 2 {
			return nil, fmt.Errorf("%w: chunk %d section bitmap at offset %d", errs.ErrTruncatedData, i, off)
		}

		c := &Chunk{index: i, mask: engine.Uint16(data[off:])}
		off += 2

		for s := range section.SectionsPerChunk {
			if c.mask&(1<<s) == 0 {
				continue
			}

			if len(data)-off < SectionBytes {
				return nil, fmt.Errorf("%w: chunk %d section %d at offset %d", errs.ErrTruncatedData, i, s, off)
			}
			c.sections[s] = data[off : off+SectionBytes : off+SectionBytes]
			off += SectionBytes
		}

		r.chunks[i] = c
	}

	if off != len(data) {
		return nil, fmt.Errorf("%w: %d bytes after the last chunk", errs.ErrTrailingData, len(data)-off)
	}
	r.size = off

	return r, nil
}

// Size returns the size of the region container in bytes.
func (r *Region) Size() int {
	return r.size
}

// Chunk returns the chunk at slot i.
func (r *Region) Chunk(i int) (*Chunk, bool) {
	if i < 0 || i >= ChunksPerRegion || r.chunks[i] == nil {
		return nil, false
	}

	return r.chunks[i], true
}

// ChunkCount returns the number of present chunks.
func (r *Region) ChunkCount() int {
	n := 0
	for _, c := range r.chunks {
		if c != nil {
			n++
		}
	}

	return n
}

// SectionCount returns the number of present sections over all chunks.
func (r *Region) SectionCount() int {
	n := 0
	for _, c := range r.chunks {
		if c != nil {
			n += c.SectionCount()
		}
	}

	return n
}

// Chunks iterates the present chunks in ascending slot order.
func (r *Region) Chunks() iter.Seq2[int, *Chunk] {
	return func(yield func(int, *Chunk) bool) {
		for i, c := range r.chunks {
			if c == nil {
				continue
			}

			if !yield(i, c) {
				return
			}
		}
	}
}
