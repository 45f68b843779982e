package region

import (
	"fmt"

	"github.com/arloliu/voxpack/endian"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/section"
)

// Writer assembles region container bytes.
//
// Chunks may be set in any order; Bytes lays them out by slot.
type Writer struct {
	chunks [ChunksPerRegion][]byte
}

// NewWriter creates an empty region writer.
func NewWriter() *Writer {
	return &Writer{}
}

// SetChunk stores chunk slot i with the given sections. sections[s] == nil
// marks section s absent; every other entry must hold section.BlockSize
// symbols. The sections are copied.
//
// Returns errs.ErrTooManyChunks for a slot outside the region,
// errs.ErrTooManySections for more than 16 sections and
// errs.ErrInvalidSectionSize for a malformed section.
func (w *Writer) SetChunk(i int, sections [][]uint16) error {
	if i < 0 || i >= ChunksPerRegion {
		return fmt.Errorf("%w: slot %d", errs.ErrTooManyChunks, i)
	}

	if len(sections) > section.SectionsPerChunk {
		return fmt.Errorf("%w: %d sections", errs.ErrTooManySections, len(sections))
	}

	var mask uint16
	size := 2
	for s, block := range sections {
		if block == nil {
			continue
		}

		if len(block) != section.BlockSize {
			return fmt.Errorf("%w: chunk %d section %d has %d symbols", errs.ErrInvalidSectionSize, i, s, len(block))
		}
		mask |= 1 << s
		size += SectionBytes
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint16(buf, mask)
	for _, block := range sections {
		if block != nil {
			buf = endian.AppendUint16s(engine, buf, block)
		}
	}
	w.chunks[i] = buf

	return nil
}

// RemoveChunk clears chunk slot i.
func (w *Writer) RemoveChunk(i int) {
	if i >= 0 && i < ChunksPerRegion {
		w.chunks[i] = nil
	}
}

// Bytes returns the region container.
func (w *Writer) Bytes() []byte {
	size := BitmapSize
	for _, c := range w.chunks {
		size += len(c)
	}

	out := make([]byte, BitmapSize, size)
	for i, c := range w.chunks {
		if c == nil {
			continue
		}

		out[i/8] |= 1 << (i % 8)
		out = append(out, c...)
	}

	return out
}
