package scheme

import (
	"time"

	"github.com/arloliu/voxpack/bitpack"
)

// Stats accumulates encoding statistics over chunks and regions.
type Stats struct {
	// Chunks is the number of chunk frames produced.
	Chunks int
	// Sections is the number of sections encoded.
	Sections int
	// SectionsByWidth counts sections by the index width they were packed
	// with. Under the baseline policy only widths 4..8 occur.
	SectionsByWidth [bitpack.MaxWidth + 1]int
	// SectionsByPaletteBits counts sections by the minimal index width of
	// their palette, independent of the policy.
	SectionsByPaletteBits [bitpack.MaxWidth + 1]int
	// RawBytes is the size of the encoded sections as plain uint16 arrays.
	RawBytes int64
	// PackedBytes is the total size of the uncompressed chunk payloads.
	PackedBytes int64
	// FrameBytes is the total size of the chunk frames, headers included.
	FrameBytes int64
	// Duration is the time spent encoding.
	Duration time.Duration
}

// Ratio returns RawBytes divided by FrameBytes, or 0 when nothing was encoded.
func (s *Stats) Ratio() float64 {
	if s.FrameBytes == 0 {
		return 0
	}

	return float64(s.RawBytes) / float64(s.FrameBytes)
}

// BitsPerSymbol returns the average number of frame bits spent per encoded symbol.
func (s *Stats) BitsPerSymbol() float64 {
	if s.RawBytes == 0 {
		return 0
	}

	return float64(s.FrameBytes*8) / float64(s.RawBytes/2)
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Chunks += o.Chunks
	s.Sections += o.Sections
	for i := range s.SectionsByWidth {
		s.SectionsByWidth[i] += o.SectionsByWidth[i]
		s.SectionsByPaletteBits[i] += o.SectionsByPaletteBits[i]
	}
	s.RawBytes += o.RawBytes
	s.PackedBytes += o.PackedBytes
	s.FrameBytes += o.FrameBytes
	s.Duration += o.Duration
}
