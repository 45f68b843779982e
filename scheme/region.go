package scheme

import (
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/arloliu/voxpack/region"
)

// FrameSink receives the frame of every chunk encoded by EncodeRegion.
// The frame is owned by the sink.
type FrameSink func(slot int, frame []byte) error

// EncodeRegion encodes every present chunk of r, in ascending slot order, and
// passes each frame to sink. A nil sink discards the frames.
//
// The returned Stats cover this region only; they are also added to the
// encoder's cumulative Stats. Encoding stops at the first error, which is
// returned together with the statistics of the chunks completed before it.
func (e *ChunkEncoder) EncodeRegion(r *region.Region, sink FrameSink) (Stats, error) {
	var stats Stats

	for slot, chunk := range r.Chunks() {
		e.BeginChunk()

		for i, block := range chunk.Sections() {
			if err := e.AddSection(i, block); err != nil {
				return stats, fmt.Errorf("chunk %d: %w", slot, err)
			}
		}

		frame, err := e.EndChunk()
		if err != nil {
			return stats, fmt.Errorf("chunk %d: %w", slot, err)
		}
		stats.Add(e.chunk)

		if sink != nil {
			if err := sink(slot, frame); err != nil {
				return stats, err
			}
		}
	}

	level.Debug(e.logger).Log(
		"msg", "encoded region",
		"chunks", stats.Chunks,
		"sections", stats.Sections,
		"raw_bytes", stats.RawBytes,
		"frame_bytes", stats.FrameBytes,
	)

	return stats, nil
}
