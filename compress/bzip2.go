package compress

import (
	"bytes"
	"fmt"

	"github.com/dsnet/compress/bzip2"

	"github.com/arloliu/voxpack/internal/pool"
)

const (
	bzip2MinLevel = bzip2.BestSpeed
	bzip2MaxLevel = bzip2.BestCompression
)

// Bzip2Compressor produces bzip2 streams with github.com/dsnet/compress.
//
// bzip2 is far slower than the other backends; it is kept as a ratio
// reference point for chunk payloads.
type Bzip2Compressor struct {
	level int
}

var _ Codec = (*Bzip2Compressor)(nil)

// NewBzip2Compressor creates a bzip2 compressor for a level in 1..9.
func NewBzip2Compressor(level int) Bzip2Compressor {
	if level == DefaultLevel {
		level = bzip2.DefaultCompression
	}

	return Bzip2Compressor{level: level}
}

// Compress compresses data into a single bzip2 stream.
func (c Bzip2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := pool.NewByteBuffer(len(data)/4 + 64)

	bw, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: c.level})
	if err != nil {
		return nil, fmt.Errorf("bzip2 writer: %w", err)
	}
	if _, err := bw.Write(data); err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("bzip2 compression failed: %w", err)
	}

	return out.Bytes(), nil
}

// Decompress decodes a bzip2 stream.
func (c Bzip2Compressor) Decompress(data []byte) ([]byte, error) {
	return c.decompress(data, unbounded)
}

// DecompressBounded decodes a bzip2 stream of at most limit bytes.
func (c Bzip2Compressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	return c.decompress(data, limit)
}

func (c Bzip2Compressor) decompress(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	br, err := bzip2.NewReader(bytes.NewReader(data), &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("bzip2 reader: %w", err)
	}

	return readAll("bzip2", br, len(data), limit)
}
