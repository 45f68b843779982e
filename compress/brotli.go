package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/andybalholm/brotli"

	"github.com/arloliu/voxpack/internal/pool"
)

const (
	brotliMinLevel = brotli.BestSpeed
	brotliMaxLevel = brotli.BestCompression
)

// BrotliCompressor produces Brotli streams with github.com/andybalholm/brotli.
type BrotliCompressor struct {
	level   int
	writers *sync.Pool
}

var _ Codec = (*BrotliCompressor)(nil)

// NewBrotliCompressor creates a Brotli compressor for a level in 0..11.
func NewBrotliCompressor(level int) *BrotliCompressor {
	if level == DefaultLevel {
		level = brotli.DefaultCompression
	}

	return &BrotliCompressor{level: level, writers: &sync.Pool{}}
}

// Compress compresses data into a single Brotli stream.
func (c *BrotliCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := pool.NewByteBuffer(len(data)/4 + 64)

	bw, ok := c.writers.Get().(*brotli.Writer)
	if ok {
		bw.Reset(out)
	} else {
		bw = brotli.NewWriterLevel(out, c.level)
	}

	if _, err := bw.Write(data); err != nil {
		return nil, fmt.Errorf("brotli compression failed: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("brotli compression failed: %w", err)
	}
	c.writers.Put(bw)

	return out.Bytes(), nil
}

// Decompress decodes a Brotli stream.
func (c *BrotliCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readAll("brotli", io.NopCloser(brotli.NewReader(bytes.NewReader(data))), len(data), unbounded)
}

// DecompressBounded decodes a Brotli stream of at most limit bytes.
func (c *BrotliCompressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return readAll("brotli", io.NopCloser(brotli.NewReader(bytes.NewReader(data))), len(data), limit)
}
