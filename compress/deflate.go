package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/arloliu/voxpack/internal/pool"
)

const (
	deflateMinLevel = flate.NoCompression
	deflateMaxLevel = flate.BestCompression
)

// deflateFraming selects the container around the DEFLATE stream.
type deflateFraming uint8

const (
	framingRaw deflateFraming = iota
	framingZlib
	framingGzip
)

func (f deflateFraming) String() string {
	switch f {
	case framingZlib:
		return "zlib"
	case framingGzip:
		return "gzip"
	default:
		return "flate"
	}
}

// resetWriter is a compressing writer that can be retargeted and reused.
type resetWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// DeflateCompressor produces raw DEFLATE, zlib or gzip streams with
// github.com/klauspost/compress. Writers are pooled per compressor.
type DeflateCompressor struct {
	framing deflateFraming
	level   int
	writers *sync.Pool
}

var _ Codec = (*DeflateCompressor)(nil)

// NewFlateCompressor creates a raw DEFLATE compressor for a level in 0..9.
func NewFlateCompressor(level int) *DeflateCompressor {
	return newDeflateCompressor(framingRaw, level)
}

// NewZlibCompressor creates a zlib compressor for a level in 0..9.
func NewZlibCompressor(level int) *DeflateCompressor {
	return newDeflateCompressor(framingZlib, level)
}

// NewGzipCompressor creates a gzip compressor for a level in 0..9.
func NewGzipCompressor(level int) *DeflateCompressor {
	return newDeflateCompressor(framingGzip, level)
}

func newDeflateCompressor(framing deflateFraming, level int) *DeflateCompressor {
	return &DeflateCompressor{framing: framing, level: level, writers: &sync.Pool{}}
}

func (c *DeflateCompressor) newWriter(w io.Writer) (resetWriter, error) {
	switch c.framing {
	case framingZlib:
		return zlib.NewWriterLevel(w, c.level)
	case framingGzip:
		return gzip.NewWriterLevel(w, c.level)
	default:
		return flate.NewWriter(w, c.level)
	}
}

// Compress compresses data into a single stream.
func (c *DeflateCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := pool.NewByteBuffer(len(data)/4 + 64)

	zw, ok := c.writers.Get().(resetWriter)
	if ok {
		zw.Reset(out)
	} else {
		var err error
		if zw, err = c.newWriter(out); err != nil {
			return nil, fmt.Errorf("%s writer: %w", c.framing, err)
		}
	}

	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("%s compression failed: %w", c.framing, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%s compression failed: %w", c.framing, err)
	}
	c.writers.Put(zw)

	return out.Bytes(), nil
}

// Decompress decodes a stream produced by Compress.
func (c *DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	return c.decompress(data, unbounded)
}

// DecompressBounded decodes a stream of at most limit bytes.
func (c *DeflateCompressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	return c.decompress(data, limit)
}

func (c *DeflateCompressor) decompress(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var (
		zr  io.ReadCloser
		err error
	)
	src := bytes.NewReader(data)
	switch c.framing {
	case framingZlib:
		zr, err = zlib.NewReader(src)
	case framingGzip:
		zr, err = gzip.NewReader(src)
	default:
		zr = flate.NewReader(src)
	}
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", c.framing, err)
	}

	return readAll(c.framing.String(), zr, len(data), limit)
}

// unbounded disables the output limit of readAll.
const unbounded = -1

// readAll drains and closes a decompressing reader. With a limit of zero or
// more, at most limit+1 bytes are read and errs.ErrDecompressedSizeExceeded is
// returned if the stream holds more than limit.
func readAll(name string, r io.ReadCloser, compressedSize, limit int) ([]byte, error) {
	defer r.Close()

	size := compressedSize * 4
	src := io.Reader(r)
	if limit >= 0 {
		size = min(size, limit+1)
		src = io.LimitReader(r, int64(limit)+1)
	}

	out := pool.NewByteBuffer(size)
	if _, err := io.Copy(out, src); err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", name, err)
	}

	if limit >= 0 && out.Len() > limit {
		return nil, exceeded(name, limit)
	}

	return out.Bytes(), nil
}
