//go:build !gozstd || !cgo

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse.
// The klauspost decoder operates without allocations after a warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// zstdBoundedMemory is the decoded size cap of the pooled bounded decoders.
// Larger limits get a dedicated decoder.
const zstdBoundedMemory = 1 << 20

// zstdBoundedDecoderPool pools decoders that refuse to produce more than
// zstdBoundedMemory bytes per DecodeAll.
var zstdBoundedDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := newBoundedZstdDecoder(zstdBoundedMemory)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

func newBoundedZstdDecoder(maxMemory int) (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
		zstd.WithDecoderMaxMemory(uint64(maxMemory)), //nolint:gosec
	)
}

// zstdEncoderPools holds one encoder pool per klauspost speed level. The
// zstd levels 0..22 collapse onto these four.
var zstdEncoderPools = func() map[zstd.EncoderLevel]*sync.Pool {
	levels := []zstd.EncoderLevel{
		zstd.SpeedFastest, zstd.SpeedDefault, zstd.SpeedBetterCompression, zstd.SpeedBestCompression,
	}

	pools := make(map[zstd.EncoderLevel]*sync.Pool, len(levels))
	for _, level := range levels {
		pools[level] = &sync.Pool{
			New: func() any {
				encoder, err := zstd.NewWriter(nil,
					zstd.WithEncoderLevel(level),
					zstd.WithEncoderCRC(false),
				)
				if err != nil {
					panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
				}

				return encoder
			},
		}
	}

	return pools
}()

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	p := zstdEncoderPools[zstd.EncoderLevelFromZstd(c.level)]
	encoder, _ := p.Get().(*zstd.Encoder)
	defer p.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decompresses Zstd-compressed data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return decompressed, nil
}

// DecompressBounded decompresses Zstd data of at most limit bytes.
//
// The decoder stops as soon as the declared or decoded size passes its
// memory cap, so oversized frames are rejected without inflating them.
func (c ZstdCompressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var decoder *zstd.Decoder
	if limit > zstdBoundedMemory {
		d, err := newBoundedZstdDecoder(limit)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer d.Close()
		decoder = d
	} else {
		decoder, _ = zstdBoundedDecoderPool.Get().(*zstd.Decoder)
		defer zstdBoundedDecoderPool.Put(decoder)
	}

	decompressed, err := decoder.DecodeAll(data, make([]byte, 0, limit))
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, exceeded("zstd", limit)
	}
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	if len(decompressed) > limit {
		return nil, exceeded("zstd", limit)
	}

	return decompressed, nil
}
