package compress

// Zstd levels follow the reference zstd scale; 0 and DefaultLevel select 3.
const (
	zstdMinLevel     = 0
	zstdMaxLevel     = 22
	zstdDefaultLevel = 3
)

// ZstdCompressor uses Zstandard frames.
//
// The default build uses the pure Go github.com/klauspost/compress/zstd
// implementation with pooled encoders and decoders. Building with the
// "gozstd" tag and cgo enabled switches to github.com/valyala/gozstd, which
// binds the reference C library.
type ZstdCompressor struct {
	level int
}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with the default level.
//
// Example:
//
//	codec := NewZstdCompressor()
//	compressed, err := codec.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{level: zstdDefaultLevel}
}

// NewZstdCompressorLevel creates a Zstd compressor for a level in 0..22.
func NewZstdCompressorLevel(level int) ZstdCompressor {
	if level <= 0 {
		level = zstdDefaultLevel
	}

	return ZstdCompressor{level: level}
}
