package compress

import (
	"fmt"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

// DefaultLevel selects the backend's default compression level.
const DefaultLevel = -1

// Compressor compresses a complete chunk payload.
//
// The payload is the concatenation of the section records of one chunk: a
// byte-oriented stream with long runs of repeated palette indices, which is
// what the general-purpose backends below are good at.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// The returned slice is owned by the caller unless documented otherwise
	// by the implementation. The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data and returns the original payload.
	//
	// Returns an error if data is corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)

	// DecompressBounded is Decompress for output of at most limit bytes.
	//
	// Decoding stops with errs.ErrDecompressedSizeExceeded once the output
	// would exceed limit, so input claiming a huge expansion never gets
	// materialized.
	DecompressBounded(data []byte, limit int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressInto compresses src with c and copies the result into dst.
//
// It returns the number of bytes written. When the compressed result does not
// fit, errs.ErrInsufficientCapacity is returned and dst is left untouched.
func CompressInto(c Compressor, dst, src []byte) (int, error) {
	out, err := c.Compress(src)
	if err != nil {
		return 0, err
	}

	if len(out) > len(dst) {
		return 0, fmt.Errorf("%w: compressed size %d exceeds output capacity %d",
			errs.ErrInsufficientCapacity, len(out), len(dst))
	}

	return copy(dst, out), nil
}

// exceeded reports a decompressed size past limit.
func exceeded(name string, limit int) error {
	return fmt.Errorf("%w: %s output over %d bytes", errs.ErrDecompressedSizeExceeded, name, limit)
}

// LevelRange returns the accepted compression levels of a compression type.
// DefaultLevel is accepted by every type in addition to the returned range.
func LevelRange(compressionType format.CompressionType) (lo, hi int, err error) {
	switch compressionType {
	case format.CompressionNone, format.CompressionSnappy:
		return 0, 0, nil
	case format.CompressionZstd:
		return zstdMinLevel, zstdMaxLevel, nil
	case format.CompressionS2:
		return s2MinLevel, s2MaxLevel, nil
	case format.CompressionLZ4:
		return 0, len(lz4Levels), nil
	case format.CompressionFlate, format.CompressionZlib, format.CompressionGzip:
		return deflateMinLevel, deflateMaxLevel, nil
	case format.CompressionBrotli:
		return brotliMinLevel, brotliMaxLevel, nil
	case format.CompressionBzip2:
		return bzip2MinLevel, bzip2MaxLevel, nil
	default:
		return 0, 0, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, compressionType)
	}
}

// ValidateLevel checks level against the accepted range of compressionType.
func ValidateLevel(compressionType format.CompressionType, level int) error {
	lo, hi, err := LevelRange(compressionType)
	if err != nil {
		return err
	}

	if level != DefaultLevel && (level < lo || level > hi) {
		return fmt.Errorf("%w: %s accepts %d..%d, got %d",
			errs.ErrInvalidCompressionLevel, compressionType, lo, hi, level)
	}

	return nil
}

// CreateCodec creates a Codec for the specified compression type and level.
//
// Pass DefaultLevel for the backend default. Returns
// errs.ErrInvalidCompressionType for unknown types and
// errs.ErrInvalidCompressionLevel for levels outside LevelRange.
func CreateCodec(compressionType format.CompressionType, level int) (Codec, error) {
	if err := ValidateLevel(compressionType, level); err != nil {
		return nil, err
	}

	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressorLevel(level), nil
	case format.CompressionS2:
		return NewS2CompressorLevel(level), nil
	case format.CompressionLZ4:
		return NewLZ4CompressorLevel(level), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	case format.CompressionFlate:
		return NewFlateCompressor(level), nil
	case format.CompressionZlib:
		return NewZlibCompressor(level), nil
	case format.CompressionGzip:
		return NewGzipCompressor(level), nil
	case format.CompressionBrotli:
		return NewBrotliCompressor(level), nil
	default:
		return NewBzip2Compressor(level), nil
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:   NewNoOpCompressor(),
	format.CompressionZstd:   NewZstdCompressor(),
	format.CompressionS2:     NewS2Compressor(),
	format.CompressionLZ4:    NewLZ4Compressor(),
	format.CompressionSnappy: NewSnappyCompressor(),
	format.CompressionFlate:  NewFlateCompressor(DefaultLevel),
	format.CompressionZlib:   NewZlibCompressor(DefaultLevel),
	format.CompressionGzip:   NewGzipCompressor(DefaultLevel),
	format.CompressionBrotli: NewBrotliCompressor(DefaultLevel),
	format.CompressionBzip2:  NewBzip2Compressor(DefaultLevel),
}

// GetCodec retrieves the built-in default-level Codec of a compression type.
//
// Decompression never depends on the level, so chunk decoders use GetCodec
// regardless of the level the chunk was written with.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompressionType, compressionType)
}
