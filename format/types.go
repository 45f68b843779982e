package format

type (
	CompressionType uint8
	Policy          uint8
	Strategy        uint8
)

// Compression types are stored in the low nibble of the chunk frame's
// format byte, so values must stay within 0x1..0xF.
const (
	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.
	CompressionFlate  CompressionType = 0x6 // CompressionFlate represents raw DEFLATE.
	CompressionZlib   CompressionType = 0x7 // CompressionZlib represents zlib-framed DEFLATE.
	CompressionGzip   CompressionType = 0x8 // CompressionGzip represents gzip-framed DEFLATE.
	CompressionBrotli CompressionType = 0x9 // CompressionBrotli represents Brotli compression.
	CompressionBzip2  CompressionType = 0xA // CompressionBzip2 represents bzip2 compression.
)

const (
	// PolicyBaseline restricts packing widths to 4..8. Widths below 4 are
	// widened to 4 bits so the result can serve as a comparison point.
	PolicyBaseline Policy = 0x1
	// PolicyOptimized packs with the exact minimal width 0..8.
	PolicyOptimized Policy = 0x2
)

const (
	// StrategyScalar builds palettes and palettizes with plain linear scans.
	StrategyScalar Strategy = 0x1
	// StrategyVectorized uses SIMD lanes with a scalar fallback.
	StrategyVectorized Strategy = 0x2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	case CompressionFlate:
		return "Flate"
	case CompressionZlib:
		return "Zlib"
	case CompressionGzip:
		return "Gzip"
	case CompressionBrotli:
		return "Brotli"
	case CompressionBzip2:
		return "Bzip2"
	default:
		return "Unknown"
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyBaseline:
		return "Baseline"
	case PolicyOptimized:
		return "Optimized"
	default:
		return "Unknown"
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyScalar:
		return "Scalar"
	case StrategyVectorized:
		return "Vectorized"
	default:
		return "Unknown"
	}
}

// CompressionTypes returns every known compression type in ascending order.
func CompressionTypes() []CompressionType {
	return []CompressionType{
		CompressionNone,
		CompressionZstd,
		CompressionS2,
		CompressionLZ4,
		CompressionSnappy,
		CompressionFlate,
		CompressionZlib,
		CompressionGzip,
		CompressionBrotli,
		CompressionBzip2,
	}
}
