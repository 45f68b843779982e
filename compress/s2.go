package compress

import "github.com/klauspost/compress/s2"

// S2 levels: 1 is the default fast mode, 2 is s2.EncodeBetter and 3 is s2.EncodeBest.
const (
	s2MinLevel = 1
	s2MaxLevel = 3
)

type S2Compressor struct {
	level int
}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor using the fast mode.
func NewS2Compressor() S2Compressor {
	return S2Compressor{level: s2MinLevel}
}

// NewS2CompressorLevel creates an S2 compressor for a level in 1..3.
func NewS2CompressorLevel(level int) S2Compressor {
	if level == DefaultLevel {
		level = s2MinLevel
	}

	return S2Compressor{level: level}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch c.level {
	case 2:
		return s2.EncodeBetter(nil, data), nil
	case 3:
		return s2.EncodeBest(nil, data), nil
	default:
		return s2.Encode(nil, data), nil
	}
}

// Decompress decompresses the input data using S2 decompression.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}

// DecompressBounded decodes an S2 block whose header records at most limit bytes.
func (c S2Compressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, exceeded("s2", limit)
	}

	return s2.Decode(nil, data)
}
