package compress

// NoOpCompressor passes data through unchanged.
//
// It is the "null" backend: the chunk payload is stored as packed, which
// makes it the reference point for measuring what the other backends add.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressBounded returns data itself when it fits within limit.
func (c NoOpCompressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) > limit {
		return nil, exceeded("null", limit)
	}

	return data, nil
}
