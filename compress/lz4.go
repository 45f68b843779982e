package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4Levels maps levels 1..9 to the high-compression modes; level 0 is the
// fast block compressor.
var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains a hash table that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor uses the LZ4 block format.
type LZ4Compressor struct {
	level int
}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor using the fast mode.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// NewLZ4CompressorLevel creates an LZ4 compressor. Level 0 is the fast mode,
// levels 1..9 use the high-compression block compressor.
func NewLZ4CompressorLevel(level int) LZ4Compressor {
	return LZ4Compressor{level: max(level, 0)}
}

// Compress compresses the input data as one LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	var (
		n   int
		err error
	)
	if c.level > 0 {
		hc := lz4.CompressorHC{Level: lz4Levels[c.level-1]}
		n, err = hc.CompressBlock(data, dst)
	} else {
		lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
		n, err = lc.CompressBlock(data, dst)
		lz4CompressorPool.Put(lc)
	}
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// LZ4 sequences expand at most 255 bytes of output per input byte.
const (
	lz4MaxRatio            = 256
	lz4MaxDecompressedSize = 128 * 1024 * 1024
)

// Decompress decodes one LZ4 block.
//
// The block format does not record the decompressed size, so the output
// buffer starts at 4x the input and doubles on ErrInvalidSourceShortBuffer up
// to the largest size the input could possibly expand to.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	limit := min(len(data)*lz4MaxRatio, lz4MaxDecompressedSize)
	bufSize := min(len(data)*4, limit)

	for {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}

		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || bufSize >= limit {
			return nil, err
		}
		bufSize = min(bufSize*2, limit)
	}
}

// DecompressBounded decodes one LZ4 block into a buffer of limit bytes.
func (c LZ4Compressor) DecompressBounded(data []byte, limit int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	buf := make([]byte, limit)
	n, err := lz4.UncompressBlock(data, buf)
	if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
		return nil, exceeded("lz4", limit)
	}
	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}
