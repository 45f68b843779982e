package voxpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
	"github.com/arloliu/voxpack/region"
	"github.com/arloliu/voxpack/scheme"
)

// terrain returns a block layered like a small landscape: air above stone
// with a few ores.
func terrain(seed uint16) []uint16 {
	block := make([]uint16, BlockSize)
	for i := range block {
		y := i / 256
		switch {
		case y > 10:
			block[i] = 0
		case i%97 == 0:
			block[i] = 14 + seed
		default:
			block[i] = 1
		}
	}

	return block
}

func TestNewDefaultChunkEncoder(t *testing.T) {
	encoder, err := NewDefaultChunkEncoder()
	require.NoError(t, err)
	require.NotNil(t, encoder)

	cfg := encoder.Config()
	assert.Equal(t, format.StrategyVectorized, cfg.Strategy())
	assert.Equal(t, format.PolicyOptimized, cfg.Policy())
	assert.Equal(t, format.CompressionZstd, cfg.Compression())
}

func TestChunkRoundTrip(t *testing.T) {
	encoder, err := NewDefaultChunkEncoder()
	require.NoError(t, err)

	encoder.BeginChunk()
	require.NoError(t, encoder.AddSection(0, terrain(0)))
	require.NoError(t, encoder.AddSection(3, terrain(1)))
	frame, err := encoder.EndChunk()
	require.NoError(t, err)

	chunk, err := DecodeChunk(frame)
	require.NoError(t, err)

	var indices []int
	for index, block := range chunk.Sections() {
		indices = append(indices, index)
		require.Equal(t, terrain(uint16(index/3)), block)
	}
	assert.Equal(t, []int{0, 3}, indices)
}

func TestNewSchemeEncoder(t *testing.T) {
	for _, name := range []string{"vanilla", "opt1", "opt2:null", "opt2:gzip/9", "opt2:brotli/4"} {
		t.Run(name, func(t *testing.T) {
			encoder, err := NewSchemeEncoder(name, scheme.WithMetrics(nil))
			require.NoError(t, err)
			assert.Equal(t, name, encoder.Name())

			encoder.BeginChunk()
			require.NoError(t, encoder.AddSection(15, terrain(2)))
			frame, err := encoder.EndChunk()
			require.NoError(t, err)

			decoder, err := NewChunkDecoder()
			require.NoError(t, err)

			chunk, err := decoder.Decode(frame)
			require.NoError(t, err)

			block, ok := chunk.Section(15)
			require.True(t, ok)
			require.Equal(t, terrain(2), block)
		})
	}

	_, err := NewSchemeEncoder("opt9")
	require.ErrorIs(t, err, errs.ErrInvalidSchemeName)
}

func TestSectionRoundTrip(t *testing.T) {
	block := terrain(5)

	record, err := EncodeSection(block)
	require.NoError(t, err)

	// 3 palette entries need 2 bits per index.
	assert.Len(t, record, 1+3*2+BlockSize/4)

	decoded, err := DecodeSection(record)
	require.NoError(t, err)
	assert.Equal(t, block, decoded)

	_, err = EncodeSection(block[:10])
	require.ErrorIs(t, err, errs.ErrInvalidSectionSize)

	_, err = DecodeSection(record[:20])
	require.ErrorIs(t, err, errs.ErrTruncatedData)

	_, err = DecodeSection(append(record, 0x00, 0x01))
	require.ErrorIs(t, err, errs.ErrTrailingData)
}

func TestParseRegion(t *testing.T) {
	w := region.NewWriter()
	require.NoError(t, w.SetChunk(12, [][]uint16{terrain(0), nil, terrain(1)}))

	r, err := ParseRegion(w.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, r.ChunkCount())
	assert.Equal(t, 2, r.SectionCount())

	encoder, err := NewDefaultChunkEncoder()
	require.NoError(t, err)

	stats, err := encoder.EncodeRegion(r, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sections)
	assert.Equal(t, 2, stats.SectionsByWidth[2])

	_, err = ParseRegion(make([]byte, 10))
	require.ErrorIs(t, err, errs.ErrTruncatedData)
}
