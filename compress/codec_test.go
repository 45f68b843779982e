package compress

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

// packedLikePayload mimics a chunk payload: short palettes followed by long
// runs of small packed indices.
func packedLikePayload(size int) []byte {
	rng := rand.New(rand.NewPCG(uint64(size), 17))
	data := make([]byte, size)
	for i := 0; i < size; {
		run := 1 + rng.IntN(64)
		v := byte(rng.IntN(16))
		for j := 0; j < run && i < size; j++ {
			data[i] = v
			i++
		}
	}

	return data
}

func allCodecs(t testing.TB) map[string]Codec {
	codecs := make(map[string]Codec)
	for _, ct := range format.CompressionTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		codecs[ct.String()] = codec
	}

	return codecs
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	sizes := []int{1, 37, 4096, 74 * 1024}

	for name, codec := range allCodecs(t) {
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				data := packedLikePayload(size)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, decompressed)
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_DecompressBounded(t *testing.T) {
	for _, size := range []int{4096, 2 << 20} {
		data := packedLikePayload(size)

		for name, codec := range allCodecs(t) {
			t.Run(fmt.Sprintf("%s/%d", name, size), func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				decompressed, err := codec.DecompressBounded(compressed, size)
				require.NoError(t, err)
				require.Equal(t, data, decompressed)

				_, err = codec.DecompressBounded(compressed, size-1)
				require.ErrorIs(t, err, errs.ErrDecompressedSizeExceeded)

				_, err = codec.DecompressBounded(compressed, 16)
				require.ErrorIs(t, err, errs.ErrDecompressedSizeExceeded)
			})
		}
	}

	for name, codec := range allCodecs(t) {
		t.Run(name+"/empty", func(t *testing.T) {
			decompressed, err := codec.DecompressBounded(nil, 0)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_Compresses(t *testing.T) {
	data := packedLikePayload(64 * 1024)

	for name, codec := range allCodecs(t) {
		if name == format.CompressionNone.String() {
			continue
		}

		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data)/2)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0x03, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	for name, codec := range allCodecs(t) {
		if name == format.CompressionNone.String() {
			continue
		}

		t.Run(name, func(t *testing.T) {
			_, err := codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := packedLikePayload(16 * 1024)

	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			failures := make(chan error, 8)

			for range 8 {
				wg.Go(func() {
					for range 10 {
						compressed, err := codec.Compress(data)
						if err != nil {
							failures <- err
							return
						}

						decompressed, err := codec.Decompress(compressed)
						if err != nil {
							failures <- err
							return
						}

						if !bytes.Equal(data, decompressed) {
							failures <- fmt.Errorf("round trip mismatch")
							return
						}
					}
				})
			}
			wg.Wait()
			close(failures)

			for err := range failures {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateCodec_Levels(t *testing.T) {
	data := packedLikePayload(32 * 1024)

	for _, ct := range format.CompressionTypes() {
		lo, hi, err := LevelRange(ct)
		require.NoError(t, err)

		for _, level := range []int{DefaultLevel, lo, hi} {
			t.Run(fmt.Sprintf("%s/%d", ct, level), func(t *testing.T) {
				codec, err := CreateCodec(ct, level)
				require.NoError(t, err)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				// Decompression is level independent.
				decoder, err := GetCodec(ct)
				require.NoError(t, err)

				decompressed, err := decoder.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, decompressed)
			})
		}
	}
}

func TestCreateCodec_Errors(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0), DefaultLevel)
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)

	_, err = CreateCodec(format.CompressionType(0xF), DefaultLevel)
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)

	tests := []struct {
		ct    format.CompressionType
		level int
	}{
		{format.CompressionZstd, 23},
		{format.CompressionS2, 0},
		{format.CompressionLZ4, 10},
		{format.CompressionZlib, 10},
		{format.CompressionBrotli, 12},
		{format.CompressionBzip2, 0},
		{format.CompressionSnappy, 1},
		{format.CompressionNone, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%d", tt.ct, tt.level), func(t *testing.T) {
			_, err := CreateCodec(tt.ct, tt.level)
			require.ErrorIs(t, err, errs.ErrInvalidCompressionLevel)
		})
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)
}

func TestCompressInto(t *testing.T) {
	data := packedLikePayload(8 * 1024)
	codec := NewZstdCompressor()

	expected, err := codec.Compress(data)
	require.NoError(t, err)

	t.Run("fits", func(t *testing.T) {
		dst := make([]byte, len(expected)+10)
		n, err := CompressInto(codec, dst, data)
		require.NoError(t, err)
		require.Equal(t, expected, dst[:n])
	})

	t.Run("exact fit", func(t *testing.T) {
		dst := make([]byte, len(expected))
		n, err := CompressInto(codec, dst, data)
		require.NoError(t, err)
		require.Equal(t, len(expected), n)
	})

	t.Run("too small", func(t *testing.T) {
		dst := bytes.Repeat([]byte{0xAB}, len(expected)-1)
		n, err := CompressInto(codec, dst, data)
		require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
		require.Zero(t, n)
		require.Equal(t, bytes.Repeat([]byte{0xAB}, len(expected)-1), dst, "nothing is written on a capacity error")
	})

	t.Run("null codec needs the input size", func(t *testing.T) {
		_, err := CompressInto(NewNoOpCompressor(), make([]byte, len(data)-1), data)
		require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
	})
}
