package section

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

var (
	allPolicies   = []format.Policy{format.PolicyBaseline, format.PolicyOptimized}
	allStrategies = []format.Strategy{format.StrategyScalar, format.StrategyVectorized}
)

// testBlock returns a block with exactly distinct symbols laid out in runs.
func testBlock(rng *rand.Rand, distinct int) []uint16 {
	symbols := make([]uint16, distinct)
	for i, v := range rng.Perm(1 << 16)[:distinct] {
		symbols[i] = uint16(v)
	}

	block := make([]uint16, BlockSize)
	for i := range block {
		if i < distinct {
			block[i] = symbols[i]
			continue
		}
		block[i] = symbols[(i/7)%distinct]
	}

	return block
}

func filled(sym uint16) []uint16 {
	block := make([]uint16, BlockSize)
	for i := range block {
		block[i] = sym
	}

	return block
}

func TestEncoder_SingleSymbolLayout(t *testing.T) {
	t.Run("optimized", func(t *testing.T) {
		enc, err := NewEncoder(format.StrategyScalar, format.PolicyOptimized)
		require.NoError(t, err)

		rec, info, err := enc.AppendRecord(nil, filled(7))
		require.NoError(t, err)
		require.Equal(t, []byte{0x00, 0x07, 0x00}, rec)
		require.Equal(t, RecordInfo{PaletteSize: 1, Width: 0, Size: 3}, info)
	})

	t.Run("baseline", func(t *testing.T) {
		enc, err := NewEncoder(format.StrategyScalar, format.PolicyBaseline)
		require.NoError(t, err)

		rec, info, err := enc.AppendRecord(nil, filled(7))
		require.NoError(t, err)
		require.Equal(t, 4, info.Width, "baseline widens to 4 bits")
		require.Len(t, rec, 1+2+BlockSize/2)
		require.Equal(t, make([]byte, BlockSize/2), rec[3:])
	})
}

func TestEncoder_TwoSymbolLayout(t *testing.T) {
	block := make([]uint16, BlockSize)
	for i := range block {
		if i%2 == 1 {
			block[i] = 0xFFFF
		} else {
			block[i] = 5
		}
	}

	enc, err := NewEncoder(format.StrategyVectorized, format.PolicyOptimized)
	require.NoError(t, err)

	rec, info, err := enc.AppendRecord(nil, block)
	require.NoError(t, err)
	require.Equal(t, 1, info.Width)
	require.Len(t, rec, 1+4+BlockSize/8)
	require.Equal(t, []byte{0x01, 0x05, 0x00, 0xFF, 0xFF}, rec[:5])
	require.Equal(t, bytes.Repeat([]byte{0b10101010}, BlockSize/8), rec[5:])
}

func TestRecord_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 22))
	distincts := []int{1, 2, 3, 4, 5, 9, 16, 17, 33, 48, 49, 64, 65, 129, 256}

	for _, policy := range allPolicies {
		for _, strategy := range allStrategies {
			t.Run(fmt.Sprintf("%s/%s", policy, strategy), func(t *testing.T) {
				enc, err := NewEncoder(strategy, policy)
				require.NoError(t, err)
				dec, err := NewDecoder(policy)
				require.NoError(t, err)

				blocks := make([][]uint16, 0, len(distincts))
				var payload []byte
				for _, distinct := range distincts {
					block := testBlock(rng, distinct)
					blocks = append(blocks, block)

					var info RecordInfo
					payload, info, err = enc.AppendRecord(payload, block)
					require.NoError(t, err)
					require.Equal(t, distinct, info.PaletteSize)
				}

				got := make([]uint16, BlockSize)
				for i, block := range blocks {
					n, err := dec.Decode(payload, got)
					require.NoError(t, err, "block %d", i)
					require.Equal(t, block, got, "block %d", i)
					payload = payload[n:]
				}
				require.Empty(t, payload)
			})
		}
	}
}

func TestRecord_SizesByPolicy(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	block := testBlock(rng, 3)

	sizes := make(map[format.Policy]int)
	for _, policy := range allPolicies {
		enc, err := NewEncoder(format.StrategyScalar, policy)
		require.NoError(t, err)

		_, info, err := enc.AppendRecord(nil, block)
		require.NoError(t, err)
		sizes[policy] = info.Size
	}

	require.Equal(t, 1+6+BlockSize/4, sizes[format.PolicyOptimized])
	require.Equal(t, 1+6+BlockSize/2, sizes[format.PolicyBaseline])
}

func TestEncoder_Errors(t *testing.T) {
	enc, err := NewEncoder(format.StrategyScalar, format.PolicyOptimized)
	require.NoError(t, err)

	t.Run("short block", func(t *testing.T) {
		_, _, err := enc.AppendRecord(nil, make([]uint16, BlockSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidSectionSize)
	})

	t.Run("palette overflow", func(t *testing.T) {
		block := make([]uint16, BlockSize)
		for i := range block {
			block[i] = uint16(i % 257)
		}

		rec, _, err := enc.AppendRecord([]byte{0xAA}, block)
		require.ErrorIs(t, err, errs.ErrPaletteOverflow)
		require.Equal(t, []byte{0xAA}, rec, "existing content survives a failed append")
	})

	t.Run("insufficient capacity", func(t *testing.T) {
		dst := bytes.Repeat([]byte{0xEE}, 10)
		_, err := enc.EncodeInto(dst, testBlock(rand.New(rand.NewPCG(1, 1)), 2))
		require.ErrorIs(t, err, errs.ErrInsufficientCapacity)
		require.Equal(t, bytes.Repeat([]byte{0xEE}, 10), dst)
	})
}

func TestNewEncoder_InvalidConfig(t *testing.T) {
	_, err := NewEncoder(format.Strategy(0), format.PolicyOptimized)
	require.ErrorIs(t, err, errs.ErrInvalidStrategy)

	_, err = NewEncoder(format.StrategyScalar, format.Policy(7))
	require.ErrorIs(t, err, errs.ErrInvalidPolicy)

	_, err = NewDecoder(format.Policy(0))
	require.ErrorIs(t, err, errs.ErrInvalidPolicy)
}

func TestDecoder_Errors(t *testing.T) {
	dec, err := NewDecoder(format.PolicyOptimized)
	require.NoError(t, err)
	dst := make([]uint16, BlockSize)

	t.Run("wrong destination size", func(t *testing.T) {
		_, err := dec.Decode([]byte{0, 1, 0}, make([]uint16, 10))
		require.ErrorIs(t, err, errs.ErrInvalidSectionSize)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := dec.Decode(nil, dst)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("short palette", func(t *testing.T) {
		_, err := dec.Decode([]byte{2, 1, 0, 2, 0}, dst)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("short indices", func(t *testing.T) {
		rec := append([]byte{1, 1, 0, 2, 0}, make([]byte, BlockSize/8-1)...)
		_, err := dec.Decode(rec, dst)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("index out of range", func(t *testing.T) {
		// Three entries pack at 2 bits; 0b11 addresses a fourth entry.
		rec := append([]byte{2, 1, 0, 2, 0, 3, 0}, bytes.Repeat([]byte{0xFF}, BlockSize/4)...)
		_, err := dec.Decode(rec, dst)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})
}

func BenchmarkEncoder(b *testing.B) {
	rng := rand.New(rand.NewPCG(8, 8))
	block := testBlock(rng, 24)
	buf := make([]byte, MaxRecordSize)

	for _, strategy := range allStrategies {
		enc, err := NewEncoder(strategy, format.PolicyOptimized)
		require.NoError(b, err)

		b.Run(strategy.String(), func(b *testing.B) {
			b.SetBytes(BlockSize * 2)
			for b.Loop() {
				if _, err := enc.EncodeInto(buf, block); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
