package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/voxpack/compress"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		name        string
		strategy    format.Strategy
		policy      format.Policy
		compression format.CompressionType
		level       int
		canonical   string
	}{
		{"vanilla", format.StrategyScalar, format.PolicyBaseline, format.CompressionZlib, compress.DefaultLevel, "vanilla"},
		{"opt1", format.StrategyScalar, format.PolicyOptimized, format.CompressionZlib, compress.DefaultLevel, "opt1"},
		{"opt2:null", format.StrategyVectorized, format.PolicyOptimized, format.CompressionNone, compress.DefaultLevel, "opt2:null"},
		{"opt2:zstd/3", format.StrategyVectorized, format.PolicyOptimized, format.CompressionZstd, 3, "opt2:zstd/3"},
		{"opt2:zstd", format.StrategyVectorized, format.PolicyOptimized, format.CompressionZstd, compress.DefaultLevel, "opt2:zstd/-1"},
		{"opt2:brotli/0", format.StrategyVectorized, format.PolicyOptimized, format.CompressionBrotli, 0, "opt2:brotli/0"},
		{"opt2:zlib/-1", format.StrategyVectorized, format.PolicyOptimized, format.CompressionZlib, compress.DefaultLevel, "opt2:zlib/-1"},
		{"opt2:lz4/0", format.StrategyVectorized, format.PolicyOptimized, format.CompressionLZ4, 0, "opt2:lz4/0"},
		{"opt2:bzip2/9", format.StrategyVectorized, format.PolicyOptimized, format.CompressionBzip2, 9, "opt2:bzip2/9"},
		{"scalar-baseline:s2/2", format.StrategyScalar, format.PolicyBaseline, format.CompressionS2, 2, "scalar-baseline:s2/2"},
		{"vectorized-baseline:snappy", format.StrategyVectorized, format.PolicyBaseline, format.CompressionSnappy, compress.DefaultLevel, "vectorized-baseline:snappy/-1"},
		{"scalar-optimized:zlib/6", format.StrategyScalar, format.PolicyOptimized, format.CompressionZlib, 6, "scalar-optimized:zlib/6"},
		{"scalar-optimized:zlib/-1", format.StrategyScalar, format.PolicyOptimized, format.CompressionZlib, compress.DefaultLevel, "opt1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseScheme(tt.name)
			require.NoError(t, err)

			cfg, err := NewConfig(opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, cfg.Strategy())
			assert.Equal(t, tt.policy, cfg.Policy())
			assert.Equal(t, tt.compression, cfg.Compression())
			assert.Equal(t, tt.level, cfg.Level())
			assert.Equal(t, tt.canonical, cfg.Name())
		})
	}
}

func TestParseScheme_Invalid(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"", errs.ErrInvalidSchemeName},
		{"opt3", errs.ErrInvalidSchemeName},
		{"opt2", errs.ErrInvalidSchemeName},
		{"opt2:", errs.ErrInvalidSchemeName},
		{"opt2:xz/1", errs.ErrInvalidSchemeName},
		{"opt2:zstd/fast", errs.ErrInvalidSchemeName},
		{"opt2:null/0", errs.ErrInvalidSchemeName},
		{"simd-optimized:zstd/1", errs.ErrInvalidSchemeName},
		{"scalar-tight:zstd/1", errs.ErrInvalidSchemeName},
		{"scalar:zstd/1", errs.ErrInvalidSchemeName},
		{"opt2:zstd/23", errs.ErrInvalidCompressionLevel},
		{"opt2:s2/0", errs.ErrInvalidCompressionLevel},
		{"opt2:bzip2/0", errs.ErrInvalidCompressionLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScheme(tt.name)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFormatName_ParsesBack(t *testing.T) {
	for _, compression := range format.CompressionTypes() {
		lo, _, err := compress.LevelRange(compression)
		require.NoError(t, err)

		for _, strategy := range []format.Strategy{format.StrategyScalar, format.StrategyVectorized} {
			for _, policy := range []format.Policy{format.PolicyBaseline, format.PolicyOptimized} {
				for _, level := range []int{compress.DefaultLevel, lo} {
					name := FormatName(strategy, policy, compression, level)

					opts, err := ParseScheme(name)
					require.NoError(t, err, name)

					cfg, err := NewConfig(opts...)
					require.NoError(t, err, name)
					assert.Equal(t, strategy, cfg.Strategy(), name)
					assert.Equal(t, policy, cfg.Policy(), name)
					assert.Equal(t, compression, cfg.Compression(), name)
					assert.Equal(t, name, cfg.Name())
				}
			}
		}
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "opt2:zstd/-1", cfg.Name())
	assert.NotNil(t, cfg.logger)
	assert.Nil(t, cfg.metrics)

	_, err = NewConfig(WithStrategy(format.Strategy(7)))
	require.ErrorIs(t, err, errs.ErrInvalidStrategy)

	_, err = NewConfig(WithPolicy(format.Policy(0)))
	require.ErrorIs(t, err, errs.ErrInvalidPolicy)

	_, err = NewConfig(WithCompression(format.CompressionType(0xF), 0))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionType)

	_, err = NewConfig(WithCompression(format.CompressionLZ4, 10))
	require.ErrorIs(t, err, errs.ErrInvalidCompressionLevel)

	cfg, err = NewConfig(WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, cfg.logger)
}
