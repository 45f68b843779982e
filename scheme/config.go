package scheme

import (
	"fmt"

	"github.com/go-kit/log"

	"github.com/arloliu/voxpack/compress"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
	"github.com/arloliu/voxpack/internal/options"
)

// Config holds the settings shared by chunk encoders and decoders.
type Config struct {
	strategy    format.Strategy
	policy      format.Policy
	compression format.CompressionType
	level       int
	logger      log.Logger
	metrics     *Metrics
}

// Option configures a Config.
type Option = options.Option[*Config]

// NewConfig returns the default configuration with opts applied.
//
// The defaults are the vectorized strategy, the optimized policy and zstd at
// its default level, which is the opt2:zstd/-1 scheme.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		strategy:    format.StrategyVectorized,
		policy:      format.PolicyOptimized,
		compression: format.CompressionZstd,
		level:       compress.DefaultLevel,
		logger:      log.NewNopLogger(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Strategy returns the palette strategy.
func (c *Config) Strategy() format.Strategy { return c.strategy }

// Policy returns the packing policy.
func (c *Config) Policy() format.Policy { return c.policy }

// Compression returns the payload compression type.
func (c *Config) Compression() format.CompressionType { return c.compression }

// Level returns the compression level; compress.DefaultLevel selects the backend default.
func (c *Config) Level() int { return c.level }

// Name returns the scheme name of the configuration, see FormatName.
func (c *Config) Name() string {
	return FormatName(c.strategy, c.policy, c.compression, c.level)
}

// WithStrategy selects the palette strategy.
func WithStrategy(strategy format.Strategy) Option {
	return options.New(func(c *Config) error {
		switch strategy {
		case format.StrategyScalar, format.StrategyVectorized:
			c.strategy = strategy
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidStrategy, strategy)
		}
	})
}

// WithPolicy selects the packing policy.
func WithPolicy(policy format.Policy) Option {
	return options.New(func(c *Config) error {
		switch policy {
		case format.PolicyBaseline, format.PolicyOptimized:
			c.policy = policy
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidPolicy, policy)
		}
	})
}

// WithCompression selects the payload compression type and level.
//
// Pass compress.DefaultLevel for the backend default. Levels outside
// compress.LevelRange are rejected with errs.ErrInvalidCompressionLevel.
func WithCompression(compression format.CompressionType, level int) Option {
	return options.New(func(c *Config) error {
		if err := compress.ValidateLevel(compression, level); err != nil {
			return err
		}

		c.compression = compression
		c.level = level

		return nil
	})
}

// WithLogger sets the logger for chunk-level debug events.
func WithLogger(logger log.Logger) Option {
	return options.NoError(func(c *Config) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		c.logger = logger
	})
}

// WithMetrics records encoder activity in m. A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return options.NoError(func(c *Config) {
		c.metrics = m
	})
}
