package scheme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/voxpack/compress"
	"github.com/arloliu/voxpack/errs"
	"github.com/arloliu/voxpack/format"
)

const (
	// NameVanilla is the baseline scheme: 4..8 bit packing, scalar palettes, zlib.
	NameVanilla = "vanilla"
	// NameOpt1 packs at the minimal width with scalar palettes and zlib.
	NameOpt1 = "opt1"
	// NameOpt2Prefix prefixes the optimized, vectorized schemes.
	NameOpt2Prefix = "opt2:"
)

var codecNames = map[format.CompressionType]string{
	format.CompressionNone:   "null",
	format.CompressionZstd:   "zstd",
	format.CompressionS2:     "s2",
	format.CompressionLZ4:    "lz4",
	format.CompressionSnappy: "snappy",
	format.CompressionFlate:  "flate",
	format.CompressionZlib:   "zlib",
	format.CompressionGzip:   "gzip",
	format.CompressionBrotli: "brotli",
	format.CompressionBzip2:  "bzip2",
}

var strategyNames = map[format.Strategy]string{
	format.StrategyScalar:     "scalar",
	format.StrategyVectorized: "vectorized",
}

var policyNames = map[format.Policy]string{
	format.PolicyBaseline:  "baseline",
	format.PolicyOptimized: "optimized",
}

// FormatName returns the scheme name of an encoder configuration.
//
// Configurations outside the vanilla, opt1 and opt2 families are named
// "<strategy>-<policy>:<codec>/<level>", for example
// "scalar-baseline:zstd/3". ParseScheme accepts every name FormatName returns.
func FormatName(strategy format.Strategy, policy format.Policy, compression format.CompressionType, level int) string {
	if strategy == format.StrategyScalar && compression == format.CompressionZlib && level == compress.DefaultLevel {
		switch policy {
		case format.PolicyBaseline:
			return NameVanilla
		case format.PolicyOptimized:
			return NameOpt1
		}
	}

	codec := codecNames[compression]
	if compression != format.CompressionNone {
		codec += "/" + strconv.Itoa(level)
	}

	if strategy == format.StrategyVectorized && policy == format.PolicyOptimized {
		return NameOpt2Prefix + codec
	}

	return strategyNames[strategy] + "-" + policyNames[policy] + ":" + codec
}

// ParseScheme returns the options that configure the named scheme.
//
// The codec level may be omitted to select the backend default, so "opt2:zstd"
// and "opt2:zstd/-1" are the same scheme. Returns errs.ErrInvalidSchemeName
// for malformed names and the WithCompression errors for levels out of range.
func ParseScheme(name string) ([]Option, error) {
	switch name {
	case NameVanilla:
		return []Option{
			WithStrategy(format.StrategyScalar),
			WithPolicy(format.PolicyBaseline),
			WithCompression(format.CompressionZlib, compress.DefaultLevel),
		}, nil
	case NameOpt1:
		return []Option{
			WithStrategy(format.StrategyScalar),
			WithPolicy(format.PolicyOptimized),
			WithCompression(format.CompressionZlib, compress.DefaultLevel),
		}, nil
	}

	family, codec, ok := strings.Cut(name, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidSchemeName, name)
	}

	strategy, policy, err := parseFamily(family)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}

	compression, level, err := parseCodec(codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}

	opts := []Option{
		WithStrategy(strategy),
		WithPolicy(policy),
		WithCompression(compression, level),
	}

	// Surface level errors here instead of at encoder construction.
	if _, err := NewConfig(opts...); err != nil {
		return nil, err
	}

	return opts, nil
}

func parseFamily(family string) (format.Strategy, format.Policy, error) {
	if family+":" == NameOpt2Prefix {
		return format.StrategyVectorized, format.PolicyOptimized, nil
	}

	s, p, ok := strings.Cut(family, "-")
	if !ok {
		return 0, 0, errs.ErrInvalidSchemeName
	}

	strategy, ok := lookup(strategyNames, s)
	if !ok {
		return 0, 0, errs.ErrInvalidSchemeName
	}

	policy, ok := lookup(policyNames, p)
	if !ok {
		return 0, 0, errs.ErrInvalidSchemeName
	}

	return strategy, policy, nil
}

func parseCodec(codec string) (format.CompressionType, int, error) {
	name, levelText, hasLevel := strings.Cut(codec, "/")

	compression, ok := lookup(codecNames, name)
	if !ok {
		return 0, 0, errs.ErrInvalidSchemeName
	}

	if !hasLevel {
		return compression, compress.DefaultLevel, nil
	}

	if compression == format.CompressionNone {
		return 0, 0, errs.ErrInvalidSchemeName
	}

	level, err := strconv.Atoi(levelText)
	if err != nil {
		return 0, 0, errs.ErrInvalidSchemeName
	}

	return compression, level, nil
}

func lookup[K comparable](names map[K]string, name string) (K, bool) {
	for k, v := range names {
		if v == name {
			return k, true
		}
	}

	var zero K

	return zero, false
}
