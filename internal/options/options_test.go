package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type chunkConfig struct {
	level int
	name  string
}

var errNegativeLevel = errors.New("negative level")

func withLevel(level int) Option[*chunkConfig] {
	return New(func(c *chunkConfig) error {
		if level < 0 {
			return errNegativeLevel
		}
		c.level = level

		return nil
	})
}

func withName(name string) Option[*chunkConfig] {
	return NoError(func(c *chunkConfig) {
		c.name = name
	})
}

func TestApply(t *testing.T) {
	cfg := &chunkConfig{}

	err := Apply(cfg, withLevel(3), withName("opt2"), nil)
	require.NoError(t, err)
	require.Equal(t, 3, cfg.level)
	require.Equal(t, "opt2", cfg.name)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &chunkConfig{}

	err := Apply(cfg, withLevel(-1), withName("never"))
	require.ErrorIs(t, err, errNegativeLevel)
	require.Empty(t, cfg.name)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &chunkConfig{level: 7}

	require.NoError(t, Apply(cfg))
	require.Equal(t, 7, cfg.level)
}
