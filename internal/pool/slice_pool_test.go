package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUint16Slice(t *testing.T) {
	s, cleanup := GetUint16Slice(BlockSize)
	require.Len(t, s, BlockSize)
	s[BlockSize-1] = 0xFFFF
	cleanup()

	small, cleanup := GetUint16Slice(10)
	require.Len(t, small, 10)
	cleanup()

	large, cleanup := GetUint16Slice(2 * BlockSize)
	defer cleanup()
	require.Len(t, large, 2*BlockSize)
}
