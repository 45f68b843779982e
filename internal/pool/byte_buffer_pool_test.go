package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	_, _ = bb.Write([]byte{1, 2})

	tail := bb.ExtendOrGrow(8)
	require.Len(t, tail, 8)
	require.Equal(t, 10, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 10)
	require.Equal(t, []byte{1, 2}, bb.Bytes()[:2], "existing content survives growth")

	tail[0] = 9
	require.Equal(t, byte(9), bb.Bytes()[2])

	bb.Truncate(3)
	require.Equal(t, []byte{1, 2, 9}, bb.Bytes())
	require.Panics(t, func() { bb.Truncate(4) })
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(0)

	bb.Grow(10)
	require.GreaterOrEqual(t, bb.Cap(), ChunkBufferDefaultSize)

	big := NewByteBuffer(8 * ChunkBufferDefaultSize)
	big.B = big.B[:big.Cap()]
	big.Grow(1)
	require.Equal(t, 8*ChunkBufferDefaultSize+2*ChunkBufferDefaultSize, big.Cap(), "large buffers grow by a quarter")

	before := bb.Cap()
	bb.Grow(1)
	require.Equal(t, before, bb.Cap(), "no growth when capacity suffices")
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.Zero(t, bb.Len())
	require.Equal(t, 16, bb.Cap())

	_, _ = bb.Write([]byte("voxel"))
	p.Put(bb)

	again := p.Get()
	require.Zero(t, again.Len(), "pooled buffers come back empty")

	p.Put(nil)
	oversized := NewByteBuffer(128)
	p.Put(oversized)
}

func TestDefaultPools(t *testing.T) {
	chunk := GetChunkBuffer()
	require.GreaterOrEqual(t, chunk.Cap(), 0)
	PutChunkBuffer(chunk)

	frame := GetFrameBuffer()
	require.Zero(t, frame.Len())
	PutFrameBuffer(frame)
}
