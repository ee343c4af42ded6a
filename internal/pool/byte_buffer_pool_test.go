package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)

	require.NotNil(t, bb.B)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(0)

	n, err := bb.Write([]byte{0x01, 0x02})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NoError(t, bb.WriteByte(0x03))
	bb.MustWrite(nil)

	require.Equal(t, []byte{0x01, 0x02, 0x03}, bb.Bytes())
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.MustWrite([]byte("abc"))

	bb.Grow(10)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 10)
	require.Equal(t, []byte("abc"), bb.Bytes(), "grow must keep contents")

	big := NewByteBuffer(8 * FrameBufferDefaultSize)
	big.MustWrite(make([]byte, 8*FrameBufferDefaultSize))
	big.Grow(1)
	require.Equal(t, 8*FrameBufferDefaultSize+2*FrameBufferDefaultSize, big.Cap())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(32)
	bb.MustWrite([]byte("payload"))
	capBefore := bb.Cap()

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("frame"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "frame", out.String())
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")

	p.Put(nil)

	oversized := NewByteBuffer(128)
	require.Greater(t, oversized.Cap(), 64)
	p.Put(oversized)
	require.LessOrEqual(t, p.Get().Cap(), 64, "buffers over the threshold are dropped")
}

func TestDefaultPools(t *testing.T) {
	fb := GetFrameBuffer()
	require.NotNil(t, fb)
	PutFrameBuffer(fb)

	ib := GetImageBuffer()
	require.NotNil(t, ib)
	require.GreaterOrEqual(t, ib.Cap(), ImageBufferDefaultSize)
	PutImageBuffer(ib)

	cb := GetCollectionBuffer()
	require.NotNil(t, cb)
	PutCollectionBuffer(cb)
}
