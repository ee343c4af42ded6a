// Package pool provides reusable byte buffers for the in-memory stream writer
// and the collection persistence layer.
package pool

import (
	"io"
	"sync"
)

const (
	FrameBufferDefaultSize       = 1024 * 4         // 4KiB, one small object container
	FrameBufferMaxThreshold      = 1024 * 256       // 256KiB
	ImageBufferDefaultSize       = 1024 * 16        // 16KiB
	ImageBufferMaxThreshold      = 1024 * 1024 * 4  // 4MiB
	CollectionBufferDefaultSize  = 1024 * 64        // 64KiB
	CollectionBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is an append-only byte slice with a growth policy tuned for
// many small frame writes.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite appends data, growing the buffer if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.Grow(1)
	bb.B = append(bb.B, c)

	return nil
}

// Grow makes room for requiredBytes more bytes.
//
// Small buffers grow by FrameBufferDefaultSize, buffers above four times that
// grow by a quarter of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := FrameBufferDefaultSize
	if cap(bb.B) > 4*FrameBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write implements io.Writer.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)
	return len(data), nil
}

// WriteTo implements io.WriterTo.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool recycles ByteBuffers, dropping buffers that grew beyond
// maxThreshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with defaultSize capacity.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if bbp.maxThreshold > 0 && bb.Cap() > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	frameDefaultPool      = NewByteBufferPool(FrameBufferDefaultSize, FrameBufferMaxThreshold)
	imageDefaultPool      = NewByteBufferPool(ImageBufferDefaultSize, ImageBufferMaxThreshold)
	collectionDefaultPool = NewByteBufferPool(CollectionBufferDefaultSize, CollectionBufferMaxThreshold)
)

// GetFrameBuffer retrieves a buffer for a memory-backed stream writer.
func GetFrameBuffer() *ByteBuffer {
	return frameDefaultPool.Get()
}

// PutFrameBuffer returns a frame buffer to its pool.
func PutFrameBuffer(bb *ByteBuffer) {
	frameDefaultPool.Put(bb)
}

// GetImageBuffer retrieves a buffer for writing an object container image.
func GetImageBuffer() *ByteBuffer {
	return imageDefaultPool.Get()
}

// PutImageBuffer returns an image buffer to its pool.
func PutImageBuffer(bb *ByteBuffer) {
	imageDefaultPool.Put(bb)
}

// GetCollectionBuffer retrieves a buffer for assembling a persisted collection.
func GetCollectionBuffer() *ByteBuffer {
	return collectionDefaultPool.Get()
}

// PutCollectionBuffer returns a collection buffer to its pool.
func PutCollectionBuffer(bb *ByteBuffer) {
	collectionDefaultPool.Put(bb)
}
