package stream

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/pool"
)

// Writer emits frames into a memory buffer or an io.Writer.
type Writer struct {
	cfg     config
	buf     *pool.ByteBuffer // memory backend
	w       io.Writer        // file backend
	written int64
	header  [frameHeaderSize]byte
}

// NewWriter creates a writer backed by a pooled memory buffer. Call Release
// when the bytes are no longer needed.
//
// Parameters:
//   - opts: Byte order and allocator options
//
// Returns:
//   - *Writer: The memory writer
//   - error: An invalid option
func NewWriter(opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, buf: pool.GetFrameBuffer()}, nil
}

// NewFileWriter creates a writer that sends every frame straight to w. A write
// that transfers fewer bytes than requested fails with errs.ErrShortIO.
//
// Parameters:
//   - w: Destination, typically an *os.File or a bufio.Writer
//   - opts: Byte order options
//
// Returns:
//   - *Writer: The sequential writer
//   - error: An invalid option
func NewFileWriter(w io.Writer, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, w: w}, nil
}

// Engine returns the writer's byte order.
func (w *Writer) Engine() endian.EndianEngine {
	return w.cfg.engine
}

// IsMemory reports whether the writer is backed by a memory buffer.
func (w *Writer) IsMemory() bool {
	return w.buf != nil
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int64 {
	return w.written
}

func (w *Writer) write(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if w.buf != nil {
		w.buf.MustWrite(data)
		w.written += int64(len(data))

		return nil
	}

	n, err := w.w.Write(data)
	w.written += int64(n)
	if err != nil {
		return fmt.Errorf("%w: wrote %d of %d bytes: %w", errs.ErrShortIO, n, len(data), err)
	}
	if n != len(data) {
		return fmt.Errorf("%w: wrote %d of %d bytes", errs.ErrShortIO, n, len(data))
	}

	return nil
}

func (w *Writer) writeFrame(flag uint8, data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", errs.ErrFrameTooLarge, len(data))
	}

	w.header[0] = flag
	w.cfg.engine.PutUint32(w.header[1:], uint32(len(data))) //nolint:gosec
	if err := w.write(w.header[:]); err != nil {
		return err
	}

	return w.write(data)
}

// WriteValue emits a plain frame holding data. An empty value still carries a
// zero length.
func (w *Writer) WriteValue(data []byte) error {
	return w.writeFrame(FlagPlain, data)
}

// WritePointer emits a pointer frame holding data, or a one-byte null frame
// when data is empty.
func (w *Writer) WritePointer(data []byte) error {
	if len(data) == 0 {
		w.header[0] = FlagNull
		return w.write(w.header[:1])
	}

	return w.writeFrame(FlagPointer, data)
}

// WriteRaw emits data as is, without flag or length.
func (w *Writer) WriteRaw(data []byte) error {
	return w.write(data)
}

// Bytes returns the bytes written to a memory writer, nil for a file writer.
// The slice is invalidated by the next write or by Release.
func (w *Writer) Bytes() []byte {
	if w.buf == nil {
		return nil
	}

	return w.buf.Bytes()
}

// Flush returns a copy of the memory buffer allocated through the configured
// Allocator, or nil when nothing was written.
//
// Returns:
//   - []byte: The stream bytes, owned by the caller
//   - error: ErrNotMemoryBacked for a file writer, ErrAllocationFailed if the
//     allocator returned nil or a short buffer
func (w *Writer) Flush() ([]byte, error) {
	if w.buf == nil {
		return nil, errs.ErrNotMemoryBacked
	}
	if w.buf.Len() == 0 {
		return nil, nil
	}

	out := w.cfg.alloc(w.buf.Len())
	if len(out) < w.buf.Len() {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrAllocationFailed, w.buf.Len())
	}
	out = out[:w.buf.Len()]
	copy(out, w.buf.Bytes())

	return out, nil
}

// Release returns the memory buffer to its pool. The writer must not be used
// afterwards.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutFrameBuffer(w.buf)
		w.buf = nil
	}
}
