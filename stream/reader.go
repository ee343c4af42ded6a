package stream

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/logging"
)

// Reader consumes frames from an io.Reader, a byte slice or a memory-mapped
// file.
type Reader struct {
	cfg    config
	src    *bufio.Reader // file backend
	data   []byte        // memory backend
	pos    int
	offset int64

	file *os.File
	mm   mmap.MMap
}

// NewReader creates a reader over a sequential source. Pointer values are
// always owned copies.
//
// Parameters:
//   - r: Source, typically an *os.File
//   - opts: Byte order, allocator and frame size options
//
// Returns:
//   - *Reader: The sequential reader
//   - error: An invalid option
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.mapping = false

	return &Reader{cfg: cfg, src: bufio.NewReader(r)}, nil
}

// NewBytesReader creates a reader over buf. With WithMapping(true) pointer
// values borrow from buf, which must then outlive them.
//
// Parameters:
//   - buf: Stream bytes
//   - opts: Mapping, byte order, allocator and frame size options
//
// Returns:
//   - *Reader: The memory reader
//   - error: An invalid option
func NewBytesReader(buf []byte, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Reader{cfg: cfg, data: buf}, nil
}

// OpenMapped maps the file at path read-only and returns a mapping reader over
// it. Every pointer value borrows from the mapping, so values must be cloned
// before Close.
//
// Parameters:
//   - path: File to map
//   - opts: Byte order and frame size options
//
// Returns:
//   - *Reader: The mapping reader; call Close to unmap
//   - error: Open, stat or mmap failure
func OpenMapped(path string, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	cfg.mapping = true

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r := &Reader{cfg: cfg, file: f}
	if info.Size() == 0 {
		// mmap rejects empty files
		return r, nil
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	r.mm = mm
	r.data = mm

	logging.Logger().Debug("mapped stream file",
		zap.String("path", path),
		zap.Int64("size", info.Size()))

	return r, nil
}

// Close unmaps and closes the file behind a reader created by OpenMapped. It
// is a no-op for other readers. Borrowed values are invalid afterwards.
func (r *Reader) Close() error {
	var err error
	if r.mm != nil {
		err = multierr.Append(err, r.mm.Unmap())
		r.mm = nil
	}
	if r.file != nil {
		err = multierr.Append(err, r.file.Close())
		r.file = nil
	}
	r.data = nil
	r.pos = 0

	return err
}

// Engine returns the reader's byte order.
func (r *Reader) Engine() endian.EndianEngine {
	return r.cfg.engine
}

// IsMapping reports whether pointer values borrow from the source.
func (r *Reader) IsMapping() bool {
	return r.cfg.mapping && r.src == nil
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// EOF reports whether the source is exhausted.
func (r *Reader) EOF() bool {
	if r.src != nil {
		_, err := r.src.Peek(1)
		return err != nil
	}

	return r.pos >= len(r.data)
}

// remaining returns the number of unread bytes of a memory source, or -1 for
// a sequential source.
func (r *Reader) remaining() int {
	if r.src != nil {
		return -1
	}

	return len(r.data) - r.pos
}

func (r *Reader) readFull(dst []byte) error {
	if len(dst) == 0 {
		return nil
	}

	if r.src != nil {
		n, err := io.ReadFull(r.src, dst)
		r.offset += int64(n)
		if err != nil {
			return fmt.Errorf("%w: read %d of %d bytes: %w", errs.ErrShortIO, n, len(dst), err)
		}

		return nil
	}

	if len(dst) > r.remaining() {
		return fmt.Errorf("%w: need %d bytes, %d left", errs.ErrShortIO, len(dst), r.remaining())
	}
	copy(dst, r.data[r.pos:])
	r.pos += len(dst)
	r.offset += int64(len(dst))

	return nil
}

// borrow returns the next n source bytes without copying.
func (r *Reader) borrow(n int) ([]byte, error) {
	if n > r.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, %d left", errs.ErrShortIO, n, r.remaining())
	}
	view := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	r.offset += int64(n)

	return view, nil
}

func (r *Reader) readFlag() (uint8, error) {
	var b [1]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}
	if err := checkFlag(b[0]); err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) readLength() (int, error) {
	var b [4]byte
	if err := r.readFull(b[:]); err != nil {
		return 0, err
	}

	n := int64(r.cfg.engine.Uint32(b[:]))
	if n > int64(r.cfg.maxFrameSize) {
		return 0, fmt.Errorf("%w: %d > %d", errs.ErrFrameTooLarge, n, r.cfg.maxFrameSize)
	}
	if rem := r.remaining(); rem >= 0 && n > int64(rem) {
		return 0, fmt.Errorf("%w: frame of %d bytes, %d left", errs.ErrShortIO, n, rem)
	}

	return int(n), nil
}

// ReadValue decodes a plain frame into dst and returns its length.
//
// Parameters:
//   - dst: Destination, at least as long as the frame
//
// Returns:
//   - int: Number of bytes copied into dst
//   - error: ErrUnexpectedFrame for a pointer or null frame, ErrFrameTooLarge
//     when dst is too small, ErrShortIO on truncated input
func (r *Reader) ReadValue(dst []byte) (int, error) {
	flag, err := r.readFlag()
	if err != nil {
		return 0, err
	}
	if flag != FlagPlain {
		return 0, fmt.Errorf("%w: flag %d, want plain value", errs.ErrUnexpectedFrame, flag)
	}

	n, err := r.readLength()
	if err != nil {
		return 0, err
	}
	if n > len(dst) {
		return 0, fmt.Errorf("%w: %d-byte value into %d-byte destination", errs.ErrFrameTooLarge, n, len(dst))
	}
	if err := r.readFull(dst[:n]); err != nil {
		return 0, err
	}

	return n, nil
}

// ReadPointer decodes a pointer or null frame. A plain frame is accepted as
// well and returned as an owned copy.
//
// Returns:
//   - Value: Null for a null frame, Borrowed for a mapping reader, Owned otherwise
//   - error: ErrAllocationFailed when the allocator fails, ErrShortIO on
//     truncated input, ErrInvalidFrameFlag on an unknown flag
func (r *Reader) ReadPointer() (Value, error) {
	flag, err := r.readFlag()
	if err != nil {
		return Null(), err
	}
	if flag == FlagNull {
		return Null(), nil
	}

	n, err := r.readLength()
	if err != nil {
		return Null(), err
	}

	if flag == FlagPointer && r.IsMapping() {
		view, err := r.borrow(n)
		if err != nil {
			return Null(), err
		}

		return NewBorrowed(view), nil
	}

	if n == 0 {
		return NewOwned([]byte{}), nil
	}

	buf := r.cfg.alloc(n)
	if len(buf) < n {
		return Null(), fmt.Errorf("%w: %d bytes", errs.ErrAllocationFailed, n)
	}
	buf = buf[:n]
	if err := r.readFull(buf); err != nil {
		return Null(), err
	}

	return NewOwned(buf), nil
}

// ReadRaw fills dst with the next len(dst) bytes, without flag or length.
func (r *Reader) ReadRaw(dst []byte) error {
	return r.readFull(dst)
}

// Skip consumes the next frame of any kind and returns its flag.
func (r *Reader) Skip() (uint8, error) {
	flag, err := r.readFlag()
	if err != nil || flag == FlagNull {
		return flag, err
	}

	n, err := r.readLength()
	if err != nil {
		return 0, err
	}

	if r.src != nil {
		skipped, err := r.src.Discard(n)
		r.offset += int64(skipped)
		if err != nil {
			return 0, fmt.Errorf("%w: skipped %d of %d bytes: %w", errs.ErrShortIO, skipped, n, err)
		}

		return flag, nil
	}

	if _, err := r.borrow(n); err != nil {
		return 0, err
	}

	return flag, nil
}
