package serialize

import (
	"fmt"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/stream"
)

// Decodable is implemented by types that can read themselves from a Decoder.
type Decodable interface {
	Decode(d *Decoder) error
}

// Decoder reads typed values written by an Encoder.
type Decoder struct {
	r       *stream.Reader
	engine  endian.EndianEngine
	scratch [8]byte
}

// NewDecoder creates a decoder on top of r. Integers use r's byte order.
func NewDecoder(r *stream.Reader) *Decoder {
	return &Decoder{r: r, engine: r.Engine()}
}

// Reader returns the underlying stream reader.
func (d *Decoder) Reader() *stream.Reader {
	return d.r
}

// EOF reports whether the input is exhausted.
func (d *Decoder) EOF() bool {
	return d.r.EOF()
}

func (d *Decoder) fixed(size int) ([]byte, error) {
	n, err := d.r.ReadValue(d.scratch[:size])
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("%w: %d-byte value, want %d", errs.ErrUnexpectedFrame, n, size)
	}

	return d.scratch[:size], nil
}

// U8 reads a one-byte plain frame.
func (d *Decoder) U8() (uint8, error) {
	b, err := d.fixed(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Bool reads a one-byte plain frame. Any non-zero byte is true.
func (d *Decoder) Bool() (bool, error) {
	v, err := d.U8()
	return v != 0, err
}

// U16 reads a two-byte plain frame.
func (d *Decoder) U16() (uint16, error) {
	b, err := d.fixed(2)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint16(b), nil
}

// U32 reads a four-byte plain frame.
func (d *Decoder) U32() (uint32, error) {
	b, err := d.fixed(4)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint32(b), nil
}

// U64 reads an eight-byte plain frame.
func (d *Decoder) U64() (uint64, error) {
	b, err := d.fixed(8)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint64(b), nil
}

// I32 reads a four-byte plain frame.
func (d *Decoder) I32() (int32, error) {
	v, err := d.U32()
	return int32(v), err //nolint:gosec
}

// I64 reads an eight-byte plain frame.
func (d *Decoder) I64() (int64, error) {
	v, err := d.U64()
	return int64(v), err //nolint:gosec
}

// Str reads a pointer frame as a string. A null frame yields "".
func (d *Decoder) Str() (string, error) {
	v, err := d.r.ReadPointer()
	if err != nil {
		return "", err
	}

	return string(v.Bytes()), nil
}

// Bytes reads a pointer frame. A null frame yields nil. Borrowed values are
// cloned so the result never aliases the source; use Value for zero-copy
// access.
func (d *Decoder) Bytes() ([]byte, error) {
	v, err := d.r.ReadPointer()
	if err != nil {
		return nil, err
	}
	if v.IsBorrowed() {
		v = v.Clone()
	}

	return v.Bytes(), nil
}

// Value reads a pointer frame without detaching it from the source.
func (d *Decoder) Value() (stream.Value, error) {
	return d.r.ReadPointer()
}

// Get reads v through its own Decode method.
func (d *Decoder) Get(v Decodable) error {
	return v.Decode(d)
}
