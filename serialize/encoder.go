package serialize

import (
	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/stream"
)

// Encodable is implemented by types that can write themselves to an Encoder.
type Encodable interface {
	Encode(e *Encoder) error
}

// Encoder writes typed values as frames.
type Encoder struct {
	w       *stream.Writer
	engine  endian.EndianEngine
	scratch [8]byte
}

// NewEncoder creates an encoder on top of w. Integers use w's byte order.
func NewEncoder(w *stream.Writer) *Encoder {
	return &Encoder{w: w, engine: w.Engine()}
}

// Writer returns the underlying stream writer.
func (e *Encoder) Writer() *stream.Writer {
	return e.w
}

// PutU8 writes v as a one-byte plain frame.
func (e *Encoder) PutU8(v uint8) error {
	e.scratch[0] = v
	return e.w.WriteValue(e.scratch[:1])
}

// PutBool writes v as a one-byte plain frame.
func (e *Encoder) PutBool(v bool) error {
	if v {
		return e.PutU8(1)
	}

	return e.PutU8(0)
}

// PutU16 writes v as a two-byte plain frame.
func (e *Encoder) PutU16(v uint16) error {
	e.engine.PutUint16(e.scratch[:2], v)
	return e.w.WriteValue(e.scratch[:2])
}

// PutU32 writes v as a four-byte plain frame.
func (e *Encoder) PutU32(v uint32) error {
	e.engine.PutUint32(e.scratch[:4], v)
	return e.w.WriteValue(e.scratch[:4])
}

// PutU64 writes v as an eight-byte plain frame.
func (e *Encoder) PutU64(v uint64) error {
	e.engine.PutUint64(e.scratch[:8], v)
	return e.w.WriteValue(e.scratch[:8])
}

// PutI32 writes v as a four-byte plain frame.
func (e *Encoder) PutI32(v int32) error {
	return e.PutU32(uint32(v)) //nolint:gosec
}

// PutI64 writes v as an eight-byte plain frame.
func (e *Encoder) PutI64(v int64) error {
	return e.PutU64(uint64(v)) //nolint:gosec
}

// PutString writes s as a pointer frame, or a null frame when s is empty.
func (e *Encoder) PutString(s string) error {
	return e.w.WritePointer([]byte(s))
}

// PutBytes writes b as a pointer frame, or a null frame when b is empty.
func (e *Encoder) PutBytes(b []byte) error {
	return e.w.WritePointer(b)
}

// Put writes v through its own Encode method.
func (e *Encoder) Put(v Encodable) error {
	return v.Encode(e)
}
