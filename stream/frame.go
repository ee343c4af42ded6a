package stream

import (
	"fmt"

	"github.com/arloliu/mvpuobj/errs"
)

// Frame flags.
const (
	FlagPlain   uint8 = 0
	FlagPointer uint8 = 1
	FlagNull    uint8 = 3
)

// frameHeaderSize is the size of the flag byte plus the u32 length.
const frameHeaderSize = 5

func checkFlag(flag uint8) error {
	switch flag {
	case FlagPlain, FlagPointer, FlagNull:
		return nil
	default:
		return fmt.Errorf("%w: %#x", errs.ErrInvalidFrameFlag, flag)
	}
}

// Allocator returns a buffer of exactly n bytes for an owned pointer value,
// or nil when the allocation cannot be satisfied.
type Allocator func(n int) []byte

// DefaultAllocator allocates on the Go heap.
func DefaultAllocator(n int) []byte {
	return make([]byte, n)
}

type valueKind uint8

const (
	kindNull valueKind = iota
	kindOwned
	kindBorrowed
)

// Value is the result of reading a pointer frame. It is either null, an owned
// buffer the caller may keep and modify, or a borrowed view into the source of
// a mapping reader that is only valid while the source is.
type Value struct {
	data []byte
	kind valueKind
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// NewOwned wraps a buffer owned by the caller.
func NewOwned(data []byte) Value {
	return Value{data: data, kind: kindOwned}
}

// NewBorrowed wraps a view into someone else's buffer.
func NewBorrowed(data []byte) Value {
	return Value{data: data, kind: kindBorrowed}
}

// IsNull reports whether the frame was a null pointer.
func (v Value) IsNull() bool {
	return v.kind == kindNull
}

// IsOwned reports whether the bytes belong to the caller.
func (v Value) IsOwned() bool {
	return v.kind == kindOwned
}

// IsBorrowed reports whether the bytes alias the reader's source.
func (v Value) IsBorrowed() bool {
	return v.kind == kindBorrowed
}

// Bytes returns the value bytes, nil for the null value.
func (v Value) Bytes() []byte {
	return v.data
}

// Len returns the number of value bytes.
func (v Value) Len() int {
	return len(v.data)
}

// String returns the value bytes as a string.
func (v Value) String() string {
	return string(v.data)
}

// Clone returns an owned copy. Cloning the null value returns the null value.
func (v Value) Clone() Value {
	if v.IsNull() {
		return v
	}

	data := make([]byte, len(v.data))
	copy(data, v.data)

	return NewOwned(data)
}
