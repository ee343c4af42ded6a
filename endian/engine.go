// Package endian provides the byte order engines used by the arena, the stream
// codec and the object container writer.
//
// An EndianEngine is the union of binary.ByteOrder and binary.AppendByteOrder,
// so binary.LittleEndian and binary.BigEndian satisfy it directly:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, 42)
//
// Pointer slots written by the arena use the host byte order so that a flushed
// blob can be handed to code that dereferences the slots directly:
//
//	endian.PutSlot(endian.NativeEngine(), blob[off:], 8, addr)
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	// the first byte is the lowest address
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	if IsNativeBigEndian() {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PutSlot stores v into the first size bytes of b. Size must be 4 or 8; a
// 4-byte slot keeps the low 32 bits of v.
func PutSlot(engine EndianEngine, b []byte, size int, v uint64) {
	if size == 4 {
		engine.PutUint32(b, uint32(v)) //nolint:gosec
		return
	}
	engine.PutUint64(b, v)
}

// Slot reads a 4 or 8 byte slot written by PutSlot.
func Slot(engine EndianEngine, b []byte, size int) uint64 {
	if size == 4 {
		return uint64(engine.Uint32(b))
	}

	return engine.Uint64(b)
}
