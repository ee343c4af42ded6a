// Package stream implements the tagged frame codec used to persist object
// containers and debug record collections.
//
// Every value travels as one frame:
//
//	flag   u8          0 = plain value, 1 = pointer, 3 = null pointer
//	length u32         absent for a null pointer
//	data   [length]u8  absent for a null pointer or an empty value
//
// A Writer emits frames into memory (NewWriter) or into any io.Writer
// (NewFileWriter). A Reader consumes them from an io.Reader (NewReader), from
// a byte slice (NewBytesReader) or from a memory-mapped file (OpenMapped).
//
// Plain frames are decoded in place into a caller supplied buffer:
//
//	var v [4]byte
//	n, err := r.ReadValue(v[:])
//
// Pointer frames decode into a Value. A memory reader in mapping mode, and
// every mapped file reader, returns Borrowed values that alias the source
// bytes; other readers return Owned values allocated through the configured
// Allocator:
//
//	v, err := r.ReadPointer()
//	if v.IsBorrowed() {
//		v = v.Clone() // detach from the source before releasing it
//	}
//
// Writers and readers are not safe for concurrent use.
package stream
