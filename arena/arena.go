package arena

import (
	"fmt"
	"math"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/options"
)

const (
	// Omit skips one piece of self-description in Flush or Attach.
	Omit = -1

	// NoTable is written into the table-offset field when no fixup table was
	// appended.
	NoTable = math.MaxUint32
)

// Arena is a growable, alignment-padded byte region with a deferred list of
// pointer fixups.
//
// The length of the arena is always a multiple of its alignment, and the fixup
// list always holds whole (field, target) pairs. An Arena is not safe for
// concurrent use.
type Arena struct {
	config
	buf     []byte
	fixups  []uint32 // flat (field, target) pairs
	flushed bool
}

// New creates an arena whose first rootSize bytes (rounded up to the
// alignment) are zeroed and reserved for the root record.
//
// Parameters:
//   - rootSize: Size of the root record in bytes
//   - opts: Alignment, pointer size, byte order and load base options
//
// Returns:
//   - *Arena: The new arena
//   - error: An invalid option
func New(rootSize int, opts ...Option) (*Arena, error) {
	if rootSize < 0 {
		return nil, fmt.Errorf("%w: root size %d", errs.ErrInvalidOffset, rootSize)
	}

	a := &Arena{config: defaultConfig()}
	if err := options.Apply(&a.config, opts...); err != nil {
		return nil, err
	}
	a.resize(rootSize)

	return a, nil
}

func (a *Arena) alignUp(n int) int {
	return (n + a.align - 1) &^ (a.align - 1)
}

// resize grows the arena to n bytes rounded up to the alignment. The arena
// never shrinks.
func (a *Arena) resize(n int) {
	n = a.alignUp(n)
	if n <= len(a.buf) {
		return
	}
	a.buf = append(a.buf, make([]byte, n-len(a.buf))...)
}

func (a *Arena) addFixup(fieldOffset, targetOffset int) {
	a.fixups = append(a.fixups, uint32(fieldOffset), uint32(targetOffset)) //nolint:gosec
}

// Len returns the current arena size in bytes.
func (a *Arena) Len() int {
	return len(a.buf)
}

// Alignment returns the configured alignment.
func (a *Arena) Alignment() int {
	return a.align
}

// PointerSize returns the width of pointer slots in bytes.
func (a *Arena) PointerSize() int {
	return a.ptrSize
}

// Bytes returns the staged bytes. The slice is invalidated by any call that
// grows the arena.
func (a *Arena) Bytes() []byte {
	return a.buf
}

// Fixups returns the recorded fixup pairs in insertion order.
func (a *Arena) Fixups() []Fixup {
	return pairsToFixups(a.fixups)
}

// FixupCount returns the number of u32 entries in the fixup list, which is
// twice the number of pointer fields. This is the value Flush writes into the
// count field.
func (a *Arena) FixupCount() int {
	return len(a.fixups)
}

// Allocate reserves n zero bytes at the end of the arena and records that the
// pointer field at fieldOffset must point at them.
//
// Parameters:
//   - fieldOffset: Arena offset of the pointer field referring to the block
//   - n: Number of bytes to reserve
//
// Returns:
//   - int: Offset of the reserved block, to be filled through Slice or Copy
func (a *Arena) Allocate(fieldOffset, n int) int {
	offset := len(a.buf)
	a.resize(offset + n)
	a.addFixup(fieldOffset, offset)

	return offset
}

// Copy appends data and returns its offset. A zero-length copy returns the
// current end without growing the arena.
func (a *Arena) Copy(data []byte) int {
	offset := len(a.buf)
	if len(data) == 0 {
		return offset
	}
	a.resize(offset + len(data))
	copy(a.buf[offset:], data)

	return offset
}

// CopyRef appends data like Copy and records that the pointer field at
// fieldOffset must point at it.
func (a *Arena) CopyRef(fieldOffset int, data []byte) int {
	offset := a.Copy(data)
	a.addFixup(fieldOffset, offset)

	return offset
}

// CopyStrings makes an array of fixed-size records self-contained.
//
// The array starts at arrayOffset and holds len(strs) elements of elementSize
// bytes. For element i, a NUL-terminated copy of strs[i] is appended and the
// pointer field at arrayOffset + i*elementSize + stringFieldOffset is recorded
// to point at it.
func (a *Arena) CopyStrings(arrayOffset, stringFieldOffset, elementSize int, strs []string) {
	field := arrayOffset + stringFieldOffset
	for _, s := range strs {
		buf := make([]byte, len(s)+1)
		copy(buf, s)
		a.CopyRef(field, buf)
		field += elementSize
	}
}

// Slice returns n bytes of the arena starting at offset, for filling staged
// records in place. It panics if the range is outside the arena. The slice is
// invalidated by any call that grows the arena.
func (a *Arena) Slice(offset, n int) []byte {
	if offset < 0 || n < 0 || offset+n > len(a.buf) {
		panic(fmt.Sprintf("arena: slice [%d:%d] out of range [0:%d]", offset, offset+n, len(a.buf)))
	}

	return a.buf[offset : offset+n]
}

// PutUint16 writes v at offset using the arena byte order.
func (a *Arena) PutUint16(offset int, v uint16) {
	a.engine.PutUint16(a.Slice(offset, 2), v)
}

// PutUint32 writes v at offset using the arena byte order.
func (a *Arena) PutUint32(offset int, v uint32) {
	a.engine.PutUint32(a.Slice(offset, 4), v)
}

// PutUint64 writes v at offset using the arena byte order.
func (a *Arena) PutUint64(offset int, v uint64) {
	a.engine.PutUint64(a.Slice(offset, 8), v)
}

// Uint32 reads the u32 at offset.
func (a *Arena) Uint32(offset int) uint32 {
	return a.engine.Uint32(a.Slice(offset, 4))
}

// Flush flattens the arena into a new blob with every pointer field resolved.
//
// When fixups exist and tableFieldOffset is not Omit, the fixup table is
// appended to the arena first so that it travels inside the blob. The staged
// bytes are then copied into a fresh allocation and every pointer field is set
// to base + target, where base is the blob's host address unless WithLoadBase
// was given. Finally the fixup count, the table offset (NoTable when no table
// was appended) and the total size are written as u32 values at the requested
// offsets; any of them may be Omit.
//
// An arena can be flushed once, whether or not the flush succeeds.
//
// Returns:
//   - *Blob: The flattened blob, owned by the caller
//   - error: ErrArenaFlushed, ErrArenaTooLarge or ErrFixupOutOfRange
func (a *Arena) Flush(countFieldOffset, tableFieldOffset, sizeFieldOffset int) (*Blob, error) {
	if a.flushed {
		return nil, errs.ErrArenaFlushed
	}
	a.flushed = true

	tableAt := uint64(NoTable)
	if tableFieldOffset != Omit && len(a.fixups) > 0 {
		table := make([]byte, 4*len(a.fixups))
		for i, v := range a.fixups {
			a.engine.PutUint32(table[4*i:], v)
		}
		tableAt = uint64(a.Copy(table))
	}

	size := len(a.buf)
	if uint64(size) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrArenaTooLarge, size)
	}

	data := make([]byte, size)
	copy(data, a.buf)

	blob := &Blob{
		config: a.config,
		data:   data,
		fixups: pairsToFixups(a.fixups),
	}
	if err := blob.validateFixups(); err != nil {
		return nil, err
	}

	base := hostAddress(data)
	if a.hasBase {
		base = a.base
	}
	blob.relocate(base)

	header := []struct {
		offset int
		value  uint64
	}{
		{countFieldOffset, uint64(len(a.fixups))},
		{tableFieldOffset, tableAt},
		{sizeFieldOffset, uint64(size)},
	}
	for _, h := range header {
		if h.offset == Omit {
			continue
		}
		if h.offset < 0 || h.offset+4 > size {
			return nil, fmt.Errorf("%w: header field at %d", errs.ErrInvalidOffset, h.offset)
		}
		a.engine.PutUint32(data[h.offset:], uint32(h.value)) //nolint:gosec
	}

	return blob, nil
}
