package arena

import (
	"fmt"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/options"
)

// Fixup describes one pointer field: the u32-offset Field holds the address of
// Target. Both offsets are measured from the start of the blob.
type Fixup struct {
	Field  uint32
	Target uint32
}

func pairsToFixups(pairs []uint32) []Fixup {
	fixups := make([]Fixup, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		fixups = append(fixups, Fixup{Field: pairs[i], Target: pairs[i+1]})
	}

	return fixups
}

// Blob is a flattened arena: one owned byte slice whose pointer fields hold
// absolute addresses relative to Base.
type Blob struct {
	config
	data   []byte
	fixups []Fixup
	base   uint64
}

// Bytes returns the blob contents.
func (b *Blob) Bytes() []byte {
	return b.data
}

// Len returns the blob size in bytes.
func (b *Blob) Len() int {
	return len(b.data)
}

// Base returns the address every pointer field is currently resolved against.
func (b *Blob) Base() uint64 {
	return b.base
}

// PointerSize returns the width of pointer slots in bytes.
func (b *Blob) PointerSize() int {
	return b.ptrSize
}

// Fixups returns a copy of the blob's fixup list.
func (b *Blob) Fixups() []Fixup {
	out := make([]Fixup, len(b.fixups))
	copy(out, b.fixups)

	return out
}

// Pointer reads the pointer slot at fieldOffset.
func (b *Blob) Pointer(fieldOffset int) (uint64, error) {
	if fieldOffset < 0 || fieldOffset+b.ptrSize > len(b.data) {
		return 0, fmt.Errorf("%w: pointer at %d", errs.ErrInvalidOffset, fieldOffset)
	}

	return endian.Slot(b.engine, b.data[fieldOffset:], b.ptrSize), nil
}

// Resolve translates the pointer stored at fieldOffset back into an offset
// inside the blob.
func (b *Blob) Resolve(fieldOffset int) (int, error) {
	ptr, err := b.Pointer(fieldOffset)
	if err != nil {
		return 0, err
	}

	base := b.base
	if b.ptrSize == 4 {
		base &= 0xffffffff
	}
	if ptr < base || ptr-base > uint64(len(b.data)) {
		return 0, fmt.Errorf("%w: pointer %#x outside blob at %#x", errs.ErrInvalidOffset, ptr, base)
	}

	return int(ptr - base), nil //nolint:gosec
}

// Relocate rewrites every pointer field so it holds base + target. Use it to
// prepare a blob for a device whose load address differs from the host
// address.
func (b *Blob) Relocate(base uint64) {
	b.relocate(base)
}

// RelocateToHost resolves every pointer field against the blob's own host
// address.
func (b *Blob) RelocateToHost() {
	b.relocate(hostAddress(b.data))
}

func (b *Blob) relocate(base uint64) {
	for _, f := range b.fixups {
		endian.PutSlot(b.engine, b.data[f.Field:], b.ptrSize, base+uint64(f.Target))
	}
	b.base = base
}

func (b *Blob) validateFixups() error {
	for _, f := range b.fixups {
		if uint64(f.Field)+uint64(b.ptrSize) > uint64(len(b.data)) {
			return fmt.Errorf("%w: field %d, blob size %d", errs.ErrFixupOutOfRange, f.Field, len(b.data))
		}
		if uint64(f.Target) > uint64(len(b.data)) {
			return fmt.Errorf("%w: target %d, blob size %d", errs.ErrFixupOutOfRange, f.Target, len(b.data))
		}
	}

	return nil
}

// Attach adopts data, a blob previously produced by Flush with an embedded
// fixup table, and resolves its pointer fields again. The fixup count and the
// table offset are read from the u32 fields at countFieldOffset and
// tableFieldOffset. data is used in place and must not be modified afterwards.
//
// Parameters:
//   - data: Flushed blob bytes, e.g. read back from disk
//   - countFieldOffset: Offset of the fixup count field
//   - tableFieldOffset: Offset of the fixup table offset field
//   - opts: Pointer size, byte order and load base; must match the flushing arena
//
// Returns:
//   - *Blob: The re-resolved blob
//   - error: ErrInvalidFixupTable if the embedded table is inconsistent
func Attach(data []byte, countFieldOffset, tableFieldOffset int, opts ...Option) (*Blob, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	for _, off := range []int{countFieldOffset, tableFieldOffset} {
		if off < 0 || off+4 > len(data) {
			return nil, fmt.Errorf("%w: header field at %d", errs.ErrInvalidOffset, off)
		}
	}

	count := uint64(cfg.engine.Uint32(data[countFieldOffset:]))
	tableAt := uint64(cfg.engine.Uint32(data[tableFieldOffset:]))

	var pairs []uint32
	switch {
	case tableAt == NoTable && count == 0:
	case tableAt == NoTable:
		return nil, fmt.Errorf("%w: %d entries without a table", errs.ErrInvalidFixupTable, count)
	case count%2 != 0:
		return nil, fmt.Errorf("%w: odd entry count %d", errs.ErrInvalidFixupTable, count)
	case tableAt+4*count > uint64(len(data)):
		return nil, fmt.Errorf("%w: table [%d:%d] exceeds blob size %d",
			errs.ErrInvalidFixupTable, tableAt, tableAt+4*count, len(data))
	default:
		pairs = make([]uint32, count)
		for i := range pairs {
			pairs[i] = cfg.engine.Uint32(data[tableAt+4*uint64(i):])
		}
	}

	blob := &Blob{
		config: cfg,
		data:   data,
		fixups: pairsToFixups(pairs),
	}
	if err := blob.validateFixups(); err != nil {
		return nil, err
	}

	base := hostAddress(data)
	if cfg.hasBase {
		base = cfg.base
	}
	blob.relocate(base)

	return blob, nil
}
