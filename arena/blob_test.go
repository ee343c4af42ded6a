package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
)

func addressOf(b []byte, offset int) uint64 {
	return uint64(uintptr(unsafe.Pointer(&b[offset])))
}

func TestFlush_RoundTrip(t *testing.T) {
	const field = 0
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	a, err := New(16, WithPointerSize(8))
	require.NoError(t, err)

	off := a.Allocate(field, 8)
	copy(a.Slice(off, 8), payload)

	blob, err := a.Flush(Omit, Omit, Omit)
	require.NoError(t, err)
	require.Equal(t, 24, blob.Len(), "no table is appended when the table is omitted")

	ptr, err := blob.Pointer(field)
	require.NoError(t, err)
	require.Equal(t, addressOf(blob.Bytes(), off), ptr)
	require.Equal(t, addressOf(blob.Bytes(), 0), blob.Base())
	require.Equal(t, payload, blob.Bytes()[off:off+8])

	// the blob is an independent copy of the arena
	require.NotEqual(t, addressOf(a.Bytes(), 0), blob.Base())
}

func TestFlush_SelfDescribing(t *testing.T) {
	// root: [ptr a][ptr b][u32 count][u32 table][u32 size][pad]
	const (
		ptrA, ptrB          = 0, 8
		countAt, tableAt    = 16, 20
		sizeAt, rootRecSize = 24, 32
	)
	engine := endian.GetLittleEndianEngine()

	a, err := New(rootRecSize, WithPointerSize(8), WithEndianEngine(engine))
	require.NoError(t, err)
	offA := a.CopyRef(ptrA, []byte("alpha"))
	offB := a.Allocate(ptrB, 12)
	stagedLen := a.Len()

	blob, err := a.Flush(countAt, tableAt, sizeAt)
	require.NoError(t, err)
	data := blob.Bytes()

	require.Equal(t, uint32(4), engine.Uint32(data[countAt:]))
	require.Equal(t, uint32(stagedLen), engine.Uint32(data[tableAt:]))
	require.Equal(t, uint32(len(data)), engine.Uint32(data[sizeAt:]))
	require.Equal(t, stagedLen+16, len(data))

	table := data[stagedLen:]
	require.Equal(t, []uint32{ptrA, uint32(offA), ptrB, uint32(offB)}, []uint32{
		engine.Uint32(table[0:]), engine.Uint32(table[4:]),
		engine.Uint32(table[8:]), engine.Uint32(table[12:]),
	})

	gotA, err := blob.Resolve(ptrA)
	require.NoError(t, err)
	require.Equal(t, offA, gotA)
	gotB, err := blob.Resolve(ptrB)
	require.NoError(t, err)
	require.Equal(t, offB, gotB)
}

func TestFlush_NoFixupsWritesNoTable(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	a, err := New(12, WithEndianEngine(engine))
	require.NoError(t, err)
	a.Copy([]byte("raw"))

	blob, err := a.Flush(0, 4, 8)
	require.NoError(t, err)

	data := blob.Bytes()
	require.Equal(t, uint32(0), engine.Uint32(data[0:]))
	require.Equal(t, uint32(NoTable), engine.Uint32(data[4:]))
	require.Equal(t, uint32(16), engine.Uint32(data[8:]))
}

func TestFlush_Once(t *testing.T) {
	a, err := New(8)
	require.NoError(t, err)

	_, err = a.Flush(Omit, Omit, Omit)
	require.NoError(t, err)

	_, err = a.Flush(Omit, Omit, Omit)
	require.ErrorIs(t, err, errs.ErrArenaFlushed)
}

func TestFlush_Errors(t *testing.T) {
	a, err := New(8, WithPointerSize(8))
	require.NoError(t, err)
	a.Allocate(8, 4) // an 8-byte slot at 8 runs past the 12-byte blob

	_, err = a.Flush(Omit, Omit, Omit)
	require.ErrorIs(t, err, errs.ErrFixupOutOfRange)

	b, err := New(8)
	require.NoError(t, err)
	_, err = b.Flush(6, Omit, Omit)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)
}

func TestBlob_Relocate(t *testing.T) {
	a, err := New(8, WithPointerSize(4), WithEndianEngine(endian.GetLittleEndianEngine()),
		WithLoadBase(0x1000))
	require.NoError(t, err)
	off := a.CopyRef(0, []byte("kernel"))

	blob, err := a.Flush(Omit, Omit, Omit)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1000), blob.Base())

	ptr, err := blob.Pointer(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x1000+off), ptr)
	require.Equal(t, []byte{0, 0, 0, 0}, blob.Bytes()[4:8], "4-byte slot leaves its neighbour alone")

	blob.Relocate(0x8000_0000)
	ptr, err = blob.Pointer(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x8000_0000+off), ptr)

	resolved, err := blob.Resolve(0)
	require.NoError(t, err)
	require.Equal(t, off, resolved)

	_, err = blob.Pointer(14)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)
}

func TestAttach(t *testing.T) {
	const countAt, tableAt = 8, 12
	a, err := New(16, WithPointerSize(8))
	require.NoError(t, err)
	off := a.CopyRef(0, []byte("persisted"))

	blob, err := a.Flush(countAt, tableAt, Omit)
	require.NoError(t, err)

	// simulate a write to disk and a read back into a different buffer
	onDisk := append([]byte(nil), blob.Bytes()...)
	loaded, err := Attach(onDisk, countAt, tableAt, WithPointerSize(8))
	require.NoError(t, err)

	require.Equal(t, blob.Fixups(), loaded.Fixups())
	ptr, err := loaded.Pointer(0)
	require.NoError(t, err)
	require.Equal(t, addressOf(onDisk, off), ptr)
}

func TestAttach_Invalid(t *testing.T) {
	engine := endian.NativeEngine()
	data := make([]byte, 16)

	engine.PutUint32(data[0:], 2)
	engine.PutUint32(data[4:], NoTable)
	_, err := Attach(data, 0, 4)
	require.ErrorIs(t, err, errs.ErrInvalidFixupTable)

	engine.PutUint32(data[0:], 3)
	engine.PutUint32(data[4:], 8)
	_, err = Attach(data, 0, 4)
	require.ErrorIs(t, err, errs.ErrInvalidFixupTable)

	engine.PutUint32(data[0:], 4)
	engine.PutUint32(data[4:], 8)
	_, err = Attach(data, 0, 4)
	require.ErrorIs(t, err, errs.ErrInvalidFixupTable)

	_, err = Attach(data, 14, 4)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)

	engine.PutUint32(data[0:], 0)
	engine.PutUint32(data[4:], NoTable)
	blob, err := Attach(data, 0, 4)
	require.NoError(t, err)
	require.Empty(t, blob.Fixups())
}
