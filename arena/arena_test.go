package arena

import (
	"bytes"
	"math/rand/v2"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
)

func TestNew(t *testing.T) {
	a, err := New(10)
	require.NoError(t, err)
	require.Equal(t, 12, a.Len(), "root record is padded to the default alignment")
	require.Equal(t, DefaultAlignment, a.Alignment())
	require.Equal(t, int(unsafe.Sizeof(uintptr(0))), a.PointerSize())
	require.Equal(t, make([]byte, 12), a.Bytes())

	empty, err := New(0)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
}

func TestNew_InvalidOptions(t *testing.T) {
	_, err := New(8, WithAlignment(3))
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)

	_, err = New(8, WithAlignment(0))
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)

	_, err = New(8, WithPointerSize(2))
	require.ErrorIs(t, err, errs.ErrInvalidPointerSize)

	_, err = New(-1)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)
}

func TestArena_AlignmentInvariant(t *testing.T) {
	for _, align := range []int{1, 2, 4, 8, 16} {
		a, err := New(3, WithAlignment(align))
		require.NoError(t, err)
		require.Zero(t, a.Len()%align)

		rng := rand.New(rand.NewPCG(uint64(align), 42))
		for i := range 200 {
			n := rng.IntN(33)
			switch rng.IntN(4) {
			case 0:
				a.Allocate(0, n)
			case 1:
				a.Copy(bytes.Repeat([]byte{0xab}, n))
			case 2:
				a.CopyRef(0, bytes.Repeat([]byte{0xcd}, n))
			case 3:
				a.CopyStrings(0, 0, 8, []string{"x", "yy"}[:rng.IntN(3)])
			}
			require.Zerof(t, a.Len()%align, "align %d, step %d: len %d", align, i, a.Len())
			require.Zerof(t, a.FixupCount()%2, "align %d, step %d: odd fixup list", align, i)
		}
	}
}

func TestArena_Allocate(t *testing.T) {
	a, err := New(16)
	require.NoError(t, err)

	off := a.Allocate(0, 5)
	require.Equal(t, 16, off)
	require.Equal(t, 24, a.Len())
	require.Equal(t, []Fixup{{Field: 0, Target: 16}}, a.Fixups())
	require.Equal(t, 2, a.FixupCount())
	require.Equal(t, make([]byte, 5), a.Slice(off, 5), "allocated bytes are zeroed")
}

func TestArena_Copy(t *testing.T) {
	a, err := New(8)
	require.NoError(t, err)

	off := a.Copy([]byte{1, 2, 3})
	require.Equal(t, 8, off)
	require.Equal(t, []byte{1, 2, 3, 0}, a.Bytes()[8:])
	require.Empty(t, a.Fixups())

	end := a.Copy(nil)
	require.Equal(t, 12, end, "zero-length copy returns the end offset")
	require.Equal(t, 12, a.Len())
	require.Empty(t, a.Fixups())

	ref := a.CopyRef(4, []byte("abcd"))
	require.Equal(t, 12, ref)
	require.Equal(t, []Fixup{{Field: 4, Target: 12}}, a.Fixups())
}

func TestArena_CopyStrings(t *testing.T) {
	// three 16-byte elements: [u32 id][pad][8-byte name pointer]
	const elemSize, nameField = 16, 8
	a, err := New(3*elemSize, WithPointerSize(8))
	require.NoError(t, err)

	names := []string{"main", "", "reduce_sum"}
	a.CopyStrings(0, nameField, elemSize, names)

	fixups := a.Fixups()
	require.Len(t, fixups, 3)
	for i, f := range fixups {
		require.Equal(t, uint32(i*elemSize+nameField), f.Field)
		got := a.Bytes()[f.Target : int(f.Target)+len(names[i])+1]
		require.Equal(t, append([]byte(names[i]), 0), got)
	}

	blob, err := a.Flush(Omit, Omit, Omit)
	require.NoError(t, err)
	for i := range names {
		off, err := blob.Resolve(i*elemSize + nameField)
		require.NoError(t, err)
		require.Equal(t, int(fixups[i].Target), off)
	}
}

func TestArena_FieldAccess(t *testing.T) {
	a, err := New(16, WithEndianEngine(endian.GetLittleEndianEngine()))
	require.NoError(t, err)

	a.PutUint16(0, 0x0102)
	a.PutUint32(4, 0xdeadbeef)
	a.PutUint64(8, 0x1122334455667788)

	require.Equal(t, []byte{0x02, 0x01}, a.Slice(0, 2))
	require.Equal(t, uint32(0xdeadbeef), a.Uint32(4))
	require.Equal(t, byte(0x88), a.Bytes()[8])

	require.Panics(t, func() { a.Slice(12, 8) })
	require.Panics(t, func() { a.Slice(-1, 1) })
}
