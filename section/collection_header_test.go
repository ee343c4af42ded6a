package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/format"
)

func TestNewCollectionHeader(t *testing.T) {
	h := NewCollectionHeader(format.CompressionZstd)

	require.Equal(t, uint16(MagicCollectionV1), h.Magic)
	require.Equal(t, uint8(CollectionVersion), h.Version)
	require.Equal(t, format.CompressionZstd, h.Compression)
	require.NoError(t, h.Validate())
}

func TestCollectionHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := NewCollectionHeader(format.CompressionS2)
		original.EntryCount = 12
		original.PayloadSize = 300
		original.RawSize = 1200
		original.Checksum = 0x0123456789abcdef

		data := original.Bytes()
		require.Len(t, data, CollectionHeaderSize)
		require.Equal(t, []byte{0x17, 0xdb, 1, 3}, data[:4])

		parsed := &CollectionHeader{}
		require.NoError(t, parsed.Parse(data))
		require.Equal(t, *original, *parsed)

		withTail, err := ParseCollectionHeader(append(data, 0xff, 0xff))
		require.NoError(t, err)
		require.Equal(t, *original, withTail)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &CollectionHeader{}
		require.ErrorIs(t, header.Parse([]byte{1, 2, 3}), errs.ErrInvalidHeaderSize)

		_, err := ParseCollectionHeader(make([]byte, CollectionHeaderSize-1))
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("Invalid magic number", func(t *testing.T) {
		data := NewCollectionHeader(format.CompressionNone).Bytes()
		data[0] = 0

		_, err := ParseCollectionHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderMagic)
	})

	t.Run("Unsupported version", func(t *testing.T) {
		data := NewCollectionHeader(format.CompressionNone).Bytes()
		data[2] = 2

		_, err := ParseCollectionHeader(data)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("Unknown compression", func(t *testing.T) {
		data := NewCollectionHeader(format.CompressionNone).Bytes()
		data[3] = 0x9

		_, err := ParseCollectionHeader(data)
		require.ErrorIs(t, err, errs.ErrInvalidEnum)
	})
}
