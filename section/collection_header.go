package section

import (
	"fmt"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/format"
)

// CollectionHeader is the fixed-size header at the start of a persisted
// debug record collection. It is always little endian.
type CollectionHeader struct {
	Magic       uint16                 // byte offset 0-1
	Version     uint8                  // byte offset 2
	Compression format.CompressionType // byte offset 3
	EntryCount  uint32                 // byte offset 4-7
	// PayloadSize is the size of the stored, possibly compressed, payload.
	PayloadSize uint32 // byte offset 8-11
	// RawSize is the payload size before compression.
	RawSize uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the stored payload.
	Checksum uint64 // byte offset 16-23
}

// NewCollectionHeader creates a header for the current format version. The
// counts, sizes and checksum are filled in by the writer.
func NewCollectionHeader(compression format.CompressionType) *CollectionHeader {
	return &CollectionHeader{
		Magic:       MagicCollectionV1,
		Version:     CollectionVersion,
		Compression: compression,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 24 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidHeaderMagic or ErrUnsupportedVersion
func (h *CollectionHeader) Parse(data []byte) error {
	if len(data) != CollectionHeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	h.Magic = engine.Uint16(data[0:2])
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.EntryCount = engine.Uint32(data[4:8])
	h.PayloadSize = engine.Uint32(data[8:12])
	h.RawSize = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return h.Validate()
}

// Validate checks the magic number, version and compression type.
func (h *CollectionHeader) Validate() error {
	if h.Magic != MagicCollectionV1 {
		return fmt.Errorf("%w: %#04x", errs.ErrInvalidHeaderMagic, h.Magic)
	}
	if h.Version != CollectionVersion {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.Version)
	}
	switch h.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: compression %d", errs.ErrInvalidEnum, h.Compression)
	}

	return nil
}

// Bytes serializes the header into a new byte slice.
func (h *CollectionHeader) Bytes() []byte {
	b := make([]byte, CollectionHeaderSize)

	engine := endian.GetLittleEndianEngine()

	engine.PutUint16(b[0:2], h.Magic)
	b[2] = h.Version
	b[3] = uint8(h.Compression)
	engine.PutUint32(b[4:8], h.EntryCount)
	engine.PutUint32(b[8:12], h.PayloadSize)
	engine.PutUint32(b[12:16], h.RawSize)
	engine.PutUint64(b[16:24], h.Checksum)

	return b
}

// ParseCollectionHeader parses a CollectionHeader from the start of data.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 24 bytes)
//
// Returns:
//   - CollectionHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or validation errors
func ParseCollectionHeader(data []byte) (CollectionHeader, error) {
	if len(data) < CollectionHeaderSize {
		return CollectionHeader{}, errs.ErrInvalidHeaderSize
	}

	h := CollectionHeader{}
	if err := h.Parse(data[:CollectionHeaderSize]); err != nil {
		return CollectionHeader{}, err
	}

	return h, nil
}
