// Package errs defines the sentinel errors shared by every mvpuobj package.
//
// Errors are returned wrapped with context (fmt.Errorf and %w); match them with
// errors.Is.
package errs

import "errors"

// Arena errors.
var (
	ErrInvalidAlignment   = errors.New("alignment must be a power of two")
	ErrInvalidPointerSize = errors.New("pointer size must be 4 or 8 bytes")
	ErrArenaTooLarge      = errors.New("arena exceeds the 32-bit offset space")
	ErrFixupOutOfRange    = errors.New("fixup field lies outside the blob")
	ErrInvalidFixupTable  = errors.New("invalid fixup table")
	ErrInvalidOffset      = errors.New("offset out of range")
	ErrArenaFlushed       = errors.New("arena already flushed")
)

// Stream codec errors.
var (
	ErrShortIO          = errors.New("short read or write")
	ErrInvalidFrameFlag = errors.New("invalid frame flag")
	ErrUnexpectedFrame  = errors.New("unexpected frame kind")
	ErrFrameTooLarge    = errors.New("frame length exceeds limit")
	ErrAllocationFailed = errors.New("allocation failed")
	ErrNotMemoryBacked  = errors.New("stream is not memory backed")
)

// Section and object container errors.
var (
	ErrInvalidEnum         = errors.New("enum value out of range")
	ErrMalformedSection    = errors.New("malformed section payload")
	ErrInvalidContainer    = errors.New("invalid object container")
	ErrUnsupportedMachine  = errors.New("unsupported machine")
	ErrMissingCoreField    = errors.New("machine, type and entry must be set")
	ErrReservedSection     = errors.New("section name is reserved for a typed section")
	ErrInvalidSectionName  = errors.New("invalid section name")
	ErrSectionNotFound     = errors.New("section not found")
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidHeaderMagic  = errors.New("invalid header magic")
	ErrUnsupportedVersion  = errors.New("unsupported format version")
	ErrChecksumMismatch    = errors.New("payload checksum mismatch")
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
)

// Debug record collection errors.
var (
	ErrDuplicateID     = errors.New("debug id already exists")
	ErrIDNotFound      = errors.New("debug id not found")
	ErrAmbiguousRename = errors.New("debug id renamed more than once")
	ErrNilContainer    = errors.New("nil object container")
)
