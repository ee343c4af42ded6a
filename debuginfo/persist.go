package debuginfo

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/arloliu/mvpuobj/compress"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/hash"
	"github.com/arloliu/mvpuobj/internal/logging"
	"github.com/arloliu/mvpuobj/internal/pool"
	"github.com/arloliu/mvpuobj/section"
	"github.com/arloliu/mvpuobj/serialize"
	"github.com/arloliu/mvpuobj/stream"
)

// writeCollection writes the header and the payload frame of l to w.
func writeCollection(w *stream.Writer, l *List, cfg config) error {
	payload, err := serialize.Marshal(l)
	if err != nil {
		return err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}
	stored, err := codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	header := section.NewCollectionHeader(cfg.compression)
	header.EntryCount = uint32(l.Len())      //nolint:gosec
	header.RawSize = uint32(len(payload))    //nolint:gosec
	header.PayloadSize = uint32(len(stored)) //nolint:gosec
	header.Checksum = hash.Sum64(stored)

	if err := w.WriteRaw(header.Bytes()); err != nil {
		return err
	}
	if err := w.WritePointer(stored); err != nil {
		return err
	}

	stats := compress.CompressionStats{
		Algorithm:      cfg.compression,
		OriginalSize:   int64(len(payload)),
		CompressedSize: int64(len(stored)),
	}
	logging.Logger().Debug("persisted debug records",
		zap.Int("entries", l.Len()),
		zap.Stringer("compression", stats.Algorithm),
		zap.String("raw", humanize.Bytes(uint64(stats.OriginalSize))),
		zap.String("stored", humanize.Bytes(uint64(stats.CompressedSize))),
		zap.Float64("savings", stats.SpaceSavings()))

	return nil
}

// readCollection reads a list written by writeCollection. Pointer values may
// borrow from r; everything kept in the list is copied out of them.
func readCollection(r *stream.Reader) (*List, error) {
	var raw [section.CollectionHeaderSize]byte
	if err := r.ReadRaw(raw[:]); err != nil {
		return nil, fmt.Errorf("read collection header: %w", err)
	}

	header, err := section.ParseCollectionHeader(raw[:])
	if err != nil {
		return nil, err
	}

	v, err := r.ReadPointer()
	if err != nil {
		return nil, fmt.Errorf("read collection payload: %w", err)
	}
	stored := v.Bytes()
	if len(stored) != int(header.PayloadSize) {
		return nil, fmt.Errorf("%w: %d bytes, header says %d",
			errs.ErrPayloadSizeMismatch, len(stored), header.PayloadSize)
	}
	if sum := hash.Sum64(stored); sum != header.Checksum {
		return nil, fmt.Errorf("%w: %#016x, header says %#016x", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(stored, int(header.RawSize))
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	l := New()
	if err := serialize.Unmarshal(payload, l, stream.WithMapping(true)); err != nil {
		return nil, err
	}
	if l.Len() != int(header.EntryCount) {
		return nil, fmt.Errorf("%w: %d entries, header says %d",
			errs.ErrPayloadSizeMismatch, l.Len(), header.EntryCount)
	}

	logging.Logger().Debug("read debug records",
		zap.Int("entries", l.Len()),
		zap.Stringer("compression", header.Compression),
		zap.String("stored", humanize.Bytes(uint64(header.PayloadSize))))

	return l, nil
}

// Marshal persists l into a new byte slice.
//
// Parameters:
//   - l: List to persist; every container must have machine, type and entry set
//   - opts: WithCompression selects the payload codec
//
// Returns:
//   - []byte: Collection header followed by the payload frame
//   - error: Option, encoding or compression failure
func Marshal(l *List, opts ...Option) ([]byte, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	buf := pool.GetCollectionBuffer()
	defer pool.PutCollectionBuffer(buf)

	w, err := stream.NewFileWriter(buf)
	if err != nil {
		return nil, err
	}
	if err := writeCollection(w, l, cfg); err != nil {
		return nil, err
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())

	return data, nil
}

// Unmarshal restores a list persisted by Marshal. Bytes after the payload
// frame are ignored.
//
// Returns:
//   - *List: The restored list; it does not alias data
//   - error: Header, size, checksum, decompression or decoding failure
func Unmarshal(data []byte) (*List, error) {
	r, err := stream.NewBytesReader(data, stream.WithMapping(true))
	if err != nil {
		return nil, err
	}

	return readCollection(r)
}

// WriteTo persists l to w uncompressed. It implements io.WriterTo.
func (l *List) WriteTo(w io.Writer) (int64, error) {
	sw, err := stream.NewFileWriter(w)
	if err != nil {
		return 0, err
	}
	err = writeCollection(sw, l, config{compression: defaultCompression})

	return sw.Len(), err
}

// WriteFile persists l to the file at path, creating or truncating it.
func (l *List) WriteFile(path string, opts ...Option) (err error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	w, err := stream.NewFileWriter(f)
	if err != nil {
		return err
	}

	return writeCollection(w, l, cfg)
}

// ReadFile restores a list from the file at path. The file is memory mapped
// for the duration of the call.
func ReadFile(path string) (l *List, err error) {
	r, err := stream.OpenMapped(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	return readCollection(r)
}
