package debuginfo

import (
	"fmt"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/object"
	"github.com/arloliu/mvpuobj/section"
	"github.com/arloliu/mvpuobj/serialize"
)

// Encode writes the container image and the section addresses sorted by name.
func (e *Entry) Encode(enc *serialize.Encoder) error {
	if e.Container == nil {
		return errs.ErrNilContainer
	}
	if err := enc.Put(e.Container); err != nil {
		return err
	}

	return serialize.EncodeMap(enc, e.SectionAddrs,
		func(enc *serialize.Encoder, name string) error { return enc.PutString(name) },
		func(enc *serialize.Encoder, addr uint32) error { return enc.PutU32(addr) },
	)
}

// Decode reads an entry written by Encode into a fresh container.
func (e *Entry) Decode(d *serialize.Decoder) error {
	c := object.New()
	if err := d.Get(c); err != nil {
		return err
	}

	addrs, err := serialize.DecodeMap(d,
		func(d *serialize.Decoder) (string, error) { return d.Str() },
		func(d *serialize.Decoder) (uint32, error) { return d.U32() },
	)
	if err != nil {
		return err
	}

	e.Container = c
	e.SectionAddrs = addrs

	return nil
}

// Encode writes a u32 entry count followed by id/entry pairs in ascending id
// order, so equal lists encode to equal bytes.
func (l *List) Encode(e *serialize.Encoder) error {
	if err := e.PutU32(uint32(len(l.entries))); err != nil { //nolint:gosec
		return err
	}

	for id, entry := range l.All() {
		if err := id.Encode(e); err != nil {
			return err
		}
		if err := entry.Encode(e); err != nil {
			return fmt.Errorf("encode %s: %w", id, err)
		}
	}

	return nil
}

// Decode replaces the contents of l with the entries read from d. A repeated
// id fails with ErrDuplicateID.
func (l *List) Decode(d *serialize.Decoder) error {
	count, err := d.U32()
	if err != nil {
		return err
	}

	entries := make(map[section.DebugID]*Entry, min(int(count), 1024))
	for range count {
		var id section.DebugID
		if err := id.Decode(d); err != nil {
			return err
		}
		if _, ok := entries[id]; ok {
			return fmt.Errorf("%w: %s", errs.ErrDuplicateID, id)
		}

		entry := &Entry{}
		if err := entry.Decode(d); err != nil {
			return fmt.Errorf("decode %s: %w", id, err)
		}
		entries[id] = entry
	}
	l.entries = entries

	return nil
}
