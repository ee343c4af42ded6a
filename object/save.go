package object

import (
	"debug/elf"
	"encoding/binary"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/arloliu/mvpuobj/endian"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/internal/logging"
	"github.com/arloliu/mvpuobj/internal/pool"
	"github.com/arloliu/mvpuobj/section"
)

// ELF64 structure sizes.
const (
	elfHeaderSize     = 64
	progHeaderSize    = 56
	sectionHeaderSize = 64
)

// outSection is one section scheduled for writing.
type outSection struct {
	name    string
	typ     elf.SectionType
	flags   elf.SectionFlag
	addr    uint64
	align   uint64
	entsize uint64
	data    []byte

	nameOff uint32
	offset  uint64
}

func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}

	return (n + align - 1) / align * align
}

// collectSections orders the sections: .text, the typed sections in
// catalogue order, raw sections sorted by name, .comment, then .shstrtab.
func (c *Container) collectSections() ([]*outSection, error) {
	var out []*outSection

	if text, ok := c.text.get(); ok {
		out = append(out, &outSection{
			name:  section.TextName,
			typ:   elf.SHT_PROGBITS,
			flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR,
			addr:  c.textAddr,
			align: c.textAlign,
			data:  text,
		})
	}

	var comment *outSection
	for _, ts := range catalogue {
		if !ts.has(c) {
			continue
		}

		data, err := ts.encode(c)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", ts.name, err)
		}

		s := &outSection{name: ts.name, typ: elf.SHT_PROGBITS, align: 1, data: data}
		if ts.name == section.CommentName {
			s.flags = elf.SHF_MERGE | elf.SHF_STRINGS
			s.entsize = 1
			comment = s

			continue
		}
		out = append(out, s)
	}

	for _, name := range c.RawSectionNames() {
		out = append(out, &outSection{name: name, typ: elf.SHT_PROGBITS, align: 1, data: c.raw[name]})
	}

	if comment != nil {
		out = append(out, comment)
	}

	return out, nil
}

// Save serializes the container into a little-endian ELF64 image.
//
// An executable container with a text payload gets one PT_LOAD program header
// covering .text. The section header table follows the section data.
//
// Returns:
//   - []byte: The ELF image, owned by the caller
//   - error: ErrMissingCoreField when machine, type or entry was never set
func (c *Container) Save() ([]byte, error) {
	machine, okMachine := c.machine.get()
	typ, okType := c.typ.get()
	entry, okEntry := c.entry.get()
	if !okMachine || !okType || !okEntry {
		return nil, errs.ErrMissingCoreField
	}

	sections, err := c.collectSections()
	if err != nil {
		return nil, err
	}

	// .shstrtab holds every name, its own included
	shstrtab := []byte{0}
	shstr := &outSection{name: section.ShStrTabName, typ: elf.SHT_STRTAB, align: 1}
	sections = append(sections, shstr)
	for _, s := range sections {
		s.nameOff = uint32(len(shstrtab)) //nolint:gosec
		shstrtab = append(shstrtab, s.name...)
		shstrtab = append(shstrtab, 0)
	}
	shstr.data = shstrtab

	var text *outSection
	if len(sections) > 0 && sections[0].name == section.TextName {
		text = sections[0]
	}

	phnum := 0
	if typ == format.TypeExec && text != nil {
		phnum = 1
	}

	offset := uint64(elfHeaderSize + phnum*progHeaderSize)
	for _, s := range sections {
		offset = alignUp(offset, s.align)
		s.offset = offset
		offset += uint64(len(s.data))
	}
	shoff := alignUp(offset, 8)

	engine := endian.GetLittleEndianEngine()
	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)
	buf.Grow(int(shoff) + (len(sections)+1)*sectionHeaderSize) //nolint:gosec

	header := elf.Header64{
		Type:      uint16(typ),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Shoff:     shoff,
		Ehsize:    elfHeaderSize,
		Phentsize: progHeaderSize,
		Phnum:     uint16(phnum), //nolint:gosec
		Shentsize: sectionHeaderSize,
		Shnum:     uint16(len(sections) + 1),
		Shstrndx:  uint16(len(sections)),
	}
	copy(header.Ident[:], elf.ELFMAG)
	header.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	header.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	header.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	header.Ident[elf.EI_OSABI] = byte(elf.ELFOSABI_NONE)
	if phnum > 0 {
		header.Phoff = elfHeaderSize
	}

	if err := binary.Write(buf, engine, &header); err != nil {
		return nil, err
	}

	if phnum > 0 {
		prog := elf.Prog64{
			Type:   uint32(elf.PT_LOAD),
			Flags:  uint32(elf.PF_R | elf.PF_X),
			Off:    text.offset,
			Vaddr:  text.addr,
			Paddr:  text.addr,
			Filesz: uint64(len(text.data)),
			Memsz:  uint64(len(text.data)),
			Align:  text.align,
		}
		if err := binary.Write(buf, engine, &prog); err != nil {
			return nil, err
		}
	}

	for _, s := range sections {
		pad(buf, s.offset)
		buf.MustWrite(s.data)
	}
	pad(buf, shoff)

	headers := make([]elf.Section64, 0, len(sections)+1)
	headers = append(headers, elf.Section64{})
	for _, s := range sections {
		headers = append(headers, elf.Section64{
			Name:      s.nameOff,
			Type:      uint32(s.typ),
			Flags:     uint64(s.flags),
			Addr:      s.addr,
			Off:       s.offset,
			Size:      uint64(len(s.data)),
			Addralign: s.align,
			Entsize:   s.entsize,
		})
	}
	if err := binary.Write(buf, engine, headers); err != nil {
		return nil, err
	}

	image := make([]byte, buf.Len())
	copy(image, buf.Bytes())

	logging.Logger().Debug("saved object container",
		zap.Stringer("machine", machine),
		zap.Int("sections", len(sections)),
		zap.String("size", humanize.Bytes(uint64(len(image)))))

	return image, nil
}

// pad writes zero bytes until the buffer is offset bytes long.
func pad(buf *pool.ByteBuffer, offset uint64) {
	for uint64(buf.Len()) < offset {
		_ = buf.WriteByte(0)
	}
}
