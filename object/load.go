package object

import (
	"bytes"
	"debug/elf"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/internal/logging"
	"github.com/arloliu/mvpuobj/section"
)

// Load parses an ELF image into a container.
//
// The machine, type and entry address are always set on the result. Every
// catalogued section present in the image is decoded into its typed field,
// .text becomes the text payload, and any other section is kept as a raw
// section. Sections absent from the image stay unset.
//
// Parameters:
//   - data: ELF32 or ELF64 image of either byte order
//
// Returns:
//   - *Container: The loaded container
//   - error: ErrInvalidContainer when data is not ELF, ErrUnsupportedMachine for
//     a foreign machine, ErrMalformedSection when a typed section fails to decode
func Load(data []byte) (*Container, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		logging.Logger().Debug("rejected object image", zap.Int("size", len(data)), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidContainer, err)
	}
	defer f.Close()

	machine := format.Machine(f.Machine)
	if !machine.IsSupported() {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedMachine, machine)
	}
	typ := format.Type(f.Type)
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: object type %d", errs.ErrInvalidContainer, uint16(f.Type))
	}

	c := New()
	c.SetMachine(machine)
	c.SetType(typ)
	c.SetEntry(f.Entry)

	for _, s := range f.Sections {
		if s.Type == elf.SHT_NULL || s.Name == "" || s.Name == section.ShStrTabName {
			continue
		}
		if s.Type == elf.SHT_NOBITS {
			logging.Logger().Debug("skipped section without file data", zap.String("section", s.Name))
			continue
		}

		payload, err := s.Data()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", errs.ErrInvalidContainer, s.Name, err)
		}

		if s.Name == section.TextName {
			c.SetText(payload, s.Addralign)
			c.SetTextAddr(s.Addr)

			continue
		}

		if ts, ok := lookupTyped(s.Name); ok {
			if err := c.decodeTyped(ts, payload); err != nil {
				return nil, err
			}

			continue
		}

		c.raw[s.Name] = payload
	}

	logging.Logger().Debug("loaded object container",
		zap.Stringer("machine", machine),
		zap.Stringer("type", typ),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Int("sections", len(c.SectionNames())))

	return c, nil
}
