package section

import (
	"fmt"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/serialize"
)

// SymbolSpace is the memory a symbol is allocated in.
type SymbolSpace uint8

const (
	SpaceConstMem SymbolSpace = iota
	SpaceLocalMem
)

// IsValid reports whether s is a known space.
func (s SymbolSpace) IsValid() bool {
	return s <= SpaceLocalMem
}

func (s SymbolSpace) String() string {
	switch s {
	case SpaceConstMem:
		return "ConstMem"
	case SpaceLocalMem:
		return "LocalMem"
	default:
		return fmt.Sprintf("SymbolSpace(%d)", uint8(s))
	}
}

// SymbolAddr is the base address of a symbol.
type SymbolAddr struct {
	Space SymbolSpace
	Addr  uint32
}

// Encode writes the space followed by the address.
func (a SymbolAddr) Encode(e *serialize.Encoder) error {
	if err := e.PutU8(uint8(a.Space)); err != nil {
		return err
	}

	return e.PutU32(a.Addr)
}

// Decode reads an address written by Encode.
func (a *SymbolAddr) Decode(d *serialize.Decoder) error {
	space, err := d.U8()
	if err != nil {
		return err
	}
	if !SymbolSpace(space).IsValid() {
		return fmt.Errorf("%w: symbol space %d", errs.ErrInvalidEnum, space)
	}

	addr, err := d.U32()
	if err != nil {
		return err
	}
	*a = SymbolAddr{Space: SymbolSpace(space), Addr: addr}

	return nil
}

// SymbolInfo maps symbol names to their addresses.
type SymbolInfo map[string]SymbolAddr

// Encode writes the symbol table as a name-ordered map.
func (s SymbolInfo) Encode(e *serialize.Encoder) error {
	return serialize.EncodeMap(e, s,
		func(e *serialize.Encoder, name string) error {
			return e.PutString(name)
		},
		func(e *serialize.Encoder, addr SymbolAddr) error {
			return addr.Encode(e)
		},
	)
}

// Decode reads a symbol table written by Encode.
func (s *SymbolInfo) Decode(d *serialize.Decoder) error {
	m, err := serialize.DecodeMap(d,
		func(d *serialize.Decoder) (string, error) {
			return d.Str()
		},
		func(d *serialize.Decoder) (SymbolAddr, error) {
			var addr SymbolAddr
			err := addr.Decode(d)

			return addr, err
		},
	)
	if err != nil {
		return err
	}
	*s = m

	return nil
}
