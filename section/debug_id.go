package section

import (
	"cmp"
	"fmt"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/internal/hash"
	"github.com/arloliu/mvpuobj/serialize"
)

// Kind tells which compilation flow produced a debug record.
type Kind uint8

const (
	KindHGC Kind = iota // host-generated code
	KindCU              // compilation unit
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	return k <= KindCU
}

func (k Kind) String() string {
	switch k {
	case KindHGC:
		return "HGC"
	case KindCU:
		return "CU"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// DebugID identifies one object container inside a debug record collection.
// It is comparable and used directly as a map key.
type DebugID struct {
	Kind  Kind
	Group uint16
	Item  uint16
}

// NewDebugID creates a debug id.
func NewDebugID(kind Kind, group, item uint16) DebugID {
	return DebugID{Kind: kind, Group: group, Item: item}
}

// Hash returns the xxHash64 of the three id fields.
func (id DebugID) Hash() uint64 {
	return hash.Fields(uint64(id.Kind), uint64(id.Group), uint64(id.Item))
}

// Compare orders ids by kind, then group, then item.
func (id DebugID) Compare(other DebugID) int {
	if c := cmp.Compare(id.Kind, other.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(id.Group, other.Group); c != 0 {
		return c
	}

	return cmp.Compare(id.Item, other.Item)
}

func (id DebugID) String() string {
	return fmt.Sprintf("%s:%d:%d", id.Kind, id.Group, id.Item)
}

// Encode writes the id as kind, group and item.
func (id DebugID) Encode(e *serialize.Encoder) error {
	if err := e.PutU8(uint8(id.Kind)); err != nil {
		return err
	}
	if err := e.PutU16(id.Group); err != nil {
		return err
	}

	return e.PutU16(id.Item)
}

// Decode reads an id written by Encode.
func (id *DebugID) Decode(d *serialize.Decoder) error {
	kind, err := d.U8()
	if err != nil {
		return err
	}
	if !Kind(kind).IsValid() {
		return fmt.Errorf("%w: debug id kind %d", errs.ErrInvalidEnum, kind)
	}

	group, err := d.U16()
	if err != nil {
		return err
	}
	item, err := d.U16()
	if err != nil {
		return err
	}

	*id = DebugID{Kind: Kind(kind), Group: group, Item: item}

	return nil
}
