package section

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/serialize"
)

// SpillType is the kind of memory access a spill instruction performs.
type SpillType uint8

const (
	SpillVPULoad SpillType = iota
	SpillVPUStore
	SpillVCULoad
	SpillVCUStore
	SpillRVLoad
	SpillRVStore
)

var spillTypeNames = [...]string{"VPULoad", "VPUStore", "VCULoad", "VCUStore", "RVLoad", "RVStore"}

// IsValid reports whether t is a known spill type.
func (t SpillType) IsValid() bool {
	return int(t) < len(spillTypeNames)
}

func (t SpillType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("SpillType(%d)", uint8(t))
	}

	return spillTypeNames[t]
}

// SpillLoc marks one spill or reload instruction.
type SpillLoc struct {
	PC   uint32
	Slot uint8
	Type SpillType
	Var  string // spilled variable
}

// Compare orders spill locations by pc, then slot.
func (l SpillLoc) Compare(other SpillLoc) int {
	if c := cmp.Compare(l.PC, other.PC); c != 0 {
		return c
	}

	return cmp.Compare(l.Slot, other.Slot)
}

// Less reports whether l sorts before other.
func (l SpillLoc) Less(other SpillLoc) bool {
	return l.Compare(other) < 0
}

// Encode writes the spill location.
func (l SpillLoc) Encode(e *serialize.Encoder) error {
	if err := e.PutU32(l.PC); err != nil {
		return err
	}
	if err := e.PutU8(l.Slot); err != nil {
		return err
	}
	if err := e.PutU8(uint8(l.Type)); err != nil {
		return err
	}

	return e.PutString(l.Var)
}

// Decode reads a spill location written by Encode.
func (l *SpillLoc) Decode(d *serialize.Decoder) error {
	var err error
	if l.PC, err = d.U32(); err != nil {
		return err
	}
	if l.Slot, err = d.U8(); err != nil {
		return err
	}

	typ, err := d.U8()
	if err != nil {
		return err
	}
	if !SpillType(typ).IsValid() {
		return fmt.Errorf("%w: spill type %d", errs.ErrInvalidEnum, typ)
	}
	l.Type = SpillType(typ)

	l.Var, err = d.Str()

	return err
}

// SpillInfo is the payload of the spill section.
type SpillInfo struct {
	Locs []SpillLoc
}

// Sort orders the locations by pc and slot.
func (s *SpillInfo) Sort() {
	slices.SortStableFunc(s.Locs, SpillLoc.Compare)
}

// Encode writes the spill locations as a counted list.
func (s SpillInfo) Encode(e *serialize.Encoder) error {
	return serialize.EncodeStream(e, s.Locs)
}

// Decode reads spill locations written by Encode.
func (s *SpillInfo) Decode(d *serialize.Decoder) error {
	locs, err := serialize.DecodeStream[SpillLoc](d)
	if err != nil {
		return err
	}
	s.Locs = locs

	return nil
}
