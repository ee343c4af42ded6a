package section

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/serialize"
)

// LatencyTable names the hardware latency table an edge was looked up in.
type LatencyTable uint8

const (
	TableV LatencyTable = iota
	TableVpair
	TableN
	TableNpair
	TableB
	TableU
	TableSMR
	TableGCC
	TableHWReg
	TableACR
	TableInternalACR
	TableVquad
	TableRV
	TableCustom
	TableFloating
	TableUnknown
)

var latencyTableNames = [...]string{
	"V", "Vpair", "N", "Npair", "B", "U", "SMR", "GCC",
	"HW_REG", "ACR", "Internal_ACR", "Vquad", "RV", "Custom", "Floating", "Unknown",
}

// IsValid reports whether t is a known table.
func (t LatencyTable) IsValid() bool {
	return int(t) < len(latencyTableNames)
}

func (t LatencyTable) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("LatencyTable(%d)", uint8(t))
	}

	return latencyTableNames[t]
}

// DependencyKind classifies the data dependency behind a latency edge.
type DependencyKind uint8

const (
	DepRAW DependencyKind = iota
	DepRAR
	DepWAR
	DepWAW
	DepNone
)

var dependencyKindNames = [...]string{"RAW", "RAR", "WAR", "WAW", "NoDep"}

// IsValid reports whether k is a known dependency kind.
func (k DependencyKind) IsValid() bool {
	return int(k) < len(dependencyKindNames)
}

func (k DependencyKind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("DependencyKind(%d)", uint8(k))
	}

	return dependencyKindNames[k]
}

// LatencyKey locates the consumer instruction of a latency edge.
type LatencyKey struct {
	PC   uint32
	Slot uint8
}

// Compare orders keys by pc, then slot.
func (k LatencyKey) Compare(other LatencyKey) int {
	if c := cmp.Compare(k.PC, other.PC); c != 0 {
		return c
	}

	return cmp.Compare(k.Slot, other.Slot)
}

// Less reports whether k sorts before other.
func (k LatencyKey) Less(other LatencyKey) bool {
	return k.Compare(other) < 0
}

// LatencyEntry describes the latency between a producer and a consumer
// operand.
type LatencyEntry struct {
	Table    LatencyTable
	Producer uint8 // producer operand index
	Consumer uint8 // consumer operand index
	Latency  uint8 // cycles
}

// LatencyLoc is one record of the latency section.
type LatencyLoc struct {
	Key   LatencyKey
	Entry LatencyEntry
}

// Compare orders records by key only.
func (l LatencyLoc) Compare(other LatencyLoc) int {
	return l.Key.Compare(other.Key)
}

// Less reports whether l sorts before other.
func (l LatencyLoc) Less(other LatencyLoc) bool {
	return l.Key.Less(other.Key)
}

// Encode writes the location key followed by its table entry.
func (l LatencyLoc) Encode(e *serialize.Encoder) error {
	for _, put := range [...]func() error{
		func() error { return e.PutU32(l.Key.PC) },
		func() error { return e.PutU8(l.Key.Slot) },
		func() error { return e.PutU8(uint8(l.Entry.Table)) },
		func() error { return e.PutU8(l.Entry.Producer) },
		func() error { return e.PutU8(l.Entry.Consumer) },
		func() error { return e.PutU8(l.Entry.Latency) },
	} {
		if err := put(); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads a location written by Encode.
func (l *LatencyLoc) Decode(d *serialize.Decoder) error {
	var err error
	if l.Key.PC, err = d.U32(); err != nil {
		return err
	}
	if l.Key.Slot, err = d.U8(); err != nil {
		return err
	}

	table, err := d.U8()
	if err != nil {
		return err
	}
	if !LatencyTable(table).IsValid() {
		return fmt.Errorf("%w: latency table %d", errs.ErrInvalidEnum, table)
	}
	l.Entry.Table = LatencyTable(table)

	if l.Entry.Producer, err = d.U8(); err != nil {
		return err
	}
	if l.Entry.Consumer, err = d.U8(); err != nil {
		return err
	}
	l.Entry.Latency, err = d.U8()

	return err
}

// LatencyInfo is the payload of the latency section.
type LatencyInfo struct {
	Locs []LatencyLoc
}

// Sort orders the records by key, keeping the order of equal keys.
func (s *LatencyInfo) Sort() {
	slices.SortStableFunc(s.Locs, LatencyLoc.Compare)
}

// Lookup returns every record at key. The records must be sorted.
func (s LatencyInfo) Lookup(key LatencyKey) []LatencyLoc {
	i, _ := slices.BinarySearchFunc(s.Locs, key, func(l LatencyLoc, k LatencyKey) int {
		return l.Key.Compare(k)
	})

	j := i
	for j < len(s.Locs) && s.Locs[j].Key == key {
		j++
	}

	return s.Locs[i:j]
}

// Encode writes the locations as a counted list.
func (s LatencyInfo) Encode(e *serialize.Encoder) error {
	return serialize.EncodeStream(e, s.Locs)
}

// Decode reads locations written by Encode.
func (s *LatencyInfo) Decode(d *serialize.Decoder) error {
	locs, err := serialize.DecodeStream[LatencyLoc](d)
	if err != nil {
		return err
	}
	s.Locs = locs

	return nil
}
