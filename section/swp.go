package section

import (
	"cmp"
	"slices"

	"github.com/arloliu/mvpuobj/serialize"
)

// SWPLoc marks a software-pipelining point.
type SWPLoc struct {
	PC uint32
}

// Compare orders pipelining points by pc.
func (l SWPLoc) Compare(other SWPLoc) int {
	return cmp.Compare(l.PC, other.PC)
}

// Less reports whether l sorts before other.
func (l SWPLoc) Less(other SWPLoc) bool {
	return l.PC < other.PC
}

// Encode writes the location as its pc.
func (l SWPLoc) Encode(e *serialize.Encoder) error {
	return e.PutU32(l.PC)
}

// Decode reads a location written by Encode.
func (l *SWPLoc) Decode(d *serialize.Decoder) error {
	pc, err := d.U32()
	l.PC = pc

	return err
}

// SWPInfo is the payload of the software-pipelining section.
type SWPInfo struct {
	Locs []SWPLoc
}

// Sort orders the points by pc.
func (s *SWPInfo) Sort() {
	slices.SortStableFunc(s.Locs, SWPLoc.Compare)
}

// Encode writes the locations as a counted list.
func (s SWPInfo) Encode(e *serialize.Encoder) error {
	return serialize.EncodeStream(e, s.Locs)
}

// Decode reads locations written by Encode.
func (s *SWPInfo) Decode(d *serialize.Decoder) error {
	locs, err := serialize.DecodeStream[SWPLoc](d)
	if err != nil {
		return err
	}
	s.Locs = locs

	return nil
}
