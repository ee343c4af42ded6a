package section

import (
	"cmp"
	"fmt"

	"github.com/arloliu/mvpuobj/internal/hash"
	"github.com/arloliu/mvpuobj/serialize"
)

// BasicBlockRange is the inclusive pc range of a basic block.
type BasicBlockRange struct {
	First uint32
	Last  uint32
}

// Hash returns the xxHash64 of both bounds.
func (r BasicBlockRange) Hash() uint64 {
	return hash.Fields(uint64(r.First), uint64(r.Last))
}

// Compare orders ranges by first pc, then last pc.
func (r BasicBlockRange) Compare(other BasicBlockRange) int {
	if c := cmp.Compare(r.First, other.First); c != 0 {
		return c
	}

	return cmp.Compare(r.Last, other.Last)
}

// Less reports whether r sorts before other.
func (r BasicBlockRange) Less(other BasicBlockRange) bool {
	return r.Compare(other) < 0
}

// Contains reports whether pc lies inside the block.
func (r BasicBlockRange) Contains(pc uint32) bool {
	return pc >= r.First && pc <= r.Last
}

func (r BasicBlockRange) String() string {
	return fmt.Sprintf("[%#x, %#x]", r.First, r.Last)
}

// Encode writes the range as start and end.
func (r BasicBlockRange) Encode(e *serialize.Encoder) error {
	if err := e.PutU32(r.First); err != nil {
		return err
	}

	return e.PutU32(r.Last)
}

// Decode reads a range written by Encode.
func (r *BasicBlockRange) Decode(d *serialize.Decoder) error {
	var err error
	if r.First, err = d.U32(); err != nil {
		return err
	}
	r.Last, err = d.U32()

	return err
}

// Edge is a control-flow edge between two basic blocks.
type Edge struct {
	From BasicBlockRange
	To   BasicBlockRange
}

// Encode writes the edge as source and destination.
func (ed Edge) Encode(e *serialize.Encoder) error {
	if err := ed.From.Encode(e); err != nil {
		return err
	}

	return ed.To.Encode(e)
}

// Decode reads an edge written by Encode.
func (ed *Edge) Decode(d *serialize.Decoder) error {
	if err := ed.From.Decode(d); err != nil {
		return err
	}

	return ed.To.Decode(d)
}

// ControlFlowGraph is the payload of the control-flow section.
type ControlFlowGraph struct {
	Edges []Edge
}

// Successors returns the blocks reachable in one step from block, in edge
// order.
func (g ControlFlowGraph) Successors(block BasicBlockRange) []BasicBlockRange {
	var out []BasicBlockRange
	for _, ed := range g.Edges {
		if ed.From == block {
			out = append(out, ed.To)
		}
	}

	return out
}

// Blocks returns every distinct block of the graph in first-seen order.
func (g ControlFlowGraph) Blocks() []BasicBlockRange {
	seen := make(map[BasicBlockRange]struct{}, 2*len(g.Edges))
	var out []BasicBlockRange
	for _, ed := range g.Edges {
		for _, b := range [2]BasicBlockRange{ed.From, ed.To} {
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			out = append(out, b)
		}
	}

	return out
}

// Encode writes the edges as a counted list.
func (g ControlFlowGraph) Encode(e *serialize.Encoder) error {
	return serialize.EncodeStream(e, g.Edges)
}

// Decode reads a graph written by Encode.
func (g *ControlFlowGraph) Decode(d *serialize.Decoder) error {
	edges, err := serialize.DecodeStream[Edge](d)
	if err != nil {
		return err
	}
	g.Edges = edges

	return nil
}
