package object

import (
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/section"
)

// DefaultTextAlign is the .text alignment used when SetText is given zero.
const DefaultTextAlign = 4

type optional[T any] struct {
	val T
	ok  bool
}

func some[T any](v T) optional[T] {
	return optional[T]{val: v, ok: true}
}

func (o optional[T]) get() (T, bool) {
	return o.val, o.ok
}

// Container is one compiled unit.
type Container struct {
	machine optional[format.Machine]
	typ     optional[format.Type]
	entry   optional[uint64]

	text      optional[[]byte]
	textAddr  uint64
	textAlign uint64

	debugID optional[section.DebugID]
	spill   optional[section.SpillInfo]
	swp     optional[section.SWPInfo]
	cfg     optional[section.ControlFlowGraph]
	src     optional[section.SrcInfo]
	sym     optional[section.SymbolInfo]
	pmSize  optional[section.PMSize]
	verify  optional[section.VerifyInfo]
	latency optional[section.LatencyInfo]
	comment optional[section.CommentInfo]

	raw map[string][]byte
}

// New creates an empty container with every field unset.
func New() *Container {
	return &Container{
		textAlign: DefaultTextAlign,
		raw:       make(map[string][]byte),
	}
}

// Machine returns the target machine.
func (c *Container) Machine() (format.Machine, bool) { return c.machine.get() }

// HasMachine reports whether the machine is set.
func (c *Container) HasMachine() bool { return c.machine.ok }

// SetMachine sets the target machine.
func (c *Container) SetMachine(m format.Machine) { c.machine = some(m) }

// Type returns the container kind.
func (c *Container) Type() (format.Type, bool) { return c.typ.get() }

// HasType reports whether the container kind is set.
func (c *Container) HasType() bool { return c.typ.ok }

// SetType sets the container kind.
func (c *Container) SetType(t format.Type) { c.typ = some(t) }

// Entry returns the entry address.
func (c *Container) Entry() (uint64, bool) { return c.entry.get() }

// HasEntry reports whether the entry address is set.
func (c *Container) HasEntry() bool { return c.entry.ok }

// SetEntry sets the entry address.
func (c *Container) SetEntry(addr uint64) { c.entry = some(addr) }

// Text returns the opaque machine code payload.
func (c *Container) Text() ([]byte, bool) { return c.text.get() }

// HasText reports whether a text payload is set.
func (c *Container) HasText() bool { return c.text.ok }

// SetText sets the text payload and its alignment. The container keeps data.
// A zero align selects DefaultTextAlign.
func (c *Container) SetText(data []byte, align uint64) {
	if align == 0 {
		align = DefaultTextAlign
	}
	c.text = some(data)
	c.textAlign = align
}

// TextAlign returns the alignment of the text payload.
func (c *Container) TextAlign() uint64 { return c.textAlign }

// TextAddr returns the load address of the text payload.
func (c *Container) TextAddr() uint64 { return c.textAddr }

// SetTextAddr sets the load address of the text payload.
func (c *Container) SetTextAddr(addr uint64) { c.textAddr = addr }

// DebugID returns the identifier of the container's debug record.
func (c *Container) DebugID() (section.DebugID, bool) { return c.debugID.get() }

// HasDebugID reports whether the debug id section is set.
func (c *Container) HasDebugID() bool { return c.debugID.ok }

// SetDebugID sets the debug id section.
func (c *Container) SetDebugID(id section.DebugID) { c.debugID = some(id) }

// SpillInfo returns the spill section.
func (c *Container) SpillInfo() (section.SpillInfo, bool) { return c.spill.get() }

// HasSpillInfo reports whether the spill section is set.
func (c *Container) HasSpillInfo() bool { return c.spill.ok }

// SetSpillInfo replaces the spill section.
func (c *Container) SetSpillInfo(info section.SpillInfo) { c.spill = some(info) }

// SWPInfo returns the software-pipelining section.
func (c *Container) SWPInfo() (section.SWPInfo, bool) { return c.swp.get() }

// HasSWPInfo reports whether the software-pipelining section is set.
func (c *Container) HasSWPInfo() bool { return c.swp.ok }

// SetSWPInfo replaces the software-pipelining section.
func (c *Container) SetSWPInfo(info section.SWPInfo) { c.swp = some(info) }

// CFGInfo returns the control-flow section.
func (c *Container) CFGInfo() (section.ControlFlowGraph, bool) { return c.cfg.get() }

// HasCFGInfo reports whether the control-flow section is set.
func (c *Container) HasCFGInfo() bool { return c.cfg.ok }

// SetCFGInfo replaces the control-flow section.
func (c *Container) SetCFGInfo(cfg section.ControlFlowGraph) { c.cfg = some(cfg) }

// SrcInfo returns the source mapping section.
func (c *Container) SrcInfo() (section.SrcInfo, bool) { return c.src.get() }

// HasSrcInfo reports whether the source mapping section is set.
func (c *Container) HasSrcInfo() bool { return c.src.ok }

// SetSrcInfo replaces the source mapping section.
func (c *Container) SetSrcInfo(info section.SrcInfo) { c.src = some(info) }

// SymbolInfo returns the symbol address section.
func (c *Container) SymbolInfo() (section.SymbolInfo, bool) { return c.sym.get() }

// HasSymbolInfo reports whether the symbol address section is set.
func (c *Container) HasSymbolInfo() bool { return c.sym.ok }

// SetSymbolInfo replaces the symbol address section.
func (c *Container) SetSymbolInfo(info section.SymbolInfo) { c.sym = some(info) }

// PMSize returns the private memory size in bytes.
func (c *Container) PMSize() (uint32, bool) {
	size, ok := c.pmSize.get()
	return uint32(size), ok
}

// HasPMSize reports whether the private memory size section is set.
func (c *Container) HasPMSize() bool { return c.pmSize.ok }

// SetPMSize sets the private memory size in bytes.
func (c *Container) SetPMSize(size uint32) { c.pmSize = some(section.PMSize(size)) }

// VerifyInfo returns the verification string.
func (c *Container) VerifyInfo() (string, bool) {
	info, ok := c.verify.get()
	return string(info), ok
}

// HasVerifyInfo reports whether the verification section is set.
func (c *Container) HasVerifyInfo() bool { return c.verify.ok }

// SetVerifyInfo sets the verification string.
func (c *Container) SetVerifyInfo(info string) { c.verify = some(section.VerifyInfo(info)) }

// LatencyInfo returns the latency section.
func (c *Container) LatencyInfo() (section.LatencyInfo, bool) { return c.latency.get() }

// HasLatencyInfo reports whether the latency section is set.
func (c *Container) HasLatencyInfo() bool { return c.latency.ok }

// SetLatencyInfo replaces the latency section.
func (c *Container) SetLatencyInfo(info section.LatencyInfo) { c.latency = some(info) }

// CommentInfo returns the .comment lines.
func (c *Container) CommentInfo() (section.CommentInfo, bool) { return c.comment.get() }

// HasCommentInfo reports whether the .comment section is set.
func (c *Container) HasCommentInfo() bool { return c.comment.ok }

// SetCommentInfo replaces the .comment lines.
func (c *Container) SetCommentInfo(lines section.CommentInfo) { c.comment = some(lines) }
