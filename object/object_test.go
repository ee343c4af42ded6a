package object

import (
	"bytes"
	"debug/elf"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/section"
	"github.com/arloliu/mvpuobj/serialize"
)

func newCore(typ format.Type) *Container {
	c := New()
	c.SetMachine(format.MachineMTKVPU)
	c.SetType(typ)
	c.SetEntry(0x400)

	return c
}

func newFullContainer() *Container {
	c := newCore(format.TypeExec)
	c.SetText([]byte{0x13, 0x00, 0x00, 0x00, 0x67, 0x80, 0x00, 0x00}, 16)
	c.SetTextAddr(0x400)
	c.SetDebugID(section.NewDebugID(section.KindCU, 3, 7))
	c.SetSpillInfo(section.SpillInfo{Locs: []section.SpillLoc{
		{PC: 0x10, Slot: 1, Type: section.SpillVPUStore, Var: "v3"},
	}})
	c.SetSWPInfo(section.SWPInfo{Locs: []section.SWPLoc{{PC: 0x20}, {PC: 0x24}}})
	c.SetCFGInfo(section.ControlFlowGraph{Edges: []section.Edge{
		{From: section.BasicBlockRange{First: 0, Last: 0x1c}, To: section.BasicBlockRange{First: 0x20, Last: 0x3c}},
	}})
	c.SetSrcInfo(section.SrcInfo{"kernel.c": {"12", "13"}})
	c.SetSymbolInfo(section.SymbolInfo{"lut": {Space: section.SpaceConstMem, Addr: 0x100}})
	c.SetPMSize(4096)
	c.SetVerifyInfo("golden:ok")
	c.SetLatencyInfo(section.LatencyInfo{Locs: []section.LatencyLoc{
		{Key: section.LatencyKey{PC: 0x10, Slot: 1}, Entry: section.LatencyEntry{Table: section.TableV, Consumer: 1, Latency: 4}},
	}})
	c.SetCommentInfo(section.CommentInfo{"mvpu-cc 2.1"})

	return c
}

func TestNew_Unset(t *testing.T) {
	c := New()

	require.False(t, c.HasMachine())
	require.False(t, c.HasType())
	require.False(t, c.HasEntry())
	require.False(t, c.HasText())
	require.Equal(t, uint64(DefaultTextAlign), c.TextAlign())
	require.Empty(t, c.SectionNames())

	_, ok := c.PMSize()
	require.False(t, ok)

	_, err := c.Save()
	require.ErrorIs(t, err, errs.ErrMissingCoreField)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := newFullContainer()
	require.NoError(t, c.SetSection(".vendor.note", []byte("hello")))

	image, err := c.Save()
	require.NoError(t, err)

	got, err := Load(image)
	require.NoError(t, err)

	machine, _ := got.Machine()
	typ, _ := got.Type()
	entry, _ := got.Entry()
	require.Equal(t, format.MachineMTKVPU, machine)
	require.Equal(t, format.TypeExec, typ)
	require.Equal(t, uint64(0x400), entry)

	text, ok := got.Text()
	require.True(t, ok)
	require.Equal(t, []byte{0x13, 0x00, 0x00, 0x00, 0x67, 0x80, 0x00, 0x00}, text)
	require.Equal(t, uint64(16), got.TextAlign())
	require.Equal(t, uint64(0x400), got.TextAddr())

	require.Equal(t, c.debugID, got.debugID)
	require.Equal(t, c.spill, got.spill)
	require.Equal(t, c.swp, got.swp)
	require.Equal(t, c.cfg, got.cfg)
	require.Equal(t, c.src, got.src)
	require.Equal(t, c.sym, got.sym)
	require.Equal(t, c.pmSize, got.pmSize)
	require.Equal(t, c.verify, got.verify)
	require.Equal(t, c.latency, got.latency)
	require.Equal(t, c.comment, got.comment)
	require.Equal(t, c.SectionNames(), got.SectionNames())

	raw, err := got.Section(".vendor.note")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), raw)
}

func TestSaveLoad_CommentLines(t *testing.T) {
	tests := []struct {
		name  string
		lines section.CommentInfo
		want  string
	}{
		{"empty middle line", section.CommentInfo{"a", "", "b"}, "a\x00\x00b\x00"},
		{"single empty line", section.CommentInfo{""}, "\x00"},
		{"no lines", section.CommentInfo{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCore(format.TypeRel)
			c.SetCommentInfo(tt.lines)

			before, err := c.Section(section.CommentName)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(before))

			image, err := c.Save()
			require.NoError(t, err)
			got, err := Load(image)
			require.NoError(t, err)

			lines, ok := got.CommentInfo()
			require.True(t, ok)
			require.Equal(t, tt.lines, lines)

			after, err := got.Section(section.CommentName)
			require.NoError(t, err)
			require.Equal(t, before, after)
		})
	}
}

func TestSave_Layout(t *testing.T) {
	c := newFullContainer()
	require.NoError(t, c.SetSection(".b.raw", []byte{2}))
	require.NoError(t, c.SetSection(".a.raw", []byte{1}))

	image, err := c.Save()
	require.NoError(t, err)

	f, err := elf.NewFile(bytes.NewReader(image))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, elf.ELFCLASS64, f.Class)
	require.Equal(t, elf.ELFDATA2LSB, f.Data)

	names := make([]string, 0, len(f.Sections))
	for _, s := range f.Sections[1:] {
		names = append(names, s.Name)
	}
	want := []string{section.TextName}
	want = append(want, section.Catalogue[:len(section.Catalogue)-1]...)
	want = append(want, ".a.raw", ".b.raw", section.CommentName, section.ShStrTabName)
	require.Equal(t, want, names)

	text := f.Section(section.TextName)
	require.Equal(t, elf.SHF_ALLOC|elf.SHF_EXECINSTR, text.Flags)
	require.Zero(t, text.Offset%16)

	comment := f.Section(section.CommentName)
	require.Equal(t, elf.SHF_MERGE|elf.SHF_STRINGS, comment.Flags)
	require.Equal(t, uint64(1), comment.Entsize)

	require.Len(t, f.Progs, 1)
	prog := f.Progs[0]
	require.Equal(t, elf.PT_LOAD, prog.Type)
	require.Equal(t, uint64(0x400), prog.Vaddr)
	require.Equal(t, text.Offset, prog.Off)

	code, err := io.ReadAll(prog.Open())
	require.NoError(t, err)
	require.Equal(t, []byte{0x13, 0x00, 0x00, 0x00, 0x67, 0x80, 0x00, 0x00}, code)
}

func TestSave_NoProgramHeaderForRelocatable(t *testing.T) {
	c := newCore(format.TypeRel)
	c.SetText([]byte{1, 2, 3, 4}, 0)

	image, err := c.Save()
	require.NoError(t, err)

	f, err := elf.NewFile(bytes.NewReader(image))
	require.NoError(t, err)
	defer f.Close()

	require.Empty(t, f.Progs)
	require.Equal(t, uint64(DefaultTextAlign), f.Section(section.TextName).Addralign)
}

func TestSectionIndependence(t *testing.T) {
	setters := map[string]func(c *Container){
		section.DebugIDName:    func(c *Container) { c.SetDebugID(section.NewDebugID(section.KindHGC, 1, 1)) },
		section.SpillInfoName:  func(c *Container) { c.SetSpillInfo(section.SpillInfo{Locs: []section.SpillLoc{{PC: 4}}}) },
		section.SWPInfoName:    func(c *Container) { c.SetSWPInfo(section.SWPInfo{Locs: []section.SWPLoc{{PC: 4}}}) },
		section.CFGInfoName:    func(c *Container) { c.SetCFGInfo(section.ControlFlowGraph{Edges: []section.Edge{{}}}) },
		section.SrcInfoName:    func(c *Container) { c.SetSrcInfo(section.SrcInfo{"a.c": {"1"}}) },
		section.SymbolInfoName: func(c *Container) { c.SetSymbolInfo(section.SymbolInfo{"x": {Addr: 8}}) },
		section.PMSizeName:     func(c *Container) { c.SetPMSize(64) },
		section.VerifyInfoName: func(c *Container) { c.SetVerifyInfo("v") },
		section.LatencyName:    func(c *Container) { c.SetLatencyInfo(section.LatencyInfo{Locs: []section.LatencyLoc{{}}}) },
		section.CommentName:    func(c *Container) { c.SetCommentInfo(section.CommentInfo{"c"}) },
	}
	require.Len(t, setters, len(section.Catalogue))

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			c := newCore(format.TypeRel)
			set(c)
			require.Equal(t, []string{name}, c.SectionNames())

			image, err := c.Save()
			require.NoError(t, err)

			got, err := Load(image)
			require.NoError(t, err)
			require.Equal(t, []string{name}, got.SectionNames())

			want, err := c.Section(name)
			require.NoError(t, err)
			payload, err := got.Section(name)
			require.NoError(t, err)
			require.Equal(t, want, payload)
		})
	}
}

func TestRawSections(t *testing.T) {
	c := newCore(format.TypeDyn)

	require.ErrorIs(t, c.SetSection(section.SpillInfoName, nil), errs.ErrReservedSection)
	require.ErrorIs(t, c.SetSection(section.TextName, nil), errs.ErrReservedSection)
	require.ErrorIs(t, c.SetSection("", nil), errs.ErrInvalidSectionName)
	require.ErrorIs(t, c.SetSection("a\x00b", nil), errs.ErrInvalidSectionName)

	require.NoError(t, c.SetSection(".note", []byte("abc")))
	require.True(t, c.HasSection(".note"))
	size, err := c.SectionSize(".note")
	require.NoError(t, err)
	require.Equal(t, 3, size)

	require.NoError(t, c.SetSection(".note", []byte("abcdef")))
	size, err = c.SectionSize(".note")
	require.NoError(t, err)
	require.Equal(t, 6, size)

	_, err = c.Section(".missing")
	require.ErrorIs(t, err, errs.ErrSectionNotFound)
	_, err = c.Section(section.PMSizeName)
	require.ErrorIs(t, err, errs.ErrSectionNotFound)

	require.True(t, c.RemoveSection(".note"))
	require.False(t, c.RemoveSection(".note"))
	require.False(t, c.HasSection(".note"))
}

func TestLoad_Rejects(t *testing.T) {
	_, err := Load([]byte("not an elf image"))
	require.ErrorIs(t, err, errs.ErrInvalidContainer)

	c := newCore(format.TypeRel)
	c.SetMachine(format.Machine(elf.EM_X86_64))
	image, err := c.Save()
	require.NoError(t, err)

	_, err = Load(image)
	require.ErrorIs(t, err, errs.ErrUnsupportedMachine)
}

func TestLoad_MalformedSection(t *testing.T) {
	c := newCore(format.TypeRel)
	c.SetPMSize(128)

	image, err := c.Save()
	require.NoError(t, err)

	f, err := elf.NewFile(bytes.NewReader(image))
	require.NoError(t, err)
	off := f.Section(section.PMSizeName).Offset
	require.NoError(t, f.Close())

	image[off] = 7 // not a frame flag

	_, err = Load(image)
	require.ErrorIs(t, err, errs.ErrMalformedSection)
	require.ErrorIs(t, err, errs.ErrInvalidFrameFlag)
}

func TestEncodeDecode(t *testing.T) {
	c := newFullContainer()

	data, err := serialize.Marshal(c)
	require.NoError(t, err)

	got := New()
	require.NoError(t, serialize.Unmarshal(data, got))
	require.Equal(t, c.SectionNames(), got.SectionNames())

	size, ok := got.PMSize()
	require.True(t, ok)
	require.Equal(t, uint32(4096), size)

	_, err = serialize.Marshal(New())
	require.ErrorIs(t, err, errs.ErrMissingCoreField)
}
