// Package mvpuobj is the binary object layer of a vector-processor compiler
// toolchain.
//
// It builds pointer-linked records in a relocatable arena, carries compiled
// units in ELF-based object containers with typed debug sections, and collects
// the containers of many units into mergeable debug record lists that can be
// persisted and mapped back from disk.
//
// # Core Features
//
//   - Relocatable arena with a self-describing pointer fixup table
//   - Tagged stream codec with null-safe pointer frames and zero-copy reads
//   - Object containers with nine typed debug sections plus raw sections
//   - Debug record lists with all-or-nothing merge and bulk id renames
//   - Optional compression (None, Zstd, S2, LZ4) of persisted lists
//   - xxHash64 checksums for data integrity
//
// # Basic Usage
//
// Building a container and collecting it:
//
//	import "github.com/arloliu/mvpuobj"
//
//	obj := mvpuobj.NewObject(format.MachineMTKVPU, format.TypeExec, 0x400)
//	obj.SetText(code, 16)
//	obj.SetPMSize(4096)
//
//	list := mvpuobj.NewDebugInfoList()
//	id := section.NewDebugID(section.KindCU, 1, 0)
//	_, _ = list.Add(id, obj)
//	_ = list.SetSectionAddr(id, ".text", 0x8000)
//
//	_ = list.WriteFile("kernels.dbg", debuginfo.WithCompression(format.CompressionZstd))
//
// Reading it back:
//
//	list, _ := mvpuobj.ReadDebugInfo("kernels.dbg")
//	obj, _ := list.Find(id)
//
// # Package Structure
//
// This package provides convenient top-level wrappers for the most common use
// cases. For fine-grained control, use the arena, stream, serialize, object
// and debuginfo packages directly.
package mvpuobj

import (
	"go.uber.org/zap"

	"github.com/arloliu/mvpuobj/arena"
	"github.com/arloliu/mvpuobj/debuginfo"
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/internal/logging"
	"github.com/arloliu/mvpuobj/object"
)

// NewArena creates an arena whose root record is rootSize bytes.
//
// Parameters:
//   - rootSize: Size of the root record at offset 0
//   - opts: Arena options (alignment, pointer size, byte order, load base)
//
// Returns:
//   - *arena.Arena: A new arena
//   - error: Invalid option
//
// Example:
//
//	a, _ := mvpuobj.NewArena(16, arena.WithPointerSize(4))
//	names := a.Allocate(0, 8)
//	blob, _ := a.Flush(8, 12, arena.Omit)
func NewArena(rootSize int, opts ...arena.Option) (*arena.Arena, error) {
	return arena.New(rootSize, opts...)
}

// NewObject creates a container with its core fields set, ready to Save.
func NewObject(machine format.Machine, typ format.Type, entry uint64) *object.Container {
	c := object.New()
	c.SetMachine(machine)
	c.SetType(typ)
	c.SetEntry(entry)

	return c
}

// LoadObject parses an ELF image into a container.
func LoadObject(data []byte) (*object.Container, error) {
	return object.Load(data)
}

// NewDebugInfoList creates an empty debug record list.
func NewDebugInfoList() *debuginfo.List {
	return debuginfo.New()
}

// ReadDebugInfo restores a debug record list from the file at path.
func ReadDebugInfo(path string) (*debuginfo.List, error) {
	return debuginfo.ReadFile(path)
}

// SetLogger configures the logger shared by every package of the module. A
// nil logger restores the no-op default. It may be called at any time,
// including while other goroutines are logging.
func SetLogger(l *zap.Logger) {
	logging.SetLogger(l)
}
