package mvpuobj

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/mvpuobj/arena"
	"github.com/arloliu/mvpuobj/debuginfo"
	"github.com/arloliu/mvpuobj/errs"
	"github.com/arloliu/mvpuobj/format"
	"github.com/arloliu/mvpuobj/section"
)

func TestNewArena(t *testing.T) {
	a, err := NewArena(16, arena.WithPointerSize(4))
	require.NoError(t, err)
	require.Equal(t, 16, a.Len())

	_, err = NewArena(16, arena.WithAlignment(3))
	require.ErrorIs(t, err, errs.ErrInvalidAlignment)
}

func TestNewObject(t *testing.T) {
	obj := NewObject(format.MachineMTKRV5, format.TypeExec, 0x80)
	obj.SetText([]byte{0x13, 0, 0, 0}, 4)

	image, err := obj.Save()
	require.NoError(t, err)

	got, err := LoadObject(image)
	require.NoError(t, err)
	machine, ok := got.Machine()
	require.True(t, ok)
	require.Equal(t, format.MachineMTKRV5, machine)
	entry, _ := got.Entry()
	require.Equal(t, uint64(0x80), entry)
}

func TestDebugInfoFile(t *testing.T) {
	id := section.NewDebugID(section.KindCU, 1, 0)
	list := NewDebugInfoList()
	_, err := list.Add(id, NewObject(format.MachineMTKVPU, format.TypeRel, 0))
	require.NoError(t, err)
	require.NoError(t, list.SetSectionAddr(id, section.TextName, 0x8000))

	path := filepath.Join(t.TempDir(), "kernels.dbg")
	require.NoError(t, list.WriteFile(path, debuginfo.WithCompression(format.CompressionS2)))

	got, err := ReadDebugInfo(path)
	require.NoError(t, err)
	addr, err := got.SectionAddr(id, section.TextName)
	require.NoError(t, err)
	require.Equal(t, uint32(0x8000), addr)
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	_, err := LoadObject([]byte("not an object"))
	require.ErrorIs(t, err, errs.ErrInvalidContainer)
	require.Equal(t, 1, logs.FilterMessage("rejected object image").Len())

	require.NoError(t, NewDebugInfoList().Merge(nil))
	list := NewDebugInfoList()
	_, err = list.Add(section.NewDebugID(section.KindHGC, 0, 1), NewObject(format.MachineMTKVPU, format.TypeRel, 0))
	require.NoError(t, err)
	require.NoError(t, NewDebugInfoList().Merge(list))
	require.Equal(t, 1, logs.FilterMessage("merged debug records").Len())
}
