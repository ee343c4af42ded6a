package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMachine(t *testing.T) {
	require.True(t, MachineMTKRV5.IsSupported())
	require.True(t, MachineMTKVPU.IsSupported())
	require.False(t, Machine(0x3e).IsSupported())

	require.Equal(t, "MTKVPU", MachineMTKVPU.String())
	require.Equal(t, "Machine(0x3e)", Machine(0x3e).String())
}

func TestType(t *testing.T) {
	for _, typ := range []Type{TypeRel, TypeExec, TypeDyn} {
		require.True(t, typ.IsValid(), typ.String())
	}
	require.False(t, Type(0).IsValid())
	require.False(t, Type(4).IsValid())
	require.Equal(t, "EXEC", TypeExec.String())
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
}
