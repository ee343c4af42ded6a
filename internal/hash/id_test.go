package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestSum64(t *testing.T) {
	data := []byte(".mvpu.dbg.spill")
	require.Equal(t, xxhash.Sum64(data), Sum64(data))
	require.Equal(t, Sum64(data), String(".mvpu.dbg.spill"))
}

func TestFields(t *testing.T) {
	a := Fields(1, 2, 3)
	require.Equal(t, a, Fields(1, 2, 3))
	require.NotEqual(t, a, Fields(1, 3, 2), "field order must matter")
	require.NotEqual(t, a, Fields(1, 2))

	var raw []byte
	for _, f := range []uint64{1, 2, 3} {
		for i := range 8 {
			raw = append(raw, byte(f>>(8*i)))
		}
	}
	require.Equal(t, Sum64(raw), a)
}
