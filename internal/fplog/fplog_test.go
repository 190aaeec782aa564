package fplog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog_WriteAndReadBack(t *testing.T) {
	l := New[int, string](4)
	l.Write(l.Head(), 1, "one")

	require.Equal(t, 1, l.KeyAt(0))
	require.Equal(t, "one", l.ValueAt(0))
}

func TestLog_AdvanceWrapsModuloCapacity(t *testing.T) {
	l := New[int, string](4)
	for i := 0; i < 4; i++ {
		require.Equal(t, uint64(i), l.Head())
		l.Write(l.Head(), i, "x")
		l.Advance()
	}
	require.Equal(t, uint64(0), l.Head())
}

func TestLog_CapacityMustBePowerOfTwo(t *testing.T) {
	require.Panics(t, func() {
		New[int, int](3)
	})
}

func TestLog_Capacity(t *testing.T) {
	l := New[int, int](8)
	require.Equal(t, 8, l.Capacity())
}
