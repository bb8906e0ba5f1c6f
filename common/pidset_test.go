package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPIDSet(t *testing.T) {
	var s PIDSet
	require.Equal(t, 0, s.Count())
	require.False(t, s.Has(0))

	s.Set(0)
	s.Set(256)
	s.Set(8191)
	require.True(t, s.Has(0))
	require.True(t, s.Has(256))
	require.True(t, s.Has(8191))
	require.False(t, s.Has(255))
	require.Equal(t, 3, s.Count())
	require.Equal(t, []uint16{0, 256, 8191}, s.Pids())

	s.Clear(256)
	require.False(t, s.Has(256))
	require.Equal(t, 2, s.Count())

	// out of range pids are ignored
	s.Set(8192)
	require.Equal(t, 2, s.Count())
	require.False(t, s.Has(8192))
}
