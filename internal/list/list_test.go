package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	var l List[int]
	require.True(t, l.Empty())

	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	require.Equal(t, 3, l.Len())

	for _, want := range []int{1, 2, 3} {
		got, ok := l.PopFront()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	require.True(t, l.Empty())
}

func TestPopFrontEmpty(t *testing.T) {
	var l List[string]
	_, ok := l.PopFront()
	require.False(t, ok)
}

func TestNoDuplicateTraversal(t *testing.T) {
	var l List[int]
	l.PushBack(1)
	l.PopFront()
	l.PushBack(2)
	l.PushBack(3)
	v, ok := l.PopFront()
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, l.Len())
}
