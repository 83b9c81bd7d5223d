package tcb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTableBootstrapSlot(t *testing.T) {
	table := NewTable(4)
	require.Equal(t, 4, table.Len())
	require.Equal(t, Active, table.Get(0).State)
	for i := 1; i < 4; i++ {
		require.Equal(t, Invalid, table.Get(ID(i)).State)
		require.Equal(t, NoJoiner, table.Get(ID(i)).JoinerID)
	}
}

func TestAllocateLowestIndexFirst(t *testing.T) {
	table := NewTable(4)
	table.Lock()
	id1, err := table.Allocate(func(any) any { return nil }, nil)
	require.NoError(t, err)
	require.Equal(t, ID(1), id1)

	id2, err := table.Allocate(func(any) any { return nil }, nil)
	require.NoError(t, err)
	require.Equal(t, ID(2), id2)
	table.Unlock()

	table.Lock()
	table.Get(id1).State = Finished
	// id1 is FINISHED, not INVALID: per the no-slot-reuse decision, a
	// fresh allocation must not reclaim it.
	id3, err := table.Allocate(func(any) any { return nil }, nil)
	require.NoError(t, err)
	require.Equal(t, ID(3), id3)
	table.Unlock()
}

func TestAllocateExhaustion(t *testing.T) {
	table := NewTable(2)
	table.Lock()
	defer table.Unlock()

	_, err := table.Allocate(func(any) any { return nil }, nil)
	require.NoError(t, err)

	_, err = table.Allocate(func(any) any { return nil }, nil)
	require.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestRelease(t *testing.T) {
	table := NewTable(2)
	table.Lock()
	id, err := table.Allocate(func(any) any { return nil }, nil)
	require.NoError(t, err)
	table.Get(id).State = Finished
	table.Release(id)
	require.Equal(t, Invalid, table.Get(id).State)
	require.Equal(t, NoJoiner, table.Get(id).JoinerID)
	table.Unlock()
}

func TestStateString(t *testing.T) {
	require.Equal(t, "ACTIVE", Active.String())
	require.Equal(t, "BLOCKED", Blocked.String())
	require.Equal(t, "FINISHED", Finished.String())
	require.Equal(t, "INVALID", Invalid.String())
	require.Contains(t, State(99).String(), "State(99)")
}
