package usync

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fenwicksys/utrt/internal/config"
	"github.com/fenwicksys/utrt/pkg/kernel"
	"github.com/fenwicksys/utrt/pkg/tcb"
)

func newTestKernel(t *testing.T) *kernel.Kernel {
	t.Helper()
	cfg := config.Default()
	cfg.MaxThreads = 5
	cfg.PreemptionEnabled = false
	k, err := kernel.Init(cfg)
	require.NoError(t, err)
	t.Cleanup(k.Shutdown)
	return k
}

// TestCondFIFOOrder is spec.md §8 scenario 4: three threads wait on one
// condition variable in order; three successive signals wake them in
// that same order.
func TestCondFIFOOrder(t *testing.T) {
	k := newTestKernel(t)
	m := NewSpinMutex()
	cv := NewCond()

	var woke []tcb.ID
	ids := make([]tcb.ID, 3)
	for i := 0; i < 3; i++ {
		idx := i
		id, err := k.Create(func(any) any {
			m.Lock()
			cv.Wait(m)
			woke = append(woke, ids[idx])
			return nil
		}, nil)
		require.NoError(t, err)
		ids[i] = id
		k.Yield()
	}

	for i := 0; i < 3; i++ {
		cv.Signal()
		k.Yield()
	}

	require.Equal(t, ids, woke)
}

// TestCondBroadcastDrainsQueue is spec.md §8 scenario 5.
func TestCondBroadcastDrainsQueue(t *testing.T) {
	k := newTestKernel(t)
	m := NewSpinMutex()
	cv := NewCond()

	const n = 4
	ran := make([]bool, n)
	for i := 0; i < n; i++ {
		idx := i
		_, err := k.Create(func(any) any {
			m.Lock()
			cv.Wait(m)
			ran[idx] = true
			return nil
		}, nil)
		require.NoError(t, err)
		k.Yield()
	}

	require.True(t, cv.waiters.Len() == n)
	cv.Broadcast()
	require.True(t, cv.waiters.Empty())

	for i := 0; i < n; i++ {
		k.Yield()
	}
	for i, done := range ran {
		require.True(t, done, "thread %d never ran after broadcast", i+1)
	}
}

func TestSignalOnEmptyQueueIsNoop(t *testing.T) {
	cv := NewCond()
	cv.Signal() // must not panic or block
	require.True(t, cv.waiters.Empty())
}
