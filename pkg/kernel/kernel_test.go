package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fenwicksys/utrt/internal/config"
	"github.com/fenwicksys/utrt/pkg/tcb"
)

func newTestKernel(t *testing.T, cfg config.Config) *Kernel {
	t.Helper()
	k, err := Init(cfg)
	require.NoError(t, err)
	t.Cleanup(k.Shutdown)
	return k
}

// TestCooperativeYield is spec.md §8 scenario 1: a created thread and
// the bootstrap thread alternate running via explicit Yield calls.
func TestCooperativeYield(t *testing.T) {
	cfg := config.Default()
	cfg.MaxThreads = 4
	cfg.PreemptionEnabled = false
	k := newTestKernel(t, cfg)

	var trace []string
	id, err := k.Create(func(any) any {
		for i := 0; i < 3; i++ {
			trace = append(trace, "T1")
			k.Yield()
		}
		return nil
	}, nil)
	require.NoError(t, err)
	require.Equal(t, tcb.ID(1), id)

	for i := 0; i < 3; i++ {
		trace = append(trace, "M")
		k.Yield()
	}

	require.Len(t, trace, 6)
	// Every M must precede the T1 entry it handed control to, and vice
	// versa: the two must strictly alternate.
	for i := 1; i < len(trace); i++ {
		require.NotEqual(t, trace[i-1], trace[i], "trace did not alternate: %v", trace)
	}
}

// TestCapacityExhaustion is spec.md §8 scenario 2.
func TestCapacityExhaustion(t *testing.T) {
	cfg := config.Default()
	cfg.MaxThreads = 4
	cfg.PreemptionEnabled = false
	k := newTestKernel(t, cfg)

	idle := func(any) any { return nil }
	for i := 1; i <= 3; i++ {
		id, err := k.Create(idle, nil)
		require.NoError(t, err)
		require.Equal(t, tcb.ID(i), id)
	}

	_, err := k.Create(idle, nil)
	require.ErrorIs(t, err, tcb.ErrCapacityExhausted)
}

// TestJoinReturnsValue is spec.md §8 scenario 3.
func TestJoinReturnsValue(t *testing.T) {
	cfg := config.Default()
	cfg.MaxThreads = 4
	cfg.PreemptionEnabled = false
	k := newTestKernel(t, cfg)

	id, err := k.Create(func(any) any { return 42 }, nil)
	require.NoError(t, err)

	ret := k.Join(id)
	require.Equal(t, 42, ret)
	require.Equal(t, tcb.Finished, k.table.Get(id).State)
}

// TestNoRunnableAfterLastExit cannot let Exit call os.Exit in-process
// without killing the test binary, so it instead exercises the
// no-runnable-thread detection directly: with no created threads and the
// bootstrap thread itself marked FINISHED, nextRunnableLocked must report
// no candidate.
func TestNoRunnableAfterLastExit(t *testing.T) {
	cfg := config.Default()
	cfg.MaxThreads = 2
	cfg.PreemptionEnabled = false
	k := newTestKernel(t, cfg)

	k.table.Lock()
	k.table.Get(0).State = tcb.Finished
	_, ok := k.nextRunnableLocked()
	k.table.Unlock()
	require.False(t, ok)
}

// TestPreemptionLiveness is spec.md §8 scenario 6: two threads spinning
// in a call-free loop both make strictly positive progress once
// preemption is enabled, even though neither calls Yield or Join.
func TestPreemptionLiveness(t *testing.T) {
	cfg := config.Default()
	cfg.MaxThreads = 3
	cfg.PreemptionEnabled = true
	cfg.TimerValMicros = 2000
	k := newTestKernel(t, cfg)

	counters := make([]int64, 2)
	for i := 0; i < 2; i++ {
		idx := i
		_, err := k.Create(func(any) any {
			for {
				counters[idx]++
				k.CheckPreempt()
			}
		}, nil)
		require.NoError(t, err)
	}

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		k.Yield()
	}

	require.Greater(t, counters[0], int64(0))
	require.Greater(t, counters[1], int64(0))
}

func TestCheckPreemptNoopWithoutPendingTick(t *testing.T) {
	cfg := config.Default()
	cfg.MaxThreads = 2
	cfg.PreemptionEnabled = false
	k := newTestKernel(t, cfg)

	before := k.yieldCount.Load()
	k.CheckPreempt()
	require.Equal(t, before, k.yieldCount.Load())
}
