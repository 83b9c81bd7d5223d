// Package usync implements the two synchronization primitives spec.md
// §4.6 and §4.7 name: a spin mutex and a condition variable built on top
// of it, both assuming the single-CPU cooperative-scheduling invariant
// the rest of this runtime relies on.
package usync

import (
	"sync/atomic"

	"github.com/fenwicksys/utrt/pkg/kernel"
)

const (
	unlocked int32 = 0
	locked   int32 = 1
)

// spinLimit is how many CAS attempts a Lock call makes before yielding
// the CPU to let the lock holder run. On a single logical CPU, spinning
// past this point can never observe progress, so yielding is the only
// way forward.
const spinLimit = 32

// SpinMutex is a CAS-based spin lock, per spec.md §4.6: Lock busy-waits
// until it wins a compare-and-swap from unlocked to locked, yielding the
// scheduler periodically instead of spinning forever, since only one
// logical thread runs at a time.
type SpinMutex struct {
	state int32
}

// NewSpinMutex returns an unlocked SpinMutex.
func NewSpinMutex() *SpinMutex {
	return &SpinMutex{state: unlocked}
}

// Lock acquires m, blocking the calling thread until it does.
func (m *SpinMutex) Lock() {
	for {
		for i := 0; i < spinLimit; i++ {
			if atomic.CompareAndSwapInt32(&m.state, unlocked, locked) {
				return
			}
		}
		if k := kernel.Get(); k != nil {
			k.Yield()
		}
	}
}

// TryLock attempts to acquire m without blocking, reporting whether it
// succeeded.
func (m *SpinMutex) TryLock() bool {
	return atomic.CompareAndSwapInt32(&m.state, unlocked, locked)
}

// Unlock releases m. Unlock on an already-unlocked SpinMutex is
// undefined, exactly as spec.md leaves double-unlock undefined.
func (m *SpinMutex) Unlock() {
	atomic.StoreInt32(&m.state, unlocked)
}
