package kernel

import (
	"github.com/fenwicksys/utrt/pkg/obslog"
	"github.com/fenwicksys/utrt/pkg/tcb"
)

// Yield implements spec.md §4.4: it finds the next ACTIVE thread after
// the current one in slot order, wrapping around, and switches to it. If
// no other thread is runnable it returns immediately and the calling
// thread keeps running.
func (k *Kernel) Yield() {
	// Consuming any stale pending tick here is the equivalent of
	// disabling the timer for the duration of the switch: a tick that
	// lands while we are already on our way to yielding voluntarily
	// should not cause a second, redundant yield once we resume.
	k.preemptPending.Store(false)

	k.table.Lock()
	current := k.table.Get(k.currentID)
	candidateID, ok := k.nextRunnableLocked()
	if !ok {
		k.table.Unlock()
		return
	}
	candidate := k.table.Get(candidateID)
	previous := k.currentID
	k.currentID = candidateID
	k.yieldCount.Add(1)
	k.table.Unlock()

	obslog.Tracef("kernel: thread %d yields to thread %d", previous, candidateID)
	candidate.Context.Restore(1)
	current.Context.Save()
	obslog.Tracef("kernel: thread %d resumed", previous)
}

// nextRunnableLocked scans forward from the current thread, wrapping
// around the table, and returns the first ACTIVE thread found other than
// the current one. Callers must hold the table lock.
func (k *Kernel) nextRunnableLocked() (tcb.ID, bool) {
	n := k.table.Len()
	cur := int(k.currentID)
	for i := 1; i < n; i++ {
		idx := (cur + i) % n
		if k.table.Get(tcb.ID(idx)).State == tcb.Active {
			return tcb.ID(idx), true
		}
	}
	return 0, false
}
