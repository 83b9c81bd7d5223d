package usync

import (
	"github.com/fenwicksys/utrt/internal/list"
	"github.com/fenwicksys/utrt/pkg/kernel"
	"github.com/fenwicksys/utrt/pkg/tcb"
)

// Cond is a FIFO condition variable, per spec.md §4.7: waiters queue in
// arrival order and Signal always wakes the longest-waiting one. Like
// SpinMutex it assumes single-CPU cooperative scheduling; the waiter
// queue itself is guarded by an internal SpinMutex, separate from the
// caller's mutex.
type Cond struct {
	queueLock SpinMutex
	waiters   list.List[tcb.ID]
}

// NewCond returns a Cond with an empty waiter queue.
func NewCond() *Cond {
	return &Cond{}
}

// Wait unlocks userMutex, blocks the calling thread until a matching
// Signal or Broadcast wakes it, and returns without reacquiring
// userMutex. spec.md leaves automatic reacquisition on wake as an Open
// Question; SPEC_FULL.md §8 resolves it as "caller's responsibility",
// matching the reference design's cond_wait which returns control to the
// caller immediately after being resumed rather than looping back
// through the mutex.
func (c *Cond) Wait(userMutex *SpinMutex) {
	k := kernel.Get()
	self := k.Current()

	c.queueLock.Lock()
	c.waiters.PushBack(self)
	c.queueLock.Unlock()

	userMutex.Unlock()
	k.Block()
}

// Signal wakes the single longest-waiting thread, if any.
func (c *Cond) Signal() {
	c.queueLock.Lock()
	id, ok := c.waiters.PopFront()
	c.queueLock.Unlock()
	if !ok {
		return
	}
	kernel.Get().Wake(id)
}

// Broadcast wakes every currently waiting thread, in FIFO order.
func (c *Cond) Broadcast() {
	k := kernel.Get()
	for {
		c.queueLock.Lock()
		id, ok := c.waiters.PopFront()
		c.queueLock.Unlock()
		if !ok {
			return
		}
		k.Wake(id)
	}
}
