package kernel

import (
	"os"

	"github.com/fenwicksys/utrt/pkg/obslog"
	"github.com/fenwicksys/utrt/pkg/tcb"
	"github.com/fenwicksys/utrt/pkg/utcontext"
)

// Create implements spec.md §4.3: it allocates a TCB, spawns the
// goroutine that will run entry once scheduled, and waits for that
// goroutine to park itself before returning — the busy-wait spec.md
// describes for "thread is ready to run" is realized here as a blocking
// channel receive instead of a spin loop, since the goroutine scheduler
// already provides the wakeup.
func (k *Kernel) Create(entry tcb.EntryFunc, argument any) (tcb.ID, error) {
	k.table.Lock()
	id, err := k.table.Allocate(entry, argument)
	if err != nil {
		k.table.Unlock()
		return 0, err
	}
	t := k.table.Get(id)
	t.Context = utcontext.New()
	k.table.Unlock()

	ready := make(chan struct{})
	go k.bootstrapThread(id, ready)
	<-ready

	obslog.Infof("kernel: created thread %d", id)
	return id, nil
}

// bootstrapThread is the goroutine body every created thread runs under.
// It parks immediately, exactly like a freshly makecontext'd stack would
// sit waiting for its first swapcontext, then runs the entry function
// once the scheduler restores it, and finally calls Exit with the
// entry's return value.
func (k *Kernel) bootstrapThread(id tcb.ID, ready chan struct{}) {
	t := k.table.Get(id)
	close(ready)
	t.Context.Save()
	obslog.Tracef("kernel: thread %d running", id)
	ret := t.Entry(t.Argument)
	k.Exit(ret)
}

// Exit implements spec.md §4.5. A thread with a waiting joiner directly
// resumes it, bypassing round-robin selection, exactly as spec.md
// describes for join/exit rendezvous. A thread with no joiner falls back
// to normal scheduling; if no other thread is runnable the process is
// the last live thread and terminates cleanly (see SPEC_FULL.md §8 for
// why this resolves spec.md's open question on that case).
func (k *Kernel) Exit(returnValue any) {
	k.preemptPending.Store(false)

	k.table.Lock()
	current := k.table.Get(k.currentID)
	current.State = tcb.Finished
	current.ReturnValue = returnValue
	current.StackFreed = true

	if joiner := current.JoinerID; joiner != tcb.NoJoiner {
		j := k.table.Get(joiner)
		j.State = tcb.Active
		exited := current.ID
		k.currentID = joiner
		k.table.Unlock()
		obslog.Infof("kernel: thread %d exited, resuming joiner %d", exited, joiner)
		j.Context.Restore(1)
		return
	}

	candidateID, ok := k.nextRunnableLocked()
	if !ok {
		exited := current.ID
		k.table.Unlock()
		obslog.Infof("kernel: thread %d exited with no runnable threads remaining; shutting down", exited)
		k.Shutdown()
		os.Exit(0)
	}
	candidate := k.table.Get(candidateID)
	exited := current.ID
	k.currentID = candidateID
	k.table.Unlock()

	obslog.Infof("kernel: thread %d exited, scheduling thread %d", exited, candidateID)
	candidate.Context.Restore(1)
}

// Block marks the calling thread BLOCKED and yields away. The thread is
// excluded from round-robin selection until another thread calls Wake on
// its ID; pkg/usync's Cond uses this pair to implement cond_wait without
// duplicating scheduler internals.
func (k *Kernel) Block() {
	k.table.Lock()
	current := k.table.Get(k.currentID)
	current.State = tcb.Blocked
	k.table.Unlock()
	k.Yield()
}

// Wake marks a BLOCKED thread ACTIVE again, making it eligible for the
// next round-robin scan to resume it. It does not itself switch to id.
func (k *Kernel) Wake(id tcb.ID) {
	k.table.Lock()
	t := k.table.Get(id)
	if t.State == tcb.Blocked {
		t.State = tcb.Active
	}
	k.table.Unlock()
}

// Join implements spec.md §4.6: the calling thread blocks until target
// has finished, resuming target directly rather than through
// round-robin, mirroring Exit's direct hand-off back. It returns
// target's return value.
func (k *Kernel) Join(target tcb.ID) any {
	k.table.Lock()
	targetTCB := k.table.Get(target)
	if targetTCB.State == tcb.Finished {
		k.table.Unlock()
		return targetTCB.ReturnValue
	}

	current := k.table.Get(k.currentID)
	current.State = tcb.Blocked
	targetTCB.JoinerID = current.ID
	joiner := current.ID
	k.currentID = target
	k.table.Unlock()

	obslog.Tracef("kernel: thread %d joining thread %d", joiner, target)
	targetTCB.Context.Restore(1)
	current.Context.Save()

	k.table.Lock()
	current.State = tcb.Active
	ret := targetTCB.ReturnValue
	k.table.Unlock()
	return ret
}
