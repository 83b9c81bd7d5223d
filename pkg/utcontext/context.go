// Package utcontext provides the save/restore continuation primitive
// that the scheduler uses to switch between logical threads, and the
// alternate-stack installation hook thread creation uses to bootstrap a
// fresh thread.
//
// A native uthread library realizes these with setjmp/longjmp or
// makecontext/swapcontext over a raw register file. Portable Go offers
// no such user-level primitive without cgo or assembly, so Context
// instead parks the owning goroutine on a private channel: Save blocks
// until Restore is called on the same Context, at which point Save
// returns the mark Restore was given. This reproduces the observable
// contract spec.md §4.1 asks for (a saved context resumes exactly once
// per save; resuming transfers control without the resumer continuing
// as "the current thread") using the goroutine scheduler gVisor's own
// task goroutines already rely on for `Task.Yield` (runtime.Gosched).
package utcontext

// Context is a resumable point of execution, backed by a goroutine
// parked on ch. The zero value is not usable; construct with New.
type Context struct {
	ch chan int
}

// New returns a fresh, unparked Context.
func New() *Context {
	return &Context{ch: make(chan int)}
}

// Save blocks the calling goroutine until another goroutine calls
// Restore on c, then returns the mark passed to Restore. Save must only
// ever be called by the goroutine that owns c; calling it from two
// goroutines concurrently is undefined, just as calling save_context
// twice concurrently on one TCB would be.
func (c *Context) Save() int {
	return <-c.ch
}

// Restore transfers control to the goroutine parked in Save, waking it
// with mark. Restore blocks the caller only until the parked goroutine
// has received mark; by convention the caller performs no further work
// that assumes it
// is still "the current thread" once Restore returns — mirroring
// restore_context's contract of never returning control to its caller.
// Every call site in this runtime either exits or immediately parks its
// own Context right after calling Restore, which is what makes the
// handoff atomic from the scheduler's point of view.
func (c *Context) Restore(mark int) {
	c.ch <- mark
}

// InstallAltStack is the named operation spec.md §4.1 requires for
// bootstrapping a fresh thread onto an alternate signal stack. Every Go
// goroutine already owns an isolated, growable stack the runtime manages
// for it, so there is no alternate stack to install: this is a
// documented no-op that exists to keep the operation surface complete.
// It returns the previously "installed" region so call sites that
// restore it afterwards still compile and behave as specified; the
// returned value is always the nil sentinel since nothing is ever
// actually installed.
func InstallAltStack(base []byte, size int) (prevBase []byte, prevSize int) {
	return nil, 0
}
