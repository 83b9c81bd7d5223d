package demo

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/fenwicksys/utrt/pkg/usync"
)

// Broadcast implements spec.md §8 scenario 5: n threads wait on one
// condition variable; a single broadcast drains the whole queue and
// every waiter becomes runnable.
type Broadcast struct {
	n int
}

func (*Broadcast) Name() string     { return "broadcast" }
func (*Broadcast) Synopsis() string { return "one broadcast drains the whole waiter queue" }
func (*Broadcast) Usage() string    { return "broadcast [-n count]\n" }
func (b *Broadcast) SetFlags(f *flag.FlagSet) {
	f.IntVar(&b.n, "n", 4, "number of waiting threads")
}

func (b *Broadcast) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	k := newKernel(b.n+1, false, 0)
	defer k.Shutdown()

	m := usync.NewSpinMutex()
	cv := usync.NewCond()

	ran := make([]bool, b.n)
	for i := 0; i < b.n; i++ {
		idx := i
		if _, err := k.Create(func(any) any {
			m.Lock()
			cv.Wait(m)
			ran[idx] = true
			return nil
		}, nil); err != nil {
			fmt.Printf("create failed: %v\n", err)
			return subcommands.ExitFailure
		}
		k.Yield() // let the new thread run up to cv.Wait and block.
	}

	cv.Broadcast()
	for i := 0; i < b.n; i++ {
		k.Yield() // run each freshly-woken thread to completion in turn.
	}

	for i, done := range ran {
		if !done {
			fmt.Printf("thread %d never ran after broadcast\n", i+1)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("all %d waiters woke and ran\n", b.n)
	return subcommands.ExitSuccess
}
