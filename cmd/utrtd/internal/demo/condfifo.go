package demo

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/fenwicksys/utrt/pkg/tcb"
	"github.com/fenwicksys/utrt/pkg/usync"
)

// CondFIFO implements spec.md §8 scenario 4: three threads acquire the
// same mutex and wait on the same condition variable in order; three
// successive signals must wake them in that same order.
type CondFIFO struct{}

func (*CondFIFO) Name() string     { return "condfifo" }
func (*CondFIFO) Synopsis() string { return "condition-variable waiters wake in FIFO order" }
func (*CondFIFO) Usage() string    { return "condfifo\n" }
func (*CondFIFO) SetFlags(*flag.FlagSet) {}

func (*CondFIFO) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	k := newKernel(4, false, 0)
	defer k.Shutdown()

	m := usync.NewSpinMutex()
	cv := usync.NewCond()

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
		if err != nil {
			fmt.Printf("create failed: %v\n", err)
			return subcommands.ExitFailure
		}
		ids[i] = id
		k.Yield() // let the new thread run up to cv.Wait and block.
	}

	for i := 0; i < 3; i++ {
		cv.Signal()
		k.Yield() // let the woken thread record itself and exit.
	}

	for i, id := range ids {
		if woke[i] != id {
			fmt.Printf("FIFO violation: position %d woke thread %d, want %d\n", i, woke[i], id)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("woke in FIFO order: %v\n", woke)
	return subcommands.ExitSuccess
}
