package demo

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

// Preempt implements spec.md §8 scenario 6: two threads each spin in a
// tight, call-free loop; with preemption enabled, a fixed wall-clock
// window later, both have made strictly positive progress. Progress is
// only possible because each thread calls CheckPreempt at its loop
// back-edge — nothing else could interrupt it.
//
// counters is written from whichever goroutine currently represents the
// logical "running" thread and read only after every thread has stopped
// advancing; the handoff between threads goes through
// utcontext.Context's channel send/receive, which the Go memory model
// treats as a synchronization point, so this is race-free despite having
// no explicit lock.
type Preempt struct {
	window time.Duration
}

func (*Preempt) Name() string     { return "preempt" }
func (*Preempt) Synopsis() string { return "preemption gives tight loops forward progress" }
func (*Preempt) Usage() string    { return "preempt [-window duration]\n" }
func (p *Preempt) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&p.window, "window", 200*time.Millisecond, "how long to let both threads spin")
}

func (p *Preempt) Execute(ctx context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	k := newKernel(3, true, 2000)
	defer k.Shutdown()

	counters := make([]int64, 2)
	for i := 0; i < 2; i++ {
		idx := i
		if _, err := k.Create(func(any) any {
			for {
				counters[idx]++
				k.CheckPreempt()
			}
		}, nil); err != nil {
			fmt.Printf("create failed: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	runCtx, cancel := context.WithTimeout(ctx, p.window)
	defer cancel()

	g, _ := errgroup.WithContext(runCtx)
	g.Go(func() error {
		for runCtx.Err() == nil {
			k.Yield()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		fmt.Printf("scheduling loop failed: %v\n", err)
		return subcommands.ExitFailure
	}

	for i, c := range counters {
		if c <= 0 {
			fmt.Printf("thread %d made no progress\n", i+1)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("progress after preemption window: %v\n", counters)
	return subcommands.ExitSuccess
}
