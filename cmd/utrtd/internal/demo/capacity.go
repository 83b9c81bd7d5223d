package demo

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/fenwicksys/utrt/pkg/tcb"
)

// Capacity implements spec.md §8 scenario 2: with MAX_THREADS = 4,
// three creates succeed (ids 1, 2, 3) and the fourth fails with
// CAPACITY_EXHAUSTED.
type Capacity struct{}

func (*Capacity) Name() string     { return "capacity" }
func (*Capacity) Synopsis() string { return "capacity exhaustion with MAX_THREADS=4" }
func (*Capacity) Usage() string    { return "capacity\n" }
func (*Capacity) SetFlags(*flag.FlagSet) {}

func (*Capacity) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	k := newKernel(4, false, 0)
	defer k.Shutdown()

	idle := func(any) any { k.Yield(); return nil }

	for i := 0; i < 3; i++ {
		id, err := k.Create(idle, nil)
		if err != nil {
			fmt.Printf("unexpected failure creating thread %d: %v\n", i+1, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("created thread %d\n", id)
	}

	if _, err := k.Create(idle, nil); !errors.Is(err, tcb.ErrCapacityExhausted) {
		fmt.Printf("expected capacity exhaustion, got: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("fourth create correctly failed with CAPACITY_EXHAUSTED")
	return subcommands.ExitSuccess
}
