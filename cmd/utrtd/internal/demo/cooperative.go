package demo

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// Cooperative implements spec.md §8 scenario 1: a single created thread
// and the bootstrap thread each print and yield three times, with no
// preemption timer armed.
type Cooperative struct{}

func (*Cooperative) Name() string     { return "cooperative" }
func (*Cooperative) Synopsis() string { return "single thread, cooperative yield" }
func (*Cooperative) Usage() string    { return "cooperative\n" }
func (*Cooperative) SetFlags(*flag.FlagSet) {}

func (*Cooperative) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	k := newKernel(4, false, 0)
	defer k.Shutdown()

	if _, err := k.Create(func(any) any {
		for i := 0; i < 3; i++ {
			fmt.Printf("%d ", i)
			k.Yield()
		}
		fmt.Print("3 ")
		return nil
	}, nil); err != nil {
		fmt.Printf("create failed: %v\n", err)
		return subcommands.ExitFailure
	}

	for i := 0; i < 3; i++ {
		fmt.Print("M ")
		k.Yield()
	}
	fmt.Println()
	return subcommands.ExitSuccess
}
