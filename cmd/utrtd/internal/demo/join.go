package demo

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// Join implements spec.md §8 scenario 3: the bootstrap thread creates a
// thread that exits with return value 42, joins it, and observes the
// returned value.
type Join struct{}

func (*Join) Name() string     { return "join" }
func (*Join) Synopsis() string { return "join returns the target thread's exit value" }
func (*Join) Usage() string    { return "join\n" }
func (*Join) SetFlags(*flag.FlagSet) {}

func (*Join) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	k := newKernel(4, false, 0)
	defer k.Shutdown()

	id, err := k.Create(func(any) any {
		return 42
	}, nil)
	if err != nil {
		fmt.Printf("create failed: %v\n", err)
		return subcommands.ExitFailure
	}

	ret := k.Join(id)
	n, ok := ret.(int)
	if !ok || n != 42 {
		fmt.Printf("expected return value 42, got %v\n", ret)
		return subcommands.ExitFailure
	}
	fmt.Printf("thread %d returned %d\n", id, n)
	return subcommands.ExitSuccess
}
