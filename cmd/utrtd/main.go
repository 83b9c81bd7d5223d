// Command utrtd is the demo/driver program for the thread runtime.
// Explicitly an external collaborator per spec.md §1 ("the demo/driver
// program" is out of the runtime's own scope), it exists only to make
// the six scenarios from spec.md §8 runnable and observable, mirroring
// the teacher's runsc/cli.Main as a google/subcommands dispatcher.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/fenwicksys/utrt/cmd/utrtd/internal/demo"
	"github.com/fenwicksys/utrt/pkg/obslog"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	const scenarioGroup = "scenarios"
	subcommands.Register(&demo.Cooperative{}, scenarioGroup)
	subcommands.Register(&demo.Capacity{}, scenarioGroup)
	subcommands.Register(&demo.Join{}, scenarioGroup)
	subcommands.Register(&demo.CondFIFO{}, scenarioGroup)
	subcommands.Register(&demo.Broadcast{}, scenarioGroup)
	subcommands.Register(&demo.Preempt{}, scenarioGroup)

	flag.Parse()
	if lvl := os.Getenv("UTRTD_DEBUG"); lvl != "" {
		obslog.SetLevel(logrus.DebugLevel)
		obslog.Infof("utrtd: debug logging enabled via UTRTD_DEBUG")
	}
	os.Exit(int(subcommands.Execute(context.Background())))
}
