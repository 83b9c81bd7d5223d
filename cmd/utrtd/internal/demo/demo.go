// Package demo implements the six worked scenarios from spec.md §8 as
// google/subcommands.Command implementations, one file per scenario,
// mirroring the teacher's runsc/cmd layout (one command type per file,
// registered by runsc/cli.Main).
package demo

import (
	"github.com/fenwicksys/utrt/internal/config"
	"github.com/fenwicksys/utrt/pkg/kernel"
	"github.com/fenwicksys/utrt/pkg/obslog"
)

// newKernel builds a Kernel from the given overrides on top of
// config.Default, exiting fatally on a host-primitive failure — exactly
// the boundary SPEC_FULL.md §8 draws between the library (which returns
// errors) and this driver program (which has no caller to return to).
func newKernel(maxThreads int, preemptionEnabled bool, timerValMicros int64) *kernel.Kernel {
	cfg := config.Default()
	cfg.MaxThreads = maxThreads
	cfg.PreemptionEnabled = preemptionEnabled
	if timerValMicros > 0 {
		cfg.TimerValMicros = timerValMicros
	}
	k, err := kernel.Init(cfg)
	if err != nil {
		obslog.Fatalf("utrtd: initializing runtime: %v", err)
	}
	return k
}
