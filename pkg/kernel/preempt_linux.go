//go:build linux

package kernel

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// itimerTicker drives preemption off a real ITIMER_REAL/SIGALRM pair,
// the same host primitive spec.md §4.8 names, via golang.org/x/sys/unix.
// Go cannot run arbitrary code inside the signal handler itself (the
// runtime's own signal plumbing owns that), so the handler's only job is
// waking a goroutine that calls onTick.
type itimerTicker struct {
	sigCh chan os.Signal
	done  chan struct{}
}

func newPreemptTicker(periodMicros int64, onTick func()) (preemptTicker, error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGALRM)

	interval := unix.Timeval{
		Sec:  periodMicros / 1_000_000,
		Usec: periodMicros % 1_000_000,
	}
	it := unix.Itimerval{Interval: interval, Value: interval}
	if err := unix.Setitimer(unix.ITIMER_REAL, &it, nil); err != nil {
		signal.Stop(sigCh)
		return nil, err
	}

	t := &itimerTicker{sigCh: sigCh, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-sigCh:
				onTick()
			case <-t.done:
				return
			}
		}
	}()
	return t, nil
}

func (t *itimerTicker) Stop() {
	close(t.done)
	signal.Stop(t.sigCh)
	var zero unix.Itimerval
	_ = unix.Setitimer(unix.ITIMER_REAL, &zero, nil)
}
