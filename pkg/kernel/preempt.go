package kernel

// preemptTicker is the platform's source of periodic preemption ticks.
// newPreemptTicker's two implementations (preempt_linux.go,
// preempt_other.go) both call onTick from a dedicated goroutine at
// roughly periodMicros intervals until Stop is called.
type preemptTicker interface {
	Stop()
}
