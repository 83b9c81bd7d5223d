// Package kernel implements the round-robin scheduler, the thread
// lifecycle API (create/yield/exit/join), and timer-driven preemption
// described in spec.md §4. It is the process-wide runtime object: the
// TCB table and the current-thread index live here, exactly as spec.md
// §3 describes them, guarded by a single mutex rather than by disabling
// a hardware interrupt (see SPEC_FULL.md §2 for why).
package kernel

import (
	"fmt"
	"sync/atomic"

	"github.com/fenwicksys/utrt/internal/config"
	"github.com/fenwicksys/utrt/pkg/affinity"
	"github.com/fenwicksys/utrt/pkg/obslog"
	"github.com/fenwicksys/utrt/pkg/tcb"
	"github.com/fenwicksys/utrt/pkg/utcontext"
)

// Kernel is the runtime singleton. Only the bootstrap thread may
// construct one, via Init, and must do so exactly once before any other
// API call — exactly as spec.md §4.2 requires.
type Kernel struct {
	table     *tcb.Table
	currentID tcb.ID
	cfg       config.Config

	preemptPending atomic.Bool
	ticker         preemptTicker
	pinned         affinity.Pinner

	yieldCount      atomic.Uint64
	preemptionCount atomic.Uint64
}

var global *Kernel

// Get returns the process-wide Kernel installed by Init, or nil if Init
// has not run yet. pkg/usync's spin mutex and condition variable use
// this to yield while spinning or blocked, without threading a *Kernel
// through every call site — mirroring this runtime's single-CPU,
// single-process-object model (SPEC_FULL.md §2).
func Get() *Kernel {
	return global
}

// Init initializes the runtime: it builds the TCB table, sets the
// bootstrap thread (ID 0) ACTIVE and current, and — if
// cfg.PreemptionEnabled — arms the periodic preemption timer. It must be
// called exactly once, by the bootstrap thread, before any other
// operation in this package.
func Init(cfg config.Config) (*Kernel, error) {
	if global != nil {
		return nil, fmt.Errorf("kernel: Init called more than once")
	}
	k := &Kernel{
		table: tcb.NewTable(cfg.MaxThreads),
		cfg:   cfg,
	}
	k.table.Get(0).Context = utcontext.New()

	if cfg.PinSingleCPU {
		pinned, err := affinity.Pin(0)
		if err != nil {
			return nil, fmt.Errorf("kernel: pinning to a single CPU: %w", err)
		}
		k.pinned = pinned
	}

	if cfg.PreemptionEnabled {
		ticker, err := newPreemptTicker(cfg.TimerValMicros, k.onPreemptTick)
		if err != nil {
			return nil, fmt.Errorf("kernel: installing preemption timer: %w", err)
		}
		k.ticker = ticker
	}

	global = k
	obslog.Infof("kernel: runtime initialized (max_threads=%d timer_val_micros=%d preemption=%t)",
		cfg.MaxThreads, cfg.TimerValMicros, cfg.PreemptionEnabled)
	return k, nil
}

// onPreemptTick is invoked (from a dedicated goroutine, not from the
// currently-running thread) every time the periodic timer fires. It
// cannot synchronously force the running thread to yield — portable Go
// has no primitive for that — so it records that a preemption is due;
// CheckPreempt and the scheduler's own Yield consume that record at the
// next cooperative checkpoint. See SPEC_FULL.md §2.
func (k *Kernel) onPreemptTick() {
	k.preemptionCount.Add(1)
	k.preemptPending.Store(true)
	obslog.Tracef("kernel: preemption tick #%d recorded", k.preemptionCount.Load())
}

// CheckPreempt yields the calling thread if a preemption tick has
// occurred since it last ran. This is an addition to spec.md's surface
// (§6 of SPEC_FULL.md): threads that run tight, call-free loops must
// invoke it at loop back-edges for preemption to have any effect, since
// nothing else can interrupt them mid-loop. Threads that call Yield,
// Join, or a blocking sync primitive regularly need not call this
// separately — Yield already consumes the same flag.
func (k *Kernel) CheckPreempt() {
	if k.preemptPending.CompareAndSwap(true, false) {
		obslog.Tracef("kernel: thread %d consuming preemption tick", k.currentID)
		k.Yield()
	}
}

// Current returns the ID of the calling thread. Safe to call from any
// thread's own goroutine; reading currentID without the table lock is
// safe here because by construction only the single logical thread that
// currently holds the CPU calls Current about itself.
func (k *Kernel) Current() tcb.ID {
	return k.currentID
}

// Stats is a read-only snapshot of runtime activity, used by tests to
// assert on scheduler progress without reaching into package internals.
// It is additive observability, not part of spec.md's invariants.
type Stats struct {
	Active, Blocked, Finished, Invalid int
	Yields, Preemptions                uint64
}

// Stats returns a snapshot of the current TCB table and counters.
func (k *Kernel) Stats() Stats {
	k.table.Lock()
	defer k.table.Unlock()
	var s Stats
	for i := 0; i < k.table.Len(); i++ {
		switch k.table.Get(tcb.ID(i)).State {
		case tcb.Active:
			s.Active++
		case tcb.Blocked:
			s.Blocked++
		case tcb.Finished:
			s.Finished++
		case tcb.Invalid:
			s.Invalid++
		}
	}
	s.Yields = k.yieldCount.Load()
	s.Preemptions = k.preemptionCount.Load()
	return s
}

// Shutdown disarms the preemption timer, if one was armed. Tests call
// this in cleanup to avoid leaking a ticking timer across test cases.
func (k *Kernel) Shutdown() {
	if k.ticker != nil {
		k.ticker.Stop()
	}
	if k.pinned != nil {
		if err := k.pinned.Unpin(); err != nil {
			obslog.Warningf("kernel: releasing CPU pin: %v", err)
		}
	}
	if global == k {
		global = nil
	}
}
