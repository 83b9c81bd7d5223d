// Package tcb defines the thread control block and the fixed-size table
// of them that the scheduler operates over.
package tcb

import (
	"fmt"
	"sync"

	"github.com/fenwicksys/utrt/pkg/utcontext"
)

// ID identifies a thread by its slot index in the Table. ID 0 is always
// the bootstrap thread.
type ID int

// NoJoiner is the sentinel joiner_id meaning "nobody is waiting".
const NoJoiner ID = -1

// State is one of the four states a TCB can occupy.
type State int32

const (
	// Invalid marks a free slot.
	Invalid State = iota
	// Active marks a runnable or currently-running thread.
	Active
	// Blocked marks a thread waiting on a join or condition variable.
	Blocked
	// Finished marks a terminated thread whose return value is readable.
	Finished
)

func (s State) String() string {
	switch s {
	case Invalid:
		return "INVALID"
	case Active:
		return "ACTIVE"
	case Blocked:
		return "BLOCKED"
	case Finished:
		return "FINISHED"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// EntryFunc is the callable a created thread runs. It takes and returns
// opaque values, exactly as spec.md's entry/argument/return_value do.
type EntryFunc func(argument any) any

// TCB is one thread control block. Fields mirror spec.md §3 exactly;
// Stack is realized as a boolean marker rather than a byte buffer
// because a goroutine's stack is managed by the Go runtime, not
// allocated by this package (see pkg/utcontext's package doc).
type TCB struct {
	ID          ID
	State       State
	Entry       EntryFunc
	Argument    any
	ReturnValue any
	JoinerID    ID
	HasStack    bool
	StackFreed  bool
	Context     *utcontext.Context
}

// Table is the fixed-size, process-wide array of TCBs indexed by thread
// ID. Slot 0 is reserved for the bootstrap thread.
type Table struct {
	mu    sync.Mutex
	slots []TCB
}

// NewTable allocates a table with the given capacity and initializes
// slot 0 as the ACTIVE bootstrap thread; all other slots start INVALID.
func NewTable(maxThreads int) *Table {
	if maxThreads < 1 {
		panic("tcb: maxThreads must be at least 1")
	}
	t := &Table{slots: make([]TCB, maxThreads)}
	for i := range t.slots {
		t.slots[i] = TCB{ID: ID(i), State: Invalid, JoinerID: NoJoiner}
	}
	t.slots[0].State = Active
	return t
}

// Len returns the table's fixed capacity (MAX_THREADS).
func (t *Table) Len() int {
	return len(t.slots)
}

// Get returns a pointer to the TCB at id. The caller must hold no
// assumption of exclusivity; callers that mutate fields should hold
// Lock/Unlock around the read-modify-write.
func (t *Table) Get(id ID) *TCB {
	return &t.slots[id]
}

// Lock serializes table-wide scans and allocations (Allocate, and the
// scheduler's round-robin scan). It is a plain mutex, not the runtime's
// spin mutex: table mutation is a bookkeeping operation off the hot
// context-switch path, not a primitive synchronization object threads
// spin on.
func (t *Table) Lock()   { t.mu.Lock() }
func (t *Table) Unlock() { t.mu.Unlock() }

// ErrCapacityExhausted is returned by Allocate when no slot is free.
var ErrCapacityExhausted = fmt.Errorf("tcb: capacity exhausted")

// Allocate finds the lowest-index INVALID slot, marks it ACTIVE with the
// given entry/argument, and returns its ID. Callers must hold Lock.
func (t *Table) Allocate(entry EntryFunc, argument any) (ID, error) {
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].State == Invalid {
			t.slots[i] = TCB{
				ID:       ID(i),
				State:    Active,
				Entry:    entry,
				Argument: argument,
				JoinerID: NoJoiner,
				HasStack: true,
			}
			return ID(i), nil
		}
	}
	return 0, ErrCapacityExhausted
}

// Release resets a FINISHED slot back to INVALID. spec.md's reference
// design never calls this (slot reuse is an explicit Open Question
// resolved as "not performed", see DESIGN.md); it exists as the hook a
// capacity-recovering variant would use once a joiner has read
// ReturnValue.
func (t *Table) Release(id ID) {
	t.slots[id] = TCB{ID: id, State: Invalid, JoinerID: NoJoiner}
}
