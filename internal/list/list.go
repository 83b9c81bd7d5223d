// Package list implements a minimal intrusive-free FIFO, used by the
// condition-variable waiter queue. It is the linked-list utility that
// the runtime treats as an external collaborator: only append-to-tail,
// pop-from-head, and empty-check are specified or relied upon.
package list

// node is a single link in the list.
type node[T any] struct {
	value T
	next  *node[T]
}

// List is a singly-linked FIFO queue. The zero value is an empty list.
// List is not safe for concurrent use; callers (usync.Cond) serialize
// access with their own lock.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	n    int
}

// PushBack appends v to the tail of the list.
func (l *List[T]) PushBack(v T) {
	n := &node[T]{value: v}
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.n++
}

// PopFront removes and returns the value at the head of the list. ok is
// false if the list was empty, in which case the zero value of T is
// returned.
func (l *List[T]) PopFront() (v T, ok bool) {
	if l.head == nil {
		return v, false
	}
	n := l.head
	l.head = n.next
	if l.head == nil {
		l.tail = nil
	}
	l.n--
	return n.value, true
}

// Empty reports whether the list has no elements.
func (l *List[T]) Empty() bool {
	return l.head == nil
}

// Len returns the number of elements currently queued.
func (l *List[T]) Len() int {
	return l.n
}
