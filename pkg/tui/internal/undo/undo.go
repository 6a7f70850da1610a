// ABOUTME: Bounded undo history of editor snapshots
// ABOUTME: Type-parameterized; the oldest snapshot is dropped when full

package undo

// Stack is a bounded LIFO of snapshots.
type Stack[S any] struct {
	items   []S
	maxSize int
}

// New creates an undo Stack with the given maximum depth.
func New[S any](maxSize int) *Stack[S] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Stack[S]{
		items:   make([]S, 0, maxSize),
		maxSize: maxSize,
	}
}

// Push saves a snapshot, evicting the oldest one when the stack is full.
func (s *Stack[S]) Push(state S) {
	if len(s.items) == s.maxSize {
		copy(s.items, s.items[1:])
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, state)
}

// Pop removes and returns the most recent snapshot. It returns the zero
// value and false when there is nothing to undo.
func (s *Stack[S]) Pop() (S, bool) {
	var zero S
	if len(s.items) == 0 {
		return zero, false
	}
	last := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return last, true
}

// Reset drops every snapshot.
func (s *Stack[S]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
}

// Len returns the number of snapshots held.
func (s *Stack[S]) Len() int {
	return len(s.items)
}
