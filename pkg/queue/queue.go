// Package queue implements the FIFO message buffer contract.
package queue

import "github.com/Mindburn-Labs/contracts/pkg/gas"

// Queue is a first-in, first-out buffer.
type Queue[T any] struct {
	gate  *gas.Gate
	items []T
	head  int
}

// New returns an empty queue.
func New[T any](opts ...gas.Option) *Queue[T] {
	return &Queue[T]{gate: gas.NewGate("queue", opts...)}
}

// Enqueue appends item.
func (q *Queue[T]) Enqueue(g gas.Budget, item T) error {
	if err := q.gate.Check(g); err != nil {
		return err
	}
	q.items = append(q.items, item)
	return nil
}

// Dequeue removes and returns the oldest item. An empty queue returns
// false, not an error.
func (q *Queue[T]) Dequeue(g gas.Budget) (T, bool, error) {
	var zero T
	if err := q.gate.Check(g); err != nil {
		return zero, false, err
	}
	if q.head == len(q.items) {
		return zero, false, nil
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return item, true, nil
}

// Peek returns the oldest item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.head == len(q.items) {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.items) - q.head }
