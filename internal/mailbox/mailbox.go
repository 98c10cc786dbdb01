// Package mailbox provides a single-slot buffer where the latest item wins.
// It is not a queue: overlapping backup triggers coalesce into at most one
// pending trigger, so a slow run never builds a backlog of stale work.
package mailbox

import (
	"context"
	"sync"
)

type Mailbox[T any] struct {
	mu    sync.Mutex
	item  *T
	ready chan struct{} // buffered(1), signalled on Put
}

func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ready: make(chan struct{}, 1)}
}

// Put stores an item, replacing any pending one. It never blocks.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	m.item = &v
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Take blocks until an item is available or ctx is cancelled. The second
// return value is false on cancellation.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	for {
		if v := m.TryTake(); v != nil {
			return *v, true
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, false
		case <-m.ready:
		}
	}
}

// TryTake returns the pending item or nil. It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.item
	m.item = nil
	return v
}

// Pending reports whether an item is waiting.
func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item != nil
}
