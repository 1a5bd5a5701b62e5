package report

import (
	"sync"
	"sync/atomic"
)

// Async delivers snapshots to another reporter on its own goroutine.
// Report never blocks: when the buffer is full the snapshot is dropped.
type Async struct {
	next   Reporter
	ch     chan Snapshot
	done   chan struct{}
	onDrop func(s Snapshot)

	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// AsyncOption customises an Async reporter.
type AsyncOption func(a *Async)

// OnDrop registers a callback invoked for each dropped snapshot.
func OnDrop(f func(s Snapshot)) AsyncOption {
	return func(a *Async) {
		a.onDrop = f
	}
}

// NewAsync starts delivering to next with room for buffer pending snapshots.
func NewAsync(next Reporter, buffer int, opts ...AsyncOption) *Async {
	if buffer <= 0 {
		buffer = 16
	}
	a := &Async{
		next: next,
		ch:   make(chan Snapshot, buffer),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	go a.loop()
	return a
}

func (a *Async) loop() {
	defer close(a.done)
	for s := range a.ch {
		a.next.Report(s)
	}
}

func (a *Async) Report(s Snapshot) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.closed {
		select {
		case a.ch <- s:
			return
		default:
		}
	}
	a.dropped.Add(1)
	if a.onDrop != nil {
		a.onDrop(s)
	}
}

// Dropped returns the number of snapshots that were not delivered.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

// Close stops accepting snapshots and waits for pending ones to be delivered.
func (a *Async) Close() {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.ch)
	}
	a.mu.Unlock()
	<-a.done
}
