package resource

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrClosed is returned by operations on a closed container.
	ErrClosed = errors.New("resource closed")
	// ErrSuperseded is returned by a fetch whose result was dropped because
	// a newer fetch started after it.
	ErrSuperseded = errors.New("fetch superseded")
)

// fence orders fetches of one container. Every fetch takes the next
// sequence number and cancels the one before it; only the latest may apply
// its result. The container state is guarded by mu.
type fence struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// start begins a fetch. onStart runs under the lock.
func (f *fence) start(ctx context.Context, onStart func()) (context.Context, uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, 0, ErrClosed
	}
	if f.cancel != nil {
		f.cancel()
	}
	ctx, f.cancel = context.WithCancel(ctx)
	f.seq++
	if onStart != nil {
		onStart()
	}
	return ctx, f.seq, nil
}

// finish applies the result of fetch seq if it is still the latest.
func (f *fence) finish(seq uint64, apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || seq != f.seq {
		return false
	}
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	apply()
	return true
}

// update applies a state change outside a fetch, unless closed.
func (f *fence) update(apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	apply()
	return true
}

func (f *fence) read(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

func (f *fence) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *fence) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
