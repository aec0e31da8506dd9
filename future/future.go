// Package future provides a single-slot, one-shot result holder used to hand
// a value produced on one goroutine to waiters on any other.
package future

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrTimeout = errors.New("future: timed out waiting for result")

// Future completes exactly once, with either a result or an error. Any number
// of goroutines may wait on it; exactly one producer completes it. The
// payload passed to New travels with the future so that signaling mechanisms
// restricted to primitive tokens can keep call arguments out-of-band.
type Future struct {
	payload any
	done    chan struct{}

	mu        sync.Mutex
	completed bool
	result    any
	err       error
	callback  func(*Future)
}

func New(payload any) *Future {
	return &Future{
		payload: payload,
		done:    make(chan struct{}),
	}
}

func (f *Future) Payload() any {
	return f.payload
}

// SetResult completes the future with value and reports whether this call
// performed the completion. A false return means the future was already
// complete; the stored state is left untouched so a double completion is
// detectable by the caller without corrupting earlier waiters.
func (f *Future) SetResult(value any) bool {
	return f.complete(value, nil)
}

// SetError completes the future with err. Same single-completion contract as
// SetResult; result and error are mutually exclusive.
func (f *Future) SetError(err error) bool {
	return f.complete(nil, err)
}

func (f *Future) complete(value any, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.result = value
	f.err = err
	callback := f.callback
	f.callback = nil
	f.mu.Unlock()

	// The callback runs before the done channel closes so that
	// completion-time cleanup is observable as soon as Wait returns. Waiters
	// are still released if the callback panics.
	defer close(f.done)
	if callback != nil {
		callback(f)
	}
	return true
}

// OnDone registers the completion callback. At most one callback is held; it
// fires exactly once, when the future completes. Registering after completion
// fires the callback immediately on the calling goroutine.
func (f *Future) OnDone(callback func(*Future)) {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		callback(f)
		return
	}
	f.callback = callback
	f.mu.Unlock()
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

func (f *Future) Completed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed
}

// Wait blocks until the future completes or timeout elapses and reports
// whether it completed. A non-positive timeout waits forever. The completed
// flag is checked before blocking: a completed future never blocks, even
// inside its own completion callback, where the done channel is not yet
// closed.
func (f *Future) Wait(timeout time.Duration) bool {
	if f.Completed() {
		return true
	}
	if timeout <= 0 {
		<-f.done
		return true
	}
	select {
	case <-f.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Result waits like Wait and returns the stored value, the stored error, or
// ErrTimeout. Timing out does not consume the future: a later Result call
// observes the eventual completion normally.
func (f *Future) Result(timeout time.Duration) (any, error) {
	if !f.Wait(timeout) {
		return nil, ErrTimeout
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.err
}

// Err returns the stored error, or nil if the future is incomplete or
// completed with a result.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
