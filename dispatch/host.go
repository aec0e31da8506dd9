package dispatch

import (
	"github.com/dkavolis/rpcad/future"
)

// Host is the narrow view of the CAD application's custom-event mechanism.
// Events are identified by a process-wide unique string and may only carry a
// string payload per firing; handlers are invoked on the host's single
// privileged thread.
type Host interface {
	RegisterEvent(id string) (Event, error)
	UnregisterEvent(id string) error
	// CancelActiveCommand dismisses any modal interaction (an active sketch,
	// an open dialog) that would block scripted operations.
	CancelActiveCommand()
}

type Event interface {
	ID() string
	AddHandler(handler Handler) error
	RemoveHandler(handler Handler) error
	// Fire queues a notification on the host's privileged thread. The
	// payload is the only state that crosses the thread boundary.
	Fire(payload string) error
}

// Handler receives event notifications on the privileged thread.
type Handler interface {
	Notify(payload string)
}

// Operation is the real host-side implementation of a dispatchable call. It
// is only ever invoked on the privileged thread with the payload stored at
// dispatch time.
type Operation func(payload any) (any, error)

// Callback receives the completed future of an asynchronous dispatch. It runs
// on the privileged thread, after the pending registry has been cleaned up.
type Callback func(f *future.Future)
