package dispatch

import (
	"time"
)

const DefaultDrainTimeout = 30 * time.Second

type HookData struct {
	Operation string
	Key       string
	Sync      bool
	WaitTime  time.Duration
	Failed    bool
}

// Hook observes every dispatched call at completion time. It runs on the
// privileged thread and must not block.
type Hook func(data HookData)

type options struct {
	hook         Hook
	drainTimeout time.Duration
	maxPending   int
}

func newOptions() *options {
	return &options{
		hook: func(data HookData) {

		},
		drainTimeout: DefaultDrainTimeout,
		maxPending:   DefaultMaxPending,
	}
}

type Option func(o *options)

func WithHook(hook Hook) Option {
	return func(o *options) {
		o.hook = hook
	}
}

// DrainTimeout bounds how long Unregister waits for in-flight dispatches
// before detaching handlers anyway.
func DrainTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.drainTimeout = timeout
		}
	}
}

func MaxPendingPerOperation(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPending = n
		}
	}
}
