package dispatch

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"

	"github.com/dkavolis/rpcad/future"
)

// Dispatcher converts one host-side operation into a call usable from any
// goroutine. It owns no state of its own: pending calls live in the shared
// registry, keyed by the token that crosses the host event mechanism.
type Dispatcher struct {
	operation string
	event     Event
	registry  *Registry
	hook      Hook
	finished  func()
	logger    log.Logger
}

func newDispatcher(operation string, event Event, registry *Registry, hook Hook, finished func(), logger log.Logger) *Dispatcher {
	return &Dispatcher{
		operation: operation,
		event:     event,
		registry:  registry,
		hook:      hook,
		finished:  finished,
		logger:    logger,
	}
}

// Dispatch registers a future holding payload, fires the host event with the
// dispatch key and, in synchronous mode (async == false), blocks until the
// privileged thread completes the future. In asynchronous mode it returns
// the pending future immediately; callback, if any, runs at completion. The
// registry lock is never held across the wait or the host operation, and the
// registry entry is removed by this side's completion cleanup in both modes,
// so completed calls never leak keys.
func (d *Dispatcher) Dispatch(payload any, async bool, callback Callback) (*future.Future, any, error) {
	fut := future.New(payload)
	key, err := d.registry.Allocate(d.operation, fut)
	if err != nil {
		d.finished()
		return nil, nil, err
	}

	started := time.Now()
	fut.OnDone(func(f *future.Future) {
		d.registry.Remove(key)
		d.finished()
		d.hook(HookData{
			Operation: d.operation,
			Key:       key,
			Sync:      !async,
			WaitTime:  time.Since(started),
			Failed:    f.Err() != nil,
		})
		if callback != nil {
			d.invokeCallback(key, callback, f)
		}
	})

	err = d.event.Fire(key)
	if err != nil {
		err = errors.WithMessagef(err, "fire event %s", d.event.ID())
		// Completing the future runs the cleanup above exactly once.
		fut.SetError(err)
		return nil, nil, err
	}

	if async {
		return fut, nil, nil
	}

	result, err := fut.Result(0)
	return nil, result, err
}

// invokeCallback shields the completion path from caller-supplied callbacks:
// they run on the host's privileged thread, so a panic here must be contained
// rather than propagated into the host's event loop.
func (d *Dispatcher) invokeCallback(key string, callback Callback, f *future.Future) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		stack := make([]byte, 4<<10)
		length := runtime.Stack(stack, false)
		d.logger.Error(context.Background(), "dispatch callback panicked",
			log.String("dispatchKey", key), log.Any("panic", r), log.String("stack", string(stack[:length])))
	}()

	callback(f)
}
