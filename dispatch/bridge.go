package dispatch

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"

	"github.com/dkavolis/rpcad/future"
)

var (
	ErrNotRegistered     = errors.New("dispatch: events are not registered")
	ErrAlreadyRegistered = errors.New("dispatch: events are already registered")
	ErrUnknownOperation  = errors.New("dispatch: unknown operation")
)

type bridgeState int

const (
	stateUnregistered bridgeState = iota
	stateRegistered
	stateUnregistering
)

// EventID builds the host event identifier for an operation. Identifiers are
// namespaced by service so concurrent sessions and other add-ons sharing the
// host process cannot collide.
func EventID(namespace string, operation string) string {
	return "rpcad." + namespace + "." + operation
}

// Binding pairs a registered host event with the handler attached to it. The
// bridge keeps strong references to both for the whole session so the host
// never observes a reclaimed handler.
type Binding struct {
	Event   Event
	Handler Handler
}

// Bridge is the per-session dispatch state: the pending registry, the host
// handle, one dispatcher per declared operation and the event bindings.
// Multiple goroutines may dispatch concurrently; the host's privileged
// thread serializes the actual operations.
type Bridge struct {
	host       Host
	namespace  string
	operations map[string]Operation
	logger     log.Logger
	options    *options
	registry   *Registry

	mu          sync.Mutex
	state       bridgeState
	inflight    sync.WaitGroup
	dispatchers map[string]*Dispatcher
	bindings    []Binding
}

func New(host Host, namespace string, operations map[string]Operation, logger log.Logger, opts ...Option) *Bridge {
	options := newOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Bridge{
		host:       host,
		namespace:  namespace,
		operations: operations,
		logger:     logger,
		options:    options,
		registry:   NewRegistry(options.maxPending),
	}
}

// Register binds every declared operation to a uniquely named host event and
// attaches its handler. It must be called before any dispatch and exactly
// once per session. On failure no partial registration survives: events
// registered earlier in the batch are released before the error is returned.
func (b *Bridge) Register() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != stateUnregistered {
		return ErrAlreadyRegistered
	}

	names := make([]string, 0, len(b.operations))
	for name := range b.operations {
		names = append(names, name)
	}
	sort.Strings(names)

	ctx := context.Background()
	bindings := make([]Binding, 0, len(names))
	dispatchers := make(map[string]*Dispatcher, len(names))
	for _, name := range names {
		id := EventID(b.namespace, name)
		event, err := b.host.RegisterEvent(id)
		if err != nil {
			b.release(ctx, bindings)
			return errors.WithMessagef(err, "register event %s", id)
		}
		handler := &opHandler{
			operation: b.operations[name],
			host:      b.host,
			registry:  b.registry,
			logger:    b.logger,
		}
		err = event.AddHandler(handler)
		if err != nil {
			_ = b.host.UnregisterEvent(id)
			b.release(ctx, bindings)
			return errors.WithMessagef(err, "add handler for event %s", id)
		}
		bindings = append(bindings, Binding{Event: event, Handler: handler})
		dispatchers[name] = newDispatcher(name, event, b.registry, b.options.hook, b.inflight.Done, b.logger)
	}

	b.bindings = bindings
	b.dispatchers = dispatchers
	b.state = stateRegistered
	b.logger.Info(ctx, "dispatch events registered", log.Any("operations", len(bindings)))
	return nil
}

// Unregister waits for in-flight dispatches to drain, bounded by the drain
// timeout, then detaches every handler and releases every event. Cleanup of
// the pending registry still happens for late completions because it rides
// each future's own completion callback.
func (b *Bridge) Unregister() error {
	b.mu.Lock()
	if b.state != stateRegistered {
		b.mu.Unlock()
		return ErrNotRegistered
	}
	b.state = stateUnregistering
	bindings := b.bindings
	b.mu.Unlock()

	ctx := context.Background()
	drained := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(b.options.drainTimeout):
		b.logger.Warn(ctx, "drain timed out, completion callbacks may run after unregistration",
			log.Any("pending", b.registry.Len()))
	}

	err := b.release(ctx, bindings)

	b.mu.Lock()
	b.bindings = nil
	b.dispatchers = nil
	b.state = stateUnregistered
	b.mu.Unlock()

	b.logger.Info(ctx, "dispatch events unregistered")
	return err
}

// release detaches bindings in reverse registration order. It keeps going on
// individual failures so every event gets a release attempt, returning the
// first error.
func (b *Bridge) release(ctx context.Context, bindings []Binding) error {
	var firstErr error
	for i := len(bindings) - 1; i >= 0; i-- {
		binding := bindings[i]
		err := binding.Event.RemoveHandler(binding.Handler)
		if err != nil {
			b.logger.Error(ctx, "remove event handler", log.String("event", binding.Event.ID()), log.Any("error", err))
			if firstErr == nil {
				firstErr = errors.WithMessagef(err, "remove handler for event %s", binding.Event.ID())
			}
		}
		err = b.host.UnregisterEvent(binding.Event.ID())
		if err != nil {
			b.logger.Error(ctx, "unregister event", log.String("event", binding.Event.ID()), log.Any("error", err))
			if firstErr == nil {
				firstErr = errors.WithMessagef(err, "unregister event %s", binding.Event.ID())
			}
		}
	}
	return firstErr
}

// Call dispatches operation synchronously: it blocks the calling goroutine
// until the privileged thread completes the call and returns its result or
// error. The block is deliberate and unbounded; callers needing a deadline
// should use Go and wait on the future themselves.
func (b *Bridge) Call(operation string, payload any) (any, error) {
	_, result, err := b.dispatch(operation, payload, false, nil)
	return result, err
}

// Go dispatches operation asynchronously and returns the pending future.
// callback may be nil; when set it runs on the privileged thread after the
// registry entry is cleaned up. There is no mid-flight cancellation: a
// caller that stops waiting leaves the operation to complete into a future
// nobody reads.
func (b *Bridge) Go(operation string, payload any, callback Callback) (*future.Future, error) {
	fut, _, err := b.dispatch(operation, payload, true, callback)
	return fut, err
}

func (b *Bridge) dispatch(operation string, payload any, async bool, callback Callback) (*future.Future, any, error) {
	b.mu.Lock()
	if b.state != stateRegistered {
		b.mu.Unlock()
		return nil, nil, ErrNotRegistered
	}
	dispatcher, ok := b.dispatchers[operation]
	if !ok {
		b.mu.Unlock()
		return nil, nil, errors.WithMessage(ErrUnknownOperation, operation)
	}
	b.inflight.Add(1)
	b.mu.Unlock()

	return dispatcher.Dispatch(payload, async, callback)
}

func (b *Bridge) Pending() int {
	return b.registry.Len()
}

func (b *Bridge) PendingByOperation() map[string]int {
	return b.registry.PendingByOperation()
}
