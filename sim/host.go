// Package sim is an in-process stand-in for the proprietary CAD host: a
// single-goroutine event loop with the real host's restrictions (string
// payloads only, handlers invoked serially on the privileged loop) and an
// in-memory parametric document backend. It exists so the whole stack is
// testable without a CAD seat.
package sim

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/dkavolis/rpcad/dispatch"
)

var ErrHostClosed = errors.New("sim: host is closed")

// Host implements dispatch.Host. All handler notifications run on one
// goroutine, mimicking the host application's privileged thread.
type Host struct {
	queue     chan func()
	closed    chan struct{}
	closeOnce sync.Once

	mu            sync.Mutex
	events        map[string]*Event
	failing       map[string]error
	activeCommand string
	cancelled     int
}

func NewHost() *Host {
	h := &Host{
		queue:   make(chan func(), 128),
		closed:  make(chan struct{}),
		events:  make(map[string]*Event),
		failing: make(map[string]error),
	}
	go h.run()
	return h
}

func (h *Host) run() {
	for {
		select {
		case fn := <-h.queue:
			fn()
		case <-h.closed:
			return
		}
	}
}

func (h *Host) RegisterEvent(id string) (dispatch.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err, ok := h.failing[id]; ok {
		return nil, err
	}
	if _, ok := h.events[id]; ok {
		return nil, errors.Errorf("sim: event %s is already registered", id)
	}
	event := &Event{host: h, id: id}
	h.events[id] = event
	return event, nil
}

func (h *Host) UnregisterEvent(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.events[id]; !ok {
		return errors.Errorf("sim: event %s is not registered", id)
	}
	delete(h.events, id)
	return nil
}

func (h *Host) CancelActiveCommand() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.activeCommand != "" {
		h.activeCommand = ""
		h.cancelled++
	}
}

// BeginCommand simulates the user opening a modal interaction that would
// block scripted calls until dismissed.
func (h *Host) BeginCommand(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activeCommand = name
}

func (h *Host) ActiveCommand() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.activeCommand
}

func (h *Host) CancelledCommands() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

// FailRegistration makes RegisterEvent(id) fail until ClearFailures.
func (h *Host) FailRegistration(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failing[id] = errors.Errorf("sim: registration of %s is disabled", id)
}

func (h *Host) ClearFailures() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failing = make(map[string]error)
}

func (h *Host) RegisteredEvents() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ids := make([]string, 0, len(h.events))
	for id := range h.events {
		ids = append(ids, id)
	}
	return ids
}

func (h *Host) enqueue(fn func()) error {
	select {
	case <-h.closed:
		return ErrHostClosed
	case h.queue <- fn:
		return nil
	}
}

func (h *Host) Close() {
	h.closeOnce.Do(func() {
		close(h.closed)
	})
}

// Event is a named custom event on the simulated host.
type Event struct {
	host *Host
	id   string

	mu       sync.Mutex
	handlers []dispatch.Handler
}

func (e *Event) ID() string {
	return e.id
}

func (e *Event) AddHandler(handler dispatch.Handler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	return nil
}

func (e *Event) RemoveHandler(handler dispatch.Handler) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, h := range e.handlers {
		if h == handler {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return nil
		}
	}
	return errors.Errorf("sim: handler is not attached to event %s", e.id)
}

// Fire queues a notification on the privileged loop. Only the payload string
// crosses; handlers see it in registration order.
func (e *Event) Fire(payload string) error {
	return e.host.enqueue(func() {
		e.mu.Lock()
		handlers := make([]dispatch.Handler, len(e.handlers))
		copy(handlers, e.handlers)
		e.mu.Unlock()

		for _, handler := range handlers {
			handler.Notify(payload)
		}
	})
}
