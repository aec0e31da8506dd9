package dispatch

import (
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/dkavolis/rpcad/future"
)

const DefaultMaxPending = 1 << 16

var ErrTooManyPending = errors.New("dispatch: too many pending calls for operation")

// Registry correlates host-side event completions back to the calling
// goroutine. Keys have the form "{operation}#{n}"; n is probed from 0 so a
// freed sequence number is reused but a pending one never is. Entries are
// added at dispatch time and removed by the dispatcher's completion cleanup,
// never by the privileged-thread handler.
type Registry struct {
	mu         sync.Mutex
	pending    map[string]*future.Future
	maxPending int
}

// NewRegistry creates a registry allowing up to maxPending concurrent calls
// per operation. Non-positive maxPending selects DefaultMaxPending.
func NewRegistry(maxPending int) *Registry {
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}
	return &Registry{
		pending:    make(map[string]*future.Future),
		maxPending: maxPending,
	}
}

// Allocate inserts fut under the first unused key for operation and returns
// the key. Probing is bounded: past maxPending pending calls it fails fast
// with ErrTooManyPending instead of looping.
func (r *Registry) Allocate(operation string, fut *future.Future) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for n := 0; n < r.maxPending; n++ {
		key := operation + "#" + strconv.Itoa(n)
		if _, ok := r.pending[key]; ok {
			continue
		}
		r.pending[key] = fut
		return key, nil
	}
	return "", errors.WithMessage(ErrTooManyPending, operation)
}

func (r *Registry) Get(key string) (*future.Future, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fut, ok := r.pending[key]
	return fut, ok
}

func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, key)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pending)
}

// PendingByOperation counts pending calls grouped by operation id.
func (r *Registry) PendingByOperation() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[string]int)
	for key := range r.pending {
		operation := key
		if i := strings.LastIndexByte(key, '#'); i >= 0 {
			operation = key[:i]
		}
		counts[operation]++
	}
	return counts
}
