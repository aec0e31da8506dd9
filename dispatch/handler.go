package dispatch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
)

// opHandler runs on the host's privileged thread. It resolves the dispatch
// key back to the pending future, dismisses any modal interaction, invokes
// the real operation and delivers the outcome into the future. Errors are
// captured, never propagated into the host's own event loop.
type opHandler struct {
	operation Operation
	host      Host
	registry  *Registry
	logger    log.Logger
}

func (h *opHandler) Notify(payload string) {
	ctx := log.ToContext(context.Background(), log.String("dispatchKey", payload))

	fut, ok := h.registry.Get(payload)
	if !ok {
		h.logger.Warn(ctx, "no pending call for dispatch key")
		return
	}

	h.host.CancelActiveCommand()

	result, err := h.invoke(fut.Payload())
	if err != nil {
		if !fut.SetError(err) {
			h.logger.Warn(ctx, "call was already completed", log.Any("error", err))
		}
		return
	}
	if !fut.SetResult(result) {
		h.logger.Warn(ctx, "call was already completed")
	}
}

func (h *opHandler) invoke(payload any) (result any, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		recovered, ok := r.(error)
		if ok {
			err = recovered
		} else {
			err = fmt.Errorf("%v", r)
		}
		stack := make([]byte, 4<<10)
		length := runtime.Stack(stack, false)
		err = errors.Errorf("operation panicked: %v\n%s", err, stack[:length])
	}()

	return h.operation(payload)
}
