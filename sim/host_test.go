package sim_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dkavolis/rpcad/dispatch"
	"github.com/dkavolis/rpcad/sim"
)

type recordingHandler struct {
	payloads chan string
}

func (h *recordingHandler) Notify(payload string) {
	h.payloads <- payload
}

func TestFireRunsHandlersInOrder(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	host := sim.NewHost()
	t.Cleanup(host.Close)

	event, err := host.RegisterEvent("rpcad.test.echo")
	require.NoError(err)

	first := &recordingHandler{payloads: make(chan string, 4)}
	second := &recordingHandler{payloads: make(chan string, 4)}
	require.NoError(event.AddHandler(first))
	require.NoError(event.AddHandler(second))

	require.NoError(event.Fire("echo#0"))
	require.EqualValues("echo#0", receive(require, first.payloads))
	require.EqualValues("echo#0", receive(require, second.payloads))

	require.NoError(event.RemoveHandler(second))
	require.NoError(event.Fire("echo#1"))
	require.EqualValues("echo#1", receive(require, first.payloads))
	select {
	case payload := <-second.payloads:
		require.Failf("removed handler was notified", "payload %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegisterDuplicateEvent(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	host := sim.NewHost()
	t.Cleanup(host.Close)

	_, err := host.RegisterEvent("rpcad.test.echo")
	require.NoError(err)
	_, err = host.RegisterEvent("rpcad.test.echo")
	require.Error(err)

	require.NoError(host.UnregisterEvent("rpcad.test.echo"))
	require.Error(host.UnregisterEvent("rpcad.test.echo"))

	_, err = host.RegisterEvent("rpcad.test.echo")
	require.NoError(err)
}

func TestFailRegistration(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	host := sim.NewHost()
	t.Cleanup(host.Close)

	host.FailRegistration("rpcad.test.echo")
	_, err := host.RegisterEvent("rpcad.test.echo")
	require.Error(err)

	host.ClearFailures()
	_, err = host.RegisterEvent("rpcad.test.echo")
	require.NoError(err)
}

func TestFireAfterClose(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	host := sim.NewHost()
	event, err := host.RegisterEvent("rpcad.test.echo")
	require.NoError(err)

	host.Close()
	require.ErrorIs(event.Fire("echo#0"), sim.ErrHostClosed)
}

func TestConcurrentClose(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	host := sim.NewHost()
	event, err := host.RegisterEvent("rpcad.test.echo")
	require.NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			host.Close()
		}()
	}
	wg.Wait()

	host.Close()
	require.ErrorIs(event.Fire("echo#0"), sim.ErrHostClosed)
}

func TestCancelActiveCommand(t *testing.T) {
	t.Parallel()

	require := require.New(t)

	host := sim.NewHost()
	t.Cleanup(host.Close)

	host.CancelActiveCommand()
	require.EqualValues(0, host.CancelledCommands())

	host.BeginCommand("extrude")
	require.EqualValues("extrude", host.ActiveCommand())
	host.CancelActiveCommand()
	require.Empty(host.ActiveCommand())
	require.EqualValues(1, host.CancelledCommands())
}

var _ dispatch.Host = (*sim.Host)(nil)

func receive(require *require.Assertions, payloads chan string) string {
	select {
	case payload := <-payloads:
		return payload
	case <-time.After(time.Second):
		require.Fail("timed out waiting for notification")
		return ""
	}
}
