package addin_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/txix-open/isp-kit/log"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/addin"
	"github.com/dkavolis/rpcad/client"
	"github.com/dkavolis/rpcad/dispatch"
	"github.com/dkavolis/rpcad/service"
	"github.com/dkavolis/rpcad/sim"
)

type notifier struct {
	messages chan string
}

func (n *notifier) ShowError(message string) {
	n.messages <- message
}

func TestRunAndStop(t *testing.T) {
	t.Parallel()

	require := require.New(t)
	ctx := context.Background()

	logger, err := log.New(log.WithLevel(log.ErrorLevel))
	require.NoError(err)

	host := sim.NewHost()
	t.Cleanup(host.Close)

	backend := sim.NewBackend()
	backend.NewDocument("part")
	backend.DefineParameter("width", "4")

	port := freePort(require)
	shown := &notifier{messages: make(chan string, 1)}
	a := addin.New(backend, host, logger,
		addin.ServerOptions(service.Listen("127.0.0.1", port, port)),
		addin.WithNotifier(shown),
	)
	require.NoError(a.Run(ctx))
	require.Len(host.RegisteredEvents(), 12)

	addr := ""
	for deadline := time.Now().Add(5 * time.Second); time.Now().Before(deadline); {
		addr, err = client.Locate("127.0.0.1", port)
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(err)
	cli, err := client.New(addr)
	require.NoError(err)
	t.Cleanup(func() {
		_ = cli.Close()
	})

	param, err := cli.Parameter(ctx, "width")
	require.NoError(err)
	require.EqualValues(rpcad.Parameter{Value: 4, Expression: "4"}, param)

	require.NoError(a.Stop(ctx))
	require.Empty(host.RegisteredEvents())
	require.Empty(shown.messages)
}

func TestRunFailsWhenRegistrationFails(t *testing.T) {
	t.Parallel()

	require := require.New(t)
	ctx := context.Background()

	logger, err := log.New(log.WithLevel(log.ErrorLevel))
	require.NoError(err)

	host := sim.NewHost()
	t.Cleanup(host.Close)
	host.FailRegistration(dispatch.EventID(service.Namespace, "undo"))

	shown := &notifier{messages: make(chan string, 1)}
	a := addin.New(sim.NewBackend(), host, logger, addin.WithNotifier(shown))
	require.Error(a.Run(ctx))
	require.Empty(host.RegisteredEvents())

	select {
	case message := <-shown.messages:
		require.Contains(message, "failed")
	case <-time.After(time.Second):
		require.Fail("notifier was not called")
	}
}

func freePort(require *require.Assertions) int {
	lis, err := net.Listen("tcp", "127.0.0.1:")
	require.NoError(err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(lis.Close())
	return port
}
