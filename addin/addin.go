// Package addin implements the host-driven lifecycle around the CAD
// service: register dispatch events and start accepting calls on load, stop
// accepting and unregister on unload. It is the outermost error boundary:
// failures are logged and shown to the user, never panicked into the host
// process.
package addin

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/app"
	"github.com/txix-open/isp-kit/log"
	"google.golang.org/grpc"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/dispatch"
	"github.com/dkavolis/rpcad/metric"
	"github.com/dkavolis/rpcad/service"
)

type Addin struct {
	server    *service.Server
	collector *metric.Collector
	logger    log.Logger
	options   *options

	served chan struct{}
}

func New(backend rpcad.Backend, host dispatch.Host, logger log.Logger, opts ...Option) *Addin {
	options := newOptions()
	for _, opt := range opts {
		opt(options)
	}

	serverOpts := append(
		[]service.ServerOption{service.BridgeOptions(dispatch.WithHook(metric.DispatchHook()))},
		options.serverOptions...,
	)
	return &Addin{
		server:    service.NewServer(backend, host, logger, serverOpts...),
		collector: metric.NewCollector(options.collectorCron, "rpcad"),
		logger:    logger,
		options:   options,
		served:    make(chan struct{}),
	}
}

// Run registers the dispatch events and starts serving in the background.
// A registration or bind failure is fatal to startup: it is reported and no
// partial session is left behind.
func (a *Addin) Run(ctx context.Context) error {
	err := a.server.RegisterEvents()
	if err != nil {
		close(a.served)
		err = errors.WithMessage(err, "register dispatch events")
		a.fail(ctx, err)
		return err
	}

	a.collector.Watch(a.server.Bridge())

	go func() {
		defer close(a.served)
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			// Serving errors past startup have no caller to return to:
			// report and keep the host alive.
			a.fail(ctx, errors.WithMessage(err, "serve cad service"))
		}
	}()

	a.logger.Info(ctx, "addin started")
	return nil
}

// Stop stops accepting calls, drains in-flight dispatches and unregisters
// the host events. Safe to call once after a successful Run.
func (a *Addin) Stop(ctx context.Context) error {
	closers := []app.Closer{
		a.server,
		a.collector,
	}
	var firstErr error
	for _, closer := range closers {
		err := closer.Close()
		if err != nil {
			a.logger.Error(ctx, "addin shutdown", log.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	<-a.served
	a.logger.Info(ctx, "addin stopped")
	if firstErr != nil {
		a.options.notifier.ShowError(fmt.Sprintf("RPC CAD service shutdown failed: %v", firstErr))
	}
	return firstErr
}

func (a *Addin) fail(ctx context.Context, err error) {
	a.logger.Error(ctx, "addin failure", log.Any("error", err))
	a.options.notifier.ShowError(fmt.Sprintf("RPC CAD service failed: %v", err))
}
