// rpcad-sim serves the CAD scripting API against the in-memory simulator
// backend, for client development without a CAD seat.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/txix-open/isp-kit/log"

	"github.com/dkavolis/rpcad/addin"
	"github.com/dkavolis/rpcad/config"
	"github.com/dkavolis/rpcad/dispatch"
	"github.com/dkavolis/rpcad/service"
	"github.com/dkavolis/rpcad/sim"
)

func main() {
	configPath := pflag.String("config", "", "path to a YAML config file")
	host := pflag.String("host", "", "bind hostname, overrides config")
	port := pflag.Int("port", 0, "bind port, overrides config")
	project := pflag.String("project", "", "project file to open on startup")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}
	if *host != "" {
		cfg.Hostname = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}

	level := log.DebugLevel
	switch cfg.LogLevel {
	case "error":
		level = log.ErrorLevel
	case "warn":
		level = log.WarnLevel
	case "info":
		level = log.InfoLevel
	}
	logger, err := log.New(log.WithLevel(level))
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	simHost := sim.NewHost()
	defer simHost.Close()

	backend := sim.NewBackend()
	if *project != "" {
		err := backend.OpenProject(*project)
		if err != nil {
			logger.Error(ctx, "open project", log.Any("error", err))
			os.Exit(1)
		}
	} else {
		backend.NewDocument("simulated")
		backend.DefineParameter("size", "1.0")
	}

	a := addin.New(backend, simHost, logger,
		addin.ServerOptions(
			service.Listen(cfg.Hostname, cfg.Port, cfg.FallbackPort),
			service.BridgeOptions(dispatch.DrainTimeout(cfg.DrainTimeout)),
		),
		addin.WithNotifier(logNotifier{ctx: ctx, logger: logger}),
	)
	err = a.Run(ctx)
	if err != nil {
		os.Exit(1)
	}

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.DrainTimeout+5*time.Second)
	defer cancel()
	err = a.Stop(stopCtx)
	if err != nil {
		os.Exit(1)
	}
}

// logNotifier stands in for the host UI message box.
type logNotifier struct {
	ctx    context.Context
	logger log.Logger
}

func (n logNotifier) ShowError(message string) {
	n.logger.Error(n.ctx, message)
}
