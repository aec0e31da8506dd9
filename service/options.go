package service

import (
	"crypto/tls"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/dispatch"
)

type ServerOption func(opts *serverOptions)

type serverOptions struct {
	hostname      string
	port          int
	fallbackPort  int
	tls           *tls.Config
	bridgeOptions []dispatch.Option
}

func newServerOptions() *serverOptions {
	return &serverOptions{
		hostname:     rpcad.DefaultHostname,
		port:         rpcad.DefaultPort,
		fallbackPort: rpcad.DefaultFallbackPort,
	}
}

// Listen overrides the bind host and ports. fallbackPort is tried when the
// primary port is already taken; pass the same value twice to disable the
// fallback.
func Listen(hostname string, port int, fallbackPort int) ServerOption {
	return func(opts *serverOptions) {
		if hostname != "" {
			opts.hostname = hostname
		}
		opts.port = port
		opts.fallbackPort = fallbackPort
	}
}

func ServerTls(cfg *tls.Config) ServerOption {
	return func(opts *serverOptions) {
		opts.tls = cfg
	}
}

// BridgeOptions passes options through to the dispatch bridge (hooks, drain
// timeout, pending limits).
func BridgeOptions(options ...dispatch.Option) ServerOption {
	return func(opts *serverOptions) {
		opts.bridgeOptions = append(opts.bridgeOptions, options...)
	}
}
