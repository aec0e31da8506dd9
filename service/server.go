package service

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
	"github.com/txix-open/isp-kit/requestid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/dispatch"
	"github.com/dkavolis/rpcad/rpc"
)

// Server exposes the CAD service over gRPC. Every RPC crosses the dispatch
// bridge; nothing touches the backend from an RPC goroutine.
type Server struct {
	srv       *grpc.Server
	bridge    *dispatch.Bridge
	logger    log.Logger
	options   *serverOptions
	startedAt time.Time
}

func NewServer(backend rpcad.Backend, host dispatch.Host, logger log.Logger, opts ...ServerOption) *Server {
	options := newServerOptions()
	for _, opt := range opts {
		opt(options)
	}

	bridge := dispatch.New(host, Namespace, operations(backend), logger, options.bridgeOptions...)

	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(loggingInterceptor(logger)),
	}
	if options.tls != nil {
		serverOpts = append(serverOpts, grpc.Creds(credentials.NewTLS(options.tls)))
	}
	srv := grpc.NewServer(serverOpts...)

	s := &Server{
		srv:       srv,
		bridge:    bridge,
		logger:    logger,
		options:   options,
		startedAt: time.Now(),
	}
	rpc.RegisterCadServiceServer(srv, s)
	return s
}

// RegisterEvents binds the dispatch bridge to the host. Must succeed before
// the server accepts calls; a failure leaves no partial registrations.
func (s *Server) RegisterEvents() error {
	return s.bridge.Register()
}

// Bridge exposes the dispatch bridge for metric collection.
func (s *Server) Bridge() *dispatch.Bridge {
	return s.bridge
}

// ListenAndServe binds the configured port, falling back to the fallback
// port when the primary is already taken by another session.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.options.hostname, s.options.port)
	lis, err := net.Listen("tcp", addr)
	if err != nil && s.options.fallbackPort != s.options.port {
		fallbackAddr := fmt.Sprintf("%s:%d", s.options.hostname, s.options.fallbackPort)
		s.logger.Warn(context.Background(), "primary port is unavailable, using fallback",
			log.String("address", addr), log.String("fallback", fallbackAddr), log.Any("error", err))
		lis, err = net.Listen("tcp", fallbackAddr)
	}
	if err != nil {
		return errors.WithMessagef(err, "listen %s", addr)
	}

	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info(context.Background(), "cad service is accepting calls", log.String("address", lis.Addr().String()))
	return s.srv.Serve(lis)
}

// Close stops accepting calls, waits for active RPCs, then unregisters the
// host events.
func (s *Server) Close() error {
	s.srv.GracefulStop()
	err := s.bridge.Unregister()
	if err != nil && !errors.Is(err, dispatch.ErrNotRegistered) {
		return errors.WithMessage(err, "unregister dispatch events")
	}
	return nil
}

func loggingInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = log.ToContext(ctx,
			log.String("requestId", requestid.Next()),
			log.String("method", info.FullMethod),
		)
		logger.Debug(ctx, "cad service: call")
		resp, err := handler(ctx, req)
		if err != nil {
			logger.Error(ctx, "cad service: call failed", log.Any("error", err))
		}
		return resp, err
	}
}
