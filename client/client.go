// Package client provides synchronous and future-based clients for a running
// CAD service.
package client

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/rpc"
)

type Client struct {
	cc  *grpc.ClientConn
	cad rpc.CadServiceClient
}

// New connects to the CAD service at target ("host:port"). The connection is
// lazy; the first call surfaces dial failures.
func New(target string, opts ...Option) (*Client, error) {
	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	creds := insecure.NewCredentials()
	if options.tls != nil {
		creds = credentials.NewTLS(options.tls)
	}
	cc, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(creds),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	if err != nil {
		return nil, errors.WithMessagef(err, "grpc client for %s", target)
	}

	return &Client{
		cc:  cc,
		cad: rpc.NewCadServiceClient(cc),
	}, nil
}

// Locate probes hostname on each port in order and returns the first
// "host:port" that accepts a TCP connection. Servers bind the fallback port
// when another session owns the primary one, so clients probe the same list.
func Locate(hostname string, ports ...int) (string, error) {
	if len(ports) == 0 {
		ports = []int{rpcad.DefaultPort, rpcad.DefaultFallbackPort}
	}
	for _, port := range ports {
		addr := fmt.Sprintf("%s:%d", hostname, port)
		conn, err := net.DialTimeout("tcp", addr, 1*time.Second)
		if err != nil {
			continue
		}
		_ = conn.Close()
		return addr, nil
	}
	return "", errors.Errorf("no cad service found on %s, ports %v", hostname, ports)
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) Parameter(ctx context.Context, name string) (rpcad.Parameter, error) {
	resp, err := c.cad.Parameter(ctx, &rpc.ParameterRequest{Name: name})
	if err != nil {
		return rpcad.Parameter{}, err
	}
	return resp.Parameter, nil
}

func (c *Client) Parameters(ctx context.Context) (map[string]rpcad.Parameter, error) {
	resp, err := c.cad.Parameters(ctx, &rpc.Empty{})
	if err != nil {
		return nil, err
	}
	return resp.Parameters, nil
}

// OpenProject opens the design at path. Relative paths are resolved against
// the client's working directory before they cross the wire, since the
// service resolves paths on its own host.
func (c *Client) OpenProject(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.WithMessagef(err, "resolve path %s", path)
	}
	_, err = c.cad.OpenProject(ctx, &rpc.OpenProjectRequest{Path: path})
	return err
}

func (c *Client) SaveProject(ctx context.Context) error {
	_, err := c.cad.SaveProject(ctx, &rpc.Empty{})
	return err
}

func (c *Client) CloseProject(ctx context.Context) error {
	_, err := c.cad.CloseProject(ctx, &rpc.Empty{})
	return err
}

func (c *Client) ExportProject(ctx context.Context, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.WithMessagef(err, "resolve path %s", path)
	}
	_, err = c.cad.ExportProject(ctx, &rpc.ExportProjectRequest{Path: path})
	return err
}

func (c *Client) SetParameter(ctx context.Context, name string, value rpcad.ParameterValue) error {
	_, err := c.cad.SetParameter(ctx, &rpc.SetParameterRequest{Name: name, Value: value})
	return err
}

func (c *Client) SetParameters(ctx context.Context, parameters map[string]rpcad.ParameterValue) error {
	_, err := c.cad.SetParameters(ctx, &rpc.SetParametersRequest{Parameters: parameters})
	return err
}

func (c *Client) Undo(ctx context.Context, count int) error {
	_, err := c.cad.Undo(ctx, &rpc.UndoRequest{Count: count})
	return err
}

func (c *Client) Reload(ctx context.Context) error {
	_, err := c.cad.Reload(ctx, &rpc.Empty{})
	return err
}

func (c *Client) Debug(ctx context.Context) (*rpc.StatusResponse, error) {
	return c.cad.Debug(ctx, &rpc.Empty{})
}

func (c *Client) PhysicalProperties(
	ctx context.Context,
	properties []rpcad.PhysicalProperty,
	part string,
	accuracy rpcad.Accuracy,
) (map[rpcad.PhysicalProperty]rpcad.PropertyValue, error) {
	resp, err := c.cad.PhysicalProperties(ctx, &rpc.PhysicalPropertiesRequest{
		Properties: properties,
		Part:       part,
		Accuracy:   accuracy,
	})
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// PhysicalProperty fetches a single property value.
func (c *Client) PhysicalProperty(
	ctx context.Context,
	property rpcad.PhysicalProperty,
	part string,
	accuracy rpcad.Accuracy,
) (rpcad.PropertyValue, error) {
	values, err := c.PhysicalProperties(ctx, []rpcad.PhysicalProperty{property}, part, accuracy)
	if err != nil {
		return rpcad.PropertyValue{}, err
	}
	return values[property], nil
}

// Async returns a future-based view over the same connection.
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{cli: c}
}

// Batch starts a command batch executed in a single round trip.
func (c *Client) Batch() *Batch {
	return &Batch{cli: c}
}
