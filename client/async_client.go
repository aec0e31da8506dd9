package client

import (
	"context"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/future"
)

// AsyncClient mirrors Client but every call returns immediately with a
// pending future. Callers manage their own deadlines with Wait/Result and
// may attach a completion callback with OnDone.
type AsyncClient struct {
	cli *Client
}

func (c *AsyncClient) do(call func() (any, error)) *future.Future {
	fut := future.New(nil)
	go func() {
		value, err := call()
		if err != nil {
			fut.SetError(err)
			return
		}
		fut.SetResult(value)
	}()
	return fut
}

func (c *AsyncClient) Parameter(ctx context.Context, name string) *future.Future {
	return c.do(func() (any, error) {
		return c.cli.Parameter(ctx, name)
	})
}

func (c *AsyncClient) Parameters(ctx context.Context) *future.Future {
	return c.do(func() (any, error) {
		return c.cli.Parameters(ctx)
	})
}

func (c *AsyncClient) OpenProject(ctx context.Context, path string) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.OpenProject(ctx, path)
	})
}

func (c *AsyncClient) SaveProject(ctx context.Context) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.SaveProject(ctx)
	})
}

func (c *AsyncClient) CloseProject(ctx context.Context) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.CloseProject(ctx)
	})
}

func (c *AsyncClient) ExportProject(ctx context.Context, path string) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.ExportProject(ctx, path)
	})
}

func (c *AsyncClient) SetParameter(ctx context.Context, name string, value rpcad.ParameterValue) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.SetParameter(ctx, name, value)
	})
}

func (c *AsyncClient) SetParameters(ctx context.Context, parameters map[string]rpcad.ParameterValue) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.SetParameters(ctx, parameters)
	})
}

func (c *AsyncClient) Undo(ctx context.Context, count int) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.Undo(ctx, count)
	})
}

func (c *AsyncClient) Reload(ctx context.Context) *future.Future {
	return c.do(func() (any, error) {
		return nil, c.cli.Reload(ctx)
	})
}

func (c *AsyncClient) PhysicalProperties(
	ctx context.Context,
	properties []rpcad.PhysicalProperty,
	part string,
	accuracy rpcad.Accuracy,
) *future.Future {
	return c.do(func() (any, error) {
		return c.cli.PhysicalProperties(ctx, properties, part, accuracy)
	})
}
