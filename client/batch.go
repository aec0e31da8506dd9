package client

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/rpc"
)

// Batch accumulates commands and executes them server-side in one round
// trip. Commands run in order; the server aborts on the first failure.
type Batch struct {
	cli      *Client
	commands []json.RawMessage
	err      error
}

func (b *Batch) add(name string, args any) *Batch {
	if b.err != nil {
		return b
	}
	command := rpcad.Command{Name: name}
	if args != nil {
		data, err := rpc.Marshal(args)
		if err != nil {
			b.err = errors.WithMessagef(err, "marshal args for %s", name)
			return b
		}
		command.Args = data
	}
	data, err := rpc.Marshal(command)
	if err != nil {
		b.err = errors.WithMessagef(err, "marshal command %s", name)
		return b
	}
	b.commands = append(b.commands, data)
	return b
}

func (b *Batch) abs(path string) string {
	if b.err != nil {
		return path
	}
	resolved, err := filepath.Abs(path)
	if err != nil {
		b.err = errors.WithMessagef(err, "resolve path %s", path)
		return path
	}
	return resolved
}

func (b *Batch) Parameter(name string) *Batch {
	return b.add("parameter", rpc.ParameterRequest{Name: name})
}

func (b *Batch) Parameters() *Batch {
	return b.add("parameters", nil)
}

func (b *Batch) OpenProject(path string) *Batch {
	return b.add("open_project", rpc.OpenProjectRequest{Path: b.abs(path)})
}

func (b *Batch) SaveProject() *Batch {
	return b.add("save_project", nil)
}

func (b *Batch) CloseProject() *Batch {
	return b.add("close_project", nil)
}

func (b *Batch) ExportProject(path string) *Batch {
	return b.add("export_project", rpc.ExportProjectRequest{Path: b.abs(path)})
}

func (b *Batch) SetParameter(name string, value rpcad.ParameterValue) *Batch {
	return b.add("set_parameter", rpc.SetParameterRequest{Name: name, Value: value})
}

func (b *Batch) SetParameters(parameters map[string]rpcad.ParameterValue) *Batch {
	return b.add("set_parameters", rpc.SetParametersRequest{Parameters: parameters})
}

func (b *Batch) Undo(count int) *Batch {
	return b.add("undo", rpc.UndoRequest{Count: count})
}

func (b *Batch) Reload() *Batch {
	return b.add("reload", nil)
}

func (b *Batch) PhysicalProperties(properties []rpcad.PhysicalProperty, part string, accuracy rpcad.Accuracy) *Batch {
	return b.add("physical_properties", rpc.PhysicalPropertiesRequest{
		Properties: properties,
		Part:       part,
		Accuracy:   accuracy,
	})
}

// Do executes the batch. Results are positional and still serialized; use
// Decode on the entry you care about.
func (b *Batch) Do(ctx context.Context) ([]rpc.BatchResult, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.commands) == 0 {
		return nil, nil
	}
	resp, err := b.cli.cad.BatchCommands(ctx, &rpc.BatchRequest{Commands: b.commands})
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Decode deserializes one batch result into ptr, which should match the
// response type of the corresponding call.
func Decode(result rpc.BatchResult, ptr any) error {
	if len(result.Value) == 0 {
		return nil
	}
	return rpc.Unmarshal(result.Value, ptr)
}
