package service

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dkavolis/rpcad/rpc"
)

// BatchCommands executes serialized commands in order, one bridge dispatch
// per command, and aborts on the first failure so a broken macro does not
// keep mutating the document.
func (s *Server) BatchCommands(ctx context.Context, in *rpc.BatchRequest) (*rpc.BatchResponse, error) {
	results := make([]rpc.BatchResult, 0, len(in.Commands))
	for i, raw := range in.Commands {
		name := gjson.GetBytes(raw, "name")
		if !name.Exists() {
			return nil, status.Errorf(codes.InvalidArgument, "command %d: missing name", i)
		}

		value, err := s.runCommand(ctx, name.Str, []byte(gjson.GetBytes(raw, "args").Raw))
		if err != nil {
			return nil, errors.WithMessagef(err, "command %d (%s)", i, name.Str)
		}

		data, err := rpc.Marshal(value)
		if err != nil {
			return nil, errors.WithMessagef(err, "command %d (%s): marshal result", i, name.Str)
		}
		results = append(results, rpc.BatchResult{Value: json.RawMessage(data)})
	}
	return &rpc.BatchResponse{Results: results}, nil
}

func (s *Server) runCommand(ctx context.Context, name string, args []byte) (any, error) {
	decode := func(ptr any) error {
		if len(args) == 0 {
			return nil
		}
		return errors.WithMessage(rpc.Unmarshal(args, ptr), "decode args")
	}

	switch name {
	case opParameter:
		in := new(rpc.ParameterRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.Parameter(ctx, in)
	case opParameters:
		return s.Parameters(ctx, &rpc.Empty{})
	case opOpenProject:
		in := new(rpc.OpenProjectRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.OpenProject(ctx, in)
	case opSaveProject:
		return s.SaveProject(ctx, &rpc.Empty{})
	case opCloseProject:
		return s.CloseProject(ctx, &rpc.Empty{})
	case opExportProject:
		in := new(rpc.ExportProjectRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.ExportProject(ctx, in)
	case opSetParameter:
		in := new(rpc.SetParameterRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.SetParameter(ctx, in)
	case opSetParameters:
		in := new(rpc.SetParametersRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.SetParameters(ctx, in)
	case opUndo:
		in := new(rpc.UndoRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.Undo(ctx, in)
	case opReload:
		return s.Reload(ctx, &rpc.Empty{})
	case opStatus:
		return s.Debug(ctx, &rpc.Empty{})
	case opPhysicalProperties:
		in := new(rpc.PhysicalPropertiesRequest)
		if err := decode(in); err != nil {
			return nil, err
		}
		return s.PhysicalProperties(ctx, in)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown command %q", name)
	}
}
