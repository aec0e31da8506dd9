package service

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dkavolis/rpcad"
	"github.com/dkavolis/rpcad/rpc"
)

func (s *Server) Parameter(ctx context.Context, in *rpc.ParameterRequest) (*rpc.ParameterResponse, error) {
	if in.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "parameter name is required")
	}
	result, err := s.bridge.Call(opParameter, in.Name)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.ParameterResponse{Parameter: result.(rpcad.Parameter)}, nil
}

func (s *Server) Parameters(ctx context.Context, in *rpc.Empty) (*rpc.ParametersResponse, error) {
	result, err := s.bridge.Call(opParameters, nil)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.ParametersResponse{Parameters: result.(map[string]rpcad.Parameter)}, nil
}

func (s *Server) OpenProject(ctx context.Context, in *rpc.OpenProjectRequest) (*rpc.Empty, error) {
	if in.Path == "" {
		return nil, status.Error(codes.InvalidArgument, "path is required")
	}
	if _, err := rpcad.ImportFormatFromPath(in.Path); err != nil {
		return nil, rpcError(err)
	}
	_, err := s.bridge.Call(opOpenProject, in.Path)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) SaveProject(ctx context.Context, in *rpc.Empty) (*rpc.Empty, error) {
	_, err := s.bridge.Call(opSaveProject, nil)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) CloseProject(ctx context.Context, in *rpc.Empty) (*rpc.Empty, error) {
	_, err := s.bridge.Call(opCloseProject, nil)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) ExportProject(ctx context.Context, in *rpc.ExportProjectRequest) (*rpc.Empty, error) {
	if in.Path == "" {
		return nil, status.Error(codes.InvalidArgument, "path is required")
	}
	if _, err := rpcad.ExportFormatFromPath(in.Path); err != nil {
		return nil, rpcError(err)
	}
	_, err := s.bridge.Call(opExportProject, in.Path)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) SetParameter(ctx context.Context, in *rpc.SetParameterRequest) (*rpc.Empty, error) {
	if in.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "parameter name is required")
	}
	_, err := s.bridge.Call(opSetParameter, setParameterArgs{name: in.Name, value: in.Value})
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) SetParameters(ctx context.Context, in *rpc.SetParametersRequest) (*rpc.Empty, error) {
	if len(in.Parameters) == 0 {
		return &rpc.Empty{}, nil
	}
	_, err := s.bridge.Call(opSetParameters, setParametersArgs{parameters: in.Parameters})
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) Undo(ctx context.Context, in *rpc.UndoRequest) (*rpc.Empty, error) {
	count := in.Count
	if count <= 0 {
		count = 1
	}
	_, err := s.bridge.Call(opUndo, count)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) Reload(ctx context.Context, in *rpc.Empty) (*rpc.Empty, error) {
	_, err := s.bridge.Call(opReload, nil)
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.Empty{}, nil
}

func (s *Server) Debug(ctx context.Context, in *rpc.Empty) (*rpc.StatusResponse, error) {
	result, err := s.bridge.Call(opStatus, nil)
	if err != nil {
		return nil, rpcError(err)
	}
	backendStatus := result.(rpcad.Status)
	return &rpc.StatusResponse{
		Document:     backendStatus.Document,
		Parameters:   backendStatus.Parameters,
		PendingCalls: s.bridge.Pending(),
		StartedAt:    s.startedAt,
	}, nil
}

func (s *Server) PhysicalProperties(ctx context.Context, in *rpc.PhysicalPropertiesRequest) (*rpc.PhysicalPropertiesResponse, error) {
	if len(in.Properties) == 0 {
		return nil, status.Error(codes.InvalidArgument, "at least one property is required")
	}
	accuracy := in.Accuracy
	if accuracy == "" {
		accuracy = rpcad.Medium
	}
	result, err := s.bridge.Call(opPhysicalProperties, physicalPropertiesArgs{
		properties: in.Properties,
		part:       in.Part,
		accuracy:   accuracy,
	})
	if err != nil {
		return nil, rpcError(err)
	}
	return &rpc.PhysicalPropertiesResponse{Values: result.(map[rpcad.PhysicalProperty]rpcad.PropertyValue)}, nil
}

// rpcError maps backend sentinels onto gRPC status codes; everything else
// surfaces with its original message.
func rpcError(err error) error {
	switch {
	case errors.Is(err, rpcad.ErrNoOpenProject):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, rpcad.ErrUnknownParameter):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, rpcad.ErrUnsupportedFormat):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return err
	}
}
