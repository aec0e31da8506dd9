package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "rpcad.CadService"

// CadServiceClient is the client API for the CAD service. All methods are
// unary; long-running host operations simply hold the call open.
type CadServiceClient interface {
	Parameter(ctx context.Context, in *ParameterRequest, opts ...grpc.CallOption) (*ParameterResponse, error)
	Parameters(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ParametersResponse, error)
	OpenProject(ctx context.Context, in *OpenProjectRequest, opts ...grpc.CallOption) (*Empty, error)
	SaveProject(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	CloseProject(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	ExportProject(ctx context.Context, in *ExportProjectRequest, opts ...grpc.CallOption) (*Empty, error)
	SetParameter(ctx context.Context, in *SetParameterRequest, opts ...grpc.CallOption) (*Empty, error)
	SetParameters(ctx context.Context, in *SetParametersRequest, opts ...grpc.CallOption) (*Empty, error)
	Undo(ctx context.Context, in *UndoRequest, opts ...grpc.CallOption) (*Empty, error)
	Reload(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Debug(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error)
	PhysicalProperties(ctx context.Context, in *PhysicalPropertiesRequest, opts ...grpc.CallOption) (*PhysicalPropertiesResponse, error)
	BatchCommands(ctx context.Context, in *BatchRequest, opts ...grpc.CallOption) (*BatchResponse, error)
}

type cadServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCadServiceClient(cc grpc.ClientConnInterface) CadServiceClient {
	return &cadServiceClient{cc: cc}
}

func (c *cadServiceClient) invoke(ctx context.Context, method string, in any, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *cadServiceClient) Parameter(ctx context.Context, in *ParameterRequest, opts ...grpc.CallOption) (*ParameterResponse, error) {
	out := new(ParameterResponse)
	err := c.invoke(ctx, "Parameter", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) Parameters(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ParametersResponse, error) {
	out := new(ParametersResponse)
	err := c.invoke(ctx, "Parameters", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) OpenProject(ctx context.Context, in *OpenProjectRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "OpenProject", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) SaveProject(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "SaveProject", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) CloseProject(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "CloseProject", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) ExportProject(ctx context.Context, in *ExportProjectRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "ExportProject", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) SetParameter(ctx context.Context, in *SetParameterRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "SetParameter", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) SetParameters(ctx context.Context, in *SetParametersRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "SetParameters", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) Undo(ctx context.Context, in *UndoRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "Undo", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) Reload(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	err := c.invoke(ctx, "Reload", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) Debug(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	err := c.invoke(ctx, "Debug", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) PhysicalProperties(ctx context.Context, in *PhysicalPropertiesRequest, opts ...grpc.CallOption) (*PhysicalPropertiesResponse, error) {
	out := new(PhysicalPropertiesResponse)
	err := c.invoke(ctx, "PhysicalProperties", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cadServiceClient) BatchCommands(ctx context.Context, in *BatchRequest, opts ...grpc.CallOption) (*BatchResponse, error) {
	out := new(BatchResponse)
	err := c.invoke(ctx, "BatchCommands", in, out, opts)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CadServiceServer is the server API for the CAD service.
type CadServiceServer interface {
	Parameter(ctx context.Context, in *ParameterRequest) (*ParameterResponse, error)
	Parameters(ctx context.Context, in *Empty) (*ParametersResponse, error)
	OpenProject(ctx context.Context, in *OpenProjectRequest) (*Empty, error)
	SaveProject(ctx context.Context, in *Empty) (*Empty, error)
	CloseProject(ctx context.Context, in *Empty) (*Empty, error)
	ExportProject(ctx context.Context, in *ExportProjectRequest) (*Empty, error)
	SetParameter(ctx context.Context, in *SetParameterRequest) (*Empty, error)
	SetParameters(ctx context.Context, in *SetParametersRequest) (*Empty, error)
	Undo(ctx context.Context, in *UndoRequest) (*Empty, error)
	Reload(ctx context.Context, in *Empty) (*Empty, error)
	Debug(ctx context.Context, in *Empty) (*StatusResponse, error)
	PhysicalProperties(ctx context.Context, in *PhysicalPropertiesRequest) (*PhysicalPropertiesResponse, error)
	BatchCommands(ctx context.Context, in *BatchRequest) (*BatchResponse, error)
}

func RegisterCadServiceServer(s grpc.ServiceRegistrar, srv CadServiceServer) {
	s.RegisterService(&CadServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(srv CadServiceServer, ctx context.Context, in *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CadServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CadServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CadServiceDesc is the grpc.ServiceDesc for the CAD service. It is written
// by hand because the wire types are plain structs carried by the registered
// JSON codec; there is no .proto to generate from.
var CadServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CadServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Parameter",
			Handler: unaryHandler("Parameter", func(srv CadServiceServer, ctx context.Context, in *ParameterRequest) (*ParameterResponse, error) {
				return srv.Parameter(ctx, in)
			}),
		},
		{
			MethodName: "Parameters",
			Handler: unaryHandler("Parameters", func(srv CadServiceServer, ctx context.Context, in *Empty) (*ParametersResponse, error) {
				return srv.Parameters(ctx, in)
			}),
		},
		{
			MethodName: "OpenProject",
			Handler: unaryHandler("OpenProject", func(srv CadServiceServer, ctx context.Context, in *OpenProjectRequest) (*Empty, error) {
				return srv.OpenProject(ctx, in)
			}),
		},
		{
			MethodName: "SaveProject",
			Handler: unaryHandler("SaveProject", func(srv CadServiceServer, ctx context.Context, in *Empty) (*Empty, error) {
				return srv.SaveProject(ctx, in)
			}),
		},
		{
			MethodName: "CloseProject",
			Handler: unaryHandler("CloseProject", func(srv CadServiceServer, ctx context.Context, in *Empty) (*Empty, error) {
				return srv.CloseProject(ctx, in)
			}),
		},
		{
			MethodName: "ExportProject",
			Handler: unaryHandler("ExportProject", func(srv CadServiceServer, ctx context.Context, in *ExportProjectRequest) (*Empty, error) {
				return srv.ExportProject(ctx, in)
			}),
		},
		{
			MethodName: "SetParameter",
			Handler: unaryHandler("SetParameter", func(srv CadServiceServer, ctx context.Context, in *SetParameterRequest) (*Empty, error) {
				return srv.SetParameter(ctx, in)
			}),
		},
		{
			MethodName: "SetParameters",
			Handler: unaryHandler("SetParameters", func(srv CadServiceServer, ctx context.Context, in *SetParametersRequest) (*Empty, error) {
				return srv.SetParameters(ctx, in)
			}),
		},
		{
			MethodName: "Undo",
			Handler: unaryHandler("Undo", func(srv CadServiceServer, ctx context.Context, in *UndoRequest) (*Empty, error) {
				return srv.Undo(ctx, in)
			}),
		},
		{
			MethodName: "Reload",
			Handler: unaryHandler("Reload", func(srv CadServiceServer, ctx context.Context, in *Empty) (*Empty, error) {
				return srv.Reload(ctx, in)
			}),
		},
		{
			MethodName: "Debug",
			Handler: unaryHandler("Debug", func(srv CadServiceServer, ctx context.Context, in *Empty) (*StatusResponse, error) {
				return srv.Debug(ctx, in)
			}),
		},
		{
			MethodName: "PhysicalProperties",
			Handler: unaryHandler("PhysicalProperties", func(srv CadServiceServer, ctx context.Context, in *PhysicalPropertiesRequest) (*PhysicalPropertiesResponse, error) {
				return srv.PhysicalProperties(ctx, in)
			}),
		},
		{
			MethodName: "BatchCommands",
			Handler: unaryHandler("BatchCommands", func(srv CadServiceServer, ctx context.Context, in *BatchRequest) (*BatchResponse, error) {
				return srv.BatchCommands(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpcad/cad_service.json",
}
