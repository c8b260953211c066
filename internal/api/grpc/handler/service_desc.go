package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified admin service name.
const ServiceName = "rostersync.admin.v1.AdminService"

// Admin RPC method names.
const (
	MethodStatus            = "Status"
	MethodStart             = "Start"
	MethodStop              = "Stop"
	MethodSync              = "Sync"
	MethodGetConfig         = "GetConfig"
	MethodSetVerifiedRole   = "SetVerifiedRole"
	MethodClearVerifiedRole = "ClearVerifiedRole"
	MethodAddOverride       = "AddOverride"
	MethodRemoveOverride    = "RemoveOverride"
	MethodAddIgnore         = "AddIgnore"
	MethodRemoveIgnore      = "RemoveIgnore"
	MethodRevoke            = "Revoke"
)

// FullMethod returns the gRPC path of an admin method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// AdminServer is the server API for the admin service. Requests and responses
// are free-form protobuf Structs.
type AdminServer interface {
	Status(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Start(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Stop(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Sync(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetConfig(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetVerifiedRole(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearVerifiedRole(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddOverride(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveOverride(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddIgnore(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveIgnore(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Revoke(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(srv AdminServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AdminServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(AdminServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// AdminServiceDesc describes the admin service for grpc.Server.RegisterService.
var AdminServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(MethodStatus, AdminServer.Status),
		unaryMethod(MethodStart, AdminServer.Start),
		unaryMethod(MethodStop, AdminServer.Stop),
		unaryMethod(MethodSync, AdminServer.Sync),
		unaryMethod(MethodGetConfig, AdminServer.GetConfig),
		unaryMethod(MethodSetVerifiedRole, AdminServer.SetVerifiedRole),
		unaryMethod(MethodClearVerifiedRole, AdminServer.ClearVerifiedRole),
		unaryMethod(MethodAddOverride, AdminServer.AddOverride),
		unaryMethod(MethodRemoveOverride, AdminServer.RemoveOverride),
		unaryMethod(MethodAddIgnore, AdminServer.AddIgnore),
		unaryMethod(MethodRemoveIgnore, AdminServer.RemoveIgnore),
		unaryMethod(MethodRevoke, AdminServer.Revoke),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rostersync/admin/v1/admin.proto",
}

// RegisterAdminServer registers srv on s.
func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&AdminServiceDesc, srv)
}
