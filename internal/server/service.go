package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hwscore.v1.InventoryService"

// InventoryServiceServer is the server API for the inventory service.
// Payloads are well-known types so no generated code is needed.
type InventoryServiceServer interface {
	GetSnapshot(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetDomain(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetUsage(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	WatchUsage(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

// RegisterInventoryServiceServer registers srv on s.
func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetSnapshot", Handler: getSnapshotHandler},
		{MethodName: "GetDomain", Handler: getDomainHandler},
		{MethodName: "GetUsage", Handler: getUsageHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchUsage", Handler: watchUsageHandler, ServerStreams: true},
	},
	Metadata: "hwscore/v1/inventory.proto",
}

// FullMethod returns the gRPC method path for name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// WatchUsageStreamDesc describes the WatchUsage server stream for clients.
func WatchUsageStreamDesc() *grpc.StreamDesc {
	return &serviceDesc.Streams[0]
}

func getSnapshotHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod("GetSnapshot")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).GetSnapshot(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getDomainHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).GetDomain(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod("GetDomain")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).GetDomain(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getUsageHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServiceServer).GetUsage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod("GetUsage")}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServiceServer).GetUsage(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func watchUsageHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(InventoryServiceServer).WatchUsage(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}
