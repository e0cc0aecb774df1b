package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// FingerprintServer is the server API for the Fingerprint gRPC service.
//
// We intentionally use protobuf well-known types (wrappers and Struct) so this
// package does not require a protoc/codegen toolchain.
//
// Requests:
//   - Tracks takes the raw CPL document bytes.
//   - Compute and Archive take a Struct with fields "cpl" (standard base64 of
//     the CPL document), "track_id" (UUID string), and for Compute an optional
//     "width" (number, hex characters, default 10).
//   - Fetch takes a canonical-encoding CID string.
type FingerprintServer interface {
	Tracks(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	Compute(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Archive(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Fetch(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedFingerprintServer can be embedded to have forward compatible implementations.
type UnimplementedFingerprintServer struct{}

func (UnimplementedFingerprintServer) Tracks(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Tracks not implemented")
}
func (UnimplementedFingerprintServer) Compute(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Compute not implemented")
}
func (UnimplementedFingerprintServer) Archive(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Archive not implemented")
}
func (UnimplementedFingerprintServer) Fetch(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Fetch not implemented")
}

// RegisterFingerprintServer registers the Fingerprint service on a gRPC server.
func RegisterFingerprintServer(s grpc.ServiceRegistrar, srv FingerprintServer) {
	s.RegisterService(&Fingerprint_ServiceDesc, srv)
}

// FingerprintClient is the client API for the Fingerprint gRPC service.
type FingerprintClient interface {
	Tracks(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Compute(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Archive(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type fingerprintClient struct{ cc grpc.ClientConnInterface }

func NewFingerprintClient(cc grpc.ClientConnInterface) FingerprintClient {
	return &fingerprintClient{cc: cc}
}

func (c *fingerprintClient) Tracks(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/imfvtfp.rpc.v1.Fingerprint/Tracks", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fingerprintClient) Compute(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/imfvtfp.rpc.v1.Fingerprint/Compute", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fingerprintClient) Archive(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/imfvtfp.rpc.v1.Fingerprint/Archive", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fingerprintClient) Fetch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/imfvtfp.rpc.v1.Fingerprint/Fetch", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Fingerprint_Tracks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FingerprintServer).Tracks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/imfvtfp.rpc.v1.Fingerprint/Tracks"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FingerprintServer).Tracks(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Fingerprint_Compute_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FingerprintServer).Compute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/imfvtfp.rpc.v1.Fingerprint/Compute"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FingerprintServer).Compute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Fingerprint_Archive_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FingerprintServer).Archive(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/imfvtfp.rpc.v1.Fingerprint/Archive"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FingerprintServer).Archive(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Fingerprint_Fetch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FingerprintServer).Fetch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/imfvtfp.rpc.v1.Fingerprint/Fetch"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FingerprintServer).Fetch(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Fingerprint_ServiceDesc is the grpc.ServiceDesc for the Fingerprint service.
var Fingerprint_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "imfvtfp.rpc.v1.Fingerprint",
	HandlerType: (*FingerprintServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Tracks", Handler: _Fingerprint_Tracks_Handler},
		{MethodName: "Compute", Handler: _Fingerprint_Compute_Handler},
		{MethodName: "Archive", Handler: _Fingerprint_Archive_Handler},
		{MethodName: "Fetch", Handler: _Fingerprint_Fetch_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vtfp.proto",
}
