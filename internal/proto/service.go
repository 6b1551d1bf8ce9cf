// Package proto declares the onboarding.v1.AccountService gRPC contract.
//
// The service is described with a hand-written grpc.ServiceDesc instead of
// protoc output; every message is a protobuf well-known type (Struct,
// StringValue, Empty), so the default proto codec carries them unchanged.
// Typed views over the Struct payloads live in messages.go.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "onboarding.v1.AccountService"

// Full method names, as seen by interceptors.
const (
	AccountService_Ping_FullMethodName                   = "/" + ServiceName + "/Ping"
	AccountService_SignIn_FullMethodName                 = "/" + ServiceName + "/SignIn"
	AccountService_CreateAccount_FullMethodName          = "/" + ServiceName + "/CreateAccount"
	AccountService_ExchangeFederatedToken_FullMethodName = "/" + ServiceName + "/ExchangeFederatedToken"
	AccountService_RefreshToken_FullMethodName           = "/" + ServiceName + "/RefreshToken"
	AccountService_SignOut_FullMethodName                = "/" + ServiceName + "/SignOut"
	AccountService_SendPasswordReset_FullMethodName      = "/" + ServiceName + "/SendPasswordReset"
	AccountService_ConfirmPasswordReset_FullMethodName   = "/" + ServiceName + "/ConfirmPasswordReset"
	AccountService_WriteProfile_FullMethodName           = "/" + ServiceName + "/WriteProfile"
	AccountService_UpdateProfileField_FullMethodName     = "/" + ServiceName + "/UpdateProfileField"
	AccountService_ReadProfile_FullMethodName            = "/" + ServiceName + "/ReadProfile"
)

// AccountServiceServer is the server API for AccountService.
type AccountServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SignIn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExchangeFederatedToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SignOut(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	SendPasswordReset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	ConfirmPasswordReset(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	WriteProfile(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	UpdateProfileField(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	ReadProfile(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// UnimplementedAccountServiceServer can be embedded to have forward compatible implementations.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedAccountServiceServer) SignIn(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SignIn not implemented")
}
func (UnimplementedAccountServiceServer) CreateAccount(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAccount not implemented")
}
func (UnimplementedAccountServiceServer) ExchangeFederatedToken(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ExchangeFederatedToken not implemented")
}
func (UnimplementedAccountServiceServer) RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedAccountServiceServer) SignOut(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedAccountServiceServer) SendPasswordReset(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SendPasswordReset not implemented")
}
func (UnimplementedAccountServiceServer) ConfirmPasswordReset(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmPasswordReset not implemented")
}
func (UnimplementedAccountServiceServer) WriteProfile(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method WriteProfile not implemented")
}
func (UnimplementedAccountServiceServer) UpdateProfileField(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProfileField not implemented")
}
func (UnimplementedAccountServiceServer) ReadProfile(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadProfile not implemented")
}

// unary adapts a typed server method into a grpc.MethodDesc, running the
// server's interceptor chain the same way generated handlers do.
func unary[Req any, Resp any](name string, call func(AccountServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AccountServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AccountServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// AccountService_ServiceDesc is the grpc.ServiceDesc for AccountService.
var AccountService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", AccountServiceServer.Ping),
		unary("SignIn", AccountServiceServer.SignIn),
		unary("CreateAccount", AccountServiceServer.CreateAccount),
		unary("ExchangeFederatedToken", AccountServiceServer.ExchangeFederatedToken),
		unary("RefreshToken", AccountServiceServer.RefreshToken),
		unary("SignOut", AccountServiceServer.SignOut),
		unary("SendPasswordReset", AccountServiceServer.SendPasswordReset),
		unary("ConfirmPasswordReset", AccountServiceServer.ConfirmPasswordReset),
		unary("WriteProfile", AccountServiceServer.WriteProfile),
		unary("UpdateProfileField", AccountServiceServer.UpdateProfileField),
		unary("ReadProfile", AccountServiceServer.ReadProfile),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "onboarding/v1/account.proto",
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountService_ServiceDesc, srv)
}

// AccountServiceClient is the client API for AccountService.
type AccountServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ExchangeFederatedToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SignOut(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	SendPasswordReset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ConfirmPasswordReset(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	WriteProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	UpdateProfileField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ReadProfile(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AccountService_Ping_FullMethodName, in, opts)
}

func (c *accountServiceClient) SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AccountService_SignIn_FullMethodName, in, opts)
}

func (c *accountServiceClient) CreateAccount(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AccountService_CreateAccount_FullMethodName, in, opts)
}

func (c *accountServiceClient) ExchangeFederatedToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AccountService_ExchangeFederatedToken_FullMethodName, in, opts)
}

func (c *accountServiceClient) RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AccountService_RefreshToken_FullMethodName, in, opts)
}

func (c *accountServiceClient) SignOut(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AccountService_SignOut_FullMethodName, in, opts)
}

func (c *accountServiceClient) SendPasswordReset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AccountService_SendPasswordReset_FullMethodName, in, opts)
}

func (c *accountServiceClient) ConfirmPasswordReset(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AccountService_ConfirmPasswordReset_FullMethodName, in, opts)
}

func (c *accountServiceClient) WriteProfile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AccountService_WriteProfile_FullMethodName, in, opts)
}

func (c *accountServiceClient) UpdateProfileField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, AccountService_UpdateProfileField_FullMethodName, in, opts)
}

func (c *accountServiceClient) ReadProfile(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, AccountService_ReadProfile_FullMethodName, in, opts)
}
