package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/onboarding/internal/client/session"
	"github.com/dmitrijs2005/onboarding/internal/common"
	pb "github.com/dmitrijs2005/onboarding/internal/proto"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	pb.AccountServiceClient

	lastRefreshTokenReq *structpb.Struct
	lastSignInReq       *structpb.Struct
	lastExchangeReq     *structpb.Struct
	lastUpdateReq       *structpb.Struct
	lastReadReq         *wrapperspb.StringValue
	lastResetReq        *wrapperspb.StringValue

	refreshTokenResp *structpb.Struct
	refreshTokenErr  error

	pingResp *structpb.Struct
	pingErr  error

	signInResp *structpb.Struct
	signInErr  error

	exchangeResp *structpb.Struct

	readResp *structpb.Struct
	readErr  error

	updateErr error
}

func (f *fakePB) RefreshToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastRefreshTokenReq = in
	return f.refreshTokenResp, f.refreshTokenErr
}
func (f *fakePB) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return f.pingResp, f.pingErr
}
func (f *fakePB) SignIn(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastSignInReq = in
	return f.signInResp, f.signInErr
}
func (f *fakePB) ExchangeFederatedToken(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastExchangeReq = in
	return f.exchangeResp, nil
}
func (f *fakePB) UpdateProfileField(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	f.lastUpdateReq = in
	return &emptypb.Empty{}, f.updateErr
}
func (f *fakePB) ReadProfile(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastReadReq = in
	return f.readResp, f.readErr
}
func (f *fakePB) SendPasswordReset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	f.lastResetReq = in
	return &emptypb.Empty{}, nil
}

func holderWith(access, refresh string) *session.Holder {
	h := session.NewHolder()
	h.Set(session.Session{UID: "u1", AccessToken: access, RefreshToken: refresh})
	return h
}

/*************
 * accessTokenInterceptor tests
 *************/

func TestInterceptor_RefreshesTokenOnExpiredAndRetries(t *testing.T) {
	f := &fakePB{
		refreshTokenResp: pb.Session{UID: "u1", AccessToken: "A2", RefreshToken: "R2"}.Message(),
	}
	h := holderWith("A1", "R1")
	c := &GRPCClient{client: f, tokens: h}

	callCount := 0
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		callCount++
		md, _ := metadata.FromOutgoingContext(ctx)
		toks := md.Get(common.AccessTokenHeaderName)
		require.Len(t, toks, 1)

		if callCount == 1 {
			require.Equal(t, "A1", toks[0])
			return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		require.Equal(t, "A2", toks[0])
		return nil
	}

	err := c.accessTokenInterceptor(context.Background(), pb.AccountService_ReadProfile_FullMethodName, nil, nil, nil, invoker)
	require.NoError(t, err)
	require.Equal(t, 2, callCount)

	cur, ok := h.Current()
	require.True(t, ok)
	require.Equal(t, "A2", cur.AccessToken)
	require.Equal(t, "R2", cur.RefreshToken)
	require.Equal(t, "R1", pb.RefreshTokenFrom(f.lastRefreshTokenReq))
}

func TestInterceptor_MalformedRefreshKeepsTokens(t *testing.T) {
	f := &fakePB{refreshTokenResp: &structpb.Struct{}}
	h := holderWith("A1", "R1")
	c := &GRPCClient{client: f, tokens: h}

	callCount := 0
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		callCount++
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), pb.AccountService_ReadProfile_FullMethodName, nil, nil, nil, invoker)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.Equal(t, 1, callCount)

	cur, ok := h.Current()
	require.True(t, ok)
	require.Equal(t, "A1", cur.AccessToken)
	require.Equal(t, "R1", cur.RefreshToken)
}

func TestInterceptor_NoRefreshIfNoRefreshToken(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f, tokens: holderWith("A1", "")}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
	require.Nil(t, f.lastRefreshTokenReq)
}

func TestInterceptor_FailedRefreshReturnsOriginalError(t *testing.T) {
	f := &fakePB{refreshTokenErr: status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())}
	c := &GRPCClient{client: f, tokens: holderWith("A1", "R1")}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	st, _ := status.FromError(err)
	require.Equal(t, common.ErrTokenExpired.Error(), st.Message())
}

func TestInterceptor_DoesNotRefreshTheRefreshCall(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f, tokens: holderWith("A1", "R1")}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}

	err := c.accessTokenInterceptor(context.Background(), pb.AccountService_RefreshToken_FullMethodName, nil, nil, nil, invoker)
	require.Error(t, err)
	require.Nil(t, f.lastRefreshTokenReq)
}

func TestInterceptor_NoSessionSendsNoToken(t *testing.T) {
	c := &GRPCClient{tokens: session.NewHolder()}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.AccessTokenHeaderName))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_IgnoresOtherErrors(t *testing.T) {
	c := &GRPCClient{tokens: holderWith("X", "R")}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Internal, "boom")
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
}

func TestInterceptor_UnauthenticatedButDifferentMessage_NoRefresh(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f, tokens: holderWith("X", "R")}
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return status.Error(codes.Unauthenticated, "some other reason")
	}
	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
	require.Nil(t, f.lastRefreshTokenReq)
}

/*************
 * mapError tests
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.ErrorIs(t, c.mapError(status.Error(codes.Unauthenticated, "x")), ErrUnauthorized)
	require.ErrorIs(t, c.mapError(status.Error(codes.PermissionDenied, "x")), ErrUnauthorized)
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.Unavailable, "x")))
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.DeadlineExceeded, "x")))
	require.ErrorIs(t, c.mapError(status.Error(codes.NotFound, "not found")), common.ErrorNotFound)
	require.ErrorIs(t, c.mapError(status.Error(codes.AlreadyExists, "x")), common.ErrorAlreadyExists)
	require.ErrorIs(t, c.mapError(status.Error(codes.InvalidArgument, "x")), common.ErrorValidation)
	require.ErrorIs(t, c.mapError(status.Error(codes.ResourceExhausted, "x")), common.ErrTooManyLoginAttempts)
	require.ErrorIs(t, c.mapError(status.Error(codes.DataLoss, "corrupt record")), common.ErrorCorruptRecord)
	require.Equal(t, codes.Internal, status.Code(c.mapError(status.Error(codes.Internal, "x"))))

	e := errors.New("plain")
	require.Equal(t, e, c.mapError(e))
}

func TestMapError_UnmappedCodeKeepsSingleRPCPrefix(t *testing.T) {
	c := &GRPCClient{}

	err := c.mapError(status.Error(codes.Internal, "internal error"))
	require.EqualError(t, err, "rpc error: code = Internal desc = internal error")
	require.NotErrorIs(t, err, common.ErrorCorruptRecord)
}

func TestMapError_KeepsServerMessage(t *testing.T) {
	c := &GRPCClient{}

	err := c.mapError(status.Error(codes.Unauthenticated, "invalid email or password"))
	require.EqualError(t, err, "invalid email or password")
	require.ErrorIs(t, err, ErrUnauthorized)
}

/*************
 * RPC wrappers
 *************/

func TestPing_OK(t *testing.T) {
	f := &fakePB{pingResp: pb.StatusMessage("OK")}
	c := &GRPCClient{client: f}
	require.NoError(t, c.Ping(context.Background()))
}

func TestPing_NotOK_ReturnsUnavailable(t *testing.T) {
	f := &fakePB{pingResp: pb.StatusMessage("NOT_OK")}
	c := &GRPCClient{client: f}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing_MapsRPCError(t *testing.T) {
	f := &fakePB{pingErr: status.Error(codes.Unavailable, "down")}
	c := &GRPCClient{client: f}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestSignIn_ReturnsSession(t *testing.T) {
	f := &fakePB{signInResp: pb.Session{UID: "u1", AccessToken: "A", RefreshToken: "R"}.Message()}
	c := &GRPCClient{client: f}

	s, err := c.SignIn(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.Equal(t, pb.Session{UID: "u1", AccessToken: "A", RefreshToken: "R"}, s)
	require.Equal(t, pb.Credentials{Email: "a@b.com", Password: "pw"}, pb.CredentialsFrom(f.lastSignInReq))
}

func TestSignIn_MapsError(t *testing.T) {
	f := &fakePB{signInErr: status.Error(codes.Unauthenticated, "invalid email or password")}
	c := &GRPCClient{client: f}

	_, err := c.SignIn(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestExchangeFederatedToken_SendsProvider(t *testing.T) {
	f := &fakePB{exchangeResp: pb.Session{UID: "u9", AccessToken: "A"}.Message()}
	c := &GRPCClient{client: f}

	s, err := c.ExchangeFederatedToken(context.Background(), "google", "idt")
	require.NoError(t, err)
	require.Equal(t, "u9", s.UID)
	require.Equal(t, pb.FederatedToken{Provider: "google", IDToken: "idt"}, pb.FederatedTokenFrom(f.lastExchangeReq))
}

func TestExchangeFederatedToken_RejectsSessionWithoutUID(t *testing.T) {
	f := &fakePB{exchangeResp: pb.Session{AccessToken: "A", RefreshToken: "R"}.Message()}
	c := &GRPCClient{client: f}

	s, err := c.ExchangeFederatedToken(context.Background(), "google", "idt")
	require.ErrorIs(t, err, common.ErrorValidation)
	require.ErrorContains(t, err, "uid is required")
	require.Equal(t, pb.Session{}, s)
}

func TestSignIn_RejectsEmptyResponse(t *testing.T) {
	f := &fakePB{signInResp: &structpb.Struct{}}
	c := &GRPCClient{client: f}

	_, err := c.SignIn(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestUpdateProfileField_EncodesBool(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f}

	require.NoError(t, c.UpdateProfileField(context.Background(), "u1", common.FieldHasSeenOnboarding, true))
	got := pb.FieldUpdateFrom(f.lastUpdateReq)
	require.Equal(t, pb.FieldUpdate{UID: "u1", Key: common.FieldHasSeenOnboarding, Value: true}, got)
}

func TestReadProfile(t *testing.T) {
	resp, err := structpb.NewStruct(map[string]any{"email": "a@b.com", "hasSeenOnboarding": false})
	require.NoError(t, err)
	f := &fakePB{readResp: resp}
	c := &GRPCClient{client: f}

	fields, err := c.ReadProfile(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"email": "a@b.com", "hasSeenOnboarding": false}, fields)
	require.Equal(t, "u1", f.lastReadReq.GetValue())
}

func TestReadProfile_NotFound(t *testing.T) {
	f := &fakePB{readErr: status.Error(codes.NotFound, common.ErrorNotFound.Error())}
	c := &GRPCClient{client: f}

	_, err := c.ReadProfile(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSendPasswordReset(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f}

	require.NoError(t, c.SendPasswordReset(context.Background(), "a@b.com"))
	require.Equal(t, "a@b.com", f.lastResetReq.GetValue())
}
