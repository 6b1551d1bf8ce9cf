package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/onboarding/internal/client/session"
	"github.com/dmitrijs2005/onboarding/internal/common"
	pb "github.com/dmitrijs2005/onboarding/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const pingOK = "OK"

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AccountServiceClient
	tokens      *session.Holder
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor sends the current access token and, when the server
// reports it expired, trades the refresh token for a new pair and retries once.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	current, _ := s.tokens.Current()

	err := invoker(withAccessToken(ctx, current.AccessToken), method, req, reply, cc, opts...)
	if err == nil || method == pb.AccountService_RefreshToken_FullMethodName {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if current.RefreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, pb.RefreshTokenMessage(current.RefreshToken))
	if rerr != nil {
		return err
	}

	refreshed := pb.SessionFrom(resp)
	if refreshed.Validate() != nil {
		return err
	}
	s.tokens.UpdateTokens(refreshed.AccessToken, refreshed.RefreshToken)

	return invoker(withAccessToken(ctx, refreshed.AccessToken), method, req, reply, cc, opts...)
}

// NewGRPCClient connects to endpointURL. Tokens are read from and refreshed
// into holder. Extra dial options are appended, which tests use to dial an
// in-memory listener.
func NewGRPCClient(endpointURL string, holder *session.Holder, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, tokens: holder}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAccountServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if pb.StatusFrom(resp) != pingOK {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (pb.Session, error) {
	resp, err := s.client.SignIn(ctx, pb.Credentials{Email: email, Password: password}.Message())
	if err != nil {
		return pb.Session{}, s.mapError(err)
	}
	return sessionFrom(resp)
}

func (s *GRPCClient) CreateAccount(ctx context.Context, email, password string) (pb.Session, error) {
	resp, err := s.client.CreateAccount(ctx, pb.Credentials{Email: email, Password: password}.Message())
	if err != nil {
		return pb.Session{}, s.mapError(err)
	}
	return sessionFrom(resp)
}

func (s *GRPCClient) ExchangeFederatedToken(ctx context.Context, provider, idToken string) (pb.Session, error) {
	resp, err := s.client.ExchangeFederatedToken(ctx, pb.FederatedToken{Provider: provider, IDToken: idToken}.Message())
	if err != nil {
		return pb.Session{}, s.mapError(err)
	}
	return sessionFrom(resp)
}

func (s *GRPCClient) SignOut(ctx context.Context, refreshToken string) error {
	if _, err := s.client.SignOut(ctx, pb.RefreshTokenMessage(refreshToken)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) SendPasswordReset(ctx context.Context, email string) error {
	if _, err := s.client.SendPasswordReset(ctx, wrapperspb.String(email)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	if _, err := s.client.ConfirmPasswordReset(ctx, pb.PasswordReset{Token: token, Password: password}.Message()); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) WriteProfile(ctx context.Context, uid string, fields map[string]any) error {
	req, err := pb.ProfileWrite{UID: uid, Fields: fields}.Message()
	if err != nil {
		return err
	}
	if _, err := s.client.WriteProfile(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) UpdateProfileField(ctx context.Context, uid, key string, value any) error {
	req, err := pb.FieldUpdate{UID: uid, Key: key, Value: value}.Message()
	if err != nil {
		return err
	}
	if _, err := s.client.UpdateProfileField(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ReadProfile(ctx context.Context, uid string) (map[string]any, error) {
	resp, err := s.client.ReadProfile(ctx, wrapperspb.String(uid))
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.AsMap(), nil
}

func sessionFrom(resp *structpb.Struct) (pb.Session, error) {
	sess := pb.SessionFrom(resp)
	if err := sess.Validate(); err != nil {
		return pb.Session{}, fmt.Errorf("malformed session: %w", err)
	}
	return sess, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		sentinel = ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		sentinel = common.ErrorNotFound
	case codes.AlreadyExists:
		sentinel = common.ErrorAlreadyExists
	case codes.InvalidArgument:
		sentinel = common.ErrorValidation
	case codes.ResourceExhausted:
		sentinel = common.ErrTooManyLoginAttempts
	case codes.DataLoss:
		sentinel = common.ErrorCorruptRecord
	default:
		return err
	}

	if st.Message() == "" || st.Message() == sentinel.Error() {
		return sentinel
	}
	return &remoteError{sentinel: sentinel, msg: st.Message()}
}

// remoteError keeps the server's message as the error text while still
// matching the sentinel with errors.Is.
type remoteError struct {
	sentinel error
	msg      string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Is(target error) bool { return errors.Is(e.sentinel, target) }
