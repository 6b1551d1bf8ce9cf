package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/onboarding/internal/common"
	pb "github.com/dmitrijs2005/onboarding/internal/proto"
	"github.com/dmitrijs2005/onboarding/internal/server/accounts"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC status codes. Only errors the
// caller can act on keep their message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "invalid email or password")
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorPermissionDenied):
		return status.Error(codes.PermissionDenied, "permission denied")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrTooManyLoginAttempts):
		return status.Error(codes.ResourceExhausted, common.ErrTooManyLoginAttempts.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "account already exists")
	case errors.Is(err, common.ErrorCorruptRecord):
		s.logger.Error(ctx, "stored record is corrupt", "error", err)
		return status.Error(codes.DataLoss, common.ErrorCorruptRecord.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func sessionMessage(sess *accounts.Session) *structpb.Struct {
	return pb.Session{UID: sess.UID, AccessToken: sess.AccessToken, RefreshToken: sess.RefreshToken}.Message()
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return pb.StatusMessage("OK"), nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c := pb.CredentialsFrom(req)
	if err := c.Validate(); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	sess, err := s.accounts.SignIn(ctx, c.Email, c.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return sessionMessage(sess), nil
}

func (s *GRPCServer) CreateAccount(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	c := pb.CredentialsFrom(req)
	if err := c.Validate(); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	sess, err := s.accounts.CreateAccount(ctx, c.Email, c.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Registered", "uid", sess.UID)
	return sessionMessage(sess), nil
}

func (s *GRPCServer) ExchangeFederatedToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := pb.FederatedTokenFrom(req)
	if err := f.Validate(); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	sess, err := s.accounts.ExchangeFederatedToken(ctx, f.Provider, f.IDToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return sessionMessage(sess), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sess, err := s.accounts.RefreshToken(ctx, pb.RefreshTokenFrom(req))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return sessionMessage(sess), nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if err := s.accounts.SignOut(ctx, pb.RefreshTokenFrom(req)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) SendPasswordReset(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := s.accounts.SendPasswordReset(ctx, req.GetValue()); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ConfirmPasswordReset(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	p := pb.PasswordResetFrom(req)
	if err := p.Validate(); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.accounts.ConfirmPasswordReset(ctx, p.Token, p.Password); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) caller(ctx context.Context) (string, error) {
	uid, ok := userIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing token")
	}
	return uid, nil
}

func (s *GRPCServer) WriteProfile(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	w := pb.ProfileWriteFrom(req)
	if err := w.Validate(); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.profiles.Write(ctx, caller, w.UID, w.Fields); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) UpdateProfileField(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	u := pb.FieldUpdateFrom(req)
	if err := u.Validate(); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if err := s.profiles.UpdateField(ctx, caller, u.UID, u.Key, u.Value); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ReadProfile(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.profiles.Read(ctx, caller, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	msg, err := pb.ProfileMessage(fields)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return msg, nil
}
