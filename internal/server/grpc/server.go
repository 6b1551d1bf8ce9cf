// Package grpc exposes the account and profile services over the
// onboarding.v1.AccountService gRPC API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/profile"
	pb "github.com/dmitrijs2005/onboarding/internal/proto"
	"github.com/dmitrijs2005/onboarding/internal/server/accounts"
	"google.golang.org/grpc"
)

type AccountService interface {
	SignIn(ctx context.Context, email, password string) (*accounts.Session, error)
	CreateAccount(ctx context.Context, email, password string) (*accounts.Session, error)
	ExchangeFederatedToken(ctx context.Context, provider, idToken string) (*accounts.Session, error)
	RefreshToken(ctx context.Context, refreshToken string) (*accounts.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	SendPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, password string) error
}

type ProfileService interface {
	Write(ctx context.Context, caller, uid string, fields profile.Fields) error
	UpdateField(ctx context.Context, caller, uid, key string, value any) error
	Read(ctx context.Context, caller, uid string) (profile.Fields, error)
}

type GRPCServer struct {
	pb.UnimplementedAccountServiceServer
	address   string
	accounts  AccountService
	profiles  ProfileService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, as AccountService, ps ProfileService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		accounts:  as,
		profiles:  ps,
		jwtSecret: []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis and stops gracefully when ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterAccountServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
