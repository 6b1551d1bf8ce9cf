package client

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/onboarding/internal/client/federated"
	"github.com/dmitrijs2005/onboarding/internal/client/session"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	pb "github.com/dmitrijs2005/onboarding/internal/proto"
)

// AuthAPI is the part of the server API the identity provider uses.
type AuthAPI interface {
	SignIn(ctx context.Context, email, password string) (pb.Session, error)
	CreateAccount(ctx context.Context, email, password string) (pb.Session, error)
	ExchangeFederatedToken(ctx context.Context, provider, idToken string) (pb.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// Handshake runs a federated sign-in with one provider.
type Handshake interface {
	Name() string
	SignIn(ctx context.Context, p federated.Presenter) (*federated.User, error)
}

var errNoFederatedProvider = errors.New("federated sign-in is not available")

// Provider is the client-side identity provider. Every successful sign-in
// replaces the session in the holder; SignOut always clears it.
type Provider struct {
	api       AuthAPI
	handshake Handshake
	holder    *session.Holder
	logger    logging.Logger
}

// NewProvider wires the identity provider. handshake may be nil when no
// federated provider is configured.
func NewProvider(api AuthAPI, handshake Handshake, holder *session.Holder, logger logging.Logger) *Provider {
	return &Provider{
		api:       api,
		handshake: handshake,
		holder:    holder,
		logger:    logger.With("module", "identity_provider"),
	}
}

func (p *Provider) CurrentSessionUID() (string, bool) {
	return p.holder.UID()
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (string, error) {
	return p.start(p.api.SignIn(ctx, email, password))
}

func (p *Provider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	return p.start(p.api.CreateAccount(ctx, email, password))
}

func (p *Provider) FederatedSignIn(ctx context.Context, presenter federated.Presenter) (*federated.User, error) {
	if p.handshake == nil {
		return nil, errNoFederatedProvider
	}
	return p.handshake.SignIn(ctx, presenter)
}

func (p *Provider) ExchangeFederatedToken(ctx context.Context, token string) (string, error) {
	if p.handshake == nil {
		return "", errNoFederatedProvider
	}
	return p.start(p.api.ExchangeFederatedToken(ctx, p.handshake.Name(), token))
}

// SignOut revokes the refresh token on the server. The local session is
// dropped even if the server call fails.
func (p *Provider) SignOut(ctx context.Context) error {
	current, ok := p.holder.Current()
	p.holder.Clear()
	if !ok {
		return nil
	}
	return p.api.SignOut(ctx, current.RefreshToken)
}

func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	return p.api.SendPasswordReset(ctx, email)
}

func (p *Provider) start(s pb.Session, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if s.UID == "" {
		return "", errors.New("server returned a session without uid")
	}
	p.holder.Set(session.Session{UID: s.UID, AccessToken: s.AccessToken, RefreshToken: s.RefreshToken})
	p.logger.Debug(context.Background(), "session started", "uid", s.UID)
	return s.UID, nil
}
