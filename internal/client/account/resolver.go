package account

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/onboarding/internal/client/federated"
	"github.com/dmitrijs2005/onboarding/internal/client/models"
	"github.com/dmitrijs2005/onboarding/internal/logging"
)

// IdentityProvider authenticates users and owns the current session.
// Only the presence of an error is inspected, never its kind.
type IdentityProvider interface {
	SessionSource

	SignIn(ctx context.Context, email, password string) (uid string, err error)
	CreateAccount(ctx context.Context, email, password string) (uid string, err error)
	// FederatedSignIn runs the third-party handshake and returns what the provider asserted.
	FederatedSignIn(ctx context.Context, p federated.Presenter) (*federated.User, error)
	// ExchangeFederatedToken turns a federated token into a session.
	ExchangeFederatedToken(ctx context.Context, token string) (uid string, err error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
}

// Identity is a resolved sign-in.
type Identity struct {
	UID   string
	Email string
}

// Resolver turns user actions into resolved identities.
//
// Calls that change the session (login, register, federated sign-in,
// logout) are serialized, so a second login waits until the first one has
// finished reconciling.
type Resolver struct {
	mu         sync.Mutex
	provider   IdentityProvider
	reconciler *Reconciler
	logger     logging.Logger
}

func NewResolver(provider IdentityProvider, reconciler *Reconciler, logger logging.Logger) *Resolver {
	return &Resolver{
		provider:   provider,
		reconciler: reconciler,
		logger:     logger.With("module", "account_resolver"),
	}
}

// Login signs in with a password. The profile is not read here.
func (r *Resolver) Login(ctx context.Context, email, password string) (*Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		r.logger.Info(ctx, "login failed", "error", err)
		return nil, serverError(err)
	}

	r.logger.Info(ctx, "logged in", "uid", uid)
	return &Identity{UID: uid, Email: email}, nil
}

// Register creates the identity and its profile in one step.
func (r *Resolver) Register(ctx context.Context, email, password, fullname string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	uid, err := r.provider.CreateAccount(ctx, email, password)
	if err != nil {
		r.logger.Info(ctx, "registration failed", "error", err)
		return nil, serverError(err)
	}

	return r.reconciler.CreateProfile(ctx, uid, email, fullname)
}

// SignInWithFederatedProvider runs the federated handshake, exchanges its
// token for a session and reconciles the profile.
func (r *Resolver) SignInWithFederatedProvider(ctx context.Context, p federated.Presenter) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fu, err := r.provider.FederatedSignIn(ctx, p)
	if err != nil {
		return nil, serverError(err)
	}
	if fu == nil || fu.Token == "" || fu.Email == "" || fu.DisplayName == "" {
		return nil, serverErrorf(msgMissingProfileField)
	}

	uid, err := r.provider.ExchangeFederatedToken(ctx, fu.Token)
	if err != nil {
		r.logger.Info(ctx, "federated token rejected", "error", err)
		return nil, serverError(err)
	}

	return r.reconciler.ReconcileFederatedIdentity(ctx, uid, fu.Email, fu.DisplayName)
}

// Logout ends the session. A provider failure is logged and otherwise ignored.
func (r *Resolver) Logout(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.provider.SignOut(ctx); err != nil {
		r.logger.Warn(ctx, "sign out failed", "error", err)
		return
	}
	r.logger.Info(ctx, "logged out")
}

// ResetPassword asks the provider to send a reset link. The address is not checked locally.
func (r *Resolver) ResetPassword(ctx context.Context, email string) error {
	if err := r.provider.SendPasswordReset(ctx, email); err != nil {
		return serverError(err)
	}
	return nil
}

// Reconciler exposes the profile side for callers that already hold a session.
func (r *Resolver) Reconciler() *Reconciler {
	return r.reconciler
}
