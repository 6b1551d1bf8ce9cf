// Package accounts implements the server side of the identity provider:
// password accounts, federated sign-in, token issuing and rotation, and
// password reset.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/dbx"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/server/auth"
	"github.com/dmitrijs2005/onboarding/internal/server/config"
	"github.com/dmitrijs2005/onboarding/internal/server/events"
	"github.com/dmitrijs2005/onboarding/internal/server/federation"
	"github.com/dmitrijs2005/onboarding/internal/server/mailer"
	"github.com/dmitrijs2005/onboarding/internal/server/models"
	"github.com/dmitrijs2005/onboarding/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/onboarding/internal/server/resettokens"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Session is what every successful sign-in returns.
type Session struct {
	UID          string
	AccessToken  string
	RefreshToken string
}

type credentials struct {
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6,max=72"`
}

type resetRequest struct {
	Email string `validate:"required,email"`
}

// Deps groups the collaborators of Service.
type Deps struct {
	DB          *sql.DB
	Repos       repomanager.RepositoryManager
	Verifiers   *federation.Registry
	Mailer      mailer.Mailer
	ResetTokens resettokens.Store
	Events      events.Publisher
	Logger      logging.Logger
}

type Service struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	fed      *federation.Registry
	mail     mailer.Mailer
	resets   resettokens.Store
	events   events.Publisher
	logger   logging.Logger
	validate *validator.Validate
	limiter  *attemptLimiter

	jwtSecret       []byte
	accessValidity  time.Duration
	refreshValidity time.Duration
	resetURL        string
	resetValidity   time.Duration
	bcryptCost      int
}

func NewService(d Deps, cfg *config.Config) *Service {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Verifiers == nil {
		d.Verifiers = federation.NewRegistry()
	}
	return &Service{
		db:              d.DB,
		repos:           d.Repos,
		fed:             d.Verifiers,
		mail:            d.Mailer,
		resets:          d.ResetTokens,
		events:          d.Events,
		logger:          d.Logger.With("module", "accounts"),
		validate:        validator.New(),
		limiter:         newAttemptLimiter(cfg.MaxLoginAttempts, cfg.LoginAttemptWindow),
		jwtSecret:       []byte(cfg.SecretKey),
		accessValidity:  cfg.AccessTokenValidityDuration,
		refreshValidity: cfg.RefreshTokenValidityDuration,
		resetURL:        cfg.PasswordResetURL,
		resetValidity:   cfg.PasswordResetTTL,
		bcryptCost:      bcrypt.DefaultCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed %q", common.ErrorValidation, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", common.ErrorValidation, err)
}

// SignIn checks an email/password pair. Unknown emails, federated-only
// accounts and wrong passwords all yield common.ErrorUnauthorized.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if s.limiter.blocked(email) {
		s.logger.Warn(ctx, "sign-in throttled", "email", email)
		return nil, common.ErrTooManyLoginAttempts
	}

	acc, err := s.repos.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.limiter.fail(email)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !acc.HasPassword() || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)) != nil {
		s.limiter.fail(email)
		return nil, common.ErrorUnauthorized
	}
	s.limiter.reset(email)

	sess, err := s.issueSession(ctx, s.db, acc.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.AccountSignedIn, acc.ID, map[string]any{"method": "password"}))
	return sess, nil
}

// CreateAccount registers a password account and signs it in.
func (s *Service) CreateAccount(ctx context.Context, email, password string) (*Session, error) {
	in := credentials{Email: normalizeEmail(email), Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, s.validationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	acc := &models.Account{ID: uuid.NewString(), Email: in.Email, PasswordHash: hash}

	var sess *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Accounts(tx).Create(ctx, acc); err != nil {
			return err
		}
		var err error
		sess, err = s.issueSession(ctx, tx, acc.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.logger.Error(ctx, "create account failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.publish(ctx, events.New(events.AccountCreated, acc.ID, map[string]any{"email": acc.Email, "method": "password"}))
	return sess, nil
}

// ExchangeFederatedToken verifies a provider ID token and returns a session
// for the account linked to its subject. An unseen subject is linked to the
// account with the same email, or to a new password-less account, but only
// when the provider has verified that email.
func (s *Service) ExchangeFederatedToken(ctx context.Context, provider, idToken string) (*Session, error) {
	verifier, err := s.fed.Get(provider)
	if err != nil {
		return nil, err
	}

	claims, err := verifier.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn(ctx, "federated token rejected", "provider", provider, "error", err)
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrorInternal
	}

	var (
		sess    *Session
		created bool
		linked  bool
	)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		accountID, isNew, isLinked, err := s.resolveFederated(ctx, tx, provider, claims)
		if err != nil {
			return err
		}
		created, linked = isNew, isLinked
		sess, err = s.issueSession(ctx, tx, accountID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			s.logger.Warn(ctx, "federated sign-in refused", "provider", provider, "error", err)
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "federated sign-in failed", "provider", provider, "error", err)
		return nil, common.ErrorInternal
	}

	if created {
		s.publish(ctx, events.New(events.AccountCreated, sess.UID, map[string]any{"email": normalizeEmail(claims.Email), "method": provider}))
	}
	if linked {
		s.publish(ctx, events.New(events.FederatedLinked, sess.UID, map[string]any{"provider": provider}))
	}
	s.publish(ctx, events.New(events.AccountSignedIn, sess.UID, map[string]any{"method": provider}))
	return sess, nil
}

func (s *Service) resolveFederated(ctx context.Context, tx dbx.DBTX, provider string, c *federation.Claims) (accountID string, created, linked bool, err error) {
	ids := s.repos.Identities(tx)

	fi, err := ids.Find(ctx, provider, c.Subject)
	if err == nil {
		return fi.AccountID, false, false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", false, false, err
	}

	if !c.EmailVerified {
		return "", false, false, fmt.Errorf("%w: email %q is not verified by %s", common.ErrInvalidToken, c.Email, provider)
	}

	email := normalizeEmail(c.Email)
	acc, err := s.repos.Accounts(tx).GetByEmail(ctx, email)
	switch {
	case err == nil:
		accountID = acc.ID
	case errors.Is(err, common.ErrorNotFound):
		acc = &models.Account{ID: uuid.NewString(), Email: email}
		if _, err := s.repos.Accounts(tx).Create(ctx, acc); err != nil {
			return "", false, false, err
		}
		accountID, created = acc.ID, true
	default:
		return "", false, false, err
	}

	err = ids.Create(ctx, &models.FederatedIdentity{
		Provider:  provider,
		Subject:   c.Subject,
		AccountID: accountID,
		Email:     email,
	})
	if err != nil {
		return "", false, false, err
	}
	return accountID, created, true, nil
}

// RefreshToken redeems a refresh token for a new pair. The old token is
// consumed even when it turns out to be expired.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	var sess *Session
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		token, err := s.repos.RefreshTokens(tx).Consume(ctx, refreshToken)
		if err != nil {
			return err
		}
		if token.Expired(time.Now()) {
			return common.ErrRefreshTokenExpired
		}
		sess, err = s.issueSession(ctx, tx, token.UserID)
		return err
	})

	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrInvalidToken
	case errors.Is(err, common.ErrRefreshTokenExpired):
		// the rollback restored the expired row
		_ = s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	default:
		s.logger.Error(ctx, "refresh failed", "error", err)
		return nil, common.ErrorInternal
	}
}

// SignOut revokes the refresh token. Unknown tokens are ignored.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		s.logger.Error(ctx, "sign out failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// SendPasswordReset mails a one-time reset link. It reports success for
// unknown emails so the endpoint cannot be used to probe for accounts.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	in := resetRequest{Email: normalizeEmail(email)}
	if err := s.validate.Struct(in); err != nil {
		return s.validationError(err)
	}

	acc, err := s.repos.Accounts(s.db).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "password reset for unknown email")
			return nil
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return common.ErrorInternal
	}

	token, err := s.resets.Issue(ctx, acc.ID, s.resetValidity)
	if err != nil {
		s.logger.Error(ctx, "issue reset token failed", "error", err)
		return common.ErrorInternal
	}

	if err := s.mail.SendPasswordReset(ctx, acc.Email, s.resetURL+token); err != nil {
		s.logger.Error(ctx, "send reset mail failed", "error", err)
		return common.ErrorInternal
	}

	s.publish(ctx, events.New(events.PasswordResetSent, acc.ID, nil))
	return nil
}

// ConfirmPasswordReset sets a new password using a token from the reset mail
// and revokes all refresh tokens of the account.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, password string) error {
	if err := s.validate.Var(password, "required,min=6,max=72"); err != nil {
		return fmt.Errorf("%w: password must be 6 to 72 characters", common.ErrorValidation)
	}

	accountID, err := s.resets.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return common.ErrInvalidToken
		}
		s.logger.Error(ctx, "consume reset token failed", "error", err)
		return common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Accounts(tx).UpdatePasswordHash(ctx, accountID, hash); err != nil {
			return err
		}
		return s.repos.RefreshTokens(tx).DeleteByUser(ctx, accountID)
	})
	if err != nil {
		s.logger.Error(ctx, "password reset failed", "error", err)
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}

	s.publish(ctx, events.New(events.PasswordResetComplete, accountID, nil))
	return nil
}

func (s *Service) issueSession(ctx context.Context, db dbx.DBTX, uid string) (*Session, error) {
	access, err := auth.GenerateToken(uid, s.jwtSecret, s.accessValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repos.RefreshTokens(db).Create(ctx, uid, refresh, s.refreshValidity); err != nil {
		s.logger.Error(ctx, "store refresh token failed", "error", err)
		return nil, common.ErrorInternal
	}
	return &Session{UID: uid, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn(ctx, "event publish failed", "type", e.Type, "error", err)
	}
}
