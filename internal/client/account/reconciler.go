package account

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/onboarding/internal/client/models"
	"github.com/dmitrijs2005/onboarding/internal/common"
	"github.com/dmitrijs2005/onboarding/internal/logging"
	"github.com/dmitrijs2005/onboarding/internal/profile"
)

// SessionSource reports the uid of the signed-in user, if any.
type SessionSource interface {
	CurrentSessionUID() (string, bool)
}

// Reconciler maps a resolved identity to its profile record.
type Reconciler struct {
	store   profile.Store
	session SessionSource
	logger  logging.Logger
}

func NewReconciler(store profile.Store, session SessionSource, logger logging.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		session: session,
		logger:  logger.With("module", "account_reconciler"),
	}
}

// FetchCurrentUser reads the profile of the signed-in user.
func (r *Reconciler) FetchCurrentUser(ctx context.Context) (*models.User, error) {
	uid, ok := r.session.CurrentSessionUID()
	if !ok {
		return nil, serverErrorf(msgNoSession)
	}
	return r.read(ctx, uid)
}

// CreateProfile writes a fresh record for uid and returns what the store now holds.
func (r *Reconciler) CreateProfile(ctx context.Context, uid, email, fullname string) (*models.User, error) {
	if err := r.store.Write(ctx, uid, models.NewUserFields(email, fullname)); err != nil {
		return nil, serverError(err)
	}
	r.logger.Info(ctx, "profile created", "uid", uid)

	return r.read(ctx, uid)
}

// ReconcileFederatedIdentity returns the existing profile of the signed-in
// user or, if it cannot be fetched, creates one from the federated data.
//
// Any fetch failure counts as "new user", including a transient store
// error. In that case an existing record is overwritten with the federated
// email and fullname and the onboarding flag is reset.
func (r *Reconciler) ReconcileFederatedIdentity(ctx context.Context, uid, email, fullname string) (*models.User, error) {
	u, err := r.FetchCurrentUser(ctx)
	if err == nil {
		r.logger.Debug(ctx, "returning federated user", "uid", u.UID)
		return u, nil
	}

	r.logger.Info(ctx, "no profile for federated identity, creating", "uid", uid, "fetch_error", err)
	return r.CreateProfile(ctx, uid, email, fullname)
}

// MarkOnboardingSeen sets hasSeenOnboarding and returns the refreshed profile.
func (r *Reconciler) MarkOnboardingSeen(ctx context.Context) (*models.User, error) {
	uid, ok := r.session.CurrentSessionUID()
	if !ok {
		return nil, serverErrorf(msgNoSession)
	}

	if err := r.store.UpdateField(ctx, uid, common.FieldHasSeenOnboarding, true); err != nil {
		return nil, serverError(err)
	}

	return r.FetchCurrentUser(ctx)
}

func (r *Reconciler) read(ctx context.Context, uid string) (*models.User, error) {
	fields, err := r.store.Read(ctx, uid)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorCorruptRecord) {
			return nil, decodingError(err)
		}
		return nil, serverError(err)
	}

	u, err := models.UserFromFields(uid, fields)
	if err != nil {
		r.logger.Warn(ctx, "malformed profile record", "uid", uid, "error", err)
		return nil, decodingError(err)
	}
	return u, nil
}
