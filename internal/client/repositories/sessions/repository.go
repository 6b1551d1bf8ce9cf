// Package sessions keeps the signed-in session in the client's local
// database so the next launch can resume it.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/onboarding/internal/client/session"
)

// Repository stores at most one session.
//
// Load returns common.ErrorNotFound when nothing is stored.
type Repository interface {
	Load(ctx context.Context) (session.Session, error)
	Save(ctx context.Context, s session.Session) error
	Delete(ctx context.Context) error
}
