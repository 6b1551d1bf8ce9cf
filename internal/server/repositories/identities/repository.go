// Package identities stores the links between federated provider subjects
// and local accounts.
package identities

import (
	"context"

	"github.com/dmitrijs2005/onboarding/internal/server/models"
)

type Repository interface {
	// Find returns common.ErrorNotFound when the subject was never linked.
	Find(ctx context.Context, provider, subject string) (*models.FederatedIdentity, error)
	Create(ctx context.Context, identity *models.FederatedIdentity) error
}
