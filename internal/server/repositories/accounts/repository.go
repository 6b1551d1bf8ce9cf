// Package accounts declares the storage contract for login accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/onboarding/internal/server/models"
)

type Repository interface {
	// Create inserts the account. A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdatePasswordHash(ctx context.Context, id string, hash []byte) error
}
