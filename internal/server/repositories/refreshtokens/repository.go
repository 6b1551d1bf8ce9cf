// Package refreshtokens declares the storage contract for refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/onboarding/internal/server/models"
)

type Repository interface {
	// Create stores a new refresh token for userID that expires at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Consume deletes the token and returns what it was, so a token can be
	// redeemed at most once. A missing token yields common.ErrorNotFound.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token; deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUser revokes every token issued to userID.
	DeleteByUser(ctx context.Context, userID string) error
}
